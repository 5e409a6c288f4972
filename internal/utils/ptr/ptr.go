// Package ptr builds pointers to values, for optional fields such as
// command-line overrides.
package ptr

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}
