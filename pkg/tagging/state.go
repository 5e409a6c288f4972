package tagging

// Entry is the desired tag list for every entity matched by Selector.
// Keys lists every managed key the mapping can produce, whether or not the
// row had a usable value for it; Tags holds only the usable ones.
type Entry struct {
	Row      int      `json:"row" yaml:"row"`
	Identity string   `json:"identity" yaml:"identity"`
	Selector Selector `json:"selector" yaml:"selector"`
	Keys     []string `json:"keys,omitempty" yaml:"keys,omitempty"`
	Tags     []Tag    `json:"tags" yaml:"tags"`
}

// ManagedKeys returns the keys a delete pass clears for this entry: Keys
// when set, else the keys of Tags.
func (e Entry) ManagedKeys() []string {
	if len(e.Keys) > 0 {
		return e.Keys
	}
	return Keys(e.Tags)
}

// DesiredState is the ordered set of entries computed for one run. Entries
// follow input row order. Two rows naming the same entity yield two
// entries; they are not merged.
type DesiredState struct {
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Len returns the number of entries.
func (s *DesiredState) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// TagCount returns the number of tags across all entries.
func (s *DesiredState) TagCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, e := range s.Entries {
		n += len(e.Tags)
	}
	return n
}

// Add appends an entry.
func (s *DesiredState) Add(e Entry) {
	s.Entries = append(s.Entries, e)
}
