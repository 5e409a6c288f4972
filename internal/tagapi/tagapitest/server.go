// Package tagapitest provides an in-memory tagging endpoint for tests.
package tagapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/agentstation/tagsync/pkg/tagging"
)

// Call is one request received by the Server.
type Call struct {
	Method   string
	Selector string
	Key      string
	Tags     []tagging.Tag
	Auth     string
}

// Server is a fake tags endpoint. Tags are stored per selector string;
// every selector matches exactly one entity unless listed in Unmatched.
type Server struct {
	*httptest.Server

	mu    sync.Mutex
	calls []Call
	tags  map[string][]tagging.Tag

	// FailCreate and FailDelete return the given status for a selector.
	FailCreate map[string]int
	FailDelete map[string]int
	// Unmatched selectors match zero entities.
	Unmatched map[string]bool
	// DeleteNotFound makes every delete answer 404.
	DeleteNotFound bool
}

// NewServer starts a Server. Close it when done.
func NewServer() *Server {
	s := &Server{
		tags:       map[string][]tagging.Tag{},
		FailCreate: map[string]int{},
		FailDelete: map[string]int{},
		Unmatched:  map[string]bool{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Calls returns a copy of the received calls in order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Tags returns the stored tags of selector.
func (s *Server) Tags(selector string) []tagging.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tagging.Tag, len(s.tags[selector]))
	copy(out, s.tags[selector])
	return out
}

// Seed stores tags for selector without recording a call.
func (s *Server) Seed(selector string, tags ...tagging.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[selector] = append(s.tags[selector], tags...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v2/tags" {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	call := Call{
		Method:   r.Method,
		Selector: q.Get("entitySelector"),
		Key:      q.Get("key"),
		Auth:     r.Header.Get("Authorization"),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodDelete:
		s.calls = append(s.calls, call)
		if status, ok := s.FailDelete[call.Selector]; ok {
			writeError(w, status)
			return
		}
		if s.DeleteNotFound {
			writeError(w, http.StatusNotFound)
			return
		}
		kept := s.tags[call.Selector][:0]
		for _, t := range s.tags[call.Selector] {
			if t.Key != call.Key {
				kept = append(kept, t)
			}
		}
		s.tags[call.Selector] = kept
		writeJSON(w, map[string]int{"matchedEntitiesCount": s.matched(call.Selector)})

	case http.MethodPost:
		var body struct {
			Tags []tagging.Tag `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest)
			return
		}
		call.Tags = body.Tags
		s.calls = append(s.calls, call)
		if status, ok := s.FailCreate[call.Selector]; ok {
			writeError(w, status)
			return
		}
		if s.matched(call.Selector) > 0 {
			for _, t := range body.Tags {
				if !contains(s.tags[call.Selector], t) {
					s.tags[call.Selector] = append(s.tags[call.Selector], t)
				}
			}
		}
		writeJSON(w, map[string]any{
			"matchedEntitiesCount": s.matched(call.Selector),
			"appliedTags":          body.Tags,
		})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) matched(selector string) int {
	if s.Unmatched[selector] {
		return 0
	}
	return 1
}

func contains(tags []tagging.Tag, t tagging.Tag) bool {
	for _, x := range tags {
		if x == t {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": status, "message": http.StatusText(status)},
	})
}
