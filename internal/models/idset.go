package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// IDSet is a set of record identifiers. It serializes as a sorted JSON array;
// on load it also accepts the legacy comma-joined string encoding so that
// slots written by earlier revisions keep decoding.
type IDSet map[string]struct{}

// NewIDSet builds a set from the given identifiers.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has reports membership.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts an identifier.
func (s IDSet) Add(id string) { s[id] = struct{}{} }

// Remove deletes an identifier; removing a missing one is a no-op.
func (s IDSet) Remove(id string) { delete(s, id) }

// Clone returns an independent copy.
func (s IDSet) Clone() IDSet {
	c := make(IDSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Sorted returns the members in lexical order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON implements json.Marshaler.
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		*s = NewIDSet(ids...)
		return nil
	}
	// Legacy encoding: a single comma-delimited string.
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*s = NewIDSet(strings.Split(joined, ",")...)
	return nil
}
