// Package facet models a single search-result facet: a name and a
// result count, mirroring the source's LuceneFacet. Custom JSON
// (un)marshalling exists because the source uses two different wire
// shapes for the same struct: GetLuceneFacetAsJSON emits a schema.org
// "name"/"count" fragment, while GetLuceneFacetFromResultsJSON reads a
// results payload's "label"/"value" pair. Neither matches Go's default
// struct-tag encoding of a Count field on its own.
package facet

import "encoding/json"

// Facet pairs a name with how many results fall under it.
type Facet struct {
	Name  string
	Count uint32
}

// New builds a Facet.
func New(name string, count uint32) Facet {
	return Facet{Name: name, Count: count}
}

type wireFacet struct {
	Name  string `json:"name"`
	Count uint32 `json:"count"`
}

// MarshalJSON encodes the Facet the way GetLuceneFacetAsJSON assembles
// its JSON fragment: a "name" field and a "count" field, nothing else.
func (f Facet) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireFacet{Name: f.Name, Count: f.Count})
}

// resultsFacet is the shape a results payload actually uses, distinct
// from wireFacet: "label" instead of "name", "value" instead of "count".
type resultsFacet struct {
	Label string `json:"label"`
	Value uint32 `json:"value"`
}

// UnmarshalJSON decodes the "label"/"value" shape GetLuceneFacetFromResultsJSON
// reads, not the "name"/"count" shape MarshalJSON writes: a Facet is
// produced from a results payload on the way in and rendered as its own
// schema.org-flavoured fragment on the way out.
func (f *Facet) UnmarshalJSON(data []byte) error {
	var r resultsFacet
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	f.Name = r.Label
	f.Count = r.Value
	return nil
}
