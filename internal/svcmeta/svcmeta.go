// Package svcmeta models a job service's descriptive metadata: the
// ontological terms that categorise it and describe what it consumes
// and produces, mirroring the source's SchemaTerm and ServiceMetadata.
package svcmeta

// SchemaTerm is an ontological term used to describe or categorise a
// job service: a URL identifying the term, plus the human-facing name,
// description, and an optional abbreviation.
type SchemaTerm struct {
	URL          string `json:"url"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// NewSchemaTerm builds a SchemaTerm with no abbreviation.
func NewSchemaTerm(url, name, description string) SchemaTerm {
	return SchemaTerm{URL: url, Name: name, Description: description}
}

// ServiceMetadata describes the category, subcategory, and input/output
// types of a job service.
type ServiceMetadata struct {
	ApplicationCategory    SchemaTerm   `json:"application_category"`
	ApplicationSubcategory SchemaTerm   `json:"application_subcategory"`
	InputTypes             []SchemaTerm `json:"input_types,omitempty"`
	OutputTypes            []SchemaTerm `json:"output_types,omitempty"`
}

// NewServiceMetadata builds a ServiceMetadata with the given category
// and subcategory and no input/output types.
func NewServiceMetadata(category, subcategory SchemaTerm) *ServiceMetadata {
	return &ServiceMetadata{
		ApplicationCategory:    category,
		ApplicationSubcategory: subcategory,
	}
}

// AddInputType appends a SchemaTerm describing one kind of data the
// service accepts.
func (m *ServiceMetadata) AddInputType(t SchemaTerm) {
	m.InputTypes = append(m.InputTypes, t)
}

// AddOutputType appends a SchemaTerm describing one kind of data the
// service produces.
func (m *ServiceMetadata) AddOutputType(t SchemaTerm) {
	m.OutputTypes = append(m.OutputTypes, t)
}
