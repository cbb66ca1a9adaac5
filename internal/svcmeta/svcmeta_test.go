package svcmeta

import "testing"

func TestAddInputOutputTypes(t *testing.T) {
	m := NewServiceMetadata(
		NewSchemaTerm("http://schema.org/category/data", "Data retrieval", ""),
		NewSchemaTerm("http://schema.org/category/fetch", "Fetch", ""),
	)
	m.AddInputType(NewSchemaTerm("http://schema.org/Text", "Text", ""))
	m.AddOutputType(NewSchemaTerm("http://schema.org/Dataset", "Dataset", ""))

	if len(m.InputTypes) != 1 {
		t.Fatalf("expected 1 input type, got %d", len(m.InputTypes))
	}
	if len(m.OutputTypes) != 1 {
		t.Fatalf("expected 1 output type, got %d", len(m.OutputTypes))
	}
}
