package param

import "testing"

const sampleSchema = `{
	"type": "object",
	"properties": {
		"count": {"type": "integer", "minimum": 0},
		"label": {"type": "string"}
	},
	"required": ["count"]
}`

func TestSetAddAndFind(t *testing.T) {
	s := NewSet("job-input", "parameters for a fetch job")
	s.Add(Parameter{Name: "label", Value: "ditto"})
	s.AddToGroup("advanced", Parameter{Name: "count", Level: LevelAdvanced, Value: 3})

	if _, ok := s.Find("label"); !ok {
		t.Fatal("expected to find ungrouped parameter")
	}
	if _, ok := s.Find("count"); !ok {
		t.Fatal("expected to find grouped parameter")
	}
	if _, ok := s.Find("missing"); ok {
		t.Fatal("did not expect to find an absent parameter")
	}
}

func TestValidatorAcceptsValidSet(t *testing.T) {
	v, err := NewValidator("job-input.json", []byte(sampleSchema))
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}

	s := NewSet("job-input", "")
	s.Add(Parameter{Name: "count", Value: 3})
	s.Add(Parameter{Name: "label", Value: "ditto"})

	if err := v.ValidateSet(s); err != nil {
		t.Fatalf("expected valid set, got: %v", err)
	}
}

func TestValidatorRejectsMissingRequired(t *testing.T) {
	v, err := NewValidator("job-input.json", []byte(sampleSchema))
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}

	s := NewSet("job-input", "")
	s.Add(Parameter{Name: "label", Value: "ditto"})

	if err := v.ValidateSet(s); err == nil {
		t.Fatal("expected validation error for missing required field")
	}
}

func TestDecodeValue(t *testing.T) {
	var count int
	if err := DecodeValue(float64(7), &count); err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected 7, got %d", count)
	}
}
