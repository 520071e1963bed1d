package templates

import "fmt"

// Schema describes the record facades to generate.
type Schema struct {
	Package string         `yaml:"package"`
	Records []RecordSchema `yaml:"records"`
}

type RecordSchema struct {
	Name   string        `yaml:"name"`
	Fields []FieldSchema `yaml:"fields"`
}

type FieldSchema struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
	Type string `yaml:"type"`
}

var supportedTypes = map[string]string{
	"string":  `""`,
	"bool":    "false",
	"int":     "0",
	"int64":   "0",
	"float64": "0.0",
	"any":     "nil",
}

func (s Schema) Validate() error {
	if s.Package == "" {
		return fmt.Errorf("schema has no package name")
	}
	if len(s.Records) == 0 {
		return fmt.Errorf("schema has no records")
	}
	for _, rec := range s.Records {
		if rec.Name == "" {
			return fmt.Errorf("record with no name")
		}
		if len(rec.Fields) == 0 {
			return fmt.Errorf("record %s has no fields", rec.Name)
		}
		for _, f := range rec.Fields {
			if f.Name == "" || f.Key == "" {
				return fmt.Errorf("record %s has an unnamed field", rec.Name)
			}
			if _, ok := supportedTypes[f.Type]; !ok {
				return fmt.Errorf("record %s field %s has unsupported type %q", rec.Name, f.Name, f.Type)
			}
		}
	}
	return nil
}

// ZeroLiteral is the zero-value literal seeded into new records.
func ZeroLiteral(typ string) string {
	return supportedTypes[typ]
}
