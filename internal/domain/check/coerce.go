package check

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mockguard/mockguard/internal/domain"
)

// Target is the primitive a literal must parse as.
type Target struct {
	Name  string
	parse func(string) bool
}

func (t Target) Accepts(literal string) bool { return t.parse(literal) }

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
	"01/02/2006 15:04:05",
	"01/02/2006",
}

var formatTargets = map[string]Target{
	"date-time": {Name: "date-time", parse: isDateTime},
	"date":      {Name: "date", parse: isDate},
	"uuid":      {Name: "uuid", parse: isUUID},
	"string":    {Name: "string", parse: func(string) bool { return true }},
	"int32":     {Name: "int32", parse: isInt(32)},
	"int64":     {Name: "int64", parse: isInt(64)},
	"float":     {Name: "float", parse: isFloat(32)},
	"double":    {Name: "double", parse: isFloat(64)},
}

var typeFormats = map[string]string{
	"string":  "string",
	"integer": "int64",
	"number":  "double",
}

// TargetFor maps a schema to the primitive its literals must parse as. The
// format decides; a schema without a format falls back to its type.
func TargetFor(s *domain.Schema) (Target, error) {
	if s.Format != "" {
		if t, ok := formatTargets[s.Format]; ok {
			return t, nil
		}
		return Target{}, &domain.UnsupportedError{Kind: "format", Value: s.Format}
	}

	if s.Type == "boolean" {
		return Target{Name: "boolean", parse: isBool}, nil
	}
	if f, ok := typeFormats[s.Type]; ok {
		t := formatTargets[f]
		t.Name = s.Type
		return t, nil
	}
	if s.Type == "" {
		return Target{}, &domain.UnsupportedError{Kind: "schema", Value: "no type or format"}
	}
	return Target{}, &domain.UnsupportedError{Kind: "type", Value: s.Type}
}

func isDateTime(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isDate(s string) bool {
	_, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	return err == nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

func isInt(bits int) func(string) bool {
	return func(s string) bool {
		_, err := strconv.ParseInt(strings.TrimSpace(s), 10, bits)
		return err == nil
	}
}

func isFloat(bits int) func(string) bool {
	return func(s string) bool {
		_, err := strconv.ParseFloat(strings.TrimSpace(s), bits)
		return err == nil
	}
}

func isBool(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}
