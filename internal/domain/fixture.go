package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// Fixture is one mock definition pairing a request matcher with a canned
// response. Request or Response may be nil for incomplete mappings.
type Fixture struct {
	Name     string           `json:"name"`
	Source   string           `json:"source"`
	Request  *FixtureRequest  `json:"request,omitempty"`
	Response *FixtureResponse `json:"response,omitempty"`
}

// Complete reports whether the fixture has both a request and a response.
func (f *Fixture) Complete() bool {
	return f.Request != nil && f.Response != nil
}

// FixtureRequest is the mock's request matcher.
type FixtureRequest struct {
	Method          string             `json:"method"`
	URLPattern      string             `json:"url_pattern"`
	QueryParameters map[string]Matcher `json:"query_parameters,omitempty"`
}

// FixtureResponse is the mock's canned response.
type FixtureResponse struct {
	Status       int             `json:"status"`
	BodyFileName string          `json:"body_file_name,omitempty"`
	JSONBody     json.RawMessage `json:"json_body,omitempty"`
}

// MatcherKind tags the Matcher union.
type MatcherKind int

const (
	MatcherUnsupported MatcherKind = iota
	MatcherEqualTo
	MatcherMatches
)

func (k MatcherKind) String() string {
	switch k {
	case MatcherEqualTo:
		return "equalTo"
	case MatcherMatches:
		return "matches"
	default:
		return "unsupported"
	}
}

// Matcher is the mock's rule for one query parameter:
// EqualTo(literal) | Matches(regex) | Unsupported(raw JSON).
type Matcher struct {
	Kind  MatcherKind     `json:"kind"`
	Value string          `json:"value,omitempty"`
	Raw   json.RawMessage `json:"raw,omitempty"`
}

func EqualTo(literal string) Matcher { return Matcher{Kind: MatcherEqualTo, Value: literal} }

func Matches(pattern string) Matcher { return Matcher{Kind: MatcherMatches, Value: pattern} }

func Unsupported(raw json.RawMessage) Matcher { return Matcher{Kind: MatcherUnsupported, Raw: raw} }

// Literals returns every string value the matcher carries. Unsupported
// matchers contribute the string members of their raw object, sorted by key.
func (m Matcher) Literals() []string {
	if m.Kind != MatcherUnsupported {
		return []string{m.Value}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(m.Raw, &obj); err != nil {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []string
	for _, k := range keys {
		var s string
		if err := json.Unmarshal(obj[k], &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// PrimitiveType is the coarse JSON type inferred from a mock body value.
type PrimitiveType string

const (
	TypeObject PrimitiveType = "object"
	TypeArray  PrimitiveType = "array"
	TypeString PrimitiveType = "string"
	TypeInt    PrimitiveType = "int"
	TypeBool   PrimitiveType = "bool"
)

// BodyKind discriminates a top-level object body from an array of objects.
type BodyKind string

const (
	BodyKindUnset BodyKind = ""
	BodyObject    BodyKind = "object"
	BodyArray     BodyKind = "array"
)

// BodyProperties maps the property names found in a mock response body to
// their inferred types. Lookups ignore case; the first spelling wins.
type BodyProperties struct {
	Kind  BodyKind
	types map[string]PrimitiveType
	names []string
}

func NewBodyProperties(kind BodyKind) *BodyProperties {
	return &BodyProperties{Kind: kind, types: make(map[string]PrimitiveType)}
}

// Add records name unless a property with the same case-folded name exists.
func (b *BodyProperties) Add(name string, t PrimitiveType) {
	key := strings.ToLower(name)
	if _, ok := b.types[key]; ok {
		return
	}
	b.types[key] = t
	b.names = append(b.names, name)
}

// Lookup returns the inferred type of name, ignoring case.
func (b *BodyProperties) Lookup(name string) (PrimitiveType, bool) {
	if b == nil {
		return "", false
	}
	t, ok := b.types[strings.ToLower(name)]
	return t, ok
}

// Names returns property names in the order they were first seen.
func (b *BodyProperties) Names() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.names...)
}

func (b *BodyProperties) Len() int {
	if b == nil {
		return 0
	}
	return len(b.names)
}
