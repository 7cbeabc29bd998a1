package domain

import (
	"fmt"
	"sort"
	"strings"
)

// HTTPMethod is an upper-case HTTP verb.
type HTTPMethod string

const (
	MethodGet     HTTPMethod = "GET"
	MethodPost    HTTPMethod = "POST"
	MethodPut     HTTPMethod = "PUT"
	MethodDelete  HTTPMethod = "DELETE"
	MethodOptions HTTPMethod = "OPTIONS"
	MethodPatch   HTTPMethod = "PATCH"
	MethodHead    HTTPMethod = "HEAD"
	MethodTrace   HTTPMethod = "TRACE"

	// MethodAny is the mock-side wildcard matching every verb.
	MethodAny HTTPMethod = "ANY"
)

// HTTPMethods lists the verbs a contract may declare, in OpenAPI order.
var HTTPMethods = []HTTPMethod{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// ParseMethod maps a mock method string to an HTTPMethod. Matching is exact:
// mocks declare methods in upper case.
func ParseMethod(s string) (HTTPMethod, error) {
	if HTTPMethod(s) == MethodAny {
		return MethodAny, nil
	}
	for _, m := range HTTPMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", &UnsupportedError{Kind: "method", Value: s}
}

// Contract is the in-memory API contract. Paths keep declaration order.
type Contract struct {
	Title   string     `json:"title,omitempty"`
	Version string     `json:"version,omitempty"`
	Paths   []PathItem `json:"paths"`
}

// PathItem is one URL template and its declared operations.
type PathItem struct {
	Template   string      `json:"template"`
	Operations []Operation `json:"operations"`
}

// Methods returns the declared methods in declaration order.
func (p *PathItem) Methods() []HTTPMethod {
	out := make([]HTTPMethod, 0, len(p.Operations))
	for _, op := range p.Operations {
		out = append(out, op.Method)
	}
	return out
}

// Operation returns the operation declared for method, or nil.
func (p *PathItem) Operation(method HTTPMethod) *Operation {
	for i := range p.Operations {
		if p.Operations[i].Method == method {
			return &p.Operations[i]
		}
	}
	return nil
}

// Operation is a single declared HTTP operation.
type Operation struct {
	Method     HTTPMethod          `json:"method"`
	ID         string              `json:"operation_id,omitempty"`
	Parameters []*Parameter        `json:"parameters,omitempty"`
	Responses  map[string]Response `json:"responses,omitempty"`
}

// Identifier returns the operationId, or "<METHOD> <template>" when the
// contract declares none.
func (o *Operation) Identifier(template string) string {
	if o.ID != "" {
		return o.ID
	}
	return fmt.Sprintf("%s %s", o.Method, template)
}

// Parameter is a declared operation parameter.
type Parameter struct {
	Name     string  `json:"name"`
	In       string  `json:"in,omitempty"`
	Required bool    `json:"required"`
	Schema   *Schema `json:"schema,omitempty"`
}

// IsQuery reports whether a mock can supply the parameter through its query
// matchers. Parameters without a location are treated as query parameters.
func (p *Parameter) IsQuery() bool {
	return p.In == "" || p.In == "query"
}

// Response is a declared response keyed by content type.
type Response struct {
	Content map[string]*Schema `json:"content,omitempty"`
}

// Schema is the subset of JSON Schema the checks need: the primitive type,
// its format, enum literals and top-level object properties.
type Schema struct {
	Type       string     `json:"type,omitempty"`
	Format     string     `json:"format,omitempty"`
	Enum       []string   `json:"enum,omitempty"`
	Properties []Property `json:"properties,omitempty"`
	Required   []string   `json:"required,omitempty"`
}

// Property is a named top-level schema property.
type Property struct {
	Name   string `json:"name"`
	Schema Schema `json:"schema"`
}

// HasEnum reports whether the schema restricts values to a literal set.
func (s *Schema) HasEnum() bool {
	return s != nil && len(s.Enum) > 0
}

// IsRequired reports whether name is listed in the schema's required set.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

const (
	StatusOK        = "200"
	ContentTypeJSON = "application/json"
)

// SuccessSchema returns the application/json schema of the 200 response, or
// nil when the operation declares none.
func SuccessSchema(responses map[string]Response) *Schema {
	ok, found := responses[StatusOK]
	if !found {
		return nil
	}
	if s, found := ok.Content[ContentTypeJSON]; found {
		return s
	}
	types := make([]string, 0, len(ok.Content))
	for ct := range ok.Content {
		types = append(types, ct)
	}
	sort.Strings(types)
	for _, ct := range types {
		if strings.HasPrefix(ct, ContentTypeJSON+";") {
			return ok.Content[ct]
		}
	}
	return nil
}
