package contract

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mockguard/mockguard/internal/domain"
	"gopkg.in/yaml.v3"
)

// OpenAPILoader implements domain.ContractLoader for OpenAPI 3 documents in
// JSON or YAML. References are resolved by kin-openapi; declaration order
// comes from the raw document.
type OpenAPILoader struct{}

func New() *OpenAPILoader {
	return &OpenAPILoader{}
}

func (l *OpenAPILoader) Load(ctx context.Context, path string) (*domain.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return l.LoadData(ctx, data)
}

// LoadData parses a contract document held in memory.
func (l *OpenAPILoader) LoadData(ctx context.Context, data []byte) (*domain.Contract, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	order := newDocumentOrder(&root)

	if v := order.swaggerVersion(); v != "" {
		return nil, fmt.Errorf("swagger %s documents are not supported, convert to OpenAPI 3 first", v)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("resolving document: %w", err)
	}

	return convert(doc, order), nil
}

func convert(doc *openapi3.T, order *documentOrder) *domain.Contract {
	c := &domain.Contract{}
	if doc.Info != nil {
		c.Title = doc.Info.Title
		c.Version = doc.Info.Version
	}
	if doc.Paths == nil {
		return c
	}

	paths := doc.Paths.Map()
	for _, template := range ordered(order.paths(), keys(paths)) {
		item := paths[template]
		if item == nil {
			continue
		}
		pi := domain.PathItem{Template: template}

		ops := item.Operations()
		for _, method := range ordered(order.methods(template), keys(ops)) {
			op := ops[method]
			if op == nil {
				continue
			}
			pi.Operations = append(pi.Operations, convertOperation(template, method, item, op, order))
		}
		c.Paths = append(c.Paths, pi)
	}
	return c
}

func convertOperation(template, method string, item *openapi3.PathItem, op *openapi3.Operation, order *documentOrder) domain.Operation {
	out := domain.Operation{
		Method: domain.HTTPMethod(strings.ToUpper(method)),
		ID:     op.OperationID,
	}

	overridden := make(map[string]bool)
	for _, ref := range op.Parameters {
		if ref == nil || ref.Value == nil {
			continue
		}
		overridden[ref.Value.In+"/"+ref.Value.Name] = true
		out.Parameters = append(out.Parameters, convertParameter(ref.Value))
	}
	for _, ref := range item.Parameters {
		if ref == nil || ref.Value == nil || overridden[ref.Value.In+"/"+ref.Value.Name] {
			continue
		}
		out.Parameters = append(out.Parameters, convertParameter(ref.Value))
	}

	if op.Responses != nil {
		out.Responses = make(map[string]domain.Response)
		for status, ref := range op.Responses.Map() {
			if ref == nil || ref.Value == nil {
				continue
			}
			resp := domain.Response{Content: make(map[string]*domain.Schema)}
			for ct, media := range ref.Value.Content {
				if media == nil || media.Schema == nil || media.Schema.Value == nil {
					continue
				}
				at := []string{"paths", template, strings.ToLower(method), "responses", status, "content", ct, "schema"}
				resp.Content[ct] = convertSchema(media.Schema, order.propertyOrder(media.Schema.Ref, at))
			}
			out.Responses[status] = resp
		}
	}

	return out
}

func convertParameter(p *openapi3.Parameter) *domain.Parameter {
	out := &domain.Parameter{Name: p.Name, In: p.In, Required: p.Required}
	if p.Schema != nil && p.Schema.Value != nil {
		out.Schema = convertSchema(p.Schema, nil)
	}
	return out
}

// convertSchema copies the top level of a schema. Nested property schemas
// keep type and format only.
func convertSchema(ref *openapi3.SchemaRef, propertyOrder []string) *domain.Schema {
	s := ref.Value
	out := &domain.Schema{
		Type:     primaryType(s.Type),
		Format:   s.Format,
		Required: append([]string(nil), s.Required...),
	}
	for _, v := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(v))
	}
	for _, name := range ordered(propertyOrder, keys(s.Properties)) {
		prop := s.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		out.Properties = append(out.Properties, domain.Property{
			Name:   name,
			Schema: domain.Schema{Type: primaryType(prop.Value.Type), Format: prop.Value.Format},
		})
	}
	return out
}

// primaryType returns the first non-null type of an OpenAPI 3.1 type list.
func primaryType(types *openapi3.Types) string {
	for _, t := range types.Slice() {
		if t != openapi3.TypeNull {
			return t
		}
	}
	return ""
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ordered returns every name in present, following preferred first and
// appending the rest alphabetically.
func ordered(preferred, present []string) []string {
	seen := make(map[string]bool, len(present))
	for _, p := range present {
		seen[p] = false
	}
	out := make([]string, 0, len(present))
	for _, p := range preferred {
		if done, ok := seen[p]; ok && !done {
			out = append(out, p)
			seen[p] = true
		}
	}
	for _, p := range present {
		if !seen[p] {
			out = append(out, p)
			seen[p] = true
		}
	}
	return out
}
