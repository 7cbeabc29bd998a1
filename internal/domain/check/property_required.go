package check

import "github.com/mockguard/mockguard/internal/domain"

// PropertyQuery pairs an operation's declared responses with the properties
// found in the mock's response body.
type PropertyQuery struct {
	Operation string
	Responses map[string]domain.Response
	Body      *domain.BodyProperties
}

// declared returns the properties of the 200 application/json schema, or
// nil when there is nothing to compare.
func (q PropertyQuery) declared() *domain.Schema {
	if q.Responses == nil || q.Body == nil {
		return nil
	}
	return domain.SuccessSchema(q.Responses)
}

// PropertyRequiredValidator checks that each declared response property
// appears in the mock body. Names are compared case-insensitively.
type PropertyRequiredValidator struct{}

func (PropertyRequiredValidator) Validate(q PropertyQuery) ([]domain.Finding, error) {
	schema := q.declared()
	if schema == nil {
		return nil, nil
	}

	findings := make([]domain.Finding, 0, len(schema.Properties))
	for _, prop := range schema.Properties {
		name := domain.ResponseName(q.Operation, prop.Name)
		if _, ok := q.Body.Lookup(prop.Name); ok {
			findings = append(findings, domain.Pass(domain.CheckResponsePropertyRequired, name))
			continue
		}
		findings = append(findings, absent(domain.CheckResponsePropertyRequired, name, prop.Name, schema.IsRequired(prop.Name)))
	}
	return findings, nil
}
