package check_test

import "github.com/mockguard/mockguard/internal/domain"

// petContract builds a small contract used across the check tests.
func petContract() *domain.Contract {
	petSchema := &domain.Schema{
		Type: "object",
		Properties: []domain.Property{
			{Name: "id", Schema: domain.Schema{Type: "integer", Format: "int64"}},
			{Name: "name", Schema: domain.Schema{Type: "string"}},
			{Name: "tag", Schema: domain.Schema{Type: "string"}},
			{Name: "born", Schema: domain.Schema{Type: "string", Format: "date-time"}},
		},
		Required: []string{"id", "name"},
	}

	return &domain.Contract{
		Paths: []domain.PathItem{
			{
				Template: "/pets",
				Operations: []domain.Operation{
					{
						Method: domain.MethodGet,
						ID:     "listPets",
						Parameters: []*domain.Parameter{
							{Name: "status", In: "query", Required: true, Schema: &domain.Schema{Type: "string", Enum: []string{"All", "None"}}},
							{Name: "limit", In: "query", Schema: &domain.Schema{Type: "integer", Format: "int32"}},
						},
						Responses: map[string]domain.Response{
							"200": {Content: map[string]*domain.Schema{"application/json": petSchema}},
						},
					},
				},
			},
			{
				Template: "/pets/{petId}",
				Operations: []domain.Operation{
					{
						Method: domain.MethodGet,
						ID:     "showPetById",
						Parameters: []*domain.Parameter{
							{Name: "petId", In: "path", Required: true, Schema: &domain.Schema{Type: "integer", Format: "int64"}},
							{Name: "owner", In: "query", Required: true, Schema: &domain.Schema{Type: "string", Format: "uuid"}},
						},
						Responses: map[string]domain.Response{
							"200": {Content: map[string]*domain.Schema{"application/json": petSchema}},
						},
					},
					{Method: domain.MethodDelete, ID: "deletePet"},
				},
			},
		},
	}
}

func query(pairs ...any) map[string]domain.Matcher {
	out := make(map[string]domain.Matcher)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i].(string)] = pairs[i+1].(domain.Matcher)
	}
	return out
}

func body(kind domain.BodyKind, pairs ...any) *domain.BodyProperties {
	props := domain.NewBodyProperties(kind)
	for i := 0; i+1 < len(pairs); i += 2 {
		props.Add(pairs[i].(string), pairs[i+1].(domain.PrimitiveType))
	}
	return props
}
