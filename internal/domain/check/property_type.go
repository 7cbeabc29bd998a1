package check

import "github.com/mockguard/mockguard/internal/domain"

// PropertyTypeValidator compares each declared response property's type with
// the type inferred from the mock body. A property whose declared type has
// no mapping yields an Error finding and the remaining properties are still
// checked.
type PropertyTypeValidator struct{}

func (PropertyTypeValidator) Validate(q PropertyQuery) ([]domain.Finding, error) {
	schema := q.declared()
	if schema == nil {
		return nil, nil
	}

	findings := make([]domain.Finding, 0, len(schema.Properties))
	for _, prop := range schema.Properties {
		findings = append(findings, checkPropertyType(q, prop))
	}
	return findings, nil
}

func checkPropertyType(q PropertyQuery, prop domain.Property) domain.Finding {
	name := domain.ResponseName(q.Operation, prop.Name)

	mocked, ok := q.Body.Lookup(prop.Name)
	if !ok {
		return domain.Warn(domain.CheckResponsePropertyType, name, "property '%s' not present in mock, cannot check type", prop.Name)
	}

	if prop.Schema.Type == "" && prop.Schema.Format == "" {
		return domain.Warn(domain.CheckResponsePropertyType, name, "property '%s' declares no type, cannot check type", prop.Name)
	}

	want, err := DeclaredType(prop.Schema)
	if err != nil {
		return errorFinding(domain.CheckResponsePropertyType, name, err)
	}
	if want != mocked {
		return domain.Fail(domain.CheckResponsePropertyType, name,
			"property '%s' has the wrong type; expected '%s', mocked '%s'", prop.Name, want, mocked)
	}
	return domain.Pass(domain.CheckResponsePropertyType, name)
}

// DeclaredType maps a declared property schema to the primitive type a mock
// body would carry for it. Date-time and uuid values travel as JSON strings.
func DeclaredType(s domain.Schema) (domain.PrimitiveType, error) {
	switch s.Format {
	case "date-time", "date", "uuid":
		return domain.TypeString, nil
	}

	switch s.Type {
	case "string":
		return domain.TypeString, nil
	case "integer", "number":
		return domain.TypeInt, nil
	case "boolean":
		return domain.TypeBool, nil
	case "object":
		return domain.TypeObject, nil
	case "array":
		return domain.TypeArray, nil
	}
	return "", &domain.UnsupportedError{Kind: "type", Value: s.Type}
}
