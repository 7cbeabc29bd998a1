package check

import (
	"regexp"
	"strings"

	"github.com/mockguard/mockguard/internal/domain"
)

// SampleUUID is the fixed value a uuid regex matcher must accept.
const SampleUUID = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

// ParamTypeValidator checks that the value a mock supplies for a declared
// parameter is compatible with the parameter's schema.
type ParamTypeValidator struct{}

func (ParamTypeValidator) Validate(q ParamQuery) (domain.Finding, error) {
	if q.Param == nil {
		return domain.Finding{}, nil
	}

	name := q.name()
	matcher, ok := q.Query[q.Param.Name]
	if !ok {
		return absent(domain.CheckParamType, name, q.Param.Name, q.Param.Required), nil
	}

	schema := q.Param.Schema
	if schema == nil {
		return domain.Warn(domain.CheckParamType, name, "parameter '%s' declares no schema, cannot check type", q.Param.Name), nil
	}

	if schema.HasEnum() {
		return checkEnum(name, schema.Enum, matcher), nil
	}
	if schema.Type == "" && schema.Format == "" {
		return domain.Warn(domain.CheckParamType, name, "parameter '%s' declares no type or format, cannot check type", q.Param.Name), nil
	}

	switch matcher.Kind {
	case domain.MatcherEqualTo:
		target, err := TargetFor(schema)
		if err != nil {
			return domain.Finding{}, err
		}
		if !target.Accepts(matcher.Value) {
			return domain.Fail(domain.CheckParamType, name,
				"not the correct type; expected '%s', mocked value '%s'", target.Name, matcher.Value), nil
		}
		return domain.Pass(domain.CheckParamType, name), nil

	case domain.MatcherMatches:
		if schema.Format != "uuid" {
			return domain.Warn(domain.CheckParamType, name,
				"match not yet supported for format '%s'", formatLabel(schema)), nil
		}
		re, err := regexp.Compile(matcher.Value)
		if err != nil {
			return domain.Fail(domain.CheckParamType, name,
				"regex '%s' does not compile: %v", matcher.Value, err), nil
		}
		if !re.MatchString(SampleUUID) {
			return domain.Fail(domain.CheckParamType, name,
				"regex '%s' does not accept uuid '%s'", matcher.Value, SampleUUID), nil
		}
		return domain.Pass(domain.CheckParamType, name), nil
	}

	return domain.Pass(domain.CheckParamType, name), nil
}

func formatLabel(s *domain.Schema) string {
	if s.Format != "" {
		return s.Format
	}
	return s.Type
}

func checkEnum(name string, allowed []string, matcher domain.Matcher) domain.Finding {
	mocked := matcher.Literals()
	for _, v := range mocked {
		for _, a := range allowed {
			if v == a {
				return domain.Pass(domain.CheckParamType, name)
			}
		}
	}
	return domain.Fail(domain.CheckParamType, name,
		"mocked value '%s' is not one of the allowed values [%s]",
		strings.Join(mocked, ","), strings.Join(allowed, ","))
}
