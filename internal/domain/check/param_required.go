package check

import "github.com/mockguard/mockguard/internal/domain"

// ParamQuery is one declared parameter together with the mock's query
// parameter matchers.
type ParamQuery struct {
	Operation string
	Param     *domain.Parameter
	Query     map[string]domain.Matcher
}

func (q ParamQuery) name() string {
	return domain.RequestName(q.Operation, q.Param.Name)
}

// ParamRequiredValidator checks that a declared parameter appears in the
// mock's query matchers. Names are compared case-sensitively.
type ParamRequiredValidator struct{}

func (ParamRequiredValidator) Validate(q ParamQuery) (domain.Finding, error) {
	if q.Param == nil {
		return domain.Finding{}, nil
	}
	if _, ok := q.Query[q.Param.Name]; ok {
		return domain.Pass(domain.CheckParamRequired, q.name()), nil
	}
	return absent(domain.CheckParamRequired, q.name(), q.Param.Name, q.Param.Required), nil
}
