package check

import (
	"strings"

	"github.com/mockguard/mockguard/internal/domain"
)

// MethodQuery pairs the matched path with the mock's request method.
type MethodQuery struct {
	Path   *domain.PathItem
	Method string
}

// MethodValidator requires every method declared on the path to be covered
// by the mock's single method. ANY covers all of them.
type MethodValidator struct{}

func (MethodValidator) Validate(q MethodQuery) (domain.Finding, error) {
	method, err := domain.ParseMethod(q.Method)
	if err != nil {
		return domain.Finding{}, err
	}

	name := MethodFindingName(q.Path, q.Method)

	var uncovered []string
	for _, declared := range q.Path.Methods() {
		if method != domain.MethodAny && declared != method {
			uncovered = append(uncovered, string(declared))
		}
	}
	if len(uncovered) > 0 {
		return domain.Fail(domain.CheckMethod, name,
			"method '%s' declared on '%s' is not covered by mock method '%s'",
			strings.Join(uncovered, ","), q.Path.Template, q.Method), nil
	}

	return domain.Pass(domain.CheckMethod, name), nil
}

// MethodFindingName names a method finding after the first declared operation.
func MethodFindingName(item *domain.PathItem, method string) string {
	if len(item.Operations) == 0 {
		return domain.MethodName(item.Template, method)
	}
	return domain.MethodName(item.Operations[0].Identifier(item.Template), method)
}
