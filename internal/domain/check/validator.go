// Package check holds the per-dimension consistency checks between a mock
// fixture and the API contract, and the pipeline that sequences them.
package check

import (
	"errors"

	"github.com/mockguard/mockguard/internal/domain"
)

// Validator checks one dimension of a fixture against the contract.
type Validator[In, Out any] interface {
	Validate(in In) (Out, error)
}

// errorFinding turns a validator failure into an Error finding so that one
// unsupported contract value cannot abort the run.
func errorFinding(kind domain.CheckKind, name string, err error) domain.Finding {
	var ue *domain.UnsupportedError
	if errors.As(err, &ue) {
		return domain.Errored(kind, name, "%s", ue.Error())
	}
	return domain.Errored(kind, name, "check failed: %v", err)
}

// absent reports a declared parameter or property the mock does not supply.
func absent(kind domain.CheckKind, name, property string, required bool) domain.Finding {
	if required {
		return domain.Fail(kind, name, "required property '%s' not present in mock", property)
	}
	return domain.Warn(kind, name, "optional property '%s' not present in mock", property)
}
