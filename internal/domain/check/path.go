package check

import (
	"regexp"

	"github.com/mockguard/mockguard/internal/domain"
)

// PathQuery pairs the contract's declared paths with a mock URL pattern.
type PathQuery struct {
	Paths   []domain.PathItem
	Pattern string
}

// PathMatch is the outcome of path resolution. Item is nil when the fixture
// must not be checked any further.
type PathMatch struct {
	Finding domain.Finding
	Item    *domain.PathItem
}

func (m PathMatch) Matched() bool { return m.Item != nil }

// PathMatcher resolves a mock URL pattern to the first declared path whose
// template the pattern matches. No attempt is made to pick the most specific
// candidate.
type PathMatcher struct{}

func (PathMatcher) Validate(q PathQuery) (PathMatch, error) {
	if q.Pattern == "" {
		return PathMatch{Finding: domain.Fail(domain.CheckURLMatch, q.Pattern, "mock declares no url pattern")}, nil
	}

	re, err := regexp.Compile(q.Pattern)
	if err != nil {
		return PathMatch{Finding: domain.Errored(domain.CheckURLMatch, q.Pattern, "invalid url pattern '%s': %v", q.Pattern, err)}, nil
	}

	for i := range q.Paths {
		if re.MatchString(q.Paths[i].Template) {
			return PathMatch{Finding: domain.Pass(domain.CheckURLMatch, q.Pattern), Item: &q.Paths[i]}, nil
		}
	}

	return PathMatch{Finding: domain.Fail(domain.CheckURLMatch, q.Pattern, "no contract path matches pattern '%s'", q.Pattern)}, nil
}
