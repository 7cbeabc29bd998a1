package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/mockguard/mockguard/internal/domain"
)

const suitePrefix = "WireMock.OpenAPI."

// JUnit writes results as JUnit XML, one test suite per check kind.
// Warnings are reported as skipped test cases.
type JUnit struct{}

type junitSuites struct {
	XMLName xml.Name     `xml:"testsuites"`
	Suites  []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name      string      `xml:"name,attr"`
	Tests     int         `xml:"tests,attr"`
	Failures  int         `xml:"failures,attr"`
	Errors    int         `xml:"errors,attr"`
	Skipped   int         `xml:"skipped,attr"`
	Timestamp string      `xml:"timestamp,attr"`
	Cases     []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *junitProblem `xml:"failure,omitempty"`
	Error     *junitProblem `xml:"error,omitempty"`
	Skipped   *junitSkipped `xml:"skipped,omitempty"`
}

type junitProblem struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}

type junitSkipped struct {
	Message string `xml:"message,attr"`
}

func (JUnit) Format(w io.Writer, res *domain.Results) error {
	stamp := res.Timestamp.UTC().Format("2006-01-02T15:04:05")
	order, groups := res.GroupByKind()

	doc := junitSuites{Suites: make([]junitSuite, 0, len(order))}
	for _, kind := range order {
		suite := junitSuite{Name: suitePrefix + string(kind), Timestamp: stamp}
		for _, f := range groups[kind] {
			suite.Cases = append(suite.Cases, junitCaseFor(f))
			suite.Tests++
			switch f.Verdict {
			case domain.VerdictFailed:
				suite.Failures++
			case domain.VerdictError:
				suite.Errors++
			case domain.VerdictWarning:
				suite.Skipped++
			}
		}
		doc.Suites = append(doc.Suites, suite)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding junit report: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func junitCaseFor(f domain.Finding) junitCase {
	c := junitCase{Name: f.Name, ClassName: suitePrefix + string(f.Kind)}
	switch f.Verdict {
	case domain.VerdictFailed:
		c.Failure = &junitProblem{Message: f.Description, Type: "ValidationFailure", Text: f.Description}
	case domain.VerdictError:
		c.Error = &junitProblem{Message: f.Description, Type: "ValidationError", Text: f.Description}
	case domain.VerdictWarning:
		c.Skipped = &junitSkipped{Message: f.Description}
	}
	return c
}
