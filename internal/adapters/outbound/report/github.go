package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mockguard/mockguard/internal/domain"
)

// GitHub writes results as GitHub Actions workflow commands so each finding
// shows up as an annotation on the run.
type GitHub struct{}

var annotationEscaper = strings.NewReplacer(
	"%", "%25",
	"\r", "%0D",
	"\n", "%0A",
	":", "%3A",
	",", "%2C",
)

func (GitHub) Format(w io.Writer, res *domain.Results) error {
	bw := bufio.NewWriter(w)
	s := res.Summary()

	summary := fmt.Sprintf("OpenAPI Validation: %d checks - %d passed, %d warnings, %d failed, %d errors",
		s.Total, s.Passed, s.Warning, s.Failed, s.Error)
	fmt.Fprintf(bw, "::notice title=Validation Summary::%s\n\n", summary)

	for _, f := range res.Findings {
		title := escapeAnnotation(fmt.Sprintf("%s: %s", f.Kind, f.Name))
		fmt.Fprintf(bw, "::%s title=%s::%s\n", annotationLevel(f.Verdict), title, escapeAnnotation(f.Description))
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "## Validation Statistics")
	fmt.Fprintf(bw, "- Passed: %d\n", s.Passed)
	fmt.Fprintf(bw, "- Warning: %d\n", s.Warning)
	fmt.Fprintf(bw, "- Failed: %d\n", s.Failed)
	fmt.Fprintf(bw, "- Error: %d\n", s.Error)

	return bw.Flush()
}

func annotationLevel(v domain.Verdict) string {
	switch v {
	case domain.VerdictFailed, domain.VerdictError:
		return "error"
	case domain.VerdictWarning:
		return "warning"
	default:
		return "notice"
	}
}

func escapeAnnotation(s string) string {
	return annotationEscaper.Replace(s)
}
