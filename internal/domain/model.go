package domain

import (
	"fmt"
	"time"
)

// Verdict is the outcome of a single consistency check.
type Verdict string

const (
	VerdictPassed  Verdict = "Passed"
	VerdictWarning Verdict = "Warning"
	VerdictFailed  Verdict = "Failed"
	VerdictError   Verdict = "Error"
)

// Verdicts lists every verdict in severity order.
var Verdicts = []Verdict{VerdictPassed, VerdictWarning, VerdictFailed, VerdictError}

// CheckKind identifies which dimension of the contract a finding covers.
type CheckKind string

const (
	CheckURLMatch                 CheckKind = "UrlMatch"
	CheckMethod                   CheckKind = "Method"
	CheckParamRequired            CheckKind = "ParamRequired"
	CheckParamType                CheckKind = "ParamType"
	CheckResponsePropertyRequired CheckKind = "ResponsePropertyRequired"
	CheckResponsePropertyType     CheckKind = "ResponsePropertyType"
)

// CheckKinds enumerates all check kinds in pipeline order.
var CheckKinds = []CheckKind{
	CheckURLMatch,
	CheckMethod,
	CheckParamRequired,
	CheckParamType,
	CheckResponsePropertyRequired,
	CheckResponsePropertyType,
}

// ParseCheckKind resolves a check kind by its exact name.
func ParseCheckKind(s string) (CheckKind, error) {
	for _, k := range CheckKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown check kind %q", s)
}

// Finding is one verdict record produced by a validator.
type Finding struct {
	Name        string    `json:"name"`
	Kind        CheckKind `json:"checkKind"`
	Verdict     Verdict   `json:"result"`
	Description string    `json:"description"`
	Fixture     string    `json:"fixture,omitempty"`
}

// IsZero reports whether f is the empty no-op finding.
func (f Finding) IsZero() bool {
	return f.Kind == "" && f.Verdict == "" && f.Name == ""
}

func Pass(kind CheckKind, name string) Finding {
	return Finding{Name: name, Kind: kind, Verdict: VerdictPassed}
}

func Warn(kind CheckKind, name, format string, args ...any) Finding {
	return Finding{Name: name, Kind: kind, Verdict: VerdictWarning, Description: fmt.Sprintf(format, args...)}
}

func Fail(kind CheckKind, name, format string, args ...any) Finding {
	return Finding{Name: name, Kind: kind, Verdict: VerdictFailed, Description: fmt.Sprintf(format, args...)}
}

func Errored(kind CheckKind, name, format string, args ...any) Finding {
	return Finding{Name: name, Kind: kind, Verdict: VerdictError, Description: fmt.Sprintf(format, args...)}
}

// RequestName builds the finding name for a request parameter check.
func RequestName(operation, param string) string {
	return fmt.Sprintf("Request - %s - %s", operation, param)
}

// ResponseName builds the finding name for a response property check.
func ResponseName(operation, property string) string {
	return fmt.Sprintf("Response - %s - %s", operation, property)
}

// MethodName builds the finding name for an HTTP method check.
func MethodName(operation, method string) string {
	return fmt.Sprintf("%s - %s", operation, method)
}

// Results is the ordered result set of one validation run.
type Results struct {
	Findings   []Finding `json:"results"`
	Fixtures   int       `json:"fixtures"`
	CommitHash string    `json:"commit_hash,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Add appends findings, dropping empty no-op findings.
func (r *Results) Add(findings ...Finding) {
	for _, f := range findings {
		if f.IsZero() {
			continue
		}
		r.Findings = append(r.Findings, f)
	}
}

// Count returns the number of findings with the given verdict.
func (r *Results) Count(v Verdict) int {
	n := 0
	for _, f := range r.Findings {
		if f.Verdict == v {
			n++
		}
	}
	return n
}

// Valid reports whether the run has no Failed and no Error findings.
// Warnings are advisory.
func (r *Results) Valid() bool {
	return r.Count(VerdictFailed) == 0 && r.Count(VerdictError) == 0
}

// GateFailed reports whether the run should fail a build. In strict mode
// warnings fail the gate too.
func (r *Results) GateFailed(strict bool) bool {
	if !r.Valid() {
		return true
	}
	return strict && r.Count(VerdictWarning) > 0
}

// Without returns a copy of r with findings of the given kinds removed.
func (r *Results) Without(kinds ...CheckKind) *Results {
	out := *r
	if len(kinds) == 0 {
		return &out
	}
	skip := make(map[CheckKind]bool, len(kinds))
	for _, k := range kinds {
		skip[k] = true
	}
	out.Findings = nil
	for _, f := range r.Findings {
		if !skip[f.Kind] {
			out.Findings = append(out.Findings, f)
		}
	}
	return &out
}

// KindCount is the number of findings of one check kind.
type KindCount struct {
	Kind  CheckKind `json:"check_kind"`
	Count int       `json:"count"`
}

// Breakdown counts findings with verdict v per check kind, in first-seen order.
func (r *Results) Breakdown(v Verdict) []KindCount {
	var out []KindCount
	index := make(map[CheckKind]int)
	for _, f := range r.Findings {
		if f.Verdict != v {
			continue
		}
		i, ok := index[f.Kind]
		if !ok {
			i = len(out)
			index[f.Kind] = i
			out = append(out, KindCount{Kind: f.Kind})
		}
		out[i].Count++
	}
	return out
}

// GroupByKind returns findings grouped by check kind in first-seen order.
func (r *Results) GroupByKind() ([]CheckKind, map[CheckKind][]Finding) {
	var order []CheckKind
	groups := make(map[CheckKind][]Finding)
	for _, f := range r.Findings {
		if _, ok := groups[f.Kind]; !ok {
			order = append(order, f.Kind)
		}
		groups[f.Kind] = append(groups[f.Kind], f)
	}
	return order, groups
}

// Summary holds verdict totals for a run.
type Summary struct {
	Total   int  `json:"total"`
	Passed  int  `json:"passed"`
	Warning int  `json:"warning"`
	Failed  int  `json:"failed"`
	Error   int  `json:"error"`
	IsValid bool `json:"isValid"`
}

func (r *Results) Summary() Summary {
	return Summary{
		Total:   len(r.Findings),
		Passed:  r.Count(VerdictPassed),
		Warning: r.Count(VerdictWarning),
		Failed:  r.Count(VerdictFailed),
		Error:   r.Count(VerdictError),
		IsValid: r.Valid(),
	}
}
