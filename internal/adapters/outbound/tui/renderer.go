package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/camelcase"
	"github.com/mockguard/mockguard/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	errored = lipgloss.Color("#991B1B") // dark red
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	verdictColors = map[domain.Verdict]lipgloss.Color{
		domain.VerdictPassed:  success,
		domain.VerdictWarning: warning,
		domain.VerdictFailed:  danger,
		domain.VerdictError:   errored,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	tableHeader   = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

const barWidth = 30

// Options controls console rendering.
type Options struct {
	// NoColor renders verdicts as plain words.
	NoColor bool
	// Quiet omits the banner and the summary charts.
	Quiet bool
}

// RenderResults formats a validation run as a findings table followed by
// summary and breakdown charts.
func RenderResults(res *domain.Results, opts Options) string {
	out := renderResults(res, opts.Quiet)
	if opts.NoColor {
		return ansi.Strip(out)
	}
	return out
}

func renderResults(res *domain.Results, quiet bool) string {
	var b strings.Builder

	if !quiet {
		title := headerStyle.Render("mockguard")
		subtitle := dimStyle.Render("OpenAPI / WireMock consistency")
		b.WriteString(boxStyle.Render(title + "\n" + subtitle))
		b.WriteString("\n\n")
	}

	if len(res.Findings) == 0 {
		b.WriteString("  " + dimStyle.Render("No findings.") + "\n")
	} else {
		b.WriteString(findingsTable(res.Findings))
		b.WriteString("\n")
	}

	if quiet {
		return b.String()
	}

	b.WriteString("\n")
	renderSummary(&b, res)
	renderBreakdown(&b, "Failure Type Breakdown", res.Breakdown(domain.VerdictFailed), danger)
	renderBreakdown(&b, "Warning Type Breakdown", res.Breakdown(domain.VerdictWarning), warning)

	b.WriteString("\n  " + separatorLine + "\n")
	if res.Valid() {
		b.WriteString("  " + passStyle.Render("Mocks are consistent with the contract.") + "\n")
	} else {
		b.WriteString("  " + failStyle.Render("Mocks diverge from the contract.") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func findingsTable(findings []domain.Finding) string {
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{f.Name, KindLabel(f.Kind), string(f.Verdict), f.Description})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(faintStyle).
		Headers("Name", "Check Type", "Result", "Reason").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader
			}
			if col == 2 {
				return cellStyle.Foreground(verdictColor(findings[row].Verdict)).Bold(true)
			}
			return cellStyle
		})
	return t.Render()
}

func renderSummary(b *strings.Builder, res *domain.Results) {
	b.WriteString("  " + titleStyle.Render("Test Results"))
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%d fixtures, %d findings", res.Fixtures, len(res.Findings))))
	b.WriteString("\n\n")

	total := len(res.Findings)
	for _, v := range domain.Verdicts {
		n := res.Count(v)
		renderBar(b, string(v), n, total, verdictColor(v))
	}
}

func renderBreakdown(b *strings.Builder, title string, counts []domain.KindCount, color lipgloss.Color) {
	if len(counts) == 0 {
		return
	}
	b.WriteString("\n  " + lipgloss.NewStyle().Bold(true).Foreground(color).Render(title) + "\n\n")

	peak := 0
	for _, c := range counts {
		peak = max(peak, c.Count)
	}
	for _, c := range counts {
		renderBar(b, KindLabel(c.Kind), c.Count, peak, color)
	}
}

func renderBar(b *strings.Builder, label string, n, scale int, color lipgloss.Color) {
	filled := 0
	if scale > 0 {
		filled = n * barWidth / scale
	}
	if n > 0 && filled == 0 {
		filled = 1
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	fmt.Fprintf(b, "  %s %s %d\n", padRight(label, 28), bar, n)
}

// KindLabel humanises a check kind: ResponsePropertyType becomes
// "Response Property Type".
func KindLabel(kind domain.CheckKind) string {
	return strings.Join(camelcase.Split(string(kind)), " ")
}

func verdictColor(v domain.Verdict) lipgloss.Color {
	if c, ok := verdictColors[v]; ok {
		return c
	}
	return fg
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderPaths lists the contract's paths and methods in declaration order.
func RenderPaths(c *domain.Contract) string {
	var b strings.Builder
	b.WriteString("\n")

	heading := c.Title
	if heading == "" {
		heading = "Contract"
	}
	if c.Version != "" {
		heading += " " + dimStyle.Render(c.Version)
	}
	b.WriteString("  " + titleStyle.Render(heading) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	if len(c.Paths) == 0 {
		b.WriteString("  " + dimStyle.Render("No paths declared.") + "\n")
		return b.String()
	}

	for _, p := range c.Paths {
		b.WriteString("  " + titleStyle.Render(p.Template) + "\n")
		for _, op := range p.Operations {
			fmt.Fprintf(&b, "    %s %s\n",
				lipgloss.NewStyle().Foreground(accent).Render(padRight(string(op.Method), 7)),
				dimStyle.Render(op.Identifier(p.Template)),
			)
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderHistory formats the run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		status := passStyle.Render("valid  ")
		if !e.Summary.IsValid {
			status = failStyle.Render("invalid")
		}

		problems := e.Summary.Failed + e.Summary.Error
		line := fmt.Sprintf("  %s  %s  %s  %d passed  %d warnings  %d failed  %d errors",
			dimStyle.Render(e.Timestamp.Format("2006-01-02 15:04")),
			faintStyle.Render(hash),
			status,
			e.Summary.Passed, e.Summary.Warning, e.Summary.Failed, e.Summary.Error,
		)

		if i > 0 {
			prev := entries[i-1].Summary.Failed + entries[i-1].Summary.Error
			diff := problems - prev
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
