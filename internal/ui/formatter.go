package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"tsplit/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter() *Formatter {
	return &Formatter{out: color.Output}
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	if w == nil {
		w = os.Stdout
	}
	return &Formatter{out: w}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// PrintTestList prints discovered tests grouped by package. ids holds the
// identifier each test resolves to.
func (f *Formatter) PrintTestList(tests []domain.TestItem, ids []string) error {
	byPackage := make(map[string][]int)
	var packages []string
	for i, t := range tests {
		if _, ok := byPackage[t.Package]; !ok {
			packages = append(packages, t.Package)
		}
		byPackage[t.Package] = append(byPackage[t.Package], i)
	}
	sort.Strings(packages)

	for _, pkg := range packages {
		cyan.Fprintf(f.out, "%s\n", pkg)
		idx := byPackage[pkg]
		for n, i := range idx {
			connector := "  |_"
			if n == len(idx)-1 {
				connector = "   |_"
			}
			fmt.Fprintf(f.out, "%s %s", connector, tests[i].DisplayName())
			if i < len(ids) && ids[i] != "" {
				white.Fprintf(f.out, "  [%s]", ids[i])
			}
			fmt.Fprintln(f.out)
		}
	}

	fmt.Fprintln(f.out)
	green.Fprintf(f.out, "✓ Found %d test(s) in %d package(s)\n", len(tests), len(packages))
	return nil
}

// Selected is one test chosen for this node
type Selected struct {
	Identifier string          `json:"identifier"`
	Test       domain.TestItem `json:"test"`
}

// PrintSelection prints the tests chosen for this node in format
// "names" (one identifier per line, unique) or "json".
func (f *Formatter) PrintSelection(selected []Selected, format string) error {
	switch format {
	case "", "names":
		seen := make(map[string]bool)
		for _, s := range selected {
			if seen[s.Identifier] {
				continue
			}
			seen[s.Identifier] = true
			fmt.Fprintln(f.out, s.Identifier)
		}
		return nil
	case "json":
		if selected == nil {
			selected = []Selected{}
		}
		enc := json.NewEncoder(f.out)
		enc.SetIndent("", "  ")
		return enc.Encode(selected)
	default:
		return fmt.Errorf("unknown format %q (want names or json)", format)
	}
}

// PrintPlan prints a per-node table of the plan
func (f *Formatter) PrintPlan(report *domain.PlanReport) error {
	meta := report.Meta

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                       Partition Plan                          ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Algorithm", meta.Algorithm, white)
	f.row("Nodes", fmt.Sprint(meta.Nodes), white)
	f.row("Hash By Class", fmt.Sprint(meta.HashByClass), white)
	f.row("Tests", fmt.Sprint(meta.TotalTests), white)
	f.row("Identifiers", fmt.Sprint(meta.Identifiers), white)
	if meta.DataSource != "" {
		f.row("Uncovered By Data", fmt.Sprint(meta.UncoveredByData), yellow)
		f.row("Makespan", fmt.Sprintf("%.2fs", meta.Makespan), green)
		if meta.RoundRobinSpan > 0 {
			f.row("Round-Robin Makespan", fmt.Sprintf("%.2fs", meta.RoundRobinSpan), red)
		}
	}
	fmt.Fprintf(f.out, "│ %-31s │ ", "Timestamp")
	white.Fprintf(f.out, "%-27s │\n", meta.Timestamp)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")
	fmt.Fprintln(f.out)

	for _, node := range report.Nodes {
		header := fmt.Sprintf("Node %d: %d identifier(s)", node.Node, len(node.Tests))
		if meta.DataSource != "" {
			header += fmt.Sprintf(", load %.2fs", node.Load)
		}
		cyan.Fprintln(f.out, header)
		for _, t := range node.Tests {
			fmt.Fprintf(f.out, "  |_ %s", t.Identifier)
			if t.Source == "hash" && meta.DataSource != "" {
				yellow.Fprint(f.out, "  (hash)")
			} else if t.Duration > 0 {
				white.Fprintf(f.out, "  %.2fs", t.Duration)
			}
			fmt.Fprintln(f.out)
		}
	}
	return nil
}

func (f *Formatter) row(label, value string, c *color.Color) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, "%-27s │\n", value)
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
}

// PrintDisabled explains that partitioning is off
func (f *Formatter) PrintDisabled(reason string) {
	msg := "Partitioning disabled: every node runs every test"
	if reason != "" {
		msg += " (" + strings.TrimSpace(reason) + ")"
	}
	yellow.Fprintln(f.out, msg)
}
