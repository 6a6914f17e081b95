package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tsplit/internal/domain"
)

// PlanViewer displays a plan in an interactive TUI: nodes on the left,
// the selected node's tests on the right.
type PlanViewer struct{}

// NewPlanViewer creates a new PlanViewer
func NewPlanViewer() *PlanViewer {
	return &PlanViewer{}
}

// View displays the plan until the user quits
func (pv *PlanViewer) View(report *domain.PlanReport) error {
	if len(report.Nodes) == 0 {
		color.Yellow("Plan has no nodes")
		return nil
	}

	app := tview.NewApplication()

	// Create list for nodes (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for _, node := range report.Nodes {
		list.AddItem(pv.nodeItemText(report, node), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Plan: %d node(s), %s, %d identifier(s) | ↑↓ to navigate, → to scroll tests, ← to go back, q to exit ",
			report.Meta.Nodes, report.Meta.Algorithm, report.Meta.Identifiers))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(report.Nodes) {
			return
		}
		node := report.Nodes[index]
		statsView.SetText(pv.formatNodeStats(report, node))
		detailsView.SetText(pv.formatNodeTests(node)).ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' || event.Rune() == 'Q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (pv *PlanViewer) nodeItemText(report *domain.PlanReport, node domain.NodePlan) string {
	if report.Meta.DataSource != "" {
		return fmt.Sprintf("[yellow]%d.[white] %d test(s) [gray]%.1fs[white]", node.Node, len(node.Tests), node.Load)
	}
	return fmt.Sprintf("[yellow]%d.[white] %d test(s)", node.Node, len(node.Tests))
}

// formatNodeStats formats the stats header for a node
func (pv *PlanViewer) formatNodeStats(report *domain.PlanReport, node domain.NodePlan) string {
	hashed := 0
	for _, t := range node.Tests {
		if t.Source == "hash" {
			hashed++
		}
	}
	line := fmt.Sprintf("[cyan]node:[white] [yellow]%d[white] of %d  [cyan]tests:[white] %d  [cyan]hash placed:[white] %d",
		node.Node, report.Meta.Nodes, len(node.Tests), hashed)
	if report.Meta.DataSource != "" {
		line += fmt.Sprintf("  [cyan]load:[white] %.2fs / makespan %.2fs", node.Load, report.Meta.Makespan)
	}
	return line + "\n"
}

// formatNodeTests lists a node's tests using tview color tags
func (pv *PlanViewer) formatNodeTests(node domain.NodePlan) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	for _, t := range node.Tests {
		switch {
		case t.Source == "hash":
			fmt.Fprintf(w, "%s\t[gray]hash[white]\n", tview.Escape(t.Identifier))
		case t.Duration > 0:
			fmt.Fprintf(w, "%s\t[green]%.2fs[white]\n", tview.Escape(t.Identifier), t.Duration)
		default:
			fmt.Fprintf(w, "%s\t\n", tview.Escape(t.Identifier))
		}
	}
	w.Flush()
	return builder.String()
}
