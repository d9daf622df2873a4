package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/groundwork/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of what a blueprint provisions.
// Shapes:
// - Anchor page: ((Circle))
// - Page: [Rectangle]
// - Space: [[Subroutine]]
// - List: [/Parallelogram/]
// When report is not nil, each resource is styled with the status it reached.
func GenerateMermaid(bp domain.Blueprint, report *domain.Report) string {
	g := &generator{}
	g.sb.WriteString("graph TD\n")

	if root := bp.Document.Root; root.Title != "" {
		g.line("    anchor((\"Notion anchor\"))")
		g.page(root, "anchor")
	}
	if space := bp.Tasks.Space; space.Name != "" {
		g.line("    team((\"ClickUp team\"))")
		spaceID := g.next("s")
		g.line("    %s[[\"%s\"]]", spaceID, escapeLabel(space.Name))
		g.line("    team --> %s", spaceID)
		g.tasks = append(g.tasks, spaceID)
		for _, l := range bp.Tasks.Lists {
			id := g.next("l")
			g.line("    %s[/\"%s\"/]", id, escapeLabel(l.Name))
			g.line("    %s --> %s", spaceID, id)
			g.tasks = append(g.tasks, id)
		}
	}

	if report != nil {
		g.overlay(report)
	}
	return g.sb.String()
}

type generator struct {
	sb    strings.Builder
	seq   int
	pages []string // node ids, depth-first
	tasks []string // space then lists
}

func (g *generator) next(prefix string) string {
	g.seq++
	return fmt.Sprintf("%s%d", prefix, g.seq)
}

func (g *generator) line(format string, args ...any) {
	fmt.Fprintf(&g.sb, format, args...)
	g.sb.WriteByte('\n')
}

func (g *generator) page(p domain.PageSpec, parent string) {
	id := g.next("p")
	g.pages = append(g.pages, id)
	g.line("    %s[\"%s\"]", id, escapeLabel(p.Title))
	g.line("    %s --> %s", parent, id)
	for _, c := range p.Children {
		g.page(c, id)
	}
}

// overlay styles nodes from a run report. Results are recorded depth-first,
// the same order the nodes were generated in; a step whose result count
// does not match is left unstyled.
func (g *generator) overlay(r *domain.Report) {
	g.sb.WriteString("\n    %% Run Overlay\n")
	// Force black text (color:#000) for contrast on both light and dark themes
	g.sb.WriteString("    classDef created fill:#dcfce7,stroke:#15803d,stroke-width:2px,color:#000;\n")
	g.sb.WriteString("    classDef reused fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	g.sb.WriteString("    classDef failed fill:#fee2e2,stroke:#b91c1c,stroke-width:4px,color:#000;\n")
	g.sb.WriteString("    classDef skipped fill:#f3f4f6,stroke:#9ca3af,stroke-dasharray:4,color:#000;\n")

	g.classify(g.pages, r.Documents.Results)
	g.classify(g.tasks, r.Tasks.Results)
}

func (g *generator) classify(ids []string, results []domain.Result) {
	if len(ids) != len(results) {
		return
	}
	for i, res := range results {
		if res.Status == "" {
			continue
		}
		g.line("    class %s %s;", ids[i], res.Status)
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
