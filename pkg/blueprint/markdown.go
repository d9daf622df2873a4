package blueprint

import (
	"fmt"
	"strings"

	"github.com/aretw0/groundwork/pkg/domain"
)

// Markdown renders the blueprint as a human readable plan.
// The output is plain CommonMark so it can be piped, diffed or styled by a terminal renderer.
func Markdown(bp domain.Blueprint) string {
	var sb strings.Builder
	sb.WriteString("# Provisioning plan\n\n")

	sb.WriteString("## Document workspace\n\n")
	if bp.Document.Root.Title == "" {
		sb.WriteString("_No pages declared._\n")
	} else {
		fmt.Fprintf(&sb, "%d pages, created under the root anchor page:\n\n", bp.Document.Root.Count())
		writePage(&sb, bp.Document.Root, 0)
	}

	sb.WriteString("\n## Task workspace\n\n")
	space := bp.Tasks.Space
	if space.Name == "" {
		sb.WriteString("_No space declared._\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Space **%s** is reused when a space with that exact name exists, otherwise it is created", space.Name)
	var features []string
	if space.MultipleAssignees {
		features = append(features, "multiple assignees")
	}
	if space.DueDates {
		features = append(features, "due dates")
	}
	if len(features) > 0 {
		fmt.Fprintf(&sb, " with %s", strings.Join(features, " and "))
	}
	sb.WriteString(".\n")

	if len(bp.Tasks.Lists) > 0 {
		sb.WriteString("\nLists, created on every run:\n\n")
		for i, l := range bp.Tasks.Lists {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, l.Name)
		}
	}
	return sb.String()
}

func writePage(sb *strings.Builder, p domain.PageSpec, depth int) {
	fmt.Fprintf(sb, "%s- %s\n", strings.Repeat("  ", depth), p.Title)
	for _, c := range p.Children {
		writePage(sb, c, depth+1)
	}
}
