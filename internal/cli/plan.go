package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/groundwork/internal/presentation/graph"
	"github.com/aretw0/groundwork/internal/presentation/tui"
	"github.com/aretw0/groundwork/pkg/blueprint"
)

// Plan output formats.
const (
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
)

// PlanOptions configures the plan command.
type PlanOptions struct {
	BlueprintPath string
	Format        string // FormatMarkdown (default) or FormatMermaid
	Raw           bool   // never style the output
}

// RunPlan prints what a run would create. Markdown is styled with glamour
// when out is a terminal and Raw is false.
func RunPlan(out io.Writer, opts PlanOptions) error {
	bp, err := blueprint.Load(opts.BlueprintPath)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "", FormatMarkdown:
	case FormatMermaid:
		_, err := io.WriteString(out, graph.GenerateMermaid(bp, nil))
		return err
	default:
		return fmt.Errorf("unknown plan format %q (want %s or %s)", opts.Format, FormatMarkdown, FormatMermaid)
	}

	md := blueprint.Markdown(bp)
	if opts.Raw || !tui.IsTerminal(out) {
		_, err := io.WriteString(out, md)
		return err
	}

	render, err := tui.NewRenderer(tui.Width(out))
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	styled, err := render(md)
	if err != nil {
		return fmt.Errorf("rendering plan: %w", err)
	}
	_, err = io.WriteString(out, styled)
	return err
}
