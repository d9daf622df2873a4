/*
Package groundwork provisions a workspace skeleton in two services in one pass:
a page hierarchy in Notion and a space with lists in ClickUp.

# Concept

A run is a fixed sequence. The credential gate aborts only when neither
service has a credential. The document provisioner then creates the page tree
under an existing anchor page, depth-first; a page that fails takes its subtree
with it while its siblings are still attempted. Finally the task provisioner
resolves a team, reuses or creates the space, and creates every list.

Failures are logged and collected in a domain.Report; they never abort the
run and never surface as an error from Run. Lists are created on every run, so
running twice duplicates them.

# Usage

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	eng, err := groundwork.New(cfg, groundwork.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	report, err := eng.Run(ctx)

The structure comes from a blueprint (see package blueprint). Services,
metrics and a distributed run lock are injected with functional options.
*/
package groundwork
