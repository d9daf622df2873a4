package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/groundwork"
	"github.com/aretw0/groundwork/internal/presentation/graph"
	"github.com/aretw0/groundwork/internal/presentation/tui"
	"github.com/aretw0/groundwork/pkg/adapters/memory"
	"github.com/aretw0/groundwork/pkg/adapters/redis"
	"github.com/aretw0/groundwork/pkg/adapters/sandbox"
	"github.com/aretw0/groundwork/pkg/blueprint"
	"github.com/aretw0/groundwork/pkg/config"
	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/aretw0/groundwork/pkg/observability"
)

// LockPrefix namespaces the run lock in Redis.
const LockPrefix = "groundwork:"

// RunOptions contains all the configuration for the run command.
// Empty fields fall back to the environment.
type RunOptions struct {
	BlueprintPath string
	SandboxURL    string
	RedisURL      string
	MetricsFile   string
	GraphFile     string // Mermaid chart of the run, styled by outcome
	DryRun        bool   // provision into an in-memory workspace
	Debug         bool
	Quiet         bool // no banner
}

// Execute performs one provisioning run. It returns an error only for
// invalid invocation or infrastructure problems; provisioning failures are
// logged and reflected in the report.
func Execute(ctx context.Context, cfg config.Config, opts RunOptions, out io.Writer, logger *slog.Logger) (*domain.Report, error) {
	if opts.BlueprintPath == "" {
		opts.BlueprintPath = cfg.BlueprintPath
	}
	if opts.RedisURL == "" {
		opts.RedisURL = cfg.RedisURL
	}
	if opts.DryRun && opts.SandboxURL != "" {
		return nil, fmt.Errorf("--dry-run and --sandbox cannot be used together")
	}
	if opts.SandboxURL != "" {
		cfg = cfg.WithSandbox(opts.SandboxURL, sandbox.DefaultRootID)
	}

	bp, err := blueprint.Load(opts.BlueprintPath)
	if err != nil {
		return nil, err
	}

	if !opts.Quiet && tui.IsTerminal(out) {
		tui.PrintBanner(out, strings.TrimSpace(groundwork.Version))
	}

	engineOpts := []groundwork.Option{
		groundwork.WithLogger(logger),
		groundwork.WithBlueprint(bp),
	}

	if opts.DryRun {
		// The in-memory workspace only knows its own team.
		cfg.ClickUpTeamID = ""
		ws := memory.NewWorkspace()
		engineOpts = append(engineOpts, groundwork.WithDocumentService(ws), groundwork.WithTaskService(ws))
	}

	var metrics *observability.Metrics
	if opts.MetricsFile != "" {
		metrics = observability.NewMetrics()
		engineOpts = append(engineOpts, groundwork.WithMetrics(metrics))
	}

	if opts.RedisURL != "" {
		locker, client, err := redis.NewLockerFromURL(opts.RedisURL, LockPrefix)
		if err != nil {
			return nil, err
		}
		defer client.Close()
		engineOpts = append(engineOpts, groundwork.WithLocker(locker))
	}

	eng, err := groundwork.New(cfg, engineOpts...)
	if err != nil {
		return nil, err
	}

	report, err := eng.Run(ctx)
	if err != nil {
		return nil, err
	}

	if report.Gate != domain.OutcomeAborted {
		logger.Debug("Run finished",
			"notion", report.Documents.Outcome,
			"clickup", report.Tasks.Outcome)
	}

	if opts.GraphFile != "" {
		chart := graph.GenerateMermaid(bp, report)
		if err := os.WriteFile(opts.GraphFile, []byte(chart), 0o644); err != nil {
			logger.Warn("Failed to write run graph", "path", opts.GraphFile, "error", err)
		}
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics", "path", opts.MetricsFile, "error", err)
		}
	}
	return report, nil
}

// Summary is a one-line description of a report, used by non-logging callers.
func Summary(r *domain.Report) string {
	if r.Gate == domain.OutcomeAborted {
		return "aborted: no credentials"
	}
	return fmt.Sprintf("notion %s (%s), clickup %s (%s)",
		r.Documents.Outcome, describe(r.Documents),
		r.Tasks.Outcome, describe(r.Tasks))
}

func describe(s domain.StepReport) string {
	if s.Outcome == domain.OutcomeSkipped {
		return s.Reason
	}
	return fmt.Sprintf("%d created, %d reused, %d failed, %d skipped",
		s.Count(domain.StatusCreated), s.Count(domain.StatusReused),
		s.Count(domain.StatusFailed), s.Count(domain.StatusSkipped))
}
