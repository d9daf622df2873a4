package groundwork

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/groundwork/pkg/adapters/clickup"
	"github.com/aretw0/groundwork/pkg/adapters/notion"
	"github.com/aretw0/groundwork/pkg/blueprint"
	"github.com/aretw0/groundwork/pkg/config"
	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/aretw0/groundwork/pkg/observability"
	"github.com/aretw0/groundwork/pkg/ports"
	"github.com/aretw0/groundwork/pkg/provision"
)

// LockKey names the run lock shared by every groundwork process.
const LockKey = "provision"

// DefaultLockTTL bounds how long a crashed run can hold the lock.
const DefaultLockTTL = 5 * time.Minute

// Engine runs one provisioning pass: credential gate, document tree, then task workspace.
type Engine struct {
	cfg          config.Config
	blueprint    domain.Blueprint
	hasBlueprint bool
	documents    ports.DocumentService
	tasks        ports.TaskService
	metrics      *observability.Metrics
	locker       ports.DistributedLocker
	lockTTL      time.Duration
	logger       *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger every provisioner writes to.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithBlueprint replaces the built-in structure definitions.
func WithBlueprint(bp domain.Blueprint) Option {
	return func(e *Engine) {
		e.blueprint = bp
		e.hasBlueprint = true
	}
}

// WithDocumentService injects the document workspace client instead of the Notion REST client.
func WithDocumentService(svc ports.DocumentService) Option {
	return func(e *Engine) {
		e.documents = svc
	}
}

// WithTaskService injects the task workspace client instead of the ClickUp REST client.
func WithTaskService(svc ports.TaskService) Option {
	return func(e *Engine) {
		e.tasks = svc
	}
}

// WithMetrics records every remote call and the final report.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLocker serializes runs through a distributed lock.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.lockTTL = ttl
	}
}

// New builds an Engine for cfg. REST clients are created only for the
// workspaces whose credential is present and no service was injected.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	eng := &Engine{cfg: cfg, lockTTL: DefaultLockTTL}
	for _, opt := range opts {
		opt(eng)
	}

	if !eng.hasBlueprint {
		eng.blueprint = blueprint.Default()
	}
	if err := blueprint.Validate(eng.blueprint); err != nil {
		return nil, err
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.DiscardHandler)
	}

	if eng.documents == nil && cfg.HasNotion() {
		eng.documents = notion.New(cfg.NotionBaseURL, cfg.NotionAPIKey, cfg.NotionVersion)
	}
	if eng.tasks == nil && cfg.HasClickUp() {
		eng.tasks = clickup.New(cfg.ClickUpBaseURL, cfg.ClickUpAPIKey)
	}
	eng.documents = observability.InstrumentDocuments(eng.documents, notion.Service, eng.metrics)
	eng.tasks = observability.InstrumentTasks(eng.tasks, clickup.Service, eng.metrics)

	return eng, nil
}

// Blueprint returns the structure definitions the engine provisions.
func (e *Engine) Blueprint() domain.Blueprint {
	return e.blueprint
}

// Run executes the gate and both provisioners. Provisioning failures are
// reported, never returned: the error is only set when the run lock cannot
// be acquired.
func (e *Engine) Run(ctx context.Context) (*domain.Report, error) {
	report := &domain.Report{
		Gate:      domain.OutcomeCompleted,
		Documents: domain.StepReport{Provisioner: provision.DocumentProvisionerName, Outcome: domain.OutcomeSkipped},
		Tasks:     domain.StepReport{Provisioner: provision.TaskProvisionerName, Outcome: domain.OutcomeSkipped},
	}

	if err := provision.CheckCredentials(&e.cfg); err != nil {
		e.logger.Error("Error: Missing API keys. Set NOTION_API_KEY and CLICKUP_API_KEY.")
		report.Gate = domain.OutcomeAborted
		report.Documents.Reason = "run aborted"
		report.Documents.Err = err
		report.Tasks.Reason = "run aborted"
		report.Tasks.Err = err
		e.metrics.ObserveReport(report)
		return report, nil
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, LockKey, e.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquiring run lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("Failed to release run lock", "err", err)
			}
		}()
	}

	docs := provision.NewDocumentProvisioner(&e.cfg, e.documents, e.blueprint.Document.Root, e.logger)
	report.Documents = docs.Provision(ctx)

	tasks := provision.NewTaskProvisioner(&e.cfg, e.tasks, e.blueprint.Tasks, e.logger)
	report.Tasks = tasks.Provision(ctx)

	e.metrics.ObserveReport(report)
	return report, nil
}
