package provision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/groundwork/internal/logging"
	"github.com/aretw0/groundwork/pkg/config"
	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/aretw0/groundwork/pkg/ports"
)

// TaskProvisionerName identifies the task provisioner in reports.
const TaskProvisionerName = "clickup"

// TaskProvisioner ensures the space exists and creates its lists.
type TaskProvisioner struct {
	cfg    *config.Config
	svc    ports.TaskService
	tasks  domain.TaskBlueprint
	logger *slog.Logger
}

// NewTaskProvisioner creates a provisioner for the given space and lists.
// svc may be nil when the task credential is absent.
func NewTaskProvisioner(cfg *config.Config, svc ports.TaskService, tasks domain.TaskBlueprint, logger *slog.Logger) *TaskProvisioner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TaskProvisioner{cfg: cfg, svc: svc, tasks: tasks, logger: logger}
}

// ResolveTeamID returns the first team visible to the token.
// The order is whatever the service returns.
func (p *TaskProvisioner) ResolveTeamID(ctx context.Context) (string, error) {
	teams, err := p.svc.ListTeams(ctx)
	if err != nil {
		return "", err
	}
	if len(teams) == 0 {
		return "", domain.ErrNoTeams
	}
	return teams[0].ID, nil
}

// EnsureSpace reuses the space whose name matches exactly, or creates it.
func (p *TaskProvisioner) EnsureSpace(ctx context.Context, teamID string) (domain.Result, error) {
	spec := p.tasks.Space
	res := domain.Result{Kind: domain.ResourceSpace, Name: spec.Name, ParentID: teamID}

	spaces, err := p.svc.ListSpaces(ctx, teamID)
	if err != nil {
		return failed(res, err), fmt.Errorf("failed to list spaces: %w", err)
	}
	for _, s := range spaces {
		if s.Name == spec.Name {
			p.logger.Info("Using Existing ClickUp Space", "name", spec.Name, "id", s.ID)
			res.ID = s.ID
			res.Status = domain.StatusReused
			return res, nil
		}
	}

	space, err := p.svc.CreateSpace(ctx, teamID, ports.SpaceRequest{
		Name:              spec.Name,
		MultipleAssignees: spec.MultipleAssignees,
		DueDates:          spec.DueDates,
	})
	if err != nil {
		return failed(res, err), fmt.Errorf("failed to create space %q: %w", spec.Name, err)
	}
	if space.ID == "" {
		err := &domain.RemoteError{Service: TaskProvisionerName, Operation: "create space", Kind: domain.KindDecode, Message: "response has no id"}
		return failed(res, err), err
	}

	p.logger.Info("Created ClickUp Space", "name", spec.Name, "id", space.ID)
	res.ID = space.ID
	res.Status = domain.StatusCreated
	return res, nil
}

// EnsureLists creates every declared list in the space, unconditionally.
// Running it twice creates every list twice. One line is logged per attempt,
// whatever the outcome; failures are only visible in the returned results.
func (p *TaskProvisioner) EnsureLists(ctx context.Context, spaceID string) []domain.Result {
	p.warnDuplicates(ctx, spaceID)

	results := make([]domain.Result, 0, len(p.tasks.Lists))
	for _, l := range p.tasks.Lists {
		res := domain.Result{Kind: domain.ResourceList, Name: l.Name, ParentID: spaceID}
		list, err := p.svc.CreateList(ctx, spaceID, l.Name)
		switch {
		case err != nil:
			p.logger.Debug("List creation returned an error", "name", l.Name, "error", err)
			res = failed(res, err)
		default:
			res.ID = list.ID
			res.Status = domain.StatusCreated
		}
		p.logger.Info("Created List", "name", l.Name)
		results = append(results, res)
	}
	return results
}

// warnDuplicates reports names that already exist in the space. It is best effort:
// a listing failure is ignored and nothing here changes which lists get created.
func (p *TaskProvisioner) warnDuplicates(ctx context.Context, spaceID string) {
	existing, err := p.svc.ListLists(ctx, spaceID)
	if err != nil {
		p.logger.Debug("Could not list existing lists", "space_id", spaceID, "error", err)
		return
	}
	names := make(map[string]bool, len(existing))
	for _, l := range existing {
		names[l.Name] = true
	}
	var dupes []string
	for _, l := range p.tasks.Lists {
		if names[l.Name] {
			dupes = append(dupes, l.Name)
		}
	}
	if len(dupes) > 0 {
		p.logger.Warn("Lists already exist in space, duplicates will be created", "space_id", spaceID, "names", dupes)
	}
}

// Provision runs the whole task workflow. Any error, and any panic raised by
// the service, is logged and reported; nothing propagates to the caller.
func (p *TaskProvisioner) Provision(ctx context.Context) (report domain.StepReport) {
	report = domain.StepReport{Provisioner: TaskProvisionerName}

	if p.cfg == nil || !p.cfg.HasClickUp() {
		p.logger.Info("Skipping ClickUp setup (No API Key)")
		return skipped(report, "no API key")
	}
	if p.tasks.Space.Name == "" {
		p.logger.Info("Skipping ClickUp setup (no space declared)")
		return skipped(report, "no space declared")
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			p.logger.Error("ClickUp Setup Error", "error", err)
			report.Outcome = domain.OutcomeFailed
			report.Err = err
		}
	}()

	if err := p.provision(ctx, &report); err != nil {
		p.logger.Error("ClickUp Setup Error", "error", err)
		report.Outcome = domain.OutcomeFailed
		report.Err = err
		return report
	}

	report.Outcome = domain.OutcomeCompleted
	if n := len(report.Failures()); n > 0 {
		report.Reason = fmt.Sprintf("%d of %d lists failed", n, len(p.tasks.Lists))
	}
	return report
}

func (p *TaskProvisioner) provision(ctx context.Context, report *domain.StepReport) error {
	teamID := p.cfg.ClickUpTeamID
	if teamID == "" {
		id, err := p.ResolveTeamID(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve team: %w", err)
		}
		teamID = id
		p.logger.Info("Using ClickUp Team", "team_id", teamID)
	}

	space, err := p.EnsureSpace(ctx, teamID)
	report.Results = append(report.Results, space)
	if err != nil {
		return err
	}

	report.Results = append(report.Results, p.EnsureLists(ctx, space.ID)...)
	return nil
}

func failed(res domain.Result, err error) domain.Result {
	res.Status = domain.StatusFailed
	res.Err = err
	return res
}
