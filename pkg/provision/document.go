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

// DocumentProvisionerName identifies the document provisioner in reports.
const DocumentProvisionerName = "notion"

// DocumentProvisioner creates the page tree under the configured root anchor.
type DocumentProvisioner struct {
	cfg    *config.Config
	svc    ports.DocumentService
	root   domain.PageSpec
	logger *slog.Logger
}

// NewDocumentProvisioner creates a provisioner for the given page tree.
// svc may be nil when the document credential is absent.
func NewDocumentProvisioner(cfg *config.Config, svc ports.DocumentService, root domain.PageSpec, logger *slog.Logger) *DocumentProvisioner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &DocumentProvisioner{cfg: cfg, svc: svc, root: root, logger: logger}
}

// CreateNode creates one page under parentID.
// With no parentID the call is skipped without contacting the service.
// A failed call is logged and returned as a Result carrying the error; it never panics or aborts.
func (p *DocumentProvisioner) CreateNode(ctx context.Context, title, parentID string, children ...map[string]any) domain.Result {
	res := domain.Result{Kind: domain.ResourcePage, Name: title, ParentID: parentID}

	if parentID == "" {
		p.logger.Info("Skipping Notion creation: no parent page", "title", title)
		res.Status = domain.StatusSkipped
		res.Err = domain.ErrMissingParent
		return res
	}

	id, err := p.svc.CreatePage(ctx, ports.PageRequest{ParentID: parentID, Title: title, Children: children})
	if err == nil && id == "" {
		err = &domain.RemoteError{Service: DocumentProvisionerName, Operation: "create page", Kind: domain.KindDecode, Message: "response has no id"}
	}
	if err != nil {
		p.logger.Error("Failed to create Notion page", "title", title, "error", err)
		res.Status = domain.StatusFailed
		res.Err = err
		return res
	}

	p.logger.Info("Created Notion page", "title", title, "id", id)
	res.ID = id
	res.Status = domain.StatusCreated
	return res
}

// Provision creates the whole tree. It never returns an error: every problem
// is folded into the report.
func (p *DocumentProvisioner) Provision(ctx context.Context) domain.StepReport {
	report := domain.StepReport{Provisioner: DocumentProvisionerName}

	switch {
	case p.cfg == nil || !p.cfg.HasNotion():
		p.logger.Info("Skipping Notion setup (No API Key)")
		return skipped(report, "no API key")
	case p.cfg.NotionRootPageID == "":
		p.logger.Info("Skipping Notion setup (No NOTION_ROOT_PAGE_ID)")
		return skipped(report, "no root page id")
	case p.root.Title == "":
		p.logger.Info("Skipping Notion setup (no pages declared)")
		return skipped(report, "no pages declared")
	}

	rootRes := p.CreateNode(ctx, p.root.Title, p.cfg.NotionRootPageID)
	report.Results = append(report.Results, rootRes)
	if !rootRes.OK() {
		report.Outcome = domain.OutcomeFailed
		report.Reason = "root page could not be created"
		report.Err = rootRes.Err
		report.Results = append(report.Results, pruned(p.root.Children)...)
		return report
	}

	p.createChildren(ctx, p.root.Children, rootRes.ID, &report)

	report.Outcome = domain.OutcomeCompleted
	if n := len(report.Failures()); n > 0 {
		report.Reason = fmt.Sprintf("%d of %d pages failed", n, p.root.Count())
	}
	return report
}

func (p *DocumentProvisioner) createChildren(ctx context.Context, children []domain.PageSpec, parentID string, report *domain.StepReport) {
	for _, child := range children {
		res := p.CreateNode(ctx, child.Title, parentID)
		report.Results = append(report.Results, res)
		if !res.OK() {
			if len(child.Children) > 0 {
				p.logger.Debug("Pruning subtree", "title", child.Title, "pages", child.Count()-1)
			}
			report.Results = append(report.Results, pruned(child.Children)...)
			continue
		}
		p.createChildren(ctx, child.Children, res.ID, report)
	}
}

// pruned records the pages of an unreachable subtree without submitting them.
func pruned(pages []domain.PageSpec) []domain.Result {
	var out []domain.Result
	for _, pg := range pages {
		out = append(out, domain.Result{
			Kind:   domain.ResourcePage,
			Name:   pg.Title,
			Status: domain.StatusSkipped,
			Err:    domain.ErrMissingParent,
		})
		out = append(out, pruned(pg.Children)...)
	}
	return out
}

func skipped(report domain.StepReport, reason string) domain.StepReport {
	report.Outcome = domain.OutcomeSkipped
	report.Reason = reason
	return report
}
