package provision

import (
	"github.com/aretw0/groundwork/pkg/config"
	"github.com/aretw0/groundwork/pkg/domain"
)

// CheckCredentials fails only when neither workspace credential is present.
// With a single credential the run proceeds and the other provisioner skips itself.
func CheckCredentials(cfg *config.Config) error {
	if cfg == nil || (!cfg.HasNotion() && !cfg.HasClickUp()) {
		return domain.ErrNoCredentials
	}
	return nil
}
