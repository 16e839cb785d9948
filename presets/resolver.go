package presets

import (
	"context"

	"github.com/ShkrSltn/dbot-sub000/config"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

// Repository is the host's read-only prompt template store. GetByID
// returns nil without error when no template has the given id. The
// built-in templates are not served from the repository.
type Repository interface {
	GetByID(ctx context.Context, id int) (*Template, error)
}

// Resolver picks the prompt template for a run.
type Resolver struct {
	repo   Repository
	logger utils.Logger
}

// NewResolver creates a Resolver. The repository may be nil when the
// host only uses built-in templates.
func NewResolver(repo Repository, logger utils.Logger) *Resolver {
	if logger == nil {
		logger = utils.NopLogger{}
	}
	return &Resolver{repo: repo, logger: logger}
}

// Resolve returns the template content to use. An explicit template
// wins; otherwise the selected prompt id picks a built-in or a
// repository entry, falling back to the default template when the
// lookup comes up empty.
func (r *Resolver) Resolve(ctx context.Context, settings config.Settings, explicit string) string {
	if explicit != "" {
		return explicit
	}

	id := settings.SelectedPromptID
	if t, ok := BuiltinTemplate(id); ok {
		return t.Content
	}

	if r.repo != nil {
		t, err := r.repo.GetByID(ctx, id)
		if err != nil {
			r.logger.Warn("Prompt repository lookup failed, using default template", "id", id, "error", err)
		} else if t != nil {
			return t.Content
		}
	}

	r.logger.Debug("No template for id, using default", "id", id)
	return DefaultTemplate
}
