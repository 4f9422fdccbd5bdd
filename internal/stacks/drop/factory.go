package drop

import (
	"github.com/zjrosen/stax/internal/stacks/application"
	"github.com/zjrosen/stax/internal/stacks/domain"
)

// Factory builds Handlers bound to a (stack, target) pair so call
// sites in the view layer never hold controller or project references
// themselves.
type Factory struct {
	controller application.MutationController
	project    domain.Project
}

// NewFactory creates a Factory over the given controller and project.
func NewFactory(controller application.MutationController, project domain.Project) *Factory {
	return &Factory{controller: controller, project: project}
}

// Build returns a Handler for drops onto target within stack. It is
// pure construction: no validation, no side effects.
func (f *Factory) Build(stack domain.Stack, target domain.Target) *Handler {
	return &Handler{
		controller: f.controller,
		project:    f.project,
		stack:      stack,
		target:     target,
	}
}
