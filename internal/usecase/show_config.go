package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskgraph/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct {
	Template bool // Render a commented template instead of the plain values
}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	EffectiveConfig *domain.Config        // Merged configuration
	Template        string                // Rendered template, set when requested
	Sources         []domain.ConfigSource // Files consulted, lowest precedence first
}

// ShowConfig displays the effective configuration.
type ShowConfig struct {
	configLoader domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configLoader: configLoader,
	}
}

// Execute loads the merged configuration.
func (uc *ShowConfig) Execute(_ context.Context, in ShowConfigInput) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	out := &ShowConfigOutput{
		EffectiveConfig: cfg,
		Sources:         uc.configLoader.Sources(),
	}
	if in.Template {
		out.Template = domain.RenderConfigTemplate(cfg)
	}
	return out, nil
}
