package ports

import (
	"context"

	"github.com/aretw0/crema/pkg/domain"
)

// TranslateRequest is a single translation job.
type TranslateRequest struct {
	// Source is the raw source JSON document.
	Source []byte
	// Mode overrides the translator's configured mode when non-empty.
	Mode domain.TransitionMode
}

// Translator is the interface used by adapters (HTTP, MCP, batch) that hand raw
// documents to the engine.
type Translator interface {
	Translate(ctx context.Context, req TranslateRequest) (*domain.Translation, error)
}

// ModeReporter is implemented by translators that expose their configured mode.
type ModeReporter interface {
	Mode() domain.TransitionMode
}

// ConfiguredMode returns the mode t applies when a request leaves Mode empty.
func ConfiguredMode(t Translator) domain.TransitionMode {
	if r, ok := t.(ModeReporter); ok {
		if m := r.Mode(); m != "" {
			return m
		}
	}
	return domain.DefaultTransitionMode
}
