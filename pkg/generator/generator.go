package generator

import (
	"context"

	"github.com/eightball-ai/eightball/pkg/models"
)

// Generator is the text generation capability: given a prompt and sampling
// parameters, produce a candidate answer.
type Generator interface {
	Infer(ctx context.Context, prompt string, cfg models.InferenceConfig) (string, error)
}
