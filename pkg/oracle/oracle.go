package oracle

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/eightball-ai/eightball/pkg/generator"
	"github.com/eightball-ai/eightball/pkg/models"
	"github.com/eightball-ai/eightball/pkg/store"
)

// Noncommittal is the placeholder answer. A stored entry holding this value
// is not trusted as final: the next ask for the same question regenerates it.
const Noncommittal = "Ask again later."

// Result is a resolved answer. CacheHit reports whether it was served from a
// committed store entry without a generator call.
type Result struct {
	Answer   string
	CacheHit bool
}

// Oracle resolves questions against the answer store, falling back to the
// generator on a miss or a stale placeholder. It holds no per-request state.
type Oracle struct {
	store  store.Store
	gen    generator.Generator
	cfg    models.InferenceConfig
	sgroup singleflight.Group
}

// New constructs an Oracle with explicit store and generator dependencies.
func New(s store.Store, g generator.Generator, cfg models.InferenceConfig) *Oracle {
	return &Oracle{store: s, gen: g, cfg: cfg}
}

// Answer returns the stored answer for a question, generating and persisting
// a fresh one when no committed entry exists. A stored placeholder is never
// returned; a freshly generated one may be, and is retried on the next ask.
func (o *Oracle) Answer(ctx context.Context, question string) (Result, error) {
	data, ok, err := o.store.Get(ctx, question)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if ok && string(data) != Noncommittal {
		return Result{Answer: string(data), CacheHit: true}, nil
	}

	// Missing or placeholder: generate once per in-flight question.
	v, err, _ := o.sgroup.Do(question, func() (any, error) {
		return o.regenerate(ctx, question)
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Answer: v.(string)}, nil
}

func (o *Oracle) regenerate(ctx context.Context, question string) (string, error) {
	prompt := buildPrompt(ensureQuestionMark(question))

	raw, err := o.gen.Infer(ctx, prompt, o.cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	answer := stripAnswerLabel(raw)
	log.Printf("generated answer for %q: %q", question, answer)

	// The key is the question text as received, not the normalized prompt form.
	if err := o.store.Set(ctx, question, []byte(answer)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return answer, nil
}
