package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"productdesc/internal/domain/entity"
	"productdesc/internal/domain/repository"
	"productdesc/internal/infrastructure/metrics"
	"productdesc/internal/infrastructure/sanitizer"
	"productdesc/internal/infrastructure/validator"
)

type DescriptionUsecase interface {
	ValidateInput(ctx context.Context, payload map[string]json.RawMessage) entity.ProductInput
	GenerateDescription(ctx context.Context, payload map[string]json.RawMessage) (entity.GeneratedDescription, error)
	Generator() repository.TextGenerator
}

var _ DescriptionUsecase = (*DescriptionService)(nil)

type DescriptionService struct {
	generator repository.TextGenerator
	inputs    *validator.ProductValidator
	outputs   *validator.DescriptionValidator
	retry     RetryPolicy
	logger    zerolog.Logger
}

func NewDescriptionService(
	generator repository.TextGenerator,
	inputs *validator.ProductValidator,
	outputs *validator.DescriptionValidator,
	retry RetryPolicy,
	logger zerolog.Logger,
) *DescriptionService {
	return &DescriptionService{
		generator: generator,
		inputs:    inputs,
		outputs:   outputs,
		retry:     retry.normalized(),
		logger:    logger.With().Str("component", "description").Logger(),
	}
}

func (s *DescriptionService) Generator() repository.TextGenerator {
	return s.generator
}

func (s *DescriptionService) ValidateInput(ctx context.Context, payload map[string]json.RawMessage) entity.ProductInput {
	log := s.log(ctx)
	log.Debug().Interface("payload", payload).Msg("validating input")

	in := s.inputs.Validate(payload)

	log.Debug().
		Interface("validated", in.Render(entity.InvalidMarker)).
		Bool("is_valid", in.IsValid()).
		Strs("invalid_fields", in.InvalidFields()).
		Msg("input validated")
	return in
}

// GenerateDescription validates payload, prompts the model and checks the
// reply. Errors are *InvalidInputError, *GenerationError or
// *OutputFormatError.
func (s *DescriptionService) GenerateDescription(ctx context.Context, payload map[string]json.RawMessage) (entity.GeneratedDescription, error) {
	log := s.log(ctx)

	in := s.ValidateInput(ctx, payload)
	req, ok := in.Request()
	if !ok {
		return entity.GeneratedDescription{}, &InvalidInputError{Input: in}
	}

	prompt := entity.NewProductDescriptionPrompt(req)
	log.Debug().Str("prompt_id", prompt.ID).Int("prompt_len", len(prompt.Text)).Msg("prompt built")

	start := time.Now()
	obj, attempts, err := retry(ctx, s.retry,
		func(attempt int) (map[string]any, error) {
			return s.attempt(ctx, prompt, attempt)
		},
		func(attempt int, err error, next time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", next).Msg("generation attempt failed")
		},
	)
	metrics.ObserveGenerationDuration(time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Warn().Err(ctxErr).Int("attempts", attempts).Msg("generation interrupted")
			return entity.GeneratedDescription{}, fmt.Errorf("generation interrupted after %d attempts: %w", attempts, err)
		}
		metrics.IncGenerationExhausted()
		log.Error().Err(err).Int("attempts", attempts).Msg("generation failed")
		return entity.GeneratedDescription{}, &GenerationError{Attempts: attempts, Err: err}
	}

	desc, err := s.outputs.Validate(obj)
	if err != nil {
		log.Error().Err(err).Msg("model reply failed schema check")
		return entity.GeneratedDescription{}, &OutputFormatError{Reason: err}
	}

	log.Info().
		Str("product", req.ProductName).
		Int("attempts", attempts).
		Dur("took", time.Since(start)).
		Msg("description generated")
	return desc, nil
}

// attempt is one round trip: model call plus sanitizing. A reply that cannot
// be parsed counts as a failed attempt.
func (s *DescriptionService) attempt(ctx context.Context, prompt entity.Prompt, n int) (map[string]any, error) {
	raw, err := s.generator.GenerateText(ctx, prompt.Text)
	if err != nil {
		metrics.IncGenerationAttempt("error")
		return nil, err
	}
	obj, err := sanitizer.ParseObject(raw)
	if err != nil {
		metrics.IncGenerationAttempt("unparseable")
		s.log(ctx).Debug().Int("attempt", n).Str("reply", raw).Msg("unparseable model reply")
		return nil, err
	}
	metrics.IncGenerationAttempt("success")
	return obj, nil
}

// log prefers the request-scoped logger from ctx.
func (s *DescriptionService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}
