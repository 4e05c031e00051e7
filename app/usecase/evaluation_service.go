package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"productdesc/internal/domain/entity"
	"productdesc/internal/infrastructure/evaluator"
	"productdesc/internal/infrastructure/metrics"
)

type EvaluationUsecase interface {
	Evaluate(ctx context.Context, input entity.EvaluationInput, output entity.GeneratedDescription) entity.EvaluationReport
}

var _ EvaluationUsecase = (*EvaluationService)(nil)

type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (s *EvaluationService) Evaluate(ctx context.Context, input entity.EvaluationInput, output entity.GeneratedDescription) entity.EvaluationReport {
	report := evaluator.Evaluate(input, output)
	metrics.ObserveEvaluationScore(report.TotalScore)

	zerolog.Ctx(ctx).Debug().
		Int("total_score", report.TotalScore).
		Interface("breakdown", report.Breakdown).
		Int("issues", len(report.Issues)).
		Msg("output evaluated")
	return report
}
