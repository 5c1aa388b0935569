package bodyweight

import (
	"context"
	"time"

	"github.com/2beens/liftlog/internal/apperrors"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/validation"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=bodyweight_test

type bodyweightRepo interface {
	Add(ctx context.Context, userID string, weightKg float64, loggedOn time.Time) (*Entry, error)
	List(ctx context.Context, userID string) ([]Entry, error)
	Update(ctx context.Context, userID string, id int64, update EntryUpdate) (*Entry, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type Service struct {
	repo           bodyweightRepo
	metricsManager *metrics.Manager
}

func NewService(repo bodyweightRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (s *Service) Add(ctx context.Context, userID string, req AddRequest) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bodyweight.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	weightKg, err := validation.WeightKg(req.WeightKg)
	if err != nil {
		return nil, err
	}
	loggedOn, err := validation.Date(req.LoggedOn)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.Add(ctx, userID, weightKg, loggedOn)
	if err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterBodyweightEntries.Inc()
	}

	return entry, nil
}

func (s *Service) List(ctx context.Context, userID string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bodyweight.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.List(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID string, id int64, req UpdateRequest) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bodyweight.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var update EntryUpdate
	if req.WeightKg.HasValue() {
		weightKg, err := validation.WeightKg(req.WeightKg.V)
		if err != nil {
			return nil, err
		}
		update.WeightKg = &weightKg
	}
	if req.LoggedOn.HasValue() {
		loggedOn, err := validation.Date(req.LoggedOn.V)
		if err != nil {
			return nil, err
		}
		update.LoggedOn = &loggedOn
	}

	if update.WeightKg == nil && update.LoggedOn == nil {
		return nil, apperrors.NewValidation("provide at least one field to update")
	}

	return s.repo.Update(ctx, userID, id, update)
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bodyweight.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.Delete(ctx, userID, id)
}
