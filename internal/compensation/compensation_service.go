package compensation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	compensationerrors "go-mission/internal/compensation/errors"
	"go-mission/internal/events"
	"go-mission/internal/messaging/kafka"
	"go-mission/internal/mission"
	missionerrors "go-mission/internal/mission/errors"
	"go-mission/internal/scale"
	"go-mission/internal/shared/contextutil"
	"go-mission/internal/shared/lock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	RecomputeLockPrefix     = "compensation:recompute:"
	DefaultRecomputeLockTTL = 30 * time.Second
)

func GetRecomputeLockKey(assignationID string) string {
	return RecomputeLockPrefix + assignationID
}

// EligibilityChecker reports whether a mission's validation chain allows
// payment.
type EligibilityChecker interface {
	IsEligibleForPayment(ctx context.Context, companyID, missionID string) (bool, error)
}

type ServiceConfig struct {
	LockTTL time.Duration
	Policy  MealPolicy
}

//go:generate mockgen -source=compensation_service.go -destination=mock/compensation_service_mock.go -package=mock
type Service interface {
	Recompute(ctx context.Context, companyID, actorID, assignationID string) (RecomputeResponse, error)
	List(ctx context.Context, companyID, assignationID string) ([]CompensationResponse, error)
	TotalForStatus(ctx context.Context, companyID, status string) (TotalResponse, error)
	MarkPaid(ctx context.Context, companyID, actorID string, req MarkPaidRequest) (MarkPaidResponse, error)
	PurgeAssignation(ctx context.Context, companyID, assignationID string) (int64, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	missions    mission.Repository
	scales      scale.Service
	eligibility EligibilityChecker
	locker      lock.Locker
	outbox      kafka.OutboxRepository
	calculator  *Calculator
	lockTTL     time.Duration
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	missions mission.Repository,
	scales scale.Service,
	eligibility EligibilityChecker,
	locker lock.Locker,
	outboxRepo kafka.OutboxRepository,
	cfg ServiceConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("compensation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compensation.service")
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultRecomputeLockTTL
	}
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &service{
		db:          db,
		repo:        repo,
		missions:    missions,
		scales:      scales,
		eligibility: eligibility,
		locker:      locker,
		outbox:      outboxRepo,
		calculator:  NewCalculator(cfg.Policy, l),
		lockTTL:     cfg.LockTTL,
		logger:      l,
	}
}

func (s *service) Recompute(ctx context.Context, companyID, actorID, assignationID string) (RecomputeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("recompute compensation requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("assignation_id", assignationID),
	)

	if _, err := uuid.Parse(assignationID); err != nil {
		return RecomputeResponse{}, compensationerrors.ErrInvalidAssignationID
	}

	unlock, err := s.locker.TryLock(ctx, GetRecomputeLockKey(assignationID), s.lockTTL)
	if errors.Is(err, lock.ErrLocked) {
		s.logger.Warn("recompute compensation already running",
			zap.String("request_id", rid),
			zap.String("assignation_id", assignationID),
		)
		return RecomputeResponse{}, compensationerrors.ErrRecomputeConflict
	}
	if err != nil {
		s.logger.Error("recompute compensation lock failed", zap.String("request_id", rid), zap.Error(err))
		return RecomputeResponse{}, err
	}
	defer unlock()

	detail, err := s.missions.FindAssignationDetail(ctx, companyID, assignationID)
	if err != nil {
		s.logger.Warn("recompute compensation load assignation failed",
			zap.String("assignation_id", assignationID),
			zap.Error(err),
		)
		return RecomputeResponse{}, err
	}

	expenseTypeIDs, err := s.missions.ExpenseTypeIDsByCode(ctx, companyID)
	if err != nil {
		s.logger.Error("recompute compensation load expense types failed", zap.Error(err))
		return RecomputeResponse{}, err
	}
	if len(expenseTypeIDs) == 0 {
		return RecomputeResponse{}, missionerrors.ErrExpenseTypesMissing
	}

	resolver, err := s.scales.ResolverFor(ctx, companyID, detail.EmployeeCategoryID.String())
	if err != nil {
		return RecomputeResponse{}, err
	}

	lines, err := s.calculator.Compute(InputFromAssignation(*detail, expenseTypeIDs), resolver)
	if err != nil {
		s.logger.Warn("recompute compensation rejected",
			zap.String("assignation_id", assignationID),
			zap.Time("departure_at", detail.DepartureAt),
			zap.Time("return_at", detail.ReturnAt),
			zap.Error(err),
		)
		return RecomputeResponse{}, err
	}
	now := time.Now().UTC()
	for i := range lines {
		lines[i].CreatedAt = now
		lines[i].UpdatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("recompute compensation begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RecomputeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.LockForAssignation(ctx, companyID, assignationID)
	if err != nil {
		s.logger.Error("recompute compensation lock lines failed", zap.Error(err))
		return RecomputeResponse{}, err
	}
	for _, line := range existing {
		if line.Status == StatusPaid {
			s.logger.Warn("recompute compensation refused, lines already paid",
				zap.String("assignation_id", assignationID),
			)
			return RecomputeResponse{}, compensationerrors.ErrAssignationAlreadyPaid
		}
	}

	if err := qtx.ReplaceForAssignation(ctx, companyID, assignationID, lines); err != nil {
		s.logger.Error("recompute compensation persist failed", zap.Error(err))
		return RecomputeResponse{}, mapRepositoryError(err)
	}

	total := sumTotals(lines)
	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "assignation", assignationID,
			events.CompensationRecomputed, events.CompensationRecomputedTopic,
			events.CompensationRecomputedEvent{
				EventType:     events.CompensationRecomputed,
				RequestID:     rid,
				AssignationID: assignationID,
				MissionID:     detail.MissionID.String(),
				EmployeeID:    detail.EmployeeID.String(),
				CompanyID:     companyID,
				Lines:         len(lines),
				TotalAmount:   total.StringFixed(2),
				RecomputedBy:  actorID,
				OccurredAt:    now,
			})
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return RecomputeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("recompute compensation outbox persist failed",
				zap.String("assignation_id", assignationID),
				zap.Error(err),
			)
			return RecomputeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("recompute compensation commit failed", zap.String("request_id", rid), zap.Error(err))
		return RecomputeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("recompute compensation success",
		zap.String("request_id", rid),
		zap.String("assignation_id", assignationID),
		zap.Int("lines", len(lines)),
		zap.String("total", total.StringFixed(2)),
	)

	return RecomputeResponse{
		AssignationID: assignationID,
		Lines:         mapToListResponse(lines),
		TotalAmount:   total.StringFixed(2),
	}, nil
}

func (s *service) List(ctx context.Context, companyID, assignationID string) ([]CompensationResponse, error) {
	if _, err := uuid.Parse(assignationID); err != nil {
		return nil, compensationerrors.ErrInvalidAssignationID
	}

	lines, err := s.repo.ListByAssignation(ctx, companyID, assignationID)
	if err != nil {
		s.logger.Error("list compensations failed", zap.String("assignation_id", assignationID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(lines), nil
}

func (s *service) TotalForStatus(ctx context.Context, companyID, status string) (TotalResponse, error) {
	dbStatus, err := ParseStatusFilter(status)
	if err != nil {
		return TotalResponse{}, err
	}

	total, err := s.repo.TotalForStatus(ctx, companyID, dbStatus)
	if err != nil {
		s.logger.Error("compensation total failed", zap.String("status", dbStatus), zap.Error(err))
		return TotalResponse{}, err
	}
	return TotalResponse{Status: dbStatus, Amount: total.StringFixed(2)}, nil
}

func (s *service) MarkPaid(ctx context.Context, companyID, actorID string, req MarkPaidRequest) (MarkPaidResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(req.AssignationID); err != nil {
		return MarkPaidResponse{}, compensationerrors.ErrInvalidAssignationID
	}
	rng, err := parseDateRange(req.From, req.To)
	if err != nil {
		return MarkPaidResponse{}, err
	}

	detail, err := s.missions.FindAssignationDetail(ctx, companyID, req.AssignationID)
	if err != nil {
		return MarkPaidResponse{}, err
	}

	if s.eligibility == nil {
		return MarkPaidResponse{}, compensationerrors.ErrMissionNotPayable
	}
	eligible, err := s.eligibility.IsEligibleForPayment(ctx, companyID, detail.MissionID.String())
	if err != nil {
		s.logger.Error("mark paid eligibility check failed", zap.String("request_id", rid), zap.Error(err))
		return MarkPaidResponse{}, err
	}
	if !eligible {
		s.logger.Warn("mark paid refused, mission not approved",
			zap.String("request_id", rid),
			zap.String("mission_id", detail.MissionID.String()),
		)
		return MarkPaidResponse{}, compensationerrors.ErrMissionNotPayable
	}

	var paidBy *uuid.UUID
	if id, err := uuid.Parse(actorID); err == nil {
		paidBy = &id
	}

	count, err := s.repo.MarkPaid(ctx, companyID, req.AssignationID, paidBy, time.Now().UTC(), rng)
	if err != nil {
		s.logger.Error("mark paid persist failed", zap.String("request_id", rid), zap.Error(err))
		return MarkPaidResponse{}, err
	}

	s.logger.Info("mark paid success",
		zap.String("request_id", rid),
		zap.String("assignation_id", req.AssignationID),
		zap.Int64("count", count),
	)
	return MarkPaidResponse{AssignationID: req.AssignationID, Count: count}, nil
}

func (s *service) PurgeAssignation(ctx context.Context, companyID, assignationID string) (int64, error) {
	if _, err := uuid.Parse(assignationID); err != nil {
		return 0, compensationerrors.ErrInvalidAssignationID
	}

	unlock, err := s.locker.TryLock(ctx, GetRecomputeLockKey(assignationID), s.lockTTL)
	if errors.Is(err, lock.ErrLocked) {
		return 0, compensationerrors.ErrRecomputeConflict
	}
	if err != nil {
		return 0, err
	}
	defer unlock()

	count, err := s.repo.PurgeAssignation(ctx, companyID, assignationID)
	if err != nil {
		s.logger.Error("purge compensations failed", zap.String("assignation_id", assignationID), zap.Error(err))
		return 0, err
	}
	s.logger.Info("purge compensations success",
		zap.String("assignation_id", assignationID),
		zap.Int64("count", count),
	)
	return count, nil
}

// ParseStatusFilter maps the query values paid and not-paid to stored statuses.
func ParseStatusFilter(raw string) (string, error) {
	switch raw {
	case "paid", StatusPaid:
		return StatusPaid, nil
	case "not-paid", StatusNotPaid:
		return StatusNotPaid, nil
	default:
		return "", compensationerrors.ErrInvalidStatusFilter
	}
}

func parseDateRange(from, to *string) (DateRange, error) {
	var rng DateRange
	if from != nil && *from != "" {
		t, err := time.Parse(dateLayout, *from)
		if err != nil {
			return DateRange{}, compensationerrors.ErrInvalidPaidRange
		}
		rng.From = &t
	}
	if to != nil && *to != "" {
		t, err := time.Parse(dateLayout, *to)
		if err != nil {
			return DateRange{}, compensationerrors.ErrInvalidPaidRange
		}
		rng.To = &t
	}
	if rng.From != nil && rng.To != nil && rng.From.After(*rng.To) {
		return DateRange{}, compensationerrors.ErrInvalidPaidRange
	}
	return rng, nil
}

func sumTotals(lines []Compensation) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total)
	}
	return total
}

func mapToResponse(c Compensation) CompensationResponse {
	resp := CompensationResponse{
		ID:            c.ID.String(),
		AssignationID: c.AssignationID.String(),
		EmployeeID:    c.EmployeeID.String(),
		MissionID:     c.MissionID.String(),
		Date:          c.Date.Format(dateLayout),
		Transport:     c.Transport.StringFixed(2),
		Breakfast:     c.Breakfast.StringFixed(2),
		Lunch:         c.Lunch.StringFixed(2),
		Dinner:        c.Dinner.StringFixed(2),
		Accommodation: c.Accommodation.StringFixed(2),
		Total:         c.Total.StringFixed(2),
		Status:        c.Status,
	}
	if c.PaidAt != nil {
		v := c.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func mapToListResponse(lines []Compensation) []CompensationResponse {
	resp := make([]CompensationResponse, 0, len(lines))
	for _, l := range lines {
		resp = append(resp, mapToResponse(l))
	}
	return resp
}
