package validation

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-mission/internal/events"
	"go-mission/internal/messaging/kafka"
	"go-mission/internal/mission"
	"go-mission/internal/shared/apperror"
	"go-mission/internal/shared/contextutil"
	validationerrors "go-mission/internal/validation/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=validation_service.go -destination=mock/validation_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, companyID, actorID, missionID string, req SubmitChainRequest) (ChainResponse, error)
	Advance(ctx context.Context, companyID, actorID, validationID string, req AdvanceRequest) (AdvanceResponse, error)
	GetChain(ctx context.Context, companyID, missionID string) (ChainResponse, error)
	PaymentEligibility(ctx context.Context, companyID, missionID string) (string, error)
	IsEligibleForPayment(ctx context.Context, companyID, missionID string) (bool, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	missions mission.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, missions mission.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, missions, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	missions mission.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("validation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("validation.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		missions: missions,
		outbox:   outboxRepo,
		logger:   l,
	}
}

func (s *service) Submit(ctx context.Context, companyID, actorID, missionID string, req SubmitChainRequest) (ChainResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit validation chain requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("mission_id", missionID),
	)

	if _, err := uuid.Parse(missionID); err != nil {
		return ChainResponse{}, validationerrors.ErrInvalidMissionID
	}
	roles, err := normalizeRoles(req.Roles)
	if err != nil {
		return ChainResponse{}, err
	}

	m, err := s.missions.FindMission(ctx, companyID, missionID)
	if err != nil {
		return ChainResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit validation chain begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ChainResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.ListByMission(ctx, companyID, missionID)
	if err != nil {
		return ChainResponse{}, err
	}
	if len(existing) > 0 {
		s.logger.Warn("submit validation chain refused, chain exists", zap.String("mission_id", missionID))
		return ChainResponse{}, validationerrors.ErrChainAlreadyExists
	}

	var assignationID *uuid.UUID
	if req.AssignationID != nil && *req.AssignationID != "" {
		id, err := uuid.Parse(*req.AssignationID)
		if err != nil {
			return ChainResponse{}, apperror.InvalidField("assignation_id")
		}
		assignationID = &id
	}

	now := time.Now().UTC()
	steps := make([]MissionValidation, 0, len(roles))
	for i, role := range roles {
		steps = append(steps, MissionValidation{
			ID:               uuid.New(),
			CompanyID:        m.CompanyID,
			MissionID:        m.ID,
			AssignationID:    assignationID,
			StepIndex:        i + 1,
			ToWhom:           role,
			MissionCreatorID: m.CreatedBy,
			Status:           StatusPending,
			Version:          1,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	if err := qtx.CreateChain(ctx, steps); err != nil {
		s.logger.Error("submit validation chain persist failed", zap.String("request_id", rid), zap.Error(err))
		return ChainResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit validation chain commit failed", zap.String("request_id", rid), zap.Error(err))
		return ChainResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("submit validation chain success",
		zap.String("request_id", rid),
		zap.String("mission_id", missionID),
		zap.String("submitted_by", actorID),
		zap.Int("steps", len(steps)),
	)
	return mapToChainResponse(missionID, steps), nil
}

func (s *service) Advance(ctx context.Context, companyID, actorID, validationID string, req AdvanceRequest) (AdvanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("advance validation requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("validation_id", validationID),
		zap.String("decision", req.Decision),
	)

	decision := strings.ToUpper(strings.TrimSpace(req.Decision))
	if !IsDecision(decision) {
		return AdvanceResponse{}, validationerrors.ErrInvalidDecision
	}
	stepID, err := uuid.Parse(validationID)
	if err != nil {
		return AdvanceResponse{}, validationerrors.ErrValidationNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("advance validation begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AdvanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	step, err := qtx.FindByID(ctx, companyID, validationID)
	if err != nil {
		return AdvanceResponse{}, err
	}
	chain, err := qtx.ListByMission(ctx, companyID, step.MissionID.String())
	if err != nil {
		return AdvanceResponse{}, err
	}

	if guard := CanAdvance(AdvanceContext{Chain: chain, StepID: stepID}); !guard.Allowed {
		s.logger.Warn("advance validation refused",
			zap.String("request_id", rid),
			zap.String("validation_id", validationID),
			zap.Int("step_index", step.StepIndex),
			zap.Error(guard.Reason),
		)
		return AdvanceResponse{}, guard.Error()
	}

	now := time.Now().UTC()
	d := Decision{
		Status:       decision,
		ValidatedAt:  now,
		Comment:      req.Comment,
		SignatureRef: req.Signature,
	}
	if id, err := uuid.Parse(actorID); err == nil {
		d.ValidatedBy = &id
	}

	affected, err := qtx.Resolve(ctx, companyID, validationID, step.Version, d)
	if err != nil {
		s.logger.Error("advance validation persist failed", zap.String("request_id", rid), zap.Error(err))
		return AdvanceResponse{}, err
	}
	if affected == 0 {
		s.logger.Warn("advance validation lost race",
			zap.String("request_id", rid),
			zap.String("validation_id", validationID),
		)
		return AdvanceResponse{}, validationerrors.ErrValidationConflict
	}

	step.Status = d.Status
	step.ValidatedAt = &now
	step.ValidatedBy = d.ValidatedBy
	step.Comment = d.Comment
	step.SignatureRef = d.SignatureRef
	step.Version++
	step.UpdatedAt = now
	for i := range chain {
		if chain[i].ID == step.ID {
			chain[i] = *step
		}
	}

	overall := OverallStatus(chain)
	if overall != StatusPending && s.outbox != nil {
		missionID := step.MissionID.String()
		event, err := kafka.NewOutboxEvent(rid, "mission", missionID,
			events.MissionValidationCompleted, events.MissionValidationCompletedTopic,
			events.MissionValidationCompletedEvent{
				EventType:   events.MissionValidationCompleted,
				RequestID:   rid,
				MissionID:   missionID,
				CompanyID:   companyID,
				Outcome:     overall,
				DecidedBy:   actorID,
				DecidedStep: step.StepIndex,
				OccurredAt:  now,
			})
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return AdvanceResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("advance validation outbox persist failed",
				zap.String("mission_id", missionID),
				zap.Error(err),
			)
			return AdvanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("advance validation commit failed", zap.String("request_id", rid), zap.Error(err))
		return AdvanceResponse{}, err
	}

	s.logger.Info("advance validation success",
		zap.String("request_id", rid),
		zap.String("validation_id", validationID),
		zap.String("decision", decision),
		zap.String("overall_status", overall),
	)
	return AdvanceResponse{Step: mapToResponse(*step), OverallStatus: overall}, nil
}

func (s *service) GetChain(ctx context.Context, companyID, missionID string) (ChainResponse, error) {
	if _, err := uuid.Parse(missionID); err != nil {
		return ChainResponse{}, validationerrors.ErrInvalidMissionID
	}
	chain, err := s.repo.ListByMission(ctx, companyID, missionID)
	if err != nil {
		s.logger.Error("get validation chain failed", zap.String("mission_id", missionID), zap.Error(err))
		return ChainResponse{}, err
	}
	return mapToChainResponse(missionID, chain), nil
}

func (s *service) PaymentEligibility(ctx context.Context, companyID, missionID string) (string, error) {
	chain, err := s.repo.ListByMission(ctx, companyID, missionID)
	if err != nil {
		return "", err
	}
	return Eligibility(chain), nil
}

func (s *service) IsEligibleForPayment(ctx context.Context, companyID, missionID string) (bool, error) {
	eligibility, err := s.PaymentEligibility(ctx, companyID, missionID)
	if err != nil {
		return false, err
	}
	return eligibility == EligibilityEligible, nil
}

func normalizeRoles(roles []string) ([]string, error) {
	if len(roles) == 0 {
		return append([]string(nil), DefaultChain...), nil
	}
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		role := strings.ToUpper(strings.TrimSpace(r))
		if role == "" {
			return nil, validationerrors.ErrInvalidChainRoles
		}
		if _, dup := seen[role]; dup {
			return nil, validationerrors.ErrInvalidChainRoles
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	return out, nil
}

func optionalString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func mapToResponse(v MissionValidation) ValidationResponse {
	resp := ValidationResponse{
		ID:            v.ID.String(),
		MissionID:     v.MissionID.String(),
		AssignationID: optionalString(v.AssignationID),
		StepIndex:     v.StepIndex,
		ToWhom:        v.ToWhom,
		Status:        v.Status,
		ValidatedBy:   optionalString(v.ValidatedBy),
		Comment:       v.Comment,
		SignatureRef:  v.SignatureRef,
		Version:       v.Version,
	}
	if v.ValidatedAt != nil {
		ts := v.ValidatedAt.Format(time.RFC3339)
		resp.ValidatedAt = &ts
	}
	return resp
}

func mapToChainResponse(missionID string, chain []MissionValidation) ChainResponse {
	steps := make([]ValidationResponse, 0, len(chain))
	for _, v := range chain {
		steps = append(steps, mapToResponse(v))
	}
	return ChainResponse{
		MissionID:     missionID,
		OverallStatus: OverallStatus(chain),
		Eligibility:   Eligibility(chain),
		Steps:         steps,
	}
}
