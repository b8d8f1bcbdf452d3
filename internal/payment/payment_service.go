package payment

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"time"

	"go-mission/internal/compensation"
	"go-mission/internal/mission"
	paymenterrors "go-mission/internal/payment/errors"
	"go-mission/internal/shared/contextutil"
	"go-mission/internal/shared/response"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultPageSize   = 10
	maxPageSize       = 100
	DefaultPresignTTL = 15 * time.Minute
)

type ServiceConfig struct {
	ArchivePrefix string
	PresignTTL    time.Duration
}

//go:generate mockgen -source=payment_service.go -destination=mock/payment_service_mock.go -package=mock
type Service interface {
	BuildPaymentView(ctx context.Context, companyID, missionID, employeeID string) (PaymentViewResponse, error)
	ListPaymentPairs(ctx context.Context, companyID string, req PaymentPairsFilterRequest) ([]PaymentPairResponse, response.PaginationMeta, error)
	Export(ctx context.Context, companyID, missionID, employeeID, format string) (ExportFile, error)
	Archive(ctx context.Context, companyID, actorID string, req ArchiveExportRequest) (ArchiveExportResponse, error)
}

type service struct {
	db       *sql.DB
	missions mission.Repository
	ledger   compensation.Repository
	repo     Repository
	store    ObjectStore
	cfg      ServiceConfig
	logger   *zap.Logger
}

// NewService builds the aggregator. store may be nil, in which case Archive
// reports the feature as unavailable.
func NewService(
	db *sql.DB,
	missions mission.Repository,
	ledger compensation.Repository,
	repo Repository,
	store ObjectStore,
	cfg ServiceConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payment.service")
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = DefaultPresignTTL
	}
	return &service{
		db:       db,
		missions: missions,
		ledger:   ledger,
		repo:     repo,
		store:    store,
		cfg:      cfg,
		logger:   l,
	}
}

func (s *service) BuildPaymentView(ctx context.Context, companyID, missionID, employeeID string) (PaymentViewResponse, error) {
	view, err := s.buildView(ctx, companyID, missionID, employeeID)
	if err != nil {
		return PaymentViewResponse{}, err
	}
	return view.ToResponse(), nil
}

func (s *service) buildView(ctx context.Context, companyID, missionID, employeeID string) (PaymentView, error) {
	if _, err := uuid.Parse(missionID); err != nil {
		return PaymentView{}, paymenterrors.ErrInvalidPairID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return PaymentView{}, paymenterrors.ErrInvalidPairID
	}

	log := contextutil.GetLogger(ctx, s.logger)

	detail, err := s.missions.FindAssignationDetailByMissionEmployee(ctx, companyID, missionID, employeeID)
	if err != nil {
		return PaymentView{}, err
	}
	assignationID := detail.AssignationID.String()

	// Lines and ledger sum come from one snapshot so a recompute committing in
	// between cannot look like an integrity failure.
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return PaymentView{}, err
	}
	defer tx.Rollback()

	ledger := s.ledger.WithTx(tx)

	lines, err := ledger.ListByAssignation(ctx, companyID, assignationID)
	if err != nil {
		return PaymentView{}, err
	}

	total := decimal.Zero
	for _, l := range lines {
		if !l.IsConsistent() {
			log.Error("compensation line total does not match its parts",
				zap.String("assignation_id", assignationID),
				zap.String("line_id", l.ID.String()),
				zap.String("total", l.Total.StringFixed(2)),
				zap.String("parts", l.PartsSum().StringFixed(2)),
			)
			return PaymentView{}, paymenterrors.ErrIntegrityMismatch
		}
		total = total.Add(l.Total)
	}

	ledgerTotal, err := ledger.SumByAssignation(ctx, companyID, assignationID)
	if err != nil {
		return PaymentView{}, err
	}
	if !ledgerTotal.Equal(total) {
		log.Error("payment view total disagrees with ledger",
			zap.String("assignation_id", assignationID),
			zap.String("view_total", total.StringFixed(2)),
			zap.String("ledger_total", ledgerTotal.StringFixed(2)),
		)
		return PaymentView{}, paymenterrors.ErrIntegrityMismatch
	}

	if err := tx.Commit(); err != nil {
		return PaymentView{}, err
	}

	return PaymentView{Detail: *detail, Lines: lines, Total: total}, nil
}

func (s *service) ListPaymentPairs(ctx context.Context, companyID string, req PaymentPairsFilterRequest) ([]PaymentPairResponse, response.PaginationMeta, error) {
	var status string
	if req.Status != "" {
		parsed, err := compensation.ParseStatusFilter(req.Status)
		if err != nil {
			return nil, response.PaginationMeta{}, err
		}
		status = parsed
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	rows, total, err := s.repo.ListPairs(ctx, companyID, PairFilter{
		Status: status,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}

	resp := make([]PaymentPairResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, PaymentPairResponse{
			AssignationID: r.AssignationID.String(),
			MissionID:     r.MissionID.String(),
			MissionName:   r.MissionName,
			EmployeeID:    r.EmployeeID.String(),
			EmployeeName:  r.EmployeeName,
			Transport:     r.TransportLabel,
			DepartureAt:   r.DepartureAt.Format(time.RFC3339),
			ReturnAt:      r.ReturnAt.Format(time.RFC3339),
			DurationDays:  r.DurationDays,
		})
	}

	return resp, response.NewPaginationMeta(total, page, pageSize), nil
}

func (s *service) Export(ctx context.Context, companyID, missionID, employeeID, format string) (ExportFile, error) {
	f, err := ParseExportFormat(format)
	if err != nil {
		return ExportFile{}, err
	}
	view, err := s.buildView(ctx, companyID, missionID, employeeID)
	if err != nil {
		return ExportFile{}, err
	}
	return Render(view, f)
}

func (s *service) Archive(ctx context.Context, companyID, actorID string, req ArchiveExportRequest) (ArchiveExportResponse, error) {
	if s.store == nil {
		return ArchiveExportResponse{}, paymenterrors.ErrArchiveDisabled
	}

	file, err := s.Export(ctx, companyID, req.MissionID, req.EmployeeID, req.Format)
	if err != nil {
		return ArchiveExportResponse{}, err
	}

	now := time.Now().UTC()
	key := path.Join(s.cfg.ArchivePrefix, companyID, fmt.Sprintf("%s-%s", now.Format("20060102T150405Z"), file.Name))

	if err := s.store.Put(ctx, key, file.ContentType, file.Body); err != nil {
		return ArchiveExportResponse{}, err
	}
	url, err := s.store.PresignGet(ctx, key, s.cfg.PresignTTL)
	if err != nil {
		return ArchiveExportResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("payment export archived",
		zap.String("key", key),
		zap.String("actor_id", actorID),
		zap.Int("bytes", len(file.Body)),
	)

	return ArchiveExportResponse{
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(s.cfg.PresignTTL).Format(time.RFC3339),
	}, nil
}
