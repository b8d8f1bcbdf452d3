package compensation_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-mission/internal/compensation"
	compensationerrors "go-mission/internal/compensation/errors"
	"go-mission/internal/events"
	"go-mission/internal/messaging/kafka"
	"go-mission/internal/mission"
	missionerrors "go-mission/internal/mission/errors"
	"go-mission/internal/scale"
	"go-mission/internal/shared/lock"
	lockMock "go-mission/internal/shared/lock/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeCompensationRepository struct {
	lines        map[string][]compensation.Compensation
	replaceCalls int
	totalFn      func(ctx context.Context, companyID, status string) (decimal.Decimal, error)
	markPaidFn   func(ctx context.Context, companyID, assignationID string, paidBy *uuid.UUID, paidAt time.Time, rng compensation.DateRange) (int64, error)
	replaceErr   error
	purgeFn      func(ctx context.Context, companyID, assignationID string) (int64, error)
}

func newFakeCompensationRepository() *fakeCompensationRepository {
	return &fakeCompensationRepository{lines: map[string][]compensation.Compensation{}}
}

func (f *fakeCompensationRepository) WithTx(tx *sql.Tx) compensation.Repository {
	return f
}

func (f *fakeCompensationRepository) LockForAssignation(ctx context.Context, companyID, assignationID string) ([]compensation.Compensation, error) {
	return f.lines[assignationID], nil
}

func (f *fakeCompensationRepository) ReplaceForAssignation(ctx context.Context, companyID, assignationID string, lines []compensation.Compensation) error {
	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.lines[assignationID] = append([]compensation.Compensation(nil), lines...)
	return nil
}

func (f *fakeCompensationRepository) ListByAssignation(ctx context.Context, companyID, assignationID string) ([]compensation.Compensation, error) {
	return f.lines[assignationID], nil
}

func (f *fakeCompensationRepository) TotalForStatus(ctx context.Context, companyID, status string) (decimal.Decimal, error) {
	if f.totalFn != nil {
		return f.totalFn(ctx, companyID, status)
	}
	return decimal.Zero, nil
}

func (f *fakeCompensationRepository) SumByAssignation(ctx context.Context, companyID, assignationID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range f.lines[assignationID] {
		total = total.Add(l.PartsSum())
	}
	return total, nil
}

func (f *fakeCompensationRepository) MarkPaid(ctx context.Context, companyID, assignationID string, paidBy *uuid.UUID, paidAt time.Time, rng compensation.DateRange) (int64, error) {
	if f.markPaidFn != nil {
		return f.markPaidFn(ctx, companyID, assignationID, paidBy, paidAt, rng)
	}
	return 0, nil
}

func (f *fakeCompensationRepository) PurgeAssignation(ctx context.Context, companyID, assignationID string) (int64, error) {
	if f.purgeFn != nil {
		return f.purgeFn(ctx, companyID, assignationID)
	}
	return 0, nil
}

type fakeMissionRepository struct {
	detail     *mission.AssignationDetail
	detailErr  error
	expenseIDs map[string]uuid.UUID
	expenseErr error
}

func (f *fakeMissionRepository) WithTx(tx *sql.Tx) mission.Repository { return f }

func (f *fakeMissionRepository) FindMission(ctx context.Context, companyID, missionID string) (*mission.Mission, error) {
	return nil, missionerrors.ErrMissionNotFound
}

func (f *fakeMissionRepository) FindAssignationDetail(ctx context.Context, companyID, assignationID string) (*mission.AssignationDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeMissionRepository) FindAssignationDetailByMissionEmployee(ctx context.Context, companyID, missionID, employeeID string) (*mission.AssignationDetail, error) {
	return f.FindAssignationDetail(ctx, companyID, "")
}

func (f *fakeMissionRepository) ExpenseTypeIDsByCode(ctx context.Context, companyID string) (map[string]uuid.UUID, error) {
	return f.expenseIDs, f.expenseErr
}

type fakeScaleService struct {
	rows []scale.CompensationScale
}

func (f *fakeScaleService) Create(ctx context.Context, companyID, actorID string, req scale.CreateScaleRequest) (scale.ScaleResponse, error) {
	return scale.ScaleResponse{}, nil
}

func (f *fakeScaleService) GetAll(ctx context.Context, companyID string) ([]scale.ScaleResponse, error) {
	return nil, nil
}

func (f *fakeScaleService) ResolverFor(ctx context.Context, companyID, categoryID string) (*scale.Resolver, error) {
	return scale.NewResolver(uuid.MustParse(categoryID), f.rows), nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeEligibility struct {
	eligible bool
	err      error
}

func (f *fakeEligibility) IsEligibleForPayment(ctx context.Context, companyID, missionID string) (bool, error) {
	return f.eligible, f.err
}

type serviceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     compensation.Service
	repo        *fakeCompensationRepository
	missions    *fakeMissionRepository
	outbox      *fakeOutboxRepository
	locker      *lockMock.MockLocker
	eligibility *fakeEligibility
	detail      mission.AssignationDetail
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	types := map[string]uuid.UUID{
		mission.ExpenseBreakfast:     uuid.New(),
		mission.ExpenseLunch:         uuid.New(),
		mission.ExpenseDinner:        uuid.New(),
		mission.ExpenseAccommodation: uuid.New(),
	}
	category := uuid.New()
	car := uuid.New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	row := func(expense *uuid.UUID, transport *uuid.UUID, amount int64) scale.CompensationScale {
		return scale.CompensationScale{
			ID: uuid.New(), EmployeeCategoryID: category,
			ExpenseTypeID: expense, TransportID: transport,
			Amount: decimal.NewFromInt(amount), CreatedAt: created,
		}
	}
	breakfast, lunch := types[mission.ExpenseBreakfast], types[mission.ExpenseLunch]
	dinner, accommodation := types[mission.ExpenseDinner], types[mission.ExpenseAccommodation]
	scales := &fakeScaleService{rows: []scale.CompensationScale{
		row(&breakfast, nil, 5000),
		row(&lunch, nil, 8000),
		row(&dinner, nil, 8000),
		row(&accommodation, nil, 20000),
		row(nil, &car, 15000),
	}}

	label := "Voiture"
	detail := mission.AssignationDetail{
		AssignationID:      uuid.New(),
		CompanyID:          uuid.New(),
		MissionID:          uuid.New(),
		MissionName:        "M1",
		MissionStartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		MissionEndDate:     time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		EmployeeID:         uuid.New(),
		EmployeeName:       "E1",
		EmployeeCategoryID: category,
		TransportID:        &car,
		TransportLabel:     &label,
		DepartureAt:        time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC),
		ReturnAt:           time.Date(2024, 3, 3, 18, 0, 0, 0, time.UTC),
		DurationDays:       3,
	}

	deps := &serviceDeps{
		db:          db,
		sqlMock:     sqlMock,
		repo:        newFakeCompensationRepository(),
		missions:    &fakeMissionRepository{detail: &detail, expenseIDs: types},
		outbox:      &fakeOutboxRepository{},
		locker:      lockMock.NewMockLocker(ctrl),
		eligibility: &fakeEligibility{eligible: true},
		detail:      detail,
	}
	deps.service = compensation.NewService(
		db, deps.repo, deps.missions, scales, deps.eligibility, deps.locker, deps.outbox,
		compensation.ServiceConfig{LockTTL: 5 * time.Second},
	)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func (d *serviceDeps) expectLock(assignationID string) {
	d.locker.EXPECT().
		TryLock(gomock.Any(), compensation.GetRecomputeLockKey(assignationID), 5*time.Second).
		Return(func() {}, nil)
}

func TestCompensationService_Recompute(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		companyID := deps.detail.CompanyID.String()
		assignationID := deps.detail.AssignationID.String()

		deps.expectLock(assignationID)
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Recompute(ctx, companyID, uuid.New().String(), assignationID)
		assert.NoError(t, err)
		assert.Len(t, resp.Lines, 3)
		assert.Equal(t, "138000.00", resp.TotalAmount)
		assert.Equal(t, "56000.00", resp.Lines[0].Total)
		assert.Equal(t, "2024-03-03", resp.Lines[2].Date)

		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, events.CompensationRecomputedTopic, deps.outbox.created[0].Topic)
		assert.Equal(t, kafka.OutboxStatusPending, deps.outbox.created[0].Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("recompute twice keeps one line per day", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		companyID := deps.detail.CompanyID.String()
		assignationID := deps.detail.AssignationID.String()

		deps.locker.EXPECT().TryLock(gomock.Any(), gomock.Any(), gomock.Any()).Return(func() {}, nil).Times(2)
		expectTx(t, deps.sqlMock, true)
		expectTx(t, deps.sqlMock, true)

		first, err := deps.service.Recompute(ctx, companyID, "", assignationID)
		assert.NoError(t, err)
		second, err := deps.service.Recompute(ctx, companyID, "", assignationID)
		assert.NoError(t, err)

		stored := deps.repo.lines[assignationID]
		assert.Len(t, stored, 3)
		assert.Equal(t, first.TotalAmount, second.TotalAmount)
		for i := range first.Lines {
			assert.Equal(t, first.Lines[i].Date, second.Lines[i].Date)
			assert.Equal(t, first.Lines[i].Total, second.Lines[i].Total)
		}
	})

	t.Run("lock held", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		assignationID := deps.detail.AssignationID.String()

		deps.locker.EXPECT().TryLock(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, lock.ErrLocked)

		_, err := deps.service.Recompute(ctx, deps.detail.CompanyID.String(), "", assignationID)
		assert.ErrorIs(t, err, compensationerrors.ErrRecomputeConflict)
		assert.Equal(t, 0, deps.repo.replaceCalls)
	})

	t.Run("paid lines block recompute", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		assignationID := deps.detail.AssignationID.String()
		deps.repo.lines[assignationID] = []compensation.Compensation{{ID: uuid.New(), Status: compensation.StatusPaid}}

		deps.expectLock(assignationID)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Recompute(ctx, deps.detail.CompanyID.String(), "", assignationID)
		assert.ErrorIs(t, err, compensationerrors.ErrAssignationAlreadyPaid)
		assert.Equal(t, 0, deps.repo.replaceCalls)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("invalid date range is rejected before any write", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		assignationID := deps.detail.AssignationID.String()
		deps.missions.detail.ReturnAt = deps.missions.detail.DepartureAt

		deps.expectLock(assignationID)

		_, err := deps.service.Recompute(ctx, deps.detail.CompanyID.String(), "", assignationID)
		assert.ErrorIs(t, err, compensationerrors.ErrInvalidDateRange)
		assert.Equal(t, 0, deps.repo.replaceCalls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("assignation not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		assignationID := deps.detail.AssignationID.String()
		deps.missions.detailErr = missionerrors.ErrAssignationNotFound

		deps.expectLock(assignationID)

		_, err := deps.service.Recompute(ctx, deps.detail.CompanyID.String(), "", assignationID)
		assert.ErrorIs(t, err, missionerrors.ErrAssignationNotFound)
	})

	t.Run("missing expense types", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		assignationID := deps.detail.AssignationID.String()
		deps.missions.expenseIDs = map[string]uuid.UUID{}

		deps.expectLock(assignationID)

		_, err := deps.service.Recompute(ctx, deps.detail.CompanyID.String(), "", assignationID)
		assert.ErrorIs(t, err, missionerrors.ErrExpenseTypesMissing)
	})

	t.Run("invalid assignation id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Recompute(ctx, deps.detail.CompanyID.String(), "", "abc")
		assert.ErrorIs(t, err, compensationerrors.ErrInvalidAssignationID)
	})
}

func TestCompensationService_MarkPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("success within range", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		actorID := uuid.New().String()
		from, to := "2024-03-01", "2024-03-02"

		deps.repo.markPaidFn = func(ctx context.Context, companyID, assignationID string, paidBy *uuid.UUID, paidAt time.Time, rng compensation.DateRange) (int64, error) {
			assert.Equal(t, deps.detail.AssignationID.String(), assignationID)
			assert.Equal(t, actorID, paidBy.String())
			assert.Equal(t, "2024-03-01", rng.From.Format("2006-01-02"))
			assert.Equal(t, "2024-03-02", rng.To.Format("2006-01-02"))
			return 2, nil
		}

		resp, err := deps.service.MarkPaid(ctx, deps.detail.CompanyID.String(), actorID, compensation.MarkPaidRequest{
			AssignationID: deps.detail.AssignationID.String(),
			From:          &from,
			To:            &to,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), resp.Count)
	})

	t.Run("already paid lines count zero", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		calls := 0
		deps.repo.markPaidFn = func(ctx context.Context, companyID, assignationID string, paidBy *uuid.UUID, paidAt time.Time, rng compensation.DateRange) (int64, error) {
			calls++
			assert.Nil(t, paidBy)
			assert.Nil(t, rng.From)
			assert.Nil(t, rng.To)
			return 0, nil
		}

		resp, err := deps.service.MarkPaid(ctx, deps.detail.CompanyID.String(), "", compensation.MarkPaidRequest{
			AssignationID: deps.detail.AssignationID.String(),
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, int64(0), resp.Count)
	})

	t.Run("mission not approved", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		deps.eligibility.eligible = false
		called := false
		deps.repo.markPaidFn = func(ctx context.Context, companyID, assignationID string, paidBy *uuid.UUID, paidAt time.Time, rng compensation.DateRange) (int64, error) {
			called = true
			return 0, nil
		}

		_, err := deps.service.MarkPaid(ctx, deps.detail.CompanyID.String(), "", compensation.MarkPaidRequest{
			AssignationID: deps.detail.AssignationID.String(),
		})
		assert.ErrorIs(t, err, compensationerrors.ErrMissionNotPayable)
		assert.False(t, called)
	})

	t.Run("eligibility error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		deps.eligibility.err = errors.New("db down")

		_, err := deps.service.MarkPaid(ctx, deps.detail.CompanyID.String(), "", compensation.MarkPaidRequest{
			AssignationID: deps.detail.AssignationID.String(),
		})
		assert.Error(t, err)
	})

	t.Run("inverted range", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		from, to := "2024-03-03", "2024-03-01"

		_, err := deps.service.MarkPaid(ctx, deps.detail.CompanyID.String(), "", compensation.MarkPaidRequest{
			AssignationID: deps.detail.AssignationID.String(),
			From:          &from,
			To:            &to,
		})
		assert.ErrorIs(t, err, compensationerrors.ErrInvalidPaidRange)
	})
}

func TestCompensationService_TotalForStatus(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.totalFn = func(ctx context.Context, companyID, status string) (decimal.Decimal, error) {
		assert.Equal(t, compensation.StatusNotPaid, status)
		return decimal.NewFromInt(138000), nil
	}

	resp, err := deps.service.TotalForStatus(ctx, deps.detail.CompanyID.String(), "not-paid")
	assert.NoError(t, err)
	assert.Equal(t, "138000.00", resp.Amount)

	_, err = deps.service.TotalForStatus(ctx, deps.detail.CompanyID.String(), "refunded")
	assert.ErrorIs(t, err, compensationerrors.ErrInvalidStatusFilter)
}

func TestCompensationService_PurgeAssignation(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()
	assignationID := deps.detail.AssignationID.String()

	deps.expectLock(assignationID)
	deps.repo.purgeFn = func(ctx context.Context, companyID, id string) (int64, error) {
		assert.Equal(t, assignationID, id)
		return 3, nil
	}

	count, err := deps.service.PurgeAssignation(ctx, deps.detail.CompanyID.String(), assignationID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
