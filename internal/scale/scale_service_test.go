package scale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-mission/internal/scale"
	scaleerrors "go-mission/internal/scale/errors"
	scaleMock "go-mission/internal/scale/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	service   scale.Service
	repo      *scaleMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	rdb, redisMock := redismock.NewClientMock()
	repo := scaleMock.NewMockRepository(ctrl)

	return &serviceDeps{
		service:   scale.NewService(repo, rdb, time.Minute),
		repo:      repo,
		redismock: redisMock,
	}
}

func strPtr(s string) *string { return &s }

func TestScaleService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	categoryID := uuid.New().String()

	t.Run("success invalidates category cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := scale.CreateScaleRequest{
			EmployeeCategoryID: categoryID,
			ExpenseTypeID:      strPtr(uuid.New().String()),
			Amount:             "5000",
			EffectiveFrom:      strPtr("2024-01-01"),
		}

		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, sc *scale.CompensationScale) error {
				assert.Equal(t, categoryID, sc.EmployeeCategoryID.String())
				assert.Nil(t, sc.TransportID)
				assert.True(t, sc.Amount.Equal(decimal.NewFromInt(5000)))
				return nil
			})
		deps.redismock.ExpectIncr(scale.GetScaleGenerationKey(companyID, categoryID)).SetVal(4)
		deps.redismock.ExpectDel(scale.GetScaleCacheKey(companyID, categoryID)).SetVal(1)

		resp, err := deps.service.Create(ctx, companyID, uuid.New().String(), req)
		assert.NoError(t, err)
		assert.Equal(t, "expense_type", resp.Target)
		assert.Equal(t, "5000.00", resp.Amount)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("both targets set", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := scale.CreateScaleRequest{
			EmployeeCategoryID: categoryID,
			ExpenseTypeID:      strPtr(uuid.New().String()),
			TransportID:        strPtr(uuid.New().String()),
			Amount:             "5000",
		}

		_, err := deps.service.Create(ctx, companyID, "", req)
		assert.ErrorIs(t, err, scaleerrors.ErrInvalidScaleTarget)
	})

	t.Run("negative amount", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := scale.CreateScaleRequest{
			EmployeeCategoryID: categoryID,
			TransportID:        strPtr(uuid.New().String()),
			Amount:             "-1",
		}

		_, err := deps.service.Create(ctx, companyID, "", req)
		assert.ErrorIs(t, err, scaleerrors.ErrInvalidAmount)
	})

	t.Run("inverted effective range", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := scale.CreateScaleRequest{
			EmployeeCategoryID: categoryID,
			TransportID:        strPtr(uuid.New().String()),
			Amount:             "100",
			EffectiveFrom:      strPtr("2024-05-01"),
			EffectiveTo:        strPtr("2024-04-01"),
		}

		_, err := deps.service.Create(ctx, companyID, "", req)
		assert.ErrorIs(t, err, scaleerrors.ErrInvalidEffectiveRange)
	})
}

func TestScaleService_ResolverFor(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	category := uuid.New()
	breakfast := uuid.New()
	rows := []scale.CompensationScale{
		{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), EmployeeCategoryID: category, ExpenseTypeID: &breakfast, Amount: decimal.NewFromInt(5000)},
	}
	key := scale.GetScaleCacheKey(companyID, category.String())

	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal(rows)
		deps.redismock.ExpectGet(key).SetVal(string(cached))

		r, err := deps.service.ResolverFor(ctx, companyID, category.String())
		assert.NoError(t, err)

		amount, err := r.Amount(scale.ExpenseTarget(breakfast), time.Now())
		assert.NoError(t, err)
		assert.True(t, amount.Equal(decimal.NewFromInt(5000)))
	})

	genKey := scale.GetScaleGenerationKey(companyID, category.String())
	data, _ := json.Marshal(rows)

	t.Run("cache miss loads from repository and fills", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(key).RedisNil()
		deps.redismock.ExpectGet(genKey).RedisNil()
		deps.repo.EXPECT().FindByCategory(ctx, companyID, category.String()).Return(rows, nil)
		deps.redismock.ExpectEvalSha(scale.FillScriptHash(), []string{key, genKey}, "", data, int64(60000)).SetVal(int64(1))

		r, err := deps.service.ResolverFor(ctx, companyID, category.String())
		assert.NoError(t, err)

		amount, err := r.Amount(scale.ExpenseTarget(breakfast), time.Now())
		assert.NoError(t, err)
		assert.True(t, amount.Equal(decimal.NewFromInt(5000)))
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("fill carries the generation read before loading", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(key).RedisNil()
		deps.redismock.ExpectGet(genKey).SetVal("3")
		deps.repo.EXPECT().FindByCategory(ctx, companyID, category.String()).Return(rows, nil)
		// A create bumped the generation meanwhile: the script refuses the write.
		deps.redismock.ExpectEvalSha(scale.FillScriptHash(), []string{key, genKey}, "3", data, int64(60000)).SetVal(int64(0))

		r, err := deps.service.ResolverFor(ctx, companyID, category.String())

		assert.NoError(t, err)
		assert.NotNil(t, r)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("unreadable generation skips the fill", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(key).RedisNil()
		deps.redismock.ExpectGet(genKey).SetErr(errors.New("connection refused"))
		deps.repo.EXPECT().FindByCategory(ctx, companyID, category.String()).Return(rows, nil)

		_, err := deps.service.ResolverFor(ctx, companyID, category.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(key).RedisNil()
		deps.redismock.ExpectGet(genKey).RedisNil()
		deps.repo.EXPECT().FindByCategory(ctx, companyID, category.String()).Return(nil, errors.New("db down"))

		_, err := deps.service.ResolverFor(ctx, companyID, category.String())
		assert.Error(t, err)
	})

	t.Run("invalid category id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.ResolverFor(ctx, companyID, "nope")
		assert.ErrorIs(t, err, scaleerrors.ErrInvalidCategoryID)
	})
}
