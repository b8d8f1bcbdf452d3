package scale

import (
	"context"
	"errors"
	"fmt"
	"time"

	scaleerrors "go-mission/internal/scale/errors"
	"go-mission/internal/shared/apperror"
	"go-mission/internal/shared/contextutil"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ScaleCacheKeyPrefix = "scales:"
	DefaultCacheTTL     = 30 * time.Minute
	dateLayout          = "2006-01-02"
)

func GetScaleCacheKey(companyID, categoryID string) string {
	return fmt.Sprintf("%s%s:%s", ScaleCacheKeyPrefix, companyID, categoryID)
}

// GetScaleGenerationKey counts invalidations of one category's cache entry.
func GetScaleGenerationKey(companyID, categoryID string) string {
	return fmt.Sprintf("%sgen:%s:%s", ScaleCacheKeyPrefix, companyID, categoryID)
}

// fillScript caches ARGV[2] only while the generation still equals ARGV[1],
// the value read before the rows were loaded.
var fillScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or ""
if gen ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

//go:generate mockgen -source=scale_service.go -destination=mock/scale_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateScaleRequest) (ScaleResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ScaleResponse, error)
	ResolverFor(ctx context.Context, companyID, categoryID string) (*Resolver, error)
}

type service struct {
	repo     Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, cacheTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("scale.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scale.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &service{
		repo:     repo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		cacheTTL: cacheTTL,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateScaleRequest) (ScaleResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create compensation scale requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_category_id", req.EmployeeCategoryID),
	)

	scale, err := buildScale(companyID, actorID, req)
	if err != nil {
		s.logger.Warn("create compensation scale rejected", zap.String("request_id", rid), zap.Error(err))
		return ScaleResponse{}, err
	}

	if err := s.repo.Create(ctx, scale); err != nil {
		s.logger.Error("create compensation scale persist failed", zap.String("request_id", rid), zap.Error(err))
		return ScaleResponse{}, err
	}

	s.invalidate(ctx, companyID, req.EmployeeCategoryID)

	s.logger.Info("create compensation scale success",
		zap.String("request_id", rid),
		zap.String("scale_id", scale.ID.String()),
	)
	return mapToResponse(*scale), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ScaleResponse, error) {
	s.logger.Debug("get all compensation scales requested", zap.String("company_id", companyID))
	scales, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all compensation scales failed", zap.Error(err))
		return nil, err
	}

	resp := make([]ScaleResponse, 0, len(scales))
	for _, sc := range scales {
		resp = append(resp, mapToResponse(sc))
	}
	return resp, nil
}

// ResolverFor loads the scale table of one category, from Redis when warm.
func (s *service) ResolverFor(ctx context.Context, companyID, categoryID string) (*Resolver, error) {
	catID, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, scaleerrors.ErrInvalidCategoryID
	}

	cacheKey := GetScaleCacheKey(companyID, categoryID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var rows []CompensationScale
			if json.Unmarshal([]byte(cached), &rows) == nil {
				return NewResolver(catID, rows), nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		gen, cacheable := s.generation(ctx, companyID, categoryID)

		rows, err := s.repo.FindByCategory(ctx, companyID, categoryID)
		if err != nil {
			return nil, err
		}

		if cacheable {
			s.fill(ctx, companyID, categoryID, gen, rows)
		}
		return rows, nil
	})
	if err != nil {
		s.logger.Error("load compensation scales failed",
			zap.String("company_id", companyID),
			zap.String("employee_category_id", categoryID),
			zap.Error(err),
		)
		return nil, err
	}

	return NewResolver(catID, v.([]CompensationScale)), nil
}

// generation must be read before the rows so that an invalidation landing
// in between is detected by fill.
func (s *service) generation(ctx context.Context, companyID, categoryID string) (string, bool) {
	if s.rdb == nil {
		return "", false
	}
	gen, err := s.rdb.Get(ctx, GetScaleGenerationKey(companyID, categoryID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", true
	}
	if err != nil {
		s.logger.Warn("read compensation scale cache generation failed", zap.Error(err))
		return "", false
	}
	return gen, true
}

func (s *service) fill(ctx context.Context, companyID, categoryID, gen string, rows []CompensationScale) {
	cacheKey := GetScaleCacheKey(companyID, categoryID)
	data, err := json.Marshal(rows)
	if err != nil {
		return
	}
	keys := []string{cacheKey, GetScaleGenerationKey(companyID, categoryID)}
	stored, err := fillScript.Run(ctx, s.rdb, keys, gen, data, s.cacheTTL.Milliseconds()).Int()
	if err != nil {
		s.logger.Warn("cache compensation scales failed", zap.String("key", cacheKey), zap.Error(err))
		return
	}
	if stored == 0 {
		s.logger.Debug("compensation scales changed while loading, cache fill skipped", zap.String("key", cacheKey))
	}
}

// invalidate bumps the generation before dropping the entry, so a fill that
// loaded rows before the change cannot write them back.
func (s *service) invalidate(ctx context.Context, companyID, categoryID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetScaleCacheKey(companyID, categoryID)
	if err := s.rdb.Incr(ctx, GetScaleGenerationKey(companyID, categoryID)).Err(); err != nil {
		s.logger.Error("failed to bump compensation scale cache generation",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate compensation scale cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func buildScale(companyID, actorID string, req CreateScaleRequest) (*CompensationScale, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, apperror.InvalidField("company_id")
	}
	categoryID, err := uuid.Parse(req.EmployeeCategoryID)
	if err != nil {
		return nil, scaleerrors.ErrInvalidCategoryID
	}

	expenseTypeID, err := parseOptionalUUID(req.ExpenseTypeID)
	if err != nil {
		return nil, scaleerrors.ErrInvalidScaleTarget
	}
	transportID, err := parseOptionalUUID(req.TransportID)
	if err != nil {
		return nil, scaleerrors.ErrInvalidScaleTarget
	}
	if _, err := NewTarget(expenseTypeID, transportID); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return nil, scaleerrors.ErrInvalidAmount
	}

	from, err := parseOptionalDate(req.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(req.EffectiveTo)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, scaleerrors.ErrInvalidEffectiveRange
	}

	scale := &CompensationScale{
		ID:                 uuid.New(),
		CompanyID:          companyUUID,
		EmployeeCategoryID: categoryID,
		ExpenseTypeID:      expenseTypeID,
		TransportID:        transportID,
		Amount:             amount.Round(2),
		EffectiveFrom:      from,
		EffectiveTo:        to,
		CreatedAt:          time.Now().UTC(),
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		scale.CreatedBy = &actor
	}
	return scale, nil
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, scaleerrors.ErrInvalidDateFormat
	}
	return &t, nil
}

func mapToResponse(sc CompensationScale) ScaleResponse {
	resp := ScaleResponse{
		ID:                 sc.ID.String(),
		EmployeeCategoryID: sc.EmployeeCategoryID.String(),
		Amount:             sc.Amount.StringFixed(2),
		CreatedAt:          sc.CreatedAt.Format(time.RFC3339),
	}
	if sc.ExpenseTypeID != nil {
		v := sc.ExpenseTypeID.String()
		resp.ExpenseTypeID = &v
	}
	if sc.TransportID != nil {
		v := sc.TransportID.String()
		resp.TransportID = &v
	}
	if target, err := TargetOf(sc); err == nil {
		resp.Target = target.Kind().String()
	}
	if sc.EffectiveFrom != nil {
		v := sc.EffectiveFrom.Format(dateLayout)
		resp.EffectiveFrom = &v
	}
	if sc.EffectiveTo != nil {
		v := sc.EffectiveTo.Format(dateLayout)
		resp.EffectiveTo = &v
	}
	return resp
}
