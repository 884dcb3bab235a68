package businessflow

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/MyData-Folk/tariff-vision/config"
	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/MyData-Folk/tariff-vision/repository"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/redis/go-redis/v9"
)

// RuleSnapshotProvider materializes pricing.RuleSet snapshots for the
// calculation flows. Rule collections are cached in Redis and rebuilt on
// Refresh or after Invalidate; daily rates are always fetched fresh for the
// requested range since they change day to day. The engine never sees the
// cache: flows hand it a fully built value.
type RuleSnapshotProvider interface {
	// Snapshot returns a RuleSet covering [from, to] daily rates plus the
	// cached rule collections.
	Snapshot(ctx context.Context, from, to time.Time) (pricing.RuleSet, error)
	// Refresh rebuilds the cached rule collections from the database.
	Refresh(ctx context.Context) error
	// Invalidate drops the cached rule collections; the next Snapshot
	// rebuilds them.
	Invalidate(ctx context.Context) error
}

// ruleCachePayload is the Redis-serialized form of the rule collections.
type ruleCachePayload struct {
	CategoryRules      []models.CategoryRule      `json:"category_rules"`
	PlanRules          []models.PlanRule          `json:"plan_rules"`
	PartnerAdjustments []models.PartnerAdjustment `json:"partner_adjustments"`
	CachedAt           time.Time                  `json:"cached_at"`
}

type RuleSnapshotProviderImpl struct {
	dailyRateRepo  repository.DailyRateRepository
	categoryRepo   repository.CategoryRuleRepository
	planRepo       repository.PlanRuleRepository
	adjustmentRepo repository.PartnerAdjustmentRepository
	rc             *redis.Client
	cacheConfig    *config.CacheConfig
}

func NewRuleSnapshotProvider(
	dailyRateRepo repository.DailyRateRepository,
	categoryRepo repository.CategoryRuleRepository,
	planRepo repository.PlanRuleRepository,
	adjustmentRepo repository.PartnerAdjustmentRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) RuleSnapshotProvider {
	return &RuleSnapshotProviderImpl{
		dailyRateRepo:  dailyRateRepo,
		categoryRepo:   categoryRepo,
		planRepo:       planRepo,
		adjustmentRepo: adjustmentRepo,
		rc:             rc,
		cacheConfig:    cacheConfig,
	}
}

func (p *RuleSnapshotProviderImpl) Snapshot(ctx context.Context, from, to time.Time) (pricing.RuleSet, error) {
	payload, err := p.loadRules(ctx)
	if err != nil {
		return pricing.RuleSet{}, err
	}

	rates, err := p.dailyRateRepo.ByDateRange(ctx, from, to)
	if err != nil {
		return pricing.RuleSet{}, NewBusinessError("DAILY_RATES_FETCH_FAILED", "Failed to fetch daily rates", err)
	}

	dailyRates := make([]models.DailyRate, 0, len(rates))
	for _, r := range rates {
		dailyRates = append(dailyRates, *r)
	}

	return pricing.NewRuleSet(dailyRates, payload.CategoryRules, payload.PlanRules, payload.PartnerAdjustments), nil
}

func (p *RuleSnapshotProviderImpl) Refresh(ctx context.Context) error {
	_, err := p.rebuild(ctx)
	return err
}

func (p *RuleSnapshotProviderImpl) Invalidate(ctx context.Context) error {
	if p.rc == nil {
		return nil
	}
	key := redisKey(*p.cacheConfig, utils.RuleSnapshotCacheKey)
	if err := p.rc.Del(ctx, key).Err(); err != nil {
		return NewBusinessError("RULE_CACHE_INVALIDATE_FAILED", "Failed to invalidate rule cache", err)
	}
	return nil
}

// loadRules returns the cached rule collections, rebuilding on a miss.
func (p *RuleSnapshotProviderImpl) loadRules(ctx context.Context) (*ruleCachePayload, error) {
	if p.rc == nil {
		return p.fetchRules(ctx)
	}

	key := redisKey(*p.cacheConfig, utils.RuleSnapshotCacheKey)
	raw, err := p.rc.Get(ctx, key).Bytes()
	if err == nil {
		var payload ruleCachePayload
		if jsonErr := json.Unmarshal(raw, &payload); jsonErr == nil {
			return &payload, nil
		}
		// Corrupt cache entry; fall through to rebuild.
		log.Printf("businessflow: corrupt rule cache entry at %s, rebuilding", key)
	} else if err != redis.Nil {
		// Redis down is not fatal for a read path: serve from the database.
		log.Printf("businessflow: rule cache read failed (%v), serving from database", err)
		return p.fetchRules(ctx)
	}

	return p.rebuild(ctx)
}

// rebuild fetches rules from the database and stores them in Redis under a
// short lock so concurrent misses don't all hit the database.
func (p *RuleSnapshotProviderImpl) rebuild(ctx context.Context) (*ruleCachePayload, error) {
	payload, err := p.fetchRules(ctx)
	if err != nil {
		return nil, err
	}

	if p.rc == nil {
		return payload, nil
	}

	lockKey := redisKey(*p.cacheConfig, utils.RuleSnapshotLockKey)
	cacheKey := redisKey(*p.cacheConfig, utils.RuleSnapshotCacheKey)

	ok, err := p.rc.SetNX(ctx, lockKey, "1", 10*time.Second).Result()
	if err != nil || !ok {
		// Someone else is writing or Redis is unwell; the fresh payload is
		// still valid for this caller.
		return payload, nil
	}
	defer func() {
		_ = p.rc.Del(context.Background(), lockKey).Err()
	}()

	raw, err := json.Marshal(payload)
	if err != nil {
		return payload, nil
	}
	if err := p.rc.Set(ctx, cacheKey, raw, p.cacheConfig.DefaultTTL).Err(); err != nil {
		log.Printf("businessflow: rule cache write failed: %v", err)
	}

	return payload, nil
}

func (p *RuleSnapshotProviderImpl) fetchRules(ctx context.Context) (*ruleCachePayload, error) {
	categoryRules, err := p.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_RULES_FETCH_FAILED", "Failed to fetch category rules", err)
	}
	planRules, err := p.planRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("PLAN_RULES_FETCH_FAILED", "Failed to fetch plan rules", err)
	}
	adjustments, err := p.adjustmentRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("PARTNER_ADJUSTMENTS_FETCH_FAILED", "Failed to fetch partner adjustments", err)
	}

	payload := &ruleCachePayload{
		CategoryRules:      make([]models.CategoryRule, 0, len(categoryRules)),
		PlanRules:          make([]models.PlanRule, 0, len(planRules)),
		PartnerAdjustments: make([]models.PartnerAdjustment, 0, len(adjustments)),
		CachedAt:           utils.UTCNow(),
	}
	for _, r := range categoryRules {
		payload.CategoryRules = append(payload.CategoryRules, *r)
	}
	for _, r := range planRules {
		payload.PlanRules = append(payload.PlanRules, *r)
	}
	for _, a := range adjustments {
		payload.PartnerAdjustments = append(payload.PartnerAdjustments, *a)
	}

	return payload, nil
}
