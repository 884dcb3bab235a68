package businessflow_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MyData-Folk/tariff-vision/app/services"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/MyData-Folk/tariff-vision/config"
	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/utils"
)

// fakeRepo is an in-memory Repository[T, F]. Entities are stored by value so
// tests see exactly what was persisted, not later mutations of the caller's
// pointer.
type fakeRepo[T any, F any] struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]T
	id     func(*T) uint
	setID  func(*T, uint)
}

func newFakeRepo[T any, F any](id func(*T) uint, setID func(*T, uint)) *fakeRepo[T, F] {
	return &fakeRepo[T, F]{items: map[uint]T{}, id: id, setID: setID}
}

func (f *fakeRepo[T, F]) ByID(ctx context.Context, id uint) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (f *fakeRepo[T, F]) ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error) {
	return f.all(), nil
}

func (f *fakeRepo[T, F]) Save(ctx context.Context, entity *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.id(entity) == 0 {
		f.nextID++
		f.setID(entity, f.nextID)
	} else if f.id(entity) > f.nextID {
		f.nextID = f.id(entity)
	}
	f.items[f.id(entity)] = *entity
	return nil
}

func (f *fakeRepo[T, F]) SaveBatch(ctx context.Context, entities []*T) error {
	for _, e := range entities {
		if err := f.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRepo[T, F]) Update(ctx context.Context, entity *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id(entity)
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("entity %d not found", id)
	}
	f.items[id] = *entity
	return nil
}

func (f *fakeRepo[T, F]) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeRepo[T, F]) Count(ctx context.Context, filter F) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

func (f *fakeRepo[T, F]) Exists(ctx context.Context, filter F) (bool, error) {
	n, _ := f.Count(ctx, filter)
	return n > 0, nil
}

// all returns stored entities in ascending id order.
func (f *fakeRepo[T, F]) all() []*T {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uint, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		item := f.items[id]
		out = append(out, &item)
	}
	return out
}

type fakeCategoryRepo struct {
	*fakeRepo[models.RoomCategory, models.RoomCategoryFilter]
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{newFakeRepo[models.RoomCategory, models.RoomCategoryFilter](
		func(c *models.RoomCategory) uint { return c.ID },
		func(c *models.RoomCategory, id uint) { c.ID = id },
	)}
}

func (f *fakeCategoryRepo) ByCode(ctx context.Context, code string) (*models.RoomCategory, error) {
	for _, c := range f.all() {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) ListActive(ctx context.Context) ([]*models.RoomCategory, error) {
	var out []*models.RoomCategory
	for _, c := range f.all() {
		if utils.IsTrue(c.IsActive) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakePlanRepo struct {
	*fakeRepo[models.RatePlan, models.RatePlanFilter]
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{newFakeRepo[models.RatePlan, models.RatePlanFilter](
		func(p *models.RatePlan) uint { return p.ID },
		func(p *models.RatePlan, id uint) { p.ID = id },
	)}
}

func (f *fakePlanRepo) ByCode(ctx context.Context, code string) (*models.RatePlan, error) {
	for _, p := range f.all() {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePlanRepo) ListActive(ctx context.Context) ([]*models.RatePlan, error) {
	var out []*models.RatePlan
	for _, p := range f.all() {
		if utils.IsTrue(p.IsActive) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePartnerRepo struct {
	*fakeRepo[models.Partner, models.PartnerFilter]
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{newFakeRepo[models.Partner, models.PartnerFilter](
		func(p *models.Partner) uint { return p.ID },
		func(p *models.Partner, id uint) { p.ID = id },
	)}
}

func (f *fakePartnerRepo) ByName(ctx context.Context, name string) (*models.Partner, error) {
	for _, p := range f.all() {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePartnerRepo) ListActive(ctx context.Context) ([]*models.Partner, error) {
	var out []*models.Partner
	for _, p := range f.all() {
		if utils.IsTrue(p.IsActive) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeDailyRateRepo struct {
	*fakeRepo[models.DailyRate, models.DailyRateFilter]
}

func newFakeDailyRateRepo() *fakeDailyRateRepo {
	return &fakeDailyRateRepo{newFakeRepo[models.DailyRate, models.DailyRateFilter](
		func(r *models.DailyRate) uint { return r.ID },
		func(r *models.DailyRate, id uint) { r.ID = id },
	)}
}

func (f *fakeDailyRateRepo) ByDate(ctx context.Context, date time.Time) (*models.DailyRate, error) {
	key := utils.DayKey(date)
	for _, r := range f.all() {
		if utils.DayKey(r.Date) == key {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeDailyRateRepo) ByDateRange(ctx context.Context, from, to time.Time) ([]*models.DailyRate, error) {
	var out []*models.DailyRate
	for _, r := range f.all() {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDailyRateRepo) Upsert(ctx context.Context, rate *models.DailyRate) error {
	existing, _ := f.ByDate(ctx, rate.Date)
	if existing != nil {
		rate.ID = existing.ID
		return f.Update(ctx, rate)
	}
	return f.Save(ctx, rate)
}

type fakeCategoryRuleRepo struct {
	*fakeRepo[models.CategoryRule, models.CategoryRuleFilter]
}

func newFakeCategoryRuleRepo() *fakeCategoryRuleRepo {
	return &fakeCategoryRuleRepo{newFakeRepo[models.CategoryRule, models.CategoryRuleFilter](
		func(r *models.CategoryRule) uint { return r.ID },
		func(r *models.CategoryRule, id uint) { r.ID = id },
	)}
}

// ByCategoryID mirrors production: when duplicates exist the newest row wins.
func (f *fakeCategoryRuleRepo) ByCategoryID(ctx context.Context, categoryID uint) (*models.CategoryRule, error) {
	var newest *models.CategoryRule
	for _, r := range f.all() {
		if r.CategoryID == categoryID {
			newest = r
		}
	}
	return newest, nil
}

func (f *fakeCategoryRuleRepo) ListAll(ctx context.Context) ([]*models.CategoryRule, error) {
	return f.all(), nil
}

type fakePlanRuleRepo struct {
	*fakeRepo[models.PlanRule, models.PlanRuleFilter]
}

func newFakePlanRuleRepo() *fakePlanRuleRepo {
	return &fakePlanRuleRepo{newFakeRepo[models.PlanRule, models.PlanRuleFilter](
		func(r *models.PlanRule) uint { return r.ID },
		func(r *models.PlanRule, id uint) { r.ID = id },
	)}
}

func (f *fakePlanRuleRepo) ByPlanID(ctx context.Context, planID uint) (*models.PlanRule, error) {
	for _, r := range f.all() {
		if r.PlanID == planID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakePlanRuleRepo) ListAll(ctx context.Context) ([]*models.PlanRule, error) {
	return f.all(), nil
}

type fakeAdjustmentRepo struct {
	*fakeRepo[models.PartnerAdjustment, models.PartnerAdjustmentFilter]
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{newFakeRepo[models.PartnerAdjustment, models.PartnerAdjustmentFilter](
		func(a *models.PartnerAdjustment) uint { return a.ID },
		func(a *models.PartnerAdjustment, id uint) { a.ID = id },
	)}
}

func (f *fakeAdjustmentRepo) ByPartnerID(ctx context.Context, partnerID uint) ([]*models.PartnerAdjustment, error) {
	var out []*models.PartnerAdjustment
	for _, a := range f.all() {
		if a.PartnerID == partnerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAdjustmentRepo) ByIDs(ctx context.Context, ids []uint) ([]*models.PartnerAdjustment, error) {
	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []*models.PartnerAdjustment
	for _, a := range f.all() {
		if _, ok := wanted[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAdjustmentRepo) ListAll(ctx context.Context) ([]*models.PartnerAdjustment, error) {
	return f.all(), nil
}

type fakeOccupancyRepo struct {
	*fakeRepo[models.OccupancySnapshot, models.OccupancySnapshotFilter]
}

func newFakeOccupancyRepo() *fakeOccupancyRepo {
	return &fakeOccupancyRepo{newFakeRepo[models.OccupancySnapshot, models.OccupancySnapshotFilter](
		func(s *models.OccupancySnapshot) uint { return s.ID },
		func(s *models.OccupancySnapshot, id uint) { s.ID = id },
	)}
}

func (f *fakeOccupancyRepo) ByDate(ctx context.Context, date time.Time) (*models.OccupancySnapshot, error) {
	key := utils.DayKey(date)
	for _, s := range f.all() {
		if utils.DayKey(s.Date) == key {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeOccupancyRepo) ByDateRange(ctx context.Context, from, to time.Time) ([]*models.OccupancySnapshot, error) {
	var out []*models.OccupancySnapshot
	for _, s := range f.all() {
		if !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeOccupancyRepo) Upsert(ctx context.Context, snapshot *models.OccupancySnapshot) error {
	existing, _ := f.ByDate(ctx, snapshot.Date)
	if existing != nil {
		snapshot.ID = existing.ID
		return f.Update(ctx, snapshot)
	}
	return f.Save(ctx, snapshot)
}

type fakeAdminRepo struct {
	*fakeRepo[models.Admin, models.AdminFilter]
	lastLogins map[uint]time.Time
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		fakeRepo: newFakeRepo[models.Admin, models.AdminFilter](
			func(a *models.Admin) uint { return a.ID },
			func(a *models.Admin, id uint) { a.ID = id },
		),
		lastLogins: map[uint]time.Time{},
	}
}

func (f *fakeAdminRepo) ByUsername(ctx context.Context, username string) (*models.Admin, error) {
	for _, a := range f.all() {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) UpdateLastLogin(ctx context.Context, adminID uint, at time.Time) error {
	f.lastLogins[adminID] = at
	return nil
}

// fakeTokenService mints predictable tokens for flow tests.
type fakeTokenService struct {
	validateErr error
}

func (f *fakeTokenService) GenerateAdminTokens(adminID uint) (string, string, error) {
	return fmt.Sprintf("access-%d", adminID), fmt.Sprintf("refresh-%d", adminID), nil
}

func (f *fakeTokenService) ValidateAdminToken(token string) (*services.AdminTokenClaims, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return &services.AdminTokenClaims{AdminID: 1, TokenType: "refresh"}, nil
}

func (f *fakeTokenService) RefreshAdminToken(refreshToken string) (string, string, error) {
	return "access-refreshed", "refresh-refreshed", nil
}

// fakeCaptchaService accepts a single configured angle.
type fakeCaptchaService struct {
	challengeID string
	angle       float64
}

func (f *fakeCaptchaService) GenerateRotate(ctx context.Context) (*services.RotateChallenge, error) {
	return &services.RotateChallenge{
		ID:                f.challengeID,
		MasterImageBase64: "master",
		ThumbImageBase64:  "thumb",
	}, nil
}

func (f *fakeCaptchaService) VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool {
	return challengeID == f.challengeID && userAngle == f.angle
}

// flowEnv bundles the fakes plus a real snapshot provider wired without
// Redis, so provider reads go straight to the fakes.
type flowEnv struct {
	categories    *fakeCategoryRepo
	plans         *fakePlanRepo
	partners      *fakePartnerRepo
	dailyRates    *fakeDailyRateRepo
	categoryRules *fakeCategoryRuleRepo
	planRules     *fakePlanRuleRepo
	adjustments   *fakeAdjustmentRepo
	occupancy     *fakeOccupancyRepo
	admins        *fakeAdminRepo

	snapshots     businessflow.RuleSnapshotProvider
	pricingConfig *config.PricingConfig
}

func newFlowEnv() *flowEnv {
	env := &flowEnv{
		categories:    newFakeCategoryRepo(),
		plans:         newFakePlanRepo(),
		partners:      newFakePartnerRepo(),
		dailyRates:    newFakeDailyRateRepo(),
		categoryRules: newFakeCategoryRuleRepo(),
		planRules:     newFakePlanRuleRepo(),
		adjustments:   newFakeAdjustmentRepo(),
		occupancy:     newFakeOccupancyRepo(),
		admins:        newFakeAdminRepo(),
		pricingConfig: &config.PricingConfig{Currency: "EUR"},
	}
	env.snapshots = businessflow.NewRuleSnapshotProvider(
		env.dailyRates,
		env.categoryRules,
		env.planRules,
		env.adjustments,
		nil,
		&config.CacheConfig{},
	)
	return env
}

func (env *flowEnv) seedCategory(name string) *models.RoomCategory {
	c := &models.RoomCategory{Code: name, Name: name, IsActive: utils.ToPtr(true)}
	_ = env.categories.Save(context.Background(), c)
	return c
}

func (env *flowEnv) seedPlan(code, name string) *models.RatePlan {
	p := &models.RatePlan{Code: code, Name: name, IsActive: utils.ToPtr(true)}
	_ = env.plans.Save(context.Background(), p)
	return p
}

func (env *flowEnv) seedPartner(name, channel string) *models.Partner {
	p := &models.Partner{Name: name, Channel: channel, IsActive: utils.ToPtr(true)}
	_ = env.partners.Save(context.Background(), p)
	return p
}

func (env *flowEnv) seedDailyRate(day string, ota, travco float64) {
	date, err := utils.ParseDay(day)
	if err != nil {
		panic(err)
	}
	_ = env.dailyRates.Save(context.Background(), &models.DailyRate{Date: date, OTARate: ota, TravcoRate: travco})
}

func testMetadata() *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata("127.0.0.1", "test-agent")
}
