package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/repository"
	testingutil "github.com/MyData-Folk/tariff-vision/testing"
	"github.com/MyData-Folk/tariff-vision/utils"
)

// withTestDB provisions a throwaway database for one test and tears it down
// afterwards. Tests skip when no PostgreSQL server is reachable so the rest
// of the suite stays runnable without infrastructure.
func withTestDB(t *testing.T, fn func(t *testing.T, testDB *testingutil.TestDB)) {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	defer func() {
		if cleanupErr := testDB.TeardownTestDB(); cleanupErr != nil {
			t.Logf("warning: failed to cleanup test database: %v", cleanupErr)
		}
	}()

	fn(t, testDB)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestDailyRateRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		repo := repository.NewDailyRateRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("UpsertAndByDate", func(t *testing.T) {
			err := repo.Upsert(ctx, &models.DailyRate{
				UUID:       uuid.New(),
				Date:       day(t, "2025-06-05"),
				OTARate:    120,
				TravcoRate: 100,
			})
			require.NoError(t, err)

			rate, err := repo.ByDate(ctx, day(t, "2025-06-05"))
			require.NoError(t, err)
			require.NotNil(t, rate)
			assert.Equal(t, 120.0, rate.OTARate)
			assert.Equal(t, 100.0, rate.TravcoRate)
		})

		t.Run("ByDateNotFound", func(t *testing.T) {
			rate, err := repo.ByDate(ctx, day(t, "2030-01-01"))
			assert.NoError(t, err)
			assert.Nil(t, rate)
		})

		t.Run("UpsertReplacesSameDay", func(t *testing.T) {
			err := repo.Upsert(ctx, &models.DailyRate{
				UUID:       uuid.New(),
				Date:       day(t, "2025-06-05"),
				OTARate:    150,
				TravcoRate: 130,
			})
			require.NoError(t, err)

			rate, err := repo.ByDate(ctx, day(t, "2025-06-05"))
			require.NoError(t, err)
			require.NotNil(t, rate)
			assert.Equal(t, 150.0, rate.OTARate)
			assert.Equal(t, 130.0, rate.TravcoRate)

			count, err := repo.Count(ctx, models.DailyRateFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("ByDateRange", func(t *testing.T) {
			_, err := fixtures.CreateTestDailyRate(day(t, "2025-06-07"), 140, 120)
			require.NoError(t, err)
			_, err = fixtures.CreateTestDailyRate(day(t, "2025-06-06"), 130, 110)
			require.NoError(t, err)

			rates, err := repo.ByDateRange(ctx, day(t, "2025-06-05"), day(t, "2025-06-07"))
			require.NoError(t, err)
			require.Len(t, rates, 3)
			// Ordered by day regardless of insertion order.
			assert.Equal(t, 150.0, rates[0].OTARate)
			assert.Equal(t, 130.0, rates[1].OTARate)
			assert.Equal(t, 140.0, rates[2].OTARate)

			rates, err = repo.ByDateRange(ctx, day(t, "2025-06-06"), day(t, "2025-06-06"))
			require.NoError(t, err)
			require.Len(t, rates, 1)
			assert.Equal(t, 130.0, rates[0].OTARate)
		})
	})
}

func TestCategoryRuleRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		repo := repository.NewCategoryRuleRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		category, err := fixtures.CreateTestCategory("Chambre Double")
		require.NoError(t, err)

		t.Run("ByCategoryIDNotFound", func(t *testing.T) {
			rule, err := repo.ByCategoryID(ctx, category.ID)
			assert.NoError(t, err)
			assert.Nil(t, rule)
		})

		t.Run("ByCategoryIDNewestWins", func(t *testing.T) {
			older, err := fixtures.CreateTestCategoryRule(category.ID, models.FormulaMultiplicative, 1.2, 10)
			require.NoError(t, err)
			newer, err := fixtures.CreateTestCategoryRule(category.ID, models.FormulaAdditive, 1, 25)
			require.NoError(t, err)

			rule, err := repo.ByCategoryID(ctx, category.ID)
			require.NoError(t, err)
			require.NotNil(t, rule)
			assert.Equal(t, newer.ID, rule.ID)
			assert.NotEqual(t, older.ID, rule.ID)
			assert.Equal(t, models.FormulaAdditive, rule.FormulaType)
		})

		t.Run("ListAllDeduplicatesPerCategory", func(t *testing.T) {
			other, err := fixtures.CreateTestCategory("Suite")
			require.NoError(t, err)
			_, err = fixtures.CreateTestCategoryRule(other.ID, models.FormulaFixed, 0, 200)
			require.NoError(t, err)

			rules, err := repo.ListAll(ctx)
			require.NoError(t, err)
			assert.Len(t, rules, 2)
		})
	})
}

func TestPlanRuleRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		repo := repository.NewPlanRuleRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		plan, err := fixtures.CreateTestPlan("Flexible")
		require.NoError(t, err)

		t.Run("ByPlanIDNotFound", func(t *testing.T) {
			rule, err := repo.ByPlanID(ctx, plan.ID)
			assert.NoError(t, err)
			assert.Nil(t, rule)
		})

		t.Run("StepsRoundTripInOrder", func(t *testing.T) {
			steps := models.PlanSteps{
				{Type: models.StepMultiply, Value: models.NewStepValue(1.1)},
				{Type: models.StepAdd, Value: models.NewStepValue(5)},
				{Type: models.StepPercentage, Value: models.NewStepValue(15)},
			}
			_, err := fixtures.CreateTestPlanRule(plan.ID, steps)
			require.NoError(t, err)

			rule, err := repo.ByPlanID(ctx, plan.ID)
			require.NoError(t, err)
			require.NotNil(t, rule)
			require.Len(t, rule.Steps, 3)
			assert.Equal(t, models.StepMultiply, rule.Steps[0].Type)
			assert.Equal(t, models.NewStepValue(1.1), rule.Steps[0].Value)
			assert.Equal(t, models.StepAdd, rule.Steps[1].Type)
			assert.Equal(t, models.StepPercentage, rule.Steps[2].Type)
		})
	})
}

func TestPartnerAdjustmentRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		repo := repository.NewPartnerAdjustmentRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		partner, err := fixtures.CreateTestPartner("Booking.com", models.PartnerChannelOTA)
		require.NoError(t, err)

		first, err := fixtures.CreateTestAdjustment(partner.ID, models.AdjustmentPercentage, "10", "Majoration saison")
		require.NoError(t, err)
		second, err := fixtures.CreateTestAdjustment(partner.ID, models.AdjustmentFixed, "5", "Frais de dossier")
		require.NoError(t, err)
		third, err := fixtures.CreateTestAdjustment(partner.ID, models.AdjustmentCommission, "18", "Commission canal")
		require.NoError(t, err)

		t.Run("ByPartnerIDAscendingOrder", func(t *testing.T) {
			adjustments, err := repo.ByPartnerID(ctx, partner.ID)
			require.NoError(t, err)
			require.Len(t, adjustments, 3)
			assert.Equal(t, first.ID, adjustments[0].ID)
			assert.Equal(t, second.ID, adjustments[1].ID)
			assert.Equal(t, third.ID, adjustments[2].ID)
		})

		t.Run("ByIDsSkipsUnknown", func(t *testing.T) {
			adjustments, err := repo.ByIDs(ctx, []uint{third.ID, first.ID, 99999})
			require.NoError(t, err)
			require.Len(t, adjustments, 2)
			assert.Equal(t, first.ID, adjustments[0].ID)
			assert.Equal(t, third.ID, adjustments[1].ID)
		})

		t.Run("ByIDsEmpty", func(t *testing.T) {
			adjustments, err := repo.ByIDs(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, adjustments)
		})

		t.Run("CountByPartner", func(t *testing.T) {
			count, err := repo.Count(ctx, models.PartnerAdjustmentFilter{PartnerID: &partner.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)
		})
	})
}

func TestRoomCategoryRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		repo := repository.NewRoomCategoryRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		category, err := fixtures.CreateTestCategory("Chambre Twin")
		require.NoError(t, err)

		t.Run("ByCode", func(t *testing.T) {
			found, err := repo.ByCode(ctx, category.Code)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, category.ID, found.ID)
		})

		t.Run("ByCodeNotFound", func(t *testing.T) {
			found, err := repo.ByCode(ctx, "no-such-code")
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ListActiveExcludesDisabled", func(t *testing.T) {
			disabled, err := fixtures.CreateTestCategory("Chambre Fermée")
			require.NoError(t, err)
			disabled.IsActive = utils.ToPtr(false)
			require.NoError(t, repo.Update(ctx, disabled))

			active, err := repo.ListActive(ctx)
			require.NoError(t, err)
			require.Len(t, active, 1)
			assert.Equal(t, category.ID, active[0].ID)
		})
	})
}

func TestOccupancySnapshotRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		repo := repository.NewOccupancySnapshotRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("UpsertAndByDate", func(t *testing.T) {
			err := repo.Upsert(ctx, &models.OccupancySnapshot{
				UUID:            uuid.New(),
				Date:            day(t, "2025-06-07"),
				OccupancyRate:   82.5,
				CompetitorPrice: 200,
				Source:          utils.ToPtr("channel-manager"),
			})
			require.NoError(t, err)

			snapshot, err := repo.ByDate(ctx, day(t, "2025-06-07"))
			require.NoError(t, err)
			require.NotNil(t, snapshot)
			assert.Equal(t, 82.5, snapshot.OccupancyRate)
		})

		t.Run("UpsertReplacesSameDay", func(t *testing.T) {
			err := repo.Upsert(ctx, &models.OccupancySnapshot{
				UUID:            uuid.New(),
				Date:            day(t, "2025-06-07"),
				OccupancyRate:   55,
				CompetitorPrice: 180,
				Source:          utils.ToPtr("manual"),
			})
			require.NoError(t, err)

			snapshots, err := repo.ByDateRange(ctx, day(t, "2025-06-01"), day(t, "2025-06-30"))
			require.NoError(t, err)
			require.Len(t, snapshots, 1)
			assert.Equal(t, 55.0, snapshots[0].OccupancyRate)
			assert.Equal(t, 180.0, snapshots[0].CompetitorPrice)
		})
	})
}

func TestAdminRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		repo := repository.NewAdminRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		admin, err := fixtures.CreateTestAdmin("direction", "un-mot-de-passe")
		require.NoError(t, err)

		t.Run("ByUsername", func(t *testing.T) {
			found, err := repo.ByUsername(ctx, "direction")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, admin.ID, found.ID)
			assert.True(t, utils.IsTrue(found.IsActive))
		})

		t.Run("ByUsernameNotFound", func(t *testing.T) {
			found, err := repo.ByUsername(ctx, "nobody")
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("UpdateLastLogin", func(t *testing.T) {
			at := utils.UTCNow()
			require.NoError(t, repo.UpdateLastLogin(ctx, admin.ID, at))

			found, err := repo.ByID(ctx, admin.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			require.NotNil(t, found.LastLoginAt)
			assert.WithinDuration(t, at, *found.LastLoginAt, time.Second)
		})
	})
}
