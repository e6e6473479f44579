package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/revenue-engine-api/internal/config"
	"github.com/vfg2006/revenue-engine-api/internal/domain"
	"github.com/vfg2006/revenue-engine-api/internal/notifier"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/projecting"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/tracking"
)

func testConfig() *config.Config {
	return &config.Config{
		RevenueTargets: config.RevenueTargets{
			Daily:   1500,
			Monthly: 45000,
			Annual:  540000,
			Growth:  0.15,
		},
		Optimizer: config.Optimizer{
			OptimizationThreshold: 0.85,
			AlertThreshold:        0.9,
		},
	}
}

func newTestOptimizer(cfg *config.Config) (Optimizer, *registry.Registry, *notifier.Notifier) {
	reg := registry.New()
	n := notifier.New()
	projector := projecting.NewService(cfg, reg)
	tracker := tracking.NewService(reg, n, nil)

	return NewService(cfg, reg, projector, tracker, n), reg, n
}

func TestOptimizeRevenue_AboveThresholdIsNoOp(t *testing.T) {
	cfg := testConfig()
	optimizer, reg, n := newTestOptimizer(cfg)

	var optimizedEvents []notifier.Event
	n.Subscribe(notifier.EventRevenueOptimized, func(e notifier.Event) {
		optimizedEvents = append(optimizedEvents, e)
	})

	// Receita diária acima de 1500 × 0.85 = 1275
	reg.MutateTier("starter", func(tier *domain.SubscriptionTier) float64 { return 1300 })

	tiersBefore := reg.AllTiers()

	metrics, adjusted := optimizer.OptimizeRevenue()
	assert.False(t, adjusted)
	assert.Equal(t, 1300.0, metrics.DailyTotal)

	// Nenhum submodelo foi alterado e nenhuma campanha foi criada
	assert.Equal(t, tiersBefore, reg.AllTiers())
	assert.Empty(t, reg.AllCampaigns())
	assert.Empty(t, optimizedEvents)
}

func TestOptimizeRevenue_BoostsLowConversionRates(t *testing.T) {
	optimizer, reg, _ := newTestOptimizer(testConfig())

	_, adjusted := optimizer.OptimizeRevenue()
	assert.True(t, adjusted)

	// Taxas do seed (0.08, 0.05, 0.03) estão abaixo de 0.10 e sobem 10%
	tiers := reg.AllTiers()
	assert.InDelta(t, 0.08*1.1, tiers[0].ConversionRate, 1e-9)
	assert.InDelta(t, 0.05*1.1, tiers[1].ConversionRate, 1e-9)
	assert.InDelta(t, 0.03*1.1, tiers[2].ConversionRate, 1e-9)
}

func TestOptimizeRevenue_ConversionRateCap(t *testing.T) {
	optimizer, reg, _ := newTestOptimizer(testConfig())

	reg.MutateTier("starter", func(tier *domain.SubscriptionTier) float64 {
		tier.ConversionRate = 0.145
		return 0
	})

	optimizer.OptimizeRevenue()

	// 0.145 × 1.1 = 0.1595 ultrapassa o teto e é limitado a 0.15
	tier, _ := reg.Tier("starter")
	assert.Equal(t, 0.15, tier.ConversionRate)
}

func TestOptimizeRevenue_StarterPriceIncrease(t *testing.T) {
	optimizer, reg, _ := newTestOptimizer(testConfig())

	// 460 de 500 usuários = 92% da meta, acima do gatilho de 90%
	reg.MutateTier("starter", func(tier *domain.SubscriptionTier) float64 {
		tier.CurrentUsers = 460
		return 0
	})

	optimizer.OptimizeRevenue()

	// floor(29 × 1.05) = floor(30.45) = 30
	tier, _ := reg.Tier("starter")
	assert.Equal(t, 30.0, tier.Price)

	// Demais planos não têm reajuste de preço
	professional, _ := reg.Tier("professional")
	assert.Equal(t, 99.0, professional.Price)
}

func TestOptimizeRevenue_SeedsCampaignsForEmptyPlatforms(t *testing.T) {
	optimizer, reg, n := newTestOptimizer(testConfig())

	var campaignEvents []notifier.Event
	n.Subscribe(notifier.EventCampaignCreated, func(e notifier.Event) {
		campaignEvents = append(campaignEvents, e)
	})

	_, adjusted := optimizer.OptimizeRevenue()
	assert.True(t, adjusted)

	// Uma campanha de seed por plataforma sem campanhas
	for _, platform := range domain.AdPlatforms {
		campaigns := reg.CampaignsByPlatform(platform)
		assert.Len(t, campaigns, 1, "plataforma %s deveria ter campanha de seed", platform)
		assert.Equal(t, "Campanha "+string(platform), campaigns[0].Name)
		assert.Equal(t, 1000.0, campaigns[0].Budget)
		assert.Equal(t, 2.0, campaigns[0].CPM)
		assert.Equal(t, 0.5, campaigns[0].CPC)
		assert.Equal(t, 2.0, campaigns[0].ROAS)
	}

	assert.Len(t, campaignEvents, len(domain.AdPlatforms))

	// Segundo ciclo não duplica campanhas de seed
	optimizer.OptimizeRevenue()
	assert.Len(t, reg.AllCampaigns(), len(domain.AdPlatforms))
}

func TestOptimizeRevenue_BoostsHighRoasCampaignBudgets(t *testing.T) {
	optimizer, reg, _ := newTestOptimizer(testConfig())

	reg.AddCampaign(domain.AdCampaign{ID: "alta01", Platform: domain.AdPlatformGoogle, Budget: 505, ROAS: 3.5})
	reg.AddCampaign(domain.AdCampaign{ID: "baixa1", Platform: domain.AdPlatformFacebook, Budget: 500, ROAS: 1.2})

	optimizer.OptimizeRevenue()

	campaigns := reg.AllCampaigns()

	// floor(505 × 1.2) = 606; ROAS abaixo do gatilho permanece intacto
	assert.Equal(t, 606.0, campaigns[0].Budget)
	assert.Equal(t, 500.0, campaigns[1].Budget)
}

func TestOptimizeRevenue_BoostsAffiliateCommissions(t *testing.T) {
	optimizer, reg, _ := newTestOptimizer(testConfig())

	// Conversão acima de 0.05 dispara o aumento de comissão
	reg.MutateProgram("content-creators", func(p *domain.AffiliateProgram) float64 {
		p.ConversionRate = 0.2
		return 0
	})

	optimizer.OptimizeRevenue()

	boosted, _ := reg.Program("content-creators")
	assert.InDelta(t, 22.0, boosted.Commission, 1e-9) // 20 × 1.1

	// Programa sem conversão registrada não muda
	untouched, _ := reg.Program("agencies")
	assert.Equal(t, 25.0, untouched.Commission)
}

func TestOptimizeRevenue_CommissionCap(t *testing.T) {
	optimizer, reg, _ := newTestOptimizer(testConfig())

	reg.MutateProgram("agencies", func(p *domain.AffiliateProgram) float64 {
		p.Commission = 48
		p.ConversionRate = 0.25
		return 0
	})

	optimizer.OptimizeRevenue()

	// 48 × 1.1 = 52.8 ultrapassa o teto de 50
	program, _ := reg.Program("agencies")
	assert.Equal(t, 50.0, program.Commission)
}

func TestOptimizeRevenue_MarketplaceRate(t *testing.T) {
	t.Run("GMV acima do gatilho aumenta a taxa", func(t *testing.T) {
		optimizer, reg, _ := newTestOptimizer(testConfig())

		reg.MutateMarketplace(func(m *domain.MarketplaceMetrics) float64 {
			m.GMV = 1_500_000
			return 0
		})

		optimizer.OptimizeRevenue()

		marketplace := reg.Marketplace()
		assert.InDelta(t, 0.15*1.05, marketplace.CommissionRate, 1e-9)
	})

	t.Run("Taxa converge para o teto em ciclos repetidos", func(t *testing.T) {
		optimizer, reg, _ := newTestOptimizer(testConfig())

		reg.MutateMarketplace(func(m *domain.MarketplaceMetrics) float64 {
			m.GMV = 2_000_000
			return 0
		})

		for i := 0; i < 40; i++ {
			optimizer.OptimizeRevenue()
		}

		marketplace := reg.Marketplace()
		assert.LessOrEqual(t, marketplace.CommissionRate, 0.35)
		assert.InDelta(t, 0.35, marketplace.CommissionRate, 1e-9)
	})
}

func TestOptimizeRevenue_PublishesOptimizedEvent(t *testing.T) {
	optimizer, _, n := newTestOptimizer(testConfig())

	var events []notifier.Event
	n.Subscribe(notifier.EventRevenueOptimized, func(e notifier.Event) {
		events = append(events, e)
	})

	metrics, adjusted := optimizer.OptimizeRevenue()
	assert.True(t, adjusted)

	assert.Len(t, events, 1)
	assert.Equal(t, metrics.DailyTotal, events[0].Data["daily_total"])
}
