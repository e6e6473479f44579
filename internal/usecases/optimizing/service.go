// Package optimizing implementa o ciclo de re-otimização periódica dos
// canais de receita: comparação com limiares configurados e ajustes
// proporcionais limitados sobre os submodelos de canal.
package optimizing

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-engine-api/internal/config"
	"github.com/vfg2006/revenue-engine-api/internal/domain"
	"github.com/vfg2006/revenue-engine-api/internal/notifier"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/projecting"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/tracking"
)

// Limites e fatores de ajuste dos quatro passos de otimização
const (
	lowConversionRate = 0.10
	conversionBoost   = 1.1
	maxConversionRate = 0.15

	starterTierID        = "starter"
	starterUsageTrigger  = 0.9
	tierPriceIncrease    = 1.05
	roasTrigger          = 3.0
	campaignBudgetBoost  = 1.2
	affiliateRateTrigger = 0.05
	commissionBoost      = 1.1
	maxCommission        = 50.0
	gmvTrigger           = 1_000_000.0
	marketplaceRateBoost = 1.05
	maxMarketplaceRate   = 0.35
)

// Defaults de campanha criada preguiçosamente para plataformas sem campanhas
const (
	seedCampaignBudget = 1000.0
	seedCampaignCPM    = 2.0
	seedCampaignCPC    = 0.5
	seedCampaignROAS   = 2.0
)

// Optimizer executa um ciclo condicional de ajuste sobre os quatro canais
// ajustáveis. Submodelos ausentes são ignorados silenciosamente; nenhum
// passo falha por ausência de fluxo, plano, programa ou campanha.
type Optimizer interface {
	// OptimizeRevenue computa as projeções correntes e, se a receita diária
	// estiver abaixo de meta × limiar, executa os quatro passos de ajuste.
	// Retorna as métricas computadas no início do ciclo e se houve ajuste.
	OptimizeRevenue() (*domain.RevenueMetrics, bool)
}

type Service struct {
	cfg       *config.Config
	registry  *registry.Registry
	projector projecting.Projector
	tracker   tracking.Tracker
	notifier  *notifier.Notifier
}

func NewService(
	cfg *config.Config,
	reg *registry.Registry,
	projector projecting.Projector,
	tracker tracking.Tracker,
	n *notifier.Notifier,
) Optimizer {
	return &Service{
		cfg:       cfg,
		registry:  reg,
		projector: projector,
		tracker:   tracker,
		notifier:  n,
	}
}

func (s *Service) OptimizeRevenue() (*domain.RevenueMetrics, bool) {
	metrics := s.projector.GetRevenueMetrics()

	trigger := s.cfg.RevenueTargets.Daily * s.cfg.Optimizer.OptimizationThreshold
	if metrics.DailyTotal >= trigger {
		logrus.WithFields(logrus.Fields{
			"daily_total": metrics.DailyTotal,
			"trigger":     trigger,
		}).Debug("Receita diária dentro da meta, ciclo de otimização ignorado")
		return metrics, false
	}

	logrus.WithFields(logrus.Fields{
		"daily_total": metrics.DailyTotal,
		"trigger":     trigger,
	}).Info("Receita diária abaixo do limiar, iniciando ajustes de canal")

	// Cada passo termina por completo antes do próximo iniciar
	s.optimizeSubscriptions()
	s.optimizeAdvertising()
	s.optimizeAffiliates()
	s.optimizeMarketplace()

	s.notifier.PublishRevenueOptimized(metrics)

	return metrics, true
}

// optimizeSubscriptions aumenta taxas de conversão baixas e reajusta o preço
// do plano starter quando a utilização passa de 90% da meta de usuários
func (s *Service) optimizeSubscriptions() {
	s.registry.EachTier(func(tier *domain.SubscriptionTier) {
		if tier.ConversionRate < lowConversionRate {
			boosted := tier.ConversionRate * conversionBoost
			tier.ConversionRate = math.Min(boosted, maxConversionRate)
		}

		if tier.ID == starterTierID && tier.TargetUsers > 0 {
			usage := float64(tier.CurrentUsers) / float64(tier.TargetUsers)
			if usage > starterUsageTrigger {
				tier.Price = math.Floor(tier.Price * tierPriceIncrease)
			}
		}
	})
}

// optimizeAdvertising aumenta o orçamento de campanhas com ROAS alto e cria
// uma campanha com defaults de seed para cada plataforma sem campanhas
func (s *Service) optimizeAdvertising() {
	s.registry.EachCampaign(func(campaign *domain.AdCampaign) {
		if campaign.ROAS > roasTrigger {
			campaign.Budget = math.Floor(campaign.Budget * campaignBudgetBoost)
		}
	})

	for _, platform := range domain.AdPlatforms {
		if len(s.registry.CampaignsByPlatform(platform)) > 0 {
			continue
		}

		_, err := s.tracker.CreateAdCampaign(domain.AdCampaignSpec{
			Name:     "Campanha " + string(platform),
			Platform: platform,
			Budget:   seedCampaignBudget,
			CPM:      seedCampaignCPM,
			CPC:      seedCampaignCPC,
			ROAS:     seedCampaignROAS,
		})
		if err != nil {
			logrus.WithError(err).WithField("platform", platform).Error("Erro ao criar campanha de seed")
		}
	}
}

// optimizeAffiliates aumenta em 10% a comissão de programas com conversão
// acima do gatilho, limitada a 50%
func (s *Service) optimizeAffiliates() {
	s.registry.EachProgram(func(program *domain.AffiliateProgram) {
		if program.ConversionRate > affiliateRateTrigger {
			boosted := program.Commission * commissionBoost
			program.Commission = math.Min(boosted, maxCommission)
		}
	})
}

// optimizeMarketplace aumenta a taxa de comissão em 5% quando o GMV
// acumulado passa de 1.000.000, limitada a 0.35
func (s *Service) optimizeMarketplace() {
	s.registry.MutateMarketplace(func(m *domain.MarketplaceMetrics) float64 {
		if m.GMV > gmvTrigger {
			boosted := m.CommissionRate * marketplaceRateBoost
			m.CommissionRate = math.Min(boosted, maxMarketplaceRate)
		}
		return 0
	})
}
