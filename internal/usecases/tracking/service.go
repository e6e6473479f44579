package tracking

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-engine-api/infrastructure/integrator/billing"
	"github.com/vfg2006/revenue-engine-api/internal/domain"
	"github.com/vfg2006/revenue-engine-api/internal/notifier"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
	"github.com/vfg2006/revenue-engine-api/pkg/utils"
)

// AffiliateSaleResult é o resultado de uma venda de afiliado registrada
type AffiliateSaleResult struct {
	Program    *domain.AffiliateProgram `json:"program"`
	Commission float64                  `json:"commission"`
}

// MarketplaceTransactionResult é o resultado de uma transação do marketplace
type MarketplaceTransactionResult struct {
	Metrics    *domain.MarketplaceMetrics `json:"metrics"`
	Commission float64                    `json:"commission"`
}

// SubscriptionResult é o resultado de uma assinatura criada via provedor de pagamento
type SubscriptionResult struct {
	Tier           *domain.SubscriptionTier `json:"tier"`
	CustomerID     string                   `json:"customer_id"`
	SubscriptionID string                   `json:"subscription_id"`
}

// Tracker define as operações de rastreamento dos canais de receita
type Tracker interface {
	// RegisterStream insere ou substitui um fluxo de receita no registro.
	// Publica o evento de criação apenas quando o fluxo é novo.
	RegisterStream(stream domain.RevenueStream) *domain.RevenueStream

	// RecordSubscriptionChange ajusta a contagem de usuários do plano e a
	// receita do fluxo de assinaturas por price × userDelta. Deltas
	// negativos representam churn.
	RecordSubscriptionChange(tierID string, userDelta int) (*domain.SubscriptionTier, error)

	// RecordAffiliateSale acumula venda e comissão no programa e soma a
	// comissão ao fluxo de afiliados
	RecordAffiliateSale(programID, affiliateID string, saleAmount float64) (*AffiliateSaleResult, error)

	// RecordMarketplaceTransaction acumula GMV e receita de comissão no
	// marketplace usando a taxa vigente no momento da chamada
	RecordMarketplaceTransaction(sellerID, buyerID string, amount float64) (*MarketplaceTransactionResult, error)

	// CreateAdCampaign armazena uma nova campanha com identificador gerado
	CreateAdCampaign(spec domain.AdCampaignSpec) (*domain.AdCampaign, error)

	// SubscribeCustomer cria cliente e assinatura no provedor de pagamento e,
	// somente após sucesso, aplica a mudança de assinatura local
	SubscribeCustomer(ctx context.Context, email, name, tierID string) (*SubscriptionResult, error)
}

type Service struct {
	registry *registry.Registry
	notifier *notifier.Notifier
	billing  billing.BillingIntegrator
}

func NewService(reg *registry.Registry, n *notifier.Notifier, billingIntegrator billing.BillingIntegrator) Tracker {
	return &Service{
		registry: reg,
		notifier: n,
		billing:  billingIntegrator,
	}
}

func (s *Service) RegisterStream(stream domain.RevenueStream) *domain.RevenueStream {
	if stream.Status == "" {
		stream.Status = domain.StreamStatusActive
	}

	created := s.registry.UpsertStream(stream)

	stored, _ := s.registry.GetStream(stream.ID)
	if created {
		s.notifier.PublishStreamCreated(&stored)
	}

	logrus.WithFields(logrus.Fields{
		"stream_id": stream.ID,
		"kind":      string(stream.Kind),
		"created":   created,
	}).Debug("Fluxo de receita registrado")

	return &stored
}

func (s *Service) RecordSubscriptionChange(tierID string, userDelta int) (*domain.SubscriptionTier, error) {
	var updated domain.SubscriptionTier

	ok := s.registry.MutateTier(tierID, func(tier *domain.SubscriptionTier) float64 {
		tier.CurrentUsers += userDelta
		if tier.CurrentUsers < 0 {
			tier.CurrentUsers = 0
		}

		updated = *tier
		return tier.Price * float64(userDelta)
	})
	if !ok {
		return nil, ErrTierNotFound
	}

	logrus.WithFields(logrus.Fields{
		"tier_id":       tierID,
		"user_delta":    userDelta,
		"current_users": updated.CurrentUsers,
	}).Debug("Mudança de assinatura registrada")

	return &updated, nil
}

func (s *Service) RecordAffiliateSale(programID, affiliateID string, saleAmount float64) (*AffiliateSaleResult, error) {
	if saleAmount < 0 {
		return nil, ErrInvalidAmount
	}

	var updated domain.AffiliateProgram
	var commission float64

	ok := s.registry.MutateProgram(programID, func(program *domain.AffiliateProgram) float64 {
		commission = saleAmount * (program.Commission / 100)

		program.TotalSales += saleAmount
		program.TotalCommissions += commission
		if program.TotalSales > 0 {
			program.ConversionRate = program.TotalCommissions / program.TotalSales
		}

		updated = *program
		return commission
	})
	if !ok {
		return nil, ErrProgramNotFound
	}

	s.notifier.PublishAffiliateSale(programID, affiliateID, saleAmount, commission)

	return &AffiliateSaleResult{
		Program:    &updated,
		Commission: commission,
	}, nil
}

func (s *Service) RecordMarketplaceTransaction(sellerID, buyerID string, amount float64) (*MarketplaceTransactionResult, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	var updated domain.MarketplaceMetrics
	var commission float64

	s.registry.MutateMarketplace(func(m *domain.MarketplaceMetrics) float64 {
		// Comissão calculada com a taxa vigente no momento da chamada
		commission = amount * m.CommissionRate

		m.GMV += amount
		m.TotalRevenue += commission

		buyers := m.ActiveBuyers
		if buyers < 1 {
			buyers = 1
		}
		m.AverageOrderValue = m.GMV / float64(buyers)

		updated = *m
		return commission
	})

	s.notifier.PublishMarketplaceTransaction(sellerID, buyerID, amount, commission)

	return &MarketplaceTransactionResult{
		Metrics:    &updated,
		Commission: commission,
	}, nil
}

func (s *Service) CreateAdCampaign(spec domain.AdCampaignSpec) (*domain.AdCampaign, error) {
	if !domain.IsValidAdPlatform(spec.Platform) {
		return nil, ErrInvalidPlatform
	}

	campaign := domain.AdCampaign{
		Name:        spec.Name,
		Platform:    spec.Platform,
		Budget:      spec.Budget,
		Spend:       spec.Spend,
		Impressions: spec.Impressions,
		Clicks:      spec.Clicks,
		Conversions: spec.Conversions,
		CPM:         spec.CPM,
		CPC:         spec.CPC,
		ROAS:        spec.ROAS,
	}

	// Regenera em caso de colisão com um ID existente
	for attempt := 0; attempt < 5; attempt++ {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, ErrGenerateID
		}

		campaign.ID = id
		if s.registry.AddCampaign(campaign) {
			s.notifier.PublishCampaignCreated(&campaign)
			return &campaign, nil
		}
	}

	return nil, ErrGenerateID
}

func (s *Service) SubscribeCustomer(ctx context.Context, email, name, tierID string) (*SubscriptionResult, error) {
	tier, ok := s.registry.Tier(tierID)
	if !ok {
		return nil, ErrTierNotFound
	}

	customer, err := s.billing.EnsureCustomer(ctx, email, name)
	if err != nil {
		billingErr := NewBillingError(err, "ensure-customer")
		s.notifier.PublishError("billing", "Falha ao localizar ou criar cliente no provedor", err)
		return nil, billingErr
	}

	subscription, err := s.billing.CreateSubscription(ctx, customer.ID, tier.PriceReference)
	if err != nil {
		billingErr := NewBillingError(err, "create-subscription")
		s.notifier.PublishError("billing", "Falha ao criar assinatura no provedor", err)
		return nil, billingErr
	}

	// Métricas locais só são aplicadas depois que o provedor confirma
	updatedTier, err := s.RecordSubscriptionChange(tierID, 1)
	if err != nil {
		return nil, err
	}

	s.notifier.PublishSubscriptionCreated(tierID, customer.ID, subscription.ID)

	return &SubscriptionResult{
		Tier:           updatedTier,
		CustomerID:     customer.ID,
		SubscriptionID: subscription.ID,
	}, nil
}
