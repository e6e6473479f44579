package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	billingdomain "github.com/vfg2006/revenue-engine-api/infrastructure/integrator/billing/domain"
	billingmocks "github.com/vfg2006/revenue-engine-api/infrastructure/integrator/billing/mocks"
	"github.com/vfg2006/revenue-engine-api/internal/domain"
	"github.com/vfg2006/revenue-engine-api/internal/notifier"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *registry.Registry, *notifier.Notifier, *billingmocks.MockBillingIntegrator) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	reg := registry.New()
	n := notifier.New()
	billingMock := billingmocks.NewMockBillingIntegrator(ctrl)

	service := NewService(reg, n, billingMock).(*Service)
	return service, reg, n, billingMock
}

func TestRegisterStream(t *testing.T) {
	t.Run("Fluxo novo é armazenado e publica evento de criação", func(t *testing.T) {
		service, reg, n, _ := newTestService(t)

		var created []notifier.Event
		n.Subscribe(notifier.EventStreamCreated, func(e notifier.Event) {
			created = append(created, e)
		})

		stored := service.RegisterStream(domain.RevenueStream{
			ID:            "events",
			Name:          "Eventos",
			Kind:          domain.ChannelConsulting,
			TargetRevenue: 3000,
		})

		assert.Equal(t, "events", stored.ID)
		assert.Equal(t, domain.StreamStatusActive, stored.Status) // default quando omitido

		_, ok := reg.GetStream("events")
		assert.True(t, ok)

		assert.Len(t, created, 1)
		assert.Equal(t, "events", created[0].Data["stream_id"])
	})

	t.Run("Substituição de fluxo existente não publica evento", func(t *testing.T) {
		service, _, n, _ := newTestService(t)

		var created []notifier.Event
		n.Subscribe(notifier.EventStreamCreated, func(e notifier.Event) {
			created = append(created, e)
		})

		stored := service.RegisterStream(domain.RevenueStream{
			ID:            "advertising",
			Name:          "Publicidade Paga",
			Kind:          domain.ChannelAdvertising,
			TargetRevenue: 9000,
			Status:        domain.StreamStatusOptimizing,
		})

		assert.Equal(t, "Publicidade Paga", stored.Name)
		assert.Equal(t, domain.StreamStatusOptimizing, stored.Status)
		assert.Empty(t, created)
	})
}

func TestRecordSubscriptionChange(t *testing.T) {
	tests := []struct {
		name      string
		tierID    string
		userDelta int
		wantErr   error
		validate  func(t *testing.T, tier *domain.SubscriptionTier, reg *registry.Registry)
	}{
		{
			name:      "Delta positivo incrementa usuários e receita do fluxo",
			tierID:    "professional",
			userDelta: 3,
			validate: func(t *testing.T, tier *domain.SubscriptionTier, reg *registry.Registry) {
				assert.Equal(t, 3, tier.CurrentUsers)

				stream, _ := reg.GetStream("subscriptions")
				assert.Equal(t, 99.0*3, stream.CurrentRevenue)
			},
		},
		{
			name:      "Delta negativo representa churn com piso em zero",
			tierID:    "starter",
			userDelta: -5,
			validate: func(t *testing.T, tier *domain.SubscriptionTier, reg *registry.Registry) {
				assert.Equal(t, 0, tier.CurrentUsers)

				stream, _ := reg.GetStream("subscriptions")
				assert.Equal(t, 0.0, stream.CurrentRevenue)
			},
		},
		{
			name:      "Plano inexistente retorna erro sem mutação",
			tierID:    "inexistente",
			userDelta: 1,
			wantErr:   ErrTierNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, reg, _, _ := newTestService(t)

			tier, err := service.RecordSubscriptionChange(tt.tierID, tt.userDelta)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tier)

				stream, _ := reg.GetStream("subscriptions")
				assert.Equal(t, 0.0, stream.CurrentRevenue)
				return
			}

			assert.NoError(t, err)
			tt.validate(t, tier, reg)
		})
	}
}

func TestRecordAffiliateSale(t *testing.T) {
	t.Run("Comissão é percentual do programa sobre o valor da venda", func(t *testing.T) {
		service, reg, n, _ := newTestService(t)

		var published []notifier.Event
		n.Subscribe(notifier.EventAffiliateSale, func(e notifier.Event) {
			published = append(published, e)
		})

		// Programa agencies tem comissão de 25%
		result, err := service.RecordAffiliateSale("agencies", "afiliado-1", 400)
		assert.NoError(t, err)
		assert.Equal(t, 100.0, result.Commission)
		assert.Equal(t, 400.0, result.Program.TotalSales)
		assert.Equal(t, 100.0, result.Program.TotalCommissions)
		assert.Equal(t, 0.25, result.Program.ConversionRate)

		stream, _ := reg.GetStream("affiliates")
		assert.Equal(t, 100.0, stream.CurrentRevenue)

		assert.Len(t, published, 1)
		assert.Equal(t, 400.0, published[0].Data["sale_amount"])
		assert.Equal(t, 100.0, published[0].Data["commission"])
	})

	t.Run("Vendas sucessivas acumulam no mesmo programa", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		_, err := service.RecordAffiliateSale("content-creators", "a1", 100)
		assert.NoError(t, err)

		result, err := service.RecordAffiliateSale("content-creators", "a2", 300)
		assert.NoError(t, err)

		assert.Equal(t, 400.0, result.Program.TotalSales)
		assert.Equal(t, 80.0, result.Program.TotalCommissions) // 20% de 400
		assert.Equal(t, 0.2, result.Program.ConversionRate)
	})

	t.Run("Valor negativo é rejeitado antes de qualquer mutação", func(t *testing.T) {
		service, reg, _, _ := newTestService(t)

		result, err := service.RecordAffiliateSale("agencies", "a1", -50)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Nil(t, result)

		program, _ := reg.Program("agencies")
		assert.Equal(t, 0.0, program.TotalSales)
	})

	t.Run("Programa inexistente retorna erro", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		_, err := service.RecordAffiliateSale("inexistente", "a1", 100)
		assert.ErrorIs(t, err, ErrProgramNotFound)
	})
}

func TestRecordMarketplaceTransaction(t *testing.T) {
	t.Run("Comissão usa a taxa vigente no momento da chamada", func(t *testing.T) {
		service, reg, n, _ := newTestService(t)

		var published []notifier.Event
		n.Subscribe(notifier.EventMarketplaceTransaction, func(e notifier.Event) {
			published = append(published, e)
		})

		result, err := service.RecordMarketplaceTransaction("seller-1", "buyer-1", 1000)
		assert.NoError(t, err)
		assert.Equal(t, 150.0, result.Commission) // taxa do seed: 0.15
		assert.Equal(t, 1000.0, result.Metrics.GMV)
		assert.Equal(t, 150.0, result.Metrics.TotalRevenue)
		assert.Equal(t, 1000.0/320, result.Metrics.AverageOrderValue)

		stream, _ := reg.GetStream("marketplace")
		assert.Equal(t, 150.0, stream.CurrentRevenue)

		assert.Len(t, published, 1)

		// Mudança de taxa afeta apenas transações futuras
		reg.MutateMarketplace(func(m *domain.MarketplaceMetrics) float64 {
			m.CommissionRate = 0.20
			return 0
		})

		second, err := service.RecordMarketplaceTransaction("seller-2", "buyer-2", 1000)
		assert.NoError(t, err)
		assert.Equal(t, 200.0, second.Commission)
		assert.Equal(t, 350.0, second.Metrics.TotalRevenue)
	})

	t.Run("Valor negativo é rejeitado", func(t *testing.T) {
		service, reg, _, _ := newTestService(t)

		_, err := service.RecordMarketplaceTransaction("s", "b", -10)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		marketplace := reg.Marketplace()
		assert.Equal(t, 0.0, marketplace.GMV)
	})
}

func TestCreateAdCampaign(t *testing.T) {
	t.Run("Campanha criada com identificador gerado e evento publicado", func(t *testing.T) {
		service, reg, n, _ := newTestService(t)

		var published []notifier.Event
		n.Subscribe(notifier.EventCampaignCreated, func(e notifier.Event) {
			published = append(published, e)
		})

		campaign, err := service.CreateAdCampaign(domain.AdCampaignSpec{
			Name:     "Black Friday",
			Platform: domain.AdPlatformGoogle,
			Budget:   2500,
			ROAS:     3.2,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, campaign.ID)
		assert.Len(t, campaign.ID, 6)
		assert.Equal(t, "Black Friday", campaign.Name)
		assert.Equal(t, 2500.0, campaign.Budget)

		assert.True(t, reg.HasCampaign(campaign.ID))
		assert.Len(t, published, 1)
		assert.Equal(t, campaign.ID, published[0].Data["campaign_id"])
	})

	t.Run("Plataforma não suportada é rejeitada", func(t *testing.T) {
		service, reg, _, _ := newTestService(t)

		_, err := service.CreateAdCampaign(domain.AdCampaignSpec{
			Name:     "Campanha inválida",
			Platform: domain.AdPlatform("tiktok"),
		})
		assert.ErrorIs(t, err, ErrInvalidPlatform)
		assert.Empty(t, reg.AllCampaigns())
	})
}

func TestSubscribeCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Assinatura criada no provedor antes da mutação local", func(t *testing.T) {
		service, reg, n, billingMock := newTestService(t)

		var published []notifier.Event
		n.Subscribe(notifier.EventSubscriptionCreated, func(e notifier.Event) {
			published = append(published, e)
		})

		billingMock.EXPECT().
			EnsureCustomer(ctx, "cliente@exemplo.com", "Cliente Exemplo").
			Return(&billingdomain.Customer{ID: "cus_123", Email: "cliente@exemplo.com"}, nil)

		billingMock.EXPECT().
			CreateSubscription(ctx, "cus_123", "price_professional_monthly").
			Return(&billingdomain.Subscription{ID: "sub_456", Status: "active"}, nil)

		result, err := service.SubscribeCustomer(ctx, "cliente@exemplo.com", "Cliente Exemplo", "professional")
		assert.NoError(t, err)
		assert.Equal(t, "cus_123", result.CustomerID)
		assert.Equal(t, "sub_456", result.SubscriptionID)
		assert.Equal(t, 1, result.Tier.CurrentUsers)

		stream, _ := reg.GetStream("subscriptions")
		assert.Equal(t, 99.0, stream.CurrentRevenue)

		assert.Len(t, published, 1)
		assert.Equal(t, "sub_456", published[0].Data["subscription_id"])
	})

	t.Run("Falha ao criar cliente não aplica mutação local", func(t *testing.T) {
		service, reg, n, billingMock := newTestService(t)

		var errorEvents []notifier.Event
		n.Subscribe(notifier.EventError, func(e notifier.Event) {
			errorEvents = append(errorEvents, e)
		})

		billingMock.EXPECT().
			EnsureCustomer(ctx, "cliente@exemplo.com", "Cliente").
			Return(nil, errors.New("provedor indisponível"))

		result, err := service.SubscribeCustomer(ctx, "cliente@exemplo.com", "Cliente", "starter")
		assert.Nil(t, result)

		var billingErr *BillingError
		assert.ErrorAs(t, err, &billingErr)
		assert.Equal(t, "ensure-customer", billingErr.Step)

		tier, _ := reg.Tier("starter")
		assert.Equal(t, 0, tier.CurrentUsers)

		stream, _ := reg.GetStream("subscriptions")
		assert.Equal(t, 0.0, stream.CurrentRevenue)

		assert.Len(t, errorEvents, 1)
	})

	t.Run("Falha ao criar assinatura não aplica mutação local", func(t *testing.T) {
		service, reg, _, billingMock := newTestService(t)

		billingMock.EXPECT().
			EnsureCustomer(ctx, "cliente@exemplo.com", "Cliente").
			Return(&billingdomain.Customer{ID: "cus_123"}, nil)

		billingMock.EXPECT().
			CreateSubscription(ctx, "cus_123", "price_starter_monthly").
			Return(nil, errors.New("cartão recusado"))

		result, err := service.SubscribeCustomer(ctx, "cliente@exemplo.com", "Cliente", "starter")
		assert.Nil(t, result)

		var billingErr *BillingError
		assert.ErrorAs(t, err, &billingErr)
		assert.Equal(t, "create-subscription", billingErr.Step)

		tier, _ := reg.Tier("starter")
		assert.Equal(t, 0, tier.CurrentUsers)
	})

	t.Run("Plano inexistente falha antes de chamar o provedor", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		_, err := service.SubscribeCustomer(ctx, "cliente@exemplo.com", "Cliente", "inexistente")
		assert.ErrorIs(t, err, ErrTierNotFound)
	})
}
