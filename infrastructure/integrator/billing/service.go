package billing

import (
	"context"

	"github.com/vfg2006/revenue-engine-api/infrastructure/integrator/billing/billingclient"
	billingdomain "github.com/vfg2006/revenue-engine-api/infrastructure/integrator/billing/domain"
	"github.com/vfg2006/revenue-engine-api/internal/config"
)

// BillingIntegrator define a interface do colaborador de pagamento. Falhas
// do provedor são propagadas sem nenhuma mutação de estado local.
type BillingIntegrator interface {
	// EnsureCustomer localiza um cliente de cobrança pelo e-mail ou cria um novo
	EnsureCustomer(ctx context.Context, email, name string) (*billingdomain.Customer, error)

	// CreateSubscription cria uma assinatura contra a referência de preço do plano
	CreateSubscription(ctx context.Context, customerID, priceReference string) (*billingdomain.Subscription, error)
}

type BillingService struct {
	cfg    *config.Config
	Client billingclient.Client
}

func New(cfg *config.Config, client billingclient.Client) BillingIntegrator {
	return &BillingService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *BillingService) EnsureCustomer(ctx context.Context, email, name string) (*billingdomain.Customer, error) {
	customer, err := s.Client.FindCustomerByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		return customer, nil
	}

	return s.Client.CreateCustomer(ctx, email, name)
}

func (s *BillingService) CreateSubscription(ctx context.Context, customerID, priceReference string) (*billingdomain.Subscription, error) {
	return s.Client.CreateSubscription(ctx, customerID, priceReference)
}
