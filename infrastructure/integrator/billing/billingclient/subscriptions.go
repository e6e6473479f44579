package billingclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	billingdomain "github.com/vfg2006/revenue-engine-api/infrastructure/integrator/billing/domain"
)

// CreateSubscription cria uma assinatura para o cliente contra a referência
// de preço do plano
func (c *BillingClient) CreateSubscription(ctx context.Context, customerID, priceReference string) (*billingdomain.Subscription, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("items[0][price]", priceReference)

	data, err := c.doForm(ctx, http.MethodPost, "/subscriptions", form)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar assinatura no provedor")
	}

	var subscription billingdomain.Subscription
	if err := json.Unmarshal(data, &subscription); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta de assinatura")
	}

	return &subscription, nil
}
