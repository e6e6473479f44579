package billingclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	billingdomain "github.com/vfg2006/revenue-engine-api/infrastructure/integrator/billing/domain"
)

type customerListResponse struct {
	Data []billingdomain.Customer `json:"data"`
}

// FindCustomerByEmail busca um cliente existente pelo e-mail. Retorna nil
// sem erro quando nenhum cliente é encontrado.
func (c *BillingClient) FindCustomerByEmail(ctx context.Context, email string) (*billingdomain.Customer, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("limit", "1")

	data, err := c.doForm(ctx, http.MethodGet, "/customers", form)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar cliente no provedor")
	}

	var list customerListResponse
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a lista de clientes")
	}

	if len(list.Data) == 0 {
		return nil, nil
	}

	return &list.Data[0], nil
}

// CreateCustomer cria um novo cliente de cobrança no provedor
func (c *BillingClient) CreateCustomer(ctx context.Context, email, name string) (*billingdomain.Customer, error) {
	form := url.Values{}
	form.Set("email", email)
	if name != "" {
		form.Set("name", name)
	}

	data, err := c.doForm(ctx, http.MethodPost, "/customers", form)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar cliente no provedor")
	}

	var customer billingdomain.Customer
	if err := json.Unmarshal(data, &customer); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta de cliente")
	}

	return &customer, nil
}
