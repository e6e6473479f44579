package billingclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	billingdomain "github.com/vfg2006/revenue-engine-api/infrastructure/integrator/billing/domain"
	"github.com/vfg2006/revenue-engine-api/internal/config"
)

type Client interface {
	FindCustomerByEmail(ctx context.Context, email string) (*billingdomain.Customer, error)
	CreateCustomer(ctx context.Context, email, name string) (*billingdomain.Customer, error)
	CreateSubscription(ctx context.Context, customerID, priceReference string) (*billingdomain.Subscription, error)
}

type BillingClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Billing.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &BillingClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}

// doForm executa uma requisição com corpo form-encoded contra a API do
// provedor e retorna o corpo da resposta
func (c *BillingClient) doForm(ctx context.Context, method, endpoint string, form url.Values) ([]byte, error) {
	target, err := url.Parse(c.config.Billing.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base do provedor")
	}
	target.Path = strings.TrimRight(target.Path, "/") + endpoint

	var body io.Reader
	if method != http.MethodGet && form != nil {
		body = strings.NewReader(form.Encode())
	} else if form != nil {
		target.RawQuery = form.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Billing.SecretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("requisição ao provedor falhou com status %s: %s", resp.Status, string(data))
	}

	return data, nil
}
