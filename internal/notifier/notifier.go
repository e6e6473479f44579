// Package notifier implementa o registro de observadores para eventos de
// mudança de estado. A entrega é síncrona e sem garantias além de
// no-máximo-uma-vez; consumidores externos (dashboards, alertas) se
// inscrevem na construção da aplicação.
package notifier

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-engine-api/internal/domain"
)

// EventType identifica um tipo de evento publicado pelo núcleo
type EventType string

const (
	EventStreamCreated          EventType = "STREAM_CREATED"
	EventCampaignCreated        EventType = "CAMPAIGN_CREATED"
	EventSubscriptionCreated    EventType = "SUBSCRIPTION_CREATED"
	EventAffiliateSale          EventType = "AFFILIATE_SALE"
	EventMarketplaceTransaction EventType = "MARKETPLACE_TRANSACTION"
	EventRevenueOptimized       EventType = "REVENUE_OPTIMIZED"
	EventMetricsSnapshot        EventType = "METRICS_SNAPSHOT"
	EventRevenueAlert           EventType = "REVENUE_ALERT"
	EventError                  EventType = "ERROR"
)

// Event é um evento do sistema com carga estruturada
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// Subscriber é a função chamada para cada evento entregue
type Subscriber func(Event)

// Notifier gerencia inscrições e publicação de eventos
type Notifier struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Subscriber
	allSubs     []Subscriber
}

func New() *Notifier {
	return &Notifier{
		subscribers: make(map[EventType][]Subscriber),
	}
}

// Subscribe registra um observador para um tipo específico de evento
func (n *Notifier) Subscribe(eventType EventType, subscriber Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.subscribers[eventType] = append(n.subscribers[eventType], subscriber)
}

// SubscribeAll registra um observador para todos os eventos
func (n *Notifier) SubscribeAll(subscriber Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.allSubs = append(n.allSubs, subscriber)
}

// Publish entrega o evento de forma síncrona a todos os observadores.
// Um panic em um observador não interrompe a entrega aos demais.
func (n *Notifier) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	n.mu.RLock()
	subs := append([]Subscriber{}, n.subscribers[event.Type]...)
	subs = append(subs, n.allSubs...)
	n.mu.RUnlock()

	for _, sub := range subs {
		n.deliver(sub, event)
	}
}

func (n *Notifier) deliver(sub Subscriber, event Event) {
	defer func() {
		if rec := recover(); rec != nil {
			logrus.WithFields(logrus.Fields{
				"event_type": event.Type,
				"panic":      rec,
			}).Error("Panic em observador de eventos")
		}
	}()

	sub(event)
}

// PublishStreamCreated publica o evento de registro de um novo fluxo de receita
func (n *Notifier) PublishStreamCreated(stream *domain.RevenueStream) {
	n.Publish(Event{
		Type: EventStreamCreated,
		Data: map[string]any{
			"stream_id":      stream.ID,
			"name":           stream.Name,
			"kind":           string(stream.Kind),
			"target_revenue": stream.TargetRevenue,
		},
	})
}

// PublishCampaignCreated publica o evento de criação de campanha
func (n *Notifier) PublishCampaignCreated(campaign *domain.AdCampaign) {
	n.Publish(Event{
		Type: EventCampaignCreated,
		Data: map[string]any{
			"campaign_id": campaign.ID,
			"name":        campaign.Name,
			"platform":    string(campaign.Platform),
			"budget":      campaign.Budget,
		},
	})
}

// PublishSubscriptionCreated publica o evento de assinatura criada via provedor de pagamento
func (n *Notifier) PublishSubscriptionCreated(tierID, customerID, subscriptionID string) {
	n.Publish(Event{
		Type: EventSubscriptionCreated,
		Data: map[string]any{
			"tier_id":         tierID,
			"customer_id":     customerID,
			"subscription_id": subscriptionID,
		},
	})
}

// PublishAffiliateSale publica o evento de venda de afiliado
func (n *Notifier) PublishAffiliateSale(programID, affiliateID string, saleAmount, commission float64) {
	n.Publish(Event{
		Type: EventAffiliateSale,
		Data: map[string]any{
			"program_id":   programID,
			"affiliate_id": affiliateID,
			"sale_amount":  saleAmount,
			"commission":   commission,
		},
	})
}

// PublishMarketplaceTransaction publica o evento de transação do marketplace
func (n *Notifier) PublishMarketplaceTransaction(sellerID, buyerID string, amount, commission float64) {
	n.Publish(Event{
		Type: EventMarketplaceTransaction,
		Data: map[string]any{
			"seller_id":  sellerID,
			"buyer_id":   buyerID,
			"amount":     amount,
			"commission": commission,
		},
	})
}

// PublishRevenueOptimized publica o evento de ciclo de otimização concluído,
// carregando as métricas e projeções calculadas no início do ciclo
func (n *Notifier) PublishRevenueOptimized(metrics *domain.RevenueMetrics) {
	n.Publish(Event{
		Type: EventRevenueOptimized,
		Data: map[string]any{
			"daily_total":   metrics.DailyTotal,
			"monthly_total": metrics.MonthlyTotal,
			"annual_total":  metrics.AnnualTotal,
			"metrics":       metrics,
		},
	})
}

// PublishMetricsSnapshot publica o relatório periódico de métricas
func (n *Notifier) PublishMetricsSnapshot(metrics *domain.RevenueMetrics) {
	n.Publish(Event{
		Type: EventMetricsSnapshot,
		Data: map[string]any{
			"daily_total":   metrics.DailyTotal,
			"monthly_total": metrics.MonthlyTotal,
			"annual_total":  metrics.AnnualTotal,
			"metrics":       metrics,
		},
	})
}

// PublishRevenueAlert publica o alerta de receita projetada abaixo do limiar
func (n *Notifier) PublishRevenueAlert(current, target, percentage float64) {
	n.Publish(Event{
		Type: EventRevenueAlert,
		Data: map[string]any{
			"current":    current,
			"target":     target,
			"percentage": percentage,
		},
	})
}

// PublishError publica um evento de erro para observabilidade
func (n *Notifier) PublishError(source, message string, err error) {
	data := map[string]any{
		"source":  source,
		"message": message,
	}
	if err != nil {
		data["error"] = err.Error()
	}
	n.Publish(Event{
		Type: EventError,
		Data: data,
	})
}
