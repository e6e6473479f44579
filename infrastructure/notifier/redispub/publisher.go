// Package redispub retransmite os eventos do núcleo para um canal Redis,
// permitindo que dashboards e alertas externos consumam sem acoplamento ao
// processo. Falhas de publicação são registradas e nunca propagadas.
package redispub

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-engine-api/internal/config"
	"github.com/vfg2006/revenue-engine-api/internal/notifier"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Publisher struct {
	client  *redis.Client
	channel string
}

func New(cfg *config.Config) *Publisher {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})

	return &Publisher{
		client:  client,
		channel: cfg.Redis.Channel,
	}
}

// Attach inscreve o publicador em todos os eventos do notificador
func (p *Publisher) Attach(n *notifier.Notifier) {
	n.SubscribeAll(p.relay)
}

func (p *Publisher) relay(event notifier.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).WithField("event_type", event.Type).Error("Erro ao serializar evento para o Redis")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"channel":    p.channel,
			"event_type": event.Type,
		}).Error("Erro ao publicar evento no Redis")
	}
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
