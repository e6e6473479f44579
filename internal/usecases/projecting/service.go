package projecting

import (
	"github.com/vfg2006/revenue-engine-api/internal/config"
	"github.com/vfg2006/revenue-engine-api/internal/domain"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
)

// Projector define a interface para cálculo de projeções e métricas de receita
type Projector interface {
	// GetRevenueProjections calcula as projeções diária, mensal e anual por canal
	GetRevenueProjections() *domain.RevenueProjections

	// GetRevenueMetrics retorna os totais por soma direta, a lista de fluxos e as projeções
	GetRevenueMetrics() *domain.RevenueMetrics
}

// Service é uma função pura do estado corrente do registro e das metas
// configuradas; nenhum método tem efeito colateral sobre o registro
type Service struct {
	cfg      *config.Config
	registry *registry.Registry
}

func NewService(cfg *config.Config, reg *registry.Registry) Projector {
	return &Service{
		cfg:      cfg,
		registry: reg,
	}
}

func (s *Service) GetRevenueProjections() *domain.RevenueProjections {
	return s.projectionsFrom(s.registry.AllStreams())
}

// projectionsFrom agrega sobre o conjunto fixo de canais: a projeção diária
// de cada canal é a receita corrente do fluxo daquele canal; canal ausente
// contribui com zero. Este é o caminho canônico de agregação por canal.
func (s *Service) projectionsFrom(streams []*domain.RevenueStream) *domain.RevenueProjections {
	byKind := make(map[domain.ChannelKind]float64, len(domain.ChannelKinds))
	for _, stream := range streams {
		byKind[stream.Kind] += stream.CurrentRevenue
	}

	daily := domain.ChannelProjection{
		ByChannel: make(map[domain.ChannelKind]float64, len(domain.ChannelKinds)),
	}
	monthlyByChannel := make(map[domain.ChannelKind]float64, len(domain.ChannelKinds))

	for _, kind := range domain.ChannelKinds {
		value := byKind[kind]
		daily.ByChannel[kind] = value
		daily.Total += value
		monthlyByChannel[kind] = value * 30
	}

	monthlyTotal := daily.Total * 30

	return &domain.RevenueProjections{
		Daily: daily,
		Monthly: domain.PeriodProjection{
			ByChannel: monthlyByChannel,
			Total:     monthlyTotal,
			Target:    s.cfg.RevenueTargets.Monthly,
			Growth:    s.cfg.RevenueTargets.Growth,
		},
		Annual: domain.PeriodProjection{
			Total:  monthlyTotal * 12,
			Target: s.cfg.RevenueTargets.Annual,
			Growth: s.cfg.RevenueTargets.Growth,
		},
	}
}

// GetRevenueMetrics calcula os totais pela soma direta de todos os fluxos
// registrados. Com os cinco canais do seed os totais coincidem exatamente
// com os da projeção por canal; ambos são calculados do mesmo snapshot.
func (s *Service) GetRevenueMetrics() *domain.RevenueMetrics {
	streams := s.registry.AllStreams()

	var dailyTotal float64
	for _, stream := range streams {
		dailyTotal += stream.CurrentRevenue
	}

	monthlyTotal := dailyTotal * 30

	return &domain.RevenueMetrics{
		DailyTotal:   dailyTotal,
		MonthlyTotal: monthlyTotal,
		AnnualTotal:  monthlyTotal * 12,
		Streams:      streams,
		Projections:  s.projectionsFrom(streams),
	}
}
