// Package scheduler contém os serviços de agendamento do monitoramento de
// receita. Os timers vivem aqui, fora do núcleo: os serviços apenas chamam
// os pontos de entrada expostos pelos usecases.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-engine-api/internal/config"
	"github.com/vfg2006/revenue-engine-api/internal/notifier"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/optimizing"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/projecting"
	"github.com/vfg2006/revenue-engine-api/pkg/utils"
)

type RevenueMonitorConfig struct {
	CronSchedule   string
	Enabled        bool
	DailyTarget    float64
	AlertThreshold float64
}

// RevenueMonitorService executa periodicamente o ciclo de otimização e emite
// alertas quando a receita projetada fica abaixo do limiar de alerta
type RevenueMonitorService struct {
	scheduler          *gocron.Scheduler
	optimizer          optimizing.Optimizer
	projector          projecting.Projector
	notifier           *notifier.Notifier
	config             RevenueMonitorConfig
	cycleRunning       bool
	cycleMutex         sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
}

func NewRevenueMonitorService(
	optimizer optimizing.Optimizer,
	projector projecting.Projector,
	n *notifier.Notifier,
	cfg *config.Config,
) *RevenueMonitorService {
	monitorConfig := RevenueMonitorConfig{
		CronSchedule:   cfg.RevenueMonitor.CronSchedule,
		Enabled:        cfg.RevenueMonitor.Enabled,
		DailyTarget:    cfg.RevenueTargets.Daily,
		AlertThreshold: cfg.Optimizer.AlertThreshold,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   monitorConfig.CronSchedule,
		"alert_threshold": monitorConfig.AlertThreshold,
	}).Info("Configuração do monitor de receita carregada")

	return &RevenueMonitorService{
		scheduler: scheduler,
		optimizer: optimizer,
		projector: projector,
		notifier:  n,
		config:    monitorConfig,
	}
}

func (s *RevenueMonitorService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Monitor de receita desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando monitor de receita")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunOptimizationCycle(); err != nil {
			logrus.WithError(err).Error("Erro no ciclo de otimização de receita")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar o monitor de receita: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando monitor de receita")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOptimizationCycle executa o otimizador, recomputa as métricas e emite o
// alerta de receita quando necessário. Erros nunca interrompem as execuções
// seguintes: qualquer panic é capturado e registrado.
func (s *RevenueMonitorService) RunOptimizationCycle() (err error) {
	s.cycleMutex.Lock()
	if s.cycleRunning {
		s.cycleMutex.Unlock()
		logrus.Warn("Ciclo de otimização já está em execução")
		return nil
	}
	s.cycleRunning = true
	s.lastRunStartedAt = time.Now()
	s.cycleMutex.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			logrus.WithField("panic", rec).Error("Panic durante o ciclo de otimização")
			err = fmt.Errorf("panic no ciclo de otimização: %v", rec)
		}

		s.cycleMutex.Lock()
		s.cycleRunning = false
		s.lastRunCompletedAt = time.Now()
		s.cycleMutex.Unlock()
	}()

	_, optimized := s.optimizer.OptimizeRevenue()

	metrics := s.projector.GetRevenueMetrics()

	alertTrigger := s.config.DailyTarget * s.config.AlertThreshold
	if metrics.DailyTotal < alertTrigger {
		percentage := 0.0
		if s.config.DailyTarget > 0 {
			percentage = utils.RoundWithTwoDecimalPlace(metrics.DailyTotal / s.config.DailyTarget * 100)
		}

		logrus.WithFields(logrus.Fields{
			"daily_total": metrics.DailyTotal,
			"target":      s.config.DailyTarget,
			"percentage":  percentage,
		}).Warn("Receita projetada abaixo do limiar de alerta")

		s.notifier.PublishRevenueAlert(metrics.DailyTotal, s.config.DailyTarget, percentage)
	}

	logrus.WithFields(logrus.Fields{
		"optimized":   optimized,
		"daily_total": metrics.DailyTotal,
	}).Info("Ciclo de otimização concluído")

	return nil
}

// TriggerManualRun inicia manualmente um ciclo de otimização
func (s *RevenueMonitorService) TriggerManualRun() {
	s.cycleMutex.Lock()
	if s.cycleRunning {
		s.cycleMutex.Unlock()
		logrus.Info("Ciclo de otimização já em andamento, ignorando solicitação manual")
		return
	}
	s.cycleMutex.Unlock()

	logrus.Info("Iniciando ciclo de otimização manual")
	go func() {
		if err := s.RunOptimizationCycle(); err != nil {
			logrus.WithError(err).Error("Erro no ciclo de otimização manual")
		}
	}()
}

// GetStatus retorna o status atual do monitor
func (s *RevenueMonitorService) GetStatus() map[string]any {
	s.cycleMutex.Lock()
	defer s.cycleMutex.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"alert_threshold":       s.config.AlertThreshold,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
	}
}
