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
	"github.com/vfg2006/revenue-engine-api/internal/usecases/projecting"
)

type MetricsSnapshotConfig struct {
	CronSchedule string
	Enabled      bool
}

// MetricsSnapshotService publica periodicamente um relatório com as métricas
// correntes de receita, em cadência independente do monitor de otimização
type MetricsSnapshotService struct {
	scheduler          *gocron.Scheduler
	projector          projecting.Projector
	notifier           *notifier.Notifier
	config             MetricsSnapshotConfig
	snapshotMutex      sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
}

func NewMetricsSnapshotService(
	projector projecting.Projector,
	n *notifier.Notifier,
	cfg *config.Config,
) *MetricsSnapshotService {
	snapshotConfig := MetricsSnapshotConfig{
		CronSchedule: cfg.MetricsSnapshot.CronSchedule,
		Enabled:      cfg.MetricsSnapshot.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": snapshotConfig.CronSchedule,
	}).Info("Configuração do snapshot de métricas carregada")

	return &MetricsSnapshotService{
		scheduler: scheduler,
		projector: projector,
		notifier:  n,
		config:    snapshotConfig,
	}
}

func (s *MetricsSnapshotService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Snapshot de métricas desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando snapshot periódico de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.SnapshotMetrics()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar o snapshot de métricas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando snapshot de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// SnapshotMetrics computa as métricas correntes e publica o evento de relatório
func (s *MetricsSnapshotService) SnapshotMetrics() {
	s.snapshotMutex.Lock()
	s.lastRunStartedAt = time.Now()
	s.snapshotMutex.Unlock()

	metrics := s.projector.GetRevenueMetrics()

	logrus.WithFields(logrus.Fields{
		"daily_total":   metrics.DailyTotal,
		"monthly_total": metrics.MonthlyTotal,
		"annual_total":  metrics.AnnualTotal,
	}).Info("Snapshot de métricas de receita")

	s.notifier.PublishMetricsSnapshot(metrics)

	s.snapshotMutex.Lock()
	s.lastRunCompletedAt = time.Now()
	s.snapshotMutex.Unlock()
}

// TriggerManualRun publica manualmente um snapshot de métricas
func (s *MetricsSnapshotService) TriggerManualRun() {
	logrus.Info("Iniciando snapshot de métricas manual")
	go s.SnapshotMetrics()
}

// GetStatus retorna o status atual do agendador de snapshots
func (s *MetricsSnapshotService) GetStatus() map[string]any {
	s.snapshotMutex.Lock()
	defer s.snapshotMutex.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
	}
}
