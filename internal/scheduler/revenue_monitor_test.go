package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/revenue-engine-api/internal/config"
	"github.com/vfg2006/revenue-engine-api/internal/domain"
	"github.com/vfg2006/revenue-engine-api/internal/notifier"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/optimizing"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/projecting"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/tracking"
)

func testConfig() *config.Config {
	return &config.Config{
		RevenueTargets: config.RevenueTargets{
			Daily:   1500,
			Monthly: 45000,
			Annual:  540000,
			Growth:  0.15,
		},
		Optimizer: config.Optimizer{
			OptimizationThreshold: 0.85,
			AlertThreshold:        0.9,
		},
		RevenueMonitor: config.RevenueMonitor{
			CronSchedule: "*/5 * * * *",
			Enabled:      true,
		},
		MetricsSnapshot: config.MetricsSnapshot{
			CronSchedule: "0 * * * *",
			Enabled:      true,
		},
	}
}

func newMonitorFixture(cfg *config.Config) (*RevenueMonitorService, *registry.Registry, *notifier.Notifier) {
	reg := registry.New()
	n := notifier.New()
	projector := projecting.NewService(cfg, reg)
	tracker := tracking.NewService(reg, n, nil)
	optimizer := optimizing.NewService(cfg, reg, projector, tracker, n)

	return NewRevenueMonitorService(optimizer, projector, n, cfg), reg, n
}

func TestRunOptimizationCycle_EmitsAlertBelowThreshold(t *testing.T) {
	cfg := testConfig()
	service, _, n := newMonitorFixture(cfg)

	var alerts []notifier.Event
	n.Subscribe(notifier.EventRevenueAlert, func(e notifier.Event) {
		alerts = append(alerts, e)
	})

	// Receita zerada está bem abaixo de 1500 × 0.9 = 1350
	err := service.RunOptimizationCycle()
	assert.NoError(t, err)

	assert.Len(t, alerts, 1)
	assert.Equal(t, 0.0, alerts[0].Data["current"])
	assert.Equal(t, 1500.0, alerts[0].Data["target"])
	assert.Equal(t, 0.0, alerts[0].Data["percentage"])
}

func TestRunOptimizationCycle_AlertPercentageIsRounded(t *testing.T) {
	cfg := testConfig()
	service, reg, n := newMonitorFixture(cfg)

	var alerts []notifier.Event
	n.Subscribe(notifier.EventRevenueAlert, func(e notifier.Event) {
		alerts = append(alerts, e)
	})

	// 1000 / 1500 = 66.666...% arredondado para duas casas
	reg.MutateTier("starter", func(tier *domain.SubscriptionTier) float64 { return 1000 })

	err := service.RunOptimizationCycle()
	assert.NoError(t, err)

	assert.Len(t, alerts, 1)
	assert.Equal(t, 1000.0, alerts[0].Data["current"])
	assert.Equal(t, 66.67, alerts[0].Data["percentage"])
}

func TestRunOptimizationCycle_NoAlertAboveThreshold(t *testing.T) {
	cfg := testConfig()
	service, reg, n := newMonitorFixture(cfg)

	var alerts []notifier.Event
	n.Subscribe(notifier.EventRevenueAlert, func(e notifier.Event) {
		alerts = append(alerts, e)
	})

	// Receita acima de 1350 não gera alerta (e também não dispara ajustes)
	reg.MutateTier("enterprise", func(tier *domain.SubscriptionTier) float64 { return 1400 })

	err := service.RunOptimizationCycle()
	assert.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestRunOptimizationCycle_RunsOptimizerAdjustments(t *testing.T) {
	cfg := testConfig()
	service, reg, _ := newMonitorFixture(cfg)

	err := service.RunOptimizationCycle()
	assert.NoError(t, err)

	// O ciclo abaixo do limiar executa o otimizador: campanhas de seed criadas
	assert.Len(t, reg.AllCampaigns(), len(domain.AdPlatforms))
}

func TestRunOptimizationCycle_UpdatesStatus(t *testing.T) {
	cfg := testConfig()
	service, _, _ := newMonitorFixture(cfg)

	statusBefore := service.GetStatus()
	assert.Equal(t, true, statusBefore["enabled"])
	assert.Equal(t, "*/5 * * * *", statusBefore["cron"])

	err := service.RunOptimizationCycle()
	assert.NoError(t, err)

	status := service.GetStatus()
	assert.NotEqual(t, statusBefore["last_run_started_at"], status["last_run_started_at"])
	assert.NotEqual(t, statusBefore["last_run_completed_at"], status["last_run_completed_at"])
}

func TestSnapshotMetrics_PublishesReport(t *testing.T) {
	cfg := testConfig()
	reg := registry.New()
	n := notifier.New()
	projector := projecting.NewService(cfg, reg)

	service := NewMetricsSnapshotService(projector, n, cfg)

	var snapshots []notifier.Event
	n.Subscribe(notifier.EventMetricsSnapshot, func(e notifier.Event) {
		snapshots = append(snapshots, e)
	})

	reg.MutateTier("starter", func(tier *domain.SubscriptionTier) float64 { return 500 })

	service.SnapshotMetrics()

	assert.Len(t, snapshots, 1)
	assert.Equal(t, 500.0, snapshots[0].Data["daily_total"])
	assert.Equal(t, 500.0*30, snapshots[0].Data["monthly_total"])
	assert.Equal(t, 500.0*30*12, snapshots[0].Data["annual_total"])

	status := service.GetStatus()
	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, "0 * * * *", status["cron"])
}
