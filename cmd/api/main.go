package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-engine-api/infrastructure/integrator/billing"
	"github.com/vfg2006/revenue-engine-api/infrastructure/integrator/billing/billingclient"
	"github.com/vfg2006/revenue-engine-api/infrastructure/notifier/redispub"
	"github.com/vfg2006/revenue-engine-api/internal/api"
	"github.com/vfg2006/revenue-engine-api/internal/config"
	"github.com/vfg2006/revenue-engine-api/internal/notifier"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
	"github.com/vfg2006/revenue-engine-api/internal/scheduler"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/optimizing"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/projecting"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/tracking"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := registry.New()
	eventNotifier := notifier.New()

	// Replica eventos para o Redis quando habilitado
	if cfg.Redis.Enabled {
		publisher := redispub.New(cfg)
		publisher.Attach(eventNotifier)
		defer publisher.Close()
		logrus.Info("Replicação de eventos para o Redis habilitada")
	}

	billingClient := billingclient.NewClient(cfg)
	billingIntegrator := billing.New(cfg, billingClient)

	trackingService := tracking.NewService(reg, eventNotifier, billingIntegrator)
	projectionService := projecting.NewService(cfg, reg)
	optimizerService := optimizing.NewService(cfg, reg, projectionService, trackingService, eventNotifier)

	// Inicializa os agendadores de monitoramento e snapshot
	revenueMonitorService := scheduler.NewRevenueMonitorService(
		optimizerService,
		projectionService,
		eventNotifier,
		cfg,
	)

	metricsSnapshotService := scheduler.NewMetricsSnapshotService(
		projectionService,
		eventNotifier,
		cfg,
	)

	// Inicia os agendadores em background
	if err := revenueMonitorService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o monitor de receita")
	} else {
		logrus.Info("Monitor de receita iniciado com sucesso")
	}

	if err := metricsSnapshotService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o snapshot de métricas")
	} else {
		logrus.Info("Snapshot de métricas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reg,
		trackingService,
		projectionService,
		revenueMonitorService,
		metricsSnapshotService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
