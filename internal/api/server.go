package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-engine-api/internal/api/handler"
	"github.com/vfg2006/revenue-engine-api/internal/api/handler/router"
	"github.com/vfg2006/revenue-engine-api/internal/config"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
	"github.com/vfg2006/revenue-engine-api/internal/scheduler"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/projecting"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/tracking"
	"github.com/vfg2006/revenue-engine-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	reg *registry.Registry,
	trackingService tracking.Tracker,
	projectionService projecting.Projector,
	revenueMonitorService *scheduler.RevenueMonitorService,
	metricsSnapshotService *scheduler.MetricsSnapshotService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		RevenueMonitorService:  revenueMonitorService,
		MetricsSnapshotService: metricsSnapshotService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Streams(reg, projectionService, trackingService)...),
		router.WithRoutes(handler.Tracking(trackingService)...),
		router.WithRoutes(handler.Campaigns(trackingService, reg)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
	}

	chain := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
