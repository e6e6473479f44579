package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-engine-api/internal/scheduler"
	"github.com/vfg2006/revenue-engine-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeMonitor  = "monitor"
	CronJobTypeSnapshot = "snapshot"
	CronJobTypeAll      = "all"
)

// CronJobServices contém os agendadores necessários para execução manual
type CronJobServices struct {
	RevenueMonitorService  *scheduler.RevenueMonitorService
	MetricsSnapshotService *scheduler.MetricsSnapshotService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeMonitor:
			if services.RevenueMonitorService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Monitor de receita não disponível", nil)
				return
			}
			services.RevenueMonitorService.TriggerManualRun()

		case CronJobTypeSnapshot:
			if services.MetricsSnapshotService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Snapshot de métricas não disponível", nil)
				return
			}
			services.MetricsSnapshotService.TriggerManualRun()

		case CronJobTypeAll:
			if services.RevenueMonitorService != nil {
				services.RevenueMonitorService.TriggerManualRun()
			}
			if services.MetricsSnapshotService != nil {
				services.MetricsSnapshotService.TriggerManualRun()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: monitor, snapshot, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		writeJSON(w, response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"monitor":  services.RevenueMonitorService.GetStatus(),
			"snapshot": services.MetricsSnapshotService.GetStatus(),
		}

		writeJSON(w, status)
	}
}
