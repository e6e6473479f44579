package handler

import (
	"net/http"

	"github.com/vfg2006/revenue-engine-api/internal/api/handler/router"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/projecting"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/tracking"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Streams(reg *registry.Registry, projector projecting.Projector, service tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/streams",
			Method:  http.MethodGet,
			Handler: ListStreams(reg),
		},
		{
			Path:    "/v1/streams",
			Method:  http.MethodPost,
			Handler: RegisterStream(service),
		},
		{
			Path:    "/v1/streams/:id",
			Method:  http.MethodGet,
			Handler: GetStream(reg),
		},
		{
			Path:    "/v1/metrics",
			Method:  http.MethodGet,
			Handler: GetRevenueMetrics(projector),
		},
		{
			Path:    "/v1/projections",
			Method:  http.MethodGet,
			Handler: GetRevenueProjections(projector),
		},
	}
}

func Tracking(service tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/subscriptions/change",
			Method:  http.MethodPost,
			Handler: RecordSubscriptionChange(service),
		},
		{
			Path:    "/v1/subscriptions",
			Method:  http.MethodPost,
			Handler: SubscribeCustomer(service),
		},
		{
			Path:    "/v1/affiliates/sales",
			Method:  http.MethodPost,
			Handler: RecordAffiliateSale(service),
		},
		{
			Path:    "/v1/marketplace/transactions",
			Method:  http.MethodPost,
			Handler: RecordMarketplaceTransaction(service),
		},
	}
}

func Campaigns(service tracking.Tracker, reg *registry.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodPost,
			Handler: CreateCampaign(service),
		},
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodGet,
			Handler: ListCampaigns(reg),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
