package handler

import (
	"net/http"

	"github.com/vfg2006/customer-success-api/internal/api/handler/router"
	"github.com/vfg2006/customer-success-api/internal/usecases/trending"
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

func HealthTrends(service trending.TrendAnalyzer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/customers/:id/health-trend",
			Method:  http.MethodGet,
			Handler: GetCustomerHealthTrend(service),
		},
		{
			Path:    "/v1/portfolio/health-trend",
			Method:  http.MethodGet,
			Handler: GetPortfolioHealthTrend(service),
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
