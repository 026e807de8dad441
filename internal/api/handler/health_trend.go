package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/customer-success-api/internal/domain"
	"github.com/vfg2006/customer-success-api/internal/usecases/trending"
	"github.com/vfg2006/customer-success-api/pkg/apiErrors"
	"github.com/vfg2006/customer-success-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GetCustomerHealthTrend retorna a análise de tendência de health score de um cliente
func GetCustomerHealthTrend(service trending.TrendAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		customerID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if customerID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente não informado", nil)
			return
		}

		days, err := parseDaysParam(r.URL.Query().Get("days"))
		if err != nil {
			logger.WithField("days", r.URL.Query().Get("days")).Warn("invalid days parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro days deve ser um inteiro positivo", nil)
			return
		}

		logger.WithFields(log.Fields{
			"customer_id": customerID,
			"days":        days,
		}).Info("fetching customer health trend")

		trend, err := service.CustomerHealthTrend(r.Context(), customerID, days)
		if err != nil {
			logger.WithError(err).Error("error building customer health trend")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao analisar a tendência do cliente", nil)
			return
		}

		if trend == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Cliente não encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(trend); err != nil {
			logger.WithError(err).Error("error encoding customer health trend response")
		}
	})
}

// GetPortfolioHealthTrend retorna a análise agregada do portfólio, com filtros
// opcionais de segmento e CSM
func GetPortfolioHealthTrend(service trending.TrendAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		days, err := parseDaysParam(r.URL.Query().Get("days"))
		if err != nil {
			logger.WithField("days", r.URL.Query().Get("days")).Warn("invalid days parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro days deve ser um inteiro positivo", nil)
			return
		}

		filters := &domain.TrendFilters{
			Segment: r.URL.Query().Get("segment"),
			CSMID:   r.URL.Query().Get("csm_id"),
			Days:    days,
		}

		logger.WithFields(log.Fields{
			"segment": filters.Segment,
			"csm_id":  filters.CSMID,
			"days":    days,
		}).Info("fetching portfolio health trend")

		analysis, err := service.PortfolioHealthTrendAnalysis(r.Context(), filters)
		if err != nil {
			logger.WithError(err).Error("error building portfolio health trend")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao analisar a tendência do portfólio", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(analysis); err != nil {
			logger.WithError(err).Error("error encoding portfolio health trend response")
		}
	})
}

// parseDaysParam converte o parâmetro days da query string. Vazio retorna zero,
// deixando o serviço aplicar a janela padrão.
func parseDaysParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}

	if days < 0 {
		return 0, strconv.ErrRange
	}

	return days, nil
}
