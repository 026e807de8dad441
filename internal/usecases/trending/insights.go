package trending

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-success-api/internal/domain"
	"github.com/vfg2006/customer-success-api/pkg/utils"
)

const (
	maxInsights = 10

	// Queda de 15 pontos por semana em snapshots diários
	steepDeclineSlopeThreshold = 15.0 / 7.0

	renewalInsightWindowDays = 60
	renewalAlertWindowDays   = 90
)

// InsightOrder ordena os insights antes do corte em maxInsights. O padrão
// preserva a ordem de geração (WoW do portfólio, quedas fortes, anomalias
// críticas, renovações próximas), que funciona como prioridade de fato.
// Trocar este comparador (ex: por ranking de severidade) reordena o corte
// sem mexer na geração.
var InsightOrder = func(a, b *domain.TrendInsight) bool {
	return false
}

// GenerateInsights deriva a lista limitada de achados legíveis a partir das
// tendências por cliente e dos números agregados do portfólio
func GenerateInsights(trends []*domain.CustomerHealthTrend, avgHealthScore, scoreChangeWoW float64) []*domain.TrendInsight {
	insights := make([]*domain.TrendInsight, 0, maxInsights)

	wowSeverity := domain.InsightSeverityInfo
	if scoreChangeWoW < 0 {
		wowSeverity = domain.InsightSeverityWarning
	}

	insights = append(insights, newInsight(
		"portfolio_wow",
		"avg_health_score",
		fmt.Sprintf("Portfolio average health score is %.1f (%+.1f week over week)", avgHealthScore, scoreChangeWoW),
		wowSeverity,
		nil,
	))

	for _, trend := range trends {
		if trend.Trend == nil {
			continue
		}

		if trend.Trend.Direction == domain.TrendDown && trend.Trend.Strength == domain.TrendStrengthStrong {
			insights = append(insights, newInsight(
				"steep_decline",
				"health_score_slope",
				fmt.Sprintf("%s is declining sharply (%.1f points/period)", trend.CustomerName, math.Abs(trend.Trend.Slope)),
				domain.InsightSeverityWarning,
				trend,
			))
		}
	}

	for _, trend := range trends {
		for _, anomaly := range trend.Anomalies {
			if anomaly.Severity != domain.AnomalySeverityCritical {
				continue
			}

			insights = append(insights, newInsight(
				"critical_anomaly",
				"health_score_deviation",
				fmt.Sprintf("%s: %s on %s", trend.CustomerName, anomaly.Description, anomaly.Date.Format("2006-01-02")),
				domain.InsightSeverityCritical,
				trend,
			))
		}
	}

	for _, trend := range trends {
		if trend.DaysToRenewal == nil || *trend.DaysToRenewal > renewalInsightWindowDays {
			continue
		}

		if trend.Category == domain.HealthCategoryHealthy {
			continue
		}

		insights = append(insights, newInsight(
			"renewal_risk",
			"days_to_renewal",
			fmt.Sprintf("%s renews in %d days with a %s health score (%.0f)", trend.CustomerName, *trend.DaysToRenewal, trend.Category, trend.CurrentScore),
			domain.InsightSeverityWarning,
			trend,
		))
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return InsightOrder(insights[i], insights[j])
	})

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}

	return insights
}

func newInsight(insightType, metric, description string, severity domain.InsightSeverity, trend *domain.CustomerHealthTrend) *domain.TrendInsight {
	id, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Warn("insights: failed to generate insight id")
	}

	insight := &domain.TrendInsight{
		ID:          id,
		Type:        insightType,
		Metric:      metric,
		Description: description,
		Severity:    severity,
	}

	if trend != nil {
		insight.CustomerID = trend.CustomerID
		insight.CustomerName = trend.CustomerName
	}

	return insight
}

// BuildAlerts agrupa os clientes nos três buckets de alerta. Diferente dos
// insights, os buckets não são limitados.
func BuildAlerts(trends []*domain.CustomerHealthTrend) *domain.TrendAlerts {
	alerts := &domain.TrendAlerts{
		NewCritical:    make([]*domain.TrendAlert, 0),
		SteepDeclines:  make([]*domain.TrendAlert, 0),
		RenewalsAtRisk: make([]*domain.TrendAlert, 0),
	}

	for _, trend := range trends {
		points := trend.DataPoints

		// Cliente que acabou de cruzar para critical: último ponto critical e
		// penúltimo em outra categoria. Série de tamanho 1 nunca é sinalizada
		// porque não há ponto anterior.
		if len(points) >= 2 {
			last := points[len(points)-1]
			previous := points[len(points)-2]

			if domain.CategorizeScore(last.Score) == domain.HealthCategoryCritical &&
				domain.CategorizeScore(previous.Score) != domain.HealthCategoryCritical {
				alerts.NewCritical = append(alerts.NewCritical, &domain.TrendAlert{
					CustomerID:    trend.CustomerID,
					CustomerName:  trend.CustomerName,
					CurrentScore:  last.Score,
					PreviousScore: previous.Score,
					ARR:           trend.ARR,
				})
			}
		}

		if trend.Trend != nil &&
			trend.Trend.Direction == domain.TrendDown &&
			math.Abs(trend.Trend.Slope) >= steepDeclineSlopeThreshold {
			alerts.SteepDeclines = append(alerts.SteepDeclines, &domain.TrendAlert{
				CustomerID:   trend.CustomerID,
				CustomerName: trend.CustomerName,
				CurrentScore: trend.CurrentScore,
				Slope:        trend.Trend.Slope,
				ARR:          trend.ARR,
			})
		}

		if trend.DaysToRenewal != nil &&
			*trend.DaysToRenewal <= renewalAlertWindowDays &&
			trend.Category != domain.HealthCategoryHealthy {
			alerts.RenewalsAtRisk = append(alerts.RenewalsAtRisk, &domain.TrendAlert{
				CustomerID:    trend.CustomerID,
				CustomerName:  trend.CustomerName,
				CurrentScore:  trend.CurrentScore,
				DaysToRenewal: trend.DaysToRenewal,
				ARR:           trend.ARR,
			})
		}
	}

	return alerts
}
