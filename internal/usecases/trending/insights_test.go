package trending

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-success-api/internal/domain"
)

func intPtr(i int) *int {
	return &i
}

func decliningTrend(id string, slope float64) *domain.CustomerHealthTrend {
	return &domain.CustomerHealthTrend{
		CustomerID:   id,
		CustomerName: "Cliente " + id,
		CurrentScore: 50,
		Category:     domain.HealthCategoryWarning,
		Trend: &domain.TrendDirection{
			Direction: domain.TrendDown,
			Strength:  domain.TrendStrengthStrong,
			Slope:     slope,
		},
	}
}

func TestGenerateInsights_SempreIncluiResumoDoPortfolio(t *testing.T) {
	insights := GenerateInsights(nil, 72.5, 1.3)

	assert.Len(t, insights, 1)
	assert.Equal(t, "portfolio_wow", insights[0].Type)
	assert.Equal(t, "avg_health_score", insights[0].Metric)
	assert.Equal(t, domain.InsightSeverityInfo, insights[0].Severity)
	assert.Contains(t, insights[0].Description, "72.5")
	assert.NotEmpty(t, insights[0].ID)
}

func TestGenerateInsights_WoWNegativoViraWarning(t *testing.T) {
	insights := GenerateInsights(nil, 65.0, -2.4)

	assert.Len(t, insights, 1)
	assert.Equal(t, domain.InsightSeverityWarning, insights[0].Severity)
}

func TestGenerateInsights_LimitadoADezNaOrdemDeGeracao(t *testing.T) {
	trends := make([]*domain.CustomerHealthTrend, 0, 11)
	for i := 0; i < 11; i++ {
		trends = append(trends, decliningTrend(fmt.Sprintf("cust-%02d", i), -5))
	}

	insights := GenerateInsights(trends, 55, -3)

	// 1 resumo + 11 quedas fortes = 12 candidatos, cortados em 10
	assert.Len(t, insights, 10)
	assert.Equal(t, "portfolio_wow", insights[0].Type)

	for i := 1; i < 10; i++ {
		assert.Equal(t, "steep_decline", insights[i].Type)
		assert.Equal(t, fmt.Sprintf("cust-%02d", i-1), insights[i].CustomerID)
	}
}

func TestGenerateInsights_AnomaliaCritica(t *testing.T) {
	trend := &domain.CustomerHealthTrend{
		CustomerID:   "cust-1",
		CustomerName: "Acme",
		CurrentScore: 45,
		Category:     domain.HealthCategoryWarning,
		Anomalies: []*domain.Anomaly{
			{
				Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
				Severity:    domain.AnomalySeverityCritical,
				Description: "Unexpected decline of 30.0 points below the recent baseline",
			},
			{
				Date:     time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
				Severity: domain.AnomalySeverityWarning,
			},
		},
	}

	insights := GenerateInsights([]*domain.CustomerHealthTrend{trend}, 60, 0)

	// Só a anomalia crítica gera insight; a warning é ignorada
	assert.Len(t, insights, 2)
	assert.Equal(t, "critical_anomaly", insights[1].Type)
	assert.Equal(t, domain.InsightSeverityCritical, insights[1].Severity)
	assert.Equal(t, "cust-1", insights[1].CustomerID)
	assert.Contains(t, insights[1].Description, "2024-03-10")
}

func TestGenerateInsights_RiscoDeRenovacao(t *testing.T) {
	tests := []struct {
		name          string
		daysToRenewal *int
		category      domain.HealthCategory
		expectInsight bool
	}{
		{
			name:          "Renovação em 30 dias com score warning",
			daysToRenewal: intPtr(30),
			category:      domain.HealthCategoryWarning,
			expectInsight: true,
		},
		{
			name:          "Renovação em 60 dias exatos com score critical",
			daysToRenewal: intPtr(60),
			category:      domain.HealthCategoryCritical,
			expectInsight: true,
		},
		{
			name:          "Renovação em 61 dias fica fora da janela",
			daysToRenewal: intPtr(61),
			category:      domain.HealthCategoryCritical,
			expectInsight: false,
		},
		{
			name:          "Cliente saudável não gera insight de renovação",
			daysToRenewal: intPtr(15),
			category:      domain.HealthCategoryHealthy,
			expectInsight: false,
		},
		{
			name:          "Sem data de renovação não gera insight",
			daysToRenewal: nil,
			category:      domain.HealthCategoryCritical,
			expectInsight: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := &domain.CustomerHealthTrend{
				CustomerID:    "cust-1",
				CustomerName:  "Acme",
				CurrentScore:  50,
				Category:      tt.category,
				DaysToRenewal: tt.daysToRenewal,
			}

			insights := GenerateInsights([]*domain.CustomerHealthTrend{trend}, 60, 0)

			if tt.expectInsight {
				assert.Len(t, insights, 2)
				assert.Equal(t, "renewal_risk", insights[1].Type)
			} else {
				assert.Len(t, insights, 1)
			}
		})
	}
}

func TestBuildAlerts_NovoCritico(t *testing.T) {
	tests := []struct {
		name        string
		scores      []float64
		expectAlert bool
	}{
		{
			name:        "Cruzou de warning para critical",
			scores:      []float64{55, 35},
			expectAlert: true,
		},
		{
			name:        "Já estava critical - não é novo",
			scores:      []float64{38, 35},
			expectAlert: false,
		},
		{
			name:        "Ponto único nunca sinaliza",
			scores:      []float64{20},
			expectAlert: false,
		},
		{
			name:        "Continua warning",
			scores:      []float64{55, 50},
			expectAlert: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := makePoints(tt.scores...)
			trend := &domain.CustomerHealthTrend{
				CustomerID:   "cust-1",
				CustomerName: "Acme",
				CurrentScore: tt.scores[len(tt.scores)-1],
				Category:     domain.CategorizeScore(tt.scores[len(tt.scores)-1]),
				DataPoints:   points,
				ARR:          120000,
			}

			alerts := BuildAlerts([]*domain.CustomerHealthTrend{trend})

			if tt.expectAlert {
				assert.Len(t, alerts.NewCritical, 1)
				assert.Equal(t, tt.scores[len(tt.scores)-1], alerts.NewCritical[0].CurrentScore)
				assert.Equal(t, tt.scores[len(tt.scores)-2], alerts.NewCritical[0].PreviousScore)
				assert.Equal(t, 120000.0, alerts.NewCritical[0].ARR)
			} else {
				assert.Empty(t, alerts.NewCritical)
			}
		})
	}
}

func TestBuildAlerts_QuedaAcentuada(t *testing.T) {
	steep := decliningTrend("cust-1", -3)
	gentle := decliningTrend("cust-2", -1)

	alerts := BuildAlerts([]*domain.CustomerHealthTrend{steep, gentle})

	// Limiar de 15 pontos em 7 períodos (~2.14): só a queda de 3 passa
	assert.Len(t, alerts.SteepDeclines, 1)
	assert.Equal(t, "cust-1", alerts.SteepDeclines[0].CustomerID)
	assert.Equal(t, -3.0, alerts.SteepDeclines[0].Slope)
}

func TestBuildAlerts_RenovacoesEmRisco(t *testing.T) {
	atRisk := &domain.CustomerHealthTrend{
		CustomerID:    "cust-1",
		CustomerName:  "Acme",
		CurrentScore:  45,
		Category:      domain.HealthCategoryWarning,
		DaysToRenewal: intPtr(90),
	}
	healthy := &domain.CustomerHealthTrend{
		CustomerID:    "cust-2",
		CustomerName:  "Globex",
		CurrentScore:  85,
		Category:      domain.HealthCategoryHealthy,
		DaysToRenewal: intPtr(10),
	}
	farAway := &domain.CustomerHealthTrend{
		CustomerID:    "cust-3",
		CustomerName:  "Initech",
		CurrentScore:  30,
		Category:      domain.HealthCategoryCritical,
		DaysToRenewal: intPtr(91),
	}

	alerts := BuildAlerts([]*domain.CustomerHealthTrend{atRisk, healthy, farAway})

	assert.Len(t, alerts.RenewalsAtRisk, 1)
	assert.Equal(t, "cust-1", alerts.RenewalsAtRisk[0].CustomerID)
}

func TestBuildAlerts_BucketsVaziosNaoSaoNil(t *testing.T) {
	alerts := BuildAlerts(nil)

	assert.NotNil(t, alerts.NewCritical)
	assert.NotNil(t, alerts.SteepDeclines)
	assert.NotNil(t, alerts.RenewalsAtRisk)
	assert.Empty(t, alerts.NewCritical)
	assert.Empty(t, alerts.SteepDeclines)
	assert.Empty(t, alerts.RenewalsAtRisk)
}
