package domain

import "time"

// PortfolioHealthOverview resume contagens, ARR e percentuais por categoria
// além do delta semana a semana do score médio
type PortfolioHealthOverview struct {
	TotalCustomers int     `json:"total_customers"`
	AvgHealthScore float64 `json:"avg_health_score"`
	ScoreChangeWoW float64 `json:"score_change_wow"`

	HealthyCount  int `json:"healthy_count"`
	WarningCount  int `json:"warning_count"`
	CriticalCount int `json:"critical_count"`

	HealthyARR  float64 `json:"healthy_arr"`
	WarningARR  float64 `json:"warning_arr"`
	CriticalARR float64 `json:"critical_arr"`

	HealthyPct  float64 `json:"healthy_pct"`
	WarningPct  float64 `json:"warning_pct"`
	CriticalPct float64 `json:"critical_pct"`

	Trend *TrendDirection `json:"trend"`
}

// PortfolioTrendData é uma linha por data distinta entre as séries de todos
// os clientes
type PortfolioTrendData struct {
	Date           string  `json:"date"` // Formato yyyy-mm-dd
	AvgScore       float64 `json:"avg_score"`
	HealthyPct     float64 `json:"healthy_pct"`
	WarningPct     float64 `json:"warning_pct"`
	CriticalPct    float64 `json:"critical_pct"`
	TotalCustomers int     `json:"total_customers"`
}

type InsightSeverity string

const (
	InsightSeverityInfo     InsightSeverity = "info"
	InsightSeverityWarning  InsightSeverity = "warning"
	InsightSeverityCritical InsightSeverity = "critical"
)

// TrendInsight é um fato narrativo derivado da análise, nunca persistido
type TrendInsight struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"` // portfolio_wow, steep_decline, critical_anomaly, renewal_risk
	Metric       string          `json:"metric"`
	Description  string          `json:"description"`
	Severity     InsightSeverity `json:"severity"`
	CustomerID   string          `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name,omitempty"`
}

// TrendAlert identifica um cliente dentro de um dos buckets de alerta
type TrendAlert struct {
	CustomerID    string  `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	CurrentScore  float64 `json:"current_score"`
	PreviousScore float64 `json:"previous_score,omitempty"`
	Slope         float64 `json:"slope,omitempty"`
	DaysToRenewal *int    `json:"days_to_renewal,omitempty"`
	ARR           float64 `json:"arr"`
}

// TrendAlerts agrupa os três buckets de alerta. Diferente dos insights, os
// buckets não têm limite de tamanho.
type TrendAlerts struct {
	NewCritical    []*TrendAlert `json:"new_critical"`
	SteepDeclines  []*TrendAlert `json:"steep_declines"`
	RenewalsAtRisk []*TrendAlert `json:"renewals_at_risk"`
}

// TrendFilters restringe a análise de portfólio
type TrendFilters struct {
	CSMID   string `json:"csm_id,omitempty"`
	Segment string `json:"segment,omitempty"`
	Days    int    `json:"days,omitempty"`
}

// HealthScoreTrendAnalysis é a resposta combinada da análise de portfólio
type HealthScoreTrendAnalysis struct {
	Overview    *PortfolioHealthOverview `json:"overview"`
	TrendData   []*PortfolioTrendData    `json:"trend_data"`
	Customers   []*CustomerHealthTrend   `json:"customers"`
	Insights    []*TrendInsight          `json:"insights"`
	Alerts      *TrendAlerts             `json:"alerts"`
	Filters     *TrendFilters            `json:"filters"`
	GeneratedAt time.Time                `json:"generated_at"`
}
