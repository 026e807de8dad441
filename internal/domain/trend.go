package domain

import "time"

type TrendDirectionKind string

const (
	TrendUp     TrendDirectionKind = "up"
	TrendDown   TrendDirectionKind = "down"
	TrendStable TrendDirectionKind = "stable"
)

type TrendStrength string

const (
	TrendStrengthWeak     TrendStrength = "weak"
	TrendStrengthModerate TrendStrength = "moderate"
	TrendStrengthStrong   TrendStrength = "strong"
)

// TrendDirection é um valor derivado, recalculado a cada consulta e nunca
// persistido
type TrendDirection struct {
	Direction   TrendDirectionKind `json:"direction"`
	Strength    TrendStrength      `json:"strength"`
	Slope       float64            `json:"slope"`
	Description string             `json:"description"`
}

// Forecast projeta o score do próximo período com banda de confiança.
// Ausente quando o histórico é curto demais (menos de 4 pontos).
type Forecast struct {
	NextPeriod     float64 `json:"next_period"`
	ConfidenceLow  float64 `json:"confidence_low"`
	ConfidenceHigh float64 `json:"confidence_high"`
	Methodology    string  `json:"methodology"`
}

type AnomalySeverity string

const (
	AnomalySeverityInfo     AnomalySeverity = "info"
	AnomalySeverityWarning  AnomalySeverity = "warning"
	AnomalySeverityCritical AnomalySeverity = "critical"
)

// Anomaly marca um ponto que desviou fortemente da baseline local
type Anomaly struct {
	Date        time.Time       `json:"date"`
	Expected    float64         `json:"expected"`
	Actual      float64         `json:"actual"`
	Deviation   float64         `json:"deviation"`
	Severity    AnomalySeverity `json:"severity"`
	Description string          `json:"description"`
}

// CustomerHealthTrend é a raiz de agregação que liga a identidade e os fatos
// comerciais de um cliente à sua série de health score analisada
type CustomerHealthTrend struct {
	CustomerID      string                  `json:"customer_id"`
	CustomerName    string                  `json:"customer_name"`
	Segment         string                  `json:"segment"`
	ARR             float64                 `json:"arr"`
	RenewalDate     *time.Time              `json:"renewal_date,omitempty"`
	DaysToRenewal   *int                    `json:"days_to_renewal,omitempty"`
	CurrentScore    float64                 `json:"current_score"`
	Category        HealthCategory          `json:"category"`
	DataPoints      []*HealthScoreDataPoint `json:"data_points"`
	Trend           *TrendDirection         `json:"trend"`
	Forecast        *Forecast               `json:"forecast,omitempty"`
	Anomalies       []*Anomaly              `json:"anomalies"`
	LowestComponent string                  `json:"lowest_component,omitempty"`
}
