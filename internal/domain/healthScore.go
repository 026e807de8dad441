package domain

import "time"

// HealthCategory classifica um health score em faixas de atenção
type HealthCategory string

const (
	HealthCategoryHealthy  HealthCategory = "healthy"
	HealthCategoryWarning  HealthCategory = "warning"
	HealthCategoryCritical HealthCategory = "critical"
)

// Limites das categorias de health score. Intervalos fechados à esquerda:
// [70,100] healthy, [40,70) warning, [0,40) critical
const (
	HealthyScoreThreshold = 70.0
	WarningScoreThreshold = 40.0
)

// CategorizeScore mapeia um score escalar para a categoria correspondente.
// Usada de forma uniforme por ponto, por cliente e por bucket de portfólio
// para que as contagens por categoria sejam sempre consistentes.
func CategorizeScore(score float64) HealthCategory {
	switch {
	case score >= HealthyScoreThreshold:
		return HealthCategoryHealthy
	case score >= WarningScoreThreshold:
		return HealthCategoryWarning
	default:
		return HealthCategoryCritical
	}
}

// HealthScoreSnapshot é a linha crua persistida por cliente e data
type HealthScoreSnapshot struct {
	ID            int                `json:"id"`
	CustomerID    string             `json:"customer_id"`
	Date          time.Time          `json:"date"`
	Score         float64            `json:"score"`
	PreviousScore *float64           `json:"previous_score"`
	Components    map[string]float64 `json:"components"`
	CreatedAt     time.Time          `json:"created_at"`
}

// HealthScoreDataPoint é um snapshot do histórico já enriquecido com a
// variação em relação ao ponto anterior. Imutável depois de calculado e
// ordenado de forma ascendente por data dentro da série de um cliente.
type HealthScoreDataPoint struct {
	Date          time.Time          `json:"date"`
	Score         float64            `json:"score"`
	PreviousScore *float64           `json:"previous_score,omitempty"`
	Change        float64            `json:"change"`
	ChangePercent float64            `json:"change_percent"`
	Components    map[string]float64 `json:"components,omitempty"`
}
