package trending

import (
	"math"

	"github.com/vfg2006/customer-success-api/internal/domain"
)

const (
	forecastMinPoints  = 4
	forecastWindowSize = 6
	forecastZScore     = 1.96 // Intervalo de confiança de 95%
)

const forecastMethodology = "Linear extrapolation with confidence interval"

// BuildForecast projeta o score do próximo período extrapolando a média das
// variações recentes, com banda de 95% de confiança a partir do desvio
// padrão populacional dessas variações. Retorna nil para séries com menos de
// quatro pontos.
func BuildForecast(points []*domain.HealthScoreDataPoint) *domain.Forecast {
	if len(points) < forecastMinPoints {
		return nil
	}

	window := points
	if len(window) > forecastWindowSize {
		window = window[len(window)-forecastWindowSize:]
	}

	sum := 0.0
	for _, point := range window {
		sum += point.Change
	}
	avgChange := sum / float64(len(window))

	variance := 0.0
	for _, point := range window {
		diff := point.Change - avgChange
		variance += diff * diff
	}
	stdDev := math.Sqrt(variance / float64(len(window)))

	currentScore := points[len(points)-1].Score
	nextPeriod := clampScore(math.Round(currentScore + avgChange))

	return &domain.Forecast{
		NextPeriod:     nextPeriod,
		ConfidenceLow:  clampScore(math.Round(nextPeriod - forecastZScore*stdDev)),
		ConfidenceHigh: clampScore(math.Round(nextPeriod + forecastZScore*stdDev)),
		Methodology:    forecastMethodology,
	}
}

// clampScore limita um score ao intervalo válido [0,100]
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
