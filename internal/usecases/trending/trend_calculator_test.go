package trending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-success-api/internal/domain"
)

func makePoints(scores ...float64) []*domain.HealthScoreDataPoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	points := make([]*domain.HealthScoreDataPoint, 0, len(scores))
	for i, score := range scores {
		point := &domain.HealthScoreDataPoint{
			Date:  base.AddDate(0, 0, 7*i),
			Score: score,
		}

		if i > 0 {
			previous := scores[i-1]
			point.PreviousScore = &previous
			point.Change = score - previous
		}

		points = append(points, point)
	}

	return points
}

func TestCalculateTrend(t *testing.T) {
	tests := []struct {
		name              string
		scores            []float64
		expectedDirection domain.TrendDirectionKind
		expectedStrength  domain.TrendStrength
		expectedSlope     float64
	}{
		{
			name:              "Série constante - tendência estável com slope zero",
			scores:            []float64{60, 60, 60, 60},
			expectedDirection: domain.TrendStable,
			expectedStrength:  domain.TrendStrengthWeak,
			expectedSlope:     0,
		},
		{
			name:              "Crescimento linear de 5 pontos por período - alta forte",
			scores:            []float64{50, 55, 60, 65, 70},
			expectedDirection: domain.TrendUp,
			expectedStrength:  domain.TrendStrengthStrong,
			expectedSlope:     5,
		},
		{
			name:              "Queda linear de 5 pontos por período - baixa forte",
			scores:            []float64{70, 65, 60, 55, 50},
			expectedDirection: domain.TrendDown,
			expectedStrength:  domain.TrendStrengthStrong,
			expectedSlope:     -5,
		},
		{
			name:              "Crescimento de 1.5 ponto por período - alta moderada",
			scores:            []float64{50, 51.5, 53, 54.5},
			expectedDirection: domain.TrendUp,
			expectedStrength:  domain.TrendStrengthModerate,
			expectedSlope:     1.5,
		},
		{
			name:              "Crescimento de 0.7 ponto por período - alta fraca",
			scores:            []float64{50, 50.7, 51.4},
			expectedDirection: domain.TrendUp,
			expectedStrength:  domain.TrendStrengthWeak,
			expectedSlope:     0.7,
		},
		{
			name:              "Oscilação pequena abaixo do limiar - estável",
			scores:            []float64{60, 60.2, 59.9, 60.1},
			expectedDirection: domain.TrendStable,
			expectedStrength:  domain.TrendStrengthWeak,
			expectedSlope:     0,
		},
		{
			name:              "Dois pontos bastam - subida de 10 é alta forte",
			scores:            []float64{50, 60},
			expectedDirection: domain.TrendUp,
			expectedStrength:  domain.TrendStrengthStrong,
			expectedSlope:     10,
		},
		{
			name:              "Dois pontos em queda acentuada - baixa forte",
			scores:            []float64{70, 50},
			expectedDirection: domain.TrendDown,
			expectedStrength:  domain.TrendStrengthStrong,
			expectedSlope:     -20,
		},
		{
			name:              "Dois pontos iguais - estável",
			scores:            []float64{60, 60},
			expectedDirection: domain.TrendStable,
			expectedStrength:  domain.TrendStrengthWeak,
			expectedSlope:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := CalculateTrend(makePoints(tt.scores...))

			assert.NotNil(t, trend)
			assert.Equal(t, tt.expectedDirection, trend.Direction)
			assert.Equal(t, tt.expectedStrength, trend.Strength)
			assert.InDelta(t, tt.expectedSlope, trend.Slope, 0.15)
			assert.NotEmpty(t, trend.Description)
		})
	}
}

func TestCalculateTrend_HistoricoInsuficiente(t *testing.T) {
	tests := []struct {
		name   string
		points []*domain.HealthScoreDataPoint
	}{
		{name: "Série vazia", points: makePoints()},
		{name: "Um único ponto", points: makePoints(72)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := CalculateTrend(tt.points)

			assert.NotNil(t, trend)
			assert.Equal(t, domain.TrendStable, trend.Direction)
			assert.Equal(t, domain.TrendStrengthWeak, trend.Strength)
			assert.Zero(t, trend.Slope)
			assert.Equal(t, "Insufficient data for trend analysis", trend.Description)
		})
	}
}

func TestCalculateTrend_DescricaoPorDirecao(t *testing.T) {
	improving := CalculateTrend(makePoints(50, 55, 60, 65, 70))
	assert.Contains(t, improving.Description, "improving")
	assert.Contains(t, improving.Description, "strong")

	declining := CalculateTrend(makePoints(70, 65, 60, 55, 50))
	assert.Contains(t, declining.Description, "declining")

	stable := CalculateTrend(makePoints(60, 60, 60))
	assert.Contains(t, stable.Description, "stable")
}
