package trending

import (
	"fmt"
	"math"

	"github.com/sajari/regression"
	"github.com/vfg2006/customer-success-api/internal/domain"
)

// Limites de classificação do slope (pontos por período)
const (
	stableSlopeLimit   = 0.5
	moderateSlopeLimit = 1.0
	strongSlopeLimit   = 2.0
)

var insufficientDataTrend = domain.TrendDirection{
	Direction:   domain.TrendStable,
	Strength:    domain.TrendStrengthWeak,
	Slope:       0,
	Description: "Insufficient data for trend analysis",
}

// CalculateTrend ajusta uma reta de mínimos quadrados do score contra a
// posição do ponto na série (0..n-1) e classifica direção e força.
// Os pontos são tratados como igualmente espaçados, independentemente do
// intervalo real entre snapshots — aproximação assumida para cadência de
// coleta irregular.
func CalculateTrend(points []*domain.HealthScoreDataPoint) *domain.TrendDirection {
	if len(points) < 2 {
		trend := insufficientDataTrend
		return &trend
	}

	// O ajuste OLS exige pelo menos três observações; com exatamente dois
	// pontos o slope é a própria diferença entre eles
	if len(points) == 2 {
		return classifyTrend(points[1].Score - points[0].Score)
	}

	r := new(regression.Regression)
	r.SetObserved("health_score")
	r.SetVar(0, "period")

	for i, point := range points {
		r.Train(regression.DataPoint(point.Score, []float64{float64(i)}))
	}

	if err := r.Run(); err != nil {
		trend := insufficientDataTrend
		return &trend
	}

	return classifyTrend(r.Coeff(1))
}

// classifyTrend mapeia um slope para direção, força e descrição
func classifyTrend(slope float64) *domain.TrendDirection {
	direction := domain.TrendStable
	if slope >= stableSlopeLimit {
		direction = domain.TrendUp
	} else if slope <= -stableSlopeLimit {
		direction = domain.TrendDown
	}

	strength := domain.TrendStrengthWeak
	if math.Abs(slope) > strongSlopeLimit {
		strength = domain.TrendStrengthStrong
	} else if math.Abs(slope) > moderateSlopeLimit {
		strength = domain.TrendStrengthModerate
	}

	return &domain.TrendDirection{
		Direction:   direction,
		Strength:    strength,
		Slope:       slope,
		Description: describeTrend(direction, strength, slope),
	}
}

func describeTrend(direction domain.TrendDirectionKind, strength domain.TrendStrength, slope float64) string {
	switch direction {
	case domain.TrendUp:
		return fmt.Sprintf("Health score is improving (%s trend, %+.1f points/period)", strength, slope)
	case domain.TrendDown:
		return fmt.Sprintf("Health score is declining (%s trend, %+.1f points/period)", strength, slope)
	default:
		return fmt.Sprintf("Health score is stable (%+.1f points/period)", slope)
	}
}
