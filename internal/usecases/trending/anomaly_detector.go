package trending

import (
	"fmt"
	"math"

	"github.com/vfg2006/customer-success-api/internal/domain"
	"github.com/vfg2006/customer-success-api/pkg/utils"
)

const (
	anomalyMinPoints          = 3
	anomalyDeviationThreshold = 15.0
	anomalyWarningThreshold   = 20.0
	anomalyCriticalThreshold  = 25.0
	baselineWindowSize        = 2
)

// BaselineEstimator calcula o valor esperado para o ponto na posição idx a
// partir do começo da série. Isolado em interface para permitir substituir a
// média móvel por um estimador mais robusto (ex: z-score deslizante) sem
// tocar nos chamadores.
type BaselineEstimator interface {
	Expected(points []*domain.HealthScoreDataPoint, idx int) (float64, bool)
}

// movingAverageBaseline usa a média dos N pontos anteriores como valor
// esperado. Estatisticamente fraca para séries curtas e ruidosas: qualquer
// oscilação de dois pontos acima do limiar dispara uma anomalia.
type movingAverageBaseline struct {
	window int
}

func (b movingAverageBaseline) Expected(points []*domain.HealthScoreDataPoint, idx int) (float64, bool) {
	if idx < b.window {
		return 0, false
	}

	sum := 0.0
	for i := idx - b.window; i < idx; i++ {
		sum += points[i].Score
	}

	return sum / float64(b.window), true
}

type AnomalyDetector struct {
	baseline BaselineEstimator
}

// NewAnomalyDetector cria um detector de anomalias. Com baseline nil usa a
// média móvel de dois pontos.
func NewAnomalyDetector(baseline BaselineEstimator) *AnomalyDetector {
	if baseline == nil {
		baseline = movingAverageBaseline{window: baselineWindowSize}
	}

	return &AnomalyDetector{baseline: baseline}
}

// Detect sinaliza pontos cujo desvio absoluto em relação à baseline local é
// maior ou igual ao limiar. Séries com menos de três pontos nunca produzem
// anomalias.
func (d *AnomalyDetector) Detect(points []*domain.HealthScoreDataPoint) []*domain.Anomaly {
	anomalies := make([]*domain.Anomaly, 0)

	if len(points) < anomalyMinPoints {
		return anomalies
	}

	for i := range points {
		expected, ok := d.baseline.Expected(points, i)
		if !ok {
			continue
		}

		deviation := points[i].Score - expected
		if math.Abs(deviation) < anomalyDeviationThreshold {
			continue
		}

		anomalies = append(anomalies, &domain.Anomaly{
			Date:        points[i].Date,
			Expected:    utils.RoundWithTwoDecimalPlace(expected),
			Actual:      points[i].Score,
			Deviation:   utils.RoundWithTwoDecimalPlace(deviation),
			Severity:    anomalySeverity(deviation),
			Description: describeAnomaly(deviation),
		})
	}

	return anomalies
}

func anomalySeverity(deviation float64) domain.AnomalySeverity {
	abs := math.Abs(deviation)

	switch {
	case abs >= anomalyCriticalThreshold:
		return domain.AnomalySeverityCritical
	case abs >= anomalyWarningThreshold:
		return domain.AnomalySeverityWarning
	default:
		return domain.AnomalySeverityInfo
	}
}

func describeAnomaly(deviation float64) string {
	if deviation > 0 {
		return fmt.Sprintf("Unexpected improvement of %.1f points over the recent baseline", deviation)
	}

	return fmt.Sprintf("Unexpected decline of %.1f points below the recent baseline", math.Abs(deviation))
}
