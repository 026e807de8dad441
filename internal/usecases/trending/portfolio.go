package trending

import (
	"math"
	"sort"
	"time"

	"github.com/vfg2006/customer-success-api/internal/domain"
)

// BuildPortfolioTrendData funde as séries de todos os clientes em buckets
// por data. Uma data presente na série de um cliente e ausente na de outro
// conta apenas os clientes que têm ponto naquela data — não há interpolação
// de datas faltantes.
func BuildPortfolioTrendData(trends []*domain.CustomerHealthTrend) []*domain.PortfolioTrendData {
	scoresByDate := make(map[string][]float64)

	for _, trend := range trends {
		for _, point := range trend.DataPoints {
			date := point.Date.Format(time.DateOnly)
			scoresByDate[date] = append(scoresByDate[date], point.Score)
		}
	}

	data := make([]*domain.PortfolioTrendData, 0, len(scoresByDate))

	for date, scores := range scoresByDate {
		total := len(scores)

		sum := 0.0
		counts := make(map[domain.HealthCategory]int)
		for _, score := range scores {
			sum += score
			counts[domain.CategorizeScore(score)]++
		}

		data = append(data, &domain.PortfolioTrendData{
			Date:           date,
			AvgScore:       math.Round(sum / float64(total)),
			HealthyPct:     roundPct(counts[domain.HealthCategoryHealthy], total),
			WarningPct:     roundPct(counts[domain.HealthCategoryWarning], total),
			CriticalPct:    roundPct(counts[domain.HealthCategoryCritical], total),
			TotalCustomers: total,
		})
	}

	sort.Slice(data, func(i, j int) bool {
		return data[i].Date < data[j].Date
	})

	return data
}

// PortfolioTrend calcula a direção de tendência do próprio portfólio
// alimentando a série de scores médios como pseudo pontos no mesmo cálculo
// usado por cliente.
func PortfolioTrend(trendData []*domain.PortfolioTrendData) *domain.TrendDirection {
	points := make([]*domain.HealthScoreDataPoint, 0, len(trendData))

	for _, row := range trendData {
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			continue
		}

		points = append(points, &domain.HealthScoreDataPoint{
			Date:  date,
			Score: row.AvgScore,
		})
	}

	return CalculateTrend(points)
}

// roundPct calcula o percentual arredondado de count sobre total, com guarda
// explícita de divisão por zero
func roundPct(count, total int) float64 {
	if total == 0 {
		return 0
	}

	return math.Round(float64(count) / float64(total) * 100)
}
