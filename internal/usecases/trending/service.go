package trending

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-success-api/infrastructure/repository"
	"github.com/vfg2006/customer-success-api/internal/config"
	"github.com/vfg2006/customer-success-api/internal/domain"
	"github.com/vfg2006/customer-success-api/pkg/utils"
)

const (
	// DefaultTrendDays é a janela padrão de histórico analisada
	DefaultTrendDays = 90

	defaultMaxConcurrentTrends = 5
	weekOverWeekDays           = 7
)

// Service implementa TrendAnalyzer orquestrando o cálculo de tendência,
// previsão, anomalias e agregação de portfólio sobre os repositórios
// injetados. Não guarda estado entre requisições.
type Service struct {
	customerRepo  repository.CustomerRepository
	snapshotRepo  repository.HealthSnapshotRepository
	detector      *AnomalyDetector
	maxConcurrent int
	now           func() time.Time
}

// NewService cria o serviço de análise de tendência. Os repositórios chegam
// por injeção para que o motor seja testável sem banco e para permitir
// múltiplas configurações coexistindo.
func NewService(
	cfg *config.Config,
	customerRepo repository.CustomerRepository,
	snapshotRepo repository.HealthSnapshotRepository,
) TrendAnalyzer {
	maxConcurrent := defaultMaxConcurrentTrends
	if cfg != nil && cfg.PortfolioScan.MaxConcurrentJobs > 0 {
		maxConcurrent = cfg.PortfolioScan.MaxConcurrentJobs
	}

	return &Service{
		customerRepo:  customerRepo,
		snapshotRepo:  snapshotRepo,
		detector:      NewAnomalyDetector(nil),
		maxConcurrent: maxConcurrent,
		now:           time.Now,
	}
}

// CustomerHealthTrend monta a análise de tendência de um cliente a partir do
// histórico dos últimos N dias
func (s *Service) CustomerHealthTrend(ctx context.Context, customerID string, days int) (*domain.CustomerHealthTrend, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}

	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar cliente %s: %w", customerID, err)
	}

	if customer == nil {
		return nil, nil
	}

	now := s.now()

	// A falha de busca do histórico no ponto de entrada individual propaga
	// para o chamador; só a análise de portfólio tolera e segue
	snapshots, err := s.snapshotRepo.GetHistory(customerID, now.AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico de health score do cliente %s: %w", customerID, err)
	}

	points := buildDataPoints(customer, snapshots, now)
	latest := points[len(points)-1]

	return &domain.CustomerHealthTrend{
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		Segment:         customer.Segment,
		ARR:             customer.ARR,
		RenewalDate:     customer.RenewalDate,
		DaysToRenewal:   daysToRenewal(customer.RenewalDate, now),
		CurrentScore:    latest.Score,
		Category:        domain.CategorizeScore(latest.Score),
		DataPoints:      points,
		Trend:           CalculateTrend(points),
		Forecast:        BuildForecast(points),
		Anomalies:       s.detector.Detect(points),
		LowestComponent: lowestComponent(latest.Components),
	}, nil
}

// PortfolioHealthTrendAnalysis calcula a tendência de cada cliente ativo e
// agrega o resultado em visão de portfólio
func (s *Service) PortfolioHealthTrendAnalysis(ctx context.Context, filters *domain.TrendFilters) (*domain.HealthScoreTrendAnalysis, error) {
	if filters == nil {
		filters = &domain.TrendFilters{}
	}

	days := filters.Days
	if days <= 0 {
		days = DefaultTrendDays
	}

	customers, err := s.customerRepo.ListActive(&domain.CustomerFilters{
		Segment: filters.Segment,
		CSMID:   filters.CSMID,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes ativos: %w", err)
	}

	trends := make([]*domain.CustomerHealthTrend, 0, len(customers))
	excluded := 0

	semaphore := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup
	var mutex sync.Mutex

	for _, customer := range customers {
		// Cancelamento de granularidade grossa: só entre iterações de
		// clientes, nunca no meio do cálculo de um cliente
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)

		go func(customerID string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			trend, err := s.CustomerHealthTrend(ctx, customerID, days)
			if err != nil {
				// Uma falha individual exclui o cliente da análise sem
				// abortar o lote
				logrus.WithError(err).WithField("customer_id", customerID).
					Warn("trending: cliente excluído da análise de portfólio")

				mutex.Lock()
				excluded++
				mutex.Unlock()
				return
			}

			if trend == nil {
				// Cliente removido entre a listagem e a busca individual
				return
			}

			mutex.Lock()
			trends = append(trends, trend)
			mutex.Unlock()
		}(customer.ID)
	}

	wg.Wait()

	if excluded > 0 {
		logrus.WithFields(logrus.Fields{
			"excluded": excluded,
			"analyzed": len(trends),
		}).Warn("trending: análise de portfólio concluída com clientes excluídos")
	}

	// Ordenação final e corte de insights só depois de coletar todos os
	// resultados — nunca intercalados com o fan-out
	sort.Slice(trends, func(i, j int) bool {
		return trends[i].CurrentScore < trends[j].CurrentScore
	})

	overview := s.buildOverview(trends)
	trendData := BuildPortfolioTrendData(trends)
	overview.Trend = PortfolioTrend(trendData)

	return &domain.HealthScoreTrendAnalysis{
		Overview:    overview,
		TrendData:   trendData,
		Customers:   trends,
		Insights:    GenerateInsights(trends, overview.AvgHealthScore, overview.ScoreChangeWoW),
		Alerts:      BuildAlerts(trends),
		Filters:     filters,
		GeneratedAt: s.now(),
	}, nil
}

// buildOverview calcula contagens, ARR e percentuais por categoria e o delta
// semana a semana do score médio
func (s *Service) buildOverview(trends []*domain.CustomerHealthTrend) *domain.PortfolioHealthOverview {
	overview := &domain.PortfolioHealthOverview{
		TotalCustomers: len(trends),
	}

	if len(trends) == 0 {
		return overview
	}

	weekAgo := s.now().AddDate(0, 0, -weekOverWeekDays)

	var scoreSum, weekAgoSum float64

	for _, trend := range trends {
		scoreSum += trend.CurrentScore
		weekAgoSum += scoreAt(trend.DataPoints, weekAgo, trend.CurrentScore)

		switch trend.Category {
		case domain.HealthCategoryHealthy:
			overview.HealthyCount++
			overview.HealthyARR += trend.ARR
		case domain.HealthCategoryWarning:
			overview.WarningCount++
			overview.WarningARR += trend.ARR
		default:
			overview.CriticalCount++
			overview.CriticalARR += trend.ARR
		}
	}

	total := float64(len(trends))
	overview.AvgHealthScore = utils.RoundWithTwoDecimalPlace(scoreSum / total)
	overview.ScoreChangeWoW = utils.RoundWithTwoDecimalPlace((scoreSum - weekAgoSum) / total)
	overview.HealthyPct = roundPct(overview.HealthyCount, len(trends))
	overview.WarningPct = roundPct(overview.WarningCount, len(trends))
	overview.CriticalPct = roundPct(overview.CriticalCount, len(trends))

	return overview
}

// buildDataPoints mapeia as linhas cruas do histórico para pontos com a
// variação em relação ao anterior calculada. Sem histórico, sintetiza um
// único ponto a partir do score atual do cliente para que os componentes
// degradem de forma graciosa.
func buildDataPoints(customer *domain.Customer, snapshots []*domain.HealthScoreSnapshot, now time.Time) []*domain.HealthScoreDataPoint {
	if len(snapshots) == 0 {
		return []*domain.HealthScoreDataPoint{{
			Date:  now,
			Score: customer.HealthScore,
		}}
	}

	points := make([]*domain.HealthScoreDataPoint, 0, len(snapshots))

	for i, snapshot := range snapshots {
		previous := snapshot.PreviousScore
		if previous == nil && i > 0 {
			previous = &snapshots[i-1].Score
		}

		point := &domain.HealthScoreDataPoint{
			Date:          snapshot.Date,
			Score:         snapshot.Score,
			PreviousScore: previous,
			Components:    snapshot.Components,
		}

		if previous != nil {
			point.Change = snapshot.Score - *previous
			if *previous != 0 {
				point.ChangePercent = utils.RoundWithTwoDecimalPlace(point.Change / *previous * 100)
			}
		}

		points = append(points, point)
	}

	return points
}

// scoreAt devolve o último score com data anterior ou igual ao corte, ou o
// fallback quando a série não alcança o corte
func scoreAt(points []*domain.HealthScoreDataPoint, cutoff time.Time, fallback float64) float64 {
	score := fallback
	found := false

	for _, point := range points {
		if point.Date.After(cutoff) {
			break
		}

		score = point.Score
		found = true
	}

	if !found {
		return fallback
	}

	return score
}

// daysToRenewal calcula o teto da diferença em dias até a renovação. Pode
// ser negativo quando a renovação já passou — não é truncado.
func daysToRenewal(renewalDate *time.Time, now time.Time) *int {
	if renewalDate == nil {
		return nil
	}

	days := int(math.Ceil(renewalDate.Sub(now).Hours() / 24))
	return &days
}

// lowestComponent devolve o nome do componente de menor valor do último
// snapshot, com desempate determinístico pelo nome
func lowestComponent(components map[string]float64) string {
	lowest := ""
	lowestValue := math.MaxFloat64

	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if components[name] < lowestValue {
			lowest = name
			lowestValue = components[name]
		}
	}

	return lowest
}
