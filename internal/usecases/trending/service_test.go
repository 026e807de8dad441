package trending

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-success-api/infrastructure/repository/mocks"
	"github.com/vfg2006/customer-success-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(customerRepo *mocks.MockCustomerRepository, snapshotRepo *mocks.MockHealthSnapshotRepository) *Service {
	return &Service{
		customerRepo:  customerRepo,
		snapshotRepo:  snapshotRepo,
		detector:      NewAnomalyDetector(nil),
		maxConcurrent: 2,
		now:           func() time.Time { return testNow },
	}
}

func snapshotSeries(customerID string, scores ...float64) []*domain.HealthScoreSnapshot {
	snapshots := make([]*domain.HealthScoreSnapshot, 0, len(scores))
	for i, score := range scores {
		snapshots = append(snapshots, &domain.HealthScoreSnapshot{
			CustomerID: customerID,
			Date:       testNow.AddDate(0, 0, -7*(len(scores)-1-i)),
			Score:      score,
		})
	}
	return snapshots
}

func TestService_CustomerHealthTrend_ClienteInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	snapshotRepo := mocks.NewMockHealthSnapshotRepository(ctrl)
	service := newTestService(customerRepo, snapshotRepo)

	// Cliente ausente devolve (nil, nil), nunca erro, e não busca histórico
	customerRepo.EXPECT().GetByID("ghost").Return(nil, nil)

	trend, err := service.CustomerHealthTrend(context.Background(), "ghost", 90)

	assert.NoError(t, err)
	assert.Nil(t, trend)
}

func TestService_CustomerHealthTrend_ErroNaBuscaDoCliente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	snapshotRepo := mocks.NewMockHealthSnapshotRepository(ctrl)
	service := newTestService(customerRepo, snapshotRepo)

	customerRepo.EXPECT().GetByID("cust-1").Return(nil, errors.New("connection refused"))

	trend, err := service.CustomerHealthTrend(context.Background(), "cust-1", 90)

	assert.Error(t, err)
	assert.Nil(t, trend)
	assert.Contains(t, err.Error(), "cust-1")
}

func TestService_CustomerHealthTrend_ErroNoHistoricoPropaga(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	snapshotRepo := mocks.NewMockHealthSnapshotRepository(ctrl)
	service := newTestService(customerRepo, snapshotRepo)

	customerRepo.EXPECT().GetByID("cust-1").Return(&domain.Customer{ID: "cust-1", Name: "Acme"}, nil)
	snapshotRepo.EXPECT().GetHistory("cust-1", gomock.Any()).Return(nil, errors.New("timeout"))

	trend, err := service.CustomerHealthTrend(context.Background(), "cust-1", 90)

	assert.Error(t, err)
	assert.Nil(t, trend)
}

func TestService_CustomerHealthTrend_SemHistoricoSintetizaPontoUnico(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	snapshotRepo := mocks.NewMockHealthSnapshotRepository(ctrl)
	service := newTestService(customerRepo, snapshotRepo)

	customer := &domain.Customer{
		ID:          "cust-1",
		Name:        "Acme",
		Segment:     "smb",
		HealthScore: 62,
	}

	customerRepo.EXPECT().GetByID("cust-1").Return(customer, nil)
	snapshotRepo.EXPECT().GetHistory("cust-1", gomock.Any()).Return([]*domain.HealthScoreSnapshot{}, nil)

	trend, err := service.CustomerHealthTrend(context.Background(), "cust-1", 90)

	assert.NoError(t, err)
	assert.NotNil(t, trend)
	assert.Len(t, trend.DataPoints, 1)
	assert.Equal(t, testNow, trend.DataPoints[0].Date)
	assert.Equal(t, 62.0, trend.CurrentScore)
	assert.Equal(t, domain.HealthCategoryWarning, trend.Category)
	assert.Equal(t, "Insufficient data for trend analysis", trend.Trend.Description)
	assert.Nil(t, trend.Forecast)
	assert.Empty(t, trend.Anomalies)
	assert.Nil(t, trend.DaysToRenewal)
}

func TestService_CustomerHealthTrend_AnaliseCompleta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	snapshotRepo := mocks.NewMockHealthSnapshotRepository(ctrl)
	service := newTestService(customerRepo, snapshotRepo)

	renewal := testNow.AddDate(0, 0, 45)
	customer := &domain.Customer{
		ID:          "cust-1",
		Name:        "Acme",
		Segment:     "enterprise",
		ARR:         250000,
		HealthScore: 70,
		RenewalDate: &renewal,
	}

	snapshots := snapshotSeries("cust-1", 50, 55, 60, 65, 70)
	snapshots[len(snapshots)-1].Components = map[string]float64{
		"product_usage": 80,
		"support":       40,
		"engagement":    75,
	}

	customerRepo.EXPECT().GetByID("cust-1").Return(customer, nil)

	// Com days zerado, a janela padrão de 90 dias é aplicada
	snapshotRepo.EXPECT().GetHistory("cust-1", testNow.AddDate(0, 0, -90)).Return(snapshots, nil)

	trend, err := service.CustomerHealthTrend(context.Background(), "cust-1", 0)

	assert.NoError(t, err)
	assert.NotNil(t, trend)
	assert.Equal(t, "cust-1", trend.CustomerID)
	assert.Equal(t, "Acme", trend.CustomerName)
	assert.Equal(t, 70.0, trend.CurrentScore)
	assert.Equal(t, domain.HealthCategoryHealthy, trend.Category)
	assert.Len(t, trend.DataPoints, 5)

	// Variação preenchida a partir da linha anterior quando previous_score
	// vem nulo do banco
	assert.Equal(t, 5.0, trend.DataPoints[1].Change)
	assert.Equal(t, 10.0, trend.DataPoints[1].ChangePercent)

	assert.Equal(t, domain.TrendUp, trend.Trend.Direction)
	assert.Equal(t, domain.TrendStrengthStrong, trend.Trend.Strength)
	assert.InDelta(t, 5.0, trend.Trend.Slope, 0.15)

	// Variações [0,5,5,5,5]: média 4, desvio padrão 2
	assert.NotNil(t, trend.Forecast)
	assert.Equal(t, 74.0, trend.Forecast.NextPeriod)
	assert.Equal(t, 70.0, trend.Forecast.ConfidenceLow)
	assert.Equal(t, 78.0, trend.Forecast.ConfidenceHigh)

	assert.Empty(t, trend.Anomalies)

	assert.NotNil(t, trend.DaysToRenewal)
	assert.Equal(t, 45, *trend.DaysToRenewal)
	assert.Equal(t, "support", trend.LowestComponent)
}

func TestService_PortfolioHealthTrendAnalysis_FalhaIndividualNaoAbortaOLote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	snapshotRepo := mocks.NewMockHealthSnapshotRepository(ctrl)
	service := newTestService(customerRepo, snapshotRepo)

	healthy := &domain.Customer{ID: "cust-1", Name: "Acme", HealthScore: 80}
	failing := &domain.Customer{ID: "cust-2", Name: "Globex", HealthScore: 55}
	critical := &domain.Customer{ID: "cust-3", Name: "Initech", HealthScore: 30}

	customerRepo.EXPECT().ListActive(gomock.Any()).
		Return([]*domain.Customer{healthy, failing, critical}, nil)

	customerRepo.EXPECT().GetByID("cust-1").Return(healthy, nil)
	customerRepo.EXPECT().GetByID("cust-2").Return(failing, nil)
	customerRepo.EXPECT().GetByID("cust-3").Return(critical, nil)

	snapshotRepo.EXPECT().GetHistory("cust-1", gomock.Any()).Return([]*domain.HealthScoreSnapshot{}, nil)
	snapshotRepo.EXPECT().GetHistory("cust-2", gomock.Any()).Return(nil, errors.New("timeout"))
	snapshotRepo.EXPECT().GetHistory("cust-3", gomock.Any()).Return([]*domain.HealthScoreSnapshot{}, nil)

	analysis, err := service.PortfolioHealthTrendAnalysis(context.Background(), nil)

	assert.NoError(t, err)
	assert.NotNil(t, analysis)

	// O cliente com falha é excluído; os demais seguem ordenados do pior
	// para o melhor score
	assert.Len(t, analysis.Customers, 2)
	assert.Equal(t, "cust-3", analysis.Customers[0].CustomerID)
	assert.Equal(t, "cust-1", analysis.Customers[1].CustomerID)

	assert.Equal(t, 2, analysis.Overview.TotalCustomers)
	assert.Equal(t, 1, analysis.Overview.HealthyCount)
	assert.Equal(t, 1, analysis.Overview.CriticalCount)
	assert.Equal(t, 55.0, analysis.Overview.AvgHealthScore)
	assert.Equal(t, 50.0, analysis.Overview.HealthyPct)
	assert.Equal(t, 50.0, analysis.Overview.CriticalPct)

	assert.Equal(t, testNow, analysis.GeneratedAt)
	assert.NotEmpty(t, analysis.Insights)
	assert.Equal(t, "portfolio_wow", analysis.Insights[0].Type)
	assert.NotNil(t, analysis.Alerts)
}

func TestService_PortfolioHealthTrendAnalysis_ErroNaListagemAborta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	snapshotRepo := mocks.NewMockHealthSnapshotRepository(ctrl)
	service := newTestService(customerRepo, snapshotRepo)

	customerRepo.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("connection refused"))

	analysis, err := service.PortfolioHealthTrendAnalysis(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, analysis)
}

func TestService_PortfolioHealthTrendAnalysis_ContextoCancelado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	snapshotRepo := mocks.NewMockHealthSnapshotRepository(ctrl)
	service := newTestService(customerRepo, snapshotRepo)

	customerRepo.EXPECT().ListActive(gomock.Any()).
		Return([]*domain.Customer{{ID: "cust-1", Name: "Acme"}}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analysis, err := service.PortfolioHealthTrendAnalysis(ctx, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, analysis)
}

func TestService_PortfolioHealthTrendAnalysis_RepassaFiltros(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	snapshotRepo := mocks.NewMockHealthSnapshotRepository(ctrl)
	service := newTestService(customerRepo, snapshotRepo)

	filters := &domain.TrendFilters{Segment: "enterprise", CSMID: "csm-1", Days: 30}

	customerRepo.EXPECT().
		ListActive(&domain.CustomerFilters{Segment: "enterprise", CSMID: "csm-1"}).
		Return([]*domain.Customer{}, nil)

	analysis, err := service.PortfolioHealthTrendAnalysis(context.Background(), filters)

	assert.NoError(t, err)
	assert.NotNil(t, analysis)
	assert.Equal(t, filters, analysis.Filters)
	assert.Empty(t, analysis.Customers)
	assert.Equal(t, 0, analysis.Overview.TotalCustomers)
	assert.Empty(t, analysis.TrendData)
}

func TestService_BuildOverview_VariacaoSemanaASemana(t *testing.T) {
	service := &Service{now: func() time.Time { return testNow }}

	// Último ponto com mais de 7 dias: o score daquela época entra na
	// comparação semana a semana
	old := &domain.CustomerHealthTrend{
		CurrentScore: 60,
		Category:     domain.HealthCategoryWarning,
		DataPoints: []*domain.HealthScoreDataPoint{
			{Date: testNow.AddDate(0, 0, -14), Score: 45},
			{Date: testNow.AddDate(0, 0, -8), Score: 50},
			{Date: testNow, Score: 60},
		},
	}

	// Série inteira dentro da última semana: o próprio score atual vira o
	// fallback e a variação é zero
	recent := &domain.CustomerHealthTrend{
		CurrentScore: 80,
		Category:     domain.HealthCategoryHealthy,
		DataPoints: []*domain.HealthScoreDataPoint{
			{Date: testNow.AddDate(0, 0, -2), Score: 78},
			{Date: testNow, Score: 80},
		},
	}

	overview := service.buildOverview([]*domain.CustomerHealthTrend{old, recent})

	assert.Equal(t, 70.0, overview.AvgHealthScore)

	// ((60+80) - (50+80)) / 2 = 5
	assert.Equal(t, 5.0, overview.ScoreChangeWoW)
}

func TestDaysToRenewal(t *testing.T) {
	t.Run("Sem data de renovação", func(t *testing.T) {
		assert.Nil(t, daysToRenewal(nil, testNow))
	})

	t.Run("Renovação futura arredonda para cima", func(t *testing.T) {
		renewal := testNow.Add(36 * time.Hour)
		days := daysToRenewal(&renewal, testNow)
		assert.NotNil(t, days)
		assert.Equal(t, 2, *days)
	})

	t.Run("Renovação passada fica negativa", func(t *testing.T) {
		renewal := testNow.AddDate(0, 0, -3)
		days := daysToRenewal(&renewal, testNow)
		assert.NotNil(t, days)
		assert.Equal(t, -3, *days)
	})
}

func TestLowestComponent(t *testing.T) {
	t.Run("Componente de menor valor", func(t *testing.T) {
		components := map[string]float64{
			"product_usage": 80,
			"support":       40,
			"engagement":    75,
		}
		assert.Equal(t, "support", lowestComponent(components))
	})

	t.Run("Empate resolvido pelo nome", func(t *testing.T) {
		components := map[string]float64{
			"support":    40,
			"engagement": 40,
		}
		assert.Equal(t, "engagement", lowestComponent(components))
	})

	t.Run("Sem componentes", func(t *testing.T) {
		assert.Equal(t, "", lowestComponent(nil))
	})
}
