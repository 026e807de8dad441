package trending

import (
	"context"

	"github.com/vfg2006/customer-success-api/internal/domain"
)

// TrendAnalyzer define os pontos de entrada da análise de tendência de
// health score
type TrendAnalyzer interface {
	// CustomerHealthTrend monta a análise de tendência de um único cliente.
	// Retorna (nil, nil) quando o cliente não existe; qualquer falha de busca
	// é propagada ao chamador.
	CustomerHealthTrend(ctx context.Context, customerID string, days int) (*domain.CustomerHealthTrend, error)

	// PortfolioHealthTrendAnalysis agrega a análise de todos os clientes
	// ativos. Falhas individuais de clientes não abortam o lote.
	PortfolioHealthTrendAnalysis(ctx context.Context, filters *domain.TrendFilters) (*domain.HealthScoreTrendAnalysis, error)
}
