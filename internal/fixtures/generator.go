// Package fixtures gera massas de dados sintéticas e determinísticas para
// testes e ambientes de demonstração
package fixtures

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vfg2006/customer-success-api/internal/domain"
)

var segments = []string{"enterprise", "mid-market", "smb"}

var componentNames = []string{"product_usage", "support", "engagement", "billing"}

// Generator produz clientes e históricos de health score sintéticos. A mesma
// seed produz sempre a mesma massa de dados.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// Customers gera n clientes ativos com scores e datas de renovação variados
func (g *Generator) Customers(n int) []domain.Customer {
	customers := make([]domain.Customer, 0, n)

	for i := 0; i < n; i++ {
		score := clamp(20 + g.rng.Float64()*75)
		renewal := g.now.AddDate(0, 0, 30+g.rng.Intn(330))
		csmID := fmt.Sprintf("csm-%02d", g.rng.Intn(8)+1)

		customers = append(customers, domain.Customer{
			ID:          fmt.Sprintf("cust-%04d", i+1),
			Name:        fmt.Sprintf("Cliente Sintético %04d", i+1),
			Segment:     segments[g.rng.Intn(len(segments))],
			CSMID:       &csmID,
			Status:      domain.CustomerStatusActive,
			HealthScore: math.Round(score),
			ARR:         float64(10+g.rng.Intn(490)) * 1000,
			RenewalDate: &renewal,
			CreatedAt:   g.now.AddDate(-1, 0, 0),
			UpdatedAt:   g.now,
		})
	}

	return customers
}

// SnapshotHistory gera um histórico semanal de snapshots para o cliente,
// terminando no score atual. O caminho é um passeio aleatório suave, com uma
// queda abrupta ocasional para exercitar a detecção de anomalias.
func (g *Generator) SnapshotHistory(customer domain.Customer, weeks int) []domain.HealthScoreSnapshot {
	if weeks <= 0 {
		return []domain.HealthScoreSnapshot{}
	}

	snapshots := make([]domain.HealthScoreSnapshot, 0, weeks)
	score := clamp(customer.HealthScore + (g.rng.Float64()-0.5)*20)

	for i := 0; i < weeks; i++ {
		date := g.now.AddDate(0, 0, -7*(weeks-1-i))

		step := (g.rng.Float64() - 0.5) * 8
		if g.rng.Float64() < 0.05 {
			// Queda abrupta rara, como em um churn de uso real
			step = -(20 + g.rng.Float64()*15)
		}

		var previous *float64
		if len(snapshots) > 0 {
			prev := snapshots[len(snapshots)-1].Score
			previous = &prev
		}

		if i == weeks-1 {
			score = customer.HealthScore
		} else {
			score = clamp(score + step)
		}

		snapshots = append(snapshots, domain.HealthScoreSnapshot{
			CustomerID:    customer.ID,
			Date:          date,
			Score:         math.Round(score),
			PreviousScore: previous,
			Components:    g.components(score),
		})
	}

	return snapshots
}

// components distribui o score entre os componentes com um ruído pequeno
func (g *Generator) components(score float64) map[string]float64 {
	components := make(map[string]float64, len(componentNames))
	for _, name := range componentNames {
		components[name] = math.Round(clamp(score + (g.rng.Float64()-0.5)*20))
	}
	return components
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
