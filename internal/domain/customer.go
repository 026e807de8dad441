// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

type CustomerStatus string

const (
	CustomerStatusActive  CustomerStatus = "ACTIVE"
	CustomerStatusChurned CustomerStatus = "CHURNED"
)

type Customer struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Segment     string         `json:"segment"` // enterprise, mid-market, smb
	CSMID       *string        `json:"csm_id"`
	Status      CustomerStatus `json:"status"`
	HealthScore float64        `json:"health_score"`
	ARR         float64        `json:"arr"`
	RenewalDate *time.Time     `json:"renewal_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CustomerFilters restringe a listagem de clientes ativos
type CustomerFilters struct {
	Segment string
	CSMID   string
}
