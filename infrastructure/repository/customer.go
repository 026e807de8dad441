package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/customer-success-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-success-api/internal/domain"
)

const (
	customersTable = "customers c"
)

type CustomerRepository interface {
	// GetByID busca um cliente pelo ID. Retorna (nil, nil) quando não existe.
	GetByID(id string) (*domain.Customer, error)
	// ListActive lista os clientes ativos, opcionalmente filtrados por
	// segmento e CSM responsável
	ListActive(filters *domain.CustomerFilters) ([]*domain.Customer, error)
}

type customerRepository struct {
	conn postgres.Queryer
}

func NewCustomerRepository(conn postgres.Queryer) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func (r *customerRepository) GetByID(id string) (*domain.Customer, error) {
	query, args, err := squirrel.
		Select("c.id, c.name, c.segment, c.csm_id, c.status, c.health_score, c.arr, c.renewal_date, c.created_at, c.updated_at").
		From(customersTable).
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	customer, err := scanCustomer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) ListActive(filters *domain.CustomerFilters) ([]*domain.Customer, error) {
	builder := squirrel.
		Select("c.id, c.name, c.segment, c.csm_id, c.status, c.health_score, c.arr, c.renewal_date, c.created_at, c.updated_at").
		From(customersTable).
		Where(squirrel.Eq{"c.status": domain.CustomerStatusActive})

	if filters != nil && filters.Segment != "" {
		builder = builder.Where(squirrel.Eq{"c.segment": filters.Segment})
	}

	if filters != nil && filters.CSMID != "" {
		builder = builder.Where(squirrel.Eq{"c.csm_id": filters.CSMID})
	}

	query, args, err := builder.
		OrderBy("c.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear clientes: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return customers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var csmID sql.NullString
	var renewalDate sql.NullTime

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Segment,
		&csmID,
		&customer.Status,
		&customer.HealthScore,
		&customer.ARR,
		&renewalDate,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if csmID.Valid {
		customer.CSMID = &csmID.String
	}

	if renewalDate.Valid {
		customer.RenewalDate = &renewalDate.Time
	}

	return customer, nil
}
