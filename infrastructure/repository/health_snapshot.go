package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/customer-success-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-success-api/internal/domain"
)

const (
	healthSnapshotsTable = "health_score_snapshots hs"
)

type HealthSnapshotRepository interface {
	// GetHistory retorna os snapshots de um cliente a partir da data de
	// corte, ordenados de forma ascendente por data
	GetHistory(customerID string, since time.Time) ([]*domain.HealthScoreSnapshot, error)
	SaveSnapshot(snapshot *domain.HealthScoreSnapshot) error
	DeleteOlderThan(days int) (int64, error)
}

type healthSnapshotRepository struct {
	conn postgres.Queryer
}

func NewHealthSnapshotRepository(conn postgres.Queryer) HealthSnapshotRepository {
	return &healthSnapshotRepository{
		conn: conn,
	}
}

func (r *healthSnapshotRepository) GetHistory(customerID string, since time.Time) ([]*domain.HealthScoreSnapshot, error) {
	query, args, err := squirrel.
		Select("hs.id, hs.customer_id, hs.date, hs.score, hs.previous_score, hs.components, hs.created_at").
		From(healthSnapshotsTable).
		Where(squirrel.Eq{"hs.customer_id": customerID}).
		Where(squirrel.GtOrEq{"hs.date": since.Format("2006-01-02")}).
		OrderBy("hs.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.HealthScoreSnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshots de health score: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *healthSnapshotRepository) SaveSnapshot(snapshot *domain.HealthScoreSnapshot) error {
	var componentsJSON []byte
	var err error

	if snapshot.Components != nil {
		componentsJSON, err = json.Marshal(snapshot.Components)
		if err != nil {
			return fmt.Errorf("erro ao serializar componentes para JSON: %w", err)
		}
	}

	var previousScore any
	if snapshot.PreviousScore != nil {
		previousScore = *snapshot.PreviousScore
	}

	query := squirrel.StatementBuilder.
		Insert("health_score_snapshots").
		Columns("customer_id", "date", "score", "previous_score", "components").
		Values(
			snapshot.CustomerID,
			snapshot.Date.Format("2006-01-02"),
			snapshot.Score,
			previousScore,
			componentsJSON,
		).
		Suffix(`
			ON CONFLICT (customer_id, date) DO UPDATE SET
				score = EXCLUDED.score,
				previous_score = EXCLUDED.previous_score,
				components = EXCLUDED.components
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *healthSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	query, args, err := squirrel.
		Delete("health_score_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *healthSnapshotRepository) scanSnapshot(rows *sql.Rows) (*domain.HealthScoreSnapshot, error) {
	snapshot := &domain.HealthScoreSnapshot{}
	var previousScore sql.NullFloat64
	var componentsJSON []byte

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.CustomerID,
		&snapshot.Date,
		&snapshot.Score,
		&previousScore,
		&componentsJSON,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if previousScore.Valid {
		snapshot.PreviousScore = &previousScore.Float64
	}

	if componentsJSON != nil {
		components := make(map[string]float64)
		if err := json.Unmarshal(componentsJSON, &components); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de components: %w", err)
		}
		snapshot.Components = components
	}

	return snapshot, nil
}
