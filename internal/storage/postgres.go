package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
	_ "github.com/lib/pq"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

const (
	createCircuitSummariesTable = `CREATE TABLE IF NOT EXISTS circuit_dnf_summaries (
	circuit_id     TEXT PRIMARY KEY,
	circuit_name   TEXT NOT NULL,
	lat            DOUBLE PRECISION,
	lng            DOUBLE PRECISION,
	country        TEXT NOT NULL,
	circuit_type   TEXT NOT NULL,
	total_races    INTEGER NOT NULL,
	dnf_count      INTEGER NOT NULL,
	dnf_percentage DOUBLE PRECISION NOT NULL,
	top_reasons    JSONB NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	upsertCircuitSummary = `INSERT INTO circuit_dnf_summaries
	(circuit_id, circuit_name, lat, lng, country, circuit_type, total_races, dnf_count, dnf_percentage, top_reasons)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (circuit_id) DO UPDATE SET
	circuit_name = EXCLUDED.circuit_name,
	lat = EXCLUDED.lat,
	lng = EXCLUDED.lng,
	country = EXCLUDED.country,
	circuit_type = EXCLUDED.circuit_type,
	total_races = EXCLUDED.total_races,
	dnf_count = EXCLUDED.dnf_count,
	dnf_percentage = EXCLUDED.dnf_percentage,
	top_reasons = EXCLUDED.top_reasons,
	updated_at = now()`

	selectCircuitSummaries = `SELECT circuit_id, circuit_name, lat, lng, country, circuit_type, total_races, dnf_count, dnf_percentage, top_reasons
FROM circuit_dnf_summaries ORDER BY dnf_count DESC, circuit_id`
)

// PostgresStorage хранит агрегаты сходов по трассам в PostgreSQL.
type PostgresStorage struct {
	db *sql.DB // Подключение к базе данных PostgreSQL
}

// NewPostgresStorage создает новый экземпляр PostgresStorage и устанавливает подключение к БД.
// DSN должен быть в формате: "host=... port=... user=... password=... dbname=... sslmode=..."
func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresStorageFromDB(db), nil
}

// NewPostgresStorageFromDB оборачивает уже открытое подключение
func NewPostgresStorageFromDB(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Close закрывает подключение к базе данных PostgreSQL.
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// EnsureSchema создает таблицу агрегатов, если ее нет.
func (ps *PostgresStorage) EnsureSchema(ctx context.Context) error {
	if _, err := ps.db.ExecContext(ctx, createCircuitSummariesTable); err != nil {
		return fmt.Errorf("failed to create circuit_dnf_summaries: %w", err)
	}
	return nil
}

// SaveCircuitSummaries сохраняет агрегаты в одной транзакции, перезаписывая существующие строки.
func (ps *PostgresStorage) SaveCircuitSummaries(ctx context.Context, summaries []models.CircuitSummary) (err error) {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertCircuitSummary)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, s := range summaries {
		topReasons, err := json.Marshal(s.TopReasons)
		if err != nil {
			return fmt.Errorf("failed to encode top reasons of %s: %w", s.CircuitID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			s.CircuitID,
			s.CircuitName,
			nullFloat(s.Lat),
			nullFloat(s.Lng),
			s.Country,
			s.CircuitType,
			s.TotalRaces,
			s.DNFCount,
			s.DNFPercentage,
			topReasons,
		); err != nil {
			return fmt.Errorf("failed to save circuit %s: %w", s.CircuitID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListCircuitSummaries возвращает сохраненные агрегаты по убыванию числа сходов.
// Полный словарь причин не хранится, DNFReasons остается пустым.
func (ps *PostgresStorage) ListCircuitSummaries(ctx context.Context) ([]models.CircuitSummary, error) {
	rows, err := ps.db.QueryContext(ctx, selectCircuitSummaries)
	if err != nil {
		return nil, fmt.Errorf("failed to query circuit summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.CircuitSummary
	for rows.Next() {
		var (
			s          models.CircuitSummary
			lat, lng   sql.NullFloat64
			topReasons []byte
		)
		if err := rows.Scan(
			&s.CircuitID,
			&s.CircuitName,
			&lat,
			&lng,
			&s.Country,
			&s.CircuitType,
			&s.TotalRaces,
			&s.DNFCount,
			&s.DNFPercentage,
			&topReasons,
		); err != nil {
			return nil, fmt.Errorf("failed to scan circuit summary: %w", err)
		}
		if err := json.Unmarshal(topReasons, &s.TopReasons); err != nil {
			return nil, fmt.Errorf("failed to decode top reasons of %s: %w", s.CircuitID, err)
		}
		s.Lat = floatPtr(lat)
		s.Lng = floatPtr(lng)
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return summaries, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
