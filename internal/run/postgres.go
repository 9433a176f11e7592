package run

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	exposure "MixLab/internal/exposure"
)

// PostgresStore persists runs in a flat mix_runs table. Selected when
// DATABASE_URL is set; the in-memory store is the default otherwise.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// InitDB opens the pool from DATABASE_URL with the standard settings.
func InitDB() *sql.DB {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			connStr = connStr + "?sslmode=require"
		} else {
			connStr = connStr + " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("DB config error:", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		log.Fatal("DB not responding:", err)
	}
	return db
}

// EnsureSchema creates the mix_runs table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS mix_runs (
			id           SERIAL PRIMARY KEY,
			ts           TIMESTAMPTZ NOT NULL,
			project_name TEXT NOT NULL,
			project_site TEXT NOT NULL,
			mix_id       TEXT NOT NULL,
			casting_date TEXT NOT NULL,
			fck          DOUBLE PRECISION NOT NULL,
			cement_grade TEXT NOT NULL,
			exposure     TEXT NOT NULL,
			fck_mean     DOUBLE PRECISION NOT NULL,
			w_c          DOUBLE PRECISION NOT NULL,
			water        DOUBLE PRECISION NOT NULL,
			cement       DOUBLE PRECISION NOT NULL,
			fine_agg     DOUBLE PRECISION NOT NULL,
			coarse_agg   DOUBLE PRECISION NOT NULL,
			is_wc_ok     BOOLEAN NOT NULL,
			is_cement_ok BOOLEAN NOT NULL,
			is_grade_ok  BOOLEAN NOT NULL
		)`)
	return err
}

func (s *PostgresStore) Append(ctx context.Context, r Run) (Run, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	query := `INSERT INTO mix_runs
		(ts, project_name, project_site, mix_id, casting_date, fck, cement_grade, exposure,
		 fck_mean, w_c, water, cement, fine_agg, coarse_agg, is_wc_ok, is_cement_ok, is_grade_ok)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17) RETURNING id`
	err := s.db.QueryRowContext(ctx, query,
		r.Timestamp, r.ProjectName, r.ProjectSite, r.MixID, r.CastingDate,
		r.Fck, r.CementGrade, r.Exposure,
		r.Design.TargetMeanStrength, r.Design.WaterCementRatio, r.Design.WaterContent,
		r.Design.CementContent, r.Design.FineAggregate, r.Design.CoarseAggregate,
		r.Design.Checks.WcOK, r.Design.Checks.CementOK, r.Design.Checks.GradeOK,
	).Scan(&r.ID)
	return r, err
}

func (s *PostgresStore) List(ctx context.Context) ([]Run, error) {
	query := `SELECT id, ts, project_name, project_site, mix_id, casting_date, fck, cement_grade, exposure,
		fck_mean, w_c, water, cement, fine_agg, coarse_agg, is_wc_ok, is_cement_ok, is_grade_ok
		FROM mix_runs ORDER BY ts DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.ProjectName, &r.ProjectSite, &r.MixID, &r.CastingDate,
			&r.Fck, &r.CementGrade, &r.Exposure,
			&r.Design.TargetMeanStrength, &r.Design.WaterCementRatio, &r.Design.WaterContent,
			&r.Design.CementContent, &r.Design.FineAggregate, &r.Design.CoarseAggregate,
			&r.Design.Checks.WcOK, &r.Design.Checks.CementOK, &r.Design.Checks.GradeOK,
		); err != nil {
			return nil, err
		}
		r.Design.Checks.Exposure = exposure.Resolve(r.Exposure)
		out = append(out, r)
	}
	return out, rows.Err()
}
