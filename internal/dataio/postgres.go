package dataio

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/surveyclean/internal/config"
	"github.com/JonMunkholm/surveyclean/internal/core"
	"github.com/JonMunkholm/surveyclean/internal/dataset"
)

// sqlTypes maps each delivered column to its PostgreSQL type.
var sqlTypes = map[string]string{
	core.ColAge:           "DOUBLE PRECISION",
	core.ColMaritalStatus: "TEXT",
	core.ColSex:           "TEXT",
	core.ColWeightKg:      "DOUBLE PRECISION",
	core.ColHeightCm:      "DOUBLE PRECISION",
	core.ColID:            "BIGINT",
	core.ColSequence:      "BIGINT",
	core.ColBMI:           "DOUBLE PRECISION",
	core.ColWeightStatus:  "TEXT",
}

const runIDColumn = "run_id"

// PostgresSink bulk-loads delivered datasets into one table. Rows from each
// run are tagged with the run ID so loads can be told apart or rolled back.
type PostgresSink struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSink connects to cfg.URL and verifies the connection.
func NewPostgresSink(ctx context.Context, cfg config.DatabaseConfig) (*PostgresSink, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &PostgresSink{pool: pool, table: cfg.Table}, nil
}

// Close releases the connection pool.
func (s *PostgresSink) Close() { s.pool.Close() }

// Write creates the table if needed and copies every row of ds in one
// transaction. It returns the number of rows copied.
func (s *PostgresSink) Write(ctx context.Context, ds *dataset.Dataset, runID string) (int64, error) {
	rows, err := copyRows(ds, runID)
	if err != nil {
		return 0, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range createTableSQL(s.table) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return 0, fmt.Errorf("prepare table %s: %w", s.table, err)
		}
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{s.table}, sinkColumns(), pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", s.table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func sinkColumns() []string {
	return append([]string{runIDColumn}, core.FinalColumns...)
}

// createTableSQL returns the DDL for the sink table: the table itself plus a
// column comment carrying each descriptive label.
func createTableSQL(table string) []string {
	name := pgx.Identifier{table}.Sanitize()

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", name)
	fmt.Fprintf(&b, "\t%s UUID NOT NULL,\n", runIDColumn)
	for _, c := range core.FinalColumns {
		fmt.Fprintf(&b, "\t%s %s,\n", pgx.Identifier{c}.Sanitize(), sqlTypes[c])
	}
	b.WriteString("\tloaded_at TIMESTAMPTZ NOT NULL DEFAULT now()\n)")

	stmts := []string{b.String()}
	for _, c := range core.FinalColumns {
		label, ok := core.ColumnLabels[c]
		if !ok {
			continue
		}
		stmts = append(stmts, fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s",
			name, pgx.Identifier{c}.Sanitize(), quoteLiteral(label)))
	}
	return stmts
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// copyRows converts ds into COPY rows: the run ID followed by FinalColumns.
func copyRows(ds *dataset.Dataset, runID string) ([][]any, error) {
	id, err := uuid.Parse(runID)
	if err != nil {
		return nil, fmt.Errorf("run id %q: %w", runID, err)
	}
	final, err := ds.Select(core.FinalColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMissingColumns, err)
	}

	rows := make([][]any, final.Len())
	for i := range rows {
		rec := toSurveyRecord(final, i)
		rows[i] = []any{
			id,
			rec.Age,
			rec.MaritalStatus,
			rec.Sex,
			rec.BodyWeightKg,
			rec.HeightCm,
			rec.ID,
			rec.SequenceIndex,
			rec.BMI,
			rec.WeightStatus,
		}
	}
	return rows, nil
}
