package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/common"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
)

// SQLiteStore is the embedded alternative to the postgres pool for
// single-machine deployments and the CLI. It implements both repository
// interfaces over one database/sql handle.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var sqliteDDL = []string{
	`CREATE TABLE IF NOT EXISTS lab_report (
		id            TEXT PRIMARY KEY,
		source_path   TEXT NOT NULL,
		filename      TEXT NOT NULL,
		content_hash  BLOB NOT NULL UNIQUE,
		raw_text      TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		text_quality  TEXT,
		diagnosis     TEXT,
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS nutrient_result (
		id            TEXT PRIMARY KEY,
		report_id     TEXT NOT NULL REFERENCES lab_report(id) ON DELETE CASCADE,
		nutrient_key  TEXT NOT NULL,
		value         REAL NOT NULL,
		unit          TEXT NOT NULL,
		confidence    REAL NOT NULL,
		strategy      TEXT NOT NULL,
		status        TEXT NOT NULL,
		normal_low    REAL NOT NULL,
		normal_high   REAL NOT NULL,
		created_at    TIMESTAMP NOT NULL,
		UNIQUE (report_id, nutrient_key)
	)`,
}

// OpenSQLite opens (and if needed creates) an embedded store at path.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// modernc sqlite allows one writer; serialize through a single conn.
	db.SetMaxOpenConns(1)
	for _, stmt := range sqliteDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	logger.Info("opened sqlite store", "path", path)
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) scanReport(row interface{ Scan(...any) error }) (*entity.LabReport, error) {
	var r entity.LabReport
	var id, status string
	err := row.Scan(&id, &r.SourcePath, &r.Filename, &r.ContentHash, &r.RawText,
		&status, &r.TextQuality, &r.Diagnosis, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.Status = constants.ReportStatus(status)
	return &r, nil
}

func (s *SQLiteStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.LabReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM lab_report WHERE id = ?`, id.String())
	rep, err := s.scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return rep, err
}

func (s *SQLiteStore) GetByHash(ctx context.Context, hash []byte) (*entity.LabReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM lab_report WHERE content_hash = ?`, hash)
	rep, err := s.scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return rep, err
}

func (s *SQLiteStore) UpsertByHash(ctx context.Context, report *entity.LabReport) (*entity.LabReport, bool, error) {
	if existing, err := s.GetByHash(ctx, report.ContentHash); err == nil {
		return existing, true, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := time.Now().UTC()
	report.CreatedAt, report.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lab_report (id, source_path, filename, content_hash, raw_text, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID.String(), report.SourcePath, report.Filename, report.ContentHash,
		report.RawText, string(report.Status), report.CreatedAt, report.UpdatedAt)
	if err != nil {
		s.logger.Error("failed to create lab report", "source_path", report.SourcePath, "error", err)
		return nil, false, err
	}
	return report, false, nil
}

func (s *SQLiteStore) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.ReportStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE lab_report SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) AttachDiagnosis(ctx context.Context, id uuid.UUID, quality, diagnosis string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE lab_report SET text_quality = ?, diagnosis = ?, updated_at = ? WHERE id = ?`,
		quality, diagnosis, time.Now().UTC(), id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*entity.LabReport, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM lab_report ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.LabReport
	for rows.Next() {
		rep, err := s.scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ReplaceForReport(ctx context.Context, reportID uuid.UUID, results []*entity.NutrientResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM nutrient_result WHERE report_id = ?`, reportID.String()); err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, res := range results {
		if res.ID == uuid.Nil {
			res.ID = uuid.New()
		}
		res.ReportID = reportID
		res.CreatedAt = now
		_, err := tx.ExecContext(ctx,
			`INSERT INTO nutrient_result (id, report_id, nutrient_key, value, unit, confidence, strategy, status, normal_low, normal_high, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			res.ID.String(), res.ReportID.String(), res.NutrientKey, res.Value, res.Unit,
			res.Confidence, string(res.Strategy), string(res.Status),
			res.NormalLow, res.NormalHigh, res.CreatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*entity.NutrientResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, report_id, nutrient_key, value, unit, confidence, strategy, status, normal_low, normal_high, created_at
		 FROM nutrient_result WHERE report_id = ? ORDER BY nutrient_key`, reportID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.NutrientResult
	for rows.Next() {
		var res entity.NutrientResult
		var id, rid, strategy, status string
		err := rows.Scan(&id, &rid, &res.NutrientKey, &res.Value, &res.Unit,
			&res.Confidence, &strategy, &status, &res.NormalLow, &res.NormalHigh, &res.CreatedAt)
		if err != nil {
			return nil, err
		}
		if res.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if res.ReportID, err = uuid.Parse(rid); err != nil {
			return nil, err
		}
		res.Strategy = constants.Strategy(strategy)
		res.Status = constants.ValueStatus(status)
		out = append(out, &res)
	}
	return out, rows.Err()
}

// Interface conformance.
var (
	_ LabReportRepository      = (*SQLiteStore)(nil)
	_ NutrientResultRepository = (*SQLiteStore)(nil)
)
