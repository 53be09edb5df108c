package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/common"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
)

type LabReportRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LabReport, error)
	GetByHash(ctx context.Context, hash []byte) (*entity.LabReport, error)
	// UpsertByHash returns the existing report when the content hash is
	// already known; the bool reports whether a duplicate was found.
	UpsertByHash(ctx context.Context, report *entity.LabReport) (*entity.LabReport, bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.ReportStatus) error
	AttachDiagnosis(ctx context.Context, id uuid.UUID, quality, diagnosis string) error
	List(ctx context.Context, limit int) ([]*entity.LabReport, error)
}

type labReportRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewLabReportRepository(pool *pgxpool.Pool, logger *slog.Logger) LabReportRepository {
	return &labReportRepo{pool: pool, logger: logger}
}

const reportColumns = `id, source_path, filename, content_hash, raw_text, status, text_quality, diagnosis, created_at, updated_at`

func scanReport(row pgx.Row) (*entity.LabReport, error) {
	var r entity.LabReport
	var status string
	err := row.Scan(&r.ID, &r.SourcePath, &r.Filename, &r.ContentHash, &r.RawText,
		&status, &r.TextQuality, &r.Diagnosis, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Status = constants.ReportStatus(status)
	return &r, nil
}

func (r *labReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.LabReport, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM lab_report WHERE id = $1`, id)
	rep, err := scanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get lab report", "report_id", id, "error", err)
		return nil, err
	}
	return rep, nil
}

func (r *labReportRepo) GetByHash(ctx context.Context, hash []byte) (*entity.LabReport, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM lab_report WHERE content_hash = $1`, hash)
	rep, err := scanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get lab report by hash", "error", err)
		return nil, err
	}
	return rep, nil
}

func (r *labReportRepo) UpsertByHash(ctx context.Context, report *entity.LabReport) (*entity.LabReport, bool, error) {
	if existing, err := r.GetByHash(ctx, report.ContentHash); err == nil {
		return existing, true, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := time.Now().UTC()
	report.CreatedAt, report.UpdatedAt = now, now
	_, err := r.pool.Exec(ctx,
		`INSERT INTO lab_report (id, source_path, filename, content_hash, raw_text, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		report.ID, report.SourcePath, report.Filename, report.ContentHash,
		report.RawText, string(report.Status), report.CreatedAt, report.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create lab report", "source_path", report.SourcePath, "error", err)
		return nil, false, err
	}
	return report, false, nil
}

func (r *labReportRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.ReportStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE lab_report SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		r.logger.Error("failed to update report status", "report_id", id, "status", status, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *labReportRepo) AttachDiagnosis(ctx context.Context, id uuid.UUID, quality, diagnosis string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE lab_report SET text_quality = $2, diagnosis = $3, updated_at = now() WHERE id = $1`,
		id, quality, diagnosis)
	if err != nil {
		r.logger.Error("failed to attach diagnosis", "report_id", id, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *labReportRepo) List(ctx context.Context, limit int) ([]*entity.LabReport, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+reportColumns+` FROM lab_report ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		r.logger.Error("failed to list lab reports", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.LabReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
