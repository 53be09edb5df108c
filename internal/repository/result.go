package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
)

type NutrientResultRepository interface {
	// ReplaceForReport removes any prior rows for the report and stores the
	// new set atomically, so re-processing a report never duplicates values.
	ReplaceForReport(ctx context.Context, reportID uuid.UUID, results []*entity.NutrientResult) error
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]*entity.NutrientResult, error)
}

type nutrientResultRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewNutrientResultRepository(pool *pgxpool.Pool, logger *slog.Logger) NutrientResultRepository {
	return &nutrientResultRepo{pool: pool, logger: logger}
}

func (r *nutrientResultRepo) ReplaceForReport(ctx context.Context, reportID uuid.UUID, results []*entity.NutrientResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM nutrient_result WHERE report_id = $1`, reportID); err != nil {
		r.logger.Error("failed to clear nutrient results", "report_id", reportID, "error", err)
		return err
	}
	now := time.Now().UTC()
	for _, res := range results {
		if res.ID == uuid.Nil {
			res.ID = uuid.New()
		}
		res.ReportID = reportID
		res.CreatedAt = now
		_, err := tx.Exec(ctx,
			`INSERT INTO nutrient_result (id, report_id, nutrient_key, value, unit, confidence, strategy, status, normal_low, normal_high, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			res.ID, res.ReportID, res.NutrientKey, res.Value, res.Unit,
			res.Confidence, string(res.Strategy), string(res.Status),
			res.NormalLow, res.NormalHigh, res.CreatedAt)
		if err != nil {
			r.logger.Error("failed to insert nutrient result",
				"report_id", reportID, "nutrient", res.NutrientKey, "error", err)
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *nutrientResultRepo) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*entity.NutrientResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, report_id, nutrient_key, value, unit, confidence, strategy, status, normal_low, normal_high, created_at
		 FROM nutrient_result WHERE report_id = $1 ORDER BY nutrient_key`, reportID)
	if err != nil {
		r.logger.Error("failed to list nutrient results", "report_id", reportID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.NutrientResult
	for rows.Next() {
		var res entity.NutrientResult
		var strategy, status string
		err := rows.Scan(&res.ID, &res.ReportID, &res.NutrientKey, &res.Value, &res.Unit,
			&res.Confidence, &strategy, &status, &res.NormalLow, &res.NormalHigh, &res.CreatedAt)
		if err != nil {
			return nil, err
		}
		res.Strategy = constants.Strategy(strategy)
		res.Status = constants.ValueStatus(status)
		out = append(out, &res)
	}
	return out, rows.Err()
}
