package storage

import (
	"context"
	"fmt"

	"markrecon/internal/models"
)

// RunRepo persists reconciliation run history. The comparison pipeline
// itself stays stateless; only the outer orchestration records runs here.
type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) UpsertRun(ctx context.Context, run models.Run) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO runs (run_id, phase, master_file, document_file, document_sha256, status, fail_reason,
                  source_records, target_records, mismatched, missing_in_target, missing_in_source)
VALUES ($1, $2, $3, $4, NULLIF($5,''), $6, NULLIF($7,''), $8, $9, $10, $11, $12)
ON CONFLICT (run_id)
DO UPDATE SET
  status = EXCLUDED.status,
  fail_reason = EXCLUDED.fail_reason,
  document_sha256 = COALESCE(EXCLUDED.document_sha256, runs.document_sha256),
  source_records = EXCLUDED.source_records,
  target_records = EXCLUDED.target_records,
  mismatched = EXCLUDED.mismatched,
  missing_in_target = EXCLUDED.missing_in_target,
  missing_in_source = EXCLUDED.missing_in_source,
  updated_at = NOW()`,
		run.RunID, run.Phase, run.MasterFile, run.DocumentFile, run.DocumentSHA256,
		run.Status, run.FailReason,
		run.SourceRecords, run.TargetRecords, run.Mismatched, run.MissingTarget, run.MissingSource,
	)
	if err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	return nil
}

func (r *RunRepo) UpdateRunStatus(ctx context.Context, runID, status, failReason string) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE runs SET status=$2, fail_reason=NULLIF($3,''), updated_at=NOW() WHERE run_id=$1`, runID, status, failReason)
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	return nil
}

func (r *RunRepo) GetRun(ctx context.Context, runID string) (models.Run, error) {
	var run models.Run
	err := r.db.Pool.QueryRow(ctx, `
SELECT run_id, phase, master_file, document_file, COALESCE(document_sha256,''), status, COALESCE(fail_reason,''),
       source_records, target_records, mismatched, missing_in_target, missing_in_source, created_at, updated_at
FROM runs
WHERE run_id=$1`, runID).
		Scan(&run.RunID, &run.Phase, &run.MasterFile, &run.DocumentFile, &run.DocumentSHA256,
			&run.Status, &run.FailReason,
			&run.SourceRecords, &run.TargetRecords, &run.Mismatched, &run.MissingTarget, &run.MissingSource,
			&run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return models.Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

func (r *RunRepo) ListRuns(ctx context.Context, limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT run_id, phase, master_file, document_file, COALESCE(document_sha256,''), status, COALESCE(fail_reason,''),
       source_records, target_records, mismatched, missing_in_target, missing_in_source, created_at, updated_at
FROM runs
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.Run, 0)
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.RunID, &run.Phase, &run.MasterFile, &run.DocumentFile, &run.DocumentSHA256,
			&run.Status, &run.FailReason,
			&run.SourceRecords, &run.TargetRecords, &run.Mismatched, &run.MissingTarget, &run.MissingSource,
			&run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}
