// internal/repository/postgres/scan_log_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hostel-portal/internal/domain/gatelog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type ScanLogRepository struct {
	db *pgxpool.Pool
}

func NewScanLogRepository(db *pgxpool.Pool) *ScanLogRepository {
	return &ScanLogRepository{db: db}
}

// Create inserts a scan log row
func (r *ScanLogRepository) Create(ctx context.Context, s *gatelog.ScanLog) error {
	query := `
		INSERT INTO scan_logs (id, student_id, direction, method, device_name, tags, recorded_at, synced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		ctx, query,
		s.ID, s.StudentID, s.Direction, s.Method, s.DeviceName,
		pq.Array(s.Tags), s.RecordedAt, s.Synced,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan log: %w", err)
	}
	return nil
}

// FindByID retrieves a scan log by ID
func (r *ScanLogRepository) FindByID(ctx context.Context, id string) (*gatelog.ScanLog, error) {
	query := `
		SELECT id, student_id, direction, method, device_name, tags, recorded_at, synced, synced_at
		FROM scan_logs
		WHERE id = $1
	`

	var s gatelog.ScanLog
	var tags []string

	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.StudentID, &s.Direction, &s.Method, &s.DeviceName,
		pq.Array(&tags), &s.RecordedAt, &s.Synced, &s.SyncedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("scan log not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find scan log: %w", err)
	}

	s.Tags = tags
	return &s, nil
}

// List retrieves scan logs matching the filters, newest first
func (r *ScanLogRepository) List(ctx context.Context, filters *gatelog.ListFilters) ([]gatelog.ScanLog, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", argPos))
		args = append(args, filters.StudentID)
		argPos++
	}

	if filters.Direction != "" {
		conditions = append(conditions, fmt.Sprintf("direction = $%d", argPos))
		args = append(args, filters.Direction)
		argPos++
	}

	if filters.Unsynced {
		conditions = append(conditions, "synced = false")
	}

	if len(filters.Tags) > 0 {
		conditions = append(conditions, fmt.Sprintf("tags && $%d", argPos))
		args = append(args, pq.Array(filters.Tags))
		argPos++
	}

	limit := filters.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT id, student_id, direction, method, device_name, tags, recorded_at, synced, synced_at
		FROM scan_logs
		WHERE %s
		ORDER BY recorded_at DESC
		LIMIT %d
	`, strings.Join(conditions, " AND "), limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan logs: %w", err)
	}
	defer rows.Close()

	var logs []gatelog.ScanLog
	for rows.Next() {
		var s gatelog.ScanLog
		var tags []string
		if err := rows.Scan(
			&s.ID, &s.StudentID, &s.Direction, &s.Method, &s.DeviceName,
			pq.Array(&tags), &s.RecordedAt, &s.Synced, &s.SyncedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		s.Tags = tags
		logs = append(logs, s)
	}

	return logs, rows.Err()
}

// FindUnsynced returns the oldest pending rows for the sync worker
func (r *ScanLogRepository) FindUnsynced(ctx context.Context, limit int) ([]gatelog.ScanLog, error) {
	if limit < 1 {
		limit = 50
	}

	query := `
		SELECT id, student_id, direction, method, device_name, tags, recorded_at, synced, synced_at
		FROM scan_logs
		WHERE synced = false
		ORDER BY recorded_at ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsynced scan logs: %w", err)
	}
	defer rows.Close()

	var logs []gatelog.ScanLog
	for rows.Next() {
		var s gatelog.ScanLog
		var tags []string
		if err := rows.Scan(
			&s.ID, &s.StudentID, &s.Direction, &s.Method, &s.DeviceName,
			pq.Array(&tags), &s.RecordedAt, &s.Synced, &s.SyncedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		s.Tags = tags
		logs = append(logs, s)
	}

	return logs, rows.Err()
}

// MarkSynced flags a row as forwarded upstream
func (r *ScanLogRepository) MarkSynced(ctx context.Context, id string) error {
	query := `
		UPDATE scan_logs
		SET synced = true, synced_at = $2
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark scan log synced: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scan log not found")
	}
	return nil
}

// CountUnsynced reports the sync backlog size
func (r *ScanLogRepository) CountUnsynced(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM scan_logs WHERE synced = false`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unsynced scan logs: %w", err)
	}
	return count, nil
}
