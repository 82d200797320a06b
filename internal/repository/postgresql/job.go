package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shiftwise/timeclock-go/internal/domain/job"
	"github.com/shiftwise/timeclock-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type jobRepository struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `
	id, title, venue_latitude, venue_longitude, geofenced, radius_feet, grace_feet,
	allow_breaks, allow_overtime, notify_emails, shifts, created_at, updated_at`

// scanJob decodes one catalog row. The shifts document is the JSONB blob
// the administrative tooling writes, including the polymorphic roster
// entries; job.Roster normalizes those during unmarshal.
func scanJob(row pgx.Row) (*job.Job, error) {
	var j job.Job
	var venueLat, venueLon *float64
	var allowOvertime *bool
	var shiftsJSON []byte

	err := row.Scan(
		&j.ID, &j.Title, &venueLat, &venueLon, &j.Geofenced, &j.RadiusFeet, &j.GraceFeet,
		&j.Config.AllowBreaks, &allowOvertime, &j.Config.NotifyEmails, &shiftsJSON,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if venueLat != nil && venueLon != nil {
		j.VenueCoordinates = &job.Coordinate{Latitude: *venueLat, Longitude: *venueLon}
	}
	j.Config.AllowOvertime = allowOvertime

	if len(shiftsJSON) > 0 {
		if err := json.Unmarshal(shiftsJSON, &j.Shifts); err != nil {
			return nil, fmt.Errorf("failed to decode shifts document: %w", err)
		}
	}
	return &j, nil
}

// GetByID implements job.JobRepository.
func (r *jobRepository) GetByID(ctx context.Context, id string) (*job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + jobColumns + ` FROM jobs WHERE id = $1`

	j, err := scanJob(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, job.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}
	return j, nil
}

// GetByIDs implements job.JobRepository. Missing ids are simply absent
// from the result map.
func (r *jobRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*job.Job, error) {
	result := make(map[string]*job.Job, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT` + jobColumns + ` FROM jobs WHERE id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		result[j.ID] = j
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return result, nil
}

// ListIDs implements job.JobRepository.
func (r *jobRepository) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM jobs ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job ids: %w", err)
	}
	return ids, nil
}
