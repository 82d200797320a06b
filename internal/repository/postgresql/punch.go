package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shiftwise/timeclock-go/internal/domain/job"
	"github.com/shiftwise/timeclock-go/internal/domain/punch"
	"github.com/shiftwise/timeclock-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepository{db: db}
}

const punchColumns = `
	id, user_id, applicant_id, job_id, shift_slug, time_in, time_out, status,
	clock_in_latitude, clock_in_longitude, clock_in_accuracy,
	clock_out_latitude, clock_out_longitude, clock_out_accuracy,
	user_note, manager_note, modified_by, modified_date, created_at, updated_at`

func scanPunch(row pgx.Row) (punch.Punch, error) {
	var p punch.Punch
	var inLat, inLon, inAcc, outLat, outLon, outAcc *float64

	err := row.Scan(
		&p.ID, &p.UserID, &p.ApplicantID, &p.JobID, &p.ShiftSlug, &p.TimeIn, &p.TimeOut, &p.Status,
		&inLat, &inLon, &inAcc,
		&outLat, &outLon, &outAcc,
		&p.UserNote, &p.ManagerNote, &p.ModifiedBy, &p.ModifiedDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return punch.Punch{}, err
	}

	p.ClockInCoordinates = coordFrom(inLat, inLon, inAcc)
	p.ClockOutCoordinates = coordFrom(outLat, outLon, outAcc)
	return p, nil
}

func coordFrom(lat, lon, acc *float64) *job.Coordinate {
	if lat == nil || lon == nil {
		return nil
	}
	c := &job.Coordinate{Latitude: *lat, Longitude: *lon}
	if acc != nil {
		c.Accuracy = *acc
	}
	return c
}

func coordCols(c *job.Coordinate) (lat, lon, acc *float64) {
	if c == nil {
		return nil, nil, nil
	}
	return &c.Latitude, &c.Longitude, &c.Accuracy
}

// Insert implements punch.PunchRepository. The partial unique index
// uq_punches_open (applicant_id, job_id) WHERE time_out IS NULL turns a
// concurrent duplicate clock-in into ErrOpenPunchExists instead of a
// second open punch.
func (r *punchRepository) Insert(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	inLat, inLon, inAcc := coordCols(p.ClockInCoordinates)

	query := `
		INSERT INTO punches (
			user_id, applicant_id, job_id, shift_slug, time_in, time_out, status,
			clock_in_latitude, clock_in_longitude, clock_in_accuracy,
			user_note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.UserID, p.ApplicantID, p.JobID, p.ShiftSlug, p.TimeIn, p.TimeOut, p.Status,
		inLat, inLon, inAcc,
		p.UserNote,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_punches_open" {
			return punch.Punch{}, punch.ErrOpenPunchExists
		}
		return punch.Punch{}, fmt.Errorf("failed to insert punch: %w", err)
	}

	return p, nil
}

// Update implements punch.PunchRepository.
func (r *punchRepository) Update(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	inLat, inLon, inAcc := coordCols(p.ClockInCoordinates)
	outLat, outLon, outAcc := coordCols(p.ClockOutCoordinates)

	query := `
		UPDATE punches SET
			time_in = $2,
			time_out = $3,
			status = $4,
			clock_in_latitude = $5, clock_in_longitude = $6, clock_in_accuracy = $7,
			clock_out_latitude = $8, clock_out_longitude = $9, clock_out_accuracy = $10,
			user_note = $11,
			manager_note = $12,
			modified_by = $13,
			modified_date = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.TimeIn, p.TimeOut, p.Status,
		inLat, inLon, inAcc,
		outLat, outLon, outAcc,
		p.UserNote, p.ManagerNote, p.ModifiedBy, p.ModifiedDate,
	).Scan(&p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to update punch: %w", err)
	}

	return p, nil
}

// GetByID implements punch.PunchRepository.
func (r *punchRepository) GetByID(ctx context.Context, id string) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + punchColumns + ` FROM punches WHERE id = $1`

	p, err := scanPunch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to get punch by id: %w", err)
	}
	return p, nil
}

// FindOpenPunch implements punch.PunchRepository.
func (r *punchRepository) FindOpenPunch(ctx context.Context, applicantID, jobID string) (*punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + punchColumns + `
		FROM punches
		WHERE applicant_id = $1
		  AND job_id = $2
		  AND time_out IS NULL
		ORDER BY time_in DESC
		LIMIT 1
	`

	p, err := scanPunch(q.QueryRow(ctx, query, applicantID, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open punch: %w", err)
	}
	return &p, nil
}

// FindInRange implements punch.PunchRepository.
func (r *punchRepository) FindInRange(ctx context.Context, filter punch.RangeFilter, start, end time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"time_in >= $1", "time_in < $2"}
	args := []interface{}{start, end}

	if filter.ApplicantID != "" {
		args = append(args, filter.ApplicantID)
		conditions = append(conditions, fmt.Sprintf("applicant_id = $%d", len(args)))
	}
	if len(filter.JobIDs) > 0 {
		args = append(args, filter.JobIDs)
		conditions = append(conditions, fmt.Sprintf("job_id = ANY($%d)", len(args)))
	}
	if filter.ShiftSlug != "" {
		args = append(args, filter.ShiftSlug)
		conditions = append(conditions, fmt.Sprintf("shift_slug = $%d", len(args)))
	}

	query := `SELECT` + punchColumns + `
		FROM punches
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY time_in ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches in range: %w", err)
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punches: %w", err)
	}
	return punches, nil
}

// FindOverlapping implements punch.PunchRepository. Open punches extend
// to NOW() for the interval comparison.
func (r *punchRepository) FindOverlapping(ctx context.Context, applicantID string, start, end time.Time, excludeID string) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + punchColumns + `
		FROM punches
		WHERE applicant_id = $1
		  AND id <> $2
		  AND time_in < $4
		  AND COALESCE(time_out, NOW()) > $3
	`

	rows, err := q.Query(ctx, query, applicantID, excludeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punches: %w", err)
	}
	return punches, nil
}
