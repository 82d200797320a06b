package postgresql

import (
	"context"
	"fmt"

	"github.com/shiftwise/timeclock-go/internal/domain/activity"
	"github.com/shiftwise/timeclock-go/internal/pkg/database"
)

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepository{db: db}
}

// Insert implements activity.ActivityRepository.
func (r *activityRepository) Insert(ctx context.Context, e activity.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activity_logs (
			id, actor_id, applicant_id, job_id, punch_id, action, detail, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		e.ID, e.ActorID, e.ApplicantID, e.JobID, e.PunchID, e.Action, e.Detail, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}
	return nil
}
