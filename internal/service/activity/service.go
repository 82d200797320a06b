// Package activity records punch events as a fire-and-forget side effect.
// Writes run detached from the request: their failure is logged, never
// propagated to the punch operation that produced them.
package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/shiftwise/timeclock-go/internal/domain/activity"
	"github.com/google/uuid"
)

const writeTimeout = 5 * time.Second

type Recorder struct {
	repo activity.ActivityRepository
	now  func() time.Time
}

func NewRecorder(repo activity.ActivityRepository) *Recorder {
	return &Recorder{repo: repo, now: time.Now}
}

// Record queues one activity entry. It detaches from the caller's context
// so a request that finishes (or fails) immediately afterwards cannot
// cancel the write.
func (r *Recorder) Record(actorID, applicantID, jobID, punchID, action, detail string) {
	if r == nil || r.repo == nil {
		return
	}

	entry := activity.Entry{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		ApplicantID: applicantID,
		JobID:       jobID,
		PunchID:     punchID,
		Action:      action,
		Detail:      detail,
		CreatedAt:   r.now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := r.repo.Insert(ctx, entry); err != nil {
			slog.Warn("activity log write failed",
				"action", action,
				"punch_id", punchID,
				"error", err,
			)
		}
	}()
}
