package stats

import (
	"context"

	"github.com/shiftwise/timeclock-go/internal/domain/user"
)

// StatsService aggregates historical punches into attendance, billing,
// and performance figures. Lookups for unknown employees and query
// timeouts both degrade to zero-valued results instead of erroring.
type StatsService interface {
	ComputeStats(ctx context.Context, caller user.Identity, req StatsRequest) (Stats, error)
	ComputePerformance(ctx context.Context, caller user.Identity, req StatsRequest) (PerformanceMetrics, error)
}
