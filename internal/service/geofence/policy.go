// Package geofence decides whether a punch location complies with a job's
// allowed working radius.
package geofence

import (
	"github.com/shiftwise/timeclock-go/internal/domain/job"
	"github.com/shiftwise/timeclock-go/internal/pkg/geo"
)

// MaxAccuracyMeters is the confidence cutoff used when a geofenced job has
// no usable venue location: a reading blurrier than this counts as a
// violation.
const MaxAccuracyMeters = 50

// WithinFence reports whether the point lies within the job's radius plus
// grace distance. A point exactly on the boundary is inside.
func WithinFence(point job.Coordinate, j *job.Job) bool {
	if !j.HasVenue() {
		return false
	}
	d := geo.DistanceFeet(point.Latitude, point.Longitude,
		j.VenueCoordinates.Latitude, j.VenueCoordinates.Longitude)
	return d <= j.RadiusFeet+j.GraceFeet
}

// Violates reports whether the punch location breaks the job's geofence.
//
// Non-geofenced jobs never violate. Geofenced jobs without a venue or a
// configured radius fall back to the accuracy heuristic: an absent point
// is not a violation (non-GPS clock-in), a low-confidence reading is.
func Violates(point *job.Coordinate, j *job.Job) bool {
	if j == nil || !j.Geofenced {
		return false
	}

	if !j.HasVenue() || j.RadiusFeet <= 0 {
		if point == nil {
			return false
		}
		return point.Accuracy > MaxAccuracyMeters
	}

	if point == nil {
		return true
	}
	return !WithinFence(*point, j)
}
