package job

import "errors"

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrMissingCoordinates = errors.New("job is geofenced but has no venue coordinates")
)
