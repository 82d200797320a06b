package job

import "time"

// Coordinate is a single GPS reading. Accuracy is the radius in meters
// reported by the device and is only consulted when a job has no usable
// venue location.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// IsZero reports whether the coordinate carries no usable position.
func (c Coordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// AdditionalConfig carries per-job policy switches and the recipients
// notified on manager punch edits.
type AdditionalConfig struct {
	AllowBreaks   bool     `json:"allowBreaks"`
	AllowOvertime *bool    `json:"allowOvertime"` // nil means allowed
	NotifyEmails  []string `json:"notifyEmails"`
}

// OvertimeAllowed defaults to true when the flag is unset.
func (c AdditionalConfig) OvertimeAllowed() bool {
	return c.AllowOvertime == nil || *c.AllowOvertime
}

// Job identifies a work site. Read-only from this service's perspective;
// the catalog is maintained by administrative tooling.
type Job struct {
	ID               string
	Title            string
	VenueCoordinates *Coordinate
	Geofenced        bool
	RadiusFeet       float64
	GraceFeet        float64
	Config           AdditionalConfig
	Shifts           []Shift
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ShiftBySlug returns the named shift, or nil.
func (j *Job) ShiftBySlug(slug string) *Shift {
	for i := range j.Shifts {
		if j.Shifts[i].Slug == slug {
			return &j.Shifts[i]
		}
	}
	return nil
}

// HasVenue reports whether the job declares non-zero venue coordinates.
func (j *Job) HasVenue() bool {
	return j.VenueCoordinates != nil && !j.VenueCoordinates.IsZero()
}

// Shift belongs to exactly one job.
type Shift struct {
	Slug            string                 `json:"slug"`
	Name            string                 `json:"name"`
	StartDate       *time.Time             `json:"startDate"`
	EndDate         *time.Time             `json:"endDate"`
	BillRate        float64                `json:"billRate"` // currency per hour
	DefaultSchedule map[string]DaySchedule `json:"defaultSchedule"`
}

// Weekday keys used by DefaultSchedule, index 0 = Sunday.
var WeekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// DaySchedule is one weekday's entry: start/end times of day plus the
// roster of authorized employees.
type DaySchedule struct {
	StartTime string `json:"startTime"` // "15:04"
	EndTime   string `json:"endTime"`
	Roster    Roster `json:"roster"`
}

// HasTimes reports whether the shift runs that day at all.
func (d DaySchedule) HasTimes() bool {
	return d.StartTime != "" && d.EndTime != ""
}
