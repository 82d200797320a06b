package job

import (
	"encoding/json"
	"fmt"
)

type RosterStatus string

const (
	RosterApproved  RosterStatus = "approved"
	RosterPending   RosterStatus = "pending"
	RosterRejected  RosterStatus = "rejected"
	RosterCancelled RosterStatus = "cancelled"
)

// RosterEntry is one roster assignment. The stored form is polymorphic: a
// bare employee-id string (legacy recurring approved assignment) or an
// explicit record with an optional one-off date and a status. Both decode
// into this struct so nothing past the JSON boundary branches on shape.
type RosterEntry struct {
	EmployeeID string       `json:"employeeId"`
	Date       *string      `json:"date"` // "2006-01-02"; nil means recurring weekly
	Status     RosterStatus `json:"status"`
	Legacy     bool         `json:"-"`
}

// Approved reports whether the entry authorizes work. Status defaults to
// approved when the stored record omits it.
func (e RosterEntry) Approved() bool {
	return e.Status == "" || e.Status == RosterApproved
}

// AppliesOn reports whether the entry covers the given calendar date
// ("2006-01-02"). Recurring entries cover every occurrence of the weekday.
func (e RosterEntry) AppliesOn(date string) bool {
	return e.Date == nil || *e.Date == date
}

type Roster []RosterEntry

// UnmarshalJSON accepts the mixed string-or-record roster form and
// normalizes it in one place.
func (r *Roster) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("roster must be an array: %w", err)
	}

	entries := make([]RosterEntry, 0, len(raw))
	for _, item := range raw {
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			entries = append(entries, RosterEntry{
				EmployeeID: id,
				Status:     RosterApproved,
				Legacy:     true,
			})
			continue
		}

		var entry RosterEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			return fmt.Errorf("invalid roster entry: %w", err)
		}
		if entry.Status == "" {
			entry.Status = RosterApproved
		}
		entries = append(entries, entry)
	}

	*r = normalizeRoster(entries)
	return nil
}

// normalizeRoster dedupes entries so at most one is authoritative per
// (employeeId, date) pair. An explicit entry always wins over a legacy
// string for the same identity.
func normalizeRoster(entries []RosterEntry) Roster {
	type key struct {
		employeeID string
		date       string
	}

	index := make(map[key]int, len(entries))
	result := make(Roster, 0, len(entries))
	for _, e := range entries {
		k := key{employeeID: e.EmployeeID}
		if e.Date != nil {
			k.date = *e.Date
		}
		if i, ok := index[k]; ok {
			if result[i].Legacy && !e.Legacy {
				result[i] = e
			}
			continue
		}
		index[k] = len(result)
		result = append(result, e)
	}
	return result
}

// Includes reports whether any entry names the employee, regardless of
// date scoping. Used as the coarse "can this employee ever clock in" gate.
func (r Roster) Includes(employeeID string) bool {
	for _, e := range r {
		if e.EmployeeID == employeeID && e.Approved() {
			return true
		}
	}
	return false
}

// AuthorizedOn reports whether the roster authorizes the employee for the
// given calendar date. An empty roster is open to all job members.
func (r Roster) AuthorizedOn(employeeID, date string) bool {
	if len(r) == 0 {
		return true
	}
	for _, e := range r {
		if e.EmployeeID == employeeID && e.Approved() && e.AppliesOn(date) {
			return true
		}
	}
	return false
}
