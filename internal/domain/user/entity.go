package user

type Role string

const (
	RoleAdmin   Role = "admin"   // Support staff - full access, geofence bypass
	RoleManager Role = "manager" // Reviews and edits punches, geofence bypass
	RoleUser    Role = "user"    // Regular employee clocking in against shifts
	RoleClient  Role = "client"  // Venue/billing account - all-employee stats
)

// Identity is the caller context extracted from JWT claims by the handlers
// and passed down to the services.
type Identity struct {
	UserID      string
	ApplicantID string
	Role        Role
}

// BypassesGeofence reports whether the role may clock in from anywhere,
// e.g. support staff punching on an employee's behalf.
func (r Role) BypassesGeofence() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanViewAllEmployees reports whether the role may aggregate every
// employee's punches instead of only its own.
func (r Role) CanViewAllEmployees() bool {
	return r == RoleAdmin || r == RoleClient
}

// CanViewBilling reports whether spend totals are computed for the role.
func (r Role) CanViewBilling() bool {
	return r == RoleAdmin || r == RoleClient
}

// CanEditPunches reports whether the role may correct punch records.
func (r Role) CanEditPunches() bool {
	return r == RoleAdmin || r == RoleManager
}
