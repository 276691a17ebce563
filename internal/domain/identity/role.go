package identity

// Role represents a user's role in the household
type Role string

const (
	RoleSuperAdmin Role = "super_admin" // Full control, including settings and user management
	RoleAdmin      Role = "admin"       // Manages bills, shares, payments and readings
	RoleResident   Role = "resident"    // Views own bills and records own payments
)

// AllRoles returns every valid role
func AllRoles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleResident}
}

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleResident:
		return true
	}
	return false
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// Label returns a human-readable label for the role
func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleResident:
		return "Resident"
	default:
		return string(r)
	}
}

// IsAdmin returns true for roles with administrative billing access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSuperAdmin returns true only for the super admin role
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// RoleFromString parses a role string, defaulting unknown values to resident
func RoleFromString(s string) Role {
	r := Role(s)
	if !r.IsValid() {
		return RoleResident
	}
	return r
}
