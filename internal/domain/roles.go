package domain

// Role is the closed enumeration of principal roles known to the service
type Role string

const (
	RoleVendorAdmin    Role = "vendor_admin"
	RoleVendorManager  Role = "training_organisation_manager"
	RoleTrainer        Role = "trainer"
	RoleClientAdmin    Role = "client_admin"
	RoleCoach          Role = "coach"
	RoleHoldingAdmin   Role = "holding_admin"
)

// Valid returns true if the role is part of the known enumeration
func (r Role) Valid() bool {
	switch r {
	case RoleVendorAdmin, RoleVendorManager, RoleTrainer,
		RoleClientAdmin, RoleCoach, RoleHoldingAdmin:
		return true
	}
	return false
}

// IsVendor returns true for roles that may access any course
func (r Role) IsVendor() bool {
	return r == RoleVendorAdmin || r == RoleVendorManager
}

// IsClient returns true for company-scoped roles
func (r Role) IsClient() bool {
	return r == RoleClientAdmin || r == RoleCoach
}

// IsHolding returns true for holding-scoped roles
func (r Role) IsHolding() bool {
	return r == RoleHoldingAdmin
}

// OwnCoursesOnly returns true for roles restricted to courses they
// personally deliver
func (r Role) OwnCoursesOnly() bool {
	return r == RoleTrainer
}
