package domain

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleOwner    UserRole = "owner"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleOwner || r == RoleAdmin
}

// Principal is the already-verified caller handed over by the identity layer.
type Principal struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
}

func (p Principal) Is(role UserRole) bool {
	return p.Role == role
}
