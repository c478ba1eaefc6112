package models

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ParseRole maps a stored role value to the two-role model. Anything that is
// not exactly "admin" is an ordinary customer.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleCustomer
}

// Identity is the resolved authenticated user. The role comes from a side
// lookup against the user's profile document and defaults to customer.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
