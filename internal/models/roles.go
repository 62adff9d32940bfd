package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// NormalizeRole maps a requested role onto a known one, falling back to RoleUser.
func NormalizeRole(role string) string {
	switch role {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}
