package entity

// Role is the role claim supplied by the identity provider. The token
// economy trusts it without re-verifying credentials.
type Role string

// Known roles
const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// IsAgent reports whether the role is categorically excluded from the
// token economy
func (r Role) IsAgent() bool {
	return r == RoleAgent
}
