// internal/domain/models/identity.go
package models

// Role is the sole authorization axis on the platform.
//
// PENDING identities may read but not write: no posts, comments, or
// reactions until an admin approves the account (PENDING → NURSE).
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleNurse   Role = "NURSE"
	RolePending Role = "PENDING"
)

// ParseRole normalizes a stored role string. Unknown values fall back to
// PENDING so a corrupted session can never grant extra rights.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleNurse, RolePending:
		return Role(s)
	}
	return RolePending
}

// Identity is the authenticated user as the backend reports it.
//
// JSON tags match the backend wire format; the serialized form is also
// what the session cookie persists across reloads.
type Identity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatarUrl"`

	Title      string `json:"title,omitempty"`      // professional title, e.g. "RN"
	Department string `json:"department,omitempty"`
	State      string `json:"state,omitempty"` // e.g. "TX"
	Bio        string `json:"bio,omitempty"`

	ProfileCompletionPercentage int `json:"profileCompletionPercentage,omitempty"`
}

// Session is the pair the backend issues on login and the client persists.
type Session struct {
	AccessToken string   `json:"accessToken"`
	Identity    Identity `json:"user"`
}

// ProfilePatch carries the fields a user may edit on their own profile.
type ProfilePatch struct {
	Name       string `json:"name,omitempty"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department,omitempty"`
	State      string `json:"state,omitempty"`
	Bio        string `json:"bio,omitempty"`
}
