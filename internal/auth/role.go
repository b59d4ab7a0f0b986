package auth

import (
	"github.com/mdobak/go-xerrors"
)

// Role is the ordered access level of a caller. Guest is the implicit level
// of a request without a session.
type Role int

const (
	RoleGuest Role = iota
	RoleUser
	RoleAuthor
	RoleAdmin
)

// ParseRole maps a stored role name to its Role. Unknown or empty names map
// to RoleGuest, which no gate admits.
func ParseRole(name string) Role {
	switch name {
	case "user":
		return RoleUser
	case "author":
		return RoleAuthor
	case "admin":
		return RoleAdmin
	default:
		return RoleGuest
	}
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAuthor:
		return "author"
	case RoleAdmin:
		return "admin"
	default:
		return "guest"
	}
}

// Meets reports whether a caller holding r is admitted by a gate requiring
// at least the given role.
func (r Role) Meets(required Role) bool {
	return r >= required
}

func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

func (r *Role) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return xerrors.Newf("invalid role: %s", string(data))
	}
	*r = ParseRole(string(data[1 : len(data)-1]))
	return nil
}
