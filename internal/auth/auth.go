package auth

import (
	"errors"
	"net/http"

	"github.com/mdobak/go-xerrors"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillside/weblog/internal/web"
)

const PrincipalCtxKey = "principal_data"

var NotAuthenticatedUser = xerrors.Message("not authenticated user")

func (user *User) SetPassword(plainTextPassword string, cost int) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), cost)

	if err != nil {
		return xerrors.New(err)
	}

	user.Password = hashedPassword
	return nil
}

func (user *User) IsPasswordMatch(plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(user.Password, []byte(plainTextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, xerrors.New(err)
	}

	return true, nil
}

// GetPrincipal returns the caller attached to the request by the session
// middleware, or NotAuthenticatedUser for guests.
func GetPrincipal(r *http.Request) (*Principal, error) {
	principal, ok := web.GetValueFromContext[*Principal](r, PrincipalCtxKey)
	if !ok {
		return nil, NotAuthenticatedUser
	}

	return principal, nil
}

func SetPrincipal(r *http.Request, principal *Principal) *http.Request {
	return web.AddValueToContext(r, PrincipalCtxKey, principal)
}
