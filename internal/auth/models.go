package auth

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password []byte `json:"-"`
}

// Principal is the per-caller state carried by the session:
// who is making the request and with which role. It is written once at
// login/sign-up and cleared at logout/account deletion.
type Principal struct {
	UserID   int64
	Username string
	Role     Role
}
