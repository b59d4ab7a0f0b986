package core

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/mdobak/go-xerrors"

	"github.com/quillside/weblog/internal/auth"
	"github.com/quillside/weblog/internal/utils/databaseutils"
)

// Account is the admin-facing projection of a user, joined with its
// author/admin extension record where one exists.
type Account struct {
	UserID   int64     `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     auth.Role `json:"role"`
	AuthorID int64     `json:"authorId,omitempty"`
	AdminID  int64     `json:"adminId,omitempty"`
}

// RegisterUser inserts a new user inside one transaction. While no admin
// exists yet the new user bootstraps to admin and gets both extension
// records; every later sign-up defaults to the user role. Running
// count-then-insert in a single transaction serializes racing first
// sign-ups, so at most one account can bootstrap.
func (c *Core) RegisterUser(ctx context.Context, user *auth.User) (*auth.User, error) {
	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*auth.User, error) {
		adminCount, err := c.AdminCount(txCtx)
		if err != nil {
			return nil, err
		}

		user.Role = auth.RoleUser
		if adminCount == 0 {
			user.Role = auth.RoleAdmin
		}

		query := `
			INSERT INTO users (username, email, password, role)
			VALUES (?, ?, ?, ?)
			RETURNING user_id
		`
		args := []any{user.Username, user.Email, user.Password, user.Role.String()}
		_, err = databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, query, func(rows *sqlx.Rows) (*auth.User, error) {
			if err := rows.Scan(&user.ID); err != nil {
				return nil, xerrors.New(err)
			}
			return user, nil
		}, args...)

		if err != nil {
			switch {
			case strings.Contains(err.Error(), "UNIQUE constraint failed: users.username"):
				return nil, xerrors.New(ErrDuplicateUsername)
			case strings.Contains(err.Error(), "UNIQUE constraint failed: users.email"):
				return nil, xerrors.New(ErrDuplicateEmail)
			default:
				return nil, xerrors.New(err)
			}
		}

		if user.Role == auth.RoleAdmin {
			if err := c.insertAdminRecord(txCtx, user.ID); err != nil {
				return nil, err
			}
			if err := c.insertAuthorRecord(txCtx, user.ID); err != nil {
				return nil, err
			}
		}

		c.log.Info("user registered", "user_id", user.ID, "username", user.Username, "role", user.Role.String())
		return user, nil
	})
}

func (c *Core) UserByUsername(ctx context.Context, username string) (*auth.User, error) {
	query := `
		SELECT user_id, username, email, password, role
		FROM users
		WHERE username = ?
	`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(ErrNotFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}

func (c *Core) UserByUsernameOrEmail(ctx context.Context, username, email string) (*auth.User, error) {
	query := `
		SELECT user_id, username, email, password, role
		FROM users
		WHERE username = ? OR email = ?
	`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, username, email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(ErrNotFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}

// DeleteUser removes the account; author/admin records, blogs, comments and
// interactions go with it referentially.
func (c *Core) DeleteUser(ctx context.Context, userID int64) error {
	result, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, `DELETE FROM users WHERE user_id = ?`, userID)
	if err != nil {
		return xerrors.New(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(ErrNotFound)
	}

	c.log.Info("user deleted", "user_id", userID)
	return nil
}

func (c *Core) AdminCount(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE role = 'admin'`

	count, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (int64, error) {
		var count int64
		if err := rows.Scan(&count); err != nil {
			return 0, xerrors.New(err)
		}
		return count, nil
	})
	if err != nil {
		return 0, xerrors.New(err)
	}

	return count, nil
}

// PromoteToAuthor is the one-way user -> author promotion. It fails with
// ErrNotFound when the target does not exist or already holds a higher role.
func (c *Core) PromoteToAuthor(ctx context.Context, userID int64) error {
	return c.session.DoTransactionally(ctx, func(txCtx context.Context) error {
		result, err := databaseutils.ExecuteUpdate(c.sqlTemplate, txCtx,
			`UPDATE users SET role = 'author' WHERE user_id = ? AND role = 'user'`, userID)
		if err != nil {
			return xerrors.New(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return xerrors.New(err)
		}
		if affected == 0 {
			return xerrors.New(ErrNotFound)
		}

		if err := c.insertAuthorRecord(txCtx, userID); err != nil {
			return err
		}

		c.log.Info("user promoted to author", "user_id", userID)
		return nil
	})
}

// Users returns accounts holding the plain user role.
func (c *Core) Users(ctx context.Context) ([]*Account, error) {
	query := `
		SELECT user_id, username, email, role
		FROM users
		WHERE role NOT IN ('admin', 'author')
		ORDER BY user_id
	`

	accounts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*Account, error) {
		var account Account
		var role string
		if err := rows.Scan(&account.UserID, &account.Username, &account.Email, &role); err != nil {
			return nil, xerrors.New(err)
		}
		account.Role = auth.ParseRole(role)
		return &account, nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	return accounts, nil
}

func (c *Core) Authors(ctx context.Context) ([]*Account, error) {
	query := `
		SELECT users.user_id, users.username, users.email, users.role, authors.author_id
		FROM users
		INNER JOIN authors ON users.user_id = authors.user_id
		ORDER BY users.user_id
	`

	accounts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*Account, error) {
		var account Account
		var role string
		if err := rows.Scan(&account.UserID, &account.Username, &account.Email, &role, &account.AuthorID); err != nil {
			return nil, xerrors.New(err)
		}
		account.Role = auth.ParseRole(role)
		return &account, nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	return accounts, nil
}

func (c *Core) Admins(ctx context.Context) ([]*Account, error) {
	query := `
		SELECT users.user_id, users.username, users.email, users.role, admins.admin_id
		FROM users
		INNER JOIN admins ON users.user_id = admins.user_id
		ORDER BY users.user_id
	`

	accounts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*Account, error) {
		var account Account
		var role string
		if err := rows.Scan(&account.UserID, &account.Username, &account.Email, &role, &account.AdminID); err != nil {
			return nil, xerrors.New(err)
		}
		account.Role = auth.ParseRole(role)
		return &account, nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	return accounts, nil
}

func (c *Core) insertAdminRecord(ctx context.Context, userID int64) error {
	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, `INSERT INTO admins (user_id) VALUES (?)`, userID); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (c *Core) insertAuthorRecord(ctx context.Context, userID int64) error {
	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, `INSERT INTO authors (user_id) VALUES (?)`, userID); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func scanUser(rows *sqlx.Rows) (*auth.User, error) {
	var user = &auth.User{}
	var role string

	if err := rows.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&role,
	); err != nil {
		return nil, xerrors.New(err)
	}
	user.Role = auth.ParseRole(role)
	return user, nil
}
