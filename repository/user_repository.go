package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"

	"github.com/lib/pq"
)

// IUserRepository defines the contract for user persistence. The auth
// service never assumes a particular storage technology behind it.
type IUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	Insert(ctx context.Context, user *model.User) error
	UpdatePasswordHash(ctx context.Context, userID int, hash string) error
	UpdateRole(ctx context.Context, userID int, role model.Role) error
	UpdatePermissions(ctx context.Context, userID int, permissions []string) error
}

// UserRepository implements IUserRepository on PostgreSQL.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, username, email, password, role, permissions, created_at`

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var permissions pq.StringArray
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &permissions, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		logger.Log.WithError(err).Error("Failed to scan user row")
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	user.Permissions = []string(permissions)
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, username))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// Insert creates the user row and fills in the generated id and timestamp.
// Unique-constraint violations are mapped to the duplicate errors so the
// service can report which field collided.
func (r *UserRepository) Insert(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, email, password, role, permissions)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.Password, user.Role, pq.Array(user.Permissions),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return r.mapInsertError(err)
	}
	return nil
}

func (r *UserRepository) mapInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		switch pqErr.Constraint {
		case "users_username_key":
			return common.ErrDuplicateUsername
		case "users_email_key":
			return common.ErrDuplicateEmail
		}
	}
	logger.Log.WithError(err).Error("Failed to execute insert user query")
	return fmt.Errorf("%w: %v", common.ErrStorage, err)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID int, hash string) error {
	return r.execForUser(ctx, `UPDATE users SET password = $1 WHERE id = $2`, hash, userID)
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID int, role model.Role) error {
	return r.execForUser(ctx, `UPDATE users SET role = $1 WHERE id = $2`, string(role), userID)
}

func (r *UserRepository) UpdatePermissions(ctx context.Context, userID int, permissions []string) error {
	return r.execForUser(ctx, `UPDATE users SET permissions = $1 WHERE id = $2`, pq.Array(permissions), userID)
}

func (r *UserRepository) execForUser(ctx context.Context, query string, value interface{}, userID int) error {
	res, err := r.DB.ExecContext(ctx, query, value, userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to execute user update query")
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	if rows == 0 {
		return common.ErrUserNotFound
	}
	return nil
}
