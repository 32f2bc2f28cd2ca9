package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fieldkeep/fieldkeep/pkg/rbac"
	log "github.com/sirupsen/logrus"
)

type UserRepo interface {
	Store(ctx context.Context, user User) (int, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByUid(ctx context.Context, uid string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

const userColumns = "id, uid, username, display_name, role, password_hash, created_at"

func (r *UserRepoImpl) Store(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO app_user (uid, username, display_name, role, password_hash)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		string(user.Role),
		user.PasswordHash,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store user: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *UserRepoImpl) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM app_user WHERE username = $1", userColumns)
	return r.findOne(ctx, query, username)
}

func (r *UserRepoImpl) FindByUid(ctx context.Context, uid string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM app_user WHERE uid = $1", userColumns)
	return r.findOne(ctx, query, uid)
}

func (r *UserRepoImpl) findOne(ctx context.Context, query string, arg any) (*User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not query user: %w", err)
		log.Error(err)
		return nil, err
	}
	return user, nil
}

func (r *UserRepoImpl) GetAll(ctx context.Context) ([]User, error) {
	query := fmt.Sprintf("SELECT %s FROM app_user ORDER BY username", userColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query users: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			err := fmt.Errorf("could not scan user: %w", err)
			log.Error(err)
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return users, nil
}

func (r *UserRepoImpl) Update(ctx context.Context, user User) (bool, error) {
	query := `UPDATE app_user SET
				  username = $1,
				  display_name = $2,
				  role = $3
			  WHERE uid = $4`
	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.DisplayName,
		string(user.Role),
		user.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update user: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *UserRepoImpl) Delete(ctx context.Context, uid string) (bool, error) {
	query := "DELETE FROM app_user WHERE uid = $1"
	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		err := fmt.Errorf("could not delete user: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var user User
	var role string
	if err := row.Scan(
		&user.Id,
		&user.Uid,
		&user.Username,
		&user.DisplayName,
		&role,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	parsed, err := rbac.ParseRole(role)
	if err != nil {
		return nil, err
	}
	user.Role = parsed
	return &user, nil
}
