package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/TobiAkinkuotu/flashcard-server/internal/db"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
)

type userRepository struct {
	db *db.DB
}

func NewUserRepository(database *db.DB) repository.UserRepository {
	return &userRepository{db: database}
}

const userColumns = "id, public_id, name, email, password_hash, avatar_url, created_at, updated_at"

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (public_id, name, email, password_hash, avatar_url)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		user.PublicID, user.Name, user.Email, user.PasswordHash, user.AvatarURL)
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email))
}

func (r *userRepository) GetByPublicID(ctx context.Context, publicID string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE public_id = ?", publicID))
}

func (r *userRepository) Update(ctx context.Context, id int64, update models.UserUpdate) error {
	set := ""
	args := []any{}
	if update.Name != nil {
		set += "name = ?, "
		args = append(args, *update.Name)
	}
	if update.AvatarURL != nil {
		set += "avatar_url = ?, "
		args = append(args, *update.AvatarURL)
	}
	if len(args) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET "+set+"updated_at = CURRENT_TIMESTAMP WHERE id = ?", args...)
	return err
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.PublicID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
