package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// User is a persisted user row. Nullable columns are pointers.
type User struct {
	ID               int64
	TelegramUsername *string
	TelegramUserID   *int64
	GithubURL        *string
}

// UserParams carries the writable user columns for create and update.
type UserParams struct {
	TelegramUsername *string
	TelegramUserID   *int64
	GithubURL        *string
}

// GetUserByTelegramUsername finds a user by handle, case-insensitively.
// Returns ErrNotFound when no user matches.
func (s *Store) GetUserByTelegramUsername(ctx context.Context, username string) (User, error) {
	const query = `
		SELECT id, telegram_username, telegram_user_id, github_url
		FROM users
		WHERE LOWER(telegram_username) = LOWER($1)
	`

	var u User
	err := s.db.QueryRow(ctx, query, username).Scan(&u.ID, &u.TelegramUsername, &u.TelegramUserID, &u.GithubURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("get user by telegram username: %w", err)
	}
	return u, nil
}

// GetUserByGithubURL finds a user by exact GitHub URL. Returns ErrNotFound
// when no user matches.
func (s *Store) GetUserByGithubURL(ctx context.Context, githubURL string) (User, error) {
	const query = `
		SELECT id, telegram_username, telegram_user_id, github_url
		FROM users
		WHERE github_url = $1
	`

	var u User
	err := s.db.QueryRow(ctx, query, githubURL).Scan(&u.ID, &u.TelegramUsername, &u.TelegramUserID, &u.GithubURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("get user by github url: %w", err)
	}
	return u, nil
}

// CreateUser inserts a user and returns the generated id.
func (s *Store) CreateUser(ctx context.Context, p UserParams) (int64, error) {
	const query = `
		INSERT INTO users (telegram_username, telegram_user_id, github_url)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRow(ctx, query, p.TelegramUsername, p.TelegramUserID, p.GithubURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// UpdateUser overwrites the writable columns of an existing user.
func (s *Store) UpdateUser(ctx context.Context, id int64, p UserParams) error {
	const query = `
		UPDATE users
		SET telegram_username = $2, telegram_user_id = $3, github_url = $4
		WHERE id = $1
	`

	if _, err := s.db.Exec(ctx, query, id, p.TelegramUsername, p.TelegramUserID, p.GithubURL); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// GetOrCreateRole resolves a role name to its id, inserting the role on first
// use. Roles are shared reference data and survive import runs.
func (s *Store) GetOrCreateRole(ctx context.Context, name string) (int64, error) {
	const selectQuery = `SELECT id FROM roles WHERE name = $1`
	const insertQuery = `INSERT INTO roles (name) VALUES ($1) RETURNING id`

	var id int64
	err := s.db.QueryRow(ctx, selectQuery, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("get role: %w", err)
	}

	if err := s.db.QueryRow(ctx, insertQuery, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("create role: %w", err)
	}
	return id, nil
}

// UserHasRole reports whether the user already carries the role.
func (s *Store) UserHasRole(ctx context.Context, userID, roleID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = $1 AND role_id = $2)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, userID, roleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("user has role: %w", err)
	}
	return exists, nil
}

// AddUserRole attaches a role to a user.
func (s *Store) AddUserRole(ctx context.Context, userID, roleID int64) error {
	const query = `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`

	if _, err := s.db.Exec(ctx, query, userID, roleID); err != nil {
		return fmt.Errorf("add user role: %w", err)
	}
	return nil
}

// MentorProfileParams carries the mentor profile columns.
type MentorProfileParams struct {
	UserID     int64
	FullName   string
	Languages  string
	Services   string
	PriceType  string
	WebsiteURL string
}

// UpsertMentorProfile writes the mentor profile for a user, replacing any
// previous profile row.
func (s *Store) UpsertMentorProfile(ctx context.Context, p MentorProfileParams) error {
	const query = `
		INSERT INTO mentor_profiles (user_id, full_name, languages, services, price_type, website_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			languages = EXCLUDED.languages,
			services = EXCLUDED.services,
			price_type = EXCLUDED.price_type,
			website_url = EXCLUDED.website_url
	`

	if _, err := s.db.Exec(ctx, query, p.UserID, p.FullName, p.Languages, p.Services, p.PriceType, p.WebsiteURL); err != nil {
		return fmt.Errorf("upsert mentor profile: %w", err)
	}
	return nil
}
