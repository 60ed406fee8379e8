package store

import (
	"context"
	"fmt"
	"time"
)

// ProjectParams carries the writable project columns.
type ProjectParams struct {
	Name          string
	Language      *string
	RepositoryURL *string
	AuthorID      int64
	SubmittedAt   *time.Time
}

// CreateProject inserts a project and returns the generated id.
func (s *Store) CreateProject(ctx context.Context, p ProjectParams) (int64, error) {
	const query = `
		INSERT INTO projects (name, language, repository_url, author_id, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRow(ctx, query, p.Name, p.Language, p.RepositoryURL, p.AuthorID, p.SubmittedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	return id, nil
}

// DeleteProjects removes all project rows.
func (s *Store) DeleteProjects(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("delete projects: %w", err)
	}
	return nil
}

// DeleteUsers removes all user rows. Role attachments go with them via the
// foreign key cascade; the roles table itself is untouched.
func (s *Store) DeleteUsers(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}

// DeleteMentorProfiles removes all mentor profile rows.
func (s *Store) DeleteMentorProfiles(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM mentor_profiles`); err != nil {
		return fmt.Errorf("delete mentor profiles: %w", err)
	}
	return nil
}
