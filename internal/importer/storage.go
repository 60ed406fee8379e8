package importer

import (
	"context"

	"github.com/mentorhub/data-importer/internal/store"
)

// Storage is the persistence surface the import run needs. *store.Store
// satisfies it; tests substitute an in-memory implementation.
type Storage interface {
	GetUserByTelegramUsername(ctx context.Context, username string) (store.User, error)
	GetUserByGithubURL(ctx context.Context, githubURL string) (store.User, error)
	CreateUser(ctx context.Context, p store.UserParams) (int64, error)
	UpdateUser(ctx context.Context, id int64, p store.UserParams) error

	GetOrCreateRole(ctx context.Context, name string) (int64, error)
	UserHasRole(ctx context.Context, userID, roleID int64) (bool, error)
	AddUserRole(ctx context.Context, userID, roleID int64) error

	UpsertMentorProfile(ctx context.Context, p store.MentorProfileParams) error
	CreateProject(ctx context.Context, p store.ProjectParams) (int64, error)
	CreateReview(ctx context.Context, p store.ReviewParams) (int64, error)
	CreateSponsoredReview(ctx context.Context, p store.SponsoredReviewParams) error

	DeleteSponsoredReviews(ctx context.Context) error
	DeleteReviews(ctx context.Context) error
	DeleteMentorProfiles(ctx context.Context) error
	DeleteProjects(ctx context.Context) error
	DeleteUsers(ctx context.Context) error
}
