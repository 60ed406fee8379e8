// Package importer persists one processed dataset into Postgres, resolving
// cross-entity references along the way. An import run is a single
// transaction: the imported tables are cleared and rebuilt from the dataset,
// and any failure rolls the whole run back.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorhub/data-importer/internal/model"
	"github.com/mentorhub/data-importer/internal/store"
)

// EntityOutcome counts how one entity type fared during the import phase.
// LinkingErrors are rows whose references could not be resolved; Errors are
// store failures.
type EntityOutcome struct {
	Created       int `json:"created"`
	Errors        int `json:"errors,omitempty"`
	LinkingErrors int `json:"linking_errors,omitempty"`
}

// Outcome aggregates import counters across all entity types.
type Outcome struct {
	Students         EntityOutcome `json:"students"`
	Mentors          EntityOutcome `json:"mentors"`
	Projects         EntityOutcome `json:"projects"`
	Reviews          EntityOutcome `json:"reviews"`
	SponsoredReviews EntityOutcome `json:"sponsored_reviews"`
}

// Importer coordinates the database phase of an import run.
type Importer struct {
	log  *slog.Logger
	pool *pgxpool.Pool
	st   *store.Store
}

// New creates an Importer backed by the given pool.
func New(log *slog.Logger, pool *pgxpool.Pool) *Importer {
	return &Importer{
		log:  log,
		pool: pool,
		st:   store.New(pool),
	}
}

// Run imports one processed dataset inside a single transaction.
func (im *Importer) Run(ctx context.Context, data model.ProcessedData) (Outcome, error) {
	tx, err := im.pool.Begin(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	outcome, err := im.runImport(ctx, im.st.WithTx(tx), data)
	if err != nil {
		im.log.Error("database import failed, transaction rolled back", "error", err)
		return Outcome{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Outcome{}, fmt.Errorf("commit import transaction: %w", err)
	}

	im.log.Info("database import completed",
		"students", outcome.Students.Created,
		"mentors", outcome.Mentors.Created,
		"projects", outcome.Projects.Created,
		"reviews", outcome.Reviews.Created,
		"sponsored_reviews", outcome.SponsoredReviews.Created,
	)
	return outcome, nil
}

// runImport executes the full replace sequence against st. Split from Run so
// the sequence can be exercised without a live database.
func (im *Importer) runImport(ctx context.Context, st Storage, data model.ProcessedData) (Outcome, error) {
	im.log.Info("starting database import")

	if err := clearImportedData(ctx, st); err != nil {
		return Outcome{}, err
	}

	var outcome Outcome
	lc := newLinkContext()

	if err := im.importUsers(ctx, st, studentRecords(data.Students), model.RoleStudent, lc, &outcome.Students); err != nil {
		return Outcome{}, err
	}
	if err := im.importUsers(ctx, st, mentorRecords(data.Mentors), model.RoleMentor, lc, &outcome.Mentors); err != nil {
		return Outcome{}, err
	}

	im.importMentorProfiles(ctx, st, data.Mentors, lc, &outcome.Mentors)
	im.importProjects(ctx, st, data.Projects, lc, &outcome.Projects)
	im.importReviews(ctx, st, data.Reviews, lc, &outcome.Reviews)

	if len(data.SponsoredReviews) > 0 {
		im.importSponsoredReviews(ctx, st, data.SponsoredReviews, lc, &outcome.SponsoredReviews)
	}

	return outcome, nil
}

// clearImportedData empties the imported tables in dependency order. Roles
// are reference data and are kept.
func clearImportedData(ctx context.Context, st Storage) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"sponsored_reviews", st.DeleteSponsoredReviews},
		{"reviews", st.DeleteReviews},
		{"mentor_profiles", st.DeleteMentorProfiles},
		{"projects", st.DeleteProjects},
		{"users", st.DeleteUsers},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", step.name, err)
		}
	}
	return nil
}
