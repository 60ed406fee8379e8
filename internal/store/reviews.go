package store

import (
	"context"
	"fmt"
	"time"
)

// ReviewParams carries the writable review columns.
type ReviewParams struct {
	ProjectID  int64
	MentorID   int64
	PeriodAt   *time.Time
	ReviewType *string
	ReviewURL  *string
}

// CreateReview inserts a review and returns the generated id.
func (s *Store) CreateReview(ctx context.Context, p ReviewParams) (int64, error) {
	const query = `
		INSERT INTO reviews (project_id, mentor_id, period_at, review_type, review_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRow(ctx, query, p.ProjectID, p.MentorID, p.PeriodAt, p.ReviewType, p.ReviewURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create review: %w", err)
	}
	return id, nil
}

// SponsoredReviewParams carries the writable sponsored review columns.
// ReviewID is optional: a sponsored row survives even when no base review
// could be associated with it.
type SponsoredReviewParams struct {
	ReviewID      *int64
	MentorID      int64
	ProjectID     int64
	Cost          float64
	Currency      string
	PaymentStatus string
	MessageURL    *string
	Notes         *string
}

// CreateSponsoredReview inserts a sponsored review row.
func (s *Store) CreateSponsoredReview(ctx context.Context, p SponsoredReviewParams) error {
	const query = `
		INSERT INTO sponsored_reviews (review_id, mentor_id, project_id, cost, currency, payment_status, message_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.Exec(ctx, query, p.ReviewID, p.MentorID, p.ProjectID, p.Cost, p.Currency, p.PaymentStatus, p.MessageURL, p.Notes)
	if err != nil {
		return fmt.Errorf("create sponsored review: %w", err)
	}
	return nil
}

// DeleteReviews removes all review rows.
func (s *Store) DeleteReviews(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM reviews`); err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}
	return nil
}

// DeleteSponsoredReviews removes all sponsored review rows.
func (s *Store) DeleteSponsoredReviews(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM sponsored_reviews`); err != nil {
		return fmt.Errorf("delete sponsored reviews: %w", err)
	}
	return nil
}
