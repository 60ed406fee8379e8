// Package model defines the domain records produced by the processing pipeline
// and consumed by the reconciliation engine. These types are independent of any
// storage technology; database identifiers only exist after the linking phase.
package model

import "time"

// Role names attached to imported users. The roles table is shared reference
// data and is never deleted by an import run.
const (
	RoleStudent = "STUDENT"
	RoleMentor  = "MENTOR"
)

// Student is a processed student row. Identity is a GitHub URL and/or a
// Telegram handle; a student with neither is filtered out before this
// record is ever created.
type Student struct {
	GithubURL      string `json:"github_url,omitempty"`
	TelegramUserID *int64 `json:"telegram_user_id,omitempty"`
	TelegramHandle string `json:"telegram_username,omitempty"`
}

// MentorProfile carries the role-specific profile attributes from the
// mentors sheet (columns C-H).
type MentorProfile struct {
	FullName   string `json:"full_name,omitempty"`
	Languages  string `json:"languages,omitempty"`
	Services   string `json:"services,omitempty"`
	PriceType  string `json:"price_type,omitempty"`
	WebsiteURL string `json:"website_url,omitempty"`
}

// Mentor is a processed mentor row. The source sheet carries no numeric
// Telegram id for mentors, so none is ever stored for them.
type Mentor struct {
	GithubURL      string        `json:"github_url,omitempty"`
	TelegramHandle string        `json:"telegram_username"`
	Profile        MentorProfile `json:"profile"`
}

// Project is a processed project row. The author is identified by GitHub URL
// until the linking phase resolves it to a user id. SubmittedAt is the period
// carried forward from the most recent period-header row.
type Project struct {
	Name            string     `json:"name"`
	Language        string     `json:"language,omitempty"`
	RepositoryURL   string     `json:"repository_url,omitempty"`
	AuthorGithubURL string     `json:"author_github_url"`
	SubmittedAt     *time.Time `json:"submission_date,omitempty"`
}

// Review is a processed review row. The target project is referenced by name
// and the reviewing mentor by Telegram handle; both are resolved during
// linking. RepositoryURL is kept for diagnostics only.
type Review struct {
	ProjectName   string     `json:"project_name"`
	MentorHandle  string     `json:"mentor_telegram"`
	RepositoryURL string     `json:"repository_url,omitempty"`
	PeriodAt      *time.Time `json:"period_date,omitempty"`
	ReviewType    string     `json:"review_type,omitempty"`
	ReviewURL     string     `json:"review_url,omitempty"`
}

// SponsoredReview is a processed financial row. MentorIdentifier keeps the raw
// "@handle" form; ProjectName is derived from the trailing segment of the
// GitHub URL. Currency is fixed to USD by the source data convention.
type SponsoredReview struct {
	Period           string  `json:"period,omitempty"`
	MentorIdentifier string  `json:"mentor_identifier"`
	ProjectGithubURL string  `json:"project_github_url"`
	ProjectName      string  `json:"project_name"`
	MessageURL       string  `json:"telegram_message_url,omitempty"`
	Cost             float64 `json:"cost"`
	Currency         string  `json:"currency"`
	PaymentStatus    string  `json:"payment_status"`
}

// ProcessedData holds the filtered, normalized record lists for one run.
type ProcessedData struct {
	Students         []Student         `json:"students"`
	Mentors          []Mentor          `json:"mentors"`
	Projects         []Project         `json:"projects"`
	Reviews          []Review          `json:"reviews"`
	SponsoredReviews []SponsoredReview `json:"sponsored_reviews"`
}

// EntityStats are the per-entity counters accumulated while processing one
// raw row collection. LinkingErrors is seeded to zero here and filled in by
// the import phase.
type EntityStats struct {
	Total            int `json:"total"`
	PassedFilter     int `json:"passed_filter,omitempty"`
	Imported         int `json:"imported"`
	ValidationErrors int `json:"validation_errors,omitempty"`
	LinkingErrors    int `json:"linking_errors,omitempty"`
}

// Stats aggregates processing counters across all five entity types.
type Stats struct {
	Students         EntityStats `json:"students"`
	Mentors          EntityStats `json:"mentors"`
	Projects         EntityStats `json:"projects"`
	Reviews          EntityStats `json:"reviews"`
	SponsoredReviews EntityStats `json:"sponsored_reviews"`
}

// Result is the sole interface between the processing pipeline and both the
// dry-run mode and the persistence stage.
type Result struct {
	Timestamp time.Time     `json:"timestamp"`
	Data      ProcessedData `json:"processed_data"`
	Stats     Stats         `json:"statistics"`
}

// RawData holds the raw string rows fetched from the spreadsheet source,
// one collection per logical range. A failed fetch leaves its collection
// empty rather than failing the run.
type RawData struct {
	Students         [][]string `json:"students"`
	Mentors          [][]string `json:"mentors"`
	Projects         [][]string `json:"projects"`
	Reviews          [][]string `json:"reviews"`
	SponsoredReviews [][]string `json:"sponsored_reviews,omitempty"`
}
