// Package pipeline runs extraction, normalization, and filtering over the raw
// spreadsheet rows for all five entity types, producing the processed record
// lists and statistics consumed by both dry-run mode and the import stage.
package pipeline

import (
	"log/slog"
	"strings"
	"time"

	"github.com/mentorhub/data-importer/internal/model"
	"github.com/mentorhub/data-importer/internal/normalize"
)

// Minimum column counts per entity type. Shorter rows are skipped before
// field extraction.
const (
	minStudentColumns   = 1
	minMentorColumns    = 4
	minProjectColumns   = 8
	minReviewColumns    = 8
	minSponsoredColumns = 5
)

// sponsoredHeaderKeywords mark header-like rows in the financial sheet, which
// mixes headers and period markers in with the data rows.
var sponsoredHeaderKeywords = []string{"период", "github", "telegram", "стоимость", "ревью", "месяц"}

// Processor turns raw rows into processed records. Entity types are handled
// in a fixed order because later types link against identities produced by
// earlier ones.
type Processor struct {
	log             *slog.Logger
	financialImport bool
}

// NewProcessor creates a Processor. financialImport gates the sponsored
// reviews branch.
func NewProcessor(financialImport bool) *Processor {
	return &Processor{
		log:             slog.Default(),
		financialImport: financialImport,
	}
}

// Process runs the full pipeline over one fetched dataset.
func (p *Processor) Process(raw model.RawData) *model.Result {
	p.log.Info("starting data processing")

	result := &model.Result{Timestamp: time.Now().UTC()}

	result.Data.Students = p.processStudents(raw.Students, &result.Stats.Students)
	result.Data.Mentors = p.processMentors(raw.Mentors, &result.Stats.Mentors)
	result.Data.Projects = p.processProjects(raw.Projects, &result.Stats.Projects)
	result.Data.Reviews = p.processReviews(raw.Reviews, &result.Stats.Reviews)

	if p.financialImport {
		result.Data.SponsoredReviews = p.processSponsoredReviews(raw.SponsoredReviews, &result.Stats.SponsoredReviews)
	}

	p.log.Info("data processing completed",
		"students", result.Stats.Students.PassedFilter,
		"mentors", result.Stats.Mentors.PassedFilter,
		"projects", len(result.Data.Projects),
		"reviews", len(result.Data.Reviews),
		"sponsored_reviews", len(result.Data.SponsoredReviews),
	)

	return result
}

// normalizeGithub adapts normalize.GithubURL to the ColumnSpec signature.
func normalizeGithub(raw string) (string, bool) { return normalize.GithubURL(raw) }

// normalizeHandle adapts normalize.TelegramHandle to the ColumnSpec signature.
func normalizeHandle(raw string) (string, bool) { return normalize.TelegramHandle(raw) }

func (p *Processor) processStudents(rows [][]string, stats *model.EntityStats) []model.Student {
	p.log.Info("processing students", "total_rows", len(rows))
	stats.Total = len(rows)

	schema := []ColumnSpec{
		{Name: "github_url", Index: 0, Normalize: normalizeGithub},
		{Name: "telegram_user_id", Index: 1},
		{Name: "telegram_username", Index: 2, Normalize: normalizeHandle},
	}

	students := make([]model.Student, 0, len(rows))
	for _, row := range rows {
		if len(row) < minStudentColumns {
			p.log.Warn("student row too short", "length", len(row))
			continue
		}

		fields, failed := extractRow(row, schema)
		if len(failed) > 0 {
			p.log.Debug("student fields rejected by normalizer", "fields", failed)
		}

		if !studentEligible(fields["github_url"], fields["telegram_username"]) {
			p.log.Warn("student filtered out - no identifiers",
				"github_url", fields["github_url"],
				"telegram_username", fields["telegram_username"],
			)
			continue
		}

		student := model.Student{
			GithubURL:      fields["github_url"],
			TelegramHandle: fields["telegram_username"],
		}
		if id, ok := normalize.TelegramUserID(fields["telegram_user_id"]); ok {
			student.TelegramUserID = &id
		}
		students = append(students, student)
	}

	stats.PassedFilter = len(students)
	p.log.Info("students processed", "passed_filter", len(students))
	return students
}

func (p *Processor) processMentors(rows [][]string, stats *model.EntityStats) []model.Mentor {
	p.log.Info("processing mentors", "total_rows", len(rows))
	stats.Total = len(rows)

	// Column B holds sequence numbers, not identifiers, so it is skipped.
	schema := []ColumnSpec{
		{Name: "github_url", Index: 0, Normalize: normalizeGithub},
		{Name: "full_name", Index: 2},
		{Name: "telegram_username", Index: 3, Normalize: normalizeHandle},
		{Name: "languages", Index: 4},
		{Name: "services", Index: 5},
		{Name: "price_type", Index: 6},
		{Name: "website_url", Index: 7},
	}

	mentors := make([]model.Mentor, 0, len(rows))
	for _, row := range rows {
		if len(row) < minMentorColumns {
			p.log.Warn("mentor row too short", "length", len(row))
			continue
		}

		fields, failed := extractRow(row, schema)
		if len(failed) > 0 {
			p.log.Debug("mentor fields rejected by normalizer", "fields", failed)
		}

		if !mentorEligible(fields["telegram_username"]) {
			p.log.Warn("mentor filtered out - no telegram handle",
				"github_url", fields["github_url"],
			)
			continue
		}

		mentors = append(mentors, model.Mentor{
			GithubURL:      fields["github_url"],
			TelegramHandle: fields["telegram_username"],
			Profile: model.MentorProfile{
				FullName:   fields["full_name"],
				Languages:  fields["languages"],
				Services:   fields["services"],
				PriceType:  fields["price_type"],
				WebsiteURL: fields["website_url"],
			},
		})
	}

	stats.PassedFilter = len(mentors)
	p.log.Info("mentors processed", "passed_filter", len(mentors))
	return mentors
}

func (p *Processor) processProjects(rows [][]string, stats *model.EntityStats) []model.Project {
	p.log.Info("processing projects", "total_rows", len(rows))
	stats.Total = len(rows)

	schema := []ColumnSpec{
		{Name: "name", Index: 1},
		{Name: "language", Index: 2},
		{Name: "repository_url", Index: 4},
		{Name: "author_github_url", Index: 6, Normalize: normalizeGithub},
	}

	projects := make([]model.Project, 0, len(rows))
	var currentPeriod *time.Time

	for _, row := range rows {
		// Period-header rows update the period carried forward to the data
		// rows that follow them.
		if len(row) <= 2 || Cell(row, 1) == "" {
			currentPeriod = nil
			if t, ok := normalize.Period(Cell(row, 0)); ok {
				currentPeriod = &t
			}
			continue
		}

		if len(row) < minProjectColumns {
			p.log.Warn("project row too short", "length", len(row))
			continue
		}

		fields, failed := extractRow(row, schema)
		if len(failed) > 0 {
			p.log.Debug("project fields rejected by normalizer", "fields", failed)
		}

		if !projectEligible(fields["name"], fields["author_github_url"]) {
			continue
		}

		projects = append(projects, model.Project{
			Name:            fields["name"],
			Language:        fields["language"],
			RepositoryURL:   fields["repository_url"],
			AuthorGithubURL: fields["author_github_url"],
			SubmittedAt:     currentPeriod,
		})
	}

	stats.Imported = len(projects)
	p.log.Info("projects processed", "imported", len(projects))
	return projects
}

func (p *Processor) processReviews(rows [][]string, stats *model.EntityStats) []model.Review {
	p.log.Info("processing reviews", "total_rows", len(rows))
	stats.Total = len(rows)

	schema := []ColumnSpec{
		{Name: "period_date", Index: 0},
		{Name: "project_name", Index: 1},
		{Name: "repository_url", Index: 3},
		{Name: "review_type", Index: 4},
		{Name: "review_url", Index: 5},
		{Name: "mentor_telegram", Index: 7, Normalize: normalizeHandle},
	}

	reviews := make([]model.Review, 0, len(rows))
	for _, row := range rows {
		if len(row) < minReviewColumns {
			p.log.Warn("review row too short", "length", len(row))
			continue
		}

		fields, failed := extractRow(row, schema)
		if len(failed) > 0 {
			p.log.Debug("review fields rejected by normalizer", "fields", failed)
		}

		if !reviewEligible(fields["mentor_telegram"], fields["project_name"], "") {
			continue
		}

		review := model.Review{
			ProjectName:   fields["project_name"],
			MentorHandle:  fields["mentor_telegram"],
			RepositoryURL: fields["repository_url"],
			ReviewType:    fields["review_type"],
			ReviewURL:     fields["review_url"],
		}
		if t, ok := normalize.Period(fields["period_date"]); ok {
			review.PeriodAt = &t
		}
		reviews = append(reviews, review)
	}

	stats.Imported = len(reviews)
	p.log.Info("reviews processed", "imported", len(reviews))
	return reviews
}

// processSponsoredReviews handles the financial sheet, which interleaves
// header rows and period-only marker rows with the data. Layout (A:E):
// period, project GitHub URL, Telegram message URL, mentor @handle, cost.
func (p *Processor) processSponsoredReviews(rows [][]string, stats *model.EntityStats) []model.SponsoredReview {
	p.log.Info("processing sponsored reviews", "total_rows", len(rows))
	stats.Total = len(rows)

	reviews := make([]model.SponsoredReview, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || rowIsEmpty(row) {
			continue
		}

		if isSponsoredHeaderRow(row) || isPeriodOnlyRow(row) {
			continue
		}

		if len(row) < minSponsoredColumns {
			p.log.Warn("sponsored review row has insufficient columns", "length", len(row))
			stats.ValidationErrors++
			continue
		}

		period := Cell(row, 0)
		projectGithubURL := Cell(row, 1)
		messageURL := Cell(row, 2)
		mentorIdentifier := Cell(row, 3)
		costStr := Cell(row, 4)

		if mentorIdentifier == "" || projectGithubURL == "" || costStr == "" {
			p.log.Warn("sponsored review missing required fields",
				"mentor", mentorIdentifier,
				"project_github_url", projectGithubURL,
				"cost", costStr,
			)
			stats.ValidationErrors++
			continue
		}

		if !strings.HasPrefix(projectGithubURL, "https://github.com/") {
			p.log.Warn("sponsored review has invalid github url", "project_github_url", projectGithubURL)
			stats.ValidationErrors++
			continue
		}

		cost, ok := normalize.Cost(costStr)
		if !ok {
			p.log.Warn("sponsored review has invalid cost format", "cost", costStr)
			stats.ValidationErrors++
			continue
		}
		if cost < 0 {
			p.log.Warn("sponsored review has negative cost", "cost", cost)
			stats.ValidationErrors++
			continue
		}

		reviews = append(reviews, model.SponsoredReview{
			Period:           period,
			MentorIdentifier: mentorIdentifier,
			ProjectGithubURL: projectGithubURL,
			ProjectName:      normalize.RepoName(projectGithubURL),
			MessageURL:       messageURL,
			Cost:             cost,
			Currency:         "USD", // the source hardcodes USD regardless of the parsed symbol
			PaymentStatus:    "pending",
		})
		stats.Imported++
	}

	p.log.Info("sponsored reviews processed",
		"imported", stats.Imported,
		"validation_errors", stats.ValidationErrors,
	)
	return reviews
}

// isSponsoredHeaderRow reports whether the first cell looks like a column
// header rather than data.
func isSponsoredHeaderRow(row []string) bool {
	first := strings.ToLower(Cell(row, 0))
	if first == "" {
		return false
	}
	for _, kw := range sponsoredHeaderKeywords {
		if strings.Contains(first, kw) {
			return true
		}
	}
	return false
}

// isPeriodOnlyRow reports whether only the first cell is populated.
func isPeriodOnlyRow(row []string) bool {
	if Cell(row, 0) == "" {
		return false
	}
	for i := 1; i < len(row); i++ {
		if strings.TrimSpace(row[i]) != "" {
			return false
		}
	}
	return true
}
