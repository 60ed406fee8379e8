package importer

import (
	"context"
	"errors"
	"strings"

	"github.com/mentorhub/data-importer/internal/model"
	"github.com/mentorhub/data-importer/internal/store"
)

// linkContext carries the identity maps built while importing one run. All
// state is per-run; nothing survives past the transaction.
type linkContext struct {
	githubToUser    map[string]int64
	telegramToUser  map[string]int64
	projectNameToID map[string]int64
	projects        []projectCandidate
	reviews         []reviewRef
	missingMentors  map[string]struct{}
}

func newLinkContext() *linkContext {
	return &linkContext{
		githubToUser:    make(map[string]int64),
		telegramToUser:  make(map[string]int64),
		projectNameToID: make(map[string]int64),
		missingMentors:  make(map[string]struct{}),
	}
}

// userRecord is the role-agnostic shape both students and mentors reduce to
// before the user upsert.
type userRecord struct {
	githubURL      string
	telegramHandle string
	telegramUserID *int64
	mentor         bool
}

func studentRecords(students []model.Student) []userRecord {
	out := make([]userRecord, 0, len(students))
	for _, s := range students {
		out = append(out, userRecord{
			githubURL:      s.GithubURL,
			telegramHandle: s.TelegramHandle,
			telegramUserID: s.TelegramUserID,
		})
	}
	return out
}

func mentorRecords(mentors []model.Mentor) []userRecord {
	out := make([]userRecord, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, userRecord{
			githubURL:      m.GithubURL,
			telegramHandle: m.TelegramHandle,
			mentor:         true,
		})
	}
	return out
}

// importUsers upserts one batch of users and attaches the given role. Lookup
// order is handle first, GitHub URL second; a per-record failure counts as an
// error and never aborts the batch.
func (im *Importer) importUsers(ctx context.Context, st Storage, records []userRecord, roleName string, lc *linkContext, out *EntityOutcome) error {
	im.log.Info("importing users", "role", roleName, "count", len(records))

	roleID, err := st.GetOrCreateRole(ctx, roleName)
	if err != nil {
		return err
	}

	for _, rec := range records {
		id, username, err := im.upsertUser(ctx, st, rec)
		if err != nil {
			im.log.Error("error importing user",
				"telegram_username", rec.telegramHandle,
				"github_url", rec.githubURL,
				"error", err,
			)
			out.Errors++
			continue
		}

		if err := attachRole(ctx, st, id, roleID); err != nil {
			im.log.Error("error attaching role", "user_id", id, "role", roleName, "error", err)
			out.Errors++
			continue
		}

		if rec.githubURL != "" {
			lc.githubToUser[rec.githubURL] = id
		}
		if username != "" {
			lc.telegramToUser[strings.ToLower(username)] = id
		}

		out.Created++
	}

	return nil
}

// upsertUser finds or creates the user for one record and returns its id and
// the handle actually stored (the existing handle wins over the incoming one).
func (im *Importer) upsertUser(ctx context.Context, st Storage, rec userRecord) (int64, string, error) {
	existing, found, err := findExistingUser(ctx, st, rec)
	if err != nil {
		return 0, "", err
	}

	if !found {
		params := store.UserParams{TelegramUserID: rec.telegramUserID}
		if rec.telegramHandle != "" {
			params.TelegramUsername = &rec.telegramHandle
		}
		if rec.githubURL != "" {
			params.GithubURL = &rec.githubURL
		}
		if rec.mentor {
			params.TelegramUserID = nil
		}

		id, err := st.CreateUser(ctx, params)
		if err != nil {
			return 0, "", err
		}
		return id, rec.telegramHandle, nil
	}

	params := store.UserParams{
		TelegramUsername: existing.TelegramUsername,
		TelegramUserID:   existing.TelegramUserID,
		GithubURL:        existing.GithubURL,
	}
	// Mentors never carry a numeric Telegram id; the sheet has none for them.
	if rec.mentor {
		params.TelegramUserID = nil
	} else if rec.telegramUserID != nil {
		params.TelegramUserID = rec.telegramUserID
	}
	if rec.githubURL != "" {
		params.GithubURL = &rec.githubURL
	}

	if err := st.UpdateUser(ctx, existing.ID, params); err != nil {
		return 0, "", err
	}

	username := ""
	if params.TelegramUsername != nil {
		username = *params.TelegramUsername
	}
	return existing.ID, username, nil
}

// findExistingUser looks the user up by handle, falling back to GitHub URL
// when the record has no handle.
func findExistingUser(ctx context.Context, st Storage, rec userRecord) (store.User, bool, error) {
	if rec.telegramHandle != "" {
		u, err := st.GetUserByTelegramUsername(ctx, rec.telegramHandle)
		if err == nil {
			return u, true, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return store.User{}, false, err
		}
		return store.User{}, false, nil
	}

	if rec.githubURL != "" {
		u, err := st.GetUserByGithubURL(ctx, rec.githubURL)
		if err == nil {
			return u, true, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return store.User{}, false, err
		}
	}

	return store.User{}, false, nil
}

// attachRole adds the role unless the user already carries it.
func attachRole(ctx context.Context, st Storage, userID, roleID int64) error {
	has, err := st.UserHasRole(ctx, userID, roleID)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	return st.AddUserRole(ctx, userID, roleID)
}

// importMentorProfiles writes the profile rows for mentors that made it into
// the users table. Mentors whose handle resolved to no user are skipped.
func (im *Importer) importMentorProfiles(ctx context.Context, st Storage, mentors []model.Mentor, lc *linkContext, out *EntityOutcome) {
	im.log.Info("importing mentor profiles", "count", len(mentors))

	for _, m := range mentors {
		userID, ok := lc.telegramToUser[strings.ToLower(m.TelegramHandle)]
		if !ok {
			continue
		}

		err := st.UpsertMentorProfile(ctx, store.MentorProfileParams{
			UserID:     userID,
			FullName:   m.Profile.FullName,
			Languages:  m.Profile.Languages,
			Services:   m.Profile.Services,
			PriceType:  m.Profile.PriceType,
			WebsiteURL: m.Profile.WebsiteURL,
		})
		if err != nil {
			im.log.Error("error importing mentor profile", "telegram_username", m.TelegramHandle, "error", err)
			out.Errors++
		}
	}
}

// importProjects creates project rows, resolving the author through the
// GitHub map built during the user phase.
func (im *Importer) importProjects(ctx context.Context, st Storage, projects []model.Project, lc *linkContext, out *EntityOutcome) {
	im.log.Info("importing projects", "count", len(projects))

	for _, p := range projects {
		authorID, ok := lc.githubToUser[p.AuthorGithubURL]
		if !ok {
			im.log.Warn("project author not found", "name", p.Name, "author_github_url", p.AuthorGithubURL)
			out.LinkingErrors++
			continue
		}

		params := store.ProjectParams{
			Name:        p.Name,
			AuthorID:    authorID,
			SubmittedAt: p.SubmittedAt,
		}
		if p.Language != "" {
			params.Language = &p.Language
		}
		if p.RepositoryURL != "" {
			params.RepositoryURL = &p.RepositoryURL
		}

		id, err := st.CreateProject(ctx, params)
		if err != nil {
			im.log.Error("error importing project", "name", p.Name, "error", err)
			out.Errors++
			continue
		}

		lc.projectNameToID[p.Name] = id
		lc.projects = append(lc.projects, projectCandidate{ID: id, Name: p.Name, RepositoryURL: p.RepositoryURL})
		out.Created++
	}
}

// importReviews creates review rows. Projects resolve by exact name and
// mentors by handle; a miss on either side is a linking error for that row.
func (im *Importer) importReviews(ctx context.Context, st Storage, reviews []model.Review, lc *linkContext, out *EntityOutcome) {
	im.log.Info("importing reviews", "count", len(reviews))

	for _, r := range reviews {
		mentorID, ok := lc.telegramToUser[strings.ToLower(r.MentorHandle)]
		if !ok {
			im.log.Warn("mentor not found for review", "mentor_telegram", r.MentorHandle)
			out.LinkingErrors++
			continue
		}

		projectID, ok := lc.projectNameToID[r.ProjectName]
		if !ok {
			im.log.Warn("project not found for review",
				"project_name", r.ProjectName,
				"repository_url", r.RepositoryURL,
			)
			out.LinkingErrors++
			continue
		}

		params := store.ReviewParams{
			ProjectID: projectID,
			MentorID:  mentorID,
			PeriodAt:  r.PeriodAt,
		}
		if r.ReviewType != "" {
			params.ReviewType = &r.ReviewType
		}
		if r.ReviewURL != "" {
			params.ReviewURL = &r.ReviewURL
		}

		id, err := st.CreateReview(ctx, params)
		if err != nil {
			im.log.Error("error importing review", "project_name", r.ProjectName, "error", err)
			out.Errors++
			continue
		}

		lc.reviews = append(lc.reviews, reviewRef{ID: id, MentorID: mentorID, ProjectID: projectID, ReviewURL: r.ReviewURL})
		out.Created++
	}
}

// importSponsoredReviews creates the financial rows. The mentor identifier
// must be an @handle; the project resolves through the URL matching cascade;
// the associated base review is optional.
func (im *Importer) importSponsoredReviews(ctx context.Context, st Storage, sponsored []model.SponsoredReview, lc *linkContext, out *EntityOutcome) {
	im.log.Info("importing sponsored reviews", "count", len(sponsored))

	for _, sr := range sponsored {
		mentorID, ok := im.resolveSponsoredMentor(sr, lc)
		if !ok {
			out.LinkingErrors++
			continue
		}

		projectID, ok := matchProject(lc.projects, sr.ProjectGithubURL, sr.ProjectName)
		if !ok {
			im.log.Info("project not found for sponsored review",
				"project_name", sr.ProjectName,
				"github_url", sr.ProjectGithubURL,
				"mentor_identifier", sr.MentorIdentifier,
			)
			out.LinkingErrors++
			continue
		}

		params := store.SponsoredReviewParams{
			MentorID:      mentorID,
			ProjectID:     projectID,
			Cost:          sr.Cost,
			Currency:      sr.Currency,
			PaymentStatus: sr.PaymentStatus,
		}
		if sr.MessageURL != "" {
			params.MessageURL = &sr.MessageURL
		}
		notes := "Period: Unknown"
		if sr.Period != "" {
			notes = "Period: " + sr.Period
		}
		params.Notes = &notes
		if reviewID, ok := findReviewForSponsored(lc.reviews, sr.MessageURL, mentorID, projectID); ok {
			params.ReviewID = &reviewID
		}

		if err := st.CreateSponsoredReview(ctx, params); err != nil {
			im.log.Error("error importing sponsored review", "project_name", sr.ProjectName, "error", err)
			out.Errors++
			continue
		}

		out.Created++
	}

	im.logSponsoredSummary(len(sponsored), out, lc)
}

// resolveSponsoredMentor maps the raw "@handle" identifier to a user id.
func (im *Importer) resolveSponsoredMentor(sr model.SponsoredReview, lc *linkContext) (int64, bool) {
	if !strings.HasPrefix(sr.MentorIdentifier, "@") {
		im.log.Warn("invalid mentor identifier format for sponsored review",
			"mentor_identifier", sr.MentorIdentifier,
			"project_name", sr.ProjectName,
		)
		return 0, false
	}

	username := strings.ToLower(strings.TrimPrefix(sr.MentorIdentifier, "@"))
	mentorID, ok := lc.telegramToUser[username]
	if !ok {
		lc.missingMentors[username] = struct{}{}
		im.log.Warn("mentor not found for sponsored review",
			"mentor_username", username,
			"project_name", sr.ProjectName,
			"github_url", sr.ProjectGithubURL,
		)
		return 0, false
	}
	return mentorID, true
}

func (im *Importer) logSponsoredSummary(total int, out *EntityOutcome, lc *linkContext) {
	if total == 0 {
		return
	}

	successRate := float64(out.Created) / float64(total) * 100

	im.log.Info("sponsored reviews import completed",
		"total_processed", total,
		"created", out.Created,
		"linking_errors", out.LinkingErrors,
		"success_rate_pct", successRate,
		"missing_mentors", len(lc.missingMentors),
	)

	if out.LinkingErrors > 0 {
		im.log.Warn("sponsored review linking errors detected",
			"error_rate_pct", float64(out.LinkingErrors)/float64(total)*100,
			"recommendations", []string{
				"add missing mentors to the users table with telegram usernames",
				"verify sponsored review github urls match the projects table",
				"check for repository renames or moves",
			},
		)
	}
}
