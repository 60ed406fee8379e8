package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/data-importer/internal/model"
)

func TestProcessStudentsFiltering(t *testing.T) {
	p := NewProcessor(true)

	raw := model.RawData{
		Students: [][]string{
			{"https://github.com/alice", "123456", "@Alice"},
			{"", "", "@bob"},
			{"carol", "", ""},
			{"", "", ""},              // no identifiers: filtered
			{"", "999", "not valid!"}, // handle rejected, no github: filtered
		},
	}

	result := p.Process(raw)

	require.Len(t, result.Data.Students, 3)
	assert.Equal(t, 5, result.Stats.Students.Total)
	assert.Equal(t, 3, result.Stats.Students.PassedFilter)

	alice := result.Data.Students[0]
	assert.Equal(t, "https://github.com/alice", alice.GithubURL)
	assert.Equal(t, "alice", alice.TelegramHandle)
	require.NotNil(t, alice.TelegramUserID)
	assert.Equal(t, int64(123456), *alice.TelegramUserID)

	// Bare username expands to a github.com URL.
	assert.Equal(t, "https://github.com/carol", result.Data.Students[2].GithubURL)
}

func TestProcessMentorsRequiresHandle(t *testing.T) {
	p := NewProcessor(true)

	raw := model.RawData{
		Mentors: [][]string{
			{"https://github.com/dave", "1", "Dave Grohl", "@dave", "Go, Python", "code review", "hourly", "https://dave.dev"},
			{"https://github.com/eve", "2", "Eve", "", "Go", "", "", ""}, // no handle: filtered
			{"short"}, // below minimum columns
		},
	}

	result := p.Process(raw)

	require.Len(t, result.Data.Mentors, 1)
	m := result.Data.Mentors[0]
	assert.Equal(t, "dave", m.TelegramHandle)
	assert.Equal(t, "Dave Grohl", m.Profile.FullName)
	assert.Equal(t, "Go, Python", m.Profile.Languages)
	assert.Equal(t, "hourly", m.Profile.PriceType)
	assert.Equal(t, "https://dave.dev", m.Profile.WebsiteURL)
}

func TestProcessProjectsPeriodHeaders(t *testing.T) {
	p := NewProcessor(true)

	raw := model.RawData{
		Projects: [][]string{
			{"Ноябрь, 2021"}, // period header
			{"", "proj1", "Go", "", "https://github.com/alice/proj1", "", "alice", ""},
			{"Декабрь, 2021", ""}, // period header (blank second cell)
			{"", "proj2", "Go", "", "https://github.com/bob/proj2", "", "bob", ""},
			{"", "", "Go", "", "", "", "carol", ""}, // no name: filtered
		},
	}

	result := p.Process(raw)

	require.Len(t, result.Data.Projects, 2)

	nov := time.Date(2021, time.November, 1, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2021, time.December, 1, 0, 0, 0, 0, time.UTC)

	p1 := result.Data.Projects[0]
	assert.Equal(t, "proj1", p1.Name)
	assert.Equal(t, "https://github.com/alice", p1.AuthorGithubURL)
	require.NotNil(t, p1.SubmittedAt)
	assert.True(t, p1.SubmittedAt.Equal(nov))

	p2 := result.Data.Projects[1]
	require.NotNil(t, p2.SubmittedAt)
	assert.True(t, p2.SubmittedAt.Equal(dec))
}

func TestProcessReviews(t *testing.T) {
	p := NewProcessor(true)

	raw := model.RawData{
		Reviews: [][]string{
			{"Ноябрь, 2021", "proj1", "", "https://github.com/alice/proj1", "Видео", "https://t.me/c/1/2", "", "@bob"},
			{"Ноябрь, 2021", "proj2", "", "", "Текст", "", "", ""}, // no mentor: filtered
			{"too", "short"},
		},
	}

	result := p.Process(raw)

	require.Len(t, result.Data.Reviews, 1)
	r := result.Data.Reviews[0]
	assert.Equal(t, "proj1", r.ProjectName)
	assert.Equal(t, "bob", r.MentorHandle)
	assert.Equal(t, "Видео", r.ReviewType)
	assert.Equal(t, "https://t.me/c/1/2", r.ReviewURL)
	require.NotNil(t, r.PeriodAt)
	assert.Equal(t, time.November, r.PeriodAt.Month())
}

func TestProcessSponsoredReviews(t *testing.T) {
	p := NewProcessor(true)

	raw := model.RawData{
		SponsoredReviews: [][]string{
			{"Период", "GitHub", "Telegram", "Ментор", "Стоимость"}, // header: skipped
			{"Январь, 2025", "", "", "", ""},                       // period-only: skipped
			{"", "", "", "", ""},                                   // empty: skipped
			{"Январь, 2025", "https://github.com/alice/proj1", "https://t.me/c/1/2", "@bob", "$20,00"},
			{"Январь, 2025", "https://github.com/alice/proj2.git", "https://t.me/c/1/3", "@bob", "₽1500"},
			{"Январь, 2025", "https://github.com/alice/proj3", "", "@bob", "abc"},     // bad cost
			{"Январь, 2025", "http://github.com/alice/proj4", "", "@bob", "$5"},      // bad url prefix
			{"Январь, 2025", "https://github.com/alice/proj5", "", "", "$5"},         // missing mentor
			{"Январь, 2025", "https://github.com/alice/proj6", "", "@bob", "-10,00"}, // negative cost
			{"Январь, 2025", "https://github.com/x/y"},                               // insufficient columns
		},
	}

	result := p.Process(raw)

	require.Len(t, result.Data.SponsoredReviews, 2)
	assert.Equal(t, 10, result.Stats.SponsoredReviews.Total)
	assert.Equal(t, 2, result.Stats.SponsoredReviews.Imported)
	assert.Equal(t, 5, result.Stats.SponsoredReviews.ValidationErrors)

	sr := result.Data.SponsoredReviews[0]
	assert.Equal(t, "@bob", sr.MentorIdentifier)
	assert.Equal(t, "proj1", sr.ProjectName)
	assert.Equal(t, 20.0, sr.Cost)
	assert.Equal(t, "USD", sr.Currency)
	assert.Equal(t, "pending", sr.PaymentStatus)

	// .git suffix dropped when deriving the project name from the URL.
	assert.Equal(t, "proj2", result.Data.SponsoredReviews[1].ProjectName)
	assert.Equal(t, 1500.0, result.Data.SponsoredReviews[1].Cost)
}

func TestProcessFinancialImportDisabled(t *testing.T) {
	p := NewProcessor(false)

	raw := model.RawData{
		SponsoredReviews: [][]string{
			{"Январь, 2025", "https://github.com/alice/proj1", "", "@bob", "$20,00"},
		},
	}

	result := p.Process(raw)
	assert.Empty(t, result.Data.SponsoredReviews)
	assert.Zero(t, result.Stats.SponsoredReviews.Total)
}

func TestExtractRowIndependentFailures(t *testing.T) {
	schema := []ColumnSpec{
		{Name: "github_url", Index: 0, Normalize: normalizeGithub},
		{Name: "telegram_username", Index: 1, Normalize: normalizeHandle},
		{Name: "note", Index: 2},
	}

	// Handle is invalid but the other fields still extract.
	fields, failed := extractRow([]string{"alice/proj", "not a handle!", " trimmed "}, schema)

	assert.Equal(t, "https://github.com/alice/proj", fields["github_url"])
	assert.Equal(t, "", fields["telegram_username"])
	assert.Equal(t, "trimmed", fields["note"])
	assert.Equal(t, []string{"telegram_username"}, failed)
}
