package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidates() []projectCandidate {
	return []projectCandidate{
		{ID: 1, Name: "my-proj", RepositoryURL: "https://github.com/alice/my-proj"},
		{ID: 2, Name: "my-proj-2", RepositoryURL: "https://github.com/alice/my-proj-2.git"},
		{ID: 3, Name: "calculator", RepositoryURL: "https://github.com/bob/calculator"},
		{ID: 4, Name: "no-url"},
	}
}

func TestMatchProjectExactURL(t *testing.T) {
	id, ok := matchProject(candidates(), "https://github.com/alice/my-proj", "")
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestMatchProjectCanonicalURL(t *testing.T) {
	// Stored URL carries a .git suffix; only canonical comparison matches it.
	id, ok := matchProject(candidates(), "https://github.com/alice/my-proj-2/", "")
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)

	// URL variants of the same repo all resolve.
	id, ok = matchProject(candidates(), "http://www.github.com/bob/calculator?tab=readme", "")
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)
}

func TestMatchProjectOwnerRepoPattern(t *testing.T) {
	projects := []projectCandidate{
		{ID: 7, Name: "calc", RepositoryURL: "https://gitlab.example.com/mirrors/bob/calculator"},
	}

	id, ok := matchProject(projects, "https://github.com/bob/calculator", "")
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestMatchProjectFuzzyName(t *testing.T) {
	projects := []projectCandidate{
		{ID: 9, Name: "Calculator"},
	}

	// No URL to match against, but the repo name is contained in the project name.
	id, ok := matchProject(projects, "https://github.com/bob/calculator", "calculator")
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)
}

func TestMatchProjectFuzzyBelowThreshold(t *testing.T) {
	projects := []projectCandidate{
		{ID: 9, Name: "a-very-long-project-name-with-many-words"},
	}

	// "ct" appears inside the name but the containment score stays below 0.3.
	_, ok := matchProject(projects, "https://github.com/bob/ct", "ct")
	assert.False(t, ok)
}

func TestMatchProjectNoOverlap(t *testing.T) {
	_, ok := matchProject(candidates(), "https://github.com/carol/unrelated", "unrelated")
	assert.False(t, ok)
}

func TestMatchProjectInvalidURL(t *testing.T) {
	_, ok := matchProject(candidates(), "not a url", "my-proj")
	assert.False(t, ok)

	_, ok = matchProject(candidates(), "", "my-proj")
	assert.False(t, ok)
}

func TestFindReviewForSponsoredExactURL(t *testing.T) {
	reviews := []reviewRef{
		{ID: 1, MentorID: 10, ProjectID: 20, ReviewURL: "https://t.me/c/1/1"},
		{ID: 2, MentorID: 11, ProjectID: 21, ReviewURL: "https://t.me/c/1/2"},
	}

	// Exact URL wins even when mentor/project differ.
	id, ok := findReviewForSponsored(reviews, "https://t.me/c/1/2", 10, 20)
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
}

func TestFindReviewForSponsoredLatestFallback(t *testing.T) {
	reviews := []reviewRef{
		{ID: 1, MentorID: 10, ProjectID: 20, ReviewURL: "https://t.me/c/1/1"},
		{ID: 2, MentorID: 10, ProjectID: 20, ReviewURL: "https://t.me/c/1/2"},
		{ID: 3, MentorID: 11, ProjectID: 20, ReviewURL: ""},
	}

	// No URL match: the most recent review by the same mentor and project wins.
	id, ok := findReviewForSponsored(reviews, "https://t.me/c/9/9", 10, 20)
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
}

func TestFindReviewForSponsoredNoMatch(t *testing.T) {
	reviews := []reviewRef{
		{ID: 1, MentorID: 10, ProjectID: 20},
	}

	_, ok := findReviewForSponsored(reviews, "", 99, 99)
	assert.False(t, ok)
}
