package importer

import (
	"strings"

	"github.com/mentorhub/data-importer/internal/normalize"
)

// projectCandidate is the in-memory view of a project created earlier in the
// run, kept so sponsored review linking never has to read back from the
// database mid-transaction.
type projectCandidate struct {
	ID            int64
	Name          string
	RepositoryURL string
}

// fuzzyThreshold is the minimum containment score accepted by the name-based
// fallback strategy.
const fuzzyThreshold = 0.3

// matchProject resolves a GitHub URL (plus an optional project name) to a
// project created in this run. Strategies are tried in order of strictness:
//
//  1. stored repository URL equals the canonical search URL
//  2. canonical forms of both URLs are equal
//  3. owner and repo both appear as substrings of the stored URL
//  4. containment-based fuzzy match on the project name
func matchProject(projects []projectCandidate, githubURL, projectName string) (int64, bool) {
	canonical, ok := normalize.CanonicalGithubURL(githubURL)
	if !ok {
		return 0, false
	}

	for _, p := range projects {
		if p.RepositoryURL == canonical {
			return p.ID, true
		}
	}

	for _, p := range projects {
		if p.RepositoryURL == "" {
			continue
		}
		if c, ok := normalize.CanonicalGithubURL(p.RepositoryURL); ok && c == canonical {
			return p.ID, true
		}
	}

	if owner, repo, ok := normalize.OwnerRepo(canonical); ok {
		ownerLower := strings.ToLower(owner)
		repoLower := strings.ToLower(repo)
		for _, p := range projects {
			urlLower := strings.ToLower(p.RepositoryURL)
			if urlLower != "" && strings.Contains(urlLower, ownerLower) && strings.Contains(urlLower, repoLower) {
				return p.ID, true
			}
		}
	}

	if projectName != "" {
		if id, ok := matchProjectByName(projects, canonical, projectName); ok {
			return id, true
		}
	}

	return 0, false
}

// matchProjectByName is the fuzzy fallback. A candidate qualifies when the
// search name or the repo name is contained in its name (or vice versa), and
// is accepted when the forward containment score clears the threshold. Score
// is the summed length ratio of each contained term to the candidate name.
func matchProjectByName(projects []projectCandidate, canonicalURL, projectName string) (int64, bool) {
	searchName := strings.ToLower(strings.TrimSpace(projectName))
	repoName := strings.ToLower(normalize.RepoName(canonicalURL))

	for _, p := range projects {
		candidate := strings.ToLower(strings.TrimSpace(p.Name))
		if candidate == "" {
			continue
		}

		related := strings.Contains(candidate, searchName) ||
			strings.Contains(searchName, candidate) ||
			strings.Contains(candidate, repoName) ||
			strings.Contains(repoName, candidate)
		if !related {
			continue
		}

		var score float64
		if strings.Contains(candidate, searchName) {
			score += float64(len(searchName)) / float64(len(candidate))
		}
		if strings.Contains(candidate, repoName) {
			score += float64(len(repoName)) / float64(len(candidate))
		}

		if score > fuzzyThreshold {
			return p.ID, true
		}
	}

	return 0, false
}

// reviewRef is the in-memory view of a review created earlier in the run,
// used to associate sponsored reviews without database reads.
type reviewRef struct {
	ID        int64
	MentorID  int64
	ProjectID int64
	ReviewURL string
}

// findReviewForSponsored associates a sponsored review with a base review.
// An exact message URL match wins outright; otherwise the most recently
// created review by the same mentor for the same project is used. Returns
// false when no review qualifies, which is not an error.
func findReviewForSponsored(reviews []reviewRef, messageURL string, mentorID, projectID int64) (int64, bool) {
	if messageURL != "" {
		for _, r := range reviews {
			if r.ReviewURL != "" && r.ReviewURL == messageURL {
				return r.ID, true
			}
		}
	}

	// Latest first: reviews were appended in creation order.
	for i := len(reviews) - 1; i >= 0; i-- {
		if reviews[i].MentorID == mentorID && reviews[i].ProjectID == projectID {
			return reviews[i].ID, true
		}
	}

	return 0, false
}
