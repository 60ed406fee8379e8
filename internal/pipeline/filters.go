package pipeline

// Entity eligibility predicates, applied after extraction. These encode the
// minimal identity each record type needs to survive into the linking phase.
// Rejections are logged by the processor with the offending identifiers; they
// never abort the run.

// studentEligible requires a GitHub URL or a Telegram handle.
func studentEligible(githubURL, handle string) bool {
	return githubURL != "" || handle != ""
}

// mentorEligible requires a Telegram handle; GitHub is optional for mentors.
func mentorEligible(handle string) bool {
	return handle != ""
}

// projectEligible requires both a name and an author GitHub URL.
func projectEligible(name, authorGithubURL string) bool {
	return name != "" && authorGithubURL != ""
}

// reviewEligible requires a mentor handle plus either a project name or an
// author GitHub URL to link against.
func reviewEligible(mentorHandle, projectName, authorGithubURL string) bool {
	if mentorHandle == "" {
		return false
	}
	return projectName != "" || authorGithubURL != ""
}
