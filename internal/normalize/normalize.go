// Package normalize provides pure functions that canonicalize raw spreadsheet
// cell strings into stable matching keys.
//
// These functions handle the messy reality of human-entered sheet data:
//   - Telegram handles with @ prefixes, whitespace, and mixed case
//   - GitHub URLs in a dozen formats (bare usernames, owner/repo shorthand,
//     protocol variants, Gist URLs, double-prefix artifacts)
//   - Russian month-name periods ("Ноябрь, 2021")
//   - Costs with mixed currency symbols and decimal commas
//
// All functions are permissive-by-default: unparseable input yields
// (zero value, false), never an error.
package normalize

import (
	"strconv"
	"strings"
	"time"
)

// telegramHandle validates the character set of a normalized handle:
// letters, digits, and underscores only.
func isValidHandle(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// TelegramHandle normalizes a raw Telegram username: trims whitespace, strips
// a single leading @, and lower-cases. Returns false if the result contains
// anything outside [a-zA-Z0-9_].
func TelegramHandle(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "@")
	if !isValidHandle(s) {
		return "", false
	}
	return strings.ToLower(s), true
}

// GithubURL normalizes a raw GitHub reference into an https://github.com/...
// URL. It accepts full URLs, protocol-less github.com paths, owner/repo
// shorthand, bare usernames, and Gist URLs (re-homed under github.com/{owner}).
// It also repairs the known "double prefix" artifact where a GitHub prefix
// wraps another full URL.
func GithubURL(raw string) (string, bool) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", false
	}

	// Repair "https://github.com/https://..." double-prefix artifacts.
	if idx := strings.Index(url, "https://github.com/https://"); idx >= 0 {
		rest := url[idx+len("https://github.com/https://"):]
		if i := strings.Index(rest, "gist.github.com/"); i >= 0 {
			owner := firstSegment(rest[i+len("gist.github.com/"):])
			if owner == "" {
				return "", false
			}
			return "https://github.com/" + owner, true
		}
		if strings.HasPrefix(rest, "github.com/") {
			return "https://" + rest, true
		}
	}

	switch {
	case strings.HasPrefix(url, "https://github.com/"):
		return url, true
	case strings.HasPrefix(url, "http://github.com/"):
		return "https://" + strings.TrimPrefix(url, "http://"), true
	case strings.HasPrefix(url, "github.com/"):
		return "https://" + url, true
	case strings.HasPrefix(url, "https://gist.github.com/"):
		owner := firstSegment(strings.TrimPrefix(url, "https://gist.github.com/"))
		if owner == "" {
			return "", false
		}
		return "https://github.com/" + owner, true
	case strings.Contains(url, "/") && !strings.HasPrefix(url, "http"):
		// owner/repo shorthand
		return "https://github.com/" + url, true
	case !strings.HasPrefix(url, "http"):
		// bare username
		return "https://github.com/" + url, true
	}

	return "", false
}

// CanonicalGithubURL reduces a GitHub URL to the canonical matching form
// https://github.com/{owner}/{repo}. It strips protocol, www., .git suffix,
// trailing slash, fragment, and query, and requires at least an owner/repo
// path. Used only for cross-record matching; stricter than GithubURL.
func CanonicalGithubURL(raw string) (string, bool) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", false
	}

	// Drop double-prefix wrapping before extracting the path.
	if idx := strings.Index(url, "https://github.com/https://"); idx >= 0 {
		url = url[idx+len("https://github.com/https://"):]
	}

	var path string
	if i := strings.LastIndex(url, "github.com/"); i >= 0 {
		path = url[i+len("github.com/"):]
		path = strings.TrimPrefix(path, "https://")
		path = strings.TrimPrefix(path, "http://")
		path = strings.TrimPrefix(path, "www.")
	} else {
		// Assume the value is already an owner/repo path.
		path = url
	}

	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSuffix(path, "/")
	path = strings.TrimSuffix(path, ".git")

	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return "https://github.com/" + parts[0] + "/" + parts[1], true
}

// OwnerRepo extracts the owner and repo tokens from a canonical GitHub URL.
func OwnerRepo(canonicalURL string) (owner, repo string, ok bool) {
	i := strings.Index(canonicalURL, "github.com/")
	if i < 0 {
		return "", "", false
	}
	parts := strings.Split(canonicalURL[i+len("github.com/"):], "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// RepoName returns the trailing path segment of a URL with any .git suffix
// removed. Used to derive a project name from a repository URL.
func RepoName(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		url = url[i+1:]
	}
	return strings.TrimSuffix(url, ".git")
}

// ruMonths maps the Russian month-name vocabulary used by the source sheets
// to month numbers.
var ruMonths = map[string]time.Month{
	"Январь":   time.January,
	"Февраль":  time.February,
	"Март":     time.March,
	"Апрель":   time.April,
	"Май":      time.May,
	"Июнь":     time.June,
	"Июль":     time.July,
	"Август":   time.August,
	"Сентябрь": time.September,
	"Октябрь":  time.October,
	"Ноябрь":   time.November,
	"Декабрь":  time.December,
}

// Period parses a Russian month-name + year string ("Ноябрь, 2021") into the
// first day of that month. Bad token counts, unknown month names, and
// non-integer years all yield false.
func Period(raw string) (time.Time, bool) {
	s := strings.ReplaceAll(raw, ",", "")
	parts := strings.Fields(s)
	if len(parts) < 2 {
		return time.Time{}, false
	}
	month, ok := ruMonths[parts[0]]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

// costReplacer strips the currency symbols seen in the financial sheet and
// converts the decimal comma to a dot.
var costReplacer = strings.NewReplacer("$", "", "€", "", "₽", "", ",", ".")

// Cost parses a monetary cell such as "$20,00" or "₽1500" into a plain float.
// Returns false for non-numeric input; sign validation is left to the caller.
func Cost(raw string) (float64, bool) {
	s := strings.TrimSpace(costReplacer.Replace(strings.TrimSpace(raw)))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// TelegramUserID parses a numeric Telegram user id cell. Only pure digit
// strings are accepted.
func TelegramUserID(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// firstSegment returns everything before the first '/' of a path.
func firstSegment(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
