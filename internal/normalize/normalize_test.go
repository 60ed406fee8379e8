package normalize

import (
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// TelegramHandle Tests
// ----------------------------------------------------------------------------

func TestTelegramHandle(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "plain handle",
			input:  "alice",
			want:   "alice",
			wantOK: true,
		},
		{
			name:   "leading at sign",
			input:  "@alice",
			want:   "alice",
			wantOK: true,
		},
		{
			name:   "mixed case lowered",
			input:  "@Alice_99",
			want:   "alice_99",
			wantOK: true,
		},
		{
			name:   "surrounding whitespace",
			input:  "  @bob  ",
			want:   "bob",
			wantOK: true,
		},
		{
			name:   "cyrillic rejected",
			input:  "алиса",
			wantOK: false,
		},
		{
			name:   "spaces inside rejected",
			input:  "alice smith",
			wantOK: false,
		},
		{
			name:   "hyphen rejected",
			input:  "alice-smith",
			wantOK: false,
		},
		{
			name:   "empty",
			input:  "",
			wantOK: false,
		},
		{
			name:   "only at sign",
			input:  "@",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TelegramHandle(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("TelegramHandle(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("TelegramHandle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Normalizing the output of TelegramHandle must return the same value.
func TestTelegramHandleIdempotent(t *testing.T) {
	inputs := []string{"alice", "@alice", " @Alice_99 ", "BOB", "@b0b_the_builder"}
	for _, in := range inputs {
		first, ok := TelegramHandle(in)
		if !ok {
			t.Fatalf("TelegramHandle(%q) unexpectedly invalid", in)
		}
		second, ok := TelegramHandle(first)
		if !ok || second != first {
			t.Errorf("TelegramHandle not idempotent: %q -> %q -> %q", in, first, second)
		}
	}
}

// ----------------------------------------------------------------------------
// GithubURL Tests
// ----------------------------------------------------------------------------

func TestGithubURL(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "full https url",
			input:  "https://github.com/alice/proj",
			want:   "https://github.com/alice/proj",
			wantOK: true,
		},
		{
			name:   "http upgraded",
			input:  "http://github.com/alice/proj",
			want:   "https://github.com/alice/proj",
			wantOK: true,
		},
		{
			name:   "protocol-less",
			input:  "github.com/alice/proj",
			want:   "https://github.com/alice/proj",
			wantOK: true,
		},
		{
			name:   "owner repo shorthand",
			input:  "alice/proj",
			want:   "https://github.com/alice/proj",
			wantOK: true,
		},
		{
			name:   "bare username",
			input:  "alice",
			want:   "https://github.com/alice",
			wantOK: true,
		},
		{
			name:   "gist url rehomed to owner",
			input:  "https://gist.github.com/alice/abc123",
			want:   "https://github.com/alice",
			wantOK: true,
		},
		{
			name:   "double prefix wrapping gist",
			input:  "https://github.com/https://gist.github.com/alice/abc123",
			want:   "https://github.com/alice",
			wantOK: true,
		},
		{
			name:   "double prefix wrapping github",
			input:  "https://github.com/https://github.com/alice/proj",
			want:   "https://github.com/alice/proj",
			wantOK: true,
		},
		{
			name:   "empty",
			input:  "",
			wantOK: false,
		},
		{
			name:   "whitespace only",
			input:  "   ",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GithubURL(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("GithubURL(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("GithubURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// CanonicalGithubURL Tests
// ----------------------------------------------------------------------------

// All URL variants describing the same owner/repo must canonicalize to the
// identical string.
func TestCanonicalGithubURLVariants(t *testing.T) {
	const want = "https://github.com/alice/proj"
	variants := []string{
		"alice/proj",
		"github.com/alice/proj",
		"http://github.com/alice/proj",
		"https://github.com/alice/proj",
		"https://github.com/alice/proj/",
		"https://github.com/alice/proj.git",
		"https://www.github.com/alice/proj",
		"https://github.com/alice/proj?tab=readme",
		"https://github.com/alice/proj#readme",
	}

	for _, v := range variants {
		got, ok := CanonicalGithubURL(v)
		if !ok {
			t.Errorf("CanonicalGithubURL(%q) unexpectedly invalid", v)
			continue
		}
		if got != want {
			t.Errorf("CanonicalGithubURL(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestCanonicalGithubURLInvalid(t *testing.T) {
	inputs := []string{"", "   ", "alice", "https://github.com/alice", "github.com/alice/"}
	for _, in := range inputs {
		if got, ok := CanonicalGithubURL(in); ok {
			t.Errorf("CanonicalGithubURL(%q) = %q, want invalid", in, got)
		}
	}
}

func TestCanonicalGithubURLExtraPathSegments(t *testing.T) {
	got, ok := CanonicalGithubURL("https://github.com/alice/proj/tree/main/src")
	if !ok || got != "https://github.com/alice/proj" {
		t.Errorf("deep path: got %q ok=%v, want https://github.com/alice/proj", got, ok)
	}
}

// ----------------------------------------------------------------------------
// Period Tests
// ----------------------------------------------------------------------------

func TestPeriod(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "month comma year",
			input:  "Ноябрь, 2021",
			want:   time.Date(2021, time.November, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "month year without comma",
			input:  "Ноябрь 2021",
			want:   time.Date(2021, time.November, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "january",
			input:  "Январь, 2025",
			want:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "garbage",
			input:  "garbage",
			wantOK: false,
		},
		{
			name:   "unknown month",
			input:  "November, 2021",
			wantOK: false,
		},
		{
			name:   "non-integer year",
			input:  "Ноябрь, год",
			wantOK: false,
		},
		{
			name:   "empty",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Period(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Period(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Period(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Cost Tests
// ----------------------------------------------------------------------------

func TestCost(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{
			name:   "dollars with decimal comma",
			input:  "$20,00",
			want:   20.0,
			wantOK: true,
		},
		{
			name:   "rubles",
			input:  "₽1500",
			want:   1500.0,
			wantOK: true,
		},
		{
			name:   "euros",
			input:  "€35,50",
			want:   35.5,
			wantOK: true,
		},
		{
			name:   "plain number",
			input:  "42",
			want:   42.0,
			wantOK: true,
		},
		{
			name:   "negative parses",
			input:  "-10",
			want:   -10.0,
			wantOK: true,
		},
		{
			name:   "non-numeric",
			input:  "abc",
			wantOK: false,
		},
		{
			name:   "empty",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Cost(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Cost(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Cost(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Helper Tests
// ----------------------------------------------------------------------------

func TestRepoName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://github.com/alice/proj", "proj"},
		{"https://github.com/alice/proj.git", "proj"},
		{"https://github.com/alice/proj/", "proj"},
		{"proj", "proj"},
	}
	for _, tt := range tests {
		if got := RepoName(tt.input); got != tt.want {
			t.Errorf("RepoName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestOwnerRepo(t *testing.T) {
	owner, repo, ok := OwnerRepo("https://github.com/Alice/Proj")
	if !ok || owner != "Alice" || repo != "Proj" {
		t.Errorf("OwnerRepo: got (%q, %q, %v)", owner, repo, ok)
	}
	if _, _, ok := OwnerRepo("https://example.com/x"); ok {
		t.Error("OwnerRepo accepted non-github URL")
	}
}

func TestTelegramUserID(t *testing.T) {
	if v, ok := TelegramUserID("123456"); !ok || v != 123456 {
		t.Errorf("TelegramUserID(123456) = %d, %v", v, ok)
	}
	for _, in := range []string{"", "12a4", "-5", "1.5"} {
		if _, ok := TelegramUserID(in); ok {
			t.Errorf("TelegramUserID(%q) unexpectedly valid", in)
		}
	}
}
