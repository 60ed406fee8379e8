package importer

import (
	"time"

	"github.com/mentorhub/data-importer/internal/model"
)

// Report is the final artifact of a completed import run, combining the
// processing counters with the import counters.
type Report struct {
	Timestamp            time.Time   `json:"timestamp"`
	Status               string      `json:"status"`
	ProcessingStatistics model.Stats `json:"processing_statistics"`
	ImportStatistics     Outcome     `json:"import_statistics"`
	Success              bool        `json:"success"`
	StudentsSuccessRate  float64     `json:"students_success_rate,omitempty"`
	MentorsSuccessRate   float64     `json:"mentors_success_rate,omitempty"`
}

// BuildReport assembles the report for one run. Success rates compare users
// created against users that passed the processing filter.
func BuildReport(result *model.Result, outcome Outcome) Report {
	report := Report{
		Timestamp:            time.Now().UTC(),
		Status:               "completed",
		ProcessingStatistics: result.Stats,
		ImportStatistics:     outcome,
		Success:              true,
	}

	if passed := result.Stats.Students.PassedFilter; passed > 0 {
		report.StudentsSuccessRate = float64(outcome.Students.Created) / float64(passed)
	}
	if passed := result.Stats.Mentors.PassedFilter; passed > 0 {
		report.MentorsSuccessRate = float64(outcome.Mentors.Created) / float64(passed)
	}

	return report
}
