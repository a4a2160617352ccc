package entity

// Scores holds the four audit category scores, each an integer percentage.
type Scores struct {
	Performance   int `json:"performance"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"best_practices"`
	SEO           int `json:"seo"`
}

// AuditOutcome is the result of one JobSpec. Exactly one variant is
// populated: a success carries artifact paths and all four scores, a
// failure carries only an error message. Use the constructors; do not
// build outcomes by hand.
type AuditOutcome struct {
	Success        bool    `json:"success"`
	ReportPath     string  `json:"report_path,omitempty"`
	ScreenshotPath string  `json:"screenshot_path,omitempty"`
	Scores         *Scores `json:"scores,omitempty"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

// NewSuccessOutcome builds a success outcome. screenshotPath may be empty
// when screenshot capture degraded; scores are always required.
func NewSuccessOutcome(reportPath, screenshotPath string, scores Scores) *AuditOutcome {
	return &AuditOutcome{
		Success:        true,
		ReportPath:     reportPath,
		ScreenshotPath: screenshotPath,
		Scores:         &scores,
	}
}

// NewFailureOutcome builds a failure outcome carrying only the error text.
func NewFailureOutcome(message string) *AuditOutcome {
	return &AuditOutcome{
		Success:      false,
		ErrorMessage: message,
	}
}
