package model

// CandidateProfile is the user_profile setting after coercion. List-valued
// fields (skills, target industries) arrive already joined with ", "; the
// settings repository handles both the array format and the legacy
// comma-separated-string format. Empty fields mean "not set"; the prompt
// builder supplies per-field fallbacks.
type CandidateProfile struct {
	Name             string
	TargetTitle      string
	YearsExperience  string
	Location         string
	RemotePreference string
	TargetSalary     int64
	TargetIndustries string
	Skills           string
	Background       string
}
