package dto

import "encoding/json"

// JobCreateRequest is the body for manually adding a job.
type JobCreateRequest struct {
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	URL          string  `json:"url"`
	Location     *string `json:"location"`
	Remote       bool    `json:"remote"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	SalaryMin    *int    `json:"salary_min"`
	SalaryMax    *int    `json:"salary_max"`
}

// JobPatchRequest updates a job's pipeline status.
type JobPatchRequest struct {
	Status string `json:"status"`
}

// ImportURLRequest is the body for importing a posting by URL.
type ImportURLRequest struct {
	URL string `json:"url"`
}

// ApplyRequest records a manual application against a job.
type ApplyRequest struct {
	SubmissionMethod string  `json:"submission_method"`
	Notes            *string `json:"notes"`
}

// SettingUpsertRequest writes one settings row. The value is stored verbatim
// as JSON.
type SettingUpsertRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}
