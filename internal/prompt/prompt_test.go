package prompt

import (
	"testing"

	"github.com/dhealy/applytrack/internal/model"
	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestMatchScoringFallbacks(t *testing.T) {
	got := MatchScoring(model.CandidateProfile{}, model.Job{Title: "PM", Company: "Acme"})

	assert.Contains(t, got, "Name: Not set")
	assert.Contains(t, got, "Target Title: Product Manager")
	assert.Contains(t, got, "Remote Preference: any")
	assert.Contains(t, got, "Target Salary: Not specified")
	assert.Contains(t, got, "Background: Not provided")
	assert.Contains(t, got, "Salary: Not specified")
	assert.Contains(t, got, "Remote: No")
}

func TestMatchScoringProfileValues(t *testing.T) {
	profile := model.CandidateProfile{
		Name:         "Dana",
		TargetSalary: 125000,
		Skills:       "roadmapping, discovery, SQL",
	}
	job := model.Job{
		Title:     "Senior PM",
		Company:   "Acme",
		Remote:    true,
		SalaryMin: intPtr(140000),
		SalaryMax: intPtr(180000),
	}

	got := MatchScoring(profile, job)

	assert.Contains(t, got, "Name: Dana")
	assert.Contains(t, got, "Target Salary: $125,000")
	assert.Contains(t, got, "Key Skills: roadmapping, discovery, SQL")
	assert.Contains(t, got, "Salary: $140k – $180k")
	assert.Contains(t, got, "Remote: Yes")
	assert.Contains(t, got, `"match_quality": "perfect" | "wider_net" | "no_match"`)
}

func TestCoverLetterFallbacks(t *testing.T) {
	got := CoverLetter(model.CandidateProfile{}, model.Job{Title: "PM", Company: "Acme"})

	assert.Contains(t, got, "Name: The Candidate")
	assert.Contains(t, got, "Years of Experience: several years")
	assert.Contains(t, got, "Target Salary: competitive")
	assert.Contains(t, got, "Background: Experienced product manager")
	assert.Contains(t, got, `Start directly with "Dear Hiring Manager,"`)
}

func TestCoverLetterRemoteSuffix(t *testing.T) {
	loc := "Berlin"
	got := CoverLetter(model.CandidateProfile{}, model.Job{
		Title: "PM", Company: "Acme", Location: &loc, Remote: true,
	})

	assert.Contains(t, got, "Location: Berlin (Remote)")
}

func TestPageExtractionEmbedsPageText(t *testing.T) {
	got := PageExtraction("We are hiring a product manager in Austin.")

	assert.Contains(t, got, "We are hiring a product manager in Austin.")
	assert.Contains(t, got, `"salary_min": <annual USD integer or null>`)
}

func TestFeedExtractionEmbedsURLAndText(t *testing.T) {
	got := FeedExtraction("<item>PM role</item>", "https://feed.test/rss")

	assert.Contains(t, got, "FEED URL: https://feed.test/rss")
	assert.Contains(t, got, "<item>PM role</item>")
	assert.Contains(t, got, "Return an empty array []")
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "950", formatThousands(950))
	assert.Equal(t, "1,000", formatThousands(1000))
	assert.Equal(t, "125,000", formatThousands(125000))
	assert.Equal(t, "1,250,000", formatThousands(1250000))
}
