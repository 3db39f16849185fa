// Package prompt renders the fixed natural-language templates sent to the
// completion API. All functions are pure; every profile field has an explicit
// fallback so a sparse profile still produces a well-formed prompt.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhealy/applytrack/internal/model"
)

// MatchScoring asks the model to score a job against the candidate profile
// and return a single JSON object.
func MatchScoring(p model.CandidateProfile, j model.Job) string {
	return fmt.Sprintf(`You are an expert job match analyst. Evaluate how well this job fits the candidate and return a JSON object.

CANDIDATE PROFILE:
Name: %s
Target Title: %s
Years of Experience: %s
Location: %s
Remote Preference: %s
Target Salary: %s
Target Industries: %s
Key Skills: %s
Background: %s

JOB POSTING:
Title: %s
Company: %s
Location: %s
Remote: %s
Salary: %s
Description: %s
Requirements: %s

Return ONLY a valid JSON object (no markdown, no explanation) with this exact structure:
{
  "match_quality": "perfect" | "wider_net" | "no_match",
  "match_confidence": <integer 0-100>,
  "match_reasoning": "<detailed markdown analysis with ## sections>"
}

Definitions:
- "perfect": Direct match — correct title, experience level, industry, and compensation range
- "wider_net": Related but not ideal — slightly different title, minor over/under qualification, or secondary industry
- "no_match": Clearly unsuitable — wrong field, extreme level mismatch, or deal-breaking requirements

In match_reasoning, use markdown with sections like:
## Strengths
## Concerns
## Overall Assessment`,
		orDefault(p.Name, "Not set"),
		orDefault(p.TargetTitle, "Product Manager"),
		orDefault(p.YearsExperience, "Not specified"),
		orDefault(p.Location, "Not specified"),
		orDefault(p.RemotePreference, "any"),
		targetSalary(p.TargetSalary, "Not specified"),
		orDefault(p.TargetIndustries, "Not specified"),
		orDefault(p.Skills, "Not specified"),
		orDefault(p.Background, "Not provided"),
		j.Title,
		j.Company,
		orDefault(deref(j.Location), "Not specified"),
		yesNo(j.Remote),
		salaryRange(j),
		orDefault(deref(j.Description), "Not provided"),
		orDefault(deref(j.Requirements), "Not provided"),
	)
}

// CoverLetter asks the model for a tailored markdown letter. No JSON — the
// whole completion is the letter.
func CoverLetter(p model.CandidateProfile, j model.Job) string {
	remote := ""
	if j.Remote {
		remote = " (Remote)"
	}
	return fmt.Sprintf(`You are an expert cover letter writer specialising in product management roles. Write a compelling, tailored cover letter for the following job application.

CANDIDATE PROFILE:
Name: %s
Target Title: %s
Years of Experience: %s
Location: %s
Target Salary: %s
Key Skills: %s
Background: %s

JOB TO APPLY FOR:
Title: %s
Company: %s
Location: %s%s
Description: %s
Requirements: %s

Write a professional cover letter that:
1. Opens with a strong, specific hook that references the company and role
2. Highlights 2-3 of the candidate's most relevant achievements or skills for this specific job
3. Shows genuine interest in and knowledge of the company/role
4. Closes with a confident call to action
5. Keeps a warm, professional tone — not overly formal or stuffy
6. Is 3-4 paragraphs, approximately 300-400 words

Format the letter in markdown. Start directly with "Dear Hiring Manager," (no subject line or date).
Do not include a signature block — end after the closing paragraph.`,
		orDefault(p.Name, "The Candidate"),
		orDefault(p.TargetTitle, "Product Manager"),
		orDefault(p.YearsExperience, "several years"),
		p.Location,
		targetSalary(p.TargetSalary, "competitive"),
		p.Skills,
		orDefault(p.Background, "Experienced product manager"),
		j.Title,
		j.Company,
		deref(j.Location),
		remote,
		deref(j.Description),
		deref(j.Requirements),
	)
}

// PageExtraction asks for a single job object extracted from page text.
func PageExtraction(pageText string) string {
	return fmt.Sprintf(`Extract job posting details from the following web page text and return a JSON object.

PAGE TEXT:
%s

Return ONLY a valid JSON object (no markdown, no extra text) with this structure:
{
  "title": "<job title>",
  "company": "<company name>",
  "location": "<city, state or country, or null>",
  "remote": <true | false>,
  "description": "<full job description in markdown>",
  "requirements": "<requirements / qualifications section in markdown, or null>",
  "salary_min": <annual USD integer or null>,
  "salary_max": <annual USD integer or null>
}

Rules:
- If salary is hourly, convert to annual (×2080)
- If no salary is mentioned, use null for both salary fields
- location should be null if fully remote with no base location
- description should be comprehensive — include responsibilities, about the company, benefits etc.
- requirements should include education, experience, skills requirements`, pageText)
}

// FeedExtraction asks for an array of job objects from RSS/XML feed text,
// scoped to product-management-adjacent roles.
func FeedExtraction(feedText, feedURL string) string {
	return fmt.Sprintf(`Parse this RSS/XML job feed and extract all job listings. Return ONLY a valid JSON array (no markdown, no explanation).

FEED URL: %s
FEED CONTENT:
%s

Return a JSON array where each element has:
{
  "title": "<job title>",
  "company": "<company name or infer from feed if possible>",
  "url": "<direct link to job posting>",
  "location": "<city/state/country or null if fully remote>",
  "remote": <true | false>,
  "description": "<job description in plain text, max 1000 chars>",
  "requirements": "<requirements section in plain text, or null>",
  "salary_min": <annual USD integer or null>,
  "salary_max": <annual USD integer or null>
}

Rules:
- Only include product management, product owner, or closely related roles
- Skip engineering, design, sales, or unrelated roles
- If salary is hourly, multiply by 2080 for annual
- If the feed only lists job titles with links and no description, that's fine — use null for missing fields
- Return an empty array [] if no relevant jobs are found`, feedURL, feedText)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func targetSalary(n int64, fallback string) string {
	if n == 0 {
		return fallback
	}
	return "$" + formatThousands(n)
}

// formatThousands renders 125000 as "125,000".
func formatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

func salaryRange(j model.Job) string {
	if j.SalaryMin == nil && j.SalaryMax == nil {
		return "Not specified"
	}
	min, max := 0, 0
	if j.SalaryMin != nil {
		min = *j.SalaryMin
	}
	if j.SalaryMax != nil {
		max = *j.SalaryMax
	}
	return fmt.Sprintf("$%dk – $%dk", min/1000, max/1000)
}
