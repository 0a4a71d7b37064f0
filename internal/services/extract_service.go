package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
)

// maxPageContent bounds how much scraped page text goes into the prompt.
const maxPageContent = 50000

// The extraction response echoes the full job description back as JSON, so
// it needs far more headroom than analysis. Too small a budget truncates
// the object mid-field and the whole page reads as not-a-job.
const extractMaxTokens = 2000

// ExtractedJob is what the extension gets back from LLM page extraction.
// When IsJobPage is false the rest of the fields are empty.
type ExtractedJob struct {
	IsJobPage bool `json:"isJobPage"`

	Title            string `json:"title"`
	CompanyName      string `json:"companyName"`
	Description      string `json:"description"`
	Requirements     string `json:"requirements"`
	Responsibilities string `json:"responsibilities"`
	Location         string `json:"location"`
	LocationType     string `json:"locationType"`
	SalaryMin        *int   `json:"salaryMin"`
	SalaryMax        *int   `json:"salaryMax"`
	SalaryCurrency   string `json:"salaryCurrency"`
	SalaryPeriod     string `json:"salaryPeriod"`
	EmploymentType   string `json:"employmentType"`
	ExperienceLevel  string `json:"experienceLevel"`
	SourceURL        string `json:"sourceUrl"`
	SourceSite       string `json:"sourceSite"`
}

const extractPromptFormat = `Extract job posting information from the following webpage content. If this is not a job posting page, respond with {"isJobPage": false}.

If it IS a job posting, extract the following information and respond with a JSON object:

{
  "isJobPage": true,
  "title": "Job title",
  "companyName": "Company name",
  "description": "Full job description text",
  "requirements": "Job requirements/qualifications (if separate from description)",
  "responsibilities": "Job responsibilities (if separate from description)",
  "location": "Job location",
  "locationType": "REMOTE" | "ONSITE" | "HYBRID" | null,
  "salaryMin": number or null,
  "salaryMax": number or null,
  "salaryCurrency": "USD" | "EUR" | etc or null,
  "salaryPeriod": "HOURLY" | "DAILY" | "WEEKLY" | "MONTHLY" | "YEARLY" | null,
  "employmentType": "FULL_TIME" | "PART_TIME" | "CONTRACT" | "INTERNSHIP" | "TEMPORARY" | null,
  "experienceLevel": "ENTRY" | "MID" | "SENIOR" | "LEAD" | "EXECUTIVE" | null
}

Page URL: %s
Page Title: %s

Page Content:
%s

Respond ONLY with the JSON object, no other text.`

// jsonObjectRe grabs the outermost {...} from the response. This path is
// deliberately looser than the analysis parser: extraction prompts get much
// longer responses and the model occasionally narrates around the JSON.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJobPosting asks the model whether the page is a job posting and, if
// so, pulls out the scan payload fields. Unparseable output comes back as a
// not-a-job-page result rather than an error.
func (s *AnalysisService) ExtractJobPosting(ctx context.Context, pageContent, pageURL, pageTitle string) (*ExtractedJob, error) {
	if len(pageContent) > maxPageContent {
		pageContent = pageContent[:maxPageContent]
	}
	prompt := fmt.Sprintf(extractPromptFormat, pageURL, pageTitle, pageContent)

	raw, err := s.LLM.Complete(ctx, prompt, extractMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("job extraction request failed: %w", err)
	}

	match := jsonObjectRe.FindString(raw)
	if match == "" {
		log.Printf("No JSON object in extraction response. Raw: %s", raw)
		return &ExtractedJob{IsJobPage: false}, nil
	}

	var extracted ExtractedJob
	if err := json.Unmarshal([]byte(match), &extracted); err != nil {
		log.Printf("Failed to parse extraction JSON: %v. Raw: %s", err, raw)
		return &ExtractedJob{IsJobPage: false}, nil
	}
	if !extracted.IsJobPage {
		return &ExtractedJob{IsJobPage: false}, nil
	}

	extracted.SourceURL = pageURL
	extracted.SourceSite = SourceSiteFromURL(pageURL)
	return &extracted, nil
}

var knownJobSites = []string{"linkedin", "indeed", "glassdoor", "dice", "ziprecruiter", "monster"}

// SourceSiteFromURL maps a posting URL to a short site label, falling back
// to the first hostname segment for anything unrecognized.
func SourceSiteFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "other"
	}
	host := strings.ToLower(u.Hostname())

	for _, site := range knownJobSites {
		if strings.Contains(host, site) {
			return site
		}
	}

	host = strings.TrimPrefix(host, "www.")
	if i := strings.Index(host, "."); i > 0 {
		return host[:i]
	}
	return host
}
