package dtos

// JobScanRequest is the payload the browser extension posts after scanning
// a job page. Optional fields mirror what the extractor can pull out.
type JobScanRequest struct {
	Title       string `json:"title" binding:"required"`
	CompanyName string `json:"companyName" binding:"required"`
	Description string `json:"description" binding:"required"`
	SourceURL   string `json:"sourceUrl" binding:"required"`
	SourceSite  string `json:"sourceSite" binding:"required"`

	// Optional Fields
	CompanyLogoURL   string `json:"companyLogoUrl"`
	CompanyWebsite   string `json:"companyWebsite"`
	Requirements     string `json:"requirements"`
	Responsibilities string `json:"responsibilities"`
	Location         string `json:"location"`
	LocationType     string `json:"locationType"` // REMOTE | ONSITE | HYBRID
	SalaryMin        *int   `json:"salaryMin"`
	SalaryMax        *int   `json:"salaryMax"`
	SalaryCurrency   string `json:"salaryCurrency"`
	SalaryPeriod     string `json:"salaryPeriod"`
	EmploymentType   string `json:"employmentType"`
	ExperienceLevel  string `json:"experienceLevel"`
}

// JobExtractionRequest carries raw page content for LLM extraction.
type JobExtractionRequest struct {
	PageContent string `json:"pageContent" binding:"required"`
	PageURL     string `json:"pageUrl" binding:"required"`
	PageTitle   string `json:"pageTitle"`
}
