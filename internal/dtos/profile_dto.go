package dtos

// ProfileUpdateRequest edits the singleton profile. Nil fields are left
// untouched, so a partial update never wipes the stored resume.
type ProfileUpdateRequest struct {
	Name                *string `json:"name"`
	Email               *string `json:"email"`
	Phone               *string `json:"phone"`
	LinkedinURL         *string `json:"linkedinUrl"`
	GithubURL           *string `json:"githubUrl"`
	PortfolioURL        *string `json:"portfolioUrl"`
	ResumeText          *string `json:"resumeText"`
	CoverLetterTemplate *string `json:"coverLetterTemplate"`
}

type LoginRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}
