package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"jobtrail/internal/models"
)

// Completer is the one external dependency of the analysis pipeline: a text
// completion provider that takes a prompt and a token budget and returns
// raw text.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Analysis and bullet responses are small JSON objects; 1024 is plenty.
const analysisMaxTokens = 1024

// MatchAnalysis is the normalized result of scoring a resume against a job.
type MatchAnalysis struct {
	OverallScore    int      `json:"overallScore"`
	MatchingSkills  []string `json:"matchingSkills"`
	MissingSkills   []string `json:"missingSkills"`
	ExperienceGap   string   `json:"experienceGap"`
	Recommendations []string `json:"recommendations"`
}

type AnalysisService struct {
	LLM Completer
}

func NewAnalysisService(llm Completer) *AnalysisService {
	return &AnalysisService{LLM: llm}
}

const matchPromptFormat = `You are a professional job matching analyst. Analyze how well the candidate's resume matches the job posting.

RESUME:
%s

JOB TITLE: %s

JOB DESCRIPTION:
%s

%sAnalyze the match and return a JSON object with these fields:
- overallScore: number from 0-100 representing match percentage
- matchingSkills: array of skills that appear in both resume and job
- missingSkills: array of required skills not found in resume
- experienceGap: brief description of experience gaps
- recommendations: array of 2-3 suggestions to improve the match

Return ONLY valid JSON, no other text.`

// AnalyzeMatch scores resumeText against a job posting. jobRequirements may
// be empty, in which case the section is left out of the prompt entirely.
//
// Unparseable provider output is recovered with a fixed fallback so the UI
// always has something to render; only transport-level failures return an
// error.
func (s *AnalysisService) AnalyzeMatch(ctx context.Context, resumeText, jobTitle, jobDescription, jobRequirements string) (*MatchAnalysis, error) {
	if resumeText == "" {
		return nil, fmt.Errorf("resume text is required")
	}
	if jobDescription == "" {
		return nil, fmt.Errorf("job description is required")
	}

	requirementsSection := ""
	if jobRequirements != "" {
		requirementsSection = fmt.Sprintf("JOB REQUIREMENTS:\n%s\n\n", jobRequirements)
	}
	prompt := fmt.Sprintf(matchPromptFormat, resumeText, jobTitle, jobDescription, requirementsSection)

	raw, err := s.LLM.Complete(ctx, prompt, analysisMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("match analysis request failed: %w", err)
	}

	return parseMatchAnalysis(raw), nil
}

// parseMatchAnalysis normalizes the raw provider text into a MatchAnalysis.
// Any parse or shape problem yields the deterministic fallback, never an error.
func parseMatchAnalysis(raw string) *MatchAnalysis {
	jsonText := cleanJSON(raw)

	// Score decoded through a pointer so an absent field is distinguishable
	// from a legitimate 0.
	var decoded struct {
		OverallScore    *int     `json:"overallScore"`
		MatchingSkills  []string `json:"matchingSkills"`
		MissingSkills   []string `json:"missingSkills"`
		ExperienceGap   string   `json:"experienceGap"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(jsonText), &decoded); err != nil {
		log.Printf("Failed to parse match analysis JSON: %v. Raw: %s", err, raw)
		return fallbackAnalysis()
	}
	if decoded.OverallScore == nil || *decoded.OverallScore < 0 || *decoded.OverallScore > 100 {
		log.Printf("Match analysis response missing a usable overallScore. Raw: %s", raw)
		return fallbackAnalysis()
	}

	result := &MatchAnalysis{
		OverallScore:    *decoded.OverallScore,
		MatchingSkills:  decoded.MatchingSkills,
		MissingSkills:   decoded.MissingSkills,
		ExperienceGap:   decoded.ExperienceGap,
		Recommendations: decoded.Recommendations,
	}
	if result.MatchingSkills == nil {
		result.MatchingSkills = []string{}
	}
	if result.MissingSkills == nil {
		result.MissingSkills = []string{}
	}
	return result
}

func fallbackAnalysis() *MatchAnalysis {
	return &MatchAnalysis{
		OverallScore:    50,
		MatchingSkills:  []string{},
		MissingSkills:   []string{},
		ExperienceGap:   "Unable to analyze",
		Recommendations: []string{"Please ensure your resume is complete"},
	}
}

const bulletsPromptFormat = `You are an expert cover letter writer. Generate 5 powerful bullet points for a cover letter based on the resume and job posting.

CANDIDATE'S RESUME:
%s

JOB TITLE: %s
COMPANY: %s

JOB DESCRIPTION:
%s

Generate exactly 5 bullet points using this format:
- Start with a strong action verb (gerund form: -ing)
- Focus on a specific skill or activity relevant to the job
- Include context or purpose

Example format:
- "Translating complex financial data and regulations into simple, accessible user experiences."
- "Designing secure payment flows that balance fraud prevention with user convenience."
- "Building scalable design systems that maintain consistency across mobile, web, and physical touchpoints."

Match each bullet to a specific job requirement. Return ONLY a JSON array with objects containing:
- text: the bullet point text
- relevance: number 0-100 indicating how relevant it is to the job
- targetRequirement: the job requirement this bullet addresses

Return ONLY valid JSON array, no other text.`

// GenerateCoverLetterBullets drafts tailored cover-letter bullets. On
// unparseable output it returns an empty list; callers cannot tell that
// apart from the provider offering no bullets.
func (s *AnalysisService) GenerateCoverLetterBullets(ctx context.Context, resumeText, jobTitle, jobDescription, companyName string) ([]models.CoverLetterBullet, error) {
	prompt := fmt.Sprintf(bulletsPromptFormat, resumeText, jobTitle, companyName, jobDescription)

	raw, err := s.LLM.Complete(ctx, prompt, analysisMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("cover letter generation request failed: %w", err)
	}

	var bullets []models.CoverLetterBullet
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &bullets); err != nil {
		log.Printf("Failed to parse cover letter bullets JSON: %v. Raw: %s", err, raw)
		return []models.CoverLetterBullet{}, nil
	}
	return bullets, nil
}

// cleanJSON strips the markdown code fence the provider sometimes wraps
// around its output, with or without a language tag. Bare JSON passes
// through unchanged, so applying it twice is harmless.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
