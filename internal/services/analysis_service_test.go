package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter scripts provider responses in order and records the prompts
// and token budgets it was sent.
type fakeCompleter struct {
	responses []string
	err       error
	prompts   []string
	budgets   []int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.budgets = append(f.budgets, maxTokens)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("fakeCompleter: no scripted response left")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

const matchJSON = `{"overallScore":60,"matchingSkills":["Python"],"missingSkills":["Kubernetes"],"experienceGap":"No container orchestration experience","recommendations":["Learn Kubernetes basics","Highlight Docker work"]}`

func TestAnalyzeMatchParsesProviderJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"bare json", matchJSON},
		{"json fence with language tag", "```json\n" + matchJSON + "\n```"},
		{"plain fence", "```\n" + matchJSON + "\n```"},
		{"fence with surrounding whitespace", "  \n```json\n" + matchJSON + "\n```\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeCompleter{responses: []string{tt.response}}
			svc := NewAnalysisService(llm)

			result, err := svc.AnalyzeMatch(context.Background(),
				"5 years Python, AWS, Docker",
				"Backend Engineer",
				"Seeking backend engineer with Python and Kubernetes experience",
				"")
			require.NoError(t, err)

			assert.Equal(t, 60, result.OverallScore)
			assert.Equal(t, []string{"Python"}, result.MatchingSkills)
			assert.Equal(t, []string{"Kubernetes"}, result.MissingSkills)
			assert.Equal(t, "No container orchestration experience", result.ExperienceGap)
			assert.Len(t, result.Recommendations, 2)
		})
	}
}

func TestAnalyzeMatchFallsBackOnUnparseableOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"plain prose", "I'm sorry, I can't produce a score for this posting."},
		{"truncated json", `{"overallScore": 60, "matchingSkills": ["Py`},
		{"missing score", `{"matchingSkills":["Python"],"missingSkills":[]}`},
		{"score out of range", `{"overallScore":250,"matchingSkills":[],"missingSkills":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeCompleter{responses: []string{tt.response}}
			svc := NewAnalysisService(llm)

			result, err := svc.AnalyzeMatch(context.Background(), "resume", "title", "description", "")
			require.NoError(t, err, "unparseable output must be recovered, not surfaced")

			assert.Equal(t, 50, result.OverallScore)
			assert.Empty(t, result.MatchingSkills)
			assert.Empty(t, result.MissingSkills)
			assert.Equal(t, "Unable to analyze", result.ExperienceGap)
			assert.Equal(t, []string{"Please ensure your resume is complete"}, result.Recommendations)
		})
	}
}

func TestAnalyzeMatchValidatesInputs(t *testing.T) {
	svc := NewAnalysisService(&fakeCompleter{})

	_, err := svc.AnalyzeMatch(context.Background(), "", "title", "description", "")
	assert.Error(t, err)

	_, err = svc.AnalyzeMatch(context.Background(), "resume", "title", "", "")
	assert.Error(t, err)
}

func TestAnalyzeMatchRequirementsSection(t *testing.T) {
	llm := &fakeCompleter{responses: []string{matchJSON, matchJSON}}
	svc := NewAnalysisService(llm)

	_, err := svc.AnalyzeMatch(context.Background(), "resume", "title", "description", "")
	require.NoError(t, err)
	assert.NotContains(t, llm.prompts[0], "JOB REQUIREMENTS", "empty requirements must be omitted, not sent as an empty section")

	_, err = svc.AnalyzeMatch(context.Background(), "resume", "title", "description", "3+ years of Go")
	require.NoError(t, err)
	assert.Contains(t, llm.prompts[1], "JOB REQUIREMENTS:\n3+ years of Go")
}

func TestAnalyzeMatchPropagatesProviderFailure(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("rate limited")}
	svc := NewAnalysisService(llm)

	_, err := svc.AnalyzeMatch(context.Background(), "resume", "title", "description", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestGenerateCoverLetterBullets(t *testing.T) {
	bulletsJSON := `[{"text":"Building scalable services in Go.","relevance":90,"targetRequirement":"Go experience"},{"text":"Designing REST APIs.","relevance":80,"targetRequirement":"API design"}]`

	llm := &fakeCompleter{responses: []string{"```json\n" + bulletsJSON + "\n```"}}
	svc := NewAnalysisService(llm)

	bullets, err := svc.GenerateCoverLetterBullets(context.Background(), "resume", "Backend Engineer", "description", "Acme")
	require.NoError(t, err)
	require.Len(t, bullets, 2)
	assert.Equal(t, "Building scalable services in Go.", bullets[0].Text)
	assert.Equal(t, 90, bullets[0].Relevance)
	assert.Equal(t, "Go experience", bullets[0].TargetRequirement)
}

func TestGenerateCoverLetterBulletsEmptyOnUnparseableOutput(t *testing.T) {
	llm := &fakeCompleter{responses: []string{"No bullets for you."}}
	svc := NewAnalysisService(llm)

	bullets, err := svc.GenerateCoverLetterBullets(context.Background(), "resume", "title", "description", "Acme")
	require.NoError(t, err)
	assert.NotNil(t, bullets)
	assert.Empty(t, bullets)
}

func TestGenerateCoverLetterBulletsPropagatesProviderFailure(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("connection refused")}
	svc := NewAnalysisService(llm)

	_, err := svc.GenerateCoverLetterBullets(context.Background(), "resume", "title", "description", "Acme")
	assert.Error(t, err)
}

func TestCompletionTokenBudgets(t *testing.T) {
	llm := &fakeCompleter{responses: []string{matchJSON, "[]", `{"isJobPage": false}`}}
	svc := NewAnalysisService(llm)

	_, err := svc.AnalyzeMatch(context.Background(), "resume", "title", "description", "")
	require.NoError(t, err)
	_, err = svc.GenerateCoverLetterBullets(context.Background(), "resume", "title", "description", "Acme")
	require.NoError(t, err)
	_, err = svc.ExtractJobPosting(context.Background(), "page body", "https://example.com", "title")
	require.NoError(t, err)

	// Extraction carries the whole description back, so it gets the larger
	// budget; analysis and bullets stay small.
	assert.Equal(t, []int{1024, 1024, 2000}, llm.budgets)
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no trailing fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSON(tt.input)
			assert.Equal(t, tt.want, got)
			// Stripping is idempotent: a second pass changes nothing.
			assert.Equal(t, got, cleanJSON(got))
		})
	}
}
