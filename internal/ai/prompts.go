package ai

import (
	"fmt"
	"strings"

	"resumescreen/internal/types"
)

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	SummarizeJob   string
	EvaluateResume string
	ScoreRubric    string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	SummarizeJob   string
	EvaluateResume string
	ScoreRubric    string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	SummarizeJob: `You are an expert HR analyst who condenses job descriptions into compact, reusable requirement summaries. Your core principles are:

- Capture only requirements that actually appear in the job description
- Prefer the most decisive requirements over exhaustive lists
- Keep each summary short enough to reuse across many candidate evaluations`,

	EvaluateResume: `You are an expert HR recruiter evaluating resumes against extracted job requirements. Your core principles are:

- Be objective and base every score on concrete evidence from the resume
- Never infer skills or experience that are not stated in the resume text
- Extract identity details exactly as written; never invent contact information`,

	ScoreRubric: `You are an expert legal-operations recruiter scoring resumes against a fixed weighted rubric. Your core principles are:

- Award points only for criteria with explicit evidence in the resume text
- A criterion with no supporting evidence scores zero; never speculate
- Justify the overall assessment with references to the resume content`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	SummarizeJob: `Analyze the following job description and extract the key requirements for efficient resume evaluation.

**Job Description:**
-----
%s
-----

Extract and summarize:
1. Key skills (both technical and soft skills)
2. Experience requirements (years and type)
3. Main role responsibilities
4. Educational/certification qualifications

Focus on the most important requirements that would be used to evaluate candidates.`,

	EvaluateResume: `Evaluate this resume against the extracted job requirements.

KEY SKILLS REQUIRED: %s
EXPERIENCE REQUIREMENTS: %s
ROLE RESPONSIBILITIES: %s
QUALIFICATIONS: %s

**Resume to Evaluate:**
-----
%s
-----

Instructions:
1. Extract the candidate's name, phone number, and email from the resume
2. Score relevant experience (0-10) based on years and type matching the requirements
3. Score skills match (0-10) based on how well the candidate's skills align with the required skills
4. Provide a recommendation using the total score (experience + skills):
   - 16-20: Strongly Recommended
   - 11-15: Recommended
   - 6-10: Consider
   - 0-5: Not Suitable

Be objective and base scores on concrete evidence from the resume.
If contact information is not found, use "Not Provided".`,

	ScoreRubric: `Score this resume against the following weighted rubric. The maxima sum to 100.

**Scoring Criteria:**
%s

**Resume to Evaluate:**
-----
%s
-----

Instructions:
1. Extract the candidate's name from the resume
2. Score each criterion from 0 up to its declared maximum
3. Award zero for any criterion without explicit supporting evidence in the resume; do not speculate or give partial credit for plausible-but-unstated experience
4. Report the total score (sum of all criterion scores, 0-100)
5. Choose the recommendation from the total score:
   - 85-100: Strongly Recommended for Interview
   - 70-84: Recommended for Interview
   - 50-69: Consider with Caution
   - 0-49: Not Suitable
6. Write a short justification citing the decisive evidence`,
}

// RubricCriteriaList renders the fixed rubric as a numbered list for the
// instruction text, one criterion per line with its point range.
func RubricCriteriaList() string {
	var b strings.Builder
	for i, c := range types.RubricCriteria {
		fmt.Fprintf(&b, "%d. %s (0-%d points)\n", i+1, c.Description, c.Max)
	}
	return strings.TrimRight(b.String(), "\n")
}
