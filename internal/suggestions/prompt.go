package suggestions

import (
	"fmt"
	"strings"

	"ats-backend/internal/shared/util"
)

// DefaultMaxChars bounds the résumé text sent to a provider.
const DefaultMaxChars = 10000

const promptTemplate = `Analyze this resume and provide 5-7 specific improvement suggestions to maximize its ATS score and its chances in demanding technical screenings. Focus on:
- Optimizing action verbs for impact (e.g., "developed" vs. "worked on")
- Adding quantifiable metrics (e.g., "increased sales by 20%%" vs. "improved sales")
- Strengthening industry-specific keywords (e.g., AWS, Python, Agile)
- Improving section organization and hierarchy (clear headers, consistent formatting)
- Professional presentation (concise phrasing, no typos)

For each suggestion, provide:
- category (e.g., Skills Enhancement, Experience Optimization, Metrics Focus)
- title (short description)
- description (detailed)
- before (original text with line numbers, e.g., "L1: Worked on projects")
- after (improved text with line numbers, e.g., "L1: Developed projects using Python and AWS")
- rationale (why this improves the ATS score)

IMPORTANT: Return ONLY a valid JSON array. No explanatory text, markdown or code blocks. Start with [ and end with ]. Format:
[{"category":"Skills Enhancement","title":"Add Technical Skills","description":"The resume lacks key technical skills...","before":"L1: Worked on projects","after":"L1: Developed projects using Python and AWS","rationale":"Specific skills boost keyword matching."}]

Resume:
%s`

// BuildPrompt renders the suggestion prompt for resumeText, keeping at most maxChars runes
// of the résumé. A non-positive maxChars uses DefaultMaxChars.
func BuildPrompt(resumeText string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return fmt.Sprintf(promptTemplate, util.TruncateRunes(strings.TrimSpace(resumeText), maxChars))
}
