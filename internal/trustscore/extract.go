package trustscore

import (
	"regexp"
	"strconv"
	"strings"

	"trustbridge/internal/domain"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	panPattern        = regexp.MustCompile(`[A-Z]{5}[0-9]{4}[A-Z]`)
	aadhaarPattern    = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	namePattern       = regexp.MustCompile(`(?i)name\s*[:\-]?[ \t]*([A-Za-z][A-Za-z ]*)`)
	phonePattern      = regexp.MustCompile(`(?i)phone\s*[:\-]?[ \t]*(\d{10})`)

	scorePattern       = regexp.MustCompile(`(?i)score:\s*(\d{1,3})`)
	explanationPattern = regexp.MustCompile(`(?is)explanation:\s*(.*)`)
)

// ExtractIdentityFields pulls identity fields out of combined free text. PAN
// matching runs on whitespace-stripped text so formatted numbers still match;
// Aadhaar keeps its optional space grouping during matching and is stored
// without spaces. Name capture stops at line end.
func ExtractIdentityFields(text string) domain.IdentityExtraction {
	var extraction domain.IdentityExtraction

	if m := panPattern.FindString(whitespacePattern.ReplaceAllString(text, "")); m != "" {
		extraction.PANNumber = m
	}
	if m := aadhaarPattern.FindString(text); m != "" {
		extraction.AadhaarNumber = strings.ReplaceAll(m, " ", "")
	}
	if m := namePattern.FindStringSubmatch(text); m != nil {
		extraction.Name = strings.TrimSpace(m[1])
	}
	if m := phonePattern.FindStringSubmatch(text); m != nil {
		extraction.Phone = m[1]
	}

	return extraction
}

// ScoreJudgment is the structured result of parsing the model's financial
// trust verdict. Parsed is false when no score line was found and the
// documented fallback applies.
type ScoreJudgment struct {
	Score       int
	Explanation string
	Parsed      bool
}

const fallbackExplanation = "Score could not be determined from documents."

// ParseScoreJudgment reads a "Score:" line and an "Explanation:" section from
// free text. A missing score line is not an error: the judgment degrades to
// the fallback score with a canned explanation. Parsed scores are clamped to
// the financial sub-score range.
func ParseScoreJudgment(text string, fallbackScore int) ScoreJudgment {
	judgment := ScoreJudgment{
		Score:       fallbackScore,
		Explanation: fallbackExplanation,
	}

	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return judgment
	}

	score, err := strconv.Atoi(m[1])
	if err != nil {
		return judgment
	}

	judgment.Parsed = true
	judgment.Score = clamp(score, 0, domain.MaxFinancialScore)
	if em := explanationPattern.FindStringSubmatch(text); em != nil {
		judgment.Explanation = strings.TrimSpace(em[1])
	}
	return judgment
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
