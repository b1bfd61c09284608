package experience

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/artem13815/resumematch/pkg/nlp"
)

// "3 years", "3+ years", "3-5 years", "3 to 5 years"; only the first number counts.
var yearsRe = regexp.MustCompile(`(\d+)(?:\+?|\s*(?:-|\s+to\s+)\s*\d+)?\s*years?`)

// Plausible values lie strictly between these bounds; anything else is a date or noise.
const (
	minYears = 0
	maxYears = 20
)

// Requirement is the experience a JD asks for. Zero means unspecified.
type Requirement struct {
	RequiredYears int `json:"required_years"`
}

// ExtractYears returns the largest plausible "N years" figure in text, or 0.
func ExtractYears(text string) int {
	best := 0
	for _, m := range yearsRe.FindAllStringSubmatch(strings.ToLower(text), -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= minYears || n >= maxYears {
			continue
		}
		best = max(best, n)
	}
	return best
}

// ExtractRequirement reads the years bar from a JD. Requirements and unlabelled
// text are scanned; responsibilities and nice-to-have are too noisy.
func ExtractRequirement(sections nlp.Sections) Requirement {
	blob := sections.Get(nlp.SectionRequirements) + " " + sections.Get(nlp.Uncategorized)
	return Requirement{RequiredYears: ExtractYears(blob)}
}

// ActualYears reads the candidate's years from the resume experience section.
func ActualYears(sections nlp.Sections) int {
	return ExtractYears(sections.Get(nlp.SectionExperience))
}
