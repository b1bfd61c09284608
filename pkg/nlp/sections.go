package nlp

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Uncategorized is the bucket that collects every line seen before the first
// recognised header (contact info, summary) and any document without headers.
const Uncategorized = "uncategorized"

// Resume section names.
const (
	SectionExperience = "experience"
	SectionSkills     = "skills"
	SectionEducation  = "education"
	SectionProjects   = "projects"
)

// JD section names.
const (
	SectionResponsibilities = "responsibilities"
	SectionRequirements     = "requirements"
	SectionNiceToHave       = "nice_to_have"
)

// Header length limits: anything at least this long is treated as content.
// JDs get a longer limit because their headings tend to be phrases.
const (
	ResumeMaxHeaderLen = 50
	JDMaxHeaderLen     = 80
)

// Sections maps a section name to its text block.
type Sections map[string]string

// Get returns the block for name or "" when the section is absent.
func (s Sections) Get(name string) string {
	if s == nil {
		return ""
	}
	return s[name]
}

// Names returns section names in a stable order: the given preferred order
// first, then whatever else is present, sorted.
func (s Sections) Names(preferred ...string) []string {
	out := make([]string, 0, len(s))
	seen := make(map[string]struct{}, len(s))
	for _, name := range preferred {
		if _, ok := s[name]; ok {
			out = append(out, name)
			seen[name] = struct{}{}
		}
	}
	var rest []string
	for name := range s {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// SectionHeaders lists the lowercase header synonyms announcing one section.
type SectionHeaders struct {
	Section  string   `yaml:"section" json:"section"`
	Synonyms []string `yaml:"synonyms" json:"synonyms"`
}

// HeaderMapping is ordered: when a line could match synonyms of several
// sections the earliest entry wins.
type HeaderMapping []SectionHeaders

// SectionNames returns the configured section names in mapping order.
func (m HeaderMapping) SectionNames() []string {
	out := make([]string, 0, len(m))
	for _, h := range m {
		out = append(out, h.Section)
	}
	return out
}

type headerPattern struct {
	section string
	re      *regexp.Regexp
}

// Segmenter splits normalized text into named blocks using full-line header
// matches. One Segmenter serves both resumes and JDs; only the mapping and the
// header length limit differ. A Segmenter is immutable and safe for concurrent use.
type Segmenter struct {
	sections     []string
	patterns     []headerPattern
	maxHeaderLen int
}

// NewSegmenter compiles the mapping. Synonyms are matched literally, anchored at
// both ends, allowing only trailing colons, dashes and whitespace.
func NewSegmenter(mapping HeaderMapping, maxHeaderLen int) *Segmenter {
	s := &Segmenter{maxHeaderLen: maxHeaderLen}
	for _, h := range mapping {
		s.sections = append(s.sections, h.Section)
		for _, syn := range h.Synonyms {
			syn = strings.TrimSpace(strings.ToLower(syn))
			if syn == "" {
				continue
			}
			s.patterns = append(s.patterns, headerPattern{
				section: h.Section,
				re:      regexp.MustCompile(`^` + regexp.QuoteMeta(syn) + `[:\s-]*$`),
			})
		}
	}
	return s
}

// Detect partitions the lines of normalized text into sections. Header lines
// are consumed, blank lines dropped, and every other line lands in exactly one
// bucket, in original order.
func (s *Segmenter) Detect(normalized string) Sections {
	buckets := make(map[string][]string, len(s.sections)+1)
	current := Uncategorized

	for _, line := range strings.Split(normalized, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		if section, ok := s.header(clean); ok {
			current = section
			continue
		}
		buckets[current] = append(buckets[current], line)
	}

	out := make(Sections, len(s.sections)+1)
	for _, name := range s.sections {
		out[name] = strings.TrimSpace(strings.Join(buckets[name], "\n"))
	}
	out[Uncategorized] = strings.TrimSpace(strings.Join(buckets[Uncategorized], "\n"))
	return out
}

func (s *Segmenter) header(clean string) (string, bool) {
	if utf8.RuneCountInString(clean) >= s.maxHeaderLen {
		return "", false
	}
	for _, p := range s.patterns {
		if p.re.MatchString(clean) {
			return p.section, true
		}
	}
	return "", false
}
