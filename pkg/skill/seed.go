package skill

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed skills_seed.json
var defaultSeed []byte

// DefaultSeed returns the built-in vocabulary seed document.
func DefaultSeed() io.Reader { return bytes.NewReader(defaultSeed) }

const entrySchema = `{
	"type": "object",
	"required": ["name", "category"],
	"properties": {
		"name": {"type": "string", "minLength": 1, "pattern": "\\S"},
		"category": {"enum": ["language", "framework", "tool", "concept"]}
	}
}`

var seedEntrySchema = jsonschema.MustCompileString("skill-entry.json", entrySchema)

// Rejected is a seed entry that failed validation.
type Rejected struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ParseSeed reads a JSON array of {name, category}. Each entry is validated on
// its own: bad entries are reported in rejected and skipped, the rest are
// returned. Only an unreadable document is an error. Duplicate names keep the
// first occurrence.
func ParseSeed(r io.Reader) (entries []Skill, rejected []Rejected, err error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	seen := make(map[string]struct{}, len(raw))
	for i, msg := range raw {
		var doc any
		if err := json.Unmarshal(msg, &doc); err != nil {
			rejected = append(rejected, Rejected{Index: i, Reason: err.Error()})
			continue
		}
		var s Skill
		_ = json.Unmarshal(msg, &s)
		if err := seedEntrySchema.Validate(doc); err != nil {
			rejected = append(rejected, Rejected{Index: i, Name: s.Name, Reason: err.Error()})
			continue
		}
		s.ID = 0
		s.Name = strings.TrimSpace(s.Name)
		key := strings.ToLower(s.Name)
		if _, dup := seen[key]; dup {
			rejected = append(rejected, Rejected{Index: i, Name: s.Name, Reason: "duplicate name"})
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, s)
	}
	return entries, rejected, nil
}

// SeedVocabulary builds a vocabulary straight from a seed document, numbering
// entries by position. Used where no database is involved.
func SeedVocabulary(r io.Reader) (Vocabulary, []Rejected, error) {
	entries, rejected, err := ParseSeed(r)
	if err != nil {
		return Vocabulary{}, nil, err
	}
	for i := range entries {
		entries[i].ID = int64(i + 1)
	}
	return NewVocabulary(entries), rejected, nil
}
