// Package level loads the word campaign played by the crane.
package level

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/gwillem/wordcrane/pkg/board"
)

var (
	ErrNoLevels     = errors.New("no levels defined")
	ErrInvalidLevel = errors.New("invalid level")
)

//go:embed levels.yaml
var builtin []byte

// Objective tells the player what kind of level this is.
type Objective string

const (
	ObjectiveBuild    Objective = "build"    // spell the whole word
	ObjectiveComplete Objective = "complete" // fill the gaps between given letters
	ObjectiveCatch    Objective = "catch"    // letters rain from above
)

// Level is one word to build.
type Level struct {
	ID          int      `yaml:"id"`
	Word        string   `yaml:"word"`
	Phonemes    []string `yaml:"phonemes,omitempty"`
	Distractors []string `yaml:"distractors,omitempty"`
	Spawn       string   `yaml:"spawn,omitempty"`
	Prefilled   []int    `yaml:"prefilled,omitempty"`
	Image       string   `yaml:"image,omitempty"`

	Mode board.SpawnMode `yaml:"-"`
}

// Objective derives the level's goal from its spawn mode and gaps.
func (l Level) Objective() Objective {
	switch {
	case l.Mode == board.Rain:
		return ObjectiveCatch
	case len(l.Prefilled) > 0:
		return ObjectiveComplete
	default:
		return ObjectiveBuild
	}
}

// Setup converts the level into board terms.
func (l Level) Setup() board.Setup {
	return board.Setup{
		Phonemes:    l.Phonemes,
		Prefilled:   l.Prefilled,
		Distractors: l.Distractors,
		Mode:        l.Mode,
	}
}

// Letters returns every distinct character the level can show.
func (l Level) Letters() []string {
	seen := make(map[string]bool)
	var out []string
	for _, ch := range append(append([]string{}, l.Phonemes...), l.Distractors...) {
		if !seen[ch] {
			seen[ch] = true
			out = append(out, ch)
		}
	}
	return out
}

// Catalog is an ordered campaign.
type Catalog struct {
	Levels []Level `yaml:"levels"`
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.Levels)
}

// At returns the level at index i (0-based).
func (c *Catalog) At(i int) (Level, bool) {
	if i < 0 || i >= len(c.Levels) {
		return Level{}, false
	}
	return c.Levels[i], true
}

// Builtin returns the embedded campaign.
func Builtin() (*Catalog, error) {
	return Parse(builtin)
}

// Load reads a campaign from a YAML file. An empty path loads the builtin one.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels file: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and validates a campaign.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}
	if len(cat.Levels) == 0 {
		return nil, ErrNoLevels
	}

	ids := make(map[int]bool, len(cat.Levels))
	for i := range cat.Levels {
		l := &cat.Levels[i]
		if err := l.normalize(); err != nil {
			return nil, fmt.Errorf("level %d: %w", i+1, err)
		}
		if l.ID == 0 {
			l.ID = i + 1
		}
		if ids[l.ID] {
			return nil, fmt.Errorf("level %d: %w: duplicate id %d", i+1, ErrInvalidLevel, l.ID)
		}
		ids[l.ID] = true
	}
	return &cat, nil
}

var upper = cases.Upper(language.Romanian)

// Normalize folds s to uppercase NFC, so "ă" and "ă" both become "Ă".
func Normalize(s string) string {
	return upper.String(norm.NFC.String(strings.TrimSpace(s)))
}

// Graphemes splits s into user-perceived characters.
func Graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func (l *Level) normalize() error {
	l.Word = Normalize(l.Word)
	if l.Word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidLevel)
	}

	if len(l.Phonemes) == 0 {
		l.Phonemes = Graphemes(l.Word)
	} else {
		for i, ph := range l.Phonemes {
			l.Phonemes[i] = Normalize(ph)
		}
		if strings.Join(l.Phonemes, "") != l.Word {
			return fmt.Errorf("%w: phonemes %v do not spell %q", ErrInvalidLevel, l.Phonemes, l.Word)
		}
	}

	for i, d := range l.Distractors {
		d = Normalize(d)
		if d == "" {
			return fmt.Errorf("%w: empty distractor", ErrInvalidLevel)
		}
		l.Distractors[i] = d
	}

	seen := make(map[int]bool, len(l.Prefilled))
	for _, idx := range l.Prefilled {
		if idx < 0 || idx >= len(l.Phonemes) {
			return fmt.Errorf("%w: pre-filled index %d out of range", ErrInvalidLevel, idx)
		}
		if seen[idx] {
			return fmt.Errorf("%w: pre-filled index %d repeated", ErrInvalidLevel, idx)
		}
		seen[idx] = true
	}
	if len(seen) == len(l.Phonemes) {
		return fmt.Errorf("%w: every slot is pre-filled", ErrInvalidLevel)
	}

	mode, err := board.ParseSpawnMode(strings.ToLower(strings.TrimSpace(l.Spawn)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	l.Mode = mode
	return nil
}
