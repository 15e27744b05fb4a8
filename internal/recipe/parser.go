package recipe

import (
	"regexp"
	"strings"
	"time"

	"github.com/biarkamimasak/backend/internal/types"
)

// section identifies which multi-line block the parser is currently filling.
type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionInstructions
	sectionNotes
)

const (
	markerTitle        = "TITLE:"
	markerIngredients  = "INGREDIENTS:"
	markerInstructions = "INSTRUCTIONS:"
	markerCookingTime  = "COOKING TIME:"
	markerDifficulty   = "DIFFICULTY:"
	markerNotes        = "NOTES:"
)

// sectionMarkers lists the six labels in scan order; the first label found on
// a line wins.
var sectionMarkers = []string{
	markerTitle,
	markerIngredients,
	markerInstructions,
	markerCookingTime,
	markerDifficulty,
	markerNotes,
}

var (
	bulletPrefix = regexp.MustCompile(`^[-•]\s*`)
	numberPrefix = regexp.MustCompile(`^\d+[.)]\s*`)
)

// Normalize strips superficial markdown emphasis characters from completion
// text. Applying it twice yields the same result as applying it once.
func Normalize(text string) string {
	return strings.NewReplacer("*", "", "#", "").Replace(text)
}

// Parser converts completion text into a StructuredRecipe. It accepts whole
// texts or arbitrary fragments; the section cursor lives across calls so the
// batch and streamed paths share one implementation. Feeding the same text in
// any fragment split produces the same record as feeding it at once.
type Parser struct {
	state   section
	partial string
	lines   []string

	title        string
	ingredients  []string
	instructions []string
	cookingTime  string
	difficulty   string
	notes        []string
}

// NewParser returns a parser with an empty record and no active section.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts a complete completion text into a StructuredRecipe. It never
// fails: malformed or empty input degrades to defaulted fields.
func Parse(text string) types.StructuredRecipe {
	p := NewParser()
	p.Feed(text)
	return p.Finalize()
}

// Feed consumes the next chunk of completion text. Only completed lines are
// processed; a trailing partial line is buffered until a later fragment or
// Finalize supplies the rest.
func (p *Parser) Feed(fragment string) {
	p.partial += fragment
	for {
		idx := strings.IndexByte(p.partial, '\n')
		if idx < 0 {
			return
		}
		line := p.partial[:idx]
		p.partial = p.partial[idx+1:]
		p.processLine(line)
	}
}

// Finalize flushes any buffered text, applies defaults for fields the
// completion omitted and stamps the record with the completion time.
func (p *Parser) Finalize() types.StructuredRecipe {
	if p.partial != "" {
		line := p.partial
		p.partial = ""
		p.processLine(line)
	}

	rec := types.StructuredRecipe{
		Title:        p.title,
		Ingredients:  p.ingredients,
		Instructions: p.instructions,
		CookingTime:  p.cookingTime,
		Difficulty:   p.difficulty,
		Notes:        strings.Join(p.notes, " "),
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []string{}
	}
	if rec.Instructions == nil {
		rec.Instructions = []string{}
	}
	if rec.Title == "" {
		rec.Title = p.fallbackTitle()
	}
	if rec.CookingTime == "" {
		rec.CookingTime = "Not specified"
	}
	if rec.Difficulty == "" {
		rec.Difficulty = "Not specified"
	}
	if rec.Notes == "" {
		rec.Notes = "No additional notes."
	}

	now := time.Now().UTC()
	rec.Timestamp = &now
	return rec
}

func (p *Parser) processLine(raw string) {
	line := strings.TrimSpace(Normalize(raw))
	p.lines = append(p.lines, line)
	if line == "" {
		return
	}

	if marker, rest, ok := matchMarker(line); ok {
		switch marker {
		case markerTitle:
			// Repeated titles overwrite; the last one wins.
			p.title = rest
		case markerIngredients:
			p.state = sectionIngredients
		case markerInstructions:
			p.state = sectionInstructions
		case markerCookingTime:
			p.cookingTime = rest
		case markerDifficulty:
			p.difficulty = rest
		case markerNotes:
			p.state = sectionNotes
			if rest != "" {
				p.notes = append(p.notes, rest)
			}
		}
		return
	}

	switch p.state {
	case sectionIngredients:
		item := bulletPrefix.ReplaceAllString(line, "")
		if item == "" || containsMarker(item) {
			return
		}
		p.ingredients = append(p.ingredients, item)
	case sectionInstructions:
		step := numberPrefix.ReplaceAllString(line, "")
		if step == "" || containsMarker(step) {
			return
		}
		p.instructions = append(p.instructions, step)
	case sectionNotes:
		p.notes = append(p.notes, line)
	}
}

// fallbackTitle mirrors the loose title extraction used before the labeled
// format existed: the first non-blank, non-bulleted line that is not itself a
// section label.
func (p *Parser) fallbackTitle() string {
	for _, line := range p.lines {
		if line == "" || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
			continue
		}
		if containsMarker(line) {
			continue
		}
		return line
	}
	return ""
}

// matchMarker reports the first section label contained in the line, plus any
// text following it. The match is case-insensitive.
func matchMarker(line string) (marker, rest string, ok bool) {
	upper := strings.ToUpper(line)
	for _, m := range sectionMarkers {
		if idx := strings.Index(upper, m); idx >= 0 {
			return m, strings.TrimSpace(line[idx+len(m):]), true
		}
	}
	return "", "", false
}

func containsMarker(line string) bool {
	upper := strings.ToUpper(line)
	for _, m := range sectionMarkers {
		if strings.Contains(upper, m) {
			return true
		}
	}
	return false
}
