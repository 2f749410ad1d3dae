package cuecard

import (
	"fmt"
	"regexp"
	"strings"
)

// Card is the parsed model response: one strategy statement and ordered cues.
type Card struct {
	Strategy string `json:"strategy"`
	Cues     []Cue  `json:"cues"`

	// Skipped counts lines in the cues section that did not look like a cue.
	Skipped int `json:"-"`
}

// Cue is one short behavioral instruction, e.g. "(호흡) 코로 깊게 마신다.".
type Cue struct {
	Keyword string `json:"keyword"`
	Action  string `json:"action"`
}

var (
	headingRe = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*$`)
	cueRe     = regexp.MustCompile(`^(\d+)\.\s*\(([^()]+)\)\s*(.+)$`)
)

// Parser splits model output into sections by heading. A heading opens a
// section when its text starts with one of the section's markers
// (case-insensitive); any other heading is ordinary text.
type Parser struct {
	StrategyMarkers []string
	CueMarkers      []string
}

// DefaultParser accepts the Korean headings the prompt asks for as well as
// their English equivalents.
var DefaultParser = Parser{
	StrategyMarkers: []string{"컨트롤 전략", "Control Strategy", "Strategy"},
	CueMarkers:      []string{"과정 단서", "Process Cues", "Cues"},
}

// Parse parses raw with DefaultParser.
func Parse(raw string) (*Card, error) {
	return DefaultParser.Parse(raw)
}

type section int

const (
	sectionNone section = iota
	sectionStrategy
	sectionCues
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineHeading
	lineCue
	lineProse
)

type line struct {
	kind    lineKind
	heading string // set for lineHeading
	cue     Cue    // set for lineCue
}

func classify(raw string) line {
	text := strings.TrimSpace(raw)
	if text == "" {
		return line{kind: lineBlank}
	}
	if m := headingRe.FindStringSubmatch(text); m != nil {
		return line{kind: lineHeading, heading: m[1]}
	}
	if m := cueRe.FindStringSubmatch(text); m != nil {
		return line{kind: lineCue, cue: Cue{
			Keyword: strings.TrimSpace(m[2]),
			Action:  strings.TrimSpace(m[3]),
		}}
	}
	return line{kind: lineProse}
}

// Parse converts model output into a Card. Both the strategy and cues
// headings must be present; cue lines that do not match
// "<n>. (<keyword>) <action>" are dropped and counted in Card.Skipped.
func (p Parser) Parse(raw string) (*Card, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	cur := sectionNone
	seen := map[section]bool{}
	card := &Card{Cues: []Cue{}}
	var strategy []string

	for _, rl := range strings.Split(raw, "\n") {
		l := classify(rl)

		if l.kind == lineHeading {
			if s := p.sectionFor(l.heading); s != sectionNone && !seen[s] {
				seen[s] = true
				cur = s
				continue
			}
		}

		switch cur {
		case sectionStrategy:
			// Keep the line untrimmed on the right so paragraph breaks survive.
			strategy = append(strategy, strings.TrimRight(rl, " \t"))
		case sectionCues:
			switch l.kind {
			case lineBlank:
			case lineCue:
				card.Cues = append(card.Cues, l.cue)
			default:
				card.Skipped++
			}
		}
	}

	if !seen[sectionStrategy] {
		return nil, &ParseError{Section: "strategy", Err: ErrMissingSection}
	}
	if !seen[sectionCues] {
		return nil, &ParseError{Section: "cues", Err: ErrMissingSection}
	}

	card.Strategy = strings.TrimSpace(strings.Join(strategy, "\n"))
	return card, nil
}

// stripEmphasis removes a **bold** or __bold__ wrapper from heading text.
func stripEmphasis(h string) string {
	for _, w := range []string{"**", "__"} {
		if len(h) > 2*len(w) && strings.HasPrefix(h, w) && strings.HasSuffix(h, w) {
			return strings.TrimSpace(h[len(w) : len(h)-len(w)])
		}
	}
	return h
}

func (p Parser) sectionFor(heading string) section {
	h := strings.ToLower(stripEmphasis(strings.TrimSpace(heading)))
	for _, m := range p.StrategyMarkers {
		if strings.HasPrefix(h, strings.ToLower(m)) {
			return sectionStrategy
		}
	}
	for _, m := range p.CueMarkers {
		if strings.HasPrefix(h, strings.ToLower(m)) {
			return sectionCues
		}
	}
	return sectionNone
}

// Markdown renders the card back into the two-section markdown layout the
// model is asked to produce.
func (c *Card) Markdown() string {
	var b strings.Builder
	b.WriteString("### 컨트롤 전략 (나의 정신적 헌법)\n")
	b.WriteString(c.Strategy)
	b.WriteString("\n\n### 과정 단서 (지금 할 나의 행동)\n")
	for i, cue := range c.Cues {
		fmt.Fprintf(&b, "%d. (%s) %s\n", i+1, cue.Keyword, cue.Action)
	}
	return b.String()
}
