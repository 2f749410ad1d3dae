// Package export turns a cue card into a downloadable image.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/joestump/cuecard/internal/cuecard"
)

// Filename is the name offered for every downloaded card image.
const Filename = "cue-card.png"

// Capturer rasterizes a card.
type Capturer interface {
	Capture(ctx context.Context, card *cuecard.Card) ([]byte, error)
}

const (
	defaultWidth = 1080
	padding      = 72.0
	titleSize    = 52.0
	headingSize  = 38.0
	bodySize     = 32.0
	lineSpacing  = 1.45
)

var (
	background = color.NRGBA{R: 0xFA, G: 0xF7, B: 0xF0, A: 0xFF}
	border     = color.NRGBA{R: 0x1F, G: 0x3A, B: 0x5F, A: 0xFF}
	ink        = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	accent     = color.NRGBA{R: 0xC0, G: 0x39, B: 0x2B, A: 0xFF}
	muted      = color.NRGBA{R: 0x55, G: 0x5F, B: 0x6B, A: 0xFF}

	stripMarkdown = strings.NewReplacer("**", "", "__", "", "`", "")
)

// PNGCapturer draws cards server-side with gg.
type PNGCapturer struct {
	Width   int
	regular *truetype.Font
	bold    *truetype.Font
}

// NewPNGCapturer loads fontPath (a TTF file) for all text. With an empty path
// the embedded Go fonts are used; those have no Hangul glyphs, so Korean cards
// need a font such as Nanum Gothic configured.
func NewPNGCapturer(fontPath string) (*PNGCapturer, error) {
	regularTTF, boldTTF := goregular.TTF, gobold.TTF
	if fontPath != "" {
		b, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		regularTTF, boldTTF = b, b
	}

	regular, err := truetype.Parse(regularTTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	bold, err := truetype.Parse(boldTTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return &PNGCapturer{Width: defaultWidth, regular: regular, bold: bold}, nil
}

type block struct {
	face        font.Face
	size        float64
	color       color.Color
	indent      float64
	spaceBefore float64
	lines       []string
}

func (b block) height() float64 {
	return b.spaceBefore + float64(len(b.lines))*b.size*lineSpacing
}

// Capture renders card as a PNG.
func (c *PNGCapturer) Capture(ctx context.Context, card *cuecard.Card) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if card == nil {
		return nil, fmt.Errorf("no card to capture")
	}

	width := float64(c.Width)
	textWidth := width - 2*padding - 40

	// Faces carry a glyph cache and are not safe for concurrent use.
	titleFace := newFace(c.bold, titleSize)
	headingFace := newFace(c.bold, headingSize)
	bodyFace := newFace(c.regular, bodySize)
	keywordFace := newFace(c.bold, bodySize)

	measure := gg.NewContext(1, 1)
	wrap := func(face font.Face, s string, w float64) []string {
		measure.SetFontFace(face)
		var out []string
		for _, para := range strings.Split(stripMarkdown.Replace(s), "\n") {
			if strings.TrimSpace(para) == "" {
				continue
			}
			out = append(out, measure.WordWrap(para, w)...)
		}
		return out
	}

	blocks := []block{
		{face: titleFace, size: titleSize, color: border, lines: []string{"나의 과정단서 카드"}},
		{face: headingFace, size: headingSize, color: accent, spaceBefore: 36, lines: []string{"컨트롤 전략"}},
		{face: bodyFace, size: bodySize, color: ink, spaceBefore: 8, lines: wrap(bodyFace, card.Strategy, textWidth)},
		{face: headingFace, size: headingSize, color: accent, spaceBefore: 36, lines: []string{"과정 단서"}},
	}
	for i, cue := range card.Cues {
		label := strconv.Itoa(i+1) + ". (" + cue.Keyword + ")"
		blocks = append(blocks,
			block{face: keywordFace, size: bodySize, color: border, spaceBefore: 16, lines: []string{label}},
			block{face: bodyFace, size: bodySize, color: ink, indent: 48, lines: wrap(bodyFace, cue.Action, textWidth-48)},
		)
	}

	height := 2 * padding
	for _, b := range blocks {
		height += b.height()
	}
	height += 40

	dc := gg.NewContext(c.Width, int(height))
	dc.SetColor(background)
	dc.Clear()

	dc.SetColor(border)
	dc.SetLineWidth(6)
	dc.DrawRoundedRectangle(padding/2, padding/2, width-padding, height-padding, 28)
	dc.Stroke()

	y := padding + 20
	for _, b := range blocks {
		y += b.spaceBefore
		dc.SetFontFace(b.face)
		dc.SetColor(b.color)
		for _, l := range b.lines {
			dc.DrawString(l, padding+20+b.indent, y+b.size)
			y += b.size * lineSpacing
		}
	}

	dc.SetColor(muted)
	dc.SetFontFace(newFace(c.regular, 20))
	dc.DrawStringAnchored("cuecard", width-padding-10, height-padding/2-14, 1, 0)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
