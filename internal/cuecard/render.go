package cuecard

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))
	policy   = bluemonday.UGCPolicy()

	cardTmpl = template.Must(template.New("card").Parse(`<section class="cue-card" id="cue-card">
  <header class="cue-card__header">
    <h2 class="cue-card__title">나의 과정단서 카드</h2>
  </header>
  <div class="cue-card__strategy">
    <h3>컨트롤 전략 <small>나의 정신적 헌법</small></h3>
    {{.Strategy}}
  </div>
  <div class="cue-card__cues">
    <h3>과정 단서 <small>지금 할 나의 행동</small></h3>
    <ol>
    {{- range .Cues}}
      <li><strong class="cue-card__keyword">{{.Keyword}}</strong> <span class="cue-card__action">{{.Action}}</span></li>
    {{- end}}
    </ol>
  </div>
</section>`))
)

type renderCue struct {
	Keyword string
	Action  template.HTML
}

type renderCard struct {
	Strategy template.HTML
	Cues     []renderCue
}

// Render produces the styled HTML block for a card. Strategy and action text
// may carry inline markdown (bold, italics); the result is sanitized.
func Render(c *Card) (template.HTML, error) {
	strategy, err := markdownHTML(c.Strategy)
	if err != nil {
		return "", err
	}
	data := renderCard{Strategy: strategy, Cues: make([]renderCue, 0, len(c.Cues))}
	for _, cue := range c.Cues {
		action, err := markdownHTML(cue.Action)
		if err != nil {
			return "", err
		}
		data.Cues = append(data.Cues, renderCue{Keyword: cue.Keyword, Action: unwrapParagraph(action)})
	}

	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func markdownHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

// unwrapParagraph strips the single <p> goldmark wraps inline text in.
func unwrapParagraph(h template.HTML) template.HTML {
	s := strings.TrimSpace(string(h))
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") && strings.Count(s, "<p>") == 1 {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<p>"), "</p>")
	}
	return template.HTML(s)
}
