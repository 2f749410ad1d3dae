package llm

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/joestump/cuecard/internal/cuecard"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// PromptData holds the variables available in the prompt template.
type PromptData struct {
	Sport        string
	Situation    string
	MentalState  string
	DesiredState string
	SuccessKey   string
}

// BuildPrompt renders the prompt for req. Field values are inserted verbatim.
// If customTemplate is non-empty it is used instead of the embedded default.
func BuildPrompt(customTemplate string, req cuecard.Request) (string, error) {
	src := defaultPromptTemplate
	if customTemplate != "" {
		src = customTemplate
	}

	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(src)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, PromptData(req)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
