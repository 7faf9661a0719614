// Package template renders the outreach message for a campaign stage.
//
// Rendering is deliberately dumb: a literal {{token}} replacement, not a
// templating language. A missing variable leaves the token verbatim in the
// output instead of failing, so a lead without e.g. a company name still
// gets a (slightly ugly) email rather than no email at all.
package template

import (
	"errors"
	"strings"
)

var ErrTemplateNotFound = errors.New("template not found")

// Message is the rendered subject/body pair handed straight to a dispatcher.
// It is never persisted.
type Message struct {
	Subject string
	Body    string
}

// Render looks up the template for (stage, set) and substitutes variables.
// An unknown set falls back to the "us" templates for that stage; an unknown
// stage is a configuration bug and returns ErrTemplateNotFound.
func Render(stage, set string, vars map[string]string) (Message, error) {
	bySet, ok := templates[stage]
	if !ok {
		return Message{}, ErrTemplateNotFound
	}

	tmpl, ok := bySet[set]
	if !ok {
		tmpl = bySet["us"]
	}

	return Message{
		Subject: substitute(tmpl.Subject, vars),
		Body:    substitute(tmpl.Body, vars),
	}, nil
}

// Stages returns the known stage keys. Used for startup sanity checks.
func Stages() []string {
	out := make([]string, 0, len(templates))
	for stage := range templates {
		out = append(out, stage)
	}
	return out
}

func substitute(text string, vars map[string]string) string {
	if len(vars) == 0 {
		return text
	}
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
