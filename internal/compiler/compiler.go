package compiler

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
)

// NewTemplate parses raw with [[ ]] delimiters so {{ }} is left for
// the remote api or the scheduler.
func NewTemplate(name, raw string) (*template.Template, error) {
	return template.New(name).
		Delims("[[", "]]").
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(raw)
}

func Compile(tmpl *template.Template, values interface{}) (string, error) {
	var builder strings.Builder
	err := tmpl.Execute(&builder, values)
	if err != nil {
		return "", err
	}
	return builder.String(), nil
}

// Render parses and compiles raw in one step.
// Strings without delimiters are returned as is.
func Render(name, raw string, values interface{}) (string, error) {
	if !strings.Contains(raw, "[[") {
		return raw, nil
	}
	tmpl, err := NewTemplate(name, raw)
	if err != nil {
		return "", errors.WithStack(err)
	}
	s, err := Compile(tmpl, values)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return s, nil
}

// RenderMap renders every value of m, keys are kept as is.
func RenderMap(name string, m map[string]string, values interface{}) (map[string]string, error) {
	if m == nil {
		return nil, nil
	}
	r := make(map[string]string, len(m))
	for k, v := range m {
		s, err := Render(name+"_"+k, v, values)
		if err != nil {
			return nil, err
		}
		r[k] = s
	}
	return r, nil
}
