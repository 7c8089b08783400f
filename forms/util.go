// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package forms

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/choria-io/booking/internal/sprig"
	"github.com/jedib0t/go-pretty/v6/text"
	terminal "golang.org/x/term"
)

var (
	colorMap = map[string]text.Color{
		"bold":      text.Bold,
		"black":     text.FgBlack,
		"red":       text.FgRed,
		"green":     text.FgGreen,
		"yellow":    text.FgYellow,
		"blue":      text.FgBlue,
		"magenta":   text.FgMagenta,
		"cyan":      text.FgCyan,
		"white":     text.FgWhite,
		"hiblack":   text.FgHiBlack,
		"hired":     text.FgHiRed,
		"higreen":   text.FgHiGreen,
		"hiyellow":  text.FgHiYellow,
		"hiblue":    text.FgHiBlue,
		"himagenta": text.FgHiMagenta,
		"hicyan":    text.FgHiCyan,
		"hiwhite":   text.FgHiWhite,
	}

	// innermost tag pair, the content holds no further opening tags
	colorTagRe = regexp.MustCompile(`\{([A-Za-z]+)\}([^{]*)\{/([A-Za-z]+)\}`)
)

func isTerminal() bool {
	return terminal.IsTerminal(int(os.Stdin.Fd())) && terminal.IsTerminal(int(os.Stdout.Fd()))
}

func isOneOf(val string, valid ...string) bool {
	for _, v := range valid {
		if val == v {
			return true
		}
	}
	return false
}

func renderTemplate(tmpl string, env map[string]any) (string, error) {
	t, err := template.New("form").Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return "", err
	}

	out := bytes.NewBuffer([]byte{})

	err = t.Execute(out, env)
	if err != nil {
		return "", err
	}

	return colorMarkup(out.String()), nil
}

// colorMarkup replaces tags like {red}text{/red} with terminal colors from the
// go-pretty text package. Tags nest and are matched case insensitively, unknown
// colors have their tags removed and mismatched pairs are left alone.
func colorMarkup(input string) string {
	result := input

	for {
		changed := false

		result = colorTagRe.ReplaceAllStringFunc(result, func(m string) string {
			parts := colorTagRe.FindStringSubmatch(m)
			open, content, closing := parts[1], parts[2], parts[3]

			if !strings.EqualFold(open, closing) {
				return m
			}

			changed = true

			color, ok := colorMap[strings.ToLower(open)]
			if !ok {
				return content
			}

			return text.Colors{color}.Sprint(content)
		})

		if !changed {
			return result
		}
	}
}
