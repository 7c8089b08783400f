// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package validator evaluates boolean expressions used to decide whether form
// properties apply and whether an answer is acceptable.
package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/core"
	"github.com/expr-lang/expr"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,}[0-9]$`)

// Validate evaluates expression against env, the expression must produce a boolean
func Validate(env map[string]any, expression string) (bool, error) {
	if env == nil {
		env = map[string]any{}
	}

	opts := append([]expr.Option{expr.Env(env), expr.AsBool()}, functions()...)

	program, err := expr.Compile(expression, opts...)
	if err != nil {
		return false, fmt.Errorf("invalid expression %q: %w", expression, err)
	}

	res, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("expression %q failed: %w", expression, err)
	}

	ok, isBool := res.(bool)
	if !isBool {
		return false, fmt.Errorf("expression %q did not return a boolean", expression)
	}

	return ok, nil
}

// SurveyValidator creates a survey validator that evaluates expression with the
// answer available as value. Empty answers are accepted when required is false.
func SurveyValidator(expression string, required bool) survey.Validator {
	return func(ans any) error {
		val := answerString(ans)

		if val == "" && !required {
			return nil
		}

		ok, err := Validate(map[string]any{"value": val}, expression)
		if err != nil {
			return err
		}

		if !ok {
			return fmt.Errorf("validation using %q did not pass", expression)
		}

		return nil
	}
}

func answerString(ans any) string {
	switch v := ans.(type) {
	case string:
		return v
	case core.OptionAnswer:
		return v.Value
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func functions() []expr.Option {
	return []expr.Option{
		expr.Function("isInt", stringPredicate(func(s string) bool {
			_, err := strconv.Atoi(s)
			return err == nil
		}), new(func(any) bool)),

		expr.Function("isFloat", stringPredicate(func(s string) bool {
			_, err := strconv.ParseFloat(s, 64)
			return err == nil
		}), new(func(any) bool)),

		expr.Function("isEmail", stringPredicate(func(s string) bool {
			a, err := mail.ParseAddress(s)
			return err == nil && a.Address == s
		}), new(func(any) bool)),

		expr.Function("isPhone", stringPredicate(func(s string) bool {
			return phoneRe.MatchString(s)
		}), new(func(any) bool)),
	}
}

func stringPredicate(check func(string) bool) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return false, fmt.Errorf("expected 1 argument, got %d", len(params))
		}

		return check(strings.TrimSpace(fmt.Sprint(params[0]))), nil
	}
}
