// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package sprig provides the template functions available to form descriptions
// and submission templates.
package sprig

import (
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TxtFuncMap is the Sprig function map with uuidv4, randBytes and reference
// using crypto random sources
func TxtFuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["uuidv4"] = uuidv4
	funcs["randBytes"] = randBytes
	funcs["reference"] = reference

	return funcs
}

// GenericFuncMap is TxtFuncMap as a plain map, used with engines other than text/template
func GenericFuncMap() map[string]any {
	funcs := map[string]any{}
	for k, v := range TxtFuncMap() {
		funcs[k] = v
	}

	return funcs
}
