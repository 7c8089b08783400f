// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"fmt"
)

// ContactMethod is one of the individually selectable contact methods
type ContactMethod string

const (
	WhatsApp ContactMethod = WhatsAppField
	SMS      ContactMethod = SMSField
	Call     ContactMethod = CallField
)

// ContactMethodNames lists the individual contact methods in presentation order
var ContactMethodNames = []ContactMethod{WhatsApp, SMS, Call}

// ParseContactMethod converts s into a ContactMethod, selectAll is not a contact method
func ParseContactMethod(s string) (ContactMethod, error) {
	switch ContactMethod(s) {
	case WhatsApp, SMS, Call:
		return ContactMethod(s), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownContactMethod, s)
	}
}

// ContactMethods holds the three individual flags and the derived SelectAll flag.
//
// Updates flow in one direction only: ToggleIndividual derives SelectAll from the
// individual flags and ToggleSelectAll pushes a single value into every flag.
// Neither reads the previous SelectAll, so SelectAll always equals the AND of the
// individual flags after either operation.
type ContactMethods struct {
	WhatsApp  bool `json:"whatsapp" yaml:"whatsapp"`
	SMS       bool `json:"sms" yaml:"sms"`
	Call      bool `json:"call" yaml:"call"`
	SelectAll bool `json:"selectAll" yaml:"selectAll"`
}

// ToggleIndividual sets the named flag to value and recomputes SelectAll
func (c ContactMethods) ToggleIndividual(name ContactMethod, value bool) (ContactMethods, error) {
	switch name {
	case WhatsApp:
		c.WhatsApp = value
	case SMS:
		c.SMS = value
	case Call:
		c.Call = value
	default:
		return c, fmt.Errorf("%w %q", ErrUnknownContactMethod, name)
	}

	c.SelectAll = c.allSelected()

	return c, nil
}

// ToggleSelectAll sets every flag, including SelectAll, to value
func (c ContactMethods) ToggleSelectAll(value bool) ContactMethods {
	return ContactMethods{
		WhatsApp:  value,
		SMS:       value,
		Call:      value,
		SelectAll: value,
	}
}

// AnySelected reports whether at least one individual method is selected
func (c ContactMethods) AnySelected() bool {
	return c.WhatsApp || c.SMS || c.Call
}

// IsSelected reports the state of an individual method
func (c ContactMethods) IsSelected(name ContactMethod) bool {
	switch name {
	case WhatsApp:
		return c.WhatsApp
	case SMS:
		return c.SMS
	case Call:
		return c.Call
	default:
		return false
	}
}

func (c ContactMethods) allSelected() bool {
	return c.WhatsApp && c.SMS && c.Call
}
