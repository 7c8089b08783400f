// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"fmt"
)

// Accordion records which sections are expanded. Sections are independent, any
// number may be open at once. The zero value has every section closed.
type Accordion struct {
	PersonalInfo    bool `json:"personalInfo" yaml:"personalInfo"`
	VehicleInfo     bool `json:"vehicleInfo" yaml:"vehicleInfo"`
	BookingDetails  bool `json:"bookingDetails" yaml:"bookingDetails"`
	TermsConditions bool `json:"termsConditions" yaml:"termsConditions"`
}

// Toggle returns a copy of a with section flipped
func (a Accordion) Toggle(section Section) (Accordion, error) {
	switch section {
	case PersonalInfoSection:
		a.PersonalInfo = !a.PersonalInfo
	case VehicleInfoSection:
		a.VehicleInfo = !a.VehicleInfo
	case BookingDetailsSection:
		a.BookingDetails = !a.BookingDetails
	case TermsConditionsSection:
		a.TermsConditions = !a.TermsConditions
	default:
		return a, fmt.Errorf("%w %q", ErrUnknownSection, section)
	}

	return a, nil
}

// IsOpen reports whether section is expanded
func (a Accordion) IsOpen(section Section) bool {
	switch section {
	case PersonalInfoSection:
		return a.PersonalInfo
	case VehicleInfoSection:
		return a.VehicleInfo
	case BookingDetailsSection:
		return a.BookingDetails
	case TermsConditionsSection:
		return a.TermsConditions
	default:
		return false
	}
}
