// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"strings"
)

// SectionResults holds the pass or fail outcome of each section
type SectionResults struct {
	PersonalInfo    bool `json:"personalInfo"`
	VehicleInfo     bool `json:"vehicleInfo"`
	BookingDetails  bool `json:"bookingDetails"`
	TermsConditions bool `json:"termsConditions"`
}

// Valid is true when every section passed
func (r SectionResults) Valid() bool {
	return r.PersonalInfo && r.VehicleInfo && r.BookingDetails && r.TermsConditions
}

// Failed lists the sections that did not pass in presentation order
func (r SectionResults) Failed() []Section {
	var failed []Section

	for _, s := range Sections {
		if !r.passed(s) {
			failed = append(failed, s)
		}
	}

	return failed
}

func (r SectionResults) passed(s Section) bool {
	switch s {
	case PersonalInfoSection:
		return r.PersonalInfo
	case VehicleInfoSection:
		return r.VehicleInfo
	case BookingDetailsSection:
		return r.BookingDetails
	case TermsConditionsSection:
		return r.TermsConditions
	default:
		return false
	}
}

// Validate reports whether d may be submitted:
//
//   - every personal and vehicle field is non-empty once surrounding whitespace is removed
//   - reminders is true
//   - the terms are agreed and at least one contact method is selected
func Validate(d FormData) bool {
	return ValidateSections(d).Valid()
}

// ValidateSections evaluates the Validate rules per section
func ValidateSections(d FormData) SectionResults {
	d = d.Normalize()
	p := d.PersonalInfo
	v := d.VehicleInfo

	return SectionResults{
		PersonalInfo:    allFilled(p.FamilyName, p.FirstName, p.Mobile, p.Email, p.Country, p.City),
		VehicleInfo:     allFilled(v.Model, v.CarType, v.PlateNumber, v.MeterReading),
		BookingDetails:  d.BookingDetails.Reminders,
		TermsConditions: d.TermsConditions.Agreed && d.TermsConditions.ContactMethods.AnySelected(),
	}
}

func allFilled(vals ...string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}

	return true
}
