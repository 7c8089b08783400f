// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"fmt"
)

// Section identifies one of the four parts of the booking form
type Section string

const (
	PersonalInfoSection    Section = "personalInfo"
	VehicleInfoSection     Section = "vehicleInfo"
	BookingDetailsSection  Section = "bookingDetails"
	TermsConditionsSection Section = "termsConditions"
)

// Sections lists every section in presentation order
var Sections = []Section{PersonalInfoSection, VehicleInfoSection, BookingDetailsSection, TermsConditionsSection}

// ParseSection converts s into a Section, failing for unknown names
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case PersonalInfoSection, VehicleInfoSection, BookingDetailsSection, TermsConditionsSection:
		return Section(s), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownSection, s)
	}
}

// Field names as used in events, templates and serialized payloads
const (
	FamilyNameField   = "familyName"
	FirstNameField    = "firstName"
	MobileField       = "mobile"
	EmailField        = "email"
	CountryField      = "country"
	CityField         = "city"
	ModelField        = "model"
	CarTypeField      = "carType"
	PlateNumberField  = "plateNumber"
	MeterReadingField = "meterReading"
	RemindersField    = "reminders"
	AgreedField       = "agreed"
	WhatsAppField     = "whatsapp"
	SMSField          = "sms"
	CallField         = "call"
	SelectAllField    = "selectAll"
)

type PersonalInfo struct {
	FamilyName string `json:"familyName" yaml:"familyName"`
	FirstName  string `json:"firstName" yaml:"firstName"`
	Mobile     string `json:"mobile" yaml:"mobile"`
	Email      string `json:"email" yaml:"email"`
	Country    string `json:"country" yaml:"country"`
	// City is expected to be one of the filtered cities but this is not enforced
	City string `json:"city" yaml:"city"`
}

type VehicleInfo struct {
	Model        string `json:"model" yaml:"model"`
	CarType      string `json:"carType" yaml:"carType"`
	PlateNumber  string `json:"plateNumber" yaml:"plateNumber"`
	MeterReading string `json:"meterReading" yaml:"meterReading"`
}

type BookingDetails struct {
	Reminders bool `json:"reminders" yaml:"reminders"`
}

type TermsConditions struct {
	Agreed         bool           `json:"agreed" yaml:"agreed"`
	ContactMethods ContactMethods `json:"contactMethods" yaml:"contactMethods"`
}

// FormData is the complete value being edited. Sections are held by pointer and
// never modified once created, an edit replaces the pointer of the edited section
// and shares the others with the previous value. Comparing section pointers is
// therefore enough to detect which sections changed between two values.
type FormData struct {
	PersonalInfo    *PersonalInfo    `json:"personalInfo" yaml:"personalInfo"`
	VehicleInfo     *VehicleInfo     `json:"vehicleInfo" yaml:"vehicleInfo"`
	BookingDetails  *BookingDetails  `json:"bookingDetails" yaml:"bookingDetails"`
	TermsConditions *TermsConditions `json:"termsConditions" yaml:"termsConditions"`
}

// NewFormData creates a form value with all fields empty or false
func NewFormData() FormData {
	return FormData{
		PersonalInfo:    &PersonalInfo{},
		VehicleInfo:     &VehicleInfo{},
		BookingDetails:  &BookingDetails{},
		TermsConditions: &TermsConditions{},
	}
}

// Normalize returns d with any missing section replaced by its empty value, used
// for values decoded from files or requests
func (d FormData) Normalize() FormData {
	if d.PersonalInfo == nil {
		d.PersonalInfo = &PersonalInfo{}
	}
	if d.VehicleInfo == nil {
		d.VehicleInfo = &VehicleInfo{}
	}
	if d.BookingDetails == nil {
		d.BookingDetails = &BookingDetails{}
	}
	if d.TermsConditions == nil {
		d.TermsConditions = &TermsConditions{}
	}

	return d
}

// Clone returns a deep copy of d that shares no sections with it, missing
// sections are filled in as by Normalize
func (d FormData) Clone() FormData {
	d = d.Normalize()

	pi := *d.PersonalInfo
	vi := *d.VehicleInfo
	bd := *d.BookingDetails
	tc := *d.TermsConditions

	return FormData{PersonalInfo: &pi, VehicleInfo: &vi, BookingDetails: &bd, TermsConditions: &tc}
}

// Map renders the form as nested maps keyed by section and field name, this is
// the shape expressions and templates see
func (d FormData) Map() map[string]any {
	d = d.Normalize()
	cm := d.TermsConditions.ContactMethods

	return map[string]any{
		string(PersonalInfoSection): map[string]any{
			FamilyNameField: d.PersonalInfo.FamilyName,
			FirstNameField:  d.PersonalInfo.FirstName,
			MobileField:     d.PersonalInfo.Mobile,
			EmailField:      d.PersonalInfo.Email,
			CountryField:    d.PersonalInfo.Country,
			CityField:       d.PersonalInfo.City,
		},
		string(VehicleInfoSection): map[string]any{
			ModelField:        d.VehicleInfo.Model,
			CarTypeField:      d.VehicleInfo.CarType,
			PlateNumberField:  d.VehicleInfo.PlateNumber,
			MeterReadingField: d.VehicleInfo.MeterReading,
		},
		string(BookingDetailsSection): map[string]any{
			RemindersField: d.BookingDetails.Reminders,
		},
		string(TermsConditionsSection): map[string]any{
			AgreedField: d.TermsConditions.Agreed,
			"contactMethods": map[string]any{
				WhatsAppField:  cm.WhatsApp,
				SMSField:       cm.SMS,
				CallField:      cm.Call,
				SelectAllField: cm.SelectAll,
			},
		},
	}
}
