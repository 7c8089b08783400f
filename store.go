// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"fmt"

	"github.com/choria-io/booking/locations"
)

// SetField returns a copy of d with field in section set to value. Only the named
// section is replaced, all other sections are shared with d. String fields require
// a string value and boolean fields a bool.
//
// Contact method fields in the terms section are routed through the contact
// method aggregation so selectAll stays consistent with the individual methods.
func SetField(d FormData, section Section, field string, value any) (FormData, error) {
	d = d.Normalize()

	switch section {
	case PersonalInfoSection:
		return setPersonalInfo(d, field, value)
	case VehicleInfoSection:
		return setVehicleInfo(d, field, value)
	case BookingDetailsSection:
		return setBookingDetails(d, field, value)
	case TermsConditionsSection:
		return setTermsConditions(d, field, value)
	default:
		return d, fmt.Errorf("%w %q", ErrUnknownSection, section)
	}
}

// SetContactMethod returns a copy of d with one contact method set and selectAll recomputed
func SetContactMethod(d FormData, method ContactMethod, value bool) (FormData, error) {
	d = d.Normalize()

	cm, err := d.TermsConditions.ContactMethods.ToggleIndividual(method, value)
	if err != nil {
		return d, err
	}

	tc := *d.TermsConditions
	tc.ContactMethods = cm
	d.TermsConditions = &tc

	return d, nil
}

// SelectAllContactMethods returns a copy of d with every contact method set to value
func SelectAllContactMethods(d FormData, value bool) FormData {
	d = d.Normalize()

	tc := *d.TermsConditions
	tc.ContactMethods = tc.ContactMethods.ToggleSelectAll(value)
	d.TermsConditions = &tc

	return d
}

// FilteredCities is the list of cities valid for the country selected in d. It is
// empty when no country is selected or the country is not in the index. The
// selected city is never inspected or cleared here.
func FilteredCities(d FormData, index *locations.Index) []string {
	if d.PersonalInfo == nil || d.PersonalInfo.Country == "" {
		return []string{}
	}

	return index.Cities(d.PersonalInfo.Country)
}

func setPersonalInfo(d FormData, field string, value any) (FormData, error) {
	p := *d.PersonalInfo

	var target *string
	switch field {
	case FamilyNameField:
		target = &p.FamilyName
	case FirstNameField:
		target = &p.FirstName
	case MobileField:
		target = &p.Mobile
	case EmailField:
		target = &p.Email
	case CountryField:
		target = &p.Country
	case CityField:
		target = &p.City
	default:
		return d, unknownField(PersonalInfoSection, field)
	}

	err := assignString(target, PersonalInfoSection, field, value)
	if err != nil {
		return d, err
	}

	d.PersonalInfo = &p

	return d, nil
}

func setVehicleInfo(d FormData, field string, value any) (FormData, error) {
	v := *d.VehicleInfo

	var target *string
	switch field {
	case ModelField:
		target = &v.Model
	case CarTypeField:
		target = &v.CarType
	case PlateNumberField:
		target = &v.PlateNumber
	case MeterReadingField:
		target = &v.MeterReading
	default:
		return d, unknownField(VehicleInfoSection, field)
	}

	err := assignString(target, VehicleInfoSection, field, value)
	if err != nil {
		return d, err
	}

	d.VehicleInfo = &v

	return d, nil
}

func setBookingDetails(d FormData, field string, value any) (FormData, error) {
	if field != RemindersField {
		return d, unknownField(BookingDetailsSection, field)
	}

	b := *d.BookingDetails
	err := assignBool(&b.Reminders, BookingDetailsSection, field, value)
	if err != nil {
		return d, err
	}

	d.BookingDetails = &b

	return d, nil
}

func setTermsConditions(d FormData, field string, value any) (FormData, error) {
	var bv bool
	err := assignBool(&bv, TermsConditionsSection, field, value)

	switch field {
	case AgreedField:
		if err != nil {
			return d, err
		}
		tc := *d.TermsConditions
		tc.Agreed = bv
		d.TermsConditions = &tc

		return d, nil

	case SelectAllField:
		if err != nil {
			return d, err
		}

		return SelectAllContactMethods(d, bv), nil

	case WhatsAppField, SMSField, CallField:
		if err != nil {
			return d, err
		}

		return SetContactMethod(d, ContactMethod(field), bv)

	default:
		return d, unknownField(TermsConditionsSection, field)
	}
}

func assignString(target *string, section Section, field string, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w for %s.%s: expected a string, got %T", ErrInvalidValue, section, field, value)
	}

	*target = s

	return nil
}

func assignBool(target *bool, section Section, field string, value any) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w for %s.%s: expected a boolean, got %T", ErrInvalidValue, section, field, value)
	}

	*target = b

	return nil
}

func unknownField(section Section, field string) error {
	return fmt.Errorf("%w %q in section %s", ErrUnknownField, field, section)
}
