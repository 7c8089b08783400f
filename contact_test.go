// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ContactMethods", func() {
	reach := func(w, s, c bool) ContactMethods {
		cm := ContactMethods{}.ToggleSelectAll(true)
		var err error
		for method, v := range map[ContactMethod]bool{WhatsApp: w, SMS: s, Call: c} {
			cm, err = cm.ToggleIndividual(method, v)
			Expect(err).ToNot(HaveOccurred())
		}
		return cm
	}

	It("Should derive select all for every combination", func() {
		for _, w := range []bool{true, false} {
			for _, s := range []bool{true, false} {
				for _, c := range []bool{true, false} {
					cm := reach(w, s, c)
					Expect(cm.WhatsApp).To(Equal(w))
					Expect(cm.SMS).To(Equal(s))
					Expect(cm.Call).To(Equal(c))
					Expect(cm.SelectAll).To(Equal(w && s && c), "w=%v s=%v c=%v", w, s, c)
				}
			}
		}
	})

	It("Should select all after the last individual method", func() {
		cm := ContactMethods{}

		cm, _ = cm.ToggleIndividual(WhatsApp, true)
		Expect(cm.SelectAll).To(BeFalse())
		cm, _ = cm.ToggleIndividual(SMS, true)
		Expect(cm.SelectAll).To(BeFalse())
		cm, _ = cm.ToggleIndividual(Call, true)
		Expect(cm.SelectAll).To(BeTrue())
	})

	It("Should ignore a stale select all flag", func() {
		cm := ContactMethods{SelectAll: true}
		cm, _ = cm.ToggleIndividual(WhatsApp, true)
		Expect(cm.SelectAll).To(BeFalse())
	})

	It("Should set every flag with select all", func() {
		Expect(ContactMethods{SMS: true}.ToggleSelectAll(true)).To(Equal(ContactMethods{WhatsApp: true, SMS: true, Call: true, SelectAll: true}))
		Expect(ContactMethods{SMS: true, SelectAll: true}.ToggleSelectAll(false)).To(Equal(ContactMethods{}))
	})

	It("Should reject unknown methods", func() {
		cm := ContactMethods{WhatsApp: true}
		res, err := cm.ToggleIndividual(ContactMethod(SelectAllField), true)
		Expect(err).To(MatchError(ErrUnknownContactMethod))
		Expect(res).To(Equal(cm))

		_, err = ParseContactMethod("email")
		Expect(err).To(MatchError(ErrUnknownContactMethod))

		m, err := ParseContactMethod("sms")
		Expect(err).ToNot(HaveOccurred())
		Expect(m).To(Equal(SMS))
	})

	It("Should report selections", func() {
		cm := ContactMethods{Call: true}
		Expect(cm.AnySelected()).To(BeTrue())
		Expect(cm.IsSelected(Call)).To(BeTrue())
		Expect(cm.IsSelected(SMS)).To(BeFalse())
		Expect(ContactMethods{}.AnySelected()).To(BeFalse())
	})
})

var _ = Describe("Accordion", func() {
	It("Should start closed", func() {
		a := Accordion{}
		for _, s := range Sections {
			Expect(a.IsOpen(s)).To(BeFalse())
		}
	})

	It("Should toggle sections independently", func() {
		a, err := Accordion{}.Toggle(PersonalInfoSection)
		Expect(err).ToNot(HaveOccurred())
		a, err = a.Toggle(TermsConditionsSection)
		Expect(err).ToNot(HaveOccurred())

		Expect(a).To(Equal(Accordion{PersonalInfo: true, TermsConditions: true}))

		a, _ = a.Toggle(PersonalInfoSection)
		Expect(a).To(Equal(Accordion{TermsConditions: true}))
	})

	It("Should reject unknown sections", func() {
		a := Accordion{VehicleInfo: true}
		res, err := a.Toggle("other")
		Expect(err).To(MatchError(ErrUnknownSection))
		Expect(res).To(Equal(a))
	})
})
