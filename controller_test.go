// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"context"
	"errors"

	"github.com/choria-io/booking/locations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Controller", func() {
	var (
		ctrl   *gomock.Controller
		source *MockLocationSource
		sink   *MockSink
		c      *Controller
		ctx    context.Context
		tree   []locations.Node
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		source = NewMockLocationSource(ctrl)
		sink = NewMockSink(ctrl)
		ctx = context.Background()
		tree = []locations.Node{
			{ID: "1", Name: "Jordan", Children: []locations.Node{{ID: "2", Name: "Amman"}, {ID: "3", Name: "Irbid"}}},
			{ID: "4", Name: "Egypt", Children: []locations.Node{{ID: "5", Name: "Cairo"}}},
		}
		c = New(WithLocationSource(source), WithSink(sink))
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	fill := func(d FormData) {
		for s, fields := range d.Map() {
			section := Section(s)
			for f, v := range fields.(map[string]any) {
				if f == "contactMethods" {
					continue
				}
				Expect(c.SetField(section, f, v)).To(Succeed())
			}
		}
		cm := d.TermsConditions.ContactMethods
		for _, m := range ContactMethodNames {
			Expect(c.ToggleContactMethod(m, cm.IsSelected(m))).To(Succeed())
		}
	}

	Describe("New", func() {
		It("Should start empty", func() {
			s := c.State()
			Expect(s.Form).To(Equal(NewFormData()))
			Expect(s.Accordion).To(Equal(Accordion{}))
			Expect(s.Countries).To(BeEmpty())
			Expect(s.FilteredCities).To(BeEmpty())
			Expect(s.LocationStatus).To(Equal(LocationsPending))
		})

		It("Should not share the form with state snapshots", func() {
			Expect(c.SetField(PersonalInfoSection, FirstNameField, "Sami")).To(Succeed())

			s := c.State()
			s.Form.PersonalInfo.FirstName = "Rana"
			s.Form.TermsConditions.ContactMethods.SMS = true

			Expect(c.Form().PersonalInfo.FirstName).To(Equal("Sami"))
			Expect(c.Form().TermsConditions.ContactMethods.SMS).To(BeFalse())
			Expect(c.State().Form.PersonalInfo.FirstName).To(Equal("Sami"))
			Expect(s.Form.VehicleInfo).ToNot(BeIdenticalTo(c.Form().VehicleInfo))
		})

		It("Should support a shared index", func() {
			idx := locations.Build(tree)
			c = New(WithLocationIndex(idx))
			Expect(c.LocationStatus()).To(Equal(LocationsReady))
			Expect(c.Countries()).To(Equal([]string{"Jordan", "Egypt"}))
			Expect(c.LocationIndex()).To(BeIdenticalTo(idx))
		})
	})

	Describe("LoadLocations", func() {
		It("Should fetch using the configured query", func() {
			q := locations.Query{Path: "/x", Language: "ar"}
			c = New(WithLocationSource(source), WithQuery(q))
			source.EXPECT().Fetch(gomock.Any(), q).Return(tree, nil)

			Expect(c.LoadLocations(ctx)).To(Equal(LocationsReady))
			Expect(c.Countries()).To(Equal([]string{"Jordan", "Egypt"}))
		})

		It("Should use the default query", func() {
			source.EXPECT().Fetch(gomock.Any(), locations.Query{Path: locations.DefaultPath, Language: locations.DefaultLanguage}).Return(tree, nil)
			Expect(c.LoadLocations(ctx)).To(Equal(LocationsReady))
		})

		It("Should absorb and log failures", func() {
			log := NewMockLogger(ctrl)
			c = New(WithLocationSource(source), WithLogger(log))

			source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
			log.EXPECT().Errorf(gomock.Any(), gomock.Any())

			Expect(c.LoadLocations(ctx)).To(Equal(LocationsUnavailable))
			Expect(c.Countries()).To(BeEmpty())

			Expect(c.SetField(PersonalInfoSection, CountryField, "Jordan")).To(Succeed())
			Expect(c.FilteredCities()).To(BeEmpty())
		})

		It("Should keep the previous index when a refresh fails", func() {
			source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(tree, nil)
			source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

			Expect(c.LoadLocations(ctx)).To(Equal(LocationsReady))
			Expect(c.SetField(PersonalInfoSection, CountryField, "Jordan")).To(Succeed())

			Expect(c.LoadLocations(ctx)).To(Equal(LocationsStale))
			Expect(c.FilteredCities()).To(Equal([]string{"Amman", "Irbid"}))
		})

		It("Should recompute cities when the index arrives late", func() {
			Expect(c.SetField(PersonalInfoSection, CountryField, "Jordan")).To(Succeed())
			Expect(c.FilteredCities()).To(BeEmpty())

			source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(tree, nil)
			c.LoadLocations(ctx)
			Expect(c.FilteredCities()).To(Equal([]string{"Amman", "Irbid"}))

			c.ReplaceLocations(locations.Build(tree[1:]))
			Expect(c.FilteredCities()).To(BeEmpty())
		})

		It("Should fail without a source", func() {
			c = New()
			Expect(c.LoadLocations(ctx)).To(Equal(LocationsUnavailable))
		})
	})

	Describe("Booking flows", func() {
		BeforeEach(func() {
			source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]locations.Node{
				{Name: "Jordan", Children: []locations.Node{{Name: "Amman"}, {Name: "Irbid"}}},
			}, nil)
			c.LoadLocations(ctx)
		})

		It("Should filter cities by country and keep a stale city", func() {
			Expect(c.SetField(PersonalInfoSection, CountryField, "Jordan")).To(Succeed())
			Expect(c.FilteredCities()).To(Equal([]string{"Amman", "Irbid"}))

			Expect(c.SetField(PersonalInfoSection, CityField, "Amman")).To(Succeed())
			Expect(c.SetField(PersonalInfoSection, CountryField, "Egypt")).To(Succeed())
			Expect(c.FilteredCities()).To(BeEmpty())
			Expect(c.Form().PersonalInfo.City).To(Equal("Amman"))
		})

		It("Should select all once every method is selected", func() {
			Expect(c.ToggleContactMethod(WhatsApp, true)).To(Succeed())
			Expect(c.ToggleContactMethod(SMS, true)).To(Succeed())
			Expect(c.Form().TermsConditions.ContactMethods.SelectAll).To(BeFalse())
			Expect(c.ToggleContactMethod(Call, true)).To(Succeed())
			Expect(c.Form().TermsConditions.ContactMethods.SelectAll).To(BeTrue())

			c.ToggleSelectAll(false)
			Expect(c.Form().TermsConditions.ContactMethods).To(Equal(ContactMethods{}))
		})

		It("Should reject bad edits without changing state", func() {
			before := c.Form()
			Expect(c.SetField(PersonalInfoSection, "age", "1")).To(MatchError(ErrUnknownField))
			Expect(c.ToggleContactMethod("email", true)).To(MatchError(ErrUnknownContactMethod))
			Expect(c.ToggleSection("other")).To(MatchError(ErrUnknownSection))
			Expect(c.Form()).To(Equal(before))
			Expect(c.Accordion()).To(Equal(Accordion{}))
		})
	})

	Describe("ToggleSection", func() {
		It("Should toggle independently", func() {
			Expect(c.ToggleSection(VehicleInfoSection)).To(Succeed())
			Expect(c.ToggleSection(BookingDetailsSection)).To(Succeed())
			Expect(c.Accordion()).To(Equal(Accordion{VehicleInfo: true, BookingDetails: true}))
		})
	})

	Describe("Submit", func() {
		It("Should hand a valid form to the sink", func() {
			fill(completeForm())
			Expect(c.Form().Map()).To(Equal(completeForm().Map()))

			sink.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d FormData) error {
				Expect(d.Map()).To(Equal(completeForm().Map()))
				return nil
			})

			ok, err := c.Submit(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("Should not call the sink for an invalid form", func() {
			fill(completeForm())
			Expect(c.SetField(TermsConditionsSection, AgreedField, false)).To(Succeed())

			ok, err := c.Submit(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("Should report sink failures", func() {
			fill(completeForm())
			sink.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(errors.New("bad gateway"))

			ok, err := c.Submit(ctx)
			Expect(err).To(MatchError(ContainSubstring("bad gateway")))
			Expect(ok).To(BeFalse())
		})

		It("Should log submissions without a sink", func() {
			log := NewMockLogger(ctrl)
			c = New(WithLogger(log))
			c.Replace(completeForm())

			log.EXPECT().Infof(gomock.Any(), gomock.Any())
			log.EXPECT().Debugf(gomock.Any())

			ok, err := c.Submit(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())
		})
	})

	Describe("Replace and Reset", func() {
		It("Should derive select all on replace", func() {
			d := completeForm()
			d.TermsConditions.ContactMethods = ContactMethods{WhatsApp: true, SMS: true, Call: true}
			c.Replace(d)
			Expect(c.Form().TermsConditions.ContactMethods.SelectAll).To(BeTrue())

			c.Replace(FormData{})
			Expect(c.Form()).To(Equal(NewFormData()))
		})

		It("Should reset the form but keep locations", func() {
			c = New(WithLocationIndex(locations.Build(tree)))
			c.Replace(completeForm())
			Expect(c.FilteredCities()).To(Equal([]string{"Amman", "Irbid"}))
			Expect(c.ToggleSection(PersonalInfoSection)).To(Succeed())

			c.Reset()
			Expect(c.Form()).To(Equal(NewFormData()))
			Expect(c.Accordion()).To(Equal(Accordion{}))
			Expect(c.FilteredCities()).To(BeEmpty())
			Expect(c.Countries()).To(HaveLen(2))
		})
	})
})
