// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package locations converts a hierarchical country and city dataset into a flat
// index and provides the data sources that supply the raw tree.
package locations

// Node is one element of the location tree. Top level nodes are countries and
// their direct children are cities, anything deeper is ignored.
type Node struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Index maps country names to their ordered city names. Countries keep the order
// they appeared in the source tree. An Index is not modified after Build, a nil
// Index behaves like an empty one.
type Index struct {
	countries []string
	cities    map[string][]string
}

// Build creates an Index from tree. Every top level node becomes a country whose
// cities are the names of its direct children, in source order. A country without
// children gets an empty city list. When a country name repeats the later node
// supplies the cities while the earlier one keeps its position.
func Build(tree []Node) *Index {
	idx := &Index{cities: make(map[string][]string, len(tree))}

	for _, country := range tree {
		cities := make([]string, 0, len(country.Children))
		for _, city := range country.Children {
			cities = append(cities, city.Name)
		}

		if _, ok := idx.cities[country.Name]; !ok {
			idx.countries = append(idx.countries, country.Name)
		}
		idx.cities[country.Name] = cities
	}

	return idx
}

// Countries lists the country names in source order
func (i *Index) Countries() []string {
	if i == nil {
		return []string{}
	}

	res := make([]string, len(i.countries))
	copy(res, i.countries)

	return res
}

// Cities lists the cities of country, empty when the country is unknown
func (i *Index) Cities(country string) []string {
	if i == nil {
		return []string{}
	}

	cities, ok := i.cities[country]
	if !ok {
		return []string{}
	}

	res := make([]string, len(cities))
	copy(res, cities)

	return res
}

// Has reports whether country is a key of the index
func (i *Index) Has(country string) bool {
	if i == nil {
		return false
	}

	_, ok := i.cities[country]

	return ok
}

// Len is the number of countries in the index
func (i *Index) Len() int {
	if i == nil {
		return 0
	}

	return len(i.countries)
}

// Map returns a copy of the index as a plain map
func (i *Index) Map() map[string][]string {
	res := map[string][]string{}
	if i == nil {
		return res
	}

	for _, c := range i.countries {
		res[c] = i.Cities(c)
	}

	return res
}
