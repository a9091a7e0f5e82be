// Package risk defines the closed set of risk categories and the static
// reference tables keyed by them.
package risk

import (
	"fmt"
	"sort"
)

// Category is a medical specialty label used as the lookup key for
// treatment weights and offer descriptions.
type Category string

const (
	Cancer            Category = "Cancer"
	Dermatological    Category = "Dermatological"
	Endocrine         Category = "Endocrine"
	Gastrointestinal  Category = "Gastrointestinal"
	Cardiovascular    Category = "Cardiovascular"
	InfectiousDisease Category = "Infectious Disease"
	Immunological     Category = "Immunological"
	Kidney            Category = "Kidney"
	Hematological     Category = "Hematological"
	Musculoskeletal   Category = "Musculoskeletal"
	Neurology         Category = "Neurology"
	Urological        Category = "Urological"
	Psychiatric       Category = "Psychiatric"
	Ophthalmological  Category = "Ophthalmological"
	Respiratory       Category = "Respiratory"
	Hepatological     Category = "Hepatological"
	Gynaecological    Category = "Gynaecological"
	Andrological      Category = "Andrological"
	Endodontic        Category = "Endodontic"
	Otolaryngological Category = "Otolaryngological"
)

// FallbackDescription is offered when a category has no dedicated description.
const FallbackDescription = "an exclusive health check-up package tailored to your needs."

// entry holds the reference data for one category.
type entry struct {
	weight      float64
	description string
}

// table is the single source of reference data; every category carries both
// a weight and a description.
var table = map[Category]entry{ //nolint:gochecknoglobals // immutable reference table
	Cancer:            {1.5, "a complimentary cancer screening and a priority consultation with our oncologists"},
	Dermatological:    {1.2, "a free skin check-up with our dermatology specialists"},
	Endocrine:         {1.3, "a comprehensive endocrine health evaluation"},
	Gastrointestinal:  {1.4, "an in-depth digestive health analysis"},
	Cardiovascular:    {1.5, "a free consultation with our leading cardiologist and a detailed heart health assessment"},
	InfectiousDisease: {1.1, "a specialized infectious disease consultation"},
	Immunological:     {1.2, "a detailed immune system health assessment"},
	Kidney:            {1.4, "a complete kidney function test and consultation"},
	Hematological:     {1.3, "a full blood health examination"},
	Musculoskeletal:   {1.3, "a thorough musculoskeletal assessment"},
	Neurology:         {1.4, "a free brain health assessment and a personalized neurological care plan"},
	Urological:        {1.3, "a detailed urological health check"},
	Psychiatric:       {1.2, "a mental health screening with our psychiatric team"},
	Ophthalmological:  {1.1, "a complete eye health assessment"},
	Respiratory:       {1.3, "a full respiratory system check-up"},
	Hepatological:     {1.3, "a comprehensive liver function test"},
	Gynaecological:    {1.2, "a full women’s health check"},
	Andrological:      {1.2, "a complete men’s health assessment"},
	Endodontic:        {1.1, "a detailed dental and endodontic examination"},
	Otolaryngological: {1.1, "a thorough ear, nose, and throat evaluation"},
}

// All returns every known category sorted by label.
func All() []Category {
	out := make([]Category, 0, len(table))
	for c := range table {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Known reports whether c belongs to the closed set.
func (c Category) Known() bool {
	_, ok := table[c]
	return ok
}

// String returns the category label.
func (c Category) String() string { return string(c) }

// Weight returns the treatment weight for c. Unknown categories are an error.
func Weight(c Category) (float64, error) {
	e, ok := table[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return e.weight, nil
}

// Description returns the offer description for c and whether a dedicated
// description exists. Unknown categories get FallbackDescription.
func Description(c Category) (string, bool) {
	e, ok := table[c]
	if !ok {
		return FallbackDescription, false
	}
	return e.description, true
}
