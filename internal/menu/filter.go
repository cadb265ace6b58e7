package menu

import (
	"math"
	"strings"
)

type SearchMode string

const (
	SearchPartial SearchMode = "partial"
	SearchExact   SearchMode = "exact"
)

type PriceMode string

const (
	PriceAny    PriceMode = ""
	PriceRange  PriceMode = "range"
	PricePreset PriceMode = "preset"
)

// PriceBound is either an inclusive [Min, Max] range or a named preset,
// never both. Mode decides which fields are read.
type PriceBound struct {
	Mode   PriceMode
	Min    float64
	Max    float64
	Preset string
}

type priceRange struct {
	min, max float64
}

var pricePresets = map[string]priceRange{
	"budget":   {0, 15},
	"moderate": {15, 30},
	"premium":  {30, math.Inf(1)},
}

// PresetRange returns the fixed bounds of a named preset.
func PresetRange(name string) (lo, hi float64, ok bool) {
	r, ok := pricePresets[name]
	return r.min, r.max, ok
}

// StatusFilters are independent switches. A switch that is off places no
// restriction on its attribute.
type StatusFilters struct {
	Active       bool
	Featured     bool
	Seasonal     bool
	SpecialOffer bool
}

type Filter struct {
	SearchText    string
	SearchMode    SearchMode
	CaseSensitive bool
	CategoryIDs   []uint
	Price         PriceBound
	Status        StatusFilters
}

// Apply keeps the items that satisfy every part of f, in their original order.
func Apply(items []ItemResponse, f Filter) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

func (f Filter) Match(it ItemResponse) bool {
	return f.matchText(it) &&
		f.matchCategory(it) &&
		f.matchPrice(it) &&
		f.matchStatus(it)
}

func (f Filter) matchText(it ItemResponse) bool {
	if f.SearchText == "" {
		return true
	}

	needle, name, desc := f.SearchText, it.Name, it.Description
	if !f.CaseSensitive {
		needle = strings.ToLower(needle)
		name = strings.ToLower(name)
		desc = strings.ToLower(desc)
	}

	if f.SearchMode == SearchExact {
		return name == needle || desc == needle
	}
	return strings.Contains(name, needle) || strings.Contains(desc, needle)
}

func (f Filter) matchCategory(it ItemResponse) bool {
	if len(f.CategoryIDs) == 0 {
		return true
	}
	if it.Category == nil {
		return false
	}
	for _, id := range f.CategoryIDs {
		if id == it.Category.ID {
			return true
		}
	}
	return false
}

func (f Filter) matchPrice(it ItemResponse) bool {
	switch f.Price.Mode {
	case PriceRange:
		return it.Price >= f.Price.Min && it.Price <= f.Price.Max
	case PricePreset:
		lo, hi, ok := PresetRange(f.Price.Preset)
		if !ok {
			// unknown presets are rejected by ParseFilter before they get here
			return true
		}
		return it.Price >= lo && it.Price <= hi
	default:
		return true
	}
}

func (f Filter) matchStatus(it ItemResponse) bool {
	s := f.Status
	if s.Active && !it.Active {
		return false
	}
	if s.Featured && !it.Featured {
		return false
	}
	if s.Seasonal && !it.Seasonal {
		return false
	}
	if s.SpecialOffer && !it.SpecialOffer {
		return false
	}
	return true
}

// PublicItems drops every inactive item.
func PublicItems(items []ItemResponse) []ItemResponse {
	return Apply(items, Filter{Status: StatusFilters{Active: true}})
}

// PublicCategories lists the distinct categories of active items in the order
// they are first seen. Items without a resolved category contribute nothing.
func PublicCategories(items []ItemResponse) []CategoryResponse {
	seen := make(map[uint]bool)
	cats := make([]CategoryResponse, 0)
	for _, it := range items {
		if !it.Active || it.Category == nil || seen[it.Category.ID] {
			continue
		}
		seen[it.Category.ID] = true
		cats = append(cats, *it.Category)
	}
	return cats
}

// PublicByCategory returns the active items whose category is named name.
func PublicByCategory(items []ItemResponse, name string) []ItemResponse {
	out := make([]ItemResponse, 0)
	for _, it := range items {
		if it.Active && it.Category != nil && it.Category.Name == name {
			out = append(out, it)
		}
	}
	return out
}
