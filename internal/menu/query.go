package menu

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var filterParams = []string{
	"search", "searchMode", "caseSensitive", "categories",
	"minPrice", "maxPrice", "pricePreset",
	"active", "featured", "seasonal", "specialOffer",
}

// ParseFilter builds a Filter from query parameters, e.g.
// ?search=soup&searchMode=exact&categories=1,4&pricePreset=budget&active=true
// The second result reports whether any filter parameter was present at all.
func ParseFilter(c *fiber.Ctx) (Filter, bool, error) {
	var f Filter

	present := false
	for _, key := range filterParams {
		if c.Query(key) != "" {
			present = true
			break
		}
	}
	if !present {
		return f, false, nil
	}

	f.SearchText = c.Query("search")

	switch mode := SearchMode(c.Query("searchMode")); mode {
	case "", SearchPartial:
		f.SearchMode = SearchPartial
	case SearchExact:
		f.SearchMode = SearchExact
	default:
		return f, true, fiber.NewError(fiber.StatusBadRequest, "searchMode must be 'partial' or 'exact'")
	}

	var err error
	if f.CaseSensitive, err = queryBool(c, "caseSensitive"); err != nil {
		return f, true, err
	}

	if raw := c.Query("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return f, true, fiber.NewError(fiber.StatusBadRequest, "categories must be a comma separated list of ids")
			}
			f.CategoryIDs = append(f.CategoryIDs, uint(id))
		}
	}

	if f.Price, err = parsePriceBound(c); err != nil {
		return f, true, err
	}

	if f.Status.Active, err = queryBool(c, "active"); err != nil {
		return f, true, err
	}
	if f.Status.Featured, err = queryBool(c, "featured"); err != nil {
		return f, true, err
	}
	if f.Status.Seasonal, err = queryBool(c, "seasonal"); err != nil {
		return f, true, err
	}
	if f.Status.SpecialOffer, err = queryBool(c, "specialOffer"); err != nil {
		return f, true, err
	}

	return f, true, nil
}

func parsePriceBound(c *fiber.Ctx) (PriceBound, error) {
	preset := c.Query("pricePreset")
	minRaw, maxRaw := c.Query("minPrice"), c.Query("maxPrice")

	if preset != "" {
		if minRaw != "" || maxRaw != "" {
			return PriceBound{}, fiber.NewError(fiber.StatusBadRequest, "pricePreset cannot be combined with minPrice/maxPrice")
		}
		if _, _, ok := PresetRange(preset); !ok {
			return PriceBound{}, fiber.NewError(fiber.StatusBadRequest, "Unknown pricePreset: "+preset)
		}
		return PriceBound{Mode: PricePreset, Preset: preset}, nil
	}

	if minRaw == "" && maxRaw == "" {
		return PriceBound{}, nil
	}

	b := PriceBound{Mode: PriceRange, Min: 0, Max: math.Inf(1)}
	if minRaw != "" {
		v, err := strconv.ParseFloat(minRaw, 64)
		if err != nil || v < 0 {
			return PriceBound{}, fiber.NewError(fiber.StatusBadRequest, "minPrice must be a non-negative number")
		}
		b.Min = v
	}
	if maxRaw != "" {
		v, err := strconv.ParseFloat(maxRaw, 64)
		if err != nil || v < 0 {
			return PriceBound{}, fiber.NewError(fiber.StatusBadRequest, "maxPrice must be a non-negative number")
		}
		b.Max = v
	}
	if b.Min > b.Max {
		return PriceBound{}, fiber.NewError(fiber.StatusBadRequest, "minPrice cannot be greater than maxPrice")
	}
	return b, nil
}

func queryBool(c *fiber.Ctx, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fiber.NewError(fiber.StatusBadRequest, key+" must be true or false")
	}
	return v, nil
}
