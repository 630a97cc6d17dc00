package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"housing-dashboard/models"
)

// ErrEmptyView signals an aggregation over an empty filtered view. Callers
// must treat this as a first-class "no data for selection" state, not a crash.
var ErrEmptyView = errors.New("engine: empty view")

// OtherLabel is the synthetic market-share bucket for low-frequency groups.
const OtherLabel = "Other"

// Filter returns the listings satisfying every constraint simultaneously,
// preserving dataset order. It is pure and O(n): the result is a fresh slice
// of pointers into the immutable dataset.
//
// An empty Cities set matches all cities. Inverted bounds (min > max) are not
// an error — no listing can satisfy them, so the result is simply empty.
func Filter(listings []*models.Listing, c models.ConstraintSet) []*models.Listing {
	citySet := toLowerSet(c.Cities)

	result := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Price < c.PriceMin || l.Price > c.PriceMax {
			continue
		}
		if len(citySet) > 0 && !citySet[strings.ToLower(l.City)] {
			continue
		}
		if l.Beds < c.BedsMin || l.Beds > c.BedsMax {
			continue
		}
		if l.Baths < c.BathsMin || l.Baths > c.BathsMax {
			continue
		}
		if l.SquareFeet < c.SqftMin || l.SquareFeet > c.SqftMax {
			continue
		}
		result = append(result, l)
	}
	return result
}

// Summarize computes the arithmetic means shown on the overview tab.
// Returns ErrEmptyView for an empty view.
func Summarize(view []*models.Listing) (*models.Summary, error) {
	if len(view) == 0 {
		return nil, ErrEmptyView
	}

	var price, sqft, beds, baths float64
	for _, l := range view {
		price += l.Price
		sqft += l.SquareFeet
		beds += l.Beds
		baths += l.Baths
	}

	n := float64(len(view))
	return &models.Summary{
		Count:        len(view),
		AveragePrice: round2(price / n),
		AverageSqft:  round2(sqft / n),
		AverageBeds:  round2(beds / n),
		AverageBaths: round2(baths / n),
	}, nil
}

// GroupAverage groups listings by groupKey, computes the mean of valueKey per
// group, and returns groups sorted by descending average. Ties keep the
// group's first appearance order in the dataset, so output is deterministic.
func GroupAverage(listings []*models.Listing, groupKey, valueKey string) ([]models.GroupStat, error) {
	groupOf, err := dimensionAccessor(groupKey)
	if err != nil {
		return nil, err
	}
	valueOf, err := measureAccessor(valueKey)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	for _, l := range listings {
		key := groupOf(l)
		b, exists := buckets[key]
		if !exists {
			b = &bucket{}
			buckets[key] = b
			order = append(order, key)
		}
		b.sum += valueOf(l)
		b.count++
	}

	stats := make([]models.GroupStat, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		stats = append(stats, models.GroupStat{
			Key:     key,
			Average: round2(b.sum / float64(b.count)),
			Count:   b.count,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Average > stats[j].Average })
	return stats, nil
}

// MarketShare computes each group's percentage share of total row count.
// Groups whose share is strictly below thresholdPercent are merged into a
// trailing "Other" slice; a share exactly at the threshold is kept. Kept
// slices are ordered by descending share (ties by first appearance), and the
// returned percentages sum to 100 within floating-point tolerance.
func MarketShare(listings []*models.Listing, groupKey string, thresholdPercent float64) ([]models.ShareSlice, error) {
	groupOf, err := dimensionAccessor(groupKey)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, ErrEmptyView
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, l := range listings {
		key := groupOf(l)
		if _, exists := counts[key]; !exists {
			order = append(order, key)
		}
		counts[key]++
	}

	total := float64(len(listings))
	kept := make([]models.ShareSlice, 0, len(order))
	var other models.ShareSlice
	for _, key := range order {
		share := models.ShareSlice{
			Label:      key,
			Percentage: float64(counts[key]) / total * 100,
			Count:      counts[key],
		}
		if share.Percentage < thresholdPercent {
			other.Percentage += share.Percentage
			other.Count += share.Count
			continue
		}
		kept = append(kept, share)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Percentage > kept[j].Percentage })
	if other.Count > 0 {
		other.Label = OtherLabel
		kept = append(kept, other)
	}
	return kept, nil
}

// ClassifySelection tags each listing with its membership in the selected
// cities, for differential map coloring. The source slice and its listings
// are not modified — the tag lives on the returned parallel structure.
func ClassifySelection(listings []*models.Listing, cities []string) []models.TaggedListing {
	citySet := toLowerSet(cities)

	tagged := make([]models.TaggedListing, 0, len(listings))
	for _, l := range listings {
		tagged = append(tagged, models.TaggedListing{
			Listing:  l,
			Selected: citySet[strings.ToLower(l.City)],
		})
	}
	return tagged
}

// Bounds reports the dataset's value ranges and the distinct city list in
// first-seen order. The server derives constraint defaults from this and the
// UI builds its slider limits and city dropdown from it.
func Bounds(listings []*models.Listing) (*models.Bounds, error) {
	if len(listings) == 0 {
		return nil, ErrEmptyView
	}

	first := listings[0]
	b := &models.Bounds{
		PriceMin: first.Price, PriceMax: first.Price,
		BedsMin: first.Beds, BedsMax: first.Beds,
		BathsMin: first.Baths, BathsMax: first.Baths,
		SqftMin: first.SquareFeet, SqftMax: first.SquareFeet,
	}

	seen := make(map[string]bool)
	for _, l := range listings {
		b.PriceMin = min2(b.PriceMin, l.Price)
		b.PriceMax = max2(b.PriceMax, l.Price)
		b.BedsMin = min2(b.BedsMin, l.Beds)
		b.BedsMax = max2(b.BedsMax, l.Beds)
		b.BathsMin = min2(b.BathsMin, l.Baths)
		b.BathsMax = max2(b.BathsMax, l.Baths)
		b.SqftMin = min2(b.SqftMin, l.SquareFeet)
		b.SqftMax = max2(b.SqftMax, l.SquareFeet)
		if !seen[l.City] {
			seen[l.City] = true
			b.Cities = append(b.Cities, l.City)
		}
	}
	return b, nil
}

// DefaultConstraints builds the widest constraint set for a dataset, the
// same way the dashboard seeds its sliders at dataset min/max.
func DefaultConstraints(b *models.Bounds, cities []string) models.ConstraintSet {
	return models.ConstraintSet{
		PriceMin: b.PriceMin, PriceMax: b.PriceMax,
		Cities:  cities,
		BedsMin: b.BedsMin, BedsMax: b.BedsMax,
		BathsMin: b.BathsMin, BathsMax: b.BathsMax,
		SqftMin: b.SqftMin, SqftMax: b.SqftMax,
	}
}

// ============================================================================
// COLUMN ACCESSORS
// ============================================================================

func dimensionAccessor(key string) (func(*models.Listing) string, error) {
	switch normalizeKey(key) {
	case "city":
		return func(l *models.Listing) string { return l.City }, nil
	case "address":
		return func(l *models.Listing) string { return l.Address }, nil
	default:
		return nil, fmt.Errorf("engine: unknown group key %q", key)
	}
}

func measureAccessor(key string) (func(*models.Listing) float64, error) {
	switch normalizeKey(key) {
	case "price":
		return func(l *models.Listing) float64 { return l.Price }, nil
	case "beds":
		return func(l *models.Listing) float64 { return l.Beds }, nil
	case "baths":
		return func(l *models.Listing) float64 { return l.Baths }, nil
	case "square_feet", "squarefeet", "sqft":
		return func(l *models.Listing) float64 { return l.SquareFeet }, nil
	default:
		return nil, fmt.Errorf("engine: unknown value key %q", key)
	}
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		set[strings.ToLower(item)] = true
	}
	return set
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func min2(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func max2(a, b float64) float64 {
	if b > a {
		return b
	}
	return a
}
