package models

// Listing is one housing record from the dataset. The dataset is loaded once
// at startup and never mutated; every derived view is a new slice.
type Listing struct {
	Address    string  `json:"address"`
	City       string  `json:"city"`
	Price      float64 `json:"price"`
	Beds       float64 `json:"beds"`
	Baths      float64 `json:"baths"`
	SquareFeet float64 `json:"squareFeet"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`

	// HasCoords is false when the source row had no usable coordinates;
	// map views skip such listings.
	HasCoords bool `json:"hasCoords"`
}

// ConstraintSet is the conjunction of user-selected filter bounds for one
// render cycle. It is built fresh per request and passed by value — the
// engine never holds constraint state between calls.
//
// All bounds are inclusive. An empty Cities slice matches every city; the
// HTTP boundary substitutes the configured seed city when the parameter is
// absent, so an empty set only reaches the engine when a caller asks for it.
type ConstraintSet struct {
	PriceMin float64  `json:"priceMin" validate:"gte=0"`
	PriceMax float64  `json:"priceMax" validate:"gtefield=PriceMin"`
	Cities   []string `json:"cities"`
	BedsMin  float64  `json:"bedsMin" validate:"gte=0"`
	BedsMax  float64  `json:"bedsMax" validate:"gtefield=BedsMin"`
	BathsMin float64  `json:"bathsMin" validate:"gte=0"`
	BathsMax float64  `json:"bathsMax" validate:"gtefield=BathsMin"`
	SqftMin  float64  `json:"sqftMin" validate:"gte=0"`
	SqftMax  float64  `json:"sqftMax" validate:"gtefield=SqftMin"`
}

// Summary holds the scalar aggregates shown on the overview tab.
type Summary struct {
	Count        int     `json:"count"`
	AveragePrice float64 `json:"averagePrice"`
	AverageSqft  float64 `json:"averageSqft"`
	AverageBeds  float64 `json:"averageBeds"`
	AverageBaths float64 `json:"averageBaths"`
}

// GroupStat is one group's mean in a group-average breakdown.
type GroupStat struct {
	Key     string  `json:"key"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ShareSlice is one slice of a market-share distribution. Slices whose share
// fell below the threshold are merged into a single trailing "Other" slice.
type ShareSlice struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// TaggedListing pairs a listing with its membership in the current city
// selection, for differential map coloring. Produced by ClassifySelection as
// a parallel structure — the source dataset is never tagged in place.
type TaggedListing struct {
	*Listing
	Selected bool `json:"selected"`
}

// Bounds describes the loaded dataset's value ranges and city vocabulary.
// The UI derives its slider limits and city dropdown from this, and the
// server uses it for constraint defaults.
type Bounds struct {
	PriceMin float64  `json:"priceMin"`
	PriceMax float64  `json:"priceMax"`
	BedsMin  float64  `json:"bedsMin"`
	BedsMax  float64  `json:"bedsMax"`
	BathsMin float64  `json:"bathsMin"`
	BathsMax float64  `json:"bathsMax"`
	SqftMin  float64  `json:"sqftMin"`
	SqftMax  float64  `json:"sqftMax"`
	Cities   []string `json:"cities"`
}
