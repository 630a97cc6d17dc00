package engine

import (
	"github.com/umahmood/haversine"

	"housing-dashboard/models"
)

// MapPoint is one plotted listing on the property map. Selected mirrors the
// listing's membership in the current city selection so the UI can color
// points differentially.
type MapPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Price     float64 `json:"price"`
	Beds      float64 `json:"beds"`
	Baths     float64 `json:"baths"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Selected  bool    `json:"selected"`
}

// HeatPoint is one price-weighted coordinate for the density heatmap.
type HeatPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Weight    float64 `json:"weight"`
}

// MapCenter is the viewport center: the mean coordinate of all mappable
// listings.
type MapCenter struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MapData is the property-map payload.
type MapData struct {
	Center *MapCenter `json:"center,omitempty"`
	Points []MapPoint `json:"points"`
}

// HeatmapData is the density-heatmap payload.
type HeatmapData struct {
	Center *MapCenter  `json:"center,omitempty"`
	Points []HeatPoint `json:"points"`
}

// BuildMapData plots the tagged dataset. Listings without coordinates are
// skipped; the center is the mean of the plotted coordinates.
func BuildMapData(tagged []models.TaggedListing) *MapData {
	data := &MapData{Points: []MapPoint{}}
	var latSum, lngSum float64

	for _, t := range tagged {
		if !t.HasCoords {
			continue
		}
		data.Points = append(data.Points, MapPoint{
			Latitude:  t.Latitude,
			Longitude: t.Longitude,
			Price:     t.Price,
			Beds:      t.Beds,
			Baths:     t.Baths,
			Address:   t.Address,
			City:      t.City,
			Selected:  t.Selected,
		})
		latSum += t.Latitude
		lngSum += t.Longitude
	}

	if n := float64(len(data.Points)); n > 0 {
		data.Center = &MapCenter{Latitude: latSum / n, Longitude: lngSum / n}
	}
	return data
}

// BuildHeatmapData plots every mappable listing weighted by price, over the
// full dataset regardless of the current selection.
func BuildHeatmapData(listings []*models.Listing) *HeatmapData {
	data := &HeatmapData{Points: []HeatPoint{}}
	var latSum, lngSum float64

	for _, l := range listings {
		if !l.HasCoords {
			continue
		}
		data.Points = append(data.Points, HeatPoint{
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
			Weight:    l.Price,
		})
		latSum += l.Latitude
		lngSum += l.Longitude
	}

	if n := float64(len(data.Points)); n > 0 {
		data.Center = &MapCenter{Latitude: latSum / n, Longitude: lngSum / n}
	}
	return data
}

// WithinRadius returns the mappable listings within radiusKm of the given
// coordinate, preserving dataset order.
func WithinRadius(listings []*models.Listing, lat, lng, radiusKm float64) []*models.Listing {
	origin := haversine.Coord{Lat: lat, Lon: lng}

	result := make([]*models.Listing, 0)
	for _, l := range listings {
		if !l.HasCoords {
			continue
		}
		_, km := haversine.Distance(origin, haversine.Coord{Lat: l.Latitude, Lon: l.Longitude})
		if km <= radiusKm {
			result = append(result, l)
		}
	}
	return result
}
