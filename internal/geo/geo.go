// Package geo has the coarse geographic helpers used to pre-filter subcontractors.
package geo

import "math"

const earthRadiusKm = 6371.0

type BoundingBox struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// Around returns the box enclosing a circle of radiusKm around the point.
// Boxes are clamped at the poles and the antimeridian rather than wrapped.
func Around(latitude, longitude, radiusKm float64) BoundingBox {
	latDelta := radiusKm / earthRadiusKm * 180 / math.Pi

	lonDelta := 180.0
	if cos := math.Cos(latitude * math.Pi / 180); cos > 1e-9 {
		lonDelta = math.Min(180, latDelta/cos)
	}

	return BoundingBox{
		MinLatitude:  math.Max(-90, latitude-latDelta),
		MaxLatitude:  math.Min(90, latitude+latDelta),
		MinLongitude: math.Max(-180, longitude-lonDelta),
		MaxLongitude: math.Min(180, longitude+lonDelta),
	}
}

func (b BoundingBox) Contains(latitude, longitude float64) bool {
	return latitude >= b.MinLatitude && latitude <= b.MaxLatitude &&
		longitude >= b.MinLongitude && longitude <= b.MaxLongitude
}

// DistanceKm is the great-circle (haversine) distance between two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
