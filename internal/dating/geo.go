package dating

import "math"

const earthRadiusKm = 6371.0

// haversineDistance returns the great-circle distance in km.
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceKm returns the geodesic distance between two locations. ok is false
// when either side has no location.
func DistanceKm(from, to *Location) (km float64, ok bool) {
	if from == nil || to == nil {
		return 0, false
	}
	return haversineDistance(from.Latitude, from.Longitude, to.Latitude, to.Longitude), true
}

// boundingBox returns the lat/lng window that contains every point within
// radiusKm of center. It over-approximates near the poles.
func boundingBox(center Location, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	const kmPerDegree = math.Pi * earthRadiusKm / 180

	dLat := radiusKm / kmPerDegree
	minLat = math.Max(-90, center.Latitude-dLat)
	maxLat = math.Min(90, center.Latitude+dLat)

	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	if cosLat < 0.01 {
		return minLat, maxLat, -180, 180
	}
	dLng := radiusKm / (kmPerDegree * cosLat)
	minLng = math.Max(-180, center.Longitude-dLng)
	maxLng = math.Min(180, center.Longitude+dLng)
	return minLat, maxLat, minLng, maxLng
}
