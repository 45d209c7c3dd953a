package facility

import "math"

// earthRadiusKm is the mean Earth radius (IUGG).
const earthRadiusKm = 6371.0088

// DistanceFunc returns the distance between two facilities.
type DistanceFunc func(a, b Facility) float64

// RiskFunc returns F[i][j][k][p] for facility i at position k and facility
// j at position p. Positions are 0-based.
type RiskFunc func(fs []Facility, i, j, k, p int) float64

// Haversine is the great-circle distance in kilometres.
func Haversine(a, b Facility) float64 {
	const rad = math.Pi / 180
	var (
		lat1 = a.Lat * rad
		lat2 = b.Lat * rad
		dLat = (b.Lat - a.Lat) * rad
		dLon = (b.Lon - a.Lon) * rad
		h    = math.Sin(dLat/2)*math.Sin(dLat/2) +
			math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	)

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Euclidean is the plane distance over raw (lat, lon) values.
func Euclidean(a, b Facility) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lon-b.Lon)
}

// SuccessorRisk charges the leg into j: 1/(risk[j]·p) when p == k+1.
func SuccessorRisk(fs []Facility, _, j, k, p int) float64 {
	if p != k+1 {
		return 0
	}

	return 1 / float64(fs[j].Risk*p)
}

// PredecessorRisk charges the leg into i: 1/(risk[i]·k) when k == p+1.
func PredecessorRisk(fs []Facility, i, _, k, p int) float64 {
	if k != p+1 {
		return 0
	}

	return 1 / float64(fs[i].Risk*k)
}
