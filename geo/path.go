package geo

// NearestVertex returns the index of the polyline vertex closest to the
// given coordinate, plus the distance to it in meters. Ties keep the lowest
// index. Returns -1 for an empty polyline.
func NearestVertex(lat, lng float64, lats, lngs []float64) (int, float64) {
	n := len(lats)
	if len(lngs) < n {
		n = len(lngs)
	}
	if n == 0 {
		return -1, 0
	}
	best := 0
	bestDist := DistanceMeters(lat, lng, lats[0], lngs[0])
	for i := 1; i < n; i++ {
		d := DistanceMeters(lat, lng, lats[i], lngs[i])
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

// PathLengthMeters returns the length of the whole polyline, summing the
// haversine distance of every consecutive vertex pair.
func PathLengthMeters(lats, lngs []float64) float64 {
	n := len(lats)
	if len(lngs) < n {
		n = len(lngs)
	}
	if n < 2 {
		return 0
	}
	return SpanMeters(lats, lngs, 0, n-1)
}

// SpanMeters returns the polyline length between two vertex indices,
// walking vertex by vertex from the lower index to the higher one. The
// order of from/to does not matter.
func SpanMeters(lats, lngs []float64, from, to int) float64 {
	if from > to {
		from, to = to, from
	}
	if from < 0 {
		from = 0
	}
	max := len(lats)
	if len(lngs) < max {
		max = len(lngs)
	}
	if to > max-1 {
		to = max - 1
	}
	total := 0.0
	for i := from; i < to; i++ {
		total += DistanceMeters(lats[i], lngs[i], lats[i+1], lngs[i+1])
	}
	return total
}
