// Package geo provides the geodesic primitives used to measure route
// geometry: haversine distances, nearest-vertex lookup on a polyline and
// partial path length sums.
//
// All functions operate on plain lat/lng slices so callers can pass route
// path arrays straight from the dataset without conversion.
package geo
