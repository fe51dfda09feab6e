// Package geom builds spanwise wing sections from leading/trailing edge
// point clouds and derives the aerodynamic reference quantities (Sref,
// Cref, Bref) the AVL writer needs. Coordinates follow the AVL convention:
// X chordwise (aft positive), Y spanwise, Z vertical (up positive).
package geom

import "math"

// Point3 is a single 3D coordinate. Values are immutable once produced by
// the point-file normalizer.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// Sub returns the vector p - o.
func (p Point3) Sub(o Point3) Point3 {
	return Point3{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Scale returns the point scaled by k. Used for unit conversion of raw
// exports (e.g. inches to feet).
func (p Point3) Scale(k float64) Point3 {
	return Point3{p.X * k, p.Y * k, p.Z * k}
}

// Norm returns the Euclidean magnitude of p treated as a vector.
func (p Point3) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// ScalePoints returns a copy of pts with every coordinate scaled by k,
// preserving order.
func ScalePoints(pts []Point3, k float64) []Point3 {
	out := make([]Point3, len(pts))
	for i, p := range pts {
		out[i] = p.Scale(k)
	}
	return out
}
