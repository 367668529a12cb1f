package rendering

import "golang.org/x/image/math/f64"

// Matrix is a 2D affine transform stored row-major as
//
//	| m[0] m[1] m[2] |
//	| m[3] m[4] m[5] |
//
// so that x' = m[0]*x + m[1]*y + m[2] and y' = m[3]*x + m[4]*y + m[5].
type Matrix f64.Aff3

// Identity is the transform that leaves points unchanged.
var Identity = Matrix{1, 0, 0, 0, 1, 0}

// ScaleMatrix returns a scale transform.
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, 0, sy, 0}
}

// TranslateMatrix returns a translation transform.
func TranslateMatrix(dx, dy float64) Matrix {
	return Matrix{1, 0, dx, 0, 1, dy}
}

// Multiply returns m * n: n is applied to points first, then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p Offset) Offset {
	return Offset{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity
}

// Aff3 returns m as an x/image affine matrix, for use with golang.org/x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3(m)
}
