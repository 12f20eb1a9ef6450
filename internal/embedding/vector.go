package embedding

import "math"

// Entry is one non-zero component of a sparse vector.
type Entry struct {
	Index  int
	Weight float64
}

// Vector is a sparse vector with entries sorted by ascending Index.
type Vector []Entry

// Dot returns the inner product of two sorted sparse vectors.
func (v Vector) Dot(o Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v) && j < len(o) {
		switch {
		case v[i].Index == o[j].Index:
			sum += v[i].Weight * o[j].Weight
			i++
			j++
		case v[i].Index < o[j].Index:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// Normalize scales v to unit length in place. A zero vector is left unchanged.
func (v Vector) Normalize() Vector {
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i].Weight /= norm
	}
	return v
}

// IsZero reports whether v has no non-zero component.
func (v Vector) IsZero() bool {
	for _, e := range v {
		if e.Weight != 0 {
			return false
		}
	}
	return true
}
