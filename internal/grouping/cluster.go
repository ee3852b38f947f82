package grouping

import (
	"math"
	"sort"
)

// DefaultThreshold is the cosine similarity at which two titles are linked.
const DefaultThreshold = 0.75

// Cosine returns the cosine similarity of a and b, or 0 when either is a
// zero vector or their lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Cluster links every pair of vectors whose similarity is at least threshold
// and returns the connected components with two or more members. Members are
// ascending and groups are ordered by their first member.
func Cluster(vectors [][]float32, threshold float64) [][]int {
	n := len(vectors)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if Cosine(vectors[i], vectors[j]) >= threshold {
				ri, rj := find(i), find(j)
				if ri == rj {
					continue
				}
				if ri < rj {
					parent[rj] = ri
				} else {
					parent[ri] = rj
				}
			}
		}
	}

	byRoot := map[int][]int{}
	for i := 0; i < n; i++ {
		r := find(i)
		byRoot[r] = append(byRoot[r], i)
	}
	var out [][]int
	for _, members := range byRoot {
		if len(members) >= 2 {
			out = append(out, members)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
