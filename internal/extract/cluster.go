package extract

import (
	"math"

	"github.com/dkorolev/crossfoot/internal/model"
)

// dbscan groups point indices into density-based clusters over (row, col)
// coordinates. eps is the Euclidean neighborhood radius; minNeighbors is
// the core-point threshold, counting the point itself. Points that end up
// in no cluster are noise and are omitted from the result. Clusters are
// returned in discovery order, which downstream code treats as the
// first-detected-wins order for cell ownership.
func dbscan(points []model.CellPoint, eps float64, minNeighbors int) [][]int {
	const (
		unvisited = 0
		noise     = -1
	)

	labels := make([]int, len(points))

	neighborsOf := func(i int) []int {
		var found []int
		for j := range points {
			if cellDistance(points[i], points[j]) <= eps {
				found = append(found, j)
			}
		}
		return found
	}

	var clusters [][]int
	clusterID := 0

	for i := range points {
		if labels[i] != unvisited {
			continue
		}

		neighbors := neighborsOf(i)
		if len(neighbors) < minNeighbors {
			labels[i] = noise
			continue
		}

		clusterID++
		labels[i] = clusterID
		members := []int{i}

		// Expand the cluster over a growing frontier. Border points
		// (dense enough to join, not dense enough to expand) are
		// absorbed but contribute no further neighbors.
		for k := 0; k < len(neighbors); k++ {
			j := neighbors[k]
			if labels[j] == noise {
				labels[j] = clusterID
				members = append(members, j)
				continue
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = clusterID
			members = append(members, j)

			reach := neighborsOf(j)
			if len(reach) >= minNeighbors {
				neighbors = append(neighbors, reach...)
			}
		}

		clusters = append(clusters, members)
	}

	return clusters
}

func cellDistance(a, b model.CellPoint) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	return math.Sqrt(dr*dr + dc*dc)
}
