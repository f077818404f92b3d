package catalog

import (
	"math"
	"sort"
	"strconv"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const (
	// MinVotesForRanking is the sample size a book needs before it can be ranked.
	MinVotesForRanking = 3
	// topDistinctAverages is how many distinct average values place in the ranking.
	topDistinctAverages = 3
)

// TopBook is one leaderboard row.
type TopBook struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Average float64 `json:"average"`
}

// Top ranks the eligible ratings. Every entry whose average is one of the three highest
// distinct averages is returned, so ties are never cut. With fewer than three distinct
// averages every eligible entry is returned. Rows are ordered by average descending,
// then by numeric ID.
func Top(ratings []entities.Rating) []TopBook {
	eligible := make([]TopBook, 0, len(ratings))
	distinct := make(map[float64]struct{})
	for _, r := range ratings {
		if len(r.Values) < MinVotesForRanking {
			continue
		}
		eligible = append(eligible, TopBook{ID: r.ID, Title: r.Title, Average: r.Average})
		distinct[r.Average] = struct{}{}
	}

	cutoff := math.Inf(-1)
	if len(distinct) >= topDistinctAverages {
		averages := make([]float64, 0, len(distinct))
		for avg := range distinct {
			averages = append(averages, avg)
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(averages)))
		cutoff = averages[topDistinctAverages-1]
	}

	top := make([]TopBook, 0, len(eligible))
	for _, e := range eligible {
		if e.Average >= cutoff {
			top = append(top, e)
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Average != top[j].Average {
			return top[i].Average > top[j].Average
		}
		return idLess(top[i].ID, top[j].ID)
	})
	return top
}

// idLess orders numeric IDs by value and falls back to string order otherwise.
func idLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
