package ecs

import "sort"

// StorageStats summarises the contents of a Storage.
type StorageStats struct {
	TotalEntityCount int
	KindCount        int
	KindBreakdown    []KindStats
}

// KindStats is the population of one component kind.
type KindStats struct {
	Type        string
	EntityCount int
}

// CollectStats walks the registered kinds and counts their holders.
// The breakdown is sorted by descending count, then by type name.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		TotalEntityCount: len(s.entities),
		KindCount:        len(s.registry.order),
		KindBreakdown:    make([]KindStats, 0, len(s.registry.order)),
	}

	for _, t := range s.registry.order {
		stats.KindBreakdown = append(stats.KindBreakdown, KindStats{
			Type:        t.String(),
			EntityCount: s.Count(t),
		})
	}

	sort.SliceStable(stats.KindBreakdown, func(i, j int) bool {
		a, b := stats.KindBreakdown[i], stats.KindBreakdown[j]
		if a.EntityCount != b.EntityCount {
			return a.EntityCount > b.EntityCount
		}
		return a.Type < b.Type
	})

	return stats
}
