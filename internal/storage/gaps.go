package storage

import (
	"github.com/matthewjhunter/longbox/internal/errs"
	"github.com/matthewjhunter/longbox/internal/filter"
)

// FindMissingInRange returns, in ascending order, every issue number in
// [start, end] that has no sequenced item among those matching c. Any
// ExcludeIssueRange on c is ignored; the range to check is start..end.
//
// Duplicates across volumes count once: issue 12 is present if any volume
// of it matches c.
func (s *Store) FindMissingInRange(start, end int, c filter.SequencedCriteria) ([]int, error) {
	c.ExcludeIssueRange = nil
	q, _ := filter.Sequenced(c)

	// Only the issue numbers matter, so select just that column from the
	// filtered set.
	sub := "SELECT DISTINCT issue_num FROM (" + q.SQL + ")"
	var present []int
	if err := s.db.Select(&present, sub, q.Args...); err != nil {
		return nil, errs.Storage("failed to collect issue numbers", err)
	}
	return Missing(start, end, present), nil
}

// Missing returns the integers in [start, end] absent from present, in
// ascending order. It runs in O(len(present) + end-start) and never returns
// nil.
func Missing(start, end int, present []int) []int {
	missing := []int{}
	if start > end {
		return missing
	}
	have := make(map[int]struct{}, len(present))
	for _, n := range present {
		have[n] = struct{}{}
	}
	for n := start; ; n++ {
		if _, ok := have[n]; !ok {
			missing = append(missing, n)
		}
		if n == end {
			break
		}
	}
	return missing
}
