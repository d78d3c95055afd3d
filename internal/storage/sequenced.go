package storage

import (
	"github.com/matthewjhunter/longbox/internal/errs"
	"github.com/matthewjhunter/longbox/internal/filter"
)

// AddSequenced inserts item. A duplicate (issue, volume) pair is rejected
// with a constraint StorageError.
func (s *Store) AddSequenced(item SequencedItem) error {
	_, err := s.exec("failed to add sequenced item",
		"INSERT INTO sequenced_items (issue_num, vol_num, mainstory, year) VALUES (?, ?, ?, ?)",
		item.IssueNum, item.VolNum, item.MainStory, item.Year,
	)
	return err
}

// DeleteSequenced removes the item with the given key, if any.
func (s *Store) DeleteSequenced(issueNum, volNum int) error {
	_, err := s.exec("failed to delete sequenced item",
		"DELETE FROM sequenced_items WHERE issue_num = ? AND vol_num = ?",
		issueNum, volNum,
	)
	return err
}

// UpdateSequenced overwrites the story and year of the item keyed by
// item.IssueNum and item.VolNum. A missing key is a no-op.
func (s *Store) UpdateSequenced(item SequencedItem) error {
	_, err := s.exec("failed to update sequenced item",
		"UPDATE sequenced_items SET mainstory = ?, year = ? WHERE issue_num = ? AND vol_num = ?",
		item.MainStory, item.Year, item.IssueNum, item.VolNum,
	)
	return err
}

// SearchSequenced returns the items exactly matching every set field.
func (s *Store) SearchSequenced(f filter.SequencedFields) ([]SequencedItem, error) {
	return s.selectSequenced("failed to search sequenced items", filter.MatchSequenced(f))
}

// AdvancedSearchSequenced returns the items matching c. The exclusion range
// is ignored here; see FindMissingInRange.
func (s *Store) AdvancedSearchSequenced(c filter.SequencedCriteria) ([]SequencedItem, error) {
	q, _ := filter.Sequenced(c)
	return s.selectSequenced("failed to search sequenced items", q)
}

func (s *Store) selectSequenced(op string, q filter.Query) ([]SequencedItem, error) {
	items := []SequencedItem{}
	if err := s.db.Select(&items, q.SQL, q.Args...); err != nil {
		return nil, errs.Storage(op, err)
	}
	return items, nil
}
