package storage

import (
	"github.com/matthewjhunter/longbox/internal/errs"
	"github.com/matthewjhunter/longbox/internal/filter"
)

// AddNarrative inserts item and returns its new id.
func (s *Store) AddNarrative(item NarrativeLogItem) (int64, error) {
	res, err := s.exec("failed to add narrative item",
		"INSERT INTO narrative_items (story_name, series_name, year) VALUES (?, ?, ?)",
		item.StoryName, item.SeriesName, item.Year,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errs.Storage("failed to read narrative item id", err)
	}
	return id, nil
}

// DeleteNarrative removes the item with the given id, if any.
func (s *Store) DeleteNarrative(id int64) error {
	_, err := s.exec("failed to delete narrative item",
		"DELETE FROM narrative_items WHERE id = ?", id)
	return err
}

// UpdateNarrative overwrites every attribute of the item with item.ID.
func (s *Store) UpdateNarrative(item NarrativeLogItem) error {
	_, err := s.exec("failed to update narrative item",
		"UPDATE narrative_items SET story_name = ?, series_name = ?, year = ? WHERE id = ?",
		item.StoryName, item.SeriesName, item.Year, item.ID,
	)
	return err
}

// SearchNarrative returns the items exactly matching every set field.
func (s *Store) SearchNarrative(f filter.NarrativeFields) ([]NarrativeLogItem, error) {
	return s.selectNarrative("failed to search narrative items", filter.MatchNarrative(f))
}

// AdvancedSearchNarrative returns the items matching c.
func (s *Store) AdvancedSearchNarrative(c filter.NarrativeCriteria) ([]NarrativeLogItem, error) {
	return s.selectNarrative("failed to search narrative items", filter.Narrative(c))
}

func (s *Store) selectNarrative(op string, q filter.Query) ([]NarrativeLogItem, error) {
	items := []NarrativeLogItem{}
	if err := s.db.Select(&items, q.SQL, q.Args...); err != nil {
		return nil, errs.Storage(op, err)
	}
	return items, nil
}
