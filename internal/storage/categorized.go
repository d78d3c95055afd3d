package storage

import (
	"github.com/matthewjhunter/longbox/internal/errs"
	"github.com/matthewjhunter/longbox/internal/filter"
)

// AddCategorized inserts item and returns its new id. item.ID is ignored.
func (s *Store) AddCategorized(item CategorizedItem) (int64, error) {
	res, err := s.exec("failed to add categorized item",
		`INSERT INTO categorized_items
		 (title, writer, artist, collection, publisher, issues, main_character, event, story_year, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, item.Writer, item.Artist, item.Collection, item.Publisher,
		item.Issues, item.MainCharacter, item.IsEvent, item.StoryYear, item.Category,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errs.Storage("failed to read categorized item id", err)
	}
	return id, nil
}

// DeleteCategorized removes the item with the given id, if any.
func (s *Store) DeleteCategorized(id int64) error {
	_, err := s.exec("failed to delete categorized item",
		"DELETE FROM categorized_items WHERE id = ?", id)
	return err
}

// UpdateCategorized overwrites every attribute of the item with item.ID.
func (s *Store) UpdateCategorized(item CategorizedItem) error {
	_, err := s.exec("failed to update categorized item",
		`UPDATE categorized_items
		 SET title = ?, writer = ?, artist = ?, collection = ?, publisher = ?,
		     issues = ?, main_character = ?, event = ?, story_year = ?, category = ?
		 WHERE id = ?`,
		item.Title, item.Writer, item.Artist, item.Collection, item.Publisher,
		item.Issues, item.MainCharacter, item.IsEvent, item.StoryYear, item.Category,
		item.ID,
	)
	return err
}

// SearchCategorized returns the items exactly matching every set field.
func (s *Store) SearchCategorized(f filter.CategorizedFields) ([]CategorizedItem, error) {
	return s.selectCategorized("failed to search categorized items", filter.MatchCategorized(f))
}

// AdvancedSearchCategorized returns the items matching c.
func (s *Store) AdvancedSearchCategorized(c filter.CategorizedCriteria) ([]CategorizedItem, error) {
	return s.selectCategorized("failed to search categorized items", filter.Categorized(c))
}

// DistinctCategories returns the category labels in use, sorted.
func (s *Store) DistinctCategories() ([]string, error) {
	categories := []string{}
	err := s.db.Select(&categories,
		"SELECT DISTINCT category FROM categorized_items WHERE category IS NOT NULL ORDER BY category")
	if err != nil {
		return nil, errs.Storage("failed to list categories", err)
	}
	return categories, nil
}

func (s *Store) selectCategorized(op string, q filter.Query) ([]CategorizedItem, error) {
	items := []CategorizedItem{}
	if err := s.db.Select(&items, q.SQL, q.Args...); err != nil {
		return nil, errs.Storage(op, err)
	}
	return items, nil
}
