package storage

// SequencedItem is an issue of a strictly numbered series, identified by
// its (issue, volume) pair.
type SequencedItem struct {
	IssueNum  int     `db:"issue_num" json:"issue_num"`
	VolNum    int     `db:"vol_num" json:"vol_num"`
	MainStory *string `db:"mainstory" json:"main_story,omitempty"`
	Year      *int    `db:"year" json:"year,omitempty"`
}

// CategorizedItem is a collected edition grouped by a free-form category.
type CategorizedItem struct {
	ID            int64  `db:"id" json:"id"`
	Title         string `db:"title" json:"title"`
	Writer        string `db:"writer" json:"writer"`
	Artist        string `db:"artist" json:"artist"`
	Collection    string `db:"collection" json:"collection"`
	Publisher     string `db:"publisher" json:"publisher"`
	Issues        string `db:"issues" json:"issues"`
	MainCharacter string `db:"main_character" json:"main_character"`
	IsEvent       bool   `db:"event" json:"is_event"`
	StoryYear     int    `db:"story_year" json:"story_year"`
	Category      string `db:"category" json:"category"`
}

// NarrativeLogItem is a story from a loosely ordered narrative series.
type NarrativeLogItem struct {
	ID         int64  `db:"id" json:"id"`
	StoryName  string `db:"story_name" json:"story_name"`
	SeriesName string `db:"series_name" json:"series_name"`
	Year       int    `db:"year" json:"year"`
}

// Stats holds row counts per record kind.
type Stats struct {
	Sequenced   int `db:"sequenced" json:"sequenced"`
	Categorized int `db:"categorized" json:"categorized"`
	Narrative   int `db:"narrative" json:"narrative"`
}

// Total returns the number of records across all kinds.
func (s Stats) Total() int {
	return s.Sequenced + s.Categorized + s.Narrative
}
