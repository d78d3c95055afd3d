package filter

// SequencedFields are the exact-match criteria for sequenced items.
type SequencedFields struct {
	IssueNum  *int
	VolNum    *int
	MainStory *string
	Year      *int
}

// SequencedCriteria extends SequencedFields with range filters.
// ExcludeIssueRange is never part of the SQL; it is returned to the caller
// for gap detection.
type SequencedCriteria struct {
	SequencedFields
	YearRange         *Range
	IssueRange        *Range
	ExcludeIssueRange *Range
}

func (f SequencedFields) terms() []Term {
	var ts []Term
	if f.IssueNum != nil {
		ts = append(ts, Term{"issue_num", *f.IssueNum})
	}
	if f.VolNum != nil {
		ts = append(ts, Term{"vol_num", *f.VolNum})
	}
	if f.MainStory != nil {
		ts = append(ts, Term{"mainstory", *f.MainStory})
	}
	if f.Year != nil {
		ts = append(ts, Term{"year", *f.Year})
	}
	return ts
}

// MatchSequenced builds the equality-only query for f.
func MatchSequenced(f SequencedFields) Query {
	return Equal(SequencedTable, f.terms()...)
}

// Sequenced builds the advanced query for c and hands back the exclusion
// range unevaluated.
func Sequenced(c SequencedCriteria) (Query, *Range) {
	b := newBuilder(SequencedTable)
	b.eqAll(c.SequencedFields.terms())
	if c.YearRange != nil {
		b.between("year", *c.YearRange)
	}
	if c.IssueRange != nil {
		b.between("issue_num", *c.IssueRange)
	}
	return b.build(), c.ExcludeIssueRange
}

// CategorizedFields are the exact-match criteria for categorized items.
type CategorizedFields struct {
	Title         *string
	Writer        *string
	Artist        *string
	Collection    *string
	Publisher     *string
	Issues        *string
	MainCharacter *string
	IsEvent       *bool
	StoryYear     *int
	Category      *string
}

// CategorizedCriteria extends CategorizedFields with a story year range.
type CategorizedCriteria struct {
	CategorizedFields
	StoryYearRange *Range
}

func (f CategorizedFields) terms() []Term {
	var ts []Term
	strs := []struct {
		col string
		v   *string
	}{
		{"title", f.Title},
		{"writer", f.Writer},
		{"artist", f.Artist},
		{"collection", f.Collection},
		{"publisher", f.Publisher},
		{"issues", f.Issues},
		{"main_character", f.MainCharacter},
	}
	for _, s := range strs {
		if s.v != nil {
			ts = append(ts, Term{s.col, *s.v})
		}
	}
	if f.IsEvent != nil {
		ts = append(ts, Term{"event", *f.IsEvent})
	}
	if f.StoryYear != nil {
		ts = append(ts, Term{"story_year", *f.StoryYear})
	}
	if f.Category != nil {
		ts = append(ts, Term{"category", *f.Category})
	}
	return ts
}

// MatchCategorized builds the equality-only query for f.
func MatchCategorized(f CategorizedFields) Query {
	return Equal(CategorizedTable, f.terms()...)
}

// Categorized builds the advanced query for c.
func Categorized(c CategorizedCriteria) Query {
	b := newBuilder(CategorizedTable)
	b.eqAll(c.CategorizedFields.terms())
	if c.StoryYearRange != nil {
		b.between("story_year", *c.StoryYearRange)
	}
	return b.build()
}

// NarrativeFields are the exact-match criteria for narrative log items.
type NarrativeFields struct {
	StoryName  *string
	SeriesName *string
	Year       *int
}

// NarrativeCriteria extends NarrativeFields with a year range.
type NarrativeCriteria struct {
	NarrativeFields
	YearRange *Range
}

func (f NarrativeFields) terms() []Term {
	var ts []Term
	if f.StoryName != nil {
		ts = append(ts, Term{"story_name", *f.StoryName})
	}
	if f.SeriesName != nil {
		ts = append(ts, Term{"series_name", *f.SeriesName})
	}
	if f.Year != nil {
		ts = append(ts, Term{"year", *f.Year})
	}
	return ts
}

// MatchNarrative builds the equality-only query for f.
func MatchNarrative(f NarrativeFields) Query {
	return Equal(NarrativeTable, f.terms()...)
}

// Narrative builds the advanced query for c.
func Narrative(c NarrativeCriteria) Query {
	b := newBuilder(NarrativeTable)
	b.eqAll(c.NarrativeFields.terms())
	if c.YearRange != nil {
		b.between("year", *c.YearRange)
	}
	return b.build()
}
