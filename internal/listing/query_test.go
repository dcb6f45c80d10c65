package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/newsroom/internal/apperr"
)

var testSource = Source{
	Select:    "t.id, t.title, COUNT(c.id) AS child_count",
	From:      "things t LEFT JOIN children c ON c.thing_id = t.id",
	GroupBy:   "t.id",
	CountFrom: "things t",
	Key:       "t.id",
	Sorts: Whitelist{
		Columns: map[string]string{
			"id":          "t.id",
			"title":       "t.title",
			"child_count": "child_count",
		},
		Default: "id",
	},
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		preds    []Predicate
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "no filter",
			criteria: Criteria{SortBy: "title", Order: Asc, Limit: 10, Page: 1},
			wantSQL: "SELECT t.id, t.title, COUNT(c.id) AS child_count FROM things t LEFT JOIN children c ON c.thing_id = t.id" +
				" GROUP BY t.id ORDER BY t.title ASC, t.id ASC LIMIT ? OFFSET ?",
			wantArgs: []any{10, 0},
		},
		{
			name:     "filtered page three",
			criteria: Criteria{SortBy: "child_count", Order: Desc, Limit: 2, Page: 3},
			preds:    []Predicate{Eq("t.kind", "cats"), Eq("t.owner", 7)},
			wantSQL: "SELECT t.id, t.title, COUNT(c.id) AS child_count FROM things t LEFT JOIN children c ON c.thing_id = t.id" +
				" WHERE t.kind = ? AND t.owner = ? GROUP BY t.id ORDER BY child_count DESC, t.id ASC LIMIT ? OFFSET ?",
			wantArgs: []any{"cats", 7, 2, 4},
		},
		{
			name:     "sorting by key has no tie-break",
			criteria: Criteria{SortBy: "id", Order: Desc, Limit: 5, Page: 2},
			wantSQL: "SELECT t.id, t.title, COUNT(c.id) AS child_count FROM things t LEFT JOIN children c ON c.thing_id = t.id" +
				" GROUP BY t.id ORDER BY t.id DESC LIMIT ? OFFSET ?",
			wantArgs: []any{5, 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Build(testSource, tt.criteria, tt.preds...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, q.SQL)
			assert.Equal(t, tt.wantArgs, q.Args)
		})
	}
}

func TestBuild_FilterValueNeverInText(t *testing.T) {
	evil := "x' OR '1'='1"
	q, err := Build(testSource, Criteria{SortBy: "id", Order: Asc, Limit: 1, Page: 1}, Eq("t.kind", evil))
	require.NoError(t, err)
	assert.NotContains(t, q.SQL, evil)
	assert.Equal(t, evil, q.Args[0])
}

func TestBuild_RejectsUnlistedSort(t *testing.T) {
	_, err := Build(testSource, Criteria{SortBy: "t.secret", Order: Asc, Limit: 1, Page: 1})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestBuildCount(t *testing.T) {
	q := BuildCount(testSource, Eq("t.kind", "cats"))
	assert.Equal(t, "SELECT COUNT(*) FROM things t WHERE t.kind = ?", q.SQL)
	assert.Equal(t, []any{"cats"}, q.Args)

	q = BuildCount(testSource)
	assert.Equal(t, "SELECT COUNT(*) FROM things t", q.SQL)
	assert.Empty(t, q.Args)
}
