package cards

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_DefaultOrdersByID(t *testing.T) {
	query, args := buildListQuery(ListFilter{Limit: 10})

	// The review sub-select has its own WHERE; the outer query has none.
	assert.NotContains(t, query, "WHERE c.region")
	assert.Contains(t, query, "FROM cards c ORDER BY c.id LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{10, 0}, args)
}

func TestBuildListQuery_RegionFilter(t *testing.T) {
	query, args := buildListQuery(ListFilter{
		Regions: []string{"関東", "近畿"},
		Limit:   5,
		Offset:  15,
	})

	assert.Contains(t, query, "WHERE c.region = ANY($1)")
	assert.Contains(t, query, "ORDER BY c.id LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{[]string{"関東", "近畿"}, 5, 15}, args)
}

func TestBuildListQuery_RegionSortIsParameterized(t *testing.T) {
	order := []string{"北海道", "関東", "'; DROP TABLE cards; --"}
	query, args := buildListQuery(ListFilter{
		Regions:      []string{"関東"},
		SortByRegion: true,
		RegionOrder:  order,
		Limit:        10,
	})

	assert.Contains(t, query,
		"ORDER BY CASE WHEN c.region = $2 THEN 0 WHEN c.region = $3 THEN 1 WHEN c.region = $4 THEN 2 ELSE 3 END, c.id LIMIT $5 OFFSET $6")
	assert.NotContains(t, query, "DROP TABLE")
	assert.Equal(t, []any{[]string{"関東"}, "北海道", "関東", "'; DROP TABLE cards; --", 10, 0}, args)
}

func TestBuildListQuery_SortWithoutOrderFallsBackToID(t *testing.T) {
	query, _ := buildListQuery(ListFilter{SortByRegion: true, Limit: 3})
	assert.NotContains(t, query, "CASE")
	assert.True(t, strings.Contains(query, "ORDER BY c.id LIMIT $1 OFFSET $2"))
}

func TestBuildListQuery_PreloadsReviewPreview(t *testing.T) {
	query, _ := buildListQuery(ListFilter{Limit: 1})
	assert.Contains(t, query, "FROM review_comments")
	assert.Contains(t, query, "LIMIT 5")
}
