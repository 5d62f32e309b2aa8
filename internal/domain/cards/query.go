package cards

import (
	"fmt"
	"strings"
)

// cardColumns is shared by every read so scanCard stays in sync. The last
// column pre-fetches the first ReviewPreviewLimit comments of each card in
// the same statement, so a page never costs one query per card.
var cardColumns = fmt.Sprintf(`
		c.id,
		c.genre,
		c.title,
		c.rating,
		c.review_count,
		c.image_url,
		c.external_link,
		c.region,
		c.address,
		c.place_id,
		c.latitude,
		c.longitude,
		c.created_at,
		c.updated_at,
		COALESCE((
			SELECT json_agg(json_build_object('id', rc.id, 'comment', rc.comment) ORDER BY rc.id)
			FROM (
				SELECT id, comment
				FROM review_comments
				WHERE card_id = c.id
				ORDER BY id
				LIMIT %d
			) rc
		), '[]'::json) AS reviews`, ReviewPreviewLimit)

// buildListQuery assembles the page query for filter. Every caller supplied
// value, region names included, is passed as a placeholder argument.
func buildListQuery(filter ListFilter) (string, []any) {
	var (
		where      []string
		args       []any
		argCounter = 1
		orderBy    = "c.id"
	)

	// 1) Region filter
	if len(filter.Regions) > 0 {
		where = append(where, fmt.Sprintf("c.region = ANY($%d)", argCounter))
		args = append(args, filter.Regions)
		argCounter++
	}

	// 2) Region rank: listed regions in order, everything else (NULL included) last
	if filter.SortByRegion && len(filter.RegionOrder) > 0 {
		var b strings.Builder
		b.WriteString("CASE")
		for i, name := range filter.RegionOrder {
			fmt.Fprintf(&b, " WHEN c.region = $%d THEN %d", argCounter, i)
			args = append(args, name)
			argCounter++
		}
		fmt.Fprintf(&b, " ELSE %d END, c.id", len(filter.RegionOrder))
		orderBy = b.String()
	}

	query := "SELECT" + cardColumns + "\n\t\tFROM cards c"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderBy

	// 3) Pagination
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
	args = append(args, filter.Limit, filter.Offset)

	return query, args
}
