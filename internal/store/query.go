package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByCreated    = "created_at"
	orderByUpdated    = "last_updated"
	orderByPrice      = "price"
	orderByWatchCount = "watch_count"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByCreated:    "created_at DESC, sku ASC",
	orderByUpdated:    "last_updated DESC, sku ASC",
	orderByPrice:      "price DESC, sku ASC",
	orderByWatchCount: "watch_count DESC, sku ASC",
}

const defaultOrderBy = "created_at DESC, sku ASC"

const baseListingsSelect = "SELECT " + listingColumns + "\nFROM listings"

const countListingsSelect = "SELECT COUNT(*) FROM listings"

// Normalized returns the effective limit and offset after defaults and
// clamping.
func (q *ListingQuery) Normalized() (limit, offset int) {
	limit = q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, max(q.Offset, 0)
}

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a listing query.
// It returns two SQL strings (one for the data query, one for the count query)
// and the positional parameters.
func (q *ListingQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.AccountKey != nil {
		conditions = append(conditions, fmt.Sprintf("account_key = $%d", paramIdx))
		args = append(args, *q.AccountKey)
		paramIdx++
	}

	if q.Environment != nil {
		conditions = append(conditions, fmt.Sprintf("environment = $%d", paramIdx))
		args = append(args, *q.Environment)
		paramIdx++
	}

	if q.CardID != nil {
		conditions = append(conditions, fmt.Sprintf("card_id = $%d", paramIdx))
		args = append(args, *q.CardID)
		paramIdx++
	}

	if len(q.Statuses) > 0 {
		placeholders := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			placeholders[i] = fmt.Sprintf("$%d", paramIdx)
			args = append(args, s)
			paramIdx++
		}
		conditions = append(conditions, fmt.Sprintf(
			"status IN (%s)", strings.Join(placeholders, ", "),
		))
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if col, ok := validOrderBy[q.OrderBy]; ok {
		orderClause = col
	}

	limit, offset := q.Normalized()

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseListingsSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countListingsSelect + whereClause

	return dataSQL, countSQL, args
}
