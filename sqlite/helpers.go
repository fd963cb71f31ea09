package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseCrawledAt parses the crawled_at column. Timestamps are stored as
// RFC3339 text so stored records stay readable from the sqlite3 shell.
func parseCrawledAt(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse crawled_at: %w", err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses for positive filter
// values. Zero means unbounded, matching RecordFilter defaults.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
