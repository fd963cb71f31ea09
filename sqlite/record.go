package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/adlib"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ adlib.RecordService = (*RecordService)(nil)
	_ adlib.RecordWriter  = (*RecordService)(nil)
)

// RecordService implements adlib.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

const recordColumns = `id, source_url, ad_id, advertiser_name, library_id, is_sponsored,
	ad_text, creative_url, creative_type, cta_url, cta_text, cta_domain,
	content_hash, crawled_at, retry_count, status, error`

// CreateRecord appends a new record. The record ID is assigned here; the
// sink is append-only, so an existing ID is never reused.
func (s *RecordService) CreateRecord(ctx context.Context, rec *adlib.AdRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.CrawledAt.IsZero() {
		rec.CrawledAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ad_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourceURL, rec.AdID, rec.AdvertiserName, rec.LibraryID, rec.IsSponsored,
		rec.AdText, rec.CreativeURL, string(rec.CreativeType), rec.CTAURL, rec.CTAText, rec.CTADomain,
		rec.ContentHash, rec.CrawledAt.Format(time.RFC3339), rec.RetryCount, string(rec.Status), rec.Error)

	return err
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*adlib.AdRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM ad_records
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, adlib.Errorf(adlib.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// FindRecords retrieves records matching the filter, newest first.
func (s *RecordService) FindRecords(ctx context.Context, filter adlib.RecordFilter) ([]*adlib.AdRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM ad_records WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY crawled_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*adlib.AdRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// CountByStatus returns the number of stored records per status.
func (s *RecordService) CountByStatus(ctx context.Context) (map[adlib.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM ad_records GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[adlib.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[adlib.Status(status)] = n
	}

	return counts, rows.Err()
}

// scanRecord reads one ad_records row using the given scan function.
func scanRecord(scan func(dest ...any) error) (*adlib.AdRecord, error) {
	var rec adlib.AdRecord
	var creativeType, status, crawledAt string

	err := scan(&rec.ID, &rec.SourceURL, &rec.AdID, &rec.AdvertiserName, &rec.LibraryID, &rec.IsSponsored,
		&rec.AdText, &rec.CreativeURL, &creativeType, &rec.CTAURL, &rec.CTAText, &rec.CTADomain,
		&rec.ContentHash, &crawledAt, &rec.RetryCount, &status, &rec.Error)
	if err != nil {
		return nil, err
	}

	rec.CreativeType = adlib.CreativeType(creativeType)
	rec.Status = adlib.Status(status)

	rec.CrawledAt, err = parseCrawledAt(crawledAt)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}
