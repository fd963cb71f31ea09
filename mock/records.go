package mock

import (
	"context"

	"github.com/fwojciec/adlib"
)

var _ adlib.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of adlib.RecordService.
type RecordService struct {
	CreateRecordFn   func(ctx context.Context, rec *adlib.AdRecord) error
	FindRecordByIDFn func(ctx context.Context, id string) (*adlib.AdRecord, error)
	FindRecordsFn    func(ctx context.Context, filter adlib.RecordFilter) ([]*adlib.AdRecord, error)
	CountByStatusFn  func(ctx context.Context) (map[adlib.Status]int, error)
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *adlib.AdRecord) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*adlib.AdRecord, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecords(ctx context.Context, filter adlib.RecordFilter) ([]*adlib.AdRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) CountByStatus(ctx context.Context) (map[adlib.Status]int, error) {
	return s.CountByStatusFn(ctx)
}

var _ adlib.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of adlib.RecordWriter.
type RecordWriter struct {
	CreateRecordFn func(ctx context.Context, rec *adlib.AdRecord) error
}

func (w *RecordWriter) CreateRecord(ctx context.Context, rec *adlib.AdRecord) error {
	return w.CreateRecordFn(ctx, rec)
}
