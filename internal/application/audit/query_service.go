package audit

import (
	"context"
	"encoding/csv"
	"strings"
	"time"

	"github.com/dreamshub/backend/internal/application/report"
	"github.com/dreamshub/backend/internal/domain/audit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LogEntryResponse represents an audit entry in API responses
type LogEntryResponse struct {
	ID     uuid.UUID        `json:"id"`
	Time   time.Time        `json:"time"`
	Type   string           `json:"type"`
	Action string           `json:"action"`
	Target string           `json:"target,omitempty"`
	Actor  string           `json:"actor"`
	Role   string           `json:"role,omitempty"`
	Level  string           `json:"level"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Path   string           `json:"path,omitempty"`
}

// QueryFilter narrows the activity trail
type QueryFilter struct {
	Range string     `form:"range"`
	Start *time.Time `form:"start"`
	End   *time.Time `form:"end"`
	Type  string     `form:"type"`
}

// QueryService reads the capped activity trail
type QueryService struct {
	logRepo audit.LogRepository
	now     func() time.Time
}

// NewQueryService creates a new QueryService
func NewQueryService(logRepo audit.LogRepository) *QueryService {
	return &QueryService{logRepo: logRepo, now: time.Now}
}

// SetClock overrides the time source, for tests
func (s *QueryService) SetClock(now func() time.Time) {
	s.now = now
}

func toResponse(e *audit.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:     e.ID,
		Time:   e.CreatedAt,
		Type:   string(e.Type),
		Action: e.Action,
		Target: e.Target,
		Actor:  e.Actor,
		Role:   e.Role,
		Level:  string(e.Level),
		Amount: e.Amount,
		Path:   e.Path,
	}
}

// List returns retained entries inside the requested window, newest
// first, optionally narrowed to one entry type.
func (s *QueryService) List(ctx context.Context, filter QueryFilter) ([]LogEntryResponse, error) {
	window, err := report.ParseWindow(filter.Range, s.now(), filter.Start, filter.End)
	if err != nil {
		return nil, err
	}

	entries, err := s.logRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]LogEntryResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if !window.Contains(e.CreatedAt) {
			continue
		}
		if filter.Type != "" && !strings.EqualFold(string(e.Type), filter.Type) {
			continue
		}
		out = append(out, toResponse(e))
	}
	return out, nil
}

// csvHeader is the fixed column order of the export
var csvHeader = []string{"ID", "Time", "Type", "Action", "Target", "User", "Role", "Level", "Amount"}

// ExportCSV writes the filtered entries as CSV to w
func (s *QueryService) ExportCSV(ctx context.Context, filter QueryFilter, w *csv.Writer) error {
	entries, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		amount := "0"
		if e.Amount != nil {
			amount = e.Amount.String()
		}
		record := []string{
			e.ID.String(),
			e.Time.Format(time.RFC3339),
			e.Type,
			e.Action,
			e.Target,
			e.Actor,
			e.Role,
			e.Level,
			amount,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
