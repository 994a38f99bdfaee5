package audit

import (
	"context"
	"fmt"

	"github.com/dreamshub/backend/internal/domain/audit"
	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/ledger"
	"github.com/dreamshub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Recorder subscribes to domain events and appends one activity trail
// entry per event. It runs off the event bus so the writers never block
// on, or fail because of, audit persistence.
type Recorder struct {
	logRepo audit.LogRepository
	logger  *zap.Logger
}

// NewRecorder creates a new Recorder
func NewRecorder(logRepo audit.LogRepository, logger *zap.Logger) *Recorder {
	return &Recorder{logRepo: logRepo, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (r *Recorder) EventTypes() []string {
	return []string{
		ledger.EventTypeStockLoaded,
		ledger.EventTypeSaleRecorded,
		ledger.EventTypeStockTransferred,
		ledger.EventTypeReturnRecorded,
		ledger.EventTypeStockAdjusted,
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductUpdated,
		catalog.EventTypeProductDeleted,
		catalog.EventTypeCategoryCreated,
	}
}

// Handle converts a domain event into an audit entry and appends it
func (r *Recorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	entry, err := r.entryFor(event)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}
	if err := r.logRepo.Append(ctx, entry); err != nil {
		r.logger.Warn("failed to append audit entry",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
		return err
	}
	return nil
}

func (r *Recorder) entryFor(event shared.DomainEvent) (*audit.LogEntry, error) {
	switch e := event.(type) {
	case *ledger.StockLoadedEvent:
		return audit.NewLogEntry(audit.TypeInventory, "Loaded Initial Stock",
			fmt.Sprintf("%s x%d", e.ProductName, e.Quantity), e.Actor, e.Role, audit.LevelInfo)

	case *ledger.SaleRecordedEvent:
		target := e.Customer
		if target == "" {
			target = "Walk-in Customer"
		}
		entry, err := audit.NewLogEntry(audit.TypeSale, "Completed Sale", target, e.Actor, e.Role, audit.LevelInfo)
		if err != nil {
			return nil, err
		}
		return entry.WithAmount(e.Total), nil

	case *ledger.StockTransferredEvent:
		return audit.NewLogEntry(audit.TypeTransfer, "Transferred Stock",
			fmt.Sprintf("%s x%d", e.ProductName, e.Quantity), e.Actor, e.Role, audit.LevelInfo)

	case *ledger.ReturnRecordedEvent:
		return audit.NewLogEntry(audit.TypeSale, "Processed Return",
			fmt.Sprintf("%s x%d", e.ProductName, e.Quantity), e.Actor, e.Role, audit.LevelWarning)

	case *ledger.StockAdjustedEvent:
		return audit.NewLogEntry(audit.TypeInventory, "Adjusted Stock",
			fmt.Sprintf("%s (%+d): %s", e.ProductName, e.Quantity, e.Reason), e.Actor, e.Role, audit.LevelWarning)

	case *catalog.ProductCreatedEvent:
		return audit.NewLogEntry(audit.TypeProduct, "Created Product", e.ProductName, e.Actor, e.Role, audit.LevelInfo)

	case *catalog.ProductUpdatedEvent:
		return audit.NewLogEntry(audit.TypeProduct, "Updated Product", e.ProductName, e.Actor, e.Role, audit.LevelInfo)

	case *catalog.ProductDeletedEvent:
		return audit.NewLogEntry(audit.TypeProduct, "Deleted Product", e.ProductName, e.Actor, e.Role, audit.LevelCritical)

	case *catalog.CategoryCreatedEvent:
		return audit.NewLogEntry(audit.TypeProduct, "Created Category", e.CategoryName, e.Actor, e.Role, audit.LevelInfo)
	}
	return nil, nil
}
