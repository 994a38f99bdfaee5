package audit

import (
	"strings"
	"time"

	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LogLevel ranks the severity of an audit entry
type LogLevel string

const (
	LevelInfo     LogLevel = "info"
	LevelWarning  LogLevel = "warning"
	LevelCritical LogLevel = "critical"
)

// LogType names the subsystem an entry came from
type LogType string

const (
	TypeInventory LogType = "inventory"
	TypeSale      LogType = "sale"
	TypeTransfer  LogType = "transfer"
	TypeProduct   LogType = "product"
	TypeAuth      LogType = "auth"
	TypeSystem    LogType = "system"
)

// LogCap is the maximum number of entries retained; appending beyond it
// evicts the oldest entries.
const LogCap = 50

// LogEntry is a single line of the activity trail shown on the
// dashboard. Amount is set only for entries with a monetary dimension.
type LogEntry struct {
	shared.BaseEntity
	Type   LogType          `gorm:"type:varchar(20);not null;index"`
	Action string           `gorm:"type:varchar(100);not null"`
	Target string           `gorm:"type:varchar(200)"`
	Actor  string           `gorm:"type:varchar(100);not null"`
	Role   string           `gorm:"type:varchar(50)"`
	Level  LogLevel         `gorm:"type:varchar(10);not null;default:'info'"`
	Amount *decimal.Decimal `gorm:"type:decimal(20,8)"`
	Path   string           `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (LogEntry) TableName() string {
	return "audit_log_entries"
}

// NewLogEntry creates an audit entry
func NewLogEntry(logType LogType, action, target, actor, role string, level LogLevel) (*LogEntry, error) {
	if strings.TrimSpace(action) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Audit action cannot be empty")
	}
	if strings.TrimSpace(actor) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Audit actor cannot be empty")
	}
	if level == "" {
		level = LevelInfo
	}

	return &LogEntry{
		BaseEntity: shared.NewBaseEntity(),
		Type:       logType,
		Action:     action,
		Target:     target,
		Actor:      actor,
		Role:       role,
		Level:      level,
	}, nil
}

// WithAmount attaches a monetary amount to the entry
func (e *LogEntry) WithAmount(amount decimal.Decimal) *LogEntry {
	e.Amount = &amount
	return e
}

// WithPath records the request path the entry originated from
func (e *LogEntry) WithPath(path string) *LogEntry {
	e.Path = path
	return e
}

// InWindow reports whether the entry falls inside [since, now]. A zero
// since means no lower bound.
func (e *LogEntry) InWindow(since time.Time) bool {
	return since.IsZero() || !e.CreatedAt.Before(since)
}
