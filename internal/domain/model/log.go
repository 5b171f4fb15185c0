package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit actions recorded in LogEntry.ActionType.
const (
	ActionEstimate          = "estimate"
	ActionEstimateMulti     = "estimate_multi"
	ActionCreatePackageType = "create_package_type"
	ActionUpdatePackageType = "update_package_type"
	ActionUpdateStock       = "update_stock"
	ActionDeletePackageType = "delete_package_type"
)

// Log levels stored in LogEntry.Level.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// LogEntry is a request or audit record persisted to the logs collection.
// Audit records carry an ActionType; request records leave it empty.
type LogEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	ClientID   string                 `bson:"client_id,omitempty" json:"client_id,omitempty"`
	LocationID string                 `bson:"location_id,omitempty" json:"location_id,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// IsAudit reports whether the entry records a client action.
func (e *LogEntry) IsAudit() bool {
	return e.ActionType != ""
}

// WithField sets one context value, allocating Fields on first use.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	return e.WithFields(map[string]interface{}{key: value})
}

// WithFields merges fields into Fields. Existing keys are overwritten.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	if len(fields) == 0 {
		return e
	}
	if e.Fields == nil {
		e.Fields = make(map[string]interface{}, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// LogQueryOptions filters log lookups. Zero values match anything.
type LogQueryOptions struct {
	RequestID  string
	Level      string
	Method     string
	Path       string
	LocationID string
	ActionType string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
