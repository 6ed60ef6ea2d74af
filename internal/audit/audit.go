// Package audit records who did what on the dashboard.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shree-admin/internal/auth"
	"shree-admin/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const (
	logTimeout   = 2 * time.Second
	defaultLimit = 100
	maxLimit     = 500
)

// ResourceType is the kind of record an action touched.
type ResourceType string

const (
	ResourceTypeSession      ResourceType = "session"
	ResourceTypeCategory     ResourceType = "category"
	ResourceTypeService      ResourceType = "service"
	ResourceTypeBlog         ResourceType = "blog"
	ResourceTypeReview       ResourceType = "review"
	ResourceTypeEnquiry      ResourceType = "enquiry"
	ResourceTypeSupport      ResourceType = "support"
	ResourceTypeContact      ResourceType = "contact"
	ResourceTypeNotification ResourceType = "notification"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionToggle  Action = "toggle"
	ActionStatus  Action = "status"
	ActionReorder Action = "reorder"
	ActionLogin   Action = "login"
	ActionLogout  Action = "logout"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Event is one audit record.
type Event struct {
	ID           uuid.UUID      `json:"id"`
	EventType    string         `json:"event_type"`
	Actor        string         `json:"actor"`
	SessionID    string         `json:"session_id"`
	ResourceType ResourceType   `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	Action       Action         `json:"action"`
	Status       Status         `json:"status"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
	RequestID    string         `json:"request_id"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Recorder is what handlers call; it never blocks the request.
type Recorder interface {
	Record(c echo.Context, resourceType ResourceType, resourceID string, action Action, status Status, message string)
	Recent(ctx context.Context, limit int) ([]*Event, error)
}

// ActorFunc names the admin behind a credential, or returns "".
type ActorFunc func(credential string) string

// Logger writes events to Postgres.
type Logger struct {
	pool  *pgxpool.Pool
	actor ActorFunc
}

func NewLogger(pool *pgxpool.Pool, actor ActorFunc) *Logger {
	return &Logger{pool: pool, actor: actor}
}

// Log inserts event synchronously.
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var metadataJSON []byte
	var err error
	if event.Metadata != nil {
		metadataJSON, err = json.Marshal(logger.SanitizeMap(event.Metadata))
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO admin_audit_events (
			id, event_type, actor, session_id, resource_type, resource_id,
			action, status, ip_address, user_agent, request_id, metadata, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = l.pool.Exec(ctx, query,
		event.ID,
		event.EventType,
		event.Actor,
		event.SessionID,
		event.ResourceType,
		event.ResourceID,
		event.Action,
		event.Status,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		metadataJSON,
		event.ErrorMessage,
		event.CreatedAt,
	)
	return err
}

// Record builds an event from the request and logs it asynchronously.
func (l *Logger) Record(c echo.Context, resourceType ResourceType, resourceID string, action Action, status Status, message string) {
	event := NewEvent(c, resourceType, resourceID, action, status, message)
	if credential, err := auth.GetCredential(c); err == nil && l.actor != nil {
		event.Actor = l.actor(credential)
	}

	ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
	go func() {
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			// Log to stderr but don't block the request
			fmt.Fprintf(c.Logger().Output(), "audit log failed: %v\n", err)
		}
	}()
}

// Recent returns the newest events first.
func (l *Logger) Recent(ctx context.Context, limit int) ([]*Event, error) {
	limit = clampLimit(limit)

	rows, err := l.pool.Query(ctx, `
		SELECT id, event_type, actor, session_id, resource_type, resource_id,
		       action, status, ip_address, user_agent, request_id, metadata, error_message, created_at
		FROM admin_audit_events
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		event := &Event{}
		var metadataJSON []byte

		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.Actor,
			&event.SessionID,
			&event.ResourceType,
			&event.ResourceID,
			&event.Action,
			&event.Status,
			&event.IPAddress,
			&event.UserAgent,
			&event.RequestID,
			&metadataJSON,
			&event.ErrorMessage,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &event.Metadata); err != nil {
				return nil, err
			}
		}

		events = append(events, event)
	}

	return events, rows.Err()
}

// NewEvent fills the request-derived fields of an event. The session id is
// the credential hash, never the credential.
func NewEvent(c echo.Context, resourceType ResourceType, resourceID string, action Action, status Status, message string) *Event {
	event := &Event{
		EventType:    string(action) + "_" + string(resourceType),
		SessionID:    auth.GetSessionID(c),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Status:       status,
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
	}
	if status == StatusFailure {
		event.ErrorMessage = logger.SanitizeLogMessage(message)
	}
	return event
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// Nop discards events; it is used when no database is configured.
type Nop struct{}

func (Nop) Record(echo.Context, ResourceType, string, Action, Status, string) {}

func (Nop) Recent(context.Context, int) ([]*Event, error) {
	return []*Event{}, nil
}
