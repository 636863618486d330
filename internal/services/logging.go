package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ServiceLogger writes operation, audit and recovery records for one
// service component.
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, component string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", "behavioral-assessment", "component", component),
	}
}

// ===== OPERATION LOGGING =====

// operationStatus picks the level from the error class: caller mistakes
// are warnings, misses are info, anything else is an error.
func operationStatus(err error) (slog.Level, string) {
	switch {
	case err == nil:
		return slog.LevelInfo, "success"
	case IsValidation(err), IsBusinessRule(err), IsSessionRule(err):
		return slog.LevelWarn, "rejected"
	case IsUnauthorized(err):
		return slog.LevelWarn, "unauthorized"
	case IsNotFound(err):
		return slog.LevelInfo, "not_found"
	}
	return slog.LevelError, "error"
}

func (l *ServiceLogger) LogOperation(ctx context.Context, operation, userID, resourceID, resourceType string, duration time.Duration, err error) {
	level, status := operationStatus(err)

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("user_id", userID),
		slog.String("resource_id", resourceID),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		attrs = append(attrs, errorDetailAttrs(err)...)
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s %s", operation, status), attrs...)
}

func errorDetailAttrs(err error) []slog.Attr {
	var (
		validationErrs ValidationErrors
		ruleErr        *BusinessRuleError
		permErr        *PermissionError
	)
	switch {
	case errors.As(err, &validationErrs):
		return []slog.Attr{slog.Any("invalid_fields", validationErrs.Fields())}
	case errors.As(err, &ruleErr):
		return []slog.Attr{
			slog.String("business_rule", ruleErr.Rule),
			slog.Any("rule_context", ruleErr.Context),
		}
	case errors.As(err, &permErr):
		return []slog.Attr{
			slog.String("permission_action", permErr.Action),
			slog.String("permission_reason", permErr.Reason),
		}
	}
	return nil
}

// ===== AUDIT LOGGING =====

type AuditEventType string

const (
	AuditEventCreate AuditEventType = "create"
	AuditEventUpdate AuditEventType = "update"
)

type AuditEvent struct {
	Type         AuditEventType `json:"type"`
	UserID       string         `json:"user_id"`
	ResourceID   string         `json:"resource_id"`
	ResourceType string         `json:"resource_type"`
	Action       string         `json:"action"`
	OldValue     interface{}    `json:"old_value,omitempty"`
	NewValue     interface{}    `json:"new_value,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

func (l *ServiceLogger) LogAuditEvent(ctx context.Context, event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("event_type", string(event.Type)),
		slog.String("user_id", event.UserID),
		slog.String("resource_id", event.ResourceID),
		slog.String("resource_type", event.ResourceType),
		slog.String("action", event.Action),
		slog.Time("timestamp", event.Timestamp),
	}
	if event.OldValue != nil {
		attrs = append(attrs, slog.Any("old_value", event.OldValue))
	}
	if event.NewValue != nil {
		attrs = append(attrs, slog.Any("new_value", event.NewValue))
	}

	l.logger.LogAttrs(ctx, slog.LevelInfo, fmt.Sprintf("Audit: %s %s", event.Action, event.ResourceType), attrs...)
}

// LogRecovery records a panic caught in background work.
func (l *ServiceLogger) LogRecovery(ctx context.Context, operation, userID string, recovered interface{}, stack []byte) {
	l.logger.LogAttrs(ctx, slog.LevelError, "Panic recovered",
		slog.String("operation", operation),
		slog.String("user_id", userID),
		slog.Any("panic_value", recovered),
		slog.String("stack_trace", string(stack)),
	)
}

// ===== OPERATION SCOPE =====

// ContextualLogger times one operation and logs its outcome.
type ContextualLogger struct {
	logger    *ServiceLogger
	operation string
	userID    string
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string, userID string) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		operation: operation,
		userID:    userID,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (cl *ContextualLogger) LogResult(resourceID string, resourceType string, err error) {
	cl.logger.LogOperation(cl.ctx, cl.operation, cl.userID, resourceID, resourceType, time.Since(cl.startTime), err)
}

func (cl *ContextualLogger) LogAudit(eventType AuditEventType, resourceID string, resourceType string, oldValue, newValue interface{}) {
	cl.logger.LogAuditEvent(cl.ctx, AuditEvent{
		Type:         eventType,
		UserID:       cl.userID,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		Action:       cl.operation,
		OldValue:     oldValue,
		NewValue:     newValue,
		Timestamp:    time.Now(),
	})
}

// ===== ERROR FORMATTING =====

// FormatError flattens err into fields for unhandled-error logs.
func FormatError(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	result := map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}

	var (
		validationErrs ValidationErrors
		ruleErr        *BusinessRuleError
		permErr        *PermissionError
	)
	switch {
	case errors.As(err, &validationErrs):
		result["type"] = "validation"
		result["fields"] = validationErrs.Fields()
	case errors.As(err, &ruleErr):
		result["type"] = "business_rule"
		result["rule"] = ruleErr.Rule
		result["context"] = ruleErr.Context
	case errors.As(err, &permErr):
		result["type"] = "permission"
		result["resource"] = permErr.Resource
		result["resource_id"] = permErr.ResourceID
		result["action"] = permErr.Action
	case IsNotFound(err):
		result["type"] = "not_found"
	case IsUnauthorized(err):
		result["type"] = "unauthorized"
	case IsConflict(err):
		result["type"] = "conflict"
	case IsSessionRule(err):
		result["type"] = "session_rule"
	}

	return result
}
