package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/behavioral-assessment/internal/errors"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
)

var (
	ErrSessionNotFound = errors.New("session not found or expired")

	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationExpired    = errors.New("invitation has expired")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrInvitationDuplicate  = errors.New("a pending invitation already exists for this email")
	ErrInvitationSelf       = errors.New("leaders cannot accept their own invitation")

	ErrResultNotFound = errors.New("result not found")

	ErrUserNotFound            = errors.New("user not found")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// BusinessRuleError is a well-formed request the domain refuses, such as
// scoring an answer set that yields no result.
type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", e.Rule, e.Message)
}

// PermissionError names who was refused what and why.
type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %s: %s",
		e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message, Context: context}
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

var (
	notFoundErrors = []error{
		ErrSessionNotFound,
		ErrInvitationNotFound,
		ErrResultNotFound,
		ErrUserNotFound,
	}
	conflictErrors = []error{
		ErrInvitationDuplicate,
		ErrInvitationNotPending,
	}
	sessionRuleErrors = []error{
		scoring.ErrNoAnswer,
		scoring.ErrInvalidTransition,
		scoring.ErrQuestionMismatch,
		scoring.ErrUnknownOption,
		scoring.ErrSessionNotComplete,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func IsNotFound(err error) bool {
	return isAny(err, notFoundErrors)
}

// IsUnauthorized covers both the role check and per-resource ownership.
func IsUnauthorized(err error) bool {
	var pe *PermissionError
	return errors.Is(err, ErrInsufficientPermissions) || errors.As(err, &pe)
}

func IsValidation(err error) bool {
	if errors.Is(err, scoring.ErrUnknownKind) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

func IsConflict(err error) bool {
	return isAny(err, conflictErrors)
}

// IsSessionRule reports errors raised by the session state machine.
func IsSessionRule(err error) bool {
	return isAny(err, sessionRuleErrors)
}
