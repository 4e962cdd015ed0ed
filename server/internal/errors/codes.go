package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for conversation operations.
type ErrorCode string

const (
	// ErrCodeOwnerNotFound indicates the owning user reference is invalid.
	ErrCodeOwnerNotFound ErrorCode = "OWNER_NOT_FOUND"
	// ErrCodeConversationNotFound indicates the conversation does not exist.
	ErrCodeConversationNotFound ErrorCode = "CONVERSATION_NOT_FOUND"
	// ErrCodePermissionDenied indicates the caller does not own the conversation.
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInternal indicates a storage or wiring failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// ServiceError represents a structured error for conversation operations.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *ServiceError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// OwnerNotFound creates an owner not found error.
func OwnerNotFound(ownerID int32) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeOwnerNotFound,
		Message: fmt.Sprintf("owner not found: %d", ownerID),
	}
}

// ConversationNotFound creates a conversation not found error.
func ConversationNotFound(conversationID int32) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeConversationNotFound,
		Message: fmt.Sprintf("conversation not found: %d", conversationID),
	}
}

// PermissionDenied creates a permission denied error.
func PermissionDenied(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodePermissionDenied, Message: msg}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeInvalidArgument, Message: msg}
}

// Internal wraps a storage or wiring failure.
func Internal(msg string, cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a ServiceError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Code
	}
	return defaultCode
}
