package constants

import "fmt"

// ============================================================================
// FILE UPLOAD ERRORS
// ============================================================================

const (
	ErrFileTooLarge               = "File too large (%d MB). Maximum size: %d MB"
	ErrInvalidExtension           = "Extension '%s' is not allowed. Allowed extensions: %s"
	ErrFailedToParseMultipartForm = "Failed to parse multipart form"
	ErrFileRequired               = "A file is required for this operation"
	ErrEmptyFile                  = "Uploaded file is empty"
	ErrInvalidMaskFile            = "Invalid mask file: %s"
	ErrInvalidTemplateFile        = "Cannot read the filled template: %s"
	ErrNoStockLines               = "No stock ('S') line found in the mask file"
)

// ============================================================================
// RECONCILIATION / BUSINESS RULE ERRORS
// ============================================================================

const (
	ErrInvalidDepotType     = "Invalid depot type: %s"
	ErrDepotIncompatible    = "Incompatible extract: depot %s chosen but lots in status %s detected"
	ErrQuarantineDetected   = "Processing impossible: the file contains lots in status Q"
	ErrSessionNameRequired  = "A session name is required"
	ErrSessionCompleted     = "Session is already completed"
	ErrWorkflowTransition   = "Invalid workflow transition: %s"
	ErrGapDistributionError = "Gap distribution failed: %s"
)

// ============================================================================
// SESSION & FILE LOOKUP ERRORS
// ============================================================================

const (
	ErrSessionNotFound   = "Session %d not found"
	ErrInventoryNotFound = "No inventory found for session %d"
	ErrFileNotFound      = "File '%s' not found for session %d"
	ErrInvalidFileType   = "Invalid file type: %s. Accepted values: mask, template, final"
	ErrInvalidSessionID  = "Invalid session id"
)

// ============================================================================
// DATABASE OPERATION ERRORS
// ============================================================================

const (
	ErrTransactionFailed       = "Transaction failed. Please try again"
	ErrQueryFailed             = "Database query failed. Please contact support if this persists"
	ErrAuditLogFailed          = "Failed to create audit log entry"
	ErrTransactionCommitFailed = "Failed to save changes. Please try again"
)

// ============================================================================
// GENERAL
// ============================================================================

const (
	ErrInvalidJSON    = "Invalid JSON payload"
	ErrInternalServer = "Internal server error. Please contact support"
)

// ============================================================================
// SUCCESS MESSAGES
// ============================================================================

const (
	SuccessMaskUploaded  = "Mask uploaded successfully"
	SuccessFinalCreated  = "Final file generated successfully"
	SuccessSessionDelete = "Session deleted"
)

// FormatError formats an error message with additional context
func FormatError(baseError string, context ...interface{}) string {
	if len(context) == 0 {
		return baseError
	}
	return fmt.Sprintf(baseError, context...)
}
