package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The admin front-end maps these codes to its own copy.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthAccountInactive    = "AUTH_ACCOUNT_INACTIVE"    // account disabled
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token past expiry
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // unknown or malformed token
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate admin email

	// ==================== Password reset (OTP_) ====================
	OTPInvalid     = "OTP_INVALID"      // no unused matching code
	OTPExpired     = "OTP_EXPIRED"      // code past its validity window
	OTPNotVerified = "OTP_NOT_VERIFIED" // complete step called before verify
	OTPRateLimited = "OTP_RATE_LIMITED" // too many requests for this email

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Table browser (TABLE_) ====================
	TableUnknown        = "TABLE_UNKNOWN"          // name not in the registry
	TableRecordNotFound = "TABLE_RECORD_NOT_FOUND" // no row with that id
	TableExportFailed   = "TABLE_EXPORT_FAILED"    // workbook build failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
