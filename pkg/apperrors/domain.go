package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrPlanLimit reports that the caller's subscription tier does not allow the operation.
func ErrPlanLimit(message string, limit int) *AppError {
	return New(CodePlanLimitExceeded, "subscription", message, http.StatusForbidden).
		WithDetails(map[string]int{"limit": limit})
}

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrOTPRequired = New(
	CodeOTPRequired,
	"auth",
	"A valid one-time code is required",
	http.StatusUnauthorized,
)

var ErrInvalidOTP = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid one-time code",
	http.StatusUnauthorized,
)

var ErrTwoFactorNotSetUp = New(
	CodeInvalidOperation,
	"auth",
	"Two-factor authentication has not been set up",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrRateLimited = New(
	CodeRateLimited,
	"request",
	"Too many requests, try again later",
	http.StatusTooManyRequests,
)

// --- Auditions ---

var ErrAuditionNotFound = New(
	CodeNotFound,
	"audition",
	"Audition not found",
	http.StatusNotFound,
)

var ErrAuditionParseFailed = New(
	CodeParseFailed,
	"email",
	"Could not parse required audition details",
	http.StatusBadRequest,
)

// --- Actors ---

var ErrActorNotFound = New(
	CodeNotFound,
	"actor",
	"Actor not found",
	http.StatusNotFound,
)

// --- Expenses, contacts, bookings ---

var ErrExpenseNotFound = New(
	CodeNotFound,
	"expense",
	"Expense not found",
	http.StatusNotFound,
)

var ErrContactNotFound = New(
	CodeNotFound,
	"contact",
	"Contact not found",
	http.StatusNotFound,
)

var ErrBookingNotFound = New(
	CodeNotFound,
	"booking",
	"Booking not found",
	http.StatusNotFound,
)

var ErrBookingCompleted = New(
	CodeInvalidStatus,
	"booking",
	"A completed booking cannot be cancelled",
	http.StatusConflict,
)

var ErrServiceNotFound = New(
	CodeNotFound,
	"catalog",
	"Service not found",
	http.StatusNotFound,
)

var ErrServiceIsFree = New(
	CodeInvalidOperation,
	"catalog",
	"This service is free and does not require checkout",
	http.StatusBadRequest,
)

// --- Subscriptions & payments ---

var ErrSubscriptionNotFound = New(
	CodeNotFound,
	"subscription",
	"Subscription not found",
	http.StatusNotFound,
)

var ErrFreeTierCheckout = New(
	CodeInvalidOperation,
	"subscription",
	"The free tier does not require checkout",
	http.StatusBadRequest,
)

var ErrNoPaidSubscription = New(
	CodeInvalidOperation,
	"subscription",
	"There is no paid subscription to cancel",
	http.StatusBadRequest,
)

var ErrPaymentsDisabled = New(
	CodeExternalServiceError,
	"payment",
	"Payments are not configured",
	http.StatusServiceUnavailable,
)

var ErrWebhookSignature = New(
	CodeInvalidSignature,
	"payment",
	"Webhook signature verification failed",
	http.StatusBadRequest,
)

// --- Email ingestion ---

var ErrUnknownForwardingAddress = New(
	CodeNotFound,
	"email",
	"Unknown forwarding address",
	http.StatusNotFound,
)

var ErrEmailSignature = New(
	CodeInvalidSignature,
	"email",
	"Invalid email webhook signature",
	http.StatusUnauthorized,
)

// --- Import ---

var ErrEmptySpreadsheet = New(
	CodeValidationFailed,
	"import",
	"No data found in spreadsheet",
	http.StatusBadRequest,
)

var ErrUnsupportedSpreadsheet = New(
	CodeValidationFailed,
	"import",
	"Only .csv and .xlsx files are supported",
	http.StatusBadRequest,
)

var ErrImportNotConfigured = New(
	CodeExternalServiceError,
	"import",
	"Google Sheets import is not configured",
	http.StatusServiceUnavailable,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

var ErrInvalidBucket = New(
	CodeValidationFailed,
	"upload",
	"Unknown upload bucket",
	http.StatusBadRequest,
)

var ErrInvalidUploadTarget = New(
	CodeValidationFailed,
	"upload",
	"This bucket cannot be attached to the given entity",
	http.StatusBadRequest,
)

var ErrUploadNotFound = New(
	CodeNotFound,
	"upload",
	"Upload not found",
	http.StatusNotFound,
)
