package apperrors

import "net/http"

// Factories used when a repository error has to be surfaced with a
// business-level shape.

func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Predefined errors for the job lifecycle.

var ErrNotJobOwner = New(
	CodeForbidden,
	"jobs",
	"Only the job owner may perform this action",
	http.StatusForbidden,
)

var ErrNotJobParticipant = New(
	CodeForbidden,
	"jobs",
	"Only the job owner or assignee may perform this action",
	http.StatusForbidden,
)

var ErrSelfRequest = New(
	CodeConflict,
	"requests",
	"Cannot request your own job",
	http.StatusConflict,
)

var ErrDuplicateRequest = New(
	CodeConflict,
	"requests",
	"Job already requested by this user",
	http.StatusConflict,
)

var ErrRequestAlreadyDecided = New(
	CodeConflict,
	"requests",
	"Request has already been approved or rejected",
	http.StatusConflict,
)

var ErrJobNotOpen = New(
	CodeConflict,
	"jobs",
	"Job is no longer open",
	http.StatusConflict,
)

var ErrJobNotApproved = New(
	CodeConflict,
	"jobs",
	"Job has no active assignment",
	http.StatusConflict,
)

var ErrJobNotCompleted = New(
	CodeConflict,
	"reviews",
	"Job must be completed before it can be reviewed",
	http.StatusConflict,
)

var ErrDuplicateReview = New(
	CodeConflict,
	"reviews",
	"Job already reviewed by this user",
	http.StatusConflict,
)

var ErrRevieweeMismatch = New(
	CodeValidationFailed,
	"reviews",
	"Reviewee must be the other participant of the job",
	http.StatusBadRequest,
)

// Auth errors.

var ErrUserAlreadyVerified = New(
	CodeAlreadyExists,
	"auth",
	"User already exists",
	http.StatusConflict,
)

var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"User not verified",
	http.StatusForbidden,
)

var ErrInvalidVerificationCode = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid verification code",
	http.StatusBadRequest,
)

var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid refresh token",
	http.StatusUnauthorized,
)
