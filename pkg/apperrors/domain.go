package apperrors

import "net/http"

// --- Доступ ---

var ErrUnauthenticated = New(
	CodeUnauthorized,
	"auth",
	"Authentication required",
	http.StatusUnauthorized,
)

var ErrPendingApproval = New(
	CodePendingApproval,
	"auth",
	"Account pending approval",
	http.StatusForbidden,
)

// ErrAccountNotFound - сессия ссылается на удаленный аккаунт
var ErrAccountNotFound = New(
	CodeAccountNotFound,
	"auth",
	"User account not found",
	http.StatusNotFound,
)

var ErrAdminRequired = New(
	CodeForbidden,
	"auth",
	"Admin access required",
	http.StatusForbidden,
)

var ErrNotAParty = New(
	CodeForbidden,
	"auth",
	"You are not a party to this resource",
	http.StatusForbidden,
)

// --- Аккаунты ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrWrongCurrentPassword = New(
	CodeInvalidCredentials,
	"auth",
	"Current password is incorrect",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already exists",
	http.StatusConflict,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrNoProfileFields = New(
	CodeValidationFailed,
	"profile",
	"No valid fields to update",
	http.StatusBadRequest,
)

var ErrInvalidPhone = New(
	CodeValidationFailed,
	"profile",
	"Invalid phone number",
	http.StatusBadRequest,
)

// --- Верификация ---

var ErrInvalidOrExpiredCode = New(
	CodeInvalidOrExpiredCode,
	"verification",
	"Invalid or expired verification code",
	http.StatusBadRequest,
)

var ErrAlreadyVerified = New(
	CodeConflict,
	"verification",
	"Already verified",
	http.StatusBadRequest,
)

var ErrDeliveryFailed = New(
	CodeDeliveryError,
	"verification",
	"Failed to send verification code",
	http.StatusBadGateway,
)

// --- Гиги ---

var ErrGigNotFound = New(
	CodeNotFound,
	"gig",
	"Gig not found",
	http.StatusNotFound,
)

var ErrGigNotOpen = New(
	CodeInvalidStatus,
	"gig",
	"Gig is not open",
	http.StatusConflict,
)

var ErrGigInvalidTransition = New(
	CodeInvalidStatus,
	"gig",
	"Gig status does not allow this action",
	http.StatusConflict,
)

var ErrNotGigProvider = New(
	CodeForbidden,
	"gig",
	"Only the gig provider can do this",
	http.StatusForbidden,
)

var ErrLocationRequired = New(
	CodeValidationFailed,
	"matching",
	"Location required for recommendations",
	http.StatusBadRequest,
)

// --- Заявки ---

var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

var ErrDuplicateApplication = New(
	CodeConflict,
	"application",
	"You have already applied to this gig",
	http.StatusConflict,
)

var ErrOwnGig = New(
	CodeConflict,
	"application",
	"You cannot apply to your own gig",
	http.StatusConflict,
)

var ErrApplicationNotPending = New(
	CodeInvalidStatus,
	"application",
	"Application is not pending",
	http.StatusConflict,
)

// --- Контракты ---

var ErrContractNotFound = New(
	CodeNotFound,
	"contract",
	"Contract not found",
	http.StatusNotFound,
)

var ErrAlreadySigned = New(
	CodeConflict,
	"contract",
	"Contract already signed by this party",
	http.StatusConflict,
)

var ErrContractNotPending = New(
	CodeInvalidStatus,
	"contract",
	"Contract is not pending",
	http.StatusConflict,
)

var ErrSeekerMismatch = New(
	CodeConflict,
	"contract",
	"Seeker does not match the gig assignment",
	http.StatusConflict,
)

var ErrSelfContract = New(
	CodeValidationFailed,
	"contract",
	"Provider and seeker must be different users",
	http.StatusBadRequest,
)

// --- Отзывы ---

var ErrReviewNotAllowed = New(
	CodeForbidden,
	"review",
	"Only participants of a completed gig can leave reviews",
	http.StatusForbidden,
)

var ErrDuplicateReview = New(
	CodeConflict,
	"review",
	"You have already reviewed this gig",
	http.StatusConflict,
)

var ErrRateLimited = New(
	CodeLimitExceeded,
	"ratelimit",
	"Too many requests",
	http.StatusTooManyRequests,
)
