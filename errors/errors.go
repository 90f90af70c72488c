package errors

const (
	InvalidRequestFormatError = "Invalid request format"
	UsernameOrEmailExist      = "Username or email already exists"
	UserNotFoundError         = "User Not Found"
	InvalidCredentials        = "Invalid credential"
	InvalidPasswordFormat     = "Password must be at least 8 characters and include a letter, a number, an @ character and no spaces"
	PasswordsNotMatching      = "Passwords don't match"
	HomeNotAvailable          = "Home is not available for those dates."
	HomeNotFoundError         = "Home not found"
	NoHomesFound              = "No homes found"
	InvalidDateRange          = "Start date must not be after end date"
	MissingSigningSecret      = "Signing secret is not configured"
)

// ValidationError covers malformed or out-of-range input rejected at the
// boundary, before any store access.
type ValidationError struct {
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidRangeError is returned when a requested date range has its start
// after its end.
type InvalidRangeError struct {
	Message string `json:"message"`
}

func (e *InvalidRangeError) Error() string {
	return e.Message
}

// ConflictError signals a uniqueness violation on username or email. The
// store raises it both on the advisory pre-check and on an insert-time
// unique constraint rejection.
type ConflictError struct {
	Message string `json:"message"`
}

func (e *ConflictError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Message string `json:"message"`
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NotAvailableError rejects a booking whose requested range overlaps none
// of the home's advertised windows.
type NotAvailableError struct {
	Message string `json:"message"`
}

func (e *NotAvailableError) Error() string {
	return e.Message
}

type AuthenticationError struct {
	Message string `json:"message"`
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// ConfigurationError is fatal at startup, never returned per-request.
type ConfigurationError struct {
	Message string `json:"message"`
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// StorageError wraps an underlying store failure. Callers surface it as a
// generic internal error and never retry automatically.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type tokenError string

func (e tokenError) Error() string {
	return string(e)
}

// Token decode failures. All three mean "no valid identity" to callers.
var (
	ErrTokenExpired     = tokenError("Token has expired")
	ErrInvalidSignature = tokenError("Token signature is invalid")
	ErrMalformedToken   = tokenError("Token is malformed")
)
