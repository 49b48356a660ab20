package services

// ErrorKind classifies a service error.
type ErrorKind int

const (
	KindInvalid ErrorKind = iota + 1
	KindUnauthorized
	KindNotFound
	KindConflict
)

// Error represents a service error whose message is safe to show to users
type Error struct {
	Kind    ErrorKind
	message string
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, message: message}
}

func (e *Error) Error() string {
	return e.message
}

// Error definitions
var (
	ErrMissingFields           = NewError(KindInvalid, "All fields are required")
	ErrUnknownCountry          = NewError(KindInvalid, "Unknown country")
	ErrEmailTaken              = NewError(KindConflict, "Email is already registered")
	ErrInvalidCredentials      = NewError(KindUnauthorized, "Invalid email or password")
	ErrInvalidToken            = NewError(KindUnauthorized, "Invalid or expired token")
	ErrUserNotFound            = NewError(KindNotFound, "User not found")
	ErrCurrentPasswordRequired = NewError(KindInvalid, "Current password is required to set a new password")
	ErrWrongPassword           = NewError(KindInvalid, "Current password is incorrect")
	ErrRecipeFields            = NewError(KindInvalid, "Food name and recipe are required")
	ErrRecipeNotFound          = NewError(KindNotFound, "Recipe not found")
)
