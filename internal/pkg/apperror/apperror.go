package apperror

// AppError is an error that carries the HTTP status code the boundary layer
// should answer with. Business packages declare their failure modes as
// sentinel AppErrors so the transport layer can map them without switching
// on error strings.
type AppError struct {
	Code    int    // HTTP status code
	Message string // user-facing message
	Err     error  // wrapped cause, never exposed to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
