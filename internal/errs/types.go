package errs

import "errors"

// GenerationFailedMessage is the only text a caller ever sees for a failed
// model call, whatever the underlying cause.
const GenerationFailedMessage = "The AI model failed to generate a valid response. Please try again."

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type ValidationError struct {
	ErrorMessage
}

type ConfigError struct {
	ErrorMessage
}

// GenerationError hides transport, decoding and shape failures of the model
// call behind GenerationFailedMessage. Cause is kept for logs.
type GenerationError struct {
	ErrorMessage
	Cause error
}

func (e *GenerationError) Unwrap() error { return e.Cause }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewConfigError(message string) *ConfigError {
	return &ConfigError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewGenerationError(cause error) *GenerationError {
	return &GenerationError{
		ErrorMessage: ErrorMessage{Message: GenerationFailedMessage},
		Cause:        cause,
	}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
