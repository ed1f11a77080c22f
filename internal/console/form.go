package console

// FormError is a validation failure on a user-entered field. It is shown
// next to the field and the form input is kept.
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string {
	return e.Field + ": " + e.Message
}

func formErr(field, msg string) *FormError {
	return &FormError{Field: field, Message: msg}
}
