package extractor

// InputError reports a caller-supplied parameter that failed validation.
// No outbound call is made for an invalid input.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

// NotFoundError reports that every source answered but none produced a
// usable result and no transport failure occurred.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

// ExhaustedError reports that every candidate was tried without a usable
// result. It surfaces the last transport error encountered, or the
// capability's generic message when every failure was a shape miss.
type ExhaustedError struct {
	LastErr  error
	Fallback string
}

func (e *ExhaustedError) Error() string {
	if e.LastErr != nil {
		return e.LastErr.Error()
	}
	return e.Fallback
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}
