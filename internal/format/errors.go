package format

const unknownError = "Unknown error"

// ParseError reports Taskfile text that could not be parsed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "Invalid YAML: " + causeMessage(e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatError reports a failure while transforming or printing a parsed
// document.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return "Formatting failed: " + causeMessage(e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func causeMessage(err error) string {
	if err == nil {
		return unknownError
	}
	return err.Error()
}

// recovered converts a panic payload into an error. Payloads that are not
// errors carry no usable message.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return nil
}
