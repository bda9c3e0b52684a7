package jsonld

import "fmt"

// URLError is returned when a canonical URL cannot anchor a document.
type URLError struct {
	URL     string
	Message string
	Cause   error
}

func (e *URLError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("jsonld: %s %q: %v", e.Message, e.URL, e.Cause)
	}
	return fmt.Sprintf("jsonld: %s %q", e.Message, e.URL)
}

func (e *URLError) Unwrap() error {
	return e.Cause
}
