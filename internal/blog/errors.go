package blog

import "fmt"

// RegistryError represents a failure loading the post registry
type RegistryError struct {
	Slug    string
	Message string
	Cause   error
}

func (e *RegistryError) Error() string {
	prefix := "blog registry error"
	if e.Slug != "" {
		prefix = fmt.Sprintf("blog registry error: post %s", e.Slug)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *RegistryError) Unwrap() error {
	return e.Cause
}

// ExtractionError represents a failure analyzing a post body
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
