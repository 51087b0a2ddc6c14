package core

// ErrorCategory classifies the type of error for reporting and HTTP mapping
type ErrorCategory int

const (
	ErrCategoryNone     ErrorCategory = iota // No error
	ErrCategoryDocument                      // XML could not be parsed
	ErrCategoryInput                         // Missing or invalid request input
	ErrCategoryFetch                         // Remote document or screenshot unavailable
	ErrCategoryStore                         // Job lookup failed
	ErrCategoryAuth                          // Missing or wrong bearer token
	ErrCategoryConfig                        // Invalid configuration
)

// String returns the string representation of ErrorCategory
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryDocument:
		return "document"
	case ErrCategoryInput:
		return "input"
	case ErrCategoryFetch:
		return "fetch"
	case ErrCategoryStore:
		return "store"
	case ErrCategoryAuth:
		return "auth"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}
