package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeTransport represents fetch/network errors
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeDiscovery represents unexpected category page structure
	ErrorTypeDiscovery ErrorType = "discovery"
	// ErrorTypeTimeout represents an expired wait for rendered elements
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeParse represents date-range parsing errors
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeValidation represents missing required flyer fields
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypePersistence represents output file write errors
	ErrorTypePersistence ErrorType = "persistence"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// FlyerError represents a pipeline-specific error
type FlyerError struct {
	Type    ErrorType
	Shop    string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *FlyerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Shop, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Shop, e.Message)
}

// Unwrap returns the underlying error
func (e *FlyerError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if the error aborts the whole pipeline run.
// Only transport and discovery errors are fatal; everything else is
// recovered at the shop or flyer level.
func (e *FlyerError) IsFatal() bool {
	switch e.Type {
	case ErrorTypeTransport, ErrorTypeDiscovery:
		return true
	default:
		return false
	}
}

// IsType reports whether err is a FlyerError of the given type
func IsType(err error, errType ErrorType) bool {
	var fe *FlyerError
	if errors.As(err, &fe) {
		return fe.Type == errType
	}
	return false
}

// New creates a new FlyerError
func New(errType ErrorType, shop, message string, err error) *FlyerError {
	return &FlyerError{
		Type:    errType,
		Shop:    shop,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewTransport creates a new transport error
func NewTransport(shop, message string, err error) *FlyerError {
	return New(ErrorTypeTransport, shop, message, err)
}

// NewDiscovery creates a new discovery error
func NewDiscovery(shop, message string, err error) *FlyerError {
	return New(ErrorTypeDiscovery, shop, message, err)
}

// NewTimeout creates a new timeout error
func NewTimeout(shop string, timeout time.Duration) *FlyerError {
	message := fmt.Sprintf("wait expired after %v", timeout)
	return New(ErrorTypeTimeout, shop, message, nil)
}

// NewParse creates a new parse error
func NewParse(shop, message string, err error) *FlyerError {
	return New(ErrorTypeParse, shop, message, err)
}

// NewValidation creates a new validation error
func NewValidation(shop, message string) *FlyerError {
	return New(ErrorTypeValidation, shop, message, nil)
}

// NewPersistence creates a new persistence error
func NewPersistence(message string, err error) *FlyerError {
	return New(ErrorTypePersistence, "", message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *FlyerError {
	return New(ErrorTypeConfiguration, "", message, err)
}
