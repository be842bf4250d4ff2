package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrDatabaseUnavailable = fmt.Errorf("database unavailable")
	ErrChartNotFound       = fmt.Errorf("chart not found")
	ErrSettingNotFound     = fmt.Errorf("setting not found")

	// Editor and import errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrItemNotFound       = fmt.Errorf("item not found")
	ErrInvalidSchema      = fmt.Errorf("document does not match item schema")
	ErrUnsupportedFormat  = fmt.Errorf("unsupported format")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
