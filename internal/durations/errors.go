package durations

import "errors"

var (
	// ErrDataSourceUnavailable means the dataset could not be read
	ErrDataSourceUnavailable = errors.New("duration data source unavailable")
	// ErrDataFormat means the dataset is not a mapping of identifiers to durations
	ErrDataFormat = errors.New("invalid duration data format")
	// ErrMissingRequiredKey means a record the dataset claims to describe has no duration
	ErrMissingRequiredKey = errors.New("missing required duration key")
	// ErrMissingDataSource means least-processing-time was selected without a dataset
	ErrMissingDataSource = errors.New("least-processing-time requires --lpt-data")
)
