// Package errors provides error types and handling for ftp-style cloud
// storage operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a failed ftp operation with context about where it failed.
// It wraps the underlying SDK or filesystem error for error chaining.
type Error struct {
	// Op is the verb that failed (e.g., "put", "ls", "open")
	Op string

	// Bucket is the bucket name (if applicable)
	Bucket string

	// Key is the object key or path involved (if applicable)
	Key string

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("s3ftp.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("s3ftp.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("s3ftp.%s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("s3ftp.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// New creates a new Error with the given operation and underlying error.
func New(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// Sentinel errors forming the shared taxonomy. Provider-specific failures
// are classified onto these so callers can switch with errors.Is.
var (
	// ErrConfiguration indicates a config file that exists but cannot be
	// parsed, or otherwise invalid client configuration
	ErrConfiguration = errors.New("s3ftp: configuration error")

	// ErrNotFound indicates an absent object, directory, or bucket
	ErrNotFound = errors.New("s3ftp: not found")

	// ErrPermission indicates an authentication or ACL failure
	ErrPermission = errors.New("s3ftp: permission denied")

	// ErrTransfer indicates a failed upload or download
	ErrTransfer = errors.New("s3ftp: transfer failed")

	// ErrNotConnected indicates a verb was used before open bound a bucket
	ErrNotConnected = errors.New("s3ftp: no open bucket")

	// ErrInvalidCommand indicates an unknown verb or wrong argument count
	ErrInvalidCommand = errors.New("s3ftp: invalid command")

	// ErrIsDirectory indicates a file operation aimed at a directory
	ErrIsDirectory = errors.New("s3ftp: is a directory")

	// ErrExists indicates the target object or directory already exists
	ErrExists = errors.New("s3ftp: already exists")

	// ErrNotEmpty indicates a directory that was expected to be empty is not
	ErrNotEmpty = errors.New("s3ftp: directory not empty")
)

// IsConfiguration checks if an error indicates a configuration failure.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsNotFound checks if an error indicates an absent object, directory, or bucket.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPermission checks if an error indicates an authentication or ACL failure.
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsTransfer checks if an error indicates a failed transfer.
func IsTransfer(err error) bool {
	return errors.Is(err, ErrTransfer)
}
