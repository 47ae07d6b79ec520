package model

import (
	"errors"
)

// ErrorKind classifies a per-document failure.
type ErrorKind string

const (
	ErrorKindNetwork ErrorKind = "network"
	ErrorKindIO      ErrorKind = "io"
	ErrorKindParse   ErrorKind = "parse"
	ErrorKindUnknown ErrorKind = "unknown"
)

// KindError attaches an ErrorKind to an underlying error.
type KindError struct {
	Kind ErrorKind
	Err  error
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return string(e.Kind) + " error"
	}
	return e.Err.Error()
}

func (e *KindError) Unwrap() error {
	return e.Err
}

// NetworkError marks err as a failed request or non-success response.
func NetworkError(err error) error {
	return &KindError{Kind: ErrorKindNetwork, Err: err}
}

// IOError marks err as a local file system failure.
func IOError(err error) error {
	return &KindError{Kind: ErrorKindIO, Err: err}
}

// ParseError marks err as malformed document content.
func ParseError(err error) error {
	return &KindError{Kind: ErrorKindParse, Err: err}
}

// KindOf returns the kind of the first KindError in err's chain, or
// ErrorKindUnknown if there is none.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return ErrorKindUnknown
}
