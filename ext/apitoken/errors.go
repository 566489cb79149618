package apitoken

import (
	"fmt"

	xnet "github.com/goto/optimus-apitoken/internal/net"
	"github.com/pkg/errors"
)

// ErrorKind tells which step of a fetch failed.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindHTTP is an error status on the token or the data request.
	KindHTTP
	// KindConnectivity is a transport failure on the token or the data request.
	KindConnectivity
	// KindReadOnly is any attempt to save.
	KindReadOnly
	// KindMalformedToken is a token response without token_type or access_token.
	KindMalformedToken
)

func (k ErrorKind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindConnectivity:
		return "connectivity"
	case KindReadOnly:
		return "read_only"
	case KindMalformedToken:
		return "malformed_token"
	default:
		return "unknown"
	}
}

// HTTPStatusError is attached to KindHTTP errors.
type HTTPStatusError = xnet.StatusError

// DataSetError is the only error kind returned by the data set,
// besides context cancellation.
type DataSetError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *DataSetError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause.Error())
	}
	return e.Message
}

func (e *DataSetError) Unwrap() error {
	return e.cause
}

// StatusCode returns the status of the failed response, 0 when there is none.
func (e *DataSetError) StatusCode() int {
	var statusErr *HTTPStatusError
	if errors.As(e.cause, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

func newHTTPError(cause error) *DataSetError {
	return &DataSetError{Kind: KindHTTP, Message: "Failed to fetch data", cause: cause}
}

// no cause is attached, the transport error is only logged
func newConnectivityError() *DataSetError {
	return &DataSetError{Kind: KindConnectivity, Message: "Failed to connect to the remote server"}
}

func newReadOnlyError(dataSetType string) *DataSetError {
	return &DataSetError{Kind: KindReadOnly, Message: fmt.Sprintf("%s is a read only data set type", dataSetType)}
}

func newMalformedTokenError(cause error) *DataSetError {
	return &DataSetError{Kind: KindMalformedToken, Message: "Malformed token response", cause: cause}
}

// KindOf returns the kind of the DataSetError in err's chain.
func KindOf(err error) ErrorKind {
	var e *DataSetError
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsHTTPError(err error) bool {
	return KindOf(err) == KindHTTP
}

func IsConnectivityError(err error) bool {
	return KindOf(err) == KindConnectivity
}

func IsReadOnlyError(err error) bool {
	return KindOf(err) == KindReadOnly
}

func IsMalformedTokenError(err error) bool {
	return KindOf(err) == KindMalformedToken
}
