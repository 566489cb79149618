package net

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"syscall"

	"github.com/pkg/errors"
)

const (
	ReasonTimeout = "timeout"
	ReasonRefused = "refused"
	ReasonDNS     = "dns"
	ReasonTLS     = "tls"
	ReasonOther   = "other"
)

// Reason categorises a transport error returned by a dial or an http round trip.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ReasonDNS
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ReasonRefused
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	if isTLSError(err) {
		return ReasonTLS
	}
	return ReasonOther
}

func isTLSError(err error) bool {
	var recordErr tls.RecordHeaderError
	var certErr *tls.CertificateVerificationError
	var unknownAuthority x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	return errors.As(err, &recordErr) ||
		errors.As(err, &certErr) ||
		errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostnameErr)
}
