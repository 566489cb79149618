package net_test

import (
	"context"
	"crypto/x509"
	"fmt"
	"net"
	"testing"

	xnet "github.com/goto/optimus-apitoken/internal/net"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReason(t *testing.T) {
	t.Run("return empty for nil error", func(t *testing.T) {
		assert.Empty(t, xnet.Reason(nil))
	})
	t.Run("when dial is refused", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := l.Addr().String()
		require.NoError(t, l.Close())

		_, err = net.Dial("tcp", addr)
		require.Error(t, err)
		assert.Equal(t, xnet.ReasonRefused, xnet.Reason(errors.WithStack(err)))
	})
	t.Run("when host cannot be resolved", func(t *testing.T) {
		err := &net.DNSError{Err: "no such host", Name: "unknown.invalid", IsNotFound: true}
		assert.Equal(t, xnet.ReasonDNS, xnet.Reason(fmt.Errorf("dial: %w", err)))
	})
	t.Run("when deadline is exceeded", func(t *testing.T) {
		assert.Equal(t, xnet.ReasonTimeout, xnet.Reason(errors.WithStack(context.DeadlineExceeded)))
	})
	t.Run("when certificate is not trusted", func(t *testing.T) {
		err := fmt.Errorf("tls: %w", x509.UnknownAuthorityError{})
		assert.Equal(t, xnet.ReasonTLS, xnet.Reason(err))
	})
	t.Run("when error is unknown", func(t *testing.T) {
		assert.Equal(t, xnet.ReasonOther, xnet.Reason(errors.New("boom")))
	})
}
