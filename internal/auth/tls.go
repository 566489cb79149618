package auth

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"

	"github.com/pkg/errors"
)

// NewTLSConfig builds a client tls.Config. A non empty tlsCACert replaces the
// system roots, tlsCert and tlsKey are presented as client certificate.
// Server certificates are always verified.
func NewTLSConfig(tlsCACert, tlsCert, tlsKey string) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if (tlsCert == "") != (tlsKey == "") {
		return nil, errors.New("both tls certificate and key are required")
	}
	if tlsCert != "" {
		// load the certificate and key
		cert, err := tls.X509KeyPair([]byte(tlsCert), []byte(tlsKey))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if tlsCACert != "" {
		// load the CA certificate
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM([]byte(tlsCACert)); !ok {
			return nil, errors.WithStack(fmt.Errorf("failed to append CA certificate"))
		}
		cfg.RootCAs = caCertPool
	}

	return cfg, nil
}
