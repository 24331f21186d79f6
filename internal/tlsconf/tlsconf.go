// Package tlsconf turns a connection's SSL settings into a client *tls.Config.
//
// The file layout follows the mongo shell options the settings mirror:
// the CA file holds one or more PEM certificates, the PEM key file holds the
// client certificate chain followed by its private key, and the CRL file holds
// one or more revocation lists in PEM or DER form.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/shhac/cavern/internal/domain"
	apperrors "github.com/shhac/cavern/internal/errors"
)

// Build returns the client TLS configuration described by s, or nil when SSL
// is disabled. serverName may be empty, in which case the transport fills it
// in from the dialed address.
func Build(s domain.SSLSettings, serverName string) (*tls.Config, error) {
	if !s.Enabled {
		return nil, nil
	}

	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		ServerName: serverName,
	}

	if s.CAFile != "" {
		pool, err := LoadCertPool(s.CAFile)
		if err != nil {
			return nil, err
		}
		cfg.RootCAs = pool
	}

	if s.PEMKeyFile != "" {
		passphrase := ""
		if s.PEMKeyEncrypted {
			passphrase = s.PEMPassPhrase
		}
		cert, err := LoadKeyPair(s.PEMKeyFile, passphrase)
		if err != nil {
			return nil, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	var revoked *RevocationChecker
	if s.CRLFile != "" {
		checker, err := LoadCRL(s.CRLFile)
		if err != nil {
			return nil, err
		}
		revoked = checker
	}

	switch {
	case s.AllowInvalidCertificates:
		// Chain and hostname are not checked; revocation still is.
		cfg.InsecureSkipVerify = true
		if revoked != nil {
			cfg.VerifyConnection = revoked.VerifyConnection
		}
	case s.AllowInvalidHostnames:
		cfg.InsecureSkipVerify = true
		cfg.VerifyConnection = verifyChainOnly(cfg.RootCAs, revoked)
	default:
		if revoked != nil {
			cfg.VerifyConnection = revoked.VerifyConnection
		}
	}

	return cfg, nil
}

// LoadCertPool reads PEM certificates from path into a new pool.
func LoadCertPool(path string) (*x509.CertPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read CA file: %w", apperrors.ErrTLSConfig, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, fmt.Errorf("%w: no certificates found in CA file %s", apperrors.ErrTLSConfig, path)
	}
	return pool, nil
}

// verifyChainOnly verifies the peer chain against roots (the system pool when
// nil) without matching the certificate against the dialed host name.
func verifyChainOnly(roots *x509.CertPool, revoked *RevocationChecker) func(tls.ConnectionState) error {
	return func(cs tls.ConnectionState) error {
		if len(cs.PeerCertificates) == 0 {
			return errors.New("tls: server presented no certificate")
		}
		opts := x509.VerifyOptions{
			Roots:         roots,
			Intermediates: x509.NewCertPool(),
		}
		for _, cert := range cs.PeerCertificates[1:] {
			opts.Intermediates.AddCert(cert)
		}
		if _, err := cs.PeerCertificates[0].Verify(opts); err != nil {
			return err
		}
		if revoked != nil {
			return revoked.VerifyConnection(cs)
		}
		return nil
	}
}
