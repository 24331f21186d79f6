package tlsconf

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	apperrors "github.com/shhac/cavern/internal/errors"
)

// RevocationChecker rejects peer certificates listed in a set of CRLs.
type RevocationChecker struct {
	lists []*x509.RevocationList
}

// LoadCRL reads one or more revocation lists from path. PEM "X509 CRL" blocks
// are read in order; a file without PEM blocks is parsed as a single DER list.
func LoadCRL(path string) (*RevocationChecker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read CRL file: %w", apperrors.ErrTLSConfig, err)
	}

	var ders [][]byte
	for rest := data; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type == "X509 CRL" {
			ders = append(ders, block.Bytes)
		}
	}
	if len(ders) == 0 {
		ders = [][]byte{data}
	}

	checker := &RevocationChecker{}
	for _, der := range ders {
		list, err := x509.ParseRevocationList(der)
		if err != nil {
			return nil, fmt.Errorf("%w: parse CRL file %s: %w", apperrors.ErrTLSConfig, path, err)
		}
		checker.lists = append(checker.lists, list)
	}
	return checker, nil
}

// Revoked reports whether cert appears in a list issued by cert's issuer.
func (c *RevocationChecker) Revoked(cert *x509.Certificate) bool {
	for _, list := range c.lists {
		if !bytes.Equal(list.RawIssuer, cert.RawIssuer) {
			continue
		}
		for _, entry := range list.RevokedCertificateEntries {
			if entry.SerialNumber != nil && entry.SerialNumber.Cmp(cert.SerialNumber) == 0 {
				return true
			}
		}
	}
	return false
}

// VerifyConnection is a tls.Config.VerifyConnection hook that fails the
// handshake when any presented certificate has been revoked.
func (c *RevocationChecker) VerifyConnection(cs tls.ConnectionState) error {
	for _, cert := range cs.PeerCertificates {
		if c.Revoked(cert) {
			return fmt.Errorf("tls: certificate %q (serial %s) has been revoked",
				cert.Subject.CommonName, cert.SerialNumber)
		}
	}
	return nil
}
