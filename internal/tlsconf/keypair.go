package tlsconf

import (
	"crypto/ed25519"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"

	apperrors "github.com/shhac/cavern/internal/errors"
)

// LoadKeyPair reads a PEM file holding a certificate chain and a private key.
// A non-empty passphrase decrypts a legacy "Proc-Type: 4,ENCRYPTED" key or an
// OpenSSH key.
func LoadKeyPair(path, passphrase string) (tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: read PEM file: %w", apperrors.ErrTLSConfig, err)
	}

	var certPEM []byte
	var keyBlock *pem.Block
	for rest := data; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		switch {
		case block.Type == "CERTIFICATE":
			certPEM = append(certPEM, pem.EncodeToMemory(block)...)
		case strings.HasSuffix(block.Type, "PRIVATE KEY") && keyBlock == nil:
			keyBlock = block
		}
	}
	if certPEM == nil {
		return tls.Certificate{}, fmt.Errorf("%w: no certificate found in PEM file %s", apperrors.ErrTLSConfig, path)
	}
	if keyBlock == nil {
		return tls.Certificate{}, fmt.Errorf("%w: no private key found in PEM file %s", apperrors.ErrTLSConfig, path)
	}

	keyPEM, err := decodeKey(keyBlock, passphrase)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: %s: %w", apperrors.ErrTLSConfig, path, err)
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: %s: %w", apperrors.ErrTLSConfig, path, err)
	}
	return cert, nil
}

// decodeKey returns the key as unencrypted PKCS#8 PEM.
func decodeKey(block *pem.Block, passphrase string) ([]byte, error) {
	if block.Type == "ENCRYPTED PRIVATE KEY" {
		return nil, errors.New("encrypted PKCS#8 keys are not supported, convert the key to PKCS#1 or OpenSSH format")
	}

	raw := pem.EncodeToMemory(block)
	encrypted := strings.Contains(block.Headers["Proc-Type"], "ENCRYPTED")

	var key any
	var err error
	switch {
	case passphrase != "" && (encrypted || block.Type == "OPENSSH PRIVATE KEY"):
		key, err = ssh.ParseRawPrivateKeyWithPassphrase(raw, []byte(passphrase))
	case encrypted:
		return nil, errors.New("private key is encrypted but no passphrase was given")
	default:
		key, err = ssh.ParseRawPrivateKey(raw)
	}
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, errors.New("private key is encrypted but no passphrase was given")
		}
		if errors.Is(err, x509.IncorrectPasswordError) {
			return nil, errors.New("incorrect passphrase for private key")
		}
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	// OpenSSH ed25519 keys come back as a pointer.
	if k, ok := key.(*ed25519.PrivateKey); ok {
		key = *k
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("encode private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}
