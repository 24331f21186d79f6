package domain

import (
	"os"

	"github.com/spf13/cast"
)

// Variant is the generic key-value form settings are persisted in.
type Variant map[string]any

// Persisted keys of SSLSettings
const (
	KeySSLEnabled                  = "enabled"
	KeySSLCAFile                   = "caFile"
	KeySSLPEMKeyFile               = "pemKeyFile"
	KeySSLPEMPassPhrase            = "pemPassPhrase"
	KeySSLCRLFile                  = "crlFile"
	KeySSLAllowInvalidHostnames    = "allowInvalidHostnames"
	KeySSLAllowInvalidCertificates = "allowInvalidCertificates"
	KeySSLPEMKeyEncrypted          = "pemKeyEncrypted"
)

// VariantKeys lists the SSLSettings keys in the order they are written out.
var VariantKeys = []string{
	KeySSLEnabled,
	KeySSLCAFile,
	KeySSLPEMKeyFile,
	KeySSLPEMPassPhrase,
	KeySSLCRLFile,
	KeySSLAllowInvalidHostnames,
	KeySSLAllowInvalidCertificates,
	KeySSLPEMKeyEncrypted,
}

// File labels reported when a referenced file is missing
const (
	LabelCAFile  = "CA"
	LabelPEMFile = "Client Certificate"
	LabelCRLFile = "CRL (Revocation List)"
)

// SSLSettings holds the TLS configuration of a single connection.
// The zero value is the default: SSL disabled, no files.
type SSLSettings struct {
	Enabled                  bool
	CAFile                   string // CA certificate (mongo --sslCAFile)
	PEMKeyFile               string // client certificate and key (mongo --sslPEMKeyFile)
	PEMPassPhrase            string
	PEMKeyEncrypted          bool // PEMPassPhrase applies only when set
	CRLFile                  string
	AllowInvalidHostnames    bool
	AllowInvalidCertificates bool
}

// Clone returns an independent copy of the settings.
func (s *SSLSettings) Clone() *SSLSettings {
	cloned := *s
	return &cloned
}

// ToVariant converts the settings into their persisted form.
func (s *SSLSettings) ToVariant() Variant {
	return Variant{
		KeySSLEnabled:                  s.Enabled,
		KeySSLCAFile:                   s.CAFile,
		KeySSLPEMKeyFile:               s.PEMKeyFile,
		KeySSLPEMPassPhrase:            s.PEMPassPhrase,
		KeySSLCRLFile:                  s.CRLFile,
		KeySSLAllowInvalidHostnames:    s.AllowInvalidHostnames,
		KeySSLAllowInvalidCertificates: s.AllowInvalidCertificates,
		KeySSLPEMKeyEncrypted:          s.PEMKeyEncrypted,
	}
}

// FromVariant overwrites every field from v. Missing or unconvertible values
// fall back to false / "", unknown keys are ignored.
func (s *SSLSettings) FromVariant(v Variant) {
	s.Enabled = cast.ToBool(v[KeySSLEnabled])
	s.CAFile = cast.ToString(v[KeySSLCAFile])
	s.PEMKeyFile = cast.ToString(v[KeySSLPEMKeyFile])
	s.PEMPassPhrase = cast.ToString(v[KeySSLPEMPassPhrase])
	s.CRLFile = cast.ToString(v[KeySSLCRLFile])
	s.AllowInvalidHostnames = cast.ToBool(v[KeySSLAllowInvalidHostnames])
	s.AllowInvalidCertificates = cast.ToBool(v[KeySSLAllowInvalidCertificates])
	s.PEMKeyEncrypted = cast.ToBool(v[KeySSLPEMKeyEncrypted])
}

// SSLSettingsFromVariant builds settings from their persisted form.
func SSLSettingsFromVariant(v Variant) *SSLSettings {
	s := &SSLSettings{}
	s.FromVariant(v)
	return s
}

// Summary describes how a connection using s is secured, in a few words.
func (s *SSLSettings) Summary() string {
	switch {
	case !s.Enabled:
		return "plain"
	case s.AllowInvalidCertificates:
		return "SSL, self-signed"
	case s.PEMKeyFile != "":
		return "SSL, client certificate"
	default:
		return "SSL"
	}
}

// CheckFiles verifies that every non-empty file path exists and is a regular file.
// On failure it returns false and the label of the first missing file.
func (s *SSLSettings) CheckFiles() (bool, string) {
	files := []struct {
		path  string
		label string
	}{
		{s.CAFile, LabelCAFile},
		{s.PEMKeyFile, LabelPEMFile},
		{s.CRLFile, LabelCRLFile},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if !FileExists(f.path) {
			return false, f.label
		}
	}
	return true, ""
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
