package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSSLSettings() SSLSettings {
	return SSLSettings{
		Enabled:                  true,
		CAFile:                   "/etc/ssl/ca.pem",
		PEMKeyFile:               "/home/user/client.pem",
		PEMPassPhrase:            "s3cret",
		PEMKeyEncrypted:          true,
		CRLFile:                  "/etc/ssl/revoked.crl",
		AllowInvalidHostnames:    true,
		AllowInvalidCertificates: false,
	}
}

func TestSSLSettings_ZeroValueIsDefault(t *testing.T) {
	var s SSLSettings
	assert.False(t, s.Enabled)
	assert.Empty(t, s.CAFile)
	assert.Empty(t, s.PEMKeyFile)
	assert.Empty(t, s.PEMPassPhrase)
	assert.Empty(t, s.CRLFile)
	assert.False(t, s.PEMKeyEncrypted)
	assert.False(t, s.AllowInvalidHostnames)
	assert.False(t, s.AllowInvalidCertificates)
}

func TestSSLSettings_ToVariantKeys(t *testing.T) {
	s := fullSSLSettings()
	v := s.ToVariant()

	require.Len(t, v, len(VariantKeys))
	for _, key := range VariantKeys {
		assert.Contains(t, v, key)
	}
	assert.Equal(t, true, v["enabled"])
	assert.Equal(t, "/etc/ssl/ca.pem", v["caFile"])
	assert.Equal(t, "s3cret", v["pemPassPhrase"])
	assert.Equal(t, false, v["allowInvalidCertificates"])
}

func TestSSLSettings_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   SSLSettings
	}{
		{"defaults", SSLSettings{}},
		{"all set", fullSSLSettings()},
		{"self-signed", SSLSettings{Enabled: true, AllowInvalidCertificates: true}},
		{"unencrypted key", SSLSettings{Enabled: true, PEMKeyFile: "c.pem", PEMPassPhrase: "ignored"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out SSLSettings
			out.FromVariant(tt.in.ToVariant())
			assert.Equal(t, tt.in, out)
		})
	}
}

func TestSSLSettings_FromEmptyVariant(t *testing.T) {
	s := fullSSLSettings()
	s.FromVariant(Variant{})

	assert.Equal(t, SSLSettings{}, s)
}

func TestSSLSettings_FromVariantLooseValues(t *testing.T) {
	s := SSLSettingsFromVariant(Variant{
		"enabled":               "true",
		"caFile":                "/no/such.pem",
		"allowInvalidHostnames": 1,
		"pemKeyEncrypted":       "not a bool",
		"pemPassPhrase":         1234,
		"unknownKey":            "ignored",
	})

	assert.True(t, s.Enabled)
	assert.Equal(t, "/no/such.pem", s.CAFile)
	assert.True(t, s.AllowInvalidHostnames)
	assert.False(t, s.PEMKeyEncrypted)
	assert.Equal(t, "1234", s.PEMPassPhrase)
	assert.Empty(t, s.CRLFile)
}

func TestSSLSettings_CloneIsIndependent(t *testing.T) {
	orig := fullSSLSettings()
	clone := orig.Clone()
	require.Equal(t, orig, *clone)

	clone.Enabled = false
	clone.CAFile = "/other/ca.pem"
	clone.AllowInvalidHostnames = false

	assert.True(t, orig.Enabled)
	assert.Equal(t, "/etc/ssl/ca.pem", orig.CAFile)
	assert.True(t, orig.AllowInvalidHostnames)
}

func TestSSLSettings_CheckFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "ca.pem")
	require.NoError(t, os.WriteFile(existing, []byte("pem"), 0644))
	missing := filepath.Join(dir, "missing.pem")

	tests := []struct {
		name      string
		settings  SSLSettings
		wantOK    bool
		wantLabel string
	}{
		{"no files", SSLSettings{Enabled: true}, true, ""},
		{"all exist", SSLSettings{CAFile: existing, PEMKeyFile: existing, CRLFile: existing}, true, ""},
		{"missing CA", SSLSettings{Enabled: true, CAFile: "/no/such.pem"}, false, "CA"},
		{"missing PEM", SSLSettings{CAFile: existing, PEMKeyFile: missing}, false, "Client Certificate"},
		{"missing CRL", SSLSettings{CRLFile: missing}, false, "CRL (Revocation List)"},
		{"directory is not a file", SSLSettings{CAFile: dir}, false, "CA"},
		{"first failure wins", SSLSettings{CAFile: missing, CRLFile: missing}, false, "CA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, label := tt.settings.CheckFiles()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestSSLSettings_Summary(t *testing.T) {
	tests := []struct {
		name     string
		settings SSLSettings
		expected string
	}{
		{"disabled", SSLSettings{}, "plain"},
		{"CA-signed", SSLSettings{Enabled: true, CAFile: "/ca.pem"}, "SSL"},
		{"self-signed", SSLSettings{Enabled: true, AllowInvalidCertificates: true}, "SSL, self-signed"},
		{"client certificate", SSLSettings{Enabled: true, CAFile: "/ca.pem", PEMKeyFile: "/client.pem"}, "SSL, client certificate"},
		{"disabled ignores leftovers", SSLSettings{AllowInvalidCertificates: true}, "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.Summary())
		})
	}
}
