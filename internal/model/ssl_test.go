package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cavern/internal/domain"
	apperrors "github.com/shhac/cavern/internal/errors"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("-----BEGIN CERTIFICATE-----"), 0644))
	return path
}

func TestNewSSLForm_Defaults(t *testing.T) {
	f := NewSSLForm(&domain.SSLSettings{})

	assert.False(t, f.UseSSL)
	assert.Equal(t, AuthCASigned, f.AuthMethod)
	assert.False(t, f.UsePEMFile)
	assert.False(t, f.UseAdvanced)
	assert.Equal(t, MinHeightBase, f.MinHeight())
}

func TestNewSSLForm_FromSettings(t *testing.T) {
	f := NewSSLForm(&domain.SSLSettings{
		Enabled:                  true,
		PEMKeyFile:               "/client.pem",
		PEMKeyEncrypted:          true,
		PEMPassPhrase:            "pw",
		AllowInvalidHostnames:    true,
		AllowInvalidCertificates: true,
	})

	assert.True(t, f.UseSSL)
	assert.Equal(t, AuthSelfSigned, f.AuthMethod)
	assert.True(t, f.UsePEMFile)
	assert.True(t, f.UseAdvanced, "invalid hostnames should open the advanced section")
	assert.Equal(t, "pw", f.PEMPassPhrase)
}

func TestSSLForm_Visibility(t *testing.T) {
	f := NewSSLForm(&domain.SSLSettings{Enabled: true})

	f.AuthMethod = AuthSelfSigned
	assert.True(t, f.IsVisible(SectionSelfSignedInfo))
	assert.False(t, f.IsVisible(SectionCAFile))

	f.AuthMethod = AuthCASigned
	assert.False(t, f.IsVisible(SectionSelfSignedInfo))
	assert.True(t, f.IsVisible(SectionCAFile))

	assert.True(t, f.IsVisible(SectionPEMInfo))
	assert.False(t, f.IsVisible(SectionPEMFile))
	assert.False(t, f.IsVisible(SectionPEMPassphrase))
	f.UsePEMFile = true
	assert.False(t, f.IsVisible(SectionPEMInfo))
	assert.True(t, f.IsVisible(SectionPEMFile))
	assert.True(t, f.IsVisible(SectionPEMPassphrase))

	assert.False(t, f.IsVisible(SectionAdvanced))
	f.UseAdvanced = true
	assert.True(t, f.IsVisible(SectionAdvanced))

	assert.True(t, f.IsVisible(SectionPEMToggle))
	assert.True(t, f.IsVisible(SectionAdvancedToggle))
	assert.True(t, f.IsVisible(SectionAuthMethod))
}

func TestSSLForm_Enablement(t *testing.T) {
	f := NewSSLForm(&domain.SSLSettings{})
	for _, s := range []SSLSection{SectionAuthMethod, SectionCAFile, SectionPEMToggle, SectionPEMFile, SectionAdvanced} {
		assert.False(t, f.IsEnabled(s), "section %d should be disabled without SSL", s)
	}

	f.UseSSL = true
	assert.True(t, f.IsEnabled(SectionCAFile))
	assert.False(t, f.IsEnabled(SectionPEMPassphrase))

	f.PEMKeyEncrypted = true
	assert.True(t, f.IsEnabled(SectionPEMPassphrase))
}

func TestSSLForm_MinHeight(t *testing.T) {
	tests := []struct {
		name        string
		pem         bool
		advanced    bool
		wantMinimum float32
	}{
		{"base", false, false, 300},
		{"pem", true, false, 400},
		{"advanced", false, true, 460},
		{"both", true, true, 460},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &SSLForm{UsePEMFile: tt.pem, UseAdvanced: tt.advanced}
			assert.Equal(t, tt.wantMinimum, f.MinHeight())
		})
	}
}

func TestSSLForm_CheckFiles(t *testing.T) {
	dir := t.TempDir()
	ca := touch(t, dir, "ca.pem")
	pem := touch(t, dir, "client.pem")
	crl := touch(t, dir, "revoked.crl")
	missing := filepath.Join(dir, "missing")

	tests := []struct {
		name      string
		form      SSLForm
		wantOK    bool
		wantLabel string
	}{
		{"ssl disabled skips checks", SSLForm{AuthMethod: AuthCASigned, CAFile: missing}, true, ""},
		{"self-signed ignores CA", SSLForm{UseSSL: true, AuthMethod: AuthSelfSigned, CAFile: missing}, true, ""},
		{"CA-signed with CA", SSLForm{UseSSL: true, AuthMethod: AuthCASigned, CAFile: ca}, true, ""},
		{"CA-signed missing CA", SSLForm{UseSSL: true, AuthMethod: AuthCASigned, CAFile: "/no/such.pem"}, false, "CA"},
		{"CA-signed empty CA", SSLForm{UseSSL: true, AuthMethod: AuthCASigned}, false, "CA"},
		{"PEM exists", SSLForm{UseSSL: true, UsePEMFile: true, PEMKeyFile: pem}, true, ""},
		{"PEM empty", SSLForm{UseSSL: true, UsePEMFile: true}, true, ""},
		{"PEM missing", SSLForm{UseSSL: true, UsePEMFile: true, PEMKeyFile: missing}, false, "Client Certificate"},
		{"PEM missing while section closed", SSLForm{UseSSL: true, PEMKeyFile: missing}, false, "Client Certificate"},
		{"PEM missing with ssl disabled", SSLForm{UsePEMFile: true, PEMKeyFile: missing}, false, "Client Certificate"},
		{"CRL exists", SSLForm{UseSSL: true, UseAdvanced: true, CRLFile: crl}, true, ""},
		{"CRL missing", SSLForm{UseSSL: true, UseAdvanced: true, CRLFile: missing}, false, "CRL (Revocation List)"},
		{"CRL missing while section closed", SSLForm{UseSSL: true, CRLFile: missing}, false, "CRL (Revocation List)"},
		{"CRL missing with ssl disabled", SSLForm{UseAdvanced: true, CRLFile: missing}, false, "CRL (Revocation List)"},
		{"CA reported before CRL", SSLForm{UseSSL: true, AuthMethod: AuthCASigned, CAFile: missing, UseAdvanced: true, CRLFile: missing}, false, "CA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, label := tt.form.CheckFiles()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestSSLForm_Validate(t *testing.T) {
	f := &SSLForm{UseSSL: true, AuthMethod: AuthCASigned, CAFile: "/no/such.pem"}

	err := f.Validate()
	var missing *apperrors.MissingFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "CA", missing.Label)
	assert.Equal(t, "/no/such.pem", missing.Path)
	assert.Equal(t, "Error: CA file does not exist", err.Error())
}

func TestSSLForm_SaveRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.SSLSettings
	}{
		{"defaults", domain.SSLSettings{}},
		{"everything set", domain.SSLSettings{
			Enabled:               true,
			CAFile:                "/ca.pem",
			PEMKeyFile:            "/client.pem",
			PEMPassPhrase:         "pw",
			PEMKeyEncrypted:       true,
			CRLFile:               "/revoked.crl",
			AllowInvalidHostnames: true,
		}},
		{"self-signed keeps CA path", domain.SSLSettings{Enabled: true, AllowInvalidCertificates: true, CAFile: "/ca.pem"}},
		{"passphrase without encrypted flag", domain.SSLSettings{PEMKeyFile: "/c.pem", PEMPassPhrase: "pw"}},
		{"passphrase without PEM file", domain.SSLSettings{PEMKeyEncrypted: true, PEMPassPhrase: "pw"}},
		{"ssl disabled keeps paths", domain.SSLSettings{CAFile: "/ca.pem", CRLFile: "/revoked.crl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := tt.settings
			var saved domain.SSLSettings
			NewSSLForm(&orig).Save(&saved)
			assert.Equal(t, tt.settings, saved)
		})
	}
}

func TestSSLForm_SaveKeepsClosedSections(t *testing.T) {
	f := &SSLForm{
		UseSSL:                true,
		AuthMethod:            AuthSelfSigned,
		CAFile:                "/ca.pem",
		PEMKeyFile:            "/client.pem",
		PEMPassPhrase:         "pw",
		CRLFile:               "/revoked.crl",
		AllowInvalidHostnames: true,
	}

	var s domain.SSLSettings
	f.Save(&s)

	assert.Equal(t, domain.SSLSettings{
		Enabled:                  true,
		AllowInvalidCertificates: true,
		CAFile:                   "/ca.pem",
		PEMKeyFile:               "/client.pem",
		PEMPassPhrase:            "pw",
		CRLFile:                  "/revoked.crl",
		AllowInvalidHostnames:    true,
	}, s)
}

func TestSSLForm_AcceptUpdatesSettingsEvenOnFailure(t *testing.T) {
	s := &domain.SSLSettings{}
	f := NewSSLForm(s)
	f.UseSSL = true
	f.CAFile = "/no/such.pem"

	err := f.Accept(s)
	assert.Error(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, "/no/such.pem", s.CAFile)
}

func TestSSLForm_AcceptSuccess(t *testing.T) {
	ca := touch(t, t.TempDir(), "ca.pem")
	s := &domain.SSLSettings{}
	f := NewSSLForm(s)
	f.UseSSL = true
	f.CAFile = ca

	require.NoError(t, f.Accept(s))
	assert.Equal(t, ca, s.CAFile)
}

func TestBrowseStart(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, BrowseStart(filepath.Join(dir, "ca.pem")))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, home, BrowseStart(""))
	assert.Equal(t, home, BrowseStart("/no/such/dir/ca.pem"))
}

func TestAuthMethod_String(t *testing.T) {
	assert.Equal(t, "Self-signed Certificate", AuthSelfSigned.String())
	assert.Equal(t, "CA-signed Certificate", AuthCASigned.String())
	assert.Equal(t, "Unknown", AuthMethod(7).String())
}
