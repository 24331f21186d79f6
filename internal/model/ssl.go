package model

import (
	"os"
	"path/filepath"

	"github.com/shhac/cavern/internal/domain"
	apperrors "github.com/shhac/cavern/internal/errors"
)

// AuthMethod selects how the server certificate is trusted.
type AuthMethod int

const (
	AuthSelfSigned AuthMethod = iota // accept any server certificate
	AuthCASigned                     // verify against a CA file
)

// AuthMethodLabels are the choices offered for AuthMethod, indexed by value.
var AuthMethodLabels = []string{"Self-signed Certificate", "CA-signed Certificate"}

// String returns the user-facing label of the method.
func (m AuthMethod) String() string {
	if int(m) >= 0 && int(m) < len(AuthMethodLabels) {
		return AuthMethodLabels[m]
	}
	return "Unknown"
}

// SSLSection identifies a group of widgets on the SSL tab.
type SSLSection int

const (
	SectionAuthMethod     SSLSection = iota // auth method selector
	SectionSelfSignedInfo                   // warning shown for self-signed certificates
	SectionCAFile                           // CA file path and browse button
	SectionPEMToggle                        // "Use PEM Certificate/Key" check
	SectionPEMInfo                          // hint shown while no PEM file is used
	SectionPEMFile                          // PEM path and browse button
	SectionPEMPassphrase                    // passphrase entry and encrypted check
	SectionAdvancedToggle                   // "Use Advanced Options" check
	SectionAdvanced                         // CRL file and invalid hostname selector
)

// Minimum heights of the SSL tab for the visible sections
const (
	MinHeightBase     float32 = 300
	MinHeightPEM      float32 = 400
	MinHeightAdvanced float32 = 460
)

// SSLForm is the toolkit-independent state of the SSL tab. It is initialised
// from SSLSettings, edited by the widgets and written back on accept.
type SSLForm struct {
	UseSSL                bool
	AuthMethod            AuthMethod
	CAFile                string
	UsePEMFile            bool
	PEMKeyFile            string
	PEMPassPhrase         string
	PEMKeyEncrypted       bool
	UseAdvanced           bool
	CRLFile               string
	AllowInvalidHostnames bool
}

// NewSSLForm returns a form reflecting s. Optional sections start open when
// the settings already use them.
func NewSSLForm(s *domain.SSLSettings) *SSLForm {
	f := &SSLForm{
		UseSSL:                s.Enabled,
		AuthMethod:            AuthCASigned,
		CAFile:                s.CAFile,
		UsePEMFile:            s.PEMKeyFile != "",
		PEMKeyFile:            s.PEMKeyFile,
		PEMPassPhrase:         s.PEMPassPhrase,
		PEMKeyEncrypted:       s.PEMKeyEncrypted,
		UseAdvanced:           s.CRLFile != "" || s.AllowInvalidHostnames,
		CRLFile:               s.CRLFile,
		AllowInvalidHostnames: s.AllowInvalidHostnames,
	}
	if s.AllowInvalidCertificates {
		f.AuthMethod = AuthSelfSigned
	}
	return f
}

// IsVisible reports whether the widgets of section are shown.
func (f *SSLForm) IsVisible(section SSLSection) bool {
	switch section {
	case SectionSelfSignedInfo:
		return f.AuthMethod == AuthSelfSigned
	case SectionCAFile:
		return f.AuthMethod == AuthCASigned
	case SectionPEMInfo:
		return !f.UsePEMFile
	case SectionPEMFile, SectionPEMPassphrase:
		return f.UsePEMFile
	case SectionAdvanced:
		return f.UseAdvanced
	default:
		return true
	}
}

// IsEnabled reports whether the widgets of section accept input. Everything
// is disabled while SSL is off; the passphrase entry additionally needs the
// key to be marked as encrypted.
func (f *SSLForm) IsEnabled(section SSLSection) bool {
	if !f.UseSSL {
		return false
	}
	if section == SectionPEMPassphrase {
		return f.PEMKeyEncrypted
	}
	return true
}

// active reports whether a section is both shown and enabled.
func (f *SSLForm) active(section SSLSection) bool {
	return f.IsVisible(section) && f.IsEnabled(section)
}

// MinHeight returns the minimum tab height for the currently open sections.
func (f *SSLForm) MinHeight() float32 {
	switch {
	case f.UseAdvanced:
		return MinHeightAdvanced
	case f.UsePEMFile:
		return MinHeightPEM
	default:
		return MinHeightBase
	}
}

// CheckFiles verifies the referenced files. The CA file is required while
// SSL is on and CA-signed certificates are selected; the PEM and CRL files
// are checked whenever filled in. It returns false and the label of the first
// missing file.
func (f *SSLForm) CheckFiles() (bool, string) {
	if f.active(SectionCAFile) && !domain.FileExists(f.CAFile) {
		return false, domain.LabelCAFile
	}
	if f.PEMKeyFile != "" && !domain.FileExists(f.PEMKeyFile) {
		return false, domain.LabelPEMFile
	}
	if f.CRLFile != "" && !domain.FileExists(f.CRLFile) {
		return false, domain.LabelCRLFile
	}
	return true, ""
}

// Validate returns a *apperrors.MissingFileError for the first missing file.
func (f *SSLForm) Validate() error {
	ok, label := f.CheckFiles()
	if ok {
		return nil
	}
	path := ""
	switch label {
	case domain.LabelCAFile:
		path = f.CAFile
	case domain.LabelPEMFile:
		path = f.PEMKeyFile
	case domain.LabelCRLFile:
		path = f.CRLFile
	}
	return &apperrors.MissingFileError{Label: label, Path: path}
}

// Save copies every form field into s. Leniency for server certificates
// follows the auth method.
func (f *SSLForm) Save(s *domain.SSLSettings) {
	s.Enabled = f.UseSSL
	s.AllowInvalidCertificates = f.AuthMethod == AuthSelfSigned
	s.CAFile = f.CAFile
	s.PEMKeyFile = f.PEMKeyFile
	s.PEMPassPhrase = f.PEMPassPhrase
	s.PEMKeyEncrypted = f.PEMKeyEncrypted
	s.CRLFile = f.CRLFile
	s.AllowInvalidHostnames = f.AllowInvalidHostnames
}

// Accept saves the form into s and then validates it. s is updated even when
// validation fails; callers keep the dialog open on error.
func (f *SSLForm) Accept(s *domain.SSLSettings) error {
	f.Save(s)
	return f.Validate()
}

// BrowseStart returns the directory a file picker should open in: the
// directory of path when set, otherwise the user's home directory.
func BrowseStart(path string) string {
	if path != "" {
		dir := filepath.Dir(path)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
