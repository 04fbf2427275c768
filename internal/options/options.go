// Package options defines the resolved, immutable settings of a single run.
package options

import (
	"errors"
	"fmt"
)

// Mode selects the update strategy applied to every document.
type Mode string

const (
	// ModeTag replaces the text (or a named attribute) of leaf elements matched by name.
	ModeTag Mode = "tag"

	// ModePackage replaces the Version attribute of a PackageReference matched by Include.
	ModePackage Mode = "package"
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// IsValid returns true if the mode is a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeTag, ModePackage:
		return true
	default:
		return false
	}
}

// ParseMode converts s to a Mode. An empty string yields ModeTag.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeTag, nil
	}
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid mode %q (expected %q or %q)", s, ModeTag, ModePackage)
	}
	return m, nil
}

// Options is the configuration resolved once per run and passed by value
// to every stage that needs it.
type Options struct {
	// Mode is the update strategy.
	Mode Mode

	// Path is the project file or the directory to scan.
	Path string

	// Tag is the element name in tag mode, or the package name in package mode.
	Tag string

	// SubTag is the attribute name updated on matched elements in tag mode.
	// Empty means the element text is replaced.
	SubTag string

	// Value is the replacement text, attribute value or version.
	Value string
}

// Validate reports every problem with the options at once.
func (o Options) Validate() error {
	var errs []error
	if o.Path == "" {
		errs = append(errs, errors.New("file or folder path is required"))
	}
	if !o.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("invalid mode %q", o.Mode))
	}
	return errors.Join(errs...)
}

// HasSubTag reports whether attribute replacement was requested.
func (o Options) HasSubTag() bool {
	return o.SubTag != ""
}
