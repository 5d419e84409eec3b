// Package content supplies the static display strings of the contact
// section: heading, labels, notices and the fallback contact address.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultContent []byte

// Content is read once at construction and never mutated by the section.
type Content struct {
	Heading         string  `yaml:"heading" json:"heading"`
	FriendlyMessage string  `yaml:"friendlyMessage" json:"friendlyMessage"`
	Form            Form    `yaml:"form" json:"form"`
	Notices         Notices `yaml:"notices" json:"notices"`
	Footer          Footer  `yaml:"footer" json:"footer"`
}

// Form holds field and control labels.
type Form struct {
	NameLabel      string `yaml:"nameLabel" json:"nameLabel"`
	EmailLabel     string `yaml:"emailLabel" json:"emailLabel"`
	MessageLabel   string `yaml:"messageLabel" json:"messageLabel"`
	SubmitText     string `yaml:"submitText" json:"submitText"`
	SubmittingText string `yaml:"submittingText" json:"submittingText"`
}

// Notices holds the status messages shown after a submission.
type Notices struct {
	Success string `yaml:"success" json:"success"`
	Failure string `yaml:"failure" json:"failure"`
	// FailureFallback completes Failure when no contact e-mail is configured.
	FailureFallback string `yaml:"failureFallback" json:"failureFallback"`
}

// Footer carries the human contact channel offered on failure.
type Footer struct {
	Email   string `yaml:"email" json:"email"`
	Signoff string `yaml:"signoff" json:"signoff"`
}

// Default returns the embedded content.
func Default() Content {
	out, err := Parse(bytes.NewReader(defaultContent))
	if err != nil {
		panic(fmt.Sprintf("content: embedded default is invalid: %v", err))
	}
	return out
}

// Load reads a YAML (or JSON) content file, filling blanks from Default.
func Load(path string) (Content, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Content{}, fmt.Errorf("content: open %q: %w", path, err)
	}
	defer f.Close()

	parsed, err := Parse(f)
	if err != nil {
		return Content{}, fmt.Errorf("content: %q: %w", path, err)
	}
	return parsed.WithDefaults(Default()), nil
}

// Parse decodes content from r without applying defaults.
func Parse(r io.Reader) (Content, error) {
	var out Content
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		if err == io.EOF {
			return Content{}, nil
		}
		return Content{}, fmt.Errorf("decode: %w", err)
	}
	return out.normalized(), nil
}

// WithDefaults fills empty strings from fallback.
func (c Content) WithDefaults(fallback Content) Content {
	pick := func(value, def string) string {
		if value == "" {
			return def
		}
		return value
	}
	c.Heading = pick(c.Heading, fallback.Heading)
	c.FriendlyMessage = pick(c.FriendlyMessage, fallback.FriendlyMessage)
	c.Form.NameLabel = pick(c.Form.NameLabel, fallback.Form.NameLabel)
	c.Form.EmailLabel = pick(c.Form.EmailLabel, fallback.Form.EmailLabel)
	c.Form.MessageLabel = pick(c.Form.MessageLabel, fallback.Form.MessageLabel)
	c.Form.SubmitText = pick(c.Form.SubmitText, fallback.Form.SubmitText)
	c.Form.SubmittingText = pick(c.Form.SubmittingText, fallback.Form.SubmittingText)
	c.Notices.Success = pick(c.Notices.Success, fallback.Notices.Success)
	c.Notices.Failure = pick(c.Notices.Failure, fallback.Notices.Failure)
	c.Notices.FailureFallback = pick(c.Notices.FailureFallback, fallback.Notices.FailureFallback)
	c.Footer.Email = pick(c.Footer.Email, fallback.Footer.Email)
	c.Footer.Signoff = pick(c.Footer.Signoff, fallback.Footer.Signoff)
	return c
}

func (c Content) normalized() Content {
	c.Heading = strings.TrimSpace(c.Heading)
	c.FriendlyMessage = strings.TrimSpace(c.FriendlyMessage)
	c.Footer.Email = strings.TrimSpace(c.Footer.Email)
	return c
}
