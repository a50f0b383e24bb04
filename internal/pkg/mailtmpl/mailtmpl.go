// Package mailtmpl renders the transactional email bodies. Templates are
// plain HTML with literal placeholders filled by string substitution, so
// the files can be edited by non-developers without breaking rendering.
package mailtmpl

import (
	"embed"
	"strconv"
	"strings"
	"time"
)

//go:embed templates/*.html
var templates embed.FS

// Branding carries the values substituted into every template.
type Branding struct {
	Name    string
	Primary string // CSS color used for buttons and accents
}

// Renderer fills email templates with branding and per-message variables.
type Renderer struct {
	branding     Branding
	confirmation string
	welcome      string
	reset        string
}

// New loads the embedded templates. It panics only on a build defect
// (template file missing from the binary).
func New(b Branding) *Renderer {
	return &Renderer{
		branding:     b,
		confirmation: mustRead("templates/confirmation.html"),
		welcome:      mustRead("templates/welcome.html"),
		reset:        mustRead("templates/reset.html"),
	}
}

// Confirmation renders the email-confirmation body with the given link.
func (r *Renderer) Confirmation(email, confirmURL string) string {
	html := strings.ReplaceAll(r.confirmation, "{{CONFIRM_URL}}", confirmURL)
	return r.fill(html, email)
}

// Welcome renders the post-confirmation welcome body.
func (r *Renderer) Welcome(email string) string {
	return r.fill(r.welcome, email)
}

// Reset renders the password-reset body with the one-time code.
func (r *Renderer) Reset(email, otp string) string {
	html := strings.ReplaceAll(r.reset, "{{OTP}}", otp)
	return r.fill(html, email)
}

func (r *Renderer) fill(html, email string) string {
	rep := strings.NewReplacer(
		"{{BRAND_NAME}}", r.branding.Name,
		"VAR_PRIMARY", r.branding.Primary,
		"{{EMAIL}}", email,
		"{{YEAR}}", strconv.Itoa(time.Now().Year()),
	)
	return rep.Replace(html)
}

func mustRead(name string) string {
	b, err := templates.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}
