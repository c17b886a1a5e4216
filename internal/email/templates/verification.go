// Package templates renders the transactional email bodies.
package templates

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed verification.html
var verificationHTML string

var verificationTmpl = template.Must(template.New("verification").Parse(verificationHTML))

// VerificationSubject is the subject line of the verification email.
const VerificationSubject = "Verify your email"

// VerificationData feeds the verification email template. Both links embed
// the same single-use token.
type VerificationData struct {
	VerifyURL string
	DeleteURL string
}

// RenderVerificationHTML renders the HTML part of the verification email.
func RenderVerificationHTML(data VerificationData) (string, error) {
	var buf strings.Builder
	err := verificationTmpl.Execute(&buf, data)
	return buf.String(), err
}

// RenderVerificationText renders the plain-text part of the verification email.
func RenderVerificationText(data VerificationData) string {
	return fmt.Sprintf(
		"Click the link to verify your email: %s\n\n"+
			"If you did not create this account, click here to delete it: %s\n",
		data.VerifyURL, data.DeleteURL)
}
