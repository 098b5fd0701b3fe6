package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled(t *testing.T) {
	disabled := NewMailer(&MailerConfig{})
	assert.False(t, disabled.Enabled())

	enabled := NewMailer(&MailerConfig{APIKey: "xkeysib-test"})
	assert.True(t, enabled.Enabled())
}

func TestWelcomeHTMLCarriesCredentials(t *testing.T) {
	html := welcomeHTML("jdupont", "abc123def456")

	assert.Contains(t, html, "jdupont")
	assert.Contains(t, html, "abc123def456")
	assert.Contains(t, html, "Bienvenue")
}
