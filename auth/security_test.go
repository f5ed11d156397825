package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const browserUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

func valid() registrationInput {
	return registrationInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.org",
		Password: "correct-horse",
	}
}

func TestValidateRegistrationPasses(t *testing.T) {
	assert.Empty(t, ValidateRegistration(valid(), browserUA))
}

func TestHoneypotFieldsRejected(t *testing.T) {
	in := valid()
	in.Website = "http://spam.example"
	assert.NotEmpty(t, ValidateRegistration(in, browserUA))

	in = valid()
	in.Company = "Spam Inc"
	assert.NotEmpty(t, ValidateRegistration(in, browserUA))
}

func TestDisposableEmailRejected(t *testing.T) {
	in := valid()
	in.Email = "ada@mailinator.com"
	errs := ValidateRegistration(in, browserUA)
	assert.Contains(t, errs, "Disposable email addresses are not allowed")
}

func TestSuspiciousEmailRejected(t *testing.T) {
	for _, email := range []string{"test123@example.org", "user99@example.org", "ab1234@example.org"} {
		in := valid()
		in.Email = email
		assert.NotEmpty(t, ValidateRegistration(in, browserUA), email)
	}
}

func TestSuspiciousNameRejected(t *testing.T) {
	for _, name := range []string{"12345", "test", "x", "admin"} {
		in := valid()
		in.Name = name
		assert.NotEmpty(t, ValidateRegistration(in, browserUA), name)
	}
}

func TestBotUserAgentsRejected(t *testing.T) {
	for _, ua := range []string{"curl/8.0.1", "python-requests/2.31", "Googlebot/2.1 (+http://www.google.com/bot.html)", ""} {
		assert.NotEmpty(t, ValidateRegistration(valid(), ua), "ua=%q", ua)
	}
}

func TestEmailFormat(t *testing.T) {
	in := valid()
	in.Email = "not-an-email"
	errs := ValidateRegistration(in, browserUA)
	assert.Contains(t, errs, "Invalid email format")
}
