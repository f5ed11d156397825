package auth

import (
	"regexp"
	"strings"
)

// Registration screening: cheap heuristics that turn away the bulk of bot
// sign-ups before any database work happens.

type registrationInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	// Honeypot fields. The form never renders them; a filled value means a
	// bot submitted the payload.
	Website string `json:"website"`
	URL     string `json:"url"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

var disposableDomains = map[string]bool{
	"10minutemail.com":   true,
	"tempmail.org":       true,
	"guerrillamail.com":  true,
	"mailinator.com":     true,
	"throwaway.email":    true,
	"temp-mail.org":      true,
	"getnada.com":        true,
	"maildrop.cc":        true,
	"yopmail.com":        true,
	"sharklasers.com":    true,
	"grr.la":             true,
	"guerrillamail.info": true,
	"guerrillamail.net":  true,
}

var suspiciousEmailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)test\d+@`),
	regexp.MustCompile(`(?i)user\d+@`),
	regexp.MustCompile(`(?i)admin\d+@`),
	regexp.MustCompile(`(?i)\+.*\+.*@`),
	regexp.MustCompile(`(?i)^[a-z]{1,3}\d{3,}@`),
}

// repeatedRunBeforeAt reports whether five or more identical consecutive
// characters (case-insensitive) immediately precede an '@'. Go's RE2 engine
// has no backreferences, so the `(?i)(.)\1{4,}@` pattern is written out here.
func repeatedRunBeforeAt(s string) bool {
	runes := []rune(strings.ToLower(s))
	for i, r := range runes {
		if r != '@' || i < 5 {
			continue
		}
		run := 1
		for j := i - 2; j >= 0 && runes[j] == runes[i-1]; j-- {
			run++
		}
		if run >= 5 {
			return true
		}
	}
	return false
}

var suspiciousNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`(?i)test|demo|sample`),
	regexp.MustCompile(`^.$`),
	regexp.MustCompile(`(?i)^(admin|root|user)$`),
}

var botUserAgents = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bot`),
	regexp.MustCompile(`(?i)crawler`),
	regexp.MustCompile(`(?i)spider`),
	regexp.MustCompile(`(?i)scraper`),
	regexp.MustCompile(`(?i)curl`),
	regexp.MustCompile(`(?i)wget`),
	regexp.MustCompile(`(?i)python`),
	regexp.MustCompile(`(?i)java`),
}

var emailFormat = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRegistration returns the screening failures for a registration
// attempt. An empty slice means it passed.
func ValidateRegistration(input registrationInput, userAgent string) []string {
	var errs []string

	if input.Website != "" || input.URL != "" || input.Phone != "" || input.Company != "" {
		errs = append(errs, "Invalid request")
	}

	if !emailFormat.MatchString(input.Email) {
		errs = append(errs, "Invalid email format")
	} else {
		domain := strings.ToLower(input.Email[strings.LastIndex(input.Email, "@")+1:])
		if disposableDomains[domain] {
			errs = append(errs, "Disposable email addresses are not allowed")
		}
		if repeatedRunBeforeAt(input.Email) {
			errs = append(errs, "Please provide a valid email address")
		} else {
			for _, p := range suspiciousEmailPatterns {
				if p.MatchString(input.Email) {
					errs = append(errs, "Please provide a valid email address")
					break
				}
			}
		}
	}

	for _, p := range suspiciousNamePatterns {
		if p.MatchString(input.Name) {
			errs = append(errs, "Please provide a valid name")
			break
		}
	}

	if len(userAgent) < 10 {
		errs = append(errs, "Invalid request")
	} else {
		for _, p := range botUserAgents {
			if p.MatchString(userAgent) {
				errs = append(errs, "Invalid request")
				break
			}
		}
	}

	return errs
}
