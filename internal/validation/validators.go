package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/novaos-app/novaos-api/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// blockedEmailPrefixes are local-part prefixes that indicate throwaway or
// placeholder addresses.
var blockedEmailPrefixes = []string{"test", "fake", "demo", "temp"}

// disposableEmailDomains are known disposable mail providers.
var disposableEmailDomains = map[string]bool{
	"mailinator.com":    true,
	"10minutemail.com":  true,
	"tempmail.com":      true,
	"guerrillamail.com": true,
}

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation, but log if they do
	if err := Validate.RegisterValidation("habit_frequency", validateHabitFrequency); err != nil {
		panic(fmt.Sprintf("failed to register habit_frequency validator: %v", err))
	}
}

// validateHabitFrequency validates that a string is a valid HabitFrequency enum value
func validateHabitFrequency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.HabitFrequency(value) {
	case models.HabitFrequencyDaily, models.HabitFrequencyWeekly:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateHabitFrequency validates a HabitFrequency string value
func ValidateHabitFrequency(value string) error {
	switch models.HabitFrequency(value) {
	case models.HabitFrequencyDaily, models.HabitFrequencyWeekly:
		return nil
	default:
		return fmt.Errorf("invalid frequency: %s (must be 'daily' or 'weekly')", value)
	}
}

// ValidateEmail rejects malformed, placeholder, and disposable addresses.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}

	at := strings.LastIndex(email, "@")
	local := email[:at]
	domain := email[at+1:]

	for _, prefix := range blockedEmailPrefixes {
		if strings.HasPrefix(local, prefix) {
			return fmt.Errorf("email local part %q looks like a placeholder address", local)
		}
	}

	if disposableEmailDomains[domain] {
		return fmt.Errorf("email domain %q is a disposable mail provider", domain)
	}

	return nil
}

// ValidateFeedbackMessage rejects messages too short or without any vowel,
// which filters out keyboard-mash submissions.
func ValidateFeedbackMessage(message string) error {
	message = strings.TrimSpace(message)
	if len([]rune(message)) < 2 {
		return fmt.Errorf("message must be at least 2 characters")
	}
	if !strings.ContainsAny(strings.ToLower(message), "aeiou") {
		return fmt.Errorf("message must contain readable text")
	}
	return nil
}
