package extract

import (
	"strings"
	"testing"
)

func TestNameAtDocumentStart(t *testing.T) {
	text := "John Michael Smith\nSoftware Engineer\n10 years of experience"

	if got := Name(text); got != "John Michael Smith" {
		t.Fatalf("expected %q, got %q", "John Michael Smith", got)
	}
}

func TestNameAfterHeaderToken(t *testing.T) {
	text := "CURRICULUM VITAE:\n\nPriya Sharma\npriya@example.com"

	if got := Name(text); got != "Priya Sharma" {
		t.Fatalf("expected %q, got %q", "Priya Sharma", got)
	}
}

func TestNameRejectsTooLongCaptures(t *testing.T) {
	// Nothing in this text is a plausible two-or-three word name.
	text := "x\n1234\n!!!"

	if got := Name(text); got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}
}

func TestNameFallsBackToFullText(t *testing.T) {
	filler := strings.Repeat("lorem ipsum filler line\n", 12)
	text := filler + "resume: Anil Kumar\n"

	if got := Name(text); got != "Anil Kumar" {
		t.Fatalf("expected %q, got %q", "Anil Kumar", got)
	}
}

func TestEmailPrefersValidCandidate(t *testing.T) {
	text := "Jane Doe\nEmail: jane@co.com\nold contact jane.doe@old\n"

	contact := ContactInfo(text)
	if contact.Email != "jane@co.com" {
		t.Fatalf("expected %q, got %q", "jane@co.com", contact.Email)
	}
}

func TestEmailDeduplicatesCaseInsensitively(t *testing.T) {
	text := "Jane.Doe@Example.com\njane.doe@example.com\n"

	contact := ContactInfo(text)
	if contact.Email != "jane.doe@example.com" {
		t.Fatalf("expected lower-cased email, got %q", contact.Email)
	}
}

func TestEmailValidationRules(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"jane@co.com", true},
		{"a@b.io", true},
		{"jane..doe@co.com", false},
		{".jane@co.com", false},
		{"jane@co.com.", false},
		{"jane@.com", false},
		{"jane.@co.com", false},
		{"jane@nodot", false},
		{"a@b.", false},
	}

	for _, tt := range tests {
		if got := validEmail(tt.email); got != tt.valid {
			t.Fatalf("%s: expected valid=%v, got %v", tt.email, tt.valid, got)
		}
	}
}

func TestEmailFoundBeyondHeaderWindow(t *testing.T) {
	filler := strings.Repeat("experience line\n", 25)
	text := filler + "reach me at someone@company.org\n"

	contact := ContactInfo(text)
	if contact.Email != "someone@company.org" {
		t.Fatalf("expected %q, got %q", "someone@company.org", contact.Email)
	}
}

func TestNormalizePhoneTenDigitsGetsCountryCode(t *testing.T) {
	tests := []string{"9876543210", "987-654-3210", "987.654.3210"}

	for _, input := range tests {
		if got := NormalizePhone(input); got != "+919876543210" {
			t.Fatalf("%s: expected +919876543210, got %q", input, got)
		}
	}
}

func TestNormalizePhoneRejectsLabelWords(t *testing.T) {
	tests := []string{
		"Phone: 9876543210",
		"MOBILE 9876543210",
		"cell-9876543210",
		"tel: +1 234 567 8900",
	}

	for _, input := range tests {
		if got := NormalizePhone(input); got != "" {
			t.Fatalf("%s: expected rejection, got %q", input, got)
		}
	}
}

func TestNormalizePhoneCountryCodeHandling(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"+91 98765 43210", "+919876543210"},
		{"+1 (234) 567-8900", "+12345678900"},
		{"12345678901", "+12345678901"},
		{"++919876543210", ""},
		{"123456789", ""},
		{"12345678901234567", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.input); got != tt.expect {
			t.Fatalf("%s: expected %q, got %q", tt.input, tt.expect, got)
		}
	}
}

func TestContactInfoFindsPhoneInHeader(t *testing.T) {
	text := "John Smith\n+91 9876543210\njohn@example.com\n"

	contact := ContactInfo(text)
	if contact.Phone != "+919876543210" {
		t.Fatalf("expected +919876543210, got %q", contact.Phone)
	}
	if contact.Email != "john@example.com" {
		t.Fatalf("expected john@example.com, got %q", contact.Email)
	}
}

func TestContactInfoEmptyWhenNothingMatches(t *testing.T) {
	contact := ContactInfo("no contact details in this text")
	if contact.Email != "" || contact.Phone != "" {
		t.Fatalf("expected empty contact, got %+v", contact)
	}
}
