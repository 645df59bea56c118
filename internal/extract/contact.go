// Package extract recovers best-effort contact information from raw document
// text using ordered pattern tiers over progressively larger text windows.
package extract

import (
	"regexp"
	"strings"
)

const (
	headerLines  = 10
	contactLines = 20

	minNameLength = 2
	maxNameLength = 50

	minPhoneDigits = 10
	maxPhoneDigits = 15

	// Bare 10-digit numbers are assumed to be local and get this prefix.
	defaultCountryCode = "+91"
)

// Name patterns, tried in order. Each targets a different resume layout:
// a capitalized run at the very start, the same run with trailing
// credentials, a run alone on its own line, and a run following a literal
// "resume"/"curriculum vitae"/"cv" header token.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})`),
	regexp.MustCompile(`^\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})(?:\s*,\s*[A-Za-z\s.]+)?`),
	regexp.MustCompile(`(?:^|\n)([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})(?:\n|$)`),
	regexp.MustCompile(`(?i)(?:curriculum vitae|resume|cv)[\s:]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})`),
}

var nameCharset = regexp.MustCompile(`^[A-Za-z\s]+$`)

// Email patterns, tried in order: a dotted-atom RFC-style pattern, a simple
// catch-all, a subdomain-aware variant, and a label-prefixed form.
var emailPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?i)[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?"),
	regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
	regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\.[A-Za-z]{2,}`),
	regexp.MustCompile(`(?i)(?:Email|E-mail|E):?\s*([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`),
}

// Phone patterns, tried in order: optional country code plus ten digits,
// international format with a parenthesized area code, bare Indian mobile
// numbers, and dash/dot separated 3-3-4 groups.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\d{10}`),
	regexp.MustCompile(`\+\d{1,3}\s*\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`[6789]\d{9}`),
	regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
}

var (
	phoneLabel       = regexp.MustCompile(`(?i)(?:Phone Number|Telephone|Contact|Mobile|Phone|Cell|Tel|Ph):?\s*([+\d\s()\-.]{10,})`)
	phoneStrip       = regexp.MustCompile(`[^\d+]`)
	phoneDigits      = regexp.MustCompile(`\D`)
	phoneCountryCode = regexp.MustCompile(`^\+\d{1,3}`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

var phoneLabelWords = []string{"mobile", "phone", "cell", "tel"}

// Contact holds the heuristically extracted contact fields. Fields that could
// not be recovered or failed validation are empty strings.
type Contact struct {
	Email string
	Phone string
}

// sections are the progressively larger text windows searched in order:
// header and contact are line slices of the newline-normalized text, full is
// the whole text with whitespace runs collapsed.
type sections struct {
	header  string
	contact string
	full    string
}

func splitSections(text string) sections {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	return sections{
		header:  strings.Join(lines[:min(headerLines, len(lines))], "\n"),
		contact: strings.Join(lines[:min(contactLines, len(lines))], "\n"),
		full:    strings.TrimSpace(whitespaceRun.ReplaceAllString(normalized, " ")),
	}
}

// Name extracts a candidate name from the document text. The header window is
// searched first with every pattern; the full text is the fallback. An empty
// string means nothing validated.
func Name(text string) string {
	s := splitSections(text)

	for _, window := range []string{s.header, s.full} {
		for _, pattern := range namePatterns {
			match := pattern.FindStringSubmatch(window)
			if match == nil {
				continue
			}
			name := strings.TrimSpace(match[1])
			if validName(name) {
				return name
			}
		}
	}

	return ""
}

func validName(name string) bool {
	return len(name) > minNameLength && len(name) < maxNameLength && nameCharset.MatchString(name)
}

// ContactInfo extracts and validates the email address and phone number.
func ContactInfo(text string) Contact {
	s := splitSections(text)

	return Contact{
		Email: firstValidEmail(collectEmails(s)),
		Phone: firstPhone(collectPhones(s)),
	}
}

// collectEmails gathers raw matches per pattern. The wider windows are only
// consulted while the accumulated list is still empty.
func collectEmails(s sections) []string {
	var emails []string
	for _, pattern := range emailPatterns {
		emails = append(emails, emailMatches(pattern, s.header)...)
		if len(emails) == 0 {
			emails = append(emails, emailMatches(pattern, s.contact)...)
		}
		if len(emails) == 0 {
			emails = append(emails, emailMatches(pattern, s.full)...)
		}
	}
	return emails
}

func emailMatches(pattern *regexp.Regexp, window string) []string {
	var out []string
	for _, match := range pattern.FindAllStringSubmatch(window, -1) {
		// Label-prefixed patterns capture the address itself.
		if len(match) > 1 && match[1] != "" {
			out = append(out, match[1])
			continue
		}
		out = append(out, match[0])
	}
	return out
}

func firstValidEmail(candidates []string) string {
	seen := make(map[string]struct{})
	for _, candidate := range candidates {
		email := strings.ToLower(strings.TrimSpace(candidate))
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}

		if validEmail(email) {
			return email
		}
	}
	return ""
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 0 {
		return false
	}
	domain := email[at+1:]

	return strings.Contains(email, ".") &&
		len(email) >= 5 &&
		!strings.Contains(email, "..") &&
		!strings.HasPrefix(email, ".") &&
		!strings.HasSuffix(email, ".") &&
		!strings.Contains(email, "@.") &&
		!strings.Contains(email, ".@") &&
		strings.Contains(domain, ".") &&
		!strings.ContainsAny(email, " \t\n\r")
}

// collectPhones gathers validated, normalized numbers. Unlike emails, every
// pattern falls through header, contact, and full independently, and results
// accumulate across patterns.
func collectPhones(s sections) []string {
	var phones []string
	for _, pattern := range phonePatterns {
		matches := pattern.FindAllString(s.header, -1)
		if len(matches) == 0 {
			matches = pattern.FindAllString(s.contact, -1)
		}
		if len(matches) == 0 {
			matches = pattern.FindAllString(s.full, -1)
		}

		for _, match := range matches {
			candidate := match
			if label := phoneLabel.FindStringSubmatch(match); label != nil {
				candidate = label[1]
			}
			if phone := NormalizePhone(candidate); phone != "" {
				phones = append(phones, phone)
			}
		}
	}
	return phones
}

func firstPhone(phones []string) string {
	seen := make(map[string]struct{})
	for _, phone := range phones {
		if _, ok := seen[phone]; ok {
			continue
		}
		seen[phone] = struct{}{}
		return phone
	}
	return ""
}

// NormalizePhone validates a raw phone candidate and returns it in a
// consistent +<country code><number> form, or an empty string when the
// candidate is rejected. Strings carrying label words are refused outright so
// surrounding text is never mistaken for a number.
func NormalizePhone(raw string) string {
	lowered := strings.ToLower(raw)
	for _, word := range phoneLabelWords {
		if strings.Contains(lowered, word) {
			return ""
		}
	}

	cleaned := phoneStrip.ReplaceAllString(raw, "")
	digits := phoneDigits.ReplaceAllString(cleaned, "")
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return ""
	}

	if !validPhone(cleaned) {
		return ""
	}

	switch {
	case len(digits) == minPhoneDigits:
		return defaultCountryCode + digits
	case len(digits) > minPhoneDigits && len(digits) <= maxPhoneDigits:
		if strings.HasPrefix(cleaned, "+") {
			return cleaned
		}
		return "+" + digits
	default:
		return ""
	}
}

func validPhone(cleaned string) bool {
	if cleaned == "" {
		return false
	}
	if cleaned[0] != '+' && (cleaned[0] < '0' || cleaned[0] > '9') {
		return false
	}
	if strings.Count(cleaned, "+") > 1 {
		return false
	}
	if strings.HasPrefix(cleaned, "+") && !phoneCountryCode.MatchString(cleaned) {
		return false
	}
	return true
}
