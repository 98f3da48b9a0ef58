package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"regexp"
	"unicode/utf8"
)

// MaxLoggedRunes bounds visitor text written to logs and the query log
const MaxLoggedRunes = 200

var (
	// Email pattern
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Phone patterns (US, international, 7-digit local)
	// Matches: 555-123-4567, (555) 123-4567, 555.123.4567, +1-555-123-4567, 555-1234
	phoneRegex = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}|\b\d{3}[-.\s]\d{4}\b`)

	// SSN pattern (US)
	ssnRegex = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

	// Credit card pattern (basic) - must have 4 groups
	creditCardRegex = regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`)

	// IPv4 addresses pasted into a question
	ipv4Regex = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)

	// Credentials visitors sometimes paste: bearer tokens and key=value secrets
	secretRegex = regexp.MustCompile(`(?i)\b(bearer\s+[A-Za-z0-9._~+/=-]{8,}|(api[_-]?key|token|secret|password)\s*[:=]\s*\S+)`)
)

// RedactSensitiveData removes PII from visitor text
func RedactSensitiveData(text string) string {
	text = secretRegex.ReplaceAllString(text, "[SECRET]")
	text = emailRegex.ReplaceAllString(text, "[EMAIL]")
	text = creditCardRegex.ReplaceAllString(text, "[CARD]")
	text = ssnRegex.ReplaceAllString(text, "[SSN]")
	text = ipv4Regex.ReplaceAllString(text, "[IP]")
	text = phoneRegex.ReplaceAllString(text, "[PHONE]")
	return text
}

// SanitizeForLogging prepares text for safe logging
func SanitizeForLogging(text string) string {
	redacted := RedactSensitiveData(text)

	if utf8.RuneCountInString(redacted) > MaxLoggedRunes {
		runes := []rune(redacted)
		return string(runes[:MaxLoggedRunes-3]) + "..."
	}

	return redacted
}

// ContainsPII checks if text contains potential PII
func ContainsPII(text string) bool {
	return emailRegex.MatchString(text) ||
		phoneRegex.MatchString(text) ||
		ssnRegex.MatchString(text) ||
		creditCardRegex.MatchString(text) ||
		ipv4Regex.MatchString(text) ||
		secretRegex.MatchString(text)
}

// AnonymizeIP returns a stable pseudonym for a client address so the query
// log can count repeat visitors without storing the address itself. IPv4
// addresses are truncated to their /24 and IPv6 to their /48 before hashing.
func AnonymizeIP(addr, salt string) string {
	if addr == "" {
		return ""
	}
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}

	if ip := net.ParseIP(host); ip != nil {
		if v4 := ip.To4(); v4 != nil {
			host = v4.Mask(net.CIDRMask(24, 32)).String()
		} else {
			host = ip.Mask(net.CIDRMask(48, 128)).String()
		}
	}

	return "v_" + hashString(salt + "|" + host)[:12]
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
