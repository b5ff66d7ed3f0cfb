package identity

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is the region assumed for phone numbers written without a country code.
const DefaultRegion = "IN"

// NormalizeEmail lowercases and trims an email. Blank input yields "".
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalizer turns free-form phone numbers into comparable keys.
type Normalizer struct {
	region string
}

// NewNormalizer creates a normalizer that resolves national numbers against region.
// An empty region disables country-code resolution.
func NewNormalizer(region string) Normalizer {
	return Normalizer{region: strings.ToUpper(strings.TrimSpace(region))}
}

// Phone keys a free-form number by its E.164 form, with ";ext=" and the
// extension appended when one is written. Numbers that do not parse, or are too
// short or long to be possible in their region, key on their characters with
// whitespace, parentheses, hyphens and a leading "+" removed. Blank input yields "".
func (n Normalizer) Phone(phone string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '-' {
			return -1
		}
		return r
	}, phone)
	stripped = strings.TrimLeft(stripped, "+")
	if stripped == "" {
		return ""
	}

	num, err := phonenumbers.Parse(strings.TrimSpace(phone), n.region)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return stripped
	}
	key := phonenumbers.Format(num, phonenumbers.E164)
	if ext := num.GetExtension(); ext != "" {
		key += ";ext=" + ext
	}
	return key
}
