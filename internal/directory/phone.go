package directory

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// normalizePhone formats number as E.164. An empty number is valid.
func (m *Manager) normalizePhone(number string) (string, bool) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", true
	}

	parsed, err := phonenumbers.Parse(number, m.region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return number, false
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), true
}
