// Package validate trims and parses raw operator input from the menu and
// the JSON API.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"posledger/internal/money"
)

const maxName = 60

var (
	reDigits  = regexp.MustCompile(`^[0-9]{1,9}$`)
	reCommand = regexp.MustCompile(`^[a-z]{1,4}$`)
)

// Name validates a product name: trimmed, non-empty, bounded length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxName {
		return "", false
	}
	return s, true
}

// Count parses a non-negative integer typed as plain digits.
func Count(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !reDigits.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// Code parses a product code, which is always positive.
func Code(s string) (int, bool) {
	n, ok := Count(s)
	return n, ok && n > 0
}

// Amount parses a money value, accepting a comma as decimal separator.
func Amount(s string) (money.Money, bool) {
	m, err := money.Parse(s)
	if err != nil {
		return money.Money{}, false
	}
	return m, true
}

// Command normalizes a menu command.
func Command(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reCommand.MatchString(s)
}
