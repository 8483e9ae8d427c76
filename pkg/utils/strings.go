package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// unsafePathRunes cannot appear in a generated file or directory name
const unsafePathRunes = `/\:*?"<>|`

// NormalizeName trims s and brings it to Unicode NFC, so the same name
// spelled with precomposed or combining characters compares equal
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Capitalize upper-cases the first rune of s and keeps the rest untouched
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isIdentifierStart(r rune) bool {
	return r == '_' || r == '$' || unicode.In(r, unicode.Letter, unicode.Nl)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

// IsIdentifier reports whether s can be used as a TypeScript identifier.
// Unicode letters are accepted, e.g. 用户 or Überweisung.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if (i == 0 && !isIdentifierStart(r)) || !isIdentifierPart(r) {
			return false
		}
	}
	return true
}

// ToIdentifier replaces every rune of s that cannot appear in a TypeScript
// identifier with '_', prefixing '_' when s starts with a digit:
// pet-store -> pet_store, 2fa -> _2fa
func ToIdentifier(s string) string {
	if s == "" {
		return ""
	}
	var sb strings.Builder
	for i, r := range s {
		if i == 0 && !isIdentifierStart(r) && isIdentifierPart(r) {
			sb.WriteByte('_')
		}
		if isIdentifierPart(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// PathSegment makes s usable as a single file or directory name by replacing
// separators, reserved characters and control characters with '_'. It
// returns "" for names that would resolve to the current or parent directory.
func PathSegment(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(unsafePathRunes, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if s == "." || s == ".." {
		return ""
	}
	return s
}
