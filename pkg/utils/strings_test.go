package utils

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"  users ", "users"},
		{"cafe\u0301", "café"},
		{"café", "café"},
		{" 用户 ", "用户"},
	}

	for _, test := range tests {
		result := NormalizeName(test.input)
		if result != test.expected {
			t.Errorf("NormalizeName(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"users", "Users"},
		{"Users", "Users"},
		{"orderId", "OrderId"},
		{"user-profiles", "User-profiles"},
		{"élan", "Élan"},
		{"1st", "1st"},
		{"用户", "用户"},
	}

	for _, test := range tests {
		result := Capitalize(test.input)
		if result != test.expected {
			t.Errorf("Capitalize(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"User", true},
		{"_private", true},
		{"$ref", true},
		{"User2", true},
		{"用户", true},
		{"Überweisung", true},
		{"订单2", true},
		{"", false},
		{"2User", false},
		{"User[]", false},
		{"user-name", false},
		{"user name", false},
	}

	for _, test := range tests {
		result := IsIdentifier(test.input)
		if result != test.expected {
			t.Errorf("IsIdentifier(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestToIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"Users", "Users"},
		{"Pet-store", "Pet_store"},
		{"Pet store", "Pet_store"},
		{"用户", "用户"},
		{"2fa", "_2fa"},
		{"-x", "_x"},
	}

	for _, test := range tests {
		result := ToIdentifier(test.input)
		if result != test.expected {
			t.Errorf("ToIdentifier(%q) = %q, expected %q", test.input, result, test.expected)
		}
		if result != "" && !IsIdentifier(result) {
			t.Errorf("ToIdentifier(%q) = %q is not an identifier", test.input, result)
		}
	}
}

func TestPathSegment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"users", "users"},
		{"pet-store", "pet-store"},
		{"pet_store", "pet_store"},
		{"用户", "用户"},
		{"a/b", "a_b"},
		{`a\b`, "a_b"},
		{"what?", "what_"},
		{".", ""},
		{"..", ""},
		{"", ""},
	}

	for _, test := range tests {
		result := PathSegment(test.input)
		if result != test.expected {
			t.Errorf("PathSegment(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}
