package errors

import (
	"strings"
	"unicode"
)

// ValidateID validates a row or pattern identifier.
// Identifiers come straight from user-supplied pattern files, so the rules
// are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRow, "id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidRow, "id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRow, "id contains invalid control characters")
		}
	}
	return nil
}

// ValidateInstructionType validates an instruction type name.
// Type names key into the instruction library, so a bad name is reported
// with the code the library would use for a failed lookup.
func ValidateInstructionType(name string) error {
	if name == "" {
		return New(ErrCodeUnknownInstruction, "instruction type cannot be empty")
	}
	if strings.ContainsAny(name, "\x00\n\r") {
		return New(ErrCodeUnknownInstruction, "instruction type contains invalid characters")
	}
	return nil
}
