package variables

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrEmptyName         = errors.New("the name cannot be empty")
	ErrInvalidCharacters = errors.New("the name must only contain alphanumeric characters or underscores")
)

// Name identifies a criterion. The zero value is not a valid Name; use NewName.
type Name struct {
	value string
}

// NewName validates text and wraps it as a Name.
func NewName(text string) (Name, error) {
	if text == "" {
		return Name{}, ErrEmptyName
	}
	for _, r := range text {
		if !isNameRune(r) {
			return Name{}, ErrInvalidCharacters
		}
	}
	return Name{value: text}, nil
}

// isNameRune accepts alphabetic runes (letters plus Other_Alphabetic marks
// such as Indic vowel signs), numbers and '_'.
func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r)
}

func (n Name) String() string {
	return n.value
}

// Compare orders names lexicographically, returning -1, 0 or +1.
func (n Name) Compare(other Name) int {
	return strings.Compare(n.value, other.value)
}
