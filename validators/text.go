package validators

import (
	"errors"
	"unicode/utf8"
)

var (
	ErrFieldEmpty   = errors.New("this field can't be empty")
	ErrFieldTooLong = errors.New("this field is too long")
)

// Field limits mirror the column sizes in internal/model
const (
	MaxFullNameLength = 120
	MaxTitleLength    = 255
	MaxCategoryLength = 120
)

// TextValidator checks an already trimmed required field. A max of 0 means
// the field has no length limit.
func TextValidator(s string, max int) error {
	if s == "" {
		return ErrFieldEmpty
	}

	if max > 0 && utf8.RuneCountInString(s) > max {
		return ErrFieldTooLong
	}

	return nil
}
