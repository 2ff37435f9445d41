package treepath

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	nameRegex  = regexp.MustCompile(`^[a-z0-9-]+$`)
	titleRegex = regexp.MustCompile(`^[^<>"]+$`)
)

var (
	// ErrInvalidName is returned when a folder or file name does not match ^[a-z0-9-]+$.
	ErrInvalidName = errors.New("invalid path name")

	// ErrInvalidTitle is returned when a title is empty or contains <, > or ".
	ErrInvalidTitle = errors.New("invalid title")
)

// ValidateName checks an external folder/file name before it is encoded.
func ValidateName(name string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.Match(nameRegex),
	)
	if err != nil {
		return ErrInvalidName
	}
	return nil
}

// ValidateTitle checks a display title.
func ValidateTitle(title string) error {
	err := validation.Validate(title,
		validation.Required,
		validation.Match(titleRegex),
	)
	if err != nil {
		return ErrInvalidTitle
	}
	return nil
}
