package tree

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"wikitree/internal/config"
	"wikitree/internal/domain"
	"wikitree/internal/treepath"
)

// validateFolderInput checks a folder's name and title, name first.
func validateFolderInput(pathName, title string) error {
	if err := treepath.ValidateName(pathName); err != nil {
		return domain.NewValidationError(domain.CodeInvalidPathName,
			fmt.Sprintf("invalid path name %q: use lowercase letters, digits and hyphens", pathName))
	}
	if err := validation.Validate(pathName, validation.RuneLength(1, config.MaxPathNameLength)); err != nil {
		return domain.NewValidationError(domain.CodeInvalidPathName,
			fmt.Sprintf("path name exceeds maximum length of %d characters", config.MaxPathNameLength))
	}

	if err := treepath.ValidateTitle(title); err != nil {
		return domain.NewValidationError(domain.CodeInvalidTitle, "invalid title: must be non-empty and must not contain <, > or \"")
	}
	if err := validation.Validate(title, validation.RuneLength(1, config.MaxTitleLength)); err != nil {
		return domain.NewValidationError(domain.CodeInvalidTitle,
			fmt.Sprintf("title exceeds maximum length of %d characters", config.MaxTitleLength))
	}

	return nil
}

// parseParentPath converts an external parent path, checking every segment.
func parseParentPath(external string) (treepath.Path, error) {
	path := treepath.FromExternal(external)
	for _, label := range path {
		if err := treepath.ValidateName(treepath.DecodeLabel(label)); err != nil {
			return nil, domain.NewValidationError(domain.CodeInvalidPathName,
				fmt.Sprintf("invalid parent path %q", external))
		}
	}
	if len(path.String()) > config.MaxFolderPathLength {
		return nil, domain.NewValidationError(domain.CodeInvalidPathName,
			fmt.Sprintf("parent path exceeds maximum length of %d characters", config.MaxFolderPathLength))
	}
	return path, nil
}
