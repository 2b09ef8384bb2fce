package domain

import "strings"

const (
	// MaxNameLen is the maximum category name length.
	MaxNameLen = 50
	// MaxLabelLen is the maximum bookmark label length.
	MaxLabelLen = 50
	// MaxCredentialLen is the maximum username/password length.
	MaxCredentialLen = 100
)

// ValidateCategoryName rejects empty, whitespace-only or overlong names.
func ValidateCategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Validationf("category name is required")
	}
	if len([]rune(trimmed)) > MaxNameLen {
		return Validationf("category name exceeds %d characters", MaxNameLen)
	}
	return nil
}

// ValidateBookmarkInput rejects bookmark fields that the backend would refuse.
func ValidateBookmarkInput(in BookmarkInput) error {
	if strings.TrimSpace(in.Label) == "" {
		return Validationf("bookmark label is required")
	}
	if len([]rune(in.Label)) > MaxLabelLen {
		return Validationf("bookmark label exceeds %d characters", MaxLabelLen)
	}
	if strings.TrimSpace(in.URL) == "" {
		return Validationf("bookmark url is required")
	}
	if len([]rune(in.Username)) > MaxCredentialLen {
		return Validationf("username exceeds %d characters", MaxCredentialLen)
	}
	if len([]rune(in.Password)) > MaxCredentialLen {
		return Validationf("password exceeds %d characters", MaxCredentialLen)
	}
	return nil
}
