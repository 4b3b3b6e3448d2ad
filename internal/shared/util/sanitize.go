package util

import (
	"path"
	"strings"
)

const maxExtensionLen = 16

// Extension returns the final extension of name without the dot, or "" when
// it is missing or carries anything but ASCII letters and digits.
func Extension(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" || len(ext) > maxExtensionLen {
		return ""
	}
	for _, ch := range ext {
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')) {
			return ""
		}
	}
	return ext
}
