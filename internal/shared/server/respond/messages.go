package respond

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultLanguage = "en"

// displayMessages holds user-facing text per language, keyed by status code.
var displayMessages = map[string]map[int]string{
	"en": {
		2000: "Image uploaded.",
		2001: "Image deleted.",
		2002: "File(s) uploaded.",
		2003: "Files loaded.",
		2004: "File deleted.",
		2005: "File updated.",
		2006: "File details loaded.",
		4000: "Some required fields are missing.",
		4901: "Only JPEG and PNG images are supported.",
		4902: "The image is too large.",
		4903: "The image link is not valid.",
		4014: "This file format is not supported.",
		4905: "The file is too large.",
		4906: "The image name may only contain letters, digits, underscores and dashes.",
		4015: "Too many files were selected.",
		4016: "This file option is not supported.",
		4017: "The file could not be found.",
		4018: "The requested page is not valid.",
		4029: "Too many requests. Please try again shortly.",
		5000: "Something went wrong. Please try again.",
	},
}

// DisplayMessage returns the user-facing text for st in the request's preferred
// language, falling back to English and then to the status message.
func DisplayMessage(c *gin.Context, st Status) string {
	for _, lang := range preferredLanguages(c.GetHeader("Accept-Language")) {
		if msgs, ok := displayMessages[lang]; ok {
			if msg, ok := msgs[st.Code]; ok {
				return msg
			}
		}
	}
	if msg, ok := displayMessages[defaultLanguage][st.Code]; ok {
		return msg
	}
	return st.Message
}

// preferredLanguages returns the primary subtags of an Accept-Language header in
// the order given. Quality values are ignored.
func preferredLanguages(header string) []string {
	var out []string
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		primary, _, _ := strings.Cut(strings.TrimSpace(tag), "-")
		if primary = strings.ToLower(primary); primary != "" && primary != "*" {
			out = append(out, primary)
		}
	}
	return out
}
