package utils

import (
	"net/url"
	"strings"
)

const avatarBaseURL = "https://i.pravatar.cc/150?u="

// DefaultAvatarURL derives a stable placeholder avatar from a username.
// The username is percent-encoded the way browsers' encodeURIComponent
// does it, so spaces become %20 rather than +.
func DefaultAvatarURL(username string) string {
	return avatarBaseURL + strings.ReplaceAll(url.QueryEscape(username), "+", "%20")
}
