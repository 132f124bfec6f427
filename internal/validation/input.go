// Package validation contains field-level checks for request bodies.
// Each check returns a map of field name to issue; an empty map means the
// input is acceptable.
package validation

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 32
	MinPasswordLen = 8
	// bcrypt ignores everything past 72 bytes; reject rather than truncate.
	MaxPasswordLen = 72
	MaxTitleLen    = 300
	MaxURLLen      = 2048
	MaxBodyLen     = 20000
	MaxCommentLen  = 10000
)

// Credentials validates a signup username/password pair.
func Credentials(username, password string) map[string]string {
	issues := map[string]string{}

	switch {
	case username == "":
		issues["username"] = "Username is required"
	case utf8.RuneCountInString(username) < MinUsernameLen:
		issues["username"] = "Username must be at least 3 characters"
	case utf8.RuneCountInString(username) > MaxUsernameLen:
		issues["username"] = "Username must be at most 32 characters"
	case !validUsernameChars(username):
		issues["username"] = "Username may only contain letters, digits and underscores"
	}

	switch {
	case password == "":
		issues["password"] = "Password is required"
	case len(password) < MinPasswordLen:
		issues["password"] = "Password must be at least 8 characters"
	case len(password) > MaxPasswordLen:
		issues["password"] = "Password must be at most 72 characters"
	}

	return issues
}

func validUsernameChars(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// Post validates a post submission. A post needs a title and at least one
// of a link or text body.
func Post(title, link, body string) map[string]string {
	issues := map[string]string{}

	switch {
	case strings.TrimSpace(title) == "":
		issues["title"] = "Title is required"
	case utf8.RuneCountInString(title) > MaxTitleLen:
		issues["title"] = "Title must be at most 300 characters"
	}

	if link == "" && strings.TrimSpace(body) == "" {
		issues["url"] = "A post needs a URL or text"
	}

	if link != "" {
		switch {
		case len(link) > MaxURLLen:
			issues["url"] = "URL must be at most 2048 characters"
		case !validHTTPURL(link):
			issues["url"] = "URL must be a valid http or https address"
		}
	}

	if utf8.RuneCountInString(body) > MaxBodyLen {
		issues["body"] = "Text must be at most 20000 characters"
	}

	return issues
}

func validHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Comment validates comment content.
func Comment(content string) map[string]string {
	issues := map[string]string{}
	switch {
	case strings.TrimSpace(content) == "":
		issues["content"] = "Content is required"
	case utf8.RuneCountInString(content) > MaxCommentLen:
		issues["content"] = "Comment must be at most 10000 characters"
	}
	return issues
}
