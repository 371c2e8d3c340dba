package reddit

import "regexp"

var usernameRegex = regexp.MustCompile(`/user/([A-Za-z0-9_\-]+)/?`)

// ExtractUsername pulls the username out of a profile URL such as
// https://www.reddit.com/user/spez/. It returns false when the URL does
// not carry a /user/<name> segment.
func ExtractUsername(profileURL string) (string, bool) {
	match := usernameRegex.FindStringSubmatch(profileURL)
	if match == nil {
		return "", false
	}
	return match[1], true
}
