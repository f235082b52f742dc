package posts

import (
	"regexp"
)

// @username: word characters, dots, and dashes; 1-39 chars
var mentionRegex = regexp.MustCompile(`(^|\s)@([\w.-]{1,39})`)

// ExtractMentions returns the distinct usernames mentioned in content,
// in order of first appearance. A mention is an @ at the start of a
// word; emails and mid-word @ signs don't count.
func ExtractMentions(content string) []string {
	matches := mentionRegex.FindAllStringSubmatch(content, -1)

	seen := make(map[string]bool, len(matches))
	var usernames []string

	for _, m := range matches {
		username := m[2]

		if seen[username] {
			continue
		}

		seen[username] = true
		usernames = append(usernames, username)
	}

	return usernames
}
