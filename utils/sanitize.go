package utils

import "github.com/microcosm-cc/bluemonday"

// The UGC policy allows benign formatting markup in post and comment bodies
// while stripping scripts and event handlers.
var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips unsafe HTML from user-supplied text before it is persisted.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
