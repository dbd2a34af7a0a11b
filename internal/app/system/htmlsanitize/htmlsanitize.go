// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows the usual user-generated-content subset (formatting,
// links with safe schemes) and strips scripts, event handlers, and
// javascript: URLs.
var policy = bluemonday.UGCPolicy()

// Sanitize strips hostile markup from user-supplied text. Safe inline
// formatting and links survive; everything executable is removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
