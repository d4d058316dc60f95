// Package htmlsanitize strips markup from user-supplied text before it is
// stored. Usernames and exercise descriptions are plain text; any tags a
// client sends are removed rather than escaped.
package htmlsanitize

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// policy allows no elements at all.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// maxPasses bounds StripTags on input encoded many layers deep.
const maxPasses = 8

// StripTags removes all HTML elements from s, dropping the contents of
// script and style elements entirely. Entities are decoded after each pass
// so "Run & bike" survives unchanged, and the pass repeats until the text
// is stable so entity-encoded markup such as "&lt;b&gt;" is stripped too.
// Input still changing after maxPasses is returned in its escaped form.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	p := getPolicy()
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(p.Sanitize(s))
		if next == s {
			return s
		}
		s = next
	}
	return p.Sanitize(s)
}
