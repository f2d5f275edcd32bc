package wikigraph

import (
	"regexp"
	"strings"
)

// WikiBase is the base URL articles are keyed under.  Downstream
// consumers match on the derived URL verbatim, so don't change this
// without reimporting.
const WikiBase = "https://en.wikipedia.org/wiki"

var spaceRE = regexp.MustCompile(`\s+`)

// CleanTitle normalizes an article title: surrounding whitespace is
// dropped and any internal run of whitespace (tabs, newlines, ...)
// becomes a single space.  Idempotent, returns "" for "".
func CleanTitle(title string) string {
	return spaceRE.ReplaceAllString(strings.TrimSpace(title), " ")
}

// URLForTitle gets the canonical article URL for the given title.
func URLForTitle(title string) string {
	return WikiBase + "/" + strings.Replace(title, " ", "_", -1)
}
