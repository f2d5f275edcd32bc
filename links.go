package wikigraph

import (
	"regexp"
	"strings"
)

var linkRE, categoryRE, nowikiRE, commentRE *regexp.Regexp

func init() {
	linkRE = regexp.MustCompile(`\[\[([^\|\]]+)(?:\|[^\]]*)?\]\]`)
	categoryRE = regexp.MustCompile(`\[\[[Cc]ategory:([^\|\]]+)(?:\|[^\]]*)?\]\]`)
	nowikiRE = regexp.MustCompile(`(?ms)<nowiki>.*</nowiki>`)
	commentRE = regexp.MustCompile(`(?ms)<!--.*-->`)
}

func stripMarkup(text string) string {
	return nowikiRE.ReplaceAllString(commentRE.ReplaceAllString(text, ""), "")
}

// FindLinks finds the targets of all [[internal links]] within an
// article body.  Targets are title-cleaned and deduplicated, display
// text after a pipe is ignored, and links back to ownTitle are
// dropped.  Category links come back like any other target;
// classifying them is the caller's job.
func FindLinks(text, ownTitle string) []string {
	matches := linkRE.FindAllStringSubmatch(stripMarkup(text), -1)

	seen := make(map[string]bool, len(matches))
	rv := make([]string, 0, len(matches))
	for _, x := range matches {
		target := CleanTitle(x[1])
		if target == "" || target == ownTitle || seen[target] {
			continue
		}
		seen[target] = true
		rv = append(rv, target)
	}

	return rv
}

// FindCategories finds the names of all [[Category:...]] tags within
// an article body, cleaned and deduplicated.
func FindCategories(text string) []string {
	matches := categoryRE.FindAllStringSubmatch(stripMarkup(text), -1)

	seen := make(map[string]bool, len(matches))
	rv := make([]string, 0, len(matches))
	for _, x := range matches {
		name := CleanTitle(x[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		rv = append(rv, name)
	}

	return rv
}

// IsCategoryTitle reports whether a link target refers to a category
// page rather than an article.
func IsCategoryTitle(title string) bool {
	return strings.HasPrefix(title, "Category:")
}
