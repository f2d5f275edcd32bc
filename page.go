package wikigraph

// A Page is one record from the dump: the raw material for one
// article node and its outgoing relationships.
type Page struct {
	// ID is the page id as it appears in the dump.  Kept as a
	// string here; ToArticleNode decides whether it's numeric.
	ID    string
	Title string
	URL   string
	// Links holds the deduplicated internal link targets from the
	// page body, self-links excluded.  Category links are included
	// here too; Categories below has them classified.
	Links      []string
	Categories []string
	// RedirectTo is the cleaned target title when the page is a
	// redirect, else "".
	RedirectTo string
}
