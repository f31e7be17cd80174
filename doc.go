/*
Package gravity extracts the main body text of an article from an HTML page,
along with its links, embedded videos and page metadata.

The body is located by a scoring heuristic built on stopword statistics:
the tree is cleaned of boilerplate, paragraph-like nodes are scored by how
much ordinary prose they contain, and the best-scoring subtree is expanded
with nearby sibling paragraphs before being formatted as plain text.

Basic Usage:

	import "github.com/mrjoshuak/gravity"

	ext := gravity.New()

	article, err := ext.ExtractFromHTML(htmlString, nil)
	if err != nil {
		// Handle error
	}

	fmt.Printf("Title: %s\n", article.Title)
	fmt.Printf("Date: %s\n", article.Date)
	fmt.Println(article.Text)

A page with no recognizable body is not an error: HasBody is false and Text
is empty.

Advanced Usage with Options:

	ext := gravity.New(
		gravity.WithLanguage("es"),
		gravity.WithURL("https://example.com/news/1"),
		gravity.WithTimeout(time.Second*10),
		gravity.WithStopwordsDir("/etc/gravity/stopwords"),
	)

	article, err := ext.ExtractFromReader(resp.Body, nil)

Fields can also be computed on demand. Each field of a LazyArticle is
evaluated at most once:

	lazy := ext.Lazy(htmlString, nil)
	fmt.Println(lazy.Title())
	fmt.Println(lazy.Text())

Stopword lists for many languages are compiled in. Unknown language codes
fall back to English with a logged warning; pass WithLogger to see it.
*/
package gravity
