package linkcheck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

var externalPrefixes = []string{
	"http://",
	"https://",
	"mailto:",
	"tel:",
	"javascript:",
	"//",
}

// Classify decides how a raw href is handled. It never touches the network
// or the filesystem.
func Classify(href string) LinkKind {
	if href == "" || strings.HasPrefix(href, "#") {
		return Ignorable
	}

	lower := strings.ToLower(href)
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return External
		}
	}

	return Internal
}

// decodeDocument returns content as UTF-8. A BOM or a <meta> charset
// wins, except that undeclared or guessed content which is already valid
// UTF-8 is passed through untouched.
func decodeDocument(content []byte) io.Reader {
	enc, name, certain := charset.DetermineEncoding(content, "")
	if name == "utf-8" || (!certain && utf8.Valid(content)) {
		return bytes.NewReader(content)
	}
	return transform.NewReader(bytes.NewReader(content), enc.NewDecoder())
}

// extractLinks returns the href of every anchor in content, in document
// order. Values are returned exactly as authored, empty ones included.
func extractLinks(ctx context.Context, logger *slog.Logger, content []byte) ([]string, error) {
	logger.DebugContext(ctx, "Starting to extract links", slog.Int("bytes", len(content)))

	doc, err := goquery.NewDocumentFromReader(decodeDocument(content))
	if err != nil {
		return nil, &DocumentError{Op: "parse", Err: fmt.Errorf("failed to parse document: %w", err)}
	}

	links := []string{}
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		logger.DebugContext(ctx, "Found link", slog.String("href", href), slog.String("kind", Classify(href).String()))
		links = append(links, href)
	})

	logger.DebugContext(ctx, "Finished extracting links", slog.Int("links_found", len(links)))

	return links, nil
}
