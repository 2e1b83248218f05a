package linkcheck

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		href string
		want LinkKind
	}{
		{href: "http://example.com", want: External},
		{href: "https://example.com/page.html", want: External},
		{href: "HTTPS://EXAMPLE.COM", want: External},
		{href: "mailto:someone@example.com", want: External},
		{href: "MailTo:someone@example.com", want: External},
		{href: "tel:+123456", want: External},
		{href: "javascript:void(0)", want: External},
		{href: "//cdn.example.com/lib.js", want: External},
		{href: "", want: Ignorable},
		{href: "#", want: Ignorable},
		{href: "#section", want: Ignorable},
		{href: "/about/", want: Internal},
		{href: "page.html", want: Internal},
		{href: "../img/pic.png", want: Internal},
		{href: "?page=2", want: Internal},
		{href: "ftp://example.com/file", want: Internal},
		{href: "http:/one-slash", want: Internal},
	}

	for _, tc := range testCases {
		t.Run(tc.href, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.href))
		})
	}
}

func TestExtractLinks(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	testCases := []struct {
		name        string
		htmlContent string
		wantLinks   []string
	}{
		{
			name: "Document Order",
			htmlContent: `<html><body>
				<a href="/first.html">1</a>
				<p><a href="second.html">2</a></p>
				<a href="https://example.com">3</a>
			</body></html>`,
			wantLinks: []string{"/first.html", "second.html", "https://example.com"},
		},
		{
			name:        "Case Insensitive Tags And Attributes",
			htmlContent: `<HTML><BODY><A HREF="/upper.html">U</A><a Href="/mixed.html">M</a></BODY></HTML>`,
			wantLinks:   []string{"/upper.html", "/mixed.html"},
		},
		{
			name:        "Empty Href Is Kept",
			htmlContent: `<a href="">empty</a><a href="#top">top</a>`,
			wantLinks:   []string{"", "#top"},
		},
		{
			name:        "Anchor Without Href",
			htmlContent: `<a name="anchor">no href</a>`,
			wantLinks:   []string{},
		},
		{
			name: "Only Anchors Count",
			htmlContent: `<html><head><link rel="stylesheet" href="/style.css"></head>
				<body><img src="/logo.png"><script src="/app.js"></script><a href="/ok.html">ok</a></body></html>`,
			wantLinks: []string{"/ok.html"},
		},
		{
			name:        "Malformed Markup",
			htmlContent: `<ul><li><a href="/x.html">x</a><li><a href=y.html>y</a></ul><p>unclosed <b>bold</span>`,
			wantLinks:   []string{"/x.html", "y.html"},
		},
		{
			name:        "Raw Value Kept",
			htmlContent: `<a href=" /spaced.html?q=1#frag ">s</a>`,
			wantLinks:   []string{" /spaced.html?q=1#frag "},
		},
		{
			name:        "Empty Document",
			htmlContent: ``,
			wantLinks:   []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			links, err := extractLinks(ctx, logger, []byte(tc.htmlContent))
			require.NoError(t, err)
			assert.Equal(t, tc.wantLinks, links)
		})
	}
}

func TestExtractLinks_DeclaredCharset(t *testing.T) {
	doc := "<html><head><meta charset=\"iso-8859-1\"></head><body><a href=\"caf\xe9.html\">x</a></body></html>"

	links, err := extractLinks(context.Background(), newTestLogger(), []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"café.html"}, links)
}

func TestExtractLinks_UTF8BeyondPrescan(t *testing.T) {
	doc := "<html><body>" + strings.Repeat("<p>padding</p>", 200) + `<a href="/café.html">x</a></body></html>`

	links, err := extractLinks(context.Background(), newTestLogger(), []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"/café.html"}, links)
}
