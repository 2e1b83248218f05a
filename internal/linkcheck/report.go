package linkcheck

import (
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteReport prints the human-readable report. Paths of broken links are
// shown relative to projectRoot when possible.
func WriteReport(w io.Writer, s *Summary, projectRoot string) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("Scanned HTML files in: %s\n", s.SiteRoot)
	printf("Total hrefs found: %d\n", s.TotalHrefs)
	printf("Internal links checked: %d\n", s.CheckedLinks)

	if s.Passed() {
		printf("\nNo broken internal links detected.\n")
		return err
	}

	printf("\nBROKEN LINKS:\n")
	for _, b := range s.Broken {
		printf("- Page: %s | href: %s | missing: %s\n",
			relativeTo(projectRoot, b.Source), b.Href, relativeTo(projectRoot, b.Target))
	}
	printf("\nTotal broken: %d\n", len(s.Broken))

	return err
}

// WriteYAMLReport writes the summary as a YAML document.
func WriteYAMLReport(w io.Writer, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

func relativeTo(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
