package linkcheck

// LinkKind is the classification of a raw href value.
type LinkKind int

const (
	Internal LinkKind = iota
	External
	Ignorable
)

func (k LinkKind) String() string {
	switch k {
	case External:
		return "external"
	case Ignorable:
		return "ignorable"
	default:
		return "internal"
	}
}

// BrokenLink is an internal link whose resolved target does not exist.
type BrokenLink struct {
	Source string `yaml:"source"`
	Href   string `yaml:"href"`
	Target string `yaml:"target"`

	// Document is the discovery index of Source, Position the index of the
	// href within Source. Together they give the report order.
	Document int `yaml:"-"`
	Position int `yaml:"-"`
}

// Summary is the outcome of one run over a site root.
type Summary struct {
	SiteRoot         string       `yaml:"site_root"`
	Documents        int          `yaml:"documents"`
	SkippedDocuments int          `yaml:"skipped_documents"`
	TotalHrefs       int          `yaml:"total_hrefs"`
	CheckedLinks     int          `yaml:"checked_links"`
	Broken           []BrokenLink `yaml:"broken"`
}

// Passed reports whether no broken links were found.
func (s *Summary) Passed() bool {
	return len(s.Broken) == 0
}

// ExitCode maps the summary to the process exit status.
func (s *Summary) ExitCode() int {
	if s.Passed() {
		return ExitPass
	}
	return ExitBroken
}

const (
	ExitPass   = 0
	ExitBroken = 1
	ExitFatal  = 2
)

// documentResult is what a worker produces for a single document.
type documentResult struct {
	index   int
	path    string
	hrefs   int
	checked int
	broken  []BrokenLink
	err     error
}
