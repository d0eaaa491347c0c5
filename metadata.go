package webclip

// Metadata holds the harvested page metadata. All fields are optional;
// missing values stay empty and serialize as empty strings so the front
// matter key set is stable for downstream tooling.
type Metadata struct {
	Title       string
	Author      string
	Published   string
	Description string
	SiteName    string
}

// Merge fills empty fields of m from lower. Fields already populated are
// never overwritten, which is what makes harvesting priority monotonic:
// call Merge repeatedly from the highest-priority source down.
func (m *Metadata) Merge(lower Metadata) {
	if m.Title == "" {
		m.Title = lower.Title
	}
	if m.Author == "" {
		m.Author = lower.Author
	}
	if m.Published == "" {
		m.Published = lower.Published
	}
	if m.Description == "" {
		m.Description = lower.Description
	}
	if m.SiteName == "" {
		m.SiteName = lower.SiteName
	}
}

// Harvester extracts page metadata from rendered HTML.
type Harvester interface {
	// Harvest collects metadata in priority order: site-specific DOM
	// landmarks, then JSON-LD structured data, then head meta tags, then
	// the <title> tag. Malformed structured data blocks are skipped.
	Harvest(html string, pageURL string) (*Metadata, error)
}
