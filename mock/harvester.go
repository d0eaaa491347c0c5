package mock

import "github.com/czl314159/webclip"

var _ webclip.Harvester = (*Harvester)(nil)

// Harvester is a mock implementation of webclip.Harvester.
type Harvester struct {
	HarvestFn func(html string, pageURL string) (*webclip.Metadata, error)
}

func (h *Harvester) Harvest(html string, pageURL string) (*webclip.Metadata, error) {
	return h.HarvestFn(html, pageURL)
}
