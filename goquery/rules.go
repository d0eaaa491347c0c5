package goquery

import (
	"net/url"
	"strings"
)

// SiteRule holds fixed selectors for a known publishing platform. The
// content selector locates the article body; the metadata selectors are
// high-confidence landmarks that outrank every generic source.
type SiteRule struct {
	Name              string
	ContentSelector   string
	TitleSelector     string
	AuthorSelector    string
	PublishedSelector string
}

// Registry maps domains to site rules. Rules match the exact domain and
// any of its subdomains.
type Registry struct {
	rules map[string]SiteRule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]SiteRule)}
}

// Register adds a rule for a domain. An existing rule for the same domain
// is replaced.
func (r *Registry) Register(domain string, rule SiteRule) {
	r.rules[domain] = rule
}

// ForURL returns the rule whose domain matches the URL's host, if any.
// When several registered domains match, the longest (most specific)
// domain wins.
func (r *Registry) ForURL(rawURL string) (SiteRule, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SiteRule{}, false
	}
	host := u.Hostname()

	var best SiteRule
	bestLen := -1
	for domain, rule := range r.rules {
		if host != domain && !strings.HasSuffix(host, "."+domain) {
			continue
		}
		if len(domain) > bestLen {
			best = rule
			bestLen = len(domain)
		}
	}
	return best, bestLen >= 0
}

// DefaultRegistry returns a Registry with the built-in platform rules.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// WeChat Official Account articles. The body always lives in
	// #js_content; the head metadata on these pages is unreliable.
	r.Register("mp.weixin.qq.com", SiteRule{
		Name:              "wechat",
		ContentSelector:   "#js_content",
		TitleSelector:     "#activity-name",
		AuthorSelector:    "#js_name",
		PublishedSelector: "#publish_time",
	})

	return r
}
