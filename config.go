package webclip

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SiteProfile associates a domain with a login URL and the filesystem path
// of its persisted session snapshot.
type SiteProfile struct {
	Name         string `yaml:"-"`
	Domain       string `yaml:"domain"`
	LoginURL     string `yaml:"login_url"`
	SnapshotPath string `yaml:"snapshot_path"`
}

// Validate returns an error if the profile cannot be used for login capture.
func (p SiteProfile) Validate() error {
	if p.LoginURL == "" {
		return Errorf(EINVALID, "profile %q has no login URL configured", p.Name)
	}
	if p.SnapshotPath == "" {
		return Errorf(EINVALID, "profile %q has no snapshot path configured", p.Name)
	}
	return nil
}

// Duration wraps time.Duration with YAML support for values like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return Errorf(EINVALID, "invalid duration %q: %v", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the process-wide configuration, loaded once at startup and
// passed explicitly to the components that need it.
type Config struct {
	// NoteType and ContentType are the constant front-matter tags.
	NoteType    string `yaml:"note_type"`
	ContentType string `yaml:"content_type"`

	// Profiles maps profile names to site login configuration.
	Profiles map[string]SiteProfile `yaml:"profiles"`

	// NavTimeout bounds page navigation.
	NavTimeout Duration `yaml:"nav_timeout"`

	// ConsentWait bounds the cookie-consent dialog probe.
	ConsentWait Duration `yaml:"consent_wait"`

	// MaxScrollIterations and ScrollStallLimit bound lazy-load scrolling.
	// Scrolling stops at whichever triggers first.
	MaxScrollIterations int `yaml:"max_scroll_iterations"`
	ScrollStallLimit    int `yaml:"scroll_stall_limit"`

	// DwellMin/DwellMax bound the randomized wait before reading HTML.
	DwellMin Duration `yaml:"dwell_min"`
	DwellMax Duration `yaml:"dwell_max"`

	// PauseMin/PauseMax bound the randomized wait between batch URLs.
	PauseMin Duration `yaml:"pause_min"`
	PauseMax Duration `yaml:"pause_max"`
}

// DefaultConfig returns the configuration used when no config file exists.
// The timing bounds were tuned empirically against consent-heavy news
// sites; they are configuration rather than contract.
func DefaultConfig() Config {
	return Config{
		NoteType:            "reference",
		ContentType:         "web-clip",
		NavTimeout:          Duration(60 * time.Second),
		ConsentWait:         Duration(5 * time.Second),
		MaxScrollIterations: 30,
		ScrollStallLimit:    3,
		DwellMin:            Duration(2 * time.Second),
		DwellMax:            Duration(5 * time.Second),
		PauseMin:            Duration(10 * time.Second),
		PauseMax:            Duration(30 * time.Second),
	}
}

// LoadConfig reads a YAML config file and overlays it on DefaultConfig.
// A missing file is not an error; defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, Errorf(EINVALID, "parsing config %q: %v", path, err)
	}

	// Propagate map keys into the profiles so errors can name them.
	for name, profile := range cfg.Profiles {
		profile.Name = name
		cfg.Profiles[name] = profile
	}

	return cfg, nil
}

// Profile returns the named profile.
func (c *Config) Profile(name string) (SiteProfile, bool) {
	p, ok := c.Profiles[name]
	return p, ok
}

// ProfileForURL returns the profile whose domain matches the URL's host,
// if any. Subdomains of a profile domain match; when several profiles
// match, the longest (most specific) domain wins.
func (c *Config) ProfileForURL(rawURL string) (SiteProfile, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SiteProfile{}, false
	}
	host := u.Hostname()

	var best SiteProfile
	found := false
	for _, p := range c.Profiles {
		if p.Domain == "" {
			continue
		}
		if host != p.Domain && !strings.HasSuffix(host, "."+p.Domain) {
			continue
		}
		if !found || len(p.Domain) > len(best.Domain) {
			best = p
			found = true
		}
	}
	return best, found
}
