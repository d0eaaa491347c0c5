package rod

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// OriginState holds the localStorage entries captured for one origin.
type OriginState struct {
	Origin       string            `json:"origin"`
	LocalStorage map[string]string `json:"localStorage,omitempty"`
}

// SessionSnapshot is the serialized authenticated browser state for one site:
// the cookie jar plus localStorage per origin. A snapshot is written by login
// capture and replayed into fresh pages before navigation.
type SessionSnapshot struct {
	Cookies []*proto.NetworkCookieParam `json:"cookies"`
	Origins []OriginState               `json:"origins,omitempty"`
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*SessionSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot SessionSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	return &snapshot, nil
}

// Save writes the snapshot to path, creating parent directories as needed.
// Snapshots hold live credentials, so the file is owner-readable only.
func (s *SessionSnapshot) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// Apply restores the snapshot into a page before it navigates to its target.
// Restoring localStorage requires being on the owning origin first, so each
// origin with entries is visited and seeded in turn.
func (s *SessionSnapshot) Apply(page *rod.Page) error {
	if len(s.Cookies) > 0 {
		if err := page.SetCookies(s.Cookies); err != nil {
			return fmt.Errorf("restoring cookies: %w", err)
		}
	}

	for _, origin := range s.Origins {
		if len(origin.LocalStorage) == 0 {
			continue
		}
		if err := page.Navigate(origin.Origin); err != nil {
			return fmt.Errorf("visiting origin %s: %w", origin.Origin, err)
		}
		if err := page.WaitLoad(); err != nil {
			return fmt.Errorf("loading origin %s: %w", origin.Origin, err)
		}
		for key, value := range origin.LocalStorage {
			if _, err := page.Eval(`(k, v) => localStorage.setItem(k, v)`, key, value); err != nil {
				return fmt.Errorf("restoring localStorage for %s: %w", origin.Origin, err)
			}
		}
	}

	return nil
}

// cookieParams converts browser cookies into the settable parameter form.
func cookieParams(cookies []*proto.NetworkCookie) []*proto.NetworkCookieParam {
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		params = append(params, &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: c.SameSite,
		})
	}
	return params
}
