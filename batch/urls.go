package batch

import (
	"os"
	"regexp"
	"strings"
)

// urlPattern recognizes URL-shaped substrings in free-form text. Input
// files are not line-delimited; anything matching the pattern anywhere in
// the file is a candidate.
var urlPattern = regexp.MustCompile(`https?://[^\s<>"'\)\]]+`)

// trailingPunctuation is trimmed from matches so URLs embedded in prose
// ("see https://example.com/post.") come out clean.
const trailingPunctuation = `.,;:!?`

// ExtractURLs returns the unique URLs found in text, in first-seen order.
// Duplicates collapse: feeding the same URL twice yields one entry.
func ExtractURLs(text string) []string {
	seen := make(map[string]bool)
	var urls []string

	for _, match := range urlPattern.FindAllString(text, -1) {
		u := strings.TrimRight(match, trailingPunctuation)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}

	return urls
}

// ResolveInput turns the command input into the list of URLs to process.
// A path to a regular file is scanned for URL-shaped substrings; anything
// else is treated as a single URL and must itself be URL-shaped.
func ResolveInput(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil || !info.Mode().IsRegular() {
		return ExtractURLs(input), nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}

	return ExtractURLs(string(data)), nil
}
