package api

import (
	"net/url"
	"strings"
)

// parseLinkHeader maps rel names to targets from an RFC 8288 Link header,
// e.g. `<https://x/api/v1/accounts/1/followers?max_id=9>; rel="next"`.
func parseLinkHeader(header string) map[string]*url.URL {
	links := make(map[string]*url.URL)
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "<") {
			continue
		}
		end := strings.Index(part, ">")
		if end < 0 {
			continue
		}
		target, err := url.Parse(part[1:end])
		if err != nil {
			continue
		}
		for _, attr := range strings.Split(part[end+1:], ";") {
			key, value, ok := strings.Cut(strings.TrimSpace(attr), "=")
			if !ok || strings.TrimSpace(key) != "rel" {
				continue
			}
			for _, rel := range strings.Fields(strings.Trim(strings.TrimSpace(value), `"`)) {
				links[rel] = target
			}
		}
	}
	return links
}
