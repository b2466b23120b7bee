package domain

import "net/url"

// FromURL returns the grouping key for an endpoint URL: the host name
// with any explicit port stripped, so http://svc.example.com:8080/a and
// https://svc.example.com/b aggregate together. Malformed URLs degrade
// to the empty key rather than failing the caller's cycle.
func FromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
