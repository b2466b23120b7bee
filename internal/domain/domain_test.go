package domain

import "testing"

func TestFromURL_StripsPort(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"http://svc.example.com:8080/a", "svc.example.com"},
		{"https://svc.example.com/b", "svc.example.com"},
		{"https://example.com", "example.com"},
		{"http://127.0.0.1:9000/healthz", "127.0.0.1"},
		{"://missing-scheme", ""},
		{"not a url at all", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := FromURL(c.raw); got != c.want {
			t.Fatalf("FromURL(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestEndpoint_DisplayName(t *testing.T) {
	ep := Endpoint{Name: "checkout", URL: "https://example.com/checkout"}
	if got := ep.DisplayName(); got != "checkout" {
		t.Fatalf("want configured name, got %q", got)
	}

	ep = Endpoint{URL: "https://example.com/checkout"}
	if got := ep.DisplayName(); got != "https://example.com/checkout" {
		t.Fatalf("want URL fallback, got %q", got)
	}
}
