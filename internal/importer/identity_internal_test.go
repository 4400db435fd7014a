package importer

import "testing"

func TestExtractDownloadID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://shop.example.com/downloadables/streaming/7", ""},
		{"https://shop.example.com/downloadables/7", "7"},
		{"https://shop.example.com/items/42/downloadables/12345", "12345"},
		{"not a url but downloadables/9 anyway", "9"},
		{"https://shop.example.com/items/42", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := extractDownloadID(c.url); got != c.want {
			t.Errorf("extractDownloadID(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestExtractItemID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://shop.example.com/items/42", "42"},
		{"https://shop.example.com/ja/items/42?utm=x", "42"},
		{"https://shop.example.com/", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := extractItemID(c.url); got != c.want {
			t.Errorf("extractItemID(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestExtractShopDomain(t *testing.T) {
	cases := []struct {
		urls []string
		want string
	}{
		{[]string{"https://SomeShop.example.com/items/1"}, "someshop.example.com"},
		{[]string{"", "https://other.example.com/"}, "other.example.com"},
		{[]string{"shop.example.com/items/1"}, "shop.example.com"},
		{[]string{"%%%", ""}, ""},
	}
	for _, c := range cases {
		if got := extractShopDomain(c.urls...); got != c.want {
			t.Errorf("extractShopDomain(%v) = %q, want %q", c.urls, got, c.want)
		}
	}
}

func TestFileNameOf(t *testing.T) {
	if got := fileNameOf(File{FileName: "pack.zip"}); got != "pack.zip" {
		t.Errorf("declared filename ignored: %q", got)
	}
	if got := fileNameOf(File{URL: "https://x.example.com/dl/pack.zip?token=1"}); got != "pack.zip" {
		t.Errorf("url fallback = %q", got)
	}
	if got := fileNameOf(File{}); got != "" {
		t.Errorf("empty file produced name %q", got)
	}
}

func TestExtOf(t *testing.T) {
	if got := extOf("Pack.ZIP"); got != "zip" {
		t.Errorf("extOf = %q", got)
	}
	if got := extOf("noext"); got != "" {
		t.Errorf("extOf(noext) = %q", got)
	}
}
