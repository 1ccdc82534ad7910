package maplink

import (
	"strings"
	"testing"
)

func TestAll(t *testing.T) {
	links := All(-6.1754, 106.8272)

	wantNames := []string{"OpenStreetMap", "Google Maps", "Bing Maps", "WikiMapia"}
	if len(links) != len(wantNames) {
		t.Fatalf("got %d links, want %d", len(links), len(wantNames))
	}
	for i, link := range links {
		if link.Name != wantNames[i] {
			t.Errorf("links[%d].Name = %q, want %q", i, link.Name, wantNames[i])
		}
		if !strings.Contains(link.URL, "-6.175") || !strings.Contains(link.URL, "106.827") {
			t.Errorf("%s URL missing coordinates: %s", link.Name, link.URL)
		}
	}
}

func TestYandex_LngLatOrder(t *testing.T) {
	u := Yandex(-6.1754, 106.8272)
	if !strings.Contains(u, "ll=106.827200,-6.175400") {
		t.Errorf("Yandex URL must carry lng,lat: %s", u)
	}
}

func TestGoogleRoute(t *testing.T) {
	u := GoogleRoute(-6.1754, 106.8272, -6.9175, 107.6191)
	if !strings.Contains(u, "/dir/-6.175400,106.827200/-6.917500,107.619100") {
		t.Errorf("route URL = %s", u)
	}
}

func TestMapboxStatic(t *testing.T) {
	if got := MapboxStatic("", -6.1754, 106.8272, 14, 600, 400); got != "" {
		t.Errorf("MapboxStatic without token = %q, want empty", got)
	}

	u := MapboxStatic("pk.test", -6.1754, 106.8272, 14, 600, 400)
	if !strings.Contains(u, "access_token=pk.test") {
		t.Errorf("MapboxStatic URL missing token: %s", u)
	}
	if !strings.Contains(u, "600x400") {
		t.Errorf("MapboxStatic URL missing size: %s", u)
	}
}

func TestStaticMap(t *testing.T) {
	u := StaticMap(-6.1754, 106.8272, 15, 800, 600)
	if !strings.Contains(u, "zoom=15") || !strings.Contains(u, "size=800x600") {
		t.Errorf("StaticMap URL = %s", u)
	}
}
