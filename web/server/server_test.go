package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(NewServer(0).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("unexpected health response %d %v", resp.StatusCode, body)
	}
}

func TestScenes(t *testing.T) {
	srv := httptest.NewServer(NewServer(0).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/scenes")
	if err != nil {
		t.Fatalf("GET /api/scenes failed: %v", err)
	}
	defer resp.Body.Close()

	var scenes []SceneInfo
	if err := json.NewDecoder(resp.Body).Decode(&scenes); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(scenes) == 0 {
		t.Fatal("expected at least one scene")
	}
	for _, s := range scenes {
		if s.Triangles == 0 {
			t.Errorf("scene %s has no triangles", s.Name)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	srv := httptest.NewServer(NewServer(0).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/render?scene=panel&width=10&height=6&samples=1&threads=2")
	if err != nil {
		t.Fatalf("GET /api/render failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("body is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 6 {
		t.Errorf("image is %dx%d, want 10x6", b.Dx(), b.Dy())
	}
}

func TestRenderJSON(t *testing.T) {
	srv := httptest.NewServer(NewServer(0).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/render?scene=fog&width=8&height=8&samples=2&format=json&strategy=sequential")
	if err != nil {
		t.Fatalf("GET /api/render failed: %v", err)
	}
	defer resp.Body.Close()

	var body RenderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.ImageData == "" {
		t.Error("missing image data")
	}
	if body.Stats.TotalPixels != 64 || body.Stats.TotalSamples != 128 {
		t.Errorf("unexpected stats %+v", body.Stats)
	}
	if len(body.Console) == 0 {
		t.Error("expected console output from the renderer")
	}
}

func TestRenderDefaultsAreLit(t *testing.T) {
	srv := httptest.NewServer(NewServer(0).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/render?width=16&height=16&samples=4&format=json")
	if err != nil {
		t.Fatalf("GET /api/render failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var body RenderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Stats.MeanLuminance <= 0 || body.Stats.BlackPixels == body.Stats.TotalPixels {
		t.Errorf("default render is black: %+v", body.Stats)
	}
}

func TestRenderBadRequests(t *testing.T) {
	srv := httptest.NewServer(NewServer(0).Handler())
	defer srv.Close()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"unknown scene", "scene=teapot", "unknown scene"},
		{"width too large", "width=5000", "width must be between"},
		{"bad samples", "samples=abc", "invalid samples"},
		{"bad strategy", "strategy=rayon", "unknown scheduling strategy"},
		{"bad format", "format=gif", "format must be"},
		{"bad threads", "threads=0", "invalid thread count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/api/render?" + tt.query + "&width=4&height=4")
			if err != nil {
				t.Fatalf("GET failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status %d, want 400", resp.StatusCode)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if !strings.Contains(body["error"], tt.want) {
				t.Errorf("error %q does not mention %q", body["error"], tt.want)
			}
		})
	}
}
