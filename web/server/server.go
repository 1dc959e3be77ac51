package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-medium-tracer/pkg/integrator"
	"github.com/df07/go-medium-tracer/pkg/renderer"
	"github.com/df07/go-medium-tracer/pkg/scene"
)

// Server handles web requests for the medium tracer
type Server struct {
	port      int
	renderIDs atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string  `json:"scene"`       // Scene name (e.g., "cornell")
	Width       int     `json:"width"`       // Image width
	Height      int     `json:"height"`      // Image height
	Samples     int     `json:"samples"`     // Samples per pixel
	MaxDepth    int     `json:"maxDepth"`    // Bounces and medium events per camera ray
	Density     float64 `json:"density"`     // Medium density per scene medium unit, 0 disables the medium
	Scatter     float64 `json:"scatter"`     // Medium scatter probability
	Strategy    string  `json:"strategy"`    // Pixel scheduler
	Threads     string  `json:"threads"`     // Thread specification
	Accelerator string  `json:"accelerator"` // "bvh" or "linear"
	Seed        int64   `json:"seed"`        // Random seed
	Gamma       float64 `json:"gamma"`       // Gamma used for the PNG
	Format      string  `json:"format"`      // "png" or "json"
}

// RenderResponse is returned for format=json requests
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int     `json:"totalSamples"`
	ElapsedMs       int64   `json:"elapsedMs"`
	Threads         int     `json:"threads"`
	MeanLuminance   float64 `json:"meanLuminance"`
	StdDevLuminance float64 `json:"stdDevLuminance"`
	BlackPixels     int     `json:"blackPixels"`
	BVHNodes        int     `json:"bvhNodes"`
}

// SceneInfo describes one built-in scene
type SceneInfo struct {
	Name      string `json:"name"`
	Triangles int    `json:"triangles"`
	Materials int    `json:"materials"`
}

// Handler returns the HTTP handler serving every API endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	var scenes []SceneInfo
	for _, name := range scene.Names() {
		sc, err := scene.Load(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		scenes = append(scenes, SceneInfo{
			Name:      name,
			Triangles: sc.TriangleCount(),
			Materials: len(sc.Materials),
		})
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders a full frame and returns it as a PNG, or as JSON with
// stats and console output when format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	config, err := req.config()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sceneObj, err := scene.Load(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	camera, err := renderer.NewCamera(renderer.CameraConfigFromView(sceneObj.View, config.Width, config.Height))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	webLogger := NewWebLogger(fmt.Sprintf("render-%d", s.renderIDs.Add(1)))
	rt, err := renderer.NewRenderer(sceneObj, camera, config, webLogger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	buf, stats, err := rt.Render()
	if err != nil {
		var renderErr *renderer.RenderError
		if errors.As(err, &renderErr) {
			logger.Errorf("render failed in %d rows: %v", renderErr.FailedRows, err)
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	img := buf.ToRGBA(req.Gamma)
	if req.Format == "png" {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		if err := png.Encode(w, img); err != nil {
			logger.Errorf("failed to encode image: %v", err)
		}
		return
	}

	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to encode image: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, RenderResponse{
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:     stats.TotalPixels,
			TotalSamples:    stats.TotalSamples,
			ElapsedMs:       stats.Elapsed.Milliseconds(),
			Threads:         stats.Threads,
			MeanLuminance:   stats.MeanLuminance,
			StdDevLuminance: stats.StdDevLuminance,
			BlackPixels:     stats.BlackPixels,
			BVHNodes:        stats.BVH.TotalNodes,
		},
		Console: webLogger.Messages(),
	})
}

// config converts the request into a renderer configuration
func (req *RenderRequest) config() (renderer.Config, error) {
	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerPixel = req.Samples
	config.MaxDepth = req.MaxDepth
	config.Medium = integrator.Medium{Density: req.Density, ScatterProbability: req.Scatter}
	config.Seed = req.Seed

	var err error
	if config.Strategy, err = renderer.ParseStrategy(req.Strategy); err != nil {
		return config, err
	}
	if config.Threads, err = renderer.ParseThreadCount(req.Threads); err != nil {
		return config, err
	}
	if config.Accelerator, err = renderer.ParseAccelerator(req.Accelerator); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	defaults := renderer.DefaultConfig()
	req := &RenderRequest{
		Scene:       stringParam(query, "scene", "cornell"),
		Strategy:    stringParam(query, "strategy", string(defaults.Strategy)),
		Threads:     stringParam(query, "threads", defaults.Threads.String()),
		Accelerator: stringParam(query, "accelerator", string(defaults.Accelerator)),
		Format:      stringParam(query, "format", "png"),
	}
	if req.Format != "png" && req.Format != "json" {
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(query, "width", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 8, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", defaults.MaxDepth, 0, 1000); err != nil {
		return nil, err
	}
	if req.Density, err = parseFloatParam(query, "density", defaults.Medium.Density, 0, 100); err != nil {
		return nil, err
	}
	if req.Scatter, err = parseFloatParam(query, "scatter", defaults.Medium.ScatterProbability, 0, 1); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(query, "gamma", 2.0, 0.1, 10); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", int(defaults.Seed), 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		logger.Warning("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

func stringParam(values url.Values, key, defaultValue string) string {
	if value := values.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
