package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"go.uber.org/zap"
)

// Server renders built-in scenes over HTTP
type Server struct {
	port   int
	base   config.Config // Defaults for parameters a request leaves out
	logger *zap.Logger
	mux    *http.ServeMux
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string
	Render   renderer.Config
	Features core.Features
}

// SceneInfo describes a built-in scene in the /api/scenes listing
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Shapes      int    `json:"shapes"`
	Lights      int    `json:"lights"`
}

// NewServer creates a new web server. Requests start from base and override it with query parameters.
func NewServer(port int, base config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{port: port, base: base, logger: logger, mux: http.NewServeMux()}

	// API endpoints
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	return s
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", zap.String("addr", "http://localhost"+srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	var scenes []SceneInfo
	for _, b := range scene.Builtins() {
		sc, err := scene.Get(b.Name)
		if err != nil {
			continue
		}
		scenes = append(scenes, SceneInfo{
			Name:        b.Name,
			Description: b.Description,
			Shapes:      len(sc.Shapes),
			Lights:      len(sc.LightList),
		})
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders one frame and responds with a PNG. A client that
// disconnects cancels the render through the request context.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, err := scene.Get(req.Scene)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := sc.Preprocess(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	camera := renderer.NewCamera(sc.Camera, float64(req.Render.Width)/float64(req.Render.Height))
	opts := []renderer.Option{renderer.WithLogger(s.logger.With(zap.String("scene", req.Scene)))}
	if sc.Gradient != nil {
		opts = append(opts, renderer.WithGradient(sc.Gradient))
	}
	rt, err := renderer.New(sc, camera, req.Render, req.Features, opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, stats, err := rt.Render(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Debug("client went away during render", zap.String("scene", req.Scene))
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Rays", strconv.Itoa(stats.Rays))
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// parseRenderRequest applies query parameters over the server defaults
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{
		Scene:    s.base.Scene,
		Render:   s.base.Render,
		Features: s.base.Features,
	}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Render.Width, err = parseIntParam(values, "width", req.Render.Width, 16, 2000); err != nil {
		return nil, err
	}
	if req.Render.Height, err = parseIntParam(values, "height", req.Render.Height, 16, 2000); err != nil {
		return nil, err
	}
	if req.Render.SamplesPerPixel, err = parseIntParam(values, "spp", req.Render.SamplesPerPixel, 1, 256); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", int(req.Render.Seed), 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Render.Seed = int64(seed)

	f := &req.Features
	if model := values.Get("shadingModel"); model != "" {
		if f.ShadingModel, err = core.ParseShadingModel(model); err != nil {
			return nil, err
		}
	}
	if f.NumShadowSamples, err = parseIntParam(values, "shadowSamples", f.NumShadowSamples, 0, 256); err != nil {
		return nil, err
	}
	if f.MaxRayDepth, err = parseIntParam(values, "maxDepth", f.MaxRayDepth, 1, 32); err != nil {
		return nil, err
	}
	for key, target := range map[string]*bool{
		"shadows":      &f.EnableShadows,
		"reflections":  &f.EnableReflections,
		"transparency": &f.EnableTransparency,
		"textures":     &f.EnableTextureMapping,
		"glossy":       &f.EnableGlossyReflection,
	} {
		if *target, err = parseBoolParam(values, key, *target); err != nil {
			return nil, err
		}
	}
	return req, nil
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

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
