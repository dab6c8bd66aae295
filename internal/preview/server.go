package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/squirrel-ui/squirrel/internal/errors"
	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/component"
	"github.com/squirrel-ui/squirrel/pkg/dom"
	"github.com/squirrel-ui/squirrel/pkg/middleware"
	"github.com/squirrel-ui/squirrel/pkg/particle"
	"github.com/squirrel-ui/squirrel/pkg/render"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
)

// Options configures a Server.
type Options struct {
	// Components resolves component names. Required.
	Components *component.Registry

	// Particles is shared by every per-request factory. Defaults to the
	// standard set.
	Particles *particle.Registry

	// FactoryOptions are applied to every per-request factory.
	FactoryOptions []atome.Option

	// Templates are defined on every per-request factory and served
	// under /templates/{name}.
	Templates map[string]atome.Config

	// Cursor is the drag cursor for websocket sessions (default "grab").
	Cursor string

	// Metrics records session counts. Nil disables metrics.
	Metrics *telemetry.Metrics

	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Registerer, when set, receives HTTP request metrics.
	Registerer prometheus.Registerer

	Logger *slog.Logger
}

// Server is the preview HTTP server.
type Server struct {
	components *component.Registry
	particles  *particle.Registry
	factory    []atome.Option
	templates  map[string]atome.Config
	cursor     string
	metrics    *telemetry.Metrics
	gatherer   prometheus.Gatherer
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	httpStats  func(http.Handler) http.Handler

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.Particles == nil {
		opts.Particles = particle.NewRegistry(particle.WithMetrics(opts.Metrics))
		particle.RegisterStandard(opts.Particles)
	}
	if opts.Cursor == "" {
		opts.Cursor = "grab"
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{
		components: opts.Components,
		particles:  opts.Particles,
		factory:    opts.FactoryOptions,
		templates:  opts.Templates,
		cursor:     opts.Cursor,
		metrics:    opts.Metrics,
		gatherer:   opts.Gatherer,
		logger:     opts.Logger.With("component", "preview"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		sessions: make(map[string]*Session),
	}
	if opts.Registerer != nil {
		s.httpStats = middleware.Metrics(middleware.WithRegistry(opts.Registerer))
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.Tracing(middleware.WithFilter(func(r *http.Request) bool {
		return r.URL.Path != "/metrics"
	})))
	if s.httpStats != nil {
		r.Use(s.httpStats)
	}

	r.Get("/", s.handleIndex)
	r.Get("/components", s.handleList)
	r.Get("/components/{name}", s.handleComponent)
	r.Get("/templates/{name}", s.handleTemplate)
	r.Get("/ws/{name}", s.handleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// Sessions returns the number of open websocket sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()))
	})
}

// newFactory creates a factory over a fresh document with a #view root.
func (s *Server) newFactory() *atome.Factory {
	doc := dom.NewDocument()
	view := doc.CreateElement("div")
	view.SetID("view")
	doc.Body.AppendChild(view)
	f := atome.NewFactory(doc, s.particles, s.factory...)
	for name, cfg := range s.templates {
		f.Define(name, cfg)
	}
	return f
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	f := s.newFactory()
	var links []atome.Config
	for _, name := range s.components.Names() {
		links = append(links, atome.Config{
			"markup": "li",
			"children": []atome.Config{{
				"markup": "a",
				"text":   name,
				"attrs":  map[string]any{"href": "/components/" + url.PathEscape(name)},
			}},
		})
	}
	f.Create(atome.Config{"markup": "h1", "text": "Components"})
	f.Create(atome.Config{"markup": "ul", "class": "components", "children": links})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	sr := render.NewStreamingRenderer(w, render.Options{Pretty: true})
	if err := sr.RenderPage(render.PageData{Title: "squirrel preview", Body: f.Document().Body}); err != nil {
		s.logger.Warn("index render failed", "error", err)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"components": s.components.Names()})
}

func (s *Server) handleComponent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx, span := telemetry.StartSpan(r.Context(), "preview.component", attribute.String("component", name))

	f := s.newFactory()
	a, err := s.components.Build(ctx, f, name, Props(r.URL.Query()))
	telemetry.EndSpan(span, err)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := render.Options{Pretty: r.URL.Query().Has("pretty"), EventMarkers: true}
	if r.URL.Query().Has("fragment") {
		html, err := render.New(opts).RenderToString(a.Node())
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	sr := render.NewStreamingRenderer(w, opts)
	page := render.PageData{
		Title:   name,
		Body:    f.Document().Body,
		Styles:  []string{"body{margin:0;font-family:system-ui,sans-serif}#view{position:relative;min-height:100vh}"},
		Scripts: []string{bridgeScript(name, a.ID())},
	}
	if err := sr.RenderPage(page); err != nil {
		s.logger.Warn("component render failed", "component", name, "error", err)
	}
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.templates[name]; !ok {
		s.writeError(w, errors.New(errors.CodeResolutionMiss).
			WithDetail("no template named "+strconv.Quote(name)))
		return
	}
	f := s.newFactory()
	a := f.CreateFrom(name, atome.Config(Props(r.URL.Query())))
	html, err := render.New(render.Options{Pretty: r.URL.Query().Has("pretty")}).RenderToString(a.Node())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// writeError maps resolution misses to 404 and everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.IsCode(err, errors.CodeResolutionMiss) {
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("preview request failed", "error", err)
	}
	body := map[string]any{"error": err.Error()}
	var se *errors.SquirrelError
	if errors.As(err, &se) {
		body["details"] = se
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Props converts query parameters into builder props. Numbers and
// booleans are parsed; repeated keys become lists.
func Props(q url.Values) map[string]any {
	props := make(map[string]any, len(q))
	for key, values := range q {
		if key == "pretty" || key == "fragment" {
			continue
		}
		if len(values) == 1 {
			props[key] = parseValue(values[0])
			continue
		}
		list := make([]any, len(values))
		for i, v := range values {
			list[i] = parseValue(v)
		}
		props[key] = list
	}
	return props
}

func parseValue(v string) any {
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}

func bridgeScript(name, id string) string {
	n, _ := json.Marshal(name)
	i, _ := json.Marshal(id)
	return `const el = document.getElementById(` + string(i) + `);
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws/" + encodeURIComponent(` + string(n) + `));
const send = (type, e) => ws.readyState === 1 && ws.send(JSON.stringify({type, x: e.clientX, y: e.clientY}));
el && el.addEventListener("pointerdown", e => send("pointerdown", e));
addEventListener("pointermove", e => send("pointermove", e));
addEventListener("pointerup", e => send("pointerup", e));
ws.onmessage = m => { const p = JSON.parse(m.data); if (el && p.css !== undefined) el.style.transform = p.css; };`
}
