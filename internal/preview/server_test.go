package preview

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/component"
	"github.com/squirrel-ui/squirrel/pkg/drag"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
)

func box(props map[string]any) atome.Config {
	return atome.Config{"id": "box", "width": props["width"], "text": props["text"]}
}

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	components := component.NewRegistry()
	components.Register("box", box)
	s := New(Options{
		Components: components,
		Metrics:    telemetry.NewMetrics(telemetry.WithNamespace("test"), telemetry.WithRegistry(reg)),
		Gatherer:   reg,
		Registerer: reg,
	})
	return s, reg
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleList(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/components")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Components []string `json:"components"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"box"}, body.Components); diff != "" {
		t.Errorf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleIndex(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `href="/components/box"`) {
		t.Errorf("index missing link:\n%s", rec.Body.String())
	}
}

func TestHandleComponent(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := get(t, h, "/components/box?width=50&text=hi&fragment")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	want := `<div id="box" style="width: 50px;">hi</div>`
	if got := rec.Body.String(); got != want {
		t.Errorf("fragment = %q, want %q", got, want)
	}

	rec = get(t, h, "/components/box")
	page := rec.Body.String()
	if !strings.HasPrefix(page, "<!DOCTYPE html>") || !strings.Contains(page, `<div id="view">`) {
		t.Errorf("page:\n%s", page)
	}
	if !strings.Contains(page, `/ws/`) {
		t.Error("page missing websocket bridge")
	}
}

func TestHandleComponent_NotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/components/missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"details":{"code":"E001","category":"resolution"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, reg := newTestServer(t)
	h := s.Handler()
	get(t, h, "/components")
	if n, err := testutil.GatherAndCount(reg, "squirrel_http_requests_total"); err != nil || n != 1 {
		t.Errorf("http request series = %d, %v; want 1", n, err)
	}
	rec := get(t, h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "test_preview_sessions") {
		t.Errorf("metrics missing preview gauge:\n%s", rec.Body.String())
	}
}

func TestProps(t *testing.T) {
	q := url.Values{
		"width":  {"50"},
		"text":   {"hi"},
		"on":     {"true"},
		"items":  {"a", "2"},
		"pretty": {""},
	}
	want := map[string]any{
		"width": 50.0,
		"text":  "hi",
		"on":    true,
		"items": []any{"a", 2.0},
	}
	if diff := cmp.Diff(want, Props(q)); diff != "" {
		t.Errorf("Props mismatch (-want +got):\n%s", diff)
	}
}

func TestWebSocketSession(t *testing.T) {
	s, reg := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/box", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	var ready ServerMessage
	if err := conn.ReadJSON(&ready); err != nil {
		t.Fatalf("read ready: %v", err)
	}
	if ready.Type != TypeReady || ready.Session == "" || ready.ID != "box" {
		t.Errorf("ready = %+v", ready)
	}
	if !strings.Contains(ready.HTML, `id="box"`) {
		t.Errorf("ready html = %q", ready.HTML)
	}
	const open = `
# HELP test_preview_sessions Number of open preview websocket sessions
# TYPE test_preview_sessions gauge
test_preview_sessions 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(open), "test_preview_sessions"); err != nil {
		t.Error(err)
	}

	steps := []struct {
		msg   ClientMessage
		state string
	}{
		{ClientMessage{Type: "pointerdown", X: 100, Y: 100}, "dragging"},
		{ClientMessage{Type: "pointermove", X: 120, Y: 110}, "dragging"},
		{ClientMessage{Type: "pointermove", X: 150, Y: 130}, "dragging"},
		{ClientMessage{Type: "pointerup", X: 150, Y: 130}, "idle"},
	}
	var last ServerMessage
	for _, step := range steps {
		if err := conn.WriteJSON(step.msg); err != nil {
			t.Fatalf("write: %v", err)
		}
		last = ServerMessage{}
		if err := conn.ReadJSON(&last); err != nil {
			t.Fatalf("read: %v", err)
		}
		if last.State != step.state {
			t.Errorf("after %s state = %q, want %q", step.msg.Type, last.State, step.state)
		}
	}
	if last.Transform != (drag.Point{X: 50, Y: 30}) {
		t.Errorf("transform = %+v, want {50 30}", last.Transform)
	}
	if last.CSS != "translate(50px, 30px)" {
		t.Errorf("css = %q", last.CSS)
	}

	if err := conn.WriteJSON(ClientMessage{Type: "wave"}); err != nil {
		t.Fatal(err)
	}
	var bad ServerMessage
	if err := conn.ReadJSON(&bad); err != nil {
		t.Fatal(err)
	}
	if bad.Type != TypeError || bad.Error == "" {
		t.Errorf("unknown message reply = %+v", bad)
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for s.Sessions() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := s.Sessions(); n != 0 {
		t.Errorf("Sessions() = %d after close", n)
	}
}

func TestWebSocket_UnknownComponent(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/missing", nil)
	if err == nil {
		t.Fatal("expected dial failure")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("resp = %v", resp)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "E001") {
		t.Errorf("body = %s", body)
	}
}

func TestHandleTemplate(t *testing.T) {
	s := New(Options{
		Components: component.NewRegistry(),
		Templates:  map[string]atome.Config{"card": {"class": "card", "width": 200}},
		Gatherer:   prometheus.NewRegistry(),
	})
	h := s.Handler()

	rec := get(t, h, "/templates/card?text=hello")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{`class="card"`, "width: 200px;", ">hello<"} {
		if !strings.Contains(body, want) {
			t.Errorf("template output missing %q: %s", want, body)
		}
	}

	if rec := get(t, h, "/templates/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown template status = %d, want 404", rec.Code)
	}
}
