package websocket

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LilVoxy/macro_copa/chart"
	"github.com/LilVoxy/macro_copa/config"
	"github.com/LilVoxy/macro_copa/dashboard"
	"github.com/LilVoxy/macro_copa/dataset"
	"github.com/LilVoxy/macro_copa/layout"
	"github.com/LilVoxy/macro_copa/utils"
	"github.com/gorilla/websocket"
)

func startServer(t *testing.T) (*Manager, string) {
	t.Helper()
	store, err := dataset.Load(filepath.Join("..", "dataset", "testdata", "dados.csv"))
	if err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	app := &dashboard.App{
		Store:  store,
		Layout: layout.Build(store, config.Default().Defaults, utils.NewWriterLogger(io.Discard, false)),
	}

	manager := NewManager(app)
	go manager.Run()

	srv := httptest.NewServer(http.HandlerFunc(manager.HandleConnections))
	t.Cleanup(func() {
		manager.Stop()
		srv.Close()
	})
	return manager, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func TestSessionRoundTrip(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)

	hello := readMessage(t, conn)
	if hello.Type != TypeSession || hello.SessionID == "" {
		t.Fatalf("expected session message, got %+v", hello)
	}

	initial := map[string]Message{}
	for i := 0; i < 4; i++ {
		msg := readMessage(t, conn)
		if msg.Type != TypeOutput {
			t.Fatalf("expected output, got %+v", msg)
		}
		initial[msg.ID] = msg
	}
	if initial[layout.Summary1ID].Table == nil || initial[layout.Summary1ID].Table.Country != "Brazil" {
		t.Fatalf("unexpected summary for panel 1: %+v", initial[layout.Summary1ID])
	}
	if initial[layout.Plot2ID].Chart == nil || initial[layout.Plot2ID].Chart.Title != "Argentina - PIB (%, cresc. anual)" {
		t.Fatalf("unexpected chart for panel 2: %+v", initial[layout.Plot2ID])
	}

	err := conn.WriteJSON(Message{
		Type:  TypeInput,
		ID:    layout.IndicatorID,
		Value: json.RawMessage(`"Inflação (%)"`),
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{layout.Plot1ID, layout.Plot2ID} {
		msg := readMessage(t, conn)
		if msg.Type != TypeOutput || msg.ID != want {
			t.Fatalf("expected output %s, got %+v", want, msg)
		}
		if !strings.HasSuffix(msg.Chart.Title, " - Inflação (%)") {
			t.Fatalf("unexpected title %q", msg.Chart.Title)
		}
	}

	if err := conn.WriteJSON(Message{Type: TypePing}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, conn); msg.Type != TypePong {
		t.Fatalf("expected pong, got %+v", msg)
	}
}

func TestSessionErrors(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)
	for i := 0; i < 5; i++ {
		readMessage(t, conn)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, conn); msg.Type != TypeError {
		t.Fatalf("expected error for malformed frame, got %+v", msg)
	}

	err := conn.WriteJSON(Message{Type: TypeInput, ID: layout.Country1ID, Value: json.RawMessage(`"Atlantis"`)})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{layout.Summary1ID, layout.Plot1ID} {
		msg := readMessage(t, conn)
		if msg.Type != TypeError || msg.ID != want || msg.Error == "" {
			t.Fatalf("expected error for %s, got %+v", want, msg)
		}
	}
}

func TestSweepClosesSilentSessions(t *testing.T) {
	manager, url := startServer(t)
	conn := dial(t, url)
	readMessage(t, conn)

	deadline := time.Now().Add(5 * time.Second)
	for manager.Count() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("session was not registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if n := manager.sweep(time.Hour); n != 0 {
		t.Fatalf("fresh session must not be swept, got %d", n)
	}
	if n := manager.sweep(-time.Second); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}

	// Клиент получает кадр закрытия с причиной, а не обрыв соединения
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var err error
	for err == nil {
		_, _, err = conn.ReadMessage()
	}
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) || closeErr.Code != websocket.CloseGoingAway || closeErr.Text != closeReasonIdle {
		t.Fatalf("expected going-away close frame, got %v", err)
	}

	for manager.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("swept session was not unregistered")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// Новое соединение начинается с умолчаний; клиент повторяет все входы страницы,
// и выходы должны соответствовать выбранным значениям, а не умолчаниям.
func TestReconnectReplaysPageState(t *testing.T) {
	manager, url := startServer(t)

	period, ok := manager.App.Layout.Control(layout.PeriodID)
	if !ok {
		t.Fatalf("period control missing")
	}

	conn := dial(t, url)
	for i := 0; i < 5; i++ {
		readMessage(t, conn)
	}

	replay := []Message{
		{Type: TypeInput, ID: layout.IndicatorID, Value: json.RawMessage(`"PIB (%, cresc. anual)"`)},
		{Type: TypeInput, ID: layout.PeriodID, Value: json.RawMessage(`{"start":"` + period.Start + `","end":"` + period.End + `"}`)},
		{Type: TypeInput, ID: layout.ChartStyleID, Value: json.RawMessage(`"Coluna"`)},
		{Type: TypeInput, ID: layout.Country1ID, Value: json.RawMessage(`"Chile"`)},
		{Type: TypeInput, ID: layout.Country2ID, Value: json.RawMessage(`"Argentina"`)},
	}
	for _, msg := range replay {
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatal(err)
		}
	}

	// Значения, совпадающие с умолчаниями, ничего не пересчитывают
	got := map[string]Message{}
	for _, want := range []string{layout.Plot1ID, layout.Plot2ID, layout.Summary1ID, layout.Plot1ID} {
		msg := readMessage(t, conn)
		if msg.Type != TypeOutput || msg.ID != want {
			t.Fatalf("expected output %s, got %+v", want, msg)
		}
		got[msg.ID] = msg
	}

	if got[layout.Summary1ID].Table.Country != "Chile" {
		t.Fatalf("summary 1 not switched to Chile: %+v", got[layout.Summary1ID].Table)
	}
	plot1 := got[layout.Plot1ID].Chart
	if plot1.Title != "Chile - PIB (%, cresc. anual)" {
		t.Fatalf("unexpected plot 1 title %q", plot1.Title)
	}
	for _, c := range []*chart.Chart{plot1, got[layout.Plot2ID].Chart} {
		if len(c.Layers) != 1 || c.Layers[0].Geometry != chart.GeometryColumn {
			t.Fatalf("expected one column layer in %q, got %+v", c.Title, c.Layers)
		}
	}
	if got[layout.Plot2ID].Chart.Title != "Argentina - PIB (%, cresc. anual)" {
		t.Fatalf("unexpected plot 2 title %q", got[layout.Plot2ID].Chart.Title)
	}

	// Повтор того же состояния больше ничего не присылает, следующий ответ это pong
	for _, msg := range replay {
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatal(err)
		}
	}
	if err := conn.WriteJSON(Message{Type: TypePing}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, conn); msg.Type != TypePong {
		t.Fatalf("expected pong after an idempotent replay, got %+v", msg)
	}
}
