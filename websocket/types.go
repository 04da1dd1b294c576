// websocket/types.go
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/LilVoxy/macro_copa/chart"
	"github.com/LilVoxy/macro_copa/dashboard"
	"github.com/gorilla/websocket"
)

// Структура сообщения для обмена через WebSocket
type Message struct {
	Type      string           `json:"type"`
	ID        string           `json:"id,omitempty"`
	SessionID string           `json:"sessionId,omitempty"`
	Value     json.RawMessage  `json:"value,omitempty"`
	Table     *dashboard.Table `json:"table,omitempty"`
	Chart     *chart.Chart     `json:"chart,omitempty"`
	Image     string           `json:"image,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Клиент WebSocket: одно соединение и его сессия
type Client struct {
	ID      string
	Socket  *websocket.Conn
	Send    chan []byte
	Session *dashboard.Session
	Manager *Manager

	// Время последнего кадра от клиента (UnixNano)
	lastActivity atomic.Int64
	closeOnce    sync.Once
}

// Менеджер WebSocket-соединений
type Manager struct {
	App        *dashboard.App
	Clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	clientsMu  sync.RWMutex
	done       chan struct{}
}

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Разрешаем подключения с любого источника
	},
}
