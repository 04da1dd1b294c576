// websocket/connection_handler.go
package websocket

import (
	"log"
	"net/http"

	"github.com/LilVoxy/macro_copa/dashboard"
	"github.com/google/uuid"
)

// HandleConnections открывает WebSocket-соединение и новую сессию дашборда
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Ошибка при установке WebSocket-соединения:", err)
		return
	}

	id := uuid.NewString()
	session, err := dashboard.NewSession(id, manager.App)
	if err != nil {
		log.Printf("❌ Не удалось создать сессию %s: %v", id, err)
		conn.Close()
		return
	}

	client := &Client{
		ID:      id,
		Socket:  conn,
		Send:    make(chan []byte, sendBufferSize),
		Session: session,
		Manager: manager,
	}
	client.touch()

	// Регистрируем клиента в менеджере
	select {
	case manager.Register <- client:
	case <-manager.done:
		conn.Close()
		return
	}
	log.Printf("✅ Сессия %s подключилась с адреса %s", id, r.RemoteAddr)

	// Новая сессия сразу получает все выходы
	client.sendMessage(Message{Type: TypeSession, SessionID: id})
	client.sendUpdates(session.Initial())

	// Запускаем горутины для чтения и отправки сообщений
	go client.writePump()
	go client.readPump()
}
