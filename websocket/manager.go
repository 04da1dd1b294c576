// websocket/manager.go
package websocket

import (
	"log"

	"github.com/LilVoxy/macro_copa/dashboard"
	"github.com/gorilla/websocket"
)

// Создание нового менеджера WebSocket-соединений
func NewManager(app *dashboard.App) *Manager {
	return &Manager{
		App:        app,
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run запускает работу менеджера
func (manager *Manager) Run() {
	for {
		select {
		case client := <-manager.Register:
			manager.clientsMu.Lock()
			manager.Clients[client.ID] = client
			manager.clientsMu.Unlock()
			log.Printf("👤 Сессия %s открыта", client.ID)

		case client := <-manager.Unregister:
			manager.clientsMu.Lock()
			if _, ok := manager.Clients[client.ID]; ok {
				delete(manager.Clients, client.ID)
				client.closeSend()
				log.Printf("👤 Сессия %s закрыта", client.ID)
			}
			manager.clientsMu.Unlock()

		case <-manager.done:
			return
		}
	}
}

// Stop закрывает все соединения и останавливает цикл менеджера
func (manager *Manager) Stop() {
	manager.clientsMu.RLock()
	for _, client := range manager.Clients {
		client.shutdown(websocket.CloseGoingAway, closeReasonShutdown)
	}
	manager.clientsMu.RUnlock()
	close(manager.done)
}

// Count количество открытых сессий
func (manager *Manager) Count() int {
	manager.clientsMu.RLock()
	defer manager.clientsMu.RUnlock()
	return len(manager.Clients)
}
