// websocket/sweeper.go
package websocket

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gorilla/websocket"
)

// StartSweeper запускает планировщик, закрывающий молчащие соединения
func (manager *Manager) StartSweeper(interval, timeout time.Duration) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Every(interval).Do(func() {
		if n := manager.sweep(timeout); n > 0 {
			log.Printf("🧹 Закрыто неактивных сессий: %d", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при настройке планировщика: %w", err)
	}

	scheduler.StartAsync()
	return scheduler, nil
}

// sweep закрывает сокеты сессий, от которых не было кадров дольше timeout.
// Сессия удаляется из менеджера своим readPump после закрытия сокета.
func (manager *Manager) sweep(timeout time.Duration) int {
	now := time.Now()

	manager.clientsMu.RLock()
	var stale []*Client
	for _, client := range manager.Clients {
		if now.Sub(client.LastActivity()) > timeout {
			stale = append(stale, client)
		}
	}
	manager.clientsMu.RUnlock()

	for _, client := range stale {
		log.Printf("👤 Сессия %s неактивна с %s, закрываем", client.ID, client.LastActivity().Format(time.RFC3339))
		client.shutdown(websocket.CloseGoingAway, closeReasonIdle)
	}
	return len(stale)
}
