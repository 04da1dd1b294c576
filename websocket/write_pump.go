// websocket/write_pump.go
package websocket

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// writePump единственный писатель в сокет сессии: выходы из Send и пинги по таймеру
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Socket.Close()
		log.Printf("Завершение writePump для сессии %s", c.ID)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				// Менеджер снял сессию с учёта
				c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.write(websocket.TextMessage, message); err != nil {
				log.Printf("❌ Ошибка отправки сессии %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// write отправляет один кадр с ограничением по времени
func (c *Client) write(messageType int, data []byte) error {
	c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Socket.WriteMessage(messageType, data)
}
