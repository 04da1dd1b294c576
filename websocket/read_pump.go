// websocket/read_pump.go
package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// readPump читает сообщения клиента. Реактивный граф сессии изменяется только здесь.
func (c *Client) readPump() {
	defer func() {
		// Обработка паники при закрытии канала
		if r := recover(); r != nil {
			log.Printf("Паника при чтении сообщений сессии %s: %v", c.ID, r)
		}

		// Отправляем сигнал отключения
		select {
		case c.Manager.Unregister <- c:
		case <-c.Manager.done:
			c.closeSend()
		}

		c.Socket.Close()
		log.Printf("Завершение readPump для сессии %s", c.ID)
	}()

	// Устанавливаем параметры подключения
	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.touch()
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Ошибка: %v", err)
			}
			break
		}
		c.touch()
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Println("Ошибка декодирования сообщения:", err)
			c.sendMessage(Message{Type: TypeError, Error: "неверный формат сообщения"})
			continue
		}

		switch msg.Type {
		case TypePing:
			c.sendMessage(Message{Type: TypePong})

		case TypeInput:
			c.handleInput(msg)

		default:
			log.Printf("Неизвестный тип сообщения %q от сессии %s", msg.Type, c.ID)
		}
	}
}
