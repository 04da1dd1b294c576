// websocket/client.go
package websocket

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"time"

	"github.com/LilVoxy/macro_copa/dashboard"
	"github.com/LilVoxy/macro_copa/reactive"
	"github.com/gorilla/websocket"
)

func (c *Client) touch() {
	c.lastActivity.Store(time.Now().UnixNano())
}

// LastActivity время последнего кадра от клиента
func (c *Client) LastActivity() time.Time {
	return time.Unix(0, c.lastActivity.Load())
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.Send) })
}

// shutdown отправляет кадр закрытия с причиной и закрывает сокет.
// WriteControl можно вызывать параллельно с writePump.
func (c *Client) shutdown(code int, reason string) {
	deadline := time.Now().Add(writeWait)
	if err := c.Socket.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline); err != nil {
		log.Printf("Не удалось отправить кадр закрытия сессии %s: %v", c.ID, err)
	}
	c.Socket.Close()
}

// sendMessage ставит сообщение в очередь отправки клиенту
func (c *Client) sendMessage(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("❌ Ошибка при кодировании сообщения для сессии %s: %v", c.ID, err)
		return
	}
	select {
	case c.Send <- data:
	default:
		log.Printf("⚠️ Очередь сессии %s переполнена, сообщение %s/%s отброшено", c.ID, msg.Type, msg.ID)
	}
}

// sendUpdates отправляет пересчитанные выходы
func (c *Client) sendUpdates(updates []reactive.Update) {
	for _, u := range updates {
		if u.Err != nil {
			log.Printf("❌ Ошибка вычисления %s в сессии %s: %v", u.ID, c.ID, u.Err)
		}
		c.sendMessage(updateMessage(u))
	}
}

// updateMessage переводит результат пересчёта в сообщение протокола
func updateMessage(u reactive.Update) Message {
	if u.Err != nil {
		return Message{Type: TypeError, ID: u.ID, Error: u.Err.Error()}
	}

	msg := Message{Type: TypeOutput, ID: u.ID}
	switch v := u.Value.(type) {
	case *dashboard.Table:
		msg.Table = v
	case *dashboard.ChartOutput:
		msg.Chart = v.Chart
		if len(v.PNG) > 0 {
			msg.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString(v.PNG)
		}
	}
	return msg
}

// handleInput применяет новое значение входа и отправляет изменившиеся выходы
func (c *Client) handleInput(msg Message) {
	updates, err := c.Session.SetInput(msg.ID, msg.Value)
	if err != nil {
		log.Printf("❌ Ошибка входа %s в сессии %s: %v", msg.ID, c.ID, err)
		c.sendMessage(Message{Type: TypeError, ID: msg.ID, Error: err.Error()})
		return
	}
	c.sendUpdates(updates)
}
