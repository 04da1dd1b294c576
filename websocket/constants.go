// websocket/constants.go
package websocket

import (
	"time"
)

// Константы для WebSocket-соединения
const (
	// Время ожидания записи сообщения клиенту
	writeWait = 10 * time.Second

	// Время ожидания сообщения от клиента
	pongWait = 60 * time.Second

	// Период отправки пинг-сообщений
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения
	maxMessageSize = 64 * 1024

	// Размер буфера исходящих сообщений сессии
	sendBufferSize = 64
)

// Типы сообщений протокола
const (
	TypeSession = "session"
	TypeInput   = "input"
	TypeOutput  = "output"
	TypeError   = "error"
	TypePing    = "ping"
	TypePong    = "pong"
)

// Причины закрытия соединения сервером
const (
	closeReasonIdle     = "sessão inativa"
	closeReasonShutdown = "servidor encerrado"
)
