// routes/api_routes.go
package routes

import (
	"net/http"

	"github.com/LilVoxy/macro_copa/dashboard"
	"github.com/LilVoxy/macro_copa/layout"
	"github.com/LilVoxy/macro_copa/utils"
	"github.com/LilVoxy/macro_copa/websocket"
	"github.com/gorilla/mux"
)

// SetupRoutes настраивает все маршруты страницы, API и WebSocket
func SetupRoutes(router *mux.Router, app *dashboard.App, wsManager *websocket.Manager, staticDir string, logger *utils.Logger) {
	// Применяем CORS middleware
	router.Use(CORSMiddleware)

	// WebSocket-сессии дашборда
	router.HandleFunc("/ws", wsManager.HandleConnections)

	// Описание страницы
	router.HandleFunc("/api/layout", GetLayoutHandler(app)).Methods("GET", "OPTIONS")

	// Исходный файл данных
	router.HandleFunc(layout.DownloadPath, DownloadHandler(app.Store, logger)).Methods("GET", "OPTIONS")

	// Страница дашборда
	router.HandleFunc("/", PageHandler(app, logger)).Methods("GET")

	// Статические файлы
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
}
