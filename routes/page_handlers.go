// routes/page_handlers.go
package routes

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/LilVoxy/macro_copa/dashboard"
	"github.com/LilVoxy/macro_copa/utils"
)

// PageHandler отдает HTML-страницу дашборда
func PageHandler(app *dashboard.App, logger *utils.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := app.Layout.Render(&buf); err != nil {
			logger.Error("❌ %v", err)
			http.Error(w, "Ошибка при формировании страницы", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

// GetLayoutHandler отдает описание элементов управления и выходов в JSON
func GetLayoutHandler(app *dashboard.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(app.Layout); err != nil {
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
		}
	}
}
