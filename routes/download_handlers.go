// routes/download_handlers.go
package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/LilVoxy/macro_copa/dataset"
	"github.com/LilVoxy/macro_copa/utils"
)

// DownloadHandler отдает исходный файл данных без изменений
func DownloadHandler(store *dataset.Store, logger *utils.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := store.Raw()
		if err != nil {
			logger.Error("❌ Ошибка при подготовке файла для скачивания: %v", err)
			http.Error(w, "Ошибка при подготовке файла", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", store.FileName()))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		if _, err := w.Write(data); err != nil {
			logger.Error("❌ Ошибка при отправке файла: %v", err)
			return
		}

		logger.Debug("✅ Отправлен файл %s (%d байт)", store.FileName(), len(data))
	}
}
