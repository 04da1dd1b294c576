// layout/page.go
package layout

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Render отрисовывает HTML-страницу дашборда
func (l *Layout) Render(w io.Writer) error {
	if err := pageTemplate.Execute(w, l); err != nil {
		return fmt.Errorf("ошибка отрисовки страницы: %w", err)
	}
	return nil
}
