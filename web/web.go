// Package web holds the server-rendered page templates.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	html "github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templates embed.FS

// Engine returns a fiber view engine over the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("price", func(p float64) string {
		return decimal.NewFromFloat(p).StringFixed(2)
	})
	return engine
}
