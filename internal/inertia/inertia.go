// Package inertia implements the server half of the Inertia page protocol:
// every page response is a component name plus a JSON props object, sent as
// JSON to the client-side router or embedded in the root HTML document on a
// full page load.
package inertia

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	HeaderInertia  = "X-Inertia"
	HeaderVersion  = "X-Inertia-Version"
	HeaderLocation = "X-Inertia-Location"
)

// Props is the data handed to a page component.
type Props map[string]any

// Page is the object the client receives.
type Page struct {
	Component string `json:"component"`
	Props     Props  `json:"props"`
	URL       string `json:"url"`
	Version   string `json:"version"`
}

const defaultRoot = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <script type="module" src="{{ .Entry }}" defer></script>
</head>
<body>
  <div id="app" data-page="{{ .PageJSON }}"></div>
</body>
</html>
`

type rootData struct {
	Title    string
	Entry    string
	PageJSON string
}

type Renderer struct {
	version string
	title   string
	entry   string
	root    *template.Template
}

func New(version string) *Renderer {
	return &Renderer{
		version: version,
		title:   "Blog",
		entry:   "/assets/app.js",
		root:    template.Must(template.New("root").Parse(defaultRoot)),
	}
}

func (r *Renderer) Version() string {
	return r.version
}

// IsInertia reports whether the request came from the client-side router.
func IsInertia(req *http.Request) bool {
	return req.Header.Get(HeaderInertia) == "true"
}

// Middleware answers 409 to client-side GET visits made with stale assets,
// telling the client to do a full reload of the same URL.
func (r *Renderer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.Request
		if IsInertia(req) && req.Method == http.MethodGet && req.Header.Get(HeaderVersion) != r.version {
			c.Header(HeaderLocation, req.URL.RequestURI())
			c.AbortWithStatus(http.StatusConflict)
			return
		}
		c.Header("Vary", HeaderInertia)
		c.Next()
	}
}

// Render writes component with props using status.
func (r *Renderer) Render(c *gin.Context, status int, component string, props Props) {
	if props == nil {
		props = Props{}
	}
	page := Page{
		Component: component,
		Props:     props,
		URL:       c.Request.URL.RequestURI(),
		Version:   r.version,
	}

	if IsInertia(c.Request) {
		c.Header(HeaderInertia, "true")
		c.Header("Vary", HeaderInertia)
		c.JSON(status, page)
		return
	}

	pageJSON, err := json.Marshal(page)
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := r.root.Execute(&buf, rootData{Title: r.title, Entry: r.entry, PageJSON: string(pageJSON)}); err != nil {
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
