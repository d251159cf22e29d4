// Package site serves the portfolio page with a live particle backdrop.
package site

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Options wires the server's collaborators. Backdrop may be nil, in which
// case the page renders without the live background.
type Options struct {
	Content  *Content
	Relay    *Relay
	Backdrop *Backdrop
}

type Server struct {
	content  *Content
	relay    *Relay
	backdrop *Backdrop
}

func New(opts Options) *Server {
	return &Server{
		content:  opts.Content,
		relay:    opts.Relay,
		backdrop: opts.Backdrop,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"lower": strings.ToLower,
	}).ParseFS(templatesFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.index)
	r.GET("/api/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.content)
	})
	r.POST("/contact", s.contact)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if s.backdrop != nil {
		r.GET("/backdrop.svg", s.backdropSVG)
		r.GET("/backdrop.png", s.backdropPNG)
		r.GET("/backdrop/stream", s.backdropStream)
		r.GET("/backdrop/stats", func(c *gin.Context) {
			c.JSON(http.StatusOK, s.backdrop.Stats())
		})
	}
	return r
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"content":   s.content,
		"sections":  Sections,
		"backdrop":  s.backdrop != nil,
		"submitted": c.Query("submitted") == "1",
	})
}

func (s *Server) contact(c *gin.Context) {
	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := s.relay.Submit(c.Request.Context(), form)
	switch {
	case errors.Is(err, ErrNoEndpoint):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("Error relaying contact from %s: %v", form.Email, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": ErrSubmitFailed.Error()})
		return
	}

	log.Printf("Contact relayed from %s (%s)", form.Name, form.Email)
	// Plain form posts come back to the page; scripted posts get JSON.
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusSeeOther, "/?submitted=1#contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "submitted"})
}

func (s *Server) backdropSVG(c *gin.Context) {
	w, errW := strconv.Atoi(c.Query("w"))
	h, errH := strconv.Atoi(c.Query("h"))
	if errW == nil && errH == nil {
		s.backdrop.Resize(w, h)
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/svg+xml", s.backdrop.SVG())
}

func (s *Server) backdropPNG(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.backdrop.PNG(&buf); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) backdropStream(c *gin.Context) {
	frames, cancel := s.backdrop.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("frame", string(s.backdrop.SVG()))
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case svg, ok := <-frames:
			if !ok {
				return false
			}
			c.SSEvent("frame", string(svg))
			return true
		}
	})
}
