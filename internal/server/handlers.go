package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/yaklabco/gomdparse/pkg/render"
)

type handler struct {
	opts Options
}

type errResponse struct {
	Error string `json:"error"`
}

type parsersResponse struct {
	Block  []string `json:"block"`
	Inline []string `json:"inline"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResponse{Error: msg})
}

// readBody reads the Markdown source of r, answering 413 when it exceeds
// the configured limit.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return "", false
		}
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return "", false
	}
	return string(body), true
}

// health handles GET /health.
func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parsers handles GET /v1/parsers with the resolved parser orders.
func (h *handler) parsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, parsersResponse{
		Block:  h.opts.Parser.BlockOrder(),
		Inline: h.opts.Parser.InlineOrder(),
	})
}

// parse handles POST /v1/parse. The body is Markdown; the response is the
// JSON tree.
func (h *handler) parse(w http.ResponseWriter, r *http.Request) {
	source, ok := h.readBody(w, r)
	if !ok {
		return
	}

	doc := h.opts.Parser.Parse(source)
	writeJSON(w, http.StatusOK, render.NewJSONDocument(doc))
}

// render handles POST /v1/render?format=html|text|markdown|json. The format
// defaults to html.
func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(render.FormatHTML)
	}

	format, err := render.ParseFormat(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	source, ok := h.readBody(w, r)
	if !ok {
		return
	}

	doc := h.opts.Parser.Parse(source)

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_ = render.Write(w, doc, format, render.Options{HTML: h.opts.HTML})
}
