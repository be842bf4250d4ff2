package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gridx/internal/grid"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
)

// BoardEditor is the part of [grid.Editor] the API drives.
type BoardEditor interface {
	Board() models.Board
	Layout() grid.Layout
	Dragging() (string, bool)
	DragStart(activeID string) bool
	DragOver(overID string, geo grid.Geometry) models.Board
	DragEnd(overID string) models.Board
	DragCancel()
	AutoFill() models.Board
	Clear() models.Board
	Resize(rows, columns int) models.Board
	Sort(order grid.SortOrder) models.Board
	SetTextColor(id, color string) models.Board
	SetTextBackground(id string, on bool) models.Board
	AddCustom(album models.Album) models.Board
	Remove(id string) models.Board
}

var _ BoardEditor = (*grid.Editor)(nil)

// maxBodyBytes bounds request bodies; every request is a handful of fields.
const maxBodyBytes = 64 << 10

// BoardResponse is the JSON body returned by every board endpoint.
type BoardResponse struct {
	Rows       int                      `json:"rows"`
	Columns    int                      `json:"columns"`
	Sort       grid.SortOrder           `json:"sort"`
	Dragging   string                   `json:"dragging,omitempty"`
	Containers []models.ContainerRecord `json:"containers"`
}

// GeometryRequest mirrors [grid.Geometry].
type GeometryRequest struct {
	ActiveTop  float64 `json:"active_top"`
	OverTop    float64 `json:"over_top"`
	OverHeight float64 `json:"over_height"`
}

type dragRequest struct {
	Active   string           `json:"active"`
	Over     string           `json:"over"`
	Geometry *GeometryRequest `json:"geometry"`
}

type resizeRequest struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

type styleRequest struct {
	ID             string  `json:"id"`
	TextColor      *string `json:"text_color"`
	TextBackground *bool   `json:"text_background"`
}

type sortRequest struct {
	Order string `json:"order"`
}

type addRequest struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Images   []string `json:"images"`
}

type removeRequest struct {
	ID string `json:"id"`
}

// BoardHandler serves the board and forwards edits to a [BoardEditor].
type BoardHandler struct {
	editor BoardEditor
	logger *log.Logger
}

// NewBoardHandler creates a handler for editor.
func NewBoardHandler(editor BoardEditor, logger *log.Logger) *BoardHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BoardHandler{editor: editor, logger: shared.WithLogger(logger, "component", "api")}
}

// Routes returns the HTTP routes this handler serves.
func (h *BoardHandler) Routes() []string {
	return []string{
		"/board",
		"/drag/start", "/drag/over", "/drag/end", "/drag/cancel",
		"/autofill", "/clear", "/resize",
		"/items/style",
		"/pallete/sort", "/pallete/add", "/pallete/remove",
	}
}

// ServeHTTP dispatches on the request path. GET is accepted only for /board; every other route is POST.
func (h *BoardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	want := http.MethodPost
	if r.URL.Path == "/board" {
		want = http.MethodGet
	}
	if r.Method != want {
		w.Header().Set("Allow", want)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var err error
	switch r.URL.Path {
	case "/board":
	case "/drag/start":
		err = h.dragStart(r)
	case "/drag/over":
		err = h.dragOver(r)
	case "/drag/end":
		err = h.dragEnd(r)
	case "/drag/cancel":
		h.editor.DragCancel()
	case "/autofill":
		h.editor.AutoFill()
	case "/clear":
		h.editor.Clear()
	case "/resize":
		err = h.resize(r)
	case "/items/style":
		err = h.style(r)
	case "/pallete/sort":
		err = h.sort(r)
	case "/pallete/add":
		err = h.add(r)
	case "/pallete/remove":
		err = h.remove(r)
	default:
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err != nil {
		h.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *BoardHandler) dragStart(r *http.Request) error {
	var req dragRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if req.Active == "" {
		return fmt.Errorf("%w: active", shared.ErrMissingArgument)
	}
	if !h.editor.DragStart(req.Active) {
		return fmt.Errorf("%w: %s is not a draggable album", shared.ErrItemNotFound, req.Active)
	}
	return nil
}

func (h *BoardHandler) dragOver(r *http.Request) error {
	var req dragRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if req.Over == "" {
		return fmt.Errorf("%w: over", shared.ErrMissingArgument)
	}

	geo := grid.Geometry{}
	if g := req.Geometry; g != nil {
		geo = grid.Geometry{Valid: true, ActiveTop: g.ActiveTop, OverTop: g.OverTop, OverHeight: g.OverHeight}
	}
	h.editor.DragOver(req.Over, geo)
	return nil
}

func (h *BoardHandler) dragEnd(r *http.Request) error {
	var req dragRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	h.editor.DragEnd(req.Over)
	return nil
}

func (h *BoardHandler) resize(r *http.Request) error {
	var req resizeRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if req.Rows <= 0 || req.Columns <= 0 {
		return fmt.Errorf("%w: rows and columns must be positive", shared.ErrInvalidArgument)
	}
	h.editor.Resize(req.Rows, req.Columns)
	return nil
}

func (h *BoardHandler) style(r *http.Request) error {
	var req styleRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if _, _, ok := h.editor.Board().Find(req.ID); !ok {
		return fmt.Errorf("%w: %s", shared.ErrItemNotFound, req.ID)
	}
	if req.TextColor != nil {
		h.editor.SetTextColor(req.ID, *req.TextColor)
	}
	if req.TextBackground != nil {
		h.editor.SetTextBackground(req.ID, *req.TextBackground)
	}
	return nil
}

func (h *BoardHandler) sort(r *http.Request) error {
	var req sortRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	order, ok := grid.ParseSortOrder(req.Order)
	if !ok {
		return fmt.Errorf("%w: unknown sort order %q", shared.ErrInvalidArgument, req.Order)
	}
	h.editor.Sort(order)
	return nil
}

func (h *BoardHandler) add(r *http.Request) error {
	var req addRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	album := models.NewAlbum(models.KindCustom, "custom-"+shared.GenerateID(), req.Title, req.Subtitle)
	if len(req.Images) > 0 {
		album = album.WithImages(req.Images...)
	}
	h.editor.AddCustom(album)
	return nil
}

func (h *BoardHandler) remove(r *http.Request) error {
	var req removeRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if req.ID == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}
	h.editor.Remove(req.ID)
	return nil
}

func (h *BoardHandler) snapshot() BoardResponse {
	layout := h.editor.Layout()
	active, _ := h.editor.Dragging()
	return BoardResponse{
		Rows:       layout.Rows,
		Columns:    layout.Columns,
		Sort:       layout.Sort,
		Dragging:   active,
		Containers: models.ToBoardRecord(h.editor.Board()).Containers,
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
