package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/innkeeper/internal/encoding"
	"github.com/MrJamesThe3rd/innkeeper/internal/http/render"
	"github.com/MrJamesThe3rd/innkeeper/internal/importer"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importRooms)
}

type importedRoom struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"number"`
	Floor  int       `json:"floor"`
}

type importResponse struct {
	Charset  encoding.Charset `json:"charset"`
	Imported int              `json:"imported"`
	Rooms    []importedRoom   `json:"rooms"`
}

func (h *Handler) importRooms(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		render.Error(w, r, apperr.Wrap(apperr.InvalidArgument, err, "parse form"))
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatRoomCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		render.Error(w, r, apperr.New(apperr.InvalidArgument, "file field is required"))
		return
	}
	defer file.Close()

	result, err := h.svc.Import(r.Context(), format, file)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := importResponse{
		Charset:  result.Charset,
		Imported: len(result.Rooms),
		Rooms:    make([]importedRoom, len(result.Rooms)),
	}

	for i, rm := range result.Rooms {
		resp.Rooms[i] = importedRoom{ID: rm.ID, Number: rm.Number, Floor: rm.Floor}
	}

	render.JSON(w, http.StatusCreated, resp)
}
