package room

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/http/render"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

type Handler struct {
	svc *room.Service
}

func NewHandler(svc *room.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/available", h.available)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.transition)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) TypeRoutes(r chi.Router) {
	r.Post("/", h.createType)
	r.Get("/", h.listTypes)
}

type createTypeRequest struct {
	Name        string          `json:"name"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
	Capacity    int             `json:"capacity"`
}

func (h *Handler) createType(w http.ResponseWriter, r *http.Request) {
	var req createTypeRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	t, err := h.svc.CreateType(r.Context(), room.CreateTypeParams{
		Name:        req.Name,
		NightlyRate: req.NightlyRate,
		Capacity:    req.Capacity,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toTypeResponse(t))
}

func (h *Handler) listTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListTypes(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]typeResponse, len(types))
	for i, t := range types {
		resp[i] = toTypeResponse(t)
	}

	render.JSON(w, http.StatusOK, resp)
}

type createRoomRequest struct {
	Number   string `json:"number"`
	Floor    int    `json:"floor"`
	TypeID   string `json:"room_type_id"`
	TypeName string `json:"room_type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	params := room.CreateParams{Number: req.Number, Floor: req.Floor, TypeName: req.TypeName}

	typeID, err := render.OptionalUUID("room_type_id", req.TypeID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if typeID != nil {
		params.TypeID = *typeID
	}

	created, err := h.svc.Create(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := room.ListFilter{}

	typeID, err := render.OptionalUUID("type_id", q.Get("type_id"))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	filter.TypeID = typeID

	if s := q.Get("status"); s != "" {
		filter.Status = new(room.Status(s))
	}

	if s := q.Get("include_deleted"); s != "" {
		filter.IncludeDeleted, _ = strconv.ParseBool(s)
	}

	rooms, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(rooms))
}

func (h *Handler) available(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := render.Date("start", q.Get("start"))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	end, err := render.Date("end", q.Get("end"))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	typeID, err := render.OptionalUUID("type_id", q.Get("type_id"))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	rooms, err := h.svc.FindAvailable(r.Context(), typeID, start, end)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(rooms))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	rm, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(rm))
}

type transitionRequest struct {
	Status room.Status `json:"status"`
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req transitionRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	rm, err := h.svc.Transition(r.Context(), id, req.Status)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(rm))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
