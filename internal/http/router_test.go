package http_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/calendar"
	"github.com/MrJamesThe3rd/innkeeper/internal/export"
	innkeeperHttp "github.com/MrJamesThe3rd/innkeeper/internal/http"
	exportHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/importcsv"
	invoiceHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/invoice"
	reservationHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/reservation"
	roomHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/room"
	stayHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/stay"
	"github.com/MrJamesThe3rd/innkeeper/internal/importer"
	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
	"github.com/MrJamesThe3rd/innkeeper/internal/memstore"
	"github.com/MrJamesThe3rd/innkeeper/internal/metrics"
	"github.com/MrJamesThe3rd/innkeeper/internal/notify"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
	"github.com/MrJamesThe3rd/innkeeper/internal/stay"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memstore.New()
	cal := calendar.New(calendar.Fixed(time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)), time.UTC)

	registry := prometheus.NewRegistry()
	rec := audit.NewDispatcher(slog.Default(), 16, metrics.New(registry))
	t.Cleanup(rec.Close)

	rooms := room.NewService(store.Rooms(), cal, rec)
	reservations := reservation.NewService(store.Reservations(), cal, rec, reservation.Config{HoldPolicy: reservation.HoldOnCreate})
	stays := stay.NewService(store.Stays(), cal, rec, notify.Discard)
	invoices := invoice.NewService(store.Invoices(), cal, rec, notify.Discard, invoice.Config{Prefix: "HPL"})

	router := innkeeperHttp.New(innkeeperHttp.Handlers{
		Rooms:        roomHandler.NewHandler(rooms),
		Reservations: reservationHandler.NewHandler(reservations),
		Stays:        stayHandler.NewHandler(stays),
		Invoices:     invoiceHandler.NewHandler(invoices),
		Import:       importHandler.NewHandler(importer.NewService(rooms)),
		Export:       exportHandler.NewHandler(export.NewService(invoices)),
	}, innkeeperHttp.Options{AllowedOrigins: []string{"*"}, Gatherer: registry})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path string, body any, wantStatus int) map[string]any {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, string(raw))

	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}

	return out
}

func TestRouter_Lifecycle(t *testing.T) {
	srv := newServer(t)
	guest := "0b6f1c1e-9a55-4c55-8f1b-3a1f7f5f1e01"

	call(t, srv, http.MethodPost, "/api/v1/room-types", map[string]any{"name": "Double", "nightly_rate": "150", "capacity": 2}, http.StatusCreated)
	rm := call(t, srv, http.MethodPost, "/api/v1/rooms", map[string]any{"number": "101", "floor": 1, "room_type": "Double"}, http.StatusCreated)
	roomID := rm["id"].(string)

	product := call(t, srv, http.MethodPost, "/api/v1/products", map[string]any{"name": "Water", "unit_price": "8", "stock": 10}, http.StatusCreated)

	res := call(t, srv, http.MethodPost, "/api/v1/reservations", map[string]any{
		"guest_id":    guest,
		"check_in":    "2025-01-10",
		"check_out":   "2025-01-12",
		"allocations": []map[string]any{{"room_id": roomID, "price": "150"}},
	}, http.StatusCreated)
	resID := res["id"].(string)

	clash := call(t, srv, http.MethodPost, "/api/v1/reservations", map[string]any{
		"guest_id":    guest,
		"check_in":    "2025-01-11",
		"check_out":   "2025-01-13",
		"allocations": []map[string]any{{"room_id": roomID, "price": "150"}},
	}, http.StatusConflict)
	assert.Equal(t, "room_unavailable", clash["error"])
	assert.Equal(t, []any{roomID}, clash["room_ids"])

	confirmed := call(t, srv, http.MethodPost, "/api/v1/reservations/"+resID+"/confirm", nil, http.StatusOK)
	assert.Equal(t, "CONFIRMED", confirmed["status"])

	rm = call(t, srv, http.MethodGet, "/api/v1/rooms/"+roomID, nil, http.StatusOK)
	assert.Equal(t, "RESERVED", rm["status"])

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/stays/check-in",
		bytes.NewBufferString(`{"reservation_id":"`+resID+`"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	var stays []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stays))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, stays, 1)

	stayID := stays[0]["id"].(string)

	call(t, srv, http.MethodPost, "/api/v1/stays/"+stayID+"/consumptions",
		map[string]any{"product_id": product["id"], "quantity": 2}, http.StatusCreated)
	call(t, srv, http.MethodPost, "/api/v1/stays/"+stayID+"/check-out", nil, http.StatusOK)

	inv := call(t, srv, http.MethodPost, "/api/v1/invoices", map[string]any{"stay_id": stayID, "discount": "0"}, http.StatusCreated)
	assert.Equal(t, "HPL-2025-00001", inv["number"])
	assert.Equal(t, "300", inv["base"])
	assert.Equal(t, "16", inv["extras"])
	assert.Equal(t, "316", inv["total"])

	invID := inv["id"].(string)

	receipt := call(t, srv, http.MethodPost, "/api/v1/invoices/"+invID+"/payments",
		map[string]any{"amount": "316", "method": "cash"}, http.StatusCreated)
	assert.Equal(t, "0", receipt["outstanding"])

	voided := call(t, srv, http.MethodPost, "/api/v1/invoices/"+invID+"/void", nil, http.StatusConflict)
	assert.Equal(t, "has_payments", voided["error"])

	register := call(t, srv, http.MethodGet, "/api/v1/export/invoices?year=2025", nil, http.StatusOK)
	assert.Contains(t, register["summary"], "HPL-2025-00001 | 316.00 € | Settled")

	resp, err = srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Errors(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		kind   string
	}{
		{name: "UnknownRoom", method: http.MethodGet, path: "/api/v1/rooms/6f1c3a2e-0000-4000-8000-000000000001", status: http.StatusNotFound, kind: "not_found"},
		{name: "BadID", method: http.MethodGet, path: "/api/v1/invoices/not-a-uuid", status: http.StatusBadRequest, kind: "invalid_argument"},
		{name: "BadDate", method: http.MethodPost, path: "/api/v1/reservations", body: map[string]any{"check_in": "10/01/2025"}, status: http.StatusBadRequest, kind: "invalid_argument"},
		{name: "BadYear", method: http.MethodGet, path: "/api/v1/invoices?year=last", status: http.StatusBadRequest, kind: "invalid_argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := call(t, srv, tt.method, tt.path, tt.body, tt.status)
			assert.Equal(t, tt.kind, out["error"])
		})
	}
}

func TestRouter_ImportAndDownload(t *testing.T) {
	srv := newServer(t)

	call(t, srv, http.MethodPost, "/api/v1/room-types", map[string]any{"name": "Double", "nightly_rate": "150", "capacity": 2}, http.StatusCreated)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "rooms.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte("number;floor;room_type\n101;1;Double\n102;1;Double\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := srv.Client().Post(srv.URL+"/api/v1/import", mw.FormDataContentType(), &body)
	require.NoError(t, err)

	var imported struct {
		Charset  string `json:"charset"`
		Imported int    `json:"imported"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&imported))
	resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 2, imported.Imported)
	assert.Equal(t, "UTF-8", imported.Charset)

	resp, err = srv.Client().Get(srv.URL + "/api/v1/export/invoices/download?year=2025")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	assert.ElementsMatch(t, []string{"invoices_2025.csv", "summary.txt"}, names)
}
