// Package orderapi serves the order endpoint the web form and terminal client
// submit to.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/render"
)

const (
	maxBodyBytes     = 1 << 20
	defaultListLimit = 20
	maxListLimit     = 100
)

// Route patterns served by Handler.
const (
	RoutePlaceOrder = "POST /api/order"
	RouteListOrders = "GET /api/order"
	RouteGetOrder   = "GET /api/order/{id}"
)

var orderFields = []string{order.FieldFullName, order.FieldSize, order.FieldToppings}

// Handler validates, stores and acknowledges orders.
type Handler struct {
	store          Store
	contract       *Contract
	metrics        *Metrics
	catalog        order.Catalog
	logger         *log.Logger
	allowedOrigins []string
	now            func() time.Time
	newID          func() string
}

// New builds a handler with an in-memory store unless WithStore is given.
func New(ctx context.Context, options ...Option) (*Handler, error) {
	h := &Handler{
		catalog: order.DefaultCatalog(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	if h.store == nil {
		h.store = NewMemoryStore()
	}
	if h.metrics == nil {
		h.metrics = NewMetrics()
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard, "", 0)
	}
	if h.contract == nil {
		contract, err := LoadContract(ctx)
		if err != nil {
			return nil, err
		}
		h.contract = contract
	}
	return h, nil
}

// Metrics returns the collectors updated by the handler.
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// Routes returns the API mux wrapped in CORS and request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(RoutePlaceOrder, h.instrument("place_order", http.HandlerFunc(h.handlePlaceOrder)))
	mux.Handle(RouteListOrders, h.instrument("list_orders", http.HandlerFunc(h.handleListOrders)))
	mux.Handle(RouteGetOrder, h.instrument("get_order", http.HandlerFunc(h.handleGetOrder)))
	mux.HandleFunc("GET /healthz", HealthHandler)
	mux.Handle("GET /metrics", h.metrics.Handler())

	return RequestLogger(CORS(h.allowedOrigins, mux), h.logger)
}

type wireOrder struct {
	FullName string   `json:"full_name"`
	Size     string   `json:"size"`
	Toppings []string `json:"toppings"`
}

type receiptResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Data      wireOrder `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		h.metrics.countOrder(outcomeUnsupported)
		writeError(w, http.StatusUnsupportedMediaType, codeUnsupportedMediaType, "content type must be application/json")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.metrics.countOrder(outcomeMalformed)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeInvalidRequestBody, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if err := h.contract.ValidatePlaceOrder(r); err != nil {
		h.metrics.countOrder(outcomeMalformed)
		var cerr *ContractError
		if errors.As(err, &cerr) {
			mapped := render.MapErrorPayload(orderFields, cerr.Fields)
			writeFieldError(w, http.StatusBadRequest, codeInvalidRequestBody, contractMessage(mapped.Form), mapped.Fields)
			return
		}
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	var req wireOrder
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.metrics.countOrder(outcomeMalformed)
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	draft := order.Draft{FullName: req.FullName, Size: order.Size(req.Size), Toppings: req.Toppings}
	if fields := h.validate(draft); len(fields) > 0 {
		h.metrics.countOrder(outcomeInvalid)
		writeFieldError(w, http.StatusUnprocessableEntity, codeValidationFailed, "validation failed", fields)
		return
	}

	placed := order.Placed{
		ID:        h.newID(),
		Draft:     draft.Normalized(),
		CreatedAt: h.now().UTC(),
	}
	if err := h.store.Save(r.Context(), placed); err != nil {
		h.metrics.countOrder(outcomeStoreFailure)
		h.logger.Printf("orderapi: save order: %v", err)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	h.metrics.countOrder(outcomeAccepted)
	h.logger.Printf("orderapi: order accepted id=%s size=%s toppings=%d", placed.ID, placed.Draft.Size, len(placed.Draft.Toppings))
	writeJSON(w, http.StatusCreated, h.receipt(placed))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, codeOrderNotFound, "order not found")
		return
	}

	placed, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, codeOrderNotFound, "order not found")
			return
		}
		h.logger.Printf("orderapi: get order %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, h.receipt(placed))
}

type listResponse struct {
	Orders []receiptResponse `json:"orders"`
}

// handleListOrders serves the most recent orders, newest first. The limit
// query parameter is clamped to maxListLimit.
func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	lister, ok := h.store.(Lister)
	if !ok {
		writeError(w, http.StatusNotImplemented, codeNotImplemented, "order listing is not supported")
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeFieldError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid limit", map[string][]string{
				"limit": {"limit must be a positive integer"},
			})
			return
		}
		limit = min(n, maxListLimit)
	}

	placed, err := lister.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Printf("orderapi: list orders: %v", err)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	resp := listResponse{Orders: make([]receiptResponse, 0, len(placed))}
	for _, p := range placed {
		resp.Orders = append(resp.Orders, h.receipt(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// validate applies the domain rules plus catalog membership.
func (h *Handler) validate(draft order.Draft) map[string][]string {
	fields := order.Validate(draft).Messages()
	unknown := h.catalog.Unknown(draft.Toppings)
	if len(unknown) == 0 {
		return fields
	}
	if fields == nil {
		fields = map[string][]string{}
	}
	for _, id := range unknown {
		fields[order.FieldToppings] = append(fields[order.FieldToppings], fmt.Sprintf("Unknown topping %q", id))
	}
	return fields
}

func (h *Handler) receipt(placed order.Placed) receiptResponse {
	confirmation := order.NewConfirmation(placed.Draft, h.catalog, order.Receipt{ID: placed.ID})
	toppings := placed.Draft.Toppings
	if toppings == nil {
		toppings = []string{}
	}
	return receiptResponse{
		ID:      placed.ID,
		Message: confirmation.Message(),
		Data: wireOrder{
			FullName: placed.Draft.FullName,
			Size:     string(placed.Draft.Size),
			Toppings: toppings,
		},
		CreatedAt: placed.CreatedAt,
	}
}

func (h *Handler) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := h.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := float64(h.now().Sub(start)) / float64(time.Millisecond)
		h.metrics.LatencyMS.WithLabelValues(route, strconv.Itoa(rec.status)).Observe(elapsed)
	})
}

func contractMessage(form []string) string {
	if len(form) == 0 {
		return "invalid request body"
	}
	msgs := append([]string(nil), form...)
	sort.Strings(msgs)
	return "invalid request body: " + strings.Join(msgs, "; ")
}
