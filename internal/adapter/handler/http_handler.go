package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stockd/inventory-ledger/internal/core/domain"
	"github.com/stockd/inventory-ledger/internal/core/service"
)

type HTTPHandler struct {
	ledger *service.Ledger
}

type OrderRequest struct {
	ItemName string `json:"item_name"`
	Number   int    `json:"number"`
}

type RestockRequest struct {
	ItemName string `json:"item_name"`
	Number   int    `json:"number"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ItemResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func NewHTTPHandler(ledger *service.Ledger) *HTTPHandler {
	return &HTTPHandler{ledger: ledger}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.RecordOrder)
	mux.HandleFunc("POST /api/restock", h.Restock)
	mux.HandleFunc("GET /api/items/{name}", h.GetItem)
	mux.HandleFunc("GET /api/items/{name}/history", h.History)
	mux.HandleFunc("GET /api/stats", h.Stats)
	mux.HandleFunc("GET /health", h.HealthCheck)
}

func (h *HTTPHandler) RecordOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if req.ItemName == "" {
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "missing item name",
		})
		return
	}

	order := domain.Order{
		ID:       uuid.NewString(),
		ItemName: req.ItemName,
		Number:   req.Number,
		PlacedAt: time.Now(),
	}

	if err := h.ledger.RecordOrder(r.Context(), order); err != nil {
		status := http.StatusInternalServerError
		message := "internal error"

		switch {
		case errors.Is(err, domain.ErrInvalidOrderQuantity):
			status = http.StatusBadRequest
			message = "order quantity must be positive"
		case errors.Is(err, domain.ErrItemNotFound):
			status = http.StatusNotFound
			message = "unknown item"
		case errors.Is(err, domain.ErrInsufficientStock):
			status = http.StatusConflict
			message = "insufficient stock"
		}

		writeJSON(w, status, StatusResponse{Success: false, Message: message})
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: "order applied",
	})
}

func (h *HTTPHandler) Restock(w http.ResponseWriter, r *http.Request) {
	var req RestockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if req.ItemName == "" {
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "missing item name",
		})
		return
	}

	if err := h.ledger.Restock(r.Context(), req.ItemName, req.Number); err != nil {
		if errors.Is(err, domain.ErrInvalidRestockQuantity) {
			writeJSON(w, http.StatusBadRequest, StatusResponse{
				Success: false,
				Message: "restock quantity must be positive",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, StatusResponse{
			Success: false,
			Message: "internal error",
		})
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: "restock applied",
	})
}

func (h *HTTPHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	item, err := h.ledger.GetItem(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			writeJSON(w, http.StatusNotFound, StatusResponse{
				Success: false,
				Message: "unknown item",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, StatusResponse{
			Success: false,
			Message: "internal error",
		})
		return
	}

	writeJSON(w, http.StatusOK, ItemResponse{Name: item.Name, Quantity: item.Quantity})
}

func (h *HTTPHandler) History(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	history, err := h.ledger.History(r.Context(), name, 100)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, StatusResponse{
			Success: false,
			Message: "internal error",
		})
		return
	}

	writeJSON(w, http.StatusOK, history)
}

func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ledger.Stats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, StatusResponse{
			Success: false,
			Message: "internal error",
		})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
