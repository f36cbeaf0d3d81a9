package orders

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/der-stern/stern-erp/internal/platform/httpx"
	"github.com/der-stern/stern-erp/internal/sales/export"
	"github.com/der-stern/stern-erp/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	exporter  *export.OrderPDFExporter
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, exporter *export.OrderPDFExporter) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		exporter:  exporter,
		validator: validator.New(),
	}
}

type listResponse struct {
	Orders     []Order           `json:"orders"`
	Pagination shared.Pagination `json:"pagination"`
}

type orderResponse struct {
	Order    *Order   `json:"order"`
	Warnings []string `json:"warnings,omitempty"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	req := ListOrdersRequest{Limit: limit, Offset: (page - 1) * limit}
	if status := r.URL.Query().Get("status"); status != "" {
		s := OrderStatus(status)
		req.Status = &s
	}
	if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
		req.CustomerID = &customerID
	}
	if from := r.URL.Query().Get("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "date_from must be YYYY-MM-DD")
			return
		}
		req.DateFrom = &t
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "date_to must be YYYY-MM-DD")
			return
		}
		req.DateTo = &t
	}

	items, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list orders failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, listResponse{
		Orders:     items,
		Pagination: shared.NewPagination(page, limit, total),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderResponse{Order: order})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, warnings, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create order failed", slog.Any("error", err), slog.String("customer_id", req.CustomerID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, orderResponse{Order: order, Warnings: warnings})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, warnings, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderResponse{Order: order, Warnings: warnings})
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderResponse{Order: order})
}

func (h *Handler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req PaymentStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.SetPaymentStatus(r.Context(), chi.URLParam(r, "id"), req.PaymentStatus)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderResponse{Order: order})
}

func (h *Handler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.RefreshItemPricing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderResponse{Order: order})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	data, err := h.exporter.Render(r.Context(), toDocument(order))
	if err != nil {
		h.logger.Error("order pdf export failed", slog.Any("error", err), slog.String("order_id", id))
		httpx.Problem(w, http.StatusBadGateway, "Export Failed", "pdf rendering is unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "order-"+id+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func toDocument(o *Order) export.OrderDocument {
	doc := export.OrderDocument{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		OrderDate:       o.OrderDate,
		DeliveryDate:    o.DeliveryDate,
		ShippingAddress: o.ShippingAddress,
		TotalAmount:     o.TotalAmount,
	}
	if o.Notes != nil {
		doc.Notes = *o.Notes
	}
	for _, item := range o.Items {
		doc.Items = append(doc.Items, export.OrderLine{
			ArtikelNr:   item.ArtikelNr,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			VKPrice:     item.VKPrice,
			Total:       item.Total,
		})
	}
	return doc
}
