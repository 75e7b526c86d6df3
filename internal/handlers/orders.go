package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kimphuquy/silvershop/internal/invoice"
	"github.com/kimphuquy/silvershop/internal/models"
	"github.com/kimphuquy/silvershop/internal/orders"
)

// listOrders returns all orders, newest first
func (r *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	list, err := r.orders.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// createOrder places a new order from the checkout payload
func (r *Router) createOrder(w http.ResponseWriter, req *http.Request) {
	var input orders.CreateOrderInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	order, err := r.orders.Create(input)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// getOrder returns a single order
func (r *Router) getOrder(w http.ResponseWriter, req *http.Request) {
	order, err := r.orders.Get(mux.Vars(req)["id"])
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// updateOrderStatus moves an order through its lifecycle
func (r *Router) updateOrderStatus(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Status == "" {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	order, err := r.orders.UpdateStatus(mux.Vars(req)["id"], body.Status)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Order not found")
			return
		}
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// completeOrder records the hand-off: status to confirmed, completion time
// stamped, counter-verified contact details stored
func (r *Router) completeOrder(w http.ResponseWriter, req *http.Request) {
	var customer models.CustomerInfo
	if err := json.NewDecoder(req.Body).Decode(&customer); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	order, err := r.orders.Complete(mux.Vars(req)["id"], customer)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Order not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// deleteOrder removes an order
func (r *Router) deleteOrder(w http.ResponseWriter, req *http.Request) {
	if err := r.orders.Delete(mux.Vars(req)["id"]); err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// getOrderInvoice renders the order as a PDF invoice
func (r *Router) getOrderInvoice(w http.ResponseWriter, req *http.Request) {
	order, err := r.orders.Get(mux.Vars(req)["id"])
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	items, err := orders.ItemsOf(order)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Order payload is corrupt")
		return
	}
	customer, err := orders.CustomerOf(order)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Order payload is corrupt")
		return
	}

	pdfBytes, err := invoice.GenerateOrderPDF(order, items, customer)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", order.ID))
	w.Write(pdfBytes)
}
