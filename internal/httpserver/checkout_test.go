package httpserver

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"flamegold-ordering/internal/checkout"
	"flamegold-ordering/internal/domain"
)

func validDraft() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Ada Lovelace",
		"email":         "ada@example.com",
		"phone":         "07700900123",
		"orderType":     "collection",
		"paymentMethod": "cash",
	}
}

func TestCheckoutQuote(t *testing.T) {
	router, _ := newTestServer(t, testMenu())
	sid := uuid.NewString()

	rec := doJSON(t, router, http.MethodPost, "/api/cart/lines", sid,
		map[string]interface{}{"menuItemId": "item-2", "quantity": 2}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add line: expected 201, got %d", rec.Code)
	}

	var quote quoteResponse
	rec = doJSON(t, router, http.MethodPost, "/api/checkout/quote", sid,
		map[string]string{"orderType": "delivery"}, &quote)
	if rec.Code != http.StatusOK {
		t.Fatalf("quote: expected 200, got %d", rec.Code)
	}
	if math.Abs(quote.Subtotal-2.95*2) > 1e-9 {
		t.Fatalf("expected subtotal %.2f, got %v", 2.95*2, quote.Subtotal)
	}
	if quote.DeliveryFee != checkout.DeliveryFee {
		t.Fatalf("expected delivery fee %.2f, got %v", checkout.DeliveryFee, quote.DeliveryFee)
	}
	if math.Abs(quote.Total-(2.95*2+checkout.DeliveryFee)) > 1e-9 {
		t.Fatalf("unexpected total %v", quote.Total)
	}
	if quote.EstimatedTime != "45-60 mins" {
		t.Fatalf("expected delivery estimate, got %q", quote.EstimatedTime)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/checkout/quote", sid,
		map[string]string{"orderType": "collection"}, &quote)
	if rec.Code != http.StatusOK {
		t.Fatalf("quote: expected 200, got %d", rec.Code)
	}
	if quote.DeliveryFee != 0 || quote.EstimatedTime != "25-35 mins" {
		t.Fatalf("unexpected collection quote: %+v", quote)
	}
}

func TestCheckoutQuote_BadOrderType(t *testing.T) {
	router, _ := newTestServer(t, testMenu())
	sid := uuid.NewString()

	rec := doJSON(t, router, http.MethodPost, "/api/checkout/quote", sid,
		map[string]string{"orderType": "teleport"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown order type, got %d", rec.Code)
	}
}

func TestCheckoutSubmit_Success(t *testing.T) {
	router, orders := newTestServer(t, testMenu())
	sid := uuid.NewString()

	rec := doJSON(t, router, http.MethodPost, "/api/cart/lines", sid,
		map[string]interface{}{"menuItemId": "item-2", "quantity": 2}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add line: expected 201, got %d", rec.Code)
	}

	var result checkout.Result
	rec = doJSON(t, router, http.MethodPost, "/api/checkout", sid, validDraft(), &result)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if result.Reference != "A1B2C3D4" {
		t.Fatalf("expected reference A1B2C3D4, got %q", result.Reference)
	}
	if result.EstimatedTime != "25-35 mins" {
		t.Fatalf("unexpected estimate %q", result.EstimatedTime)
	}
	if len(orders.created) != 1 {
		t.Fatalf("expected one stored order, got %d", len(orders.created))
	}
	stored := orders.created[0]
	if stored.Type != domain.OrderCollection || stored.DeliveryAddress != nil {
		t.Fatalf("unexpected stored order: %+v", stored)
	}

	// Success clears the cart and resets the session for the next order.
	var view cartResponse
	doJSON(t, router, http.MethodGet, "/api/cart", sid, nil, &view)
	if len(view.Lines) != 0 {
		t.Fatalf("expected cart to be cleared after checkout, got %d lines", len(view.Lines))
	}

	rec = doJSON(t, router, http.MethodPost, "/api/cart/lines", sid,
		map[string]interface{}{"menuItemId": "item-2", "quantity": 1}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected a fresh order to start after completion, got %d", rec.Code)
	}
}

func TestCheckoutSubmit_ValidationFailure(t *testing.T) {
	router, orders := newTestServer(t, testMenu())
	sid := uuid.NewString()

	rec := doJSON(t, router, http.MethodPost, "/api/cart/lines", sid,
		map[string]interface{}{"menuItemId": "item-2", "quantity": 1}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add line: expected 201, got %d", rec.Code)
	}

	draft := validDraft()
	draft["orderType"] = "delivery" // no address or postcode
	rec = doJSON(t, router, http.MethodPost, "/api/checkout", sid, draft, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Fields["address"] == "" || resp.Fields["postcode"] == "" {
		t.Fatalf("expected address and postcode failures, got %v", resp.Fields)
	}
	if len(orders.created) != 0 {
		t.Fatalf("expected no store call on validation failure")
	}

	var view cartResponse
	doJSON(t, router, http.MethodGet, "/api/cart", sid, nil, &view)
	if len(view.Lines) != 1 {
		t.Fatalf("expected cart to survive validation failure, got %d lines", len(view.Lines))
	}
}

func TestCheckoutSubmit_EmptyCart(t *testing.T) {
	router, orders := newTestServer(t, testMenu())
	sid := uuid.NewString()

	rec := doJSON(t, router, http.MethodPost, "/api/checkout", sid, validDraft(), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for empty cart, got %d", rec.Code)
	}
	if len(orders.created) != 0 {
		t.Fatalf("expected no store call for an empty cart")
	}
}

func TestCheckoutSubmit_StoreFailure(t *testing.T) {
	router, orders := newTestServer(t, testMenu())
	orders.err = errors.New("connection refused")
	sid := uuid.NewString()

	rec := doJSON(t, router, http.MethodPost, "/api/cart/lines", sid,
		map[string]interface{}{"menuItemId": "item-2", "quantity": 1}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add line: expected 201, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/checkout", sid, validDraft(), nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on store failure, got %d", rec.Code)
	}

	// The cart survives and a retry succeeds once the store recovers.
	orders.err = nil
	var result checkout.Result
	rec = doJSON(t, router, http.MethodPost, "/api/checkout", sid, validDraft(), &result)
	if rec.Code != http.StatusCreated {
		t.Fatalf("retry: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(orders.created) != 1 {
		t.Fatalf("expected exactly one stored order after retry, got %d", len(orders.created))
	}
}
