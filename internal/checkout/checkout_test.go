package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flamegold-ordering/internal/cart"
	"flamegold-ordering/internal/domain"
)

type stubOrders struct {
	mu        sync.Mutex
	createID  string
	createErr error
	calls     int
	lastOrder domain.Order
	block     chan struct{}
}

func (s *stubOrders) Create(_ context.Context, order domain.Order) (string, error) {
	s.mu.Lock()
	s.calls++
	s.lastOrder = order
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	return s.createID, s.createErr
}

func validDraft() Draft {
	return Draft{
		Name:          "Jordan Price",
		Email:         "jordan@example.com",
		Phone:         "07123456789",
		OrderType:     domain.OrderCollection,
		PaymentMethod: domain.PaymentCash,
	}
}

func cartWithChicken(t *testing.T) *cart.Store {
	t.Helper()
	ctx := context.Background()
	store := cart.NewStore(ctx, cart.NewMemoryStorage(), "sess-1", nil)
	item := domain.MenuItem{ID: "item-1", Name: "Whole Grilled Chicken", Price: 14.99}
	customs := []domain.CartLineCustomization{{
		Name:       "Spice Level",
		Value:      domain.SingleValue("Hot (+£1.00)"),
		ExtraPrice: 1.00,
	}}
	if _, err := store.Add(ctx, item, 2, customs); err != nil {
		t.Fatalf("add: %v", err)
	}
	return store
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve.Fields
}

func TestValidatorAcceptsCollectionWithoutAddress(t *testing.T) {
	v := NewValidator()
	if err := v.Struct(validDraft()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatorDeliveryAddressRule(t *testing.T) {
	v := NewValidator()

	d := validDraft()
	d.OrderType = domain.OrderDelivery
	d.Address = "abc"
	d.Postcode = "BL1 1AA"
	if err := v.Struct(d); err == nil {
		t.Fatalf("expected short delivery address to be rejected")
	}

	d.Address = "5 Elm"
	if err := v.Struct(d); err != nil {
		t.Fatalf("expected 5-char address and postcode to pass, got %v", err)
	}
}

func TestValidatorFieldRules(t *testing.T) {
	v := NewValidator()

	d := validDraft()
	d.Name = "J"
	d.Email = "not-an-email"
	d.Phone = "123"
	err := v.Struct(d)
	if err == nil {
		t.Fatalf("expected validation failure")
	}

	d = validDraft()
	d.PaymentMethod = "bitcoin"
	if err := v.Struct(d); err == nil {
		t.Fatalf("expected unknown payment method to be rejected")
	}

	d = validDraft()
	d.OrderType = "drone_drop"
	if err := v.Struct(d); err == nil {
		t.Fatalf("expected unknown order type to be rejected")
	}
}

func TestQuoteByOrderType(t *testing.T) {
	store := cartWithChicken(t)
	agg := NewAggregator(store, &stubOrders{})

	subtotal, fee, total := agg.Quote(domain.OrderDelivery)
	if subtotal != 31.98 || fee != 2.50 || total != 31.98+2.50 {
		t.Fatalf("unexpected delivery quote: %v %v %v", subtotal, fee, total)
	}

	// Switching back to collection recomputes without touching lines.
	subtotal, fee, total = agg.Quote(domain.OrderCollection)
	if subtotal != 31.98 || fee != 0 || total != 31.98 {
		t.Fatalf("unexpected collection quote: %v %v %v", subtotal, fee, total)
	}
	if got := len(store.Lines()); got != 1 {
		t.Fatalf("quote must not mutate the cart, lines=%d", got)
	}
}

func TestSubmitValidationFailureLeavesEverything(t *testing.T) {
	store := cartWithChicken(t)
	orders := &stubOrders{createID: "abc"}
	agg := NewAggregator(store, orders)

	d := validDraft()
	d.OrderType = domain.OrderDelivery
	d.Address = "abc"
	_, err := agg.Submit(context.Background(), d)
	fields := fieldsOf(t, err)
	if _, ok := fields["address"]; !ok {
		t.Fatalf("expected address field error, got %v", fields)
	}
	if orders.calls != 0 {
		t.Fatalf("validation failure must not reach the order store")
	}
	if agg.State() != StateEditing {
		t.Fatalf("expected Editing after validation failure, got %s", agg.State())
	}
	if store.ItemCount() != 2 {
		t.Fatalf("cart must be untouched")
	}
}

func TestSubmitEmptyCartRejectedBeforeStore(t *testing.T) {
	empty := cart.NewStore(context.Background(), cart.NewMemoryStorage(), "sess-1", nil)
	orders := &stubOrders{createID: "abc"}
	agg := NewAggregator(empty, orders)

	_, err := agg.Submit(context.Background(), validDraft())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatalf("empty cart must not reach the order store")
	}
}

func TestSubmitSuccess(t *testing.T) {
	store := cartWithChicken(t)
	orders := &stubOrders{createID: "a1b2c3d4-e5f6-7890-abcd-ef0123456789"}
	agg := NewAggregator(store, orders)

	d := validDraft()
	d.SpecialInstructions = " ring the bell "
	res, err := agg.Submit(context.Background(), d)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if res.Reference != "A1B2C3D4" {
		t.Fatalf("expected reference A1B2C3D4, got %s", res.Reference)
	}
	if res.EstimatedTime != "25-35 mins" {
		t.Fatalf("unexpected estimate %s", res.EstimatedTime)
	}
	if res.Total != 31.98 {
		t.Fatalf("expected total 31.98, got %v", res.Total)
	}
	if agg.State() != StateComplete || agg.Reference() != "A1B2C3D4" {
		t.Fatalf("expected terminal Complete state")
	}
	if store.Subtotal() != 0 || store.ItemCount() != 0 {
		t.Fatalf("cart must be cleared on success")
	}

	order := orders.lastOrder
	if order.Type != domain.OrderCollection || order.DeliveryFee != 0 || order.Total != 31.98 {
		t.Fatalf("unexpected order payload: %+v", order)
	}
	if order.DeliveryAddress != nil || order.DeliveryPostcode != nil {
		t.Fatalf("collection orders carry no address")
	}
	if order.SpecialInstructions == nil || *order.SpecialInstructions != "ring the bell" {
		t.Fatalf("expected trimmed instructions, got %v", order.SpecialInstructions)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 || order.Items[0].TotalPrice != 31.98 {
		t.Fatalf("unexpected items snapshot: %+v", order.Items)
	}

	// Complete is terminal.
	if _, err := agg.Submit(context.Background(), validDraft()); !errors.Is(err, ErrCompleted) {
		t.Fatalf("expected ErrCompleted, got %v", err)
	}
}

func TestSubmitDeliveryOrderPayload(t *testing.T) {
	store := cartWithChicken(t)
	orders := &stubOrders{createID: "order-12345"}
	agg := NewAggregator(store, orders)

	d := validDraft()
	d.OrderType = domain.OrderDelivery
	d.Address = "5 Elm Street, Bolton"
	d.Postcode = "BL1 1AA"
	d.PaymentMethod = domain.PaymentCardOnDelivery

	res, err := agg.Submit(context.Background(), d)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.EstimatedTime != "45-60 mins" {
		t.Fatalf("unexpected estimate %s", res.EstimatedTime)
	}
	if res.Total != 31.98+2.50 {
		t.Fatalf("expected total with delivery fee, got %v", res.Total)
	}

	order := orders.lastOrder
	if order.DeliveryFee != 2.50 {
		t.Fatalf("expected delivery fee, got %v", order.DeliveryFee)
	}
	if order.DeliveryAddress == nil || *order.DeliveryAddress != "5 Elm Street, Bolton" {
		t.Fatalf("unexpected address: %v", order.DeliveryAddress)
	}
	if order.PaymentMethod != domain.PaymentCardOnDelivery {
		t.Fatalf("unexpected payment method %s", order.PaymentMethod)
	}
}

func TestSubmitStoreFailureKeepsCartAndDraft(t *testing.T) {
	store := cartWithChicken(t)
	orders := &stubOrders{createErr: errors.New("connection reset")}
	agg := NewAggregator(store, orders)

	_, err := agg.Submit(context.Background(), validDraft())
	if err == nil {
		t.Fatalf("expected submission failure")
	}
	if agg.State() != StateEditing {
		t.Fatalf("expected Editing after store failure, got %s", agg.State())
	}
	if store.ItemCount() != 2 {
		t.Fatalf("cart must survive a store failure")
	}

	// Resubmission after the failure is allowed and succeeds.
	orders.mu.Lock()
	orders.createErr = nil
	orders.createID = "retry-ok-1234"
	orders.mu.Unlock()
	res, err := agg.Submit(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.Reference != "RETRY-OK" {
		t.Fatalf("unexpected reference %s", res.Reference)
	}
}

func TestSubmitSingleFlight(t *testing.T) {
	store := cartWithChicken(t)
	orders := &stubOrders{createID: "abcd1234", block: make(chan struct{})}
	agg := NewAggregator(store, orders)

	done := make(chan error, 1)
	go func() {
		_, err := agg.Submit(context.Background(), validDraft())
		done <- err
	}()

	// Wait for the first submission to reach the order store.
	for {
		orders.mu.Lock()
		calls := orders.calls
		orders.mu.Unlock()
		if calls == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := agg.Submit(context.Background(), validDraft())
	if !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(orders.block)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if agg.State() != StateComplete {
		t.Fatalf("expected Complete, got %s", agg.State())
	}
}
