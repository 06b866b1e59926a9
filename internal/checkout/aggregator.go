package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	validatorv10 "github.com/go-playground/validator/v10"

	"flamegold-ordering/internal/domain"
)

// State is the checkout lifecycle for one session's draft.
type State string

const (
	// StateEditing accepts draft changes and submissions.
	StateEditing State = "editing"
	// StateSubmitting marks an in-flight order create; further submissions
	// are rejected until it resolves.
	StateSubmitting State = "submitting"
	// StateComplete is terminal; the order was stored and the cart cleared.
	StateComplete State = "complete"
)

var (
	// ErrSubmitInFlight rejects a second submission while one is pending.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrEmptyCart rejects submission before any order-store interaction.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCompleted rejects submissions after the checkout finished.
	ErrCompleted = errors.New("checkout already complete")
)

// Cart is the slice of the cart store the aggregator needs.
type Cart interface {
	Lines() []domain.CartLine
	Subtotal() float64
	Clear(ctx context.Context)
}

// OrderCreator is the external order store: one atomic create returning
// the stored order's identifier.
type OrderCreator interface {
	Create(ctx context.Context, order domain.Order) (string, error)
}

// Quote prices a subtotal for an order type without touching the cart.
func Quote(subtotal float64, orderType domain.OrderType) (fee, total float64) {
	if orderType == domain.OrderDelivery {
		fee = DeliveryFee
	}
	return fee, subtotal + fee
}

// EstimatedTime is the preparation estimate shown for an order type.
func EstimatedTime(orderType domain.OrderType) string {
	if orderType == domain.OrderCollection {
		return "25-35 mins"
	}
	return "45-60 mins"
}

// Result is what a successful submission hands back to the UI.
type Result struct {
	OrderID       string  `json:"orderId"`
	Reference     string  `json:"reference"`
	EstimatedTime string  `json:"estimatedTime"`
	Total         float64 `json:"total"`
}

// Aggregator runs one session's checkout. Editing → Submitting →
// {Complete | Editing}; Complete is terminal. A failed submission leaves
// the cart and draft untouched so the user can resubmit.
type Aggregator struct {
	cart     Cart
	orders   OrderCreator
	validate *validatorv10.Validate

	mu        sync.Mutex
	state     State
	reference string
}

func NewAggregator(cart Cart, orders OrderCreator) *Aggregator {
	return &Aggregator{
		cart:     cart,
		orders:   orders,
		validate: NewValidator(),
		state:    StateEditing,
	}
}

func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Reference is the confirmation code of a completed checkout.
func (a *Aggregator) Reference() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reference
}

// Quote prices the live cart for an order type; read-only.
func (a *Aggregator) Quote(orderType domain.OrderType) (subtotal, fee, total float64) {
	subtotal = a.cart.Subtotal()
	fee, total = Quote(subtotal, orderType)
	return subtotal, fee, total
}

// Submit validates the draft and sends the order to the store. Exactly
// one submission can be in flight; the empty-cart check runs before any
// store call. On success the cart is cleared and the aggregator is
// Complete; on any failure everything is left as it was.
func (a *Aggregator) Submit(ctx context.Context, draft Draft) (*Result, error) {
	if err := a.begin(draft); err != nil {
		return nil, err
	}

	order := buildOrder(draft, a.cart.Lines(), a.cart.Subtotal())

	id, err := a.orders.Create(ctx, order)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = StateEditing
		return nil, fmt.Errorf("create order: %w", err)
	}

	a.cart.Clear(ctx)
	a.state = StateComplete
	a.reference = confirmationReference(id)

	return &Result{
		OrderID:       id,
		Reference:     a.reference,
		EstimatedTime: order.EstimatedTime,
		Total:         order.Total,
	}, nil
}

// begin runs the pre-flight checks and flips the in-flight flag; the
// order-store call happens outside the lock so a concurrent submission is
// rejected instead of queued.
func (a *Aggregator) begin(draft Draft) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateComplete:
		return ErrCompleted
	}

	if err := a.validate.Struct(draft); err != nil {
		return validationError(err)
	}
	if len(a.cart.Lines()) == 0 {
		return ErrEmptyCart
	}

	a.state = StateSubmitting
	return nil
}

// buildOrder freezes the draft and cart into the payload the order store
// receives. Address fields stay nil for collection orders.
func buildOrder(draft Draft, lines []domain.CartLine, subtotal float64) domain.Order {
	fee, total := Quote(subtotal, draft.OrderType)

	items := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderLine{
			MenuItemID:     l.MenuItemID,
			Name:           l.Name,
			Price:          l.Price,
			Quantity:       l.Quantity,
			Customizations: l.Customizations,
			TotalPrice:     l.TotalPrice,
		})
	}

	order := domain.Order{
		CustomerName:  strings.TrimSpace(draft.Name),
		CustomerEmail: strings.TrimSpace(draft.Email),
		CustomerPhone: strings.TrimSpace(draft.Phone),
		Type:          draft.OrderType,
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		Total:         total,
		PaymentMethod: draft.PaymentMethod,
		EstimatedTime: EstimatedTime(draft.OrderType),
	}
	if draft.OrderType == domain.OrderDelivery {
		address := strings.TrimSpace(draft.Address)
		postcode := strings.TrimSpace(draft.Postcode)
		order.DeliveryAddress = &address
		order.DeliveryPostcode = &postcode
	}
	if notes := strings.TrimSpace(draft.SpecialInstructions); notes != "" {
		order.SpecialInstructions = &notes
	}
	return order
}

// confirmationReference shortens a stored order id to the code shown to
// the customer.
func confirmationReference(orderID string) string {
	ref := orderID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return strings.ToUpper(ref)
}
