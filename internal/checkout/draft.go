// Package checkout validates order drafts, prices them with the
// order-type fee, and submits them to the order store.
package checkout

import (
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"flamegold-ordering/internal/domain"
)

// DeliveryFee is the flat fee added to delivery orders.
const DeliveryFee = 2.50

// Draft is the checkout form plus free-text notes. The cart itself is
// read from the session's store at submit time, not carried in the draft.
type Draft struct {
	Name                string               `json:"name" validate:"required,min=2"`
	Email               string               `json:"email" validate:"required,email"`
	Phone               string               `json:"phone" validate:"required,min=10"`
	OrderType           domain.OrderType     `json:"orderType" validate:"required,oneof=collection delivery"`
	Address             string               `json:"address"`
	Postcode            string               `json:"postcode"`
	PaymentMethod       domain.PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash card_on_delivery"`
	SpecialInstructions string               `json:"specialInstructions"`
}

// NewValidator returns a validator with the delivery address rule
// registered: address and postcode are only constrained when the order
// type is delivery, then both need at least 5 characters.
func NewValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(draftStructValidation, Draft{})
	return v
}

func draftStructValidation(sl validatorv10.StructLevel) {
	d := sl.Current().Interface().(Draft)
	if d.OrderType != domain.OrderDelivery {
		return
	}
	if len(strings.TrimSpace(d.Address)) < 5 {
		sl.ReportError(d.Address, "address", "Address", "delivery_address", "")
	}
	if len(strings.TrimSpace(d.Postcode)) < 5 {
		sl.ReportError(d.Postcode, "postcode", "Postcode", "delivery_postcode", "")
	}
}

// ValidationError carries per-field failures back to the form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func validationError(err error) *ValidationError {
	fields := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
	} else {
		fields["form"] = err.Error()
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "valid email required"
	case "min":
		return "too short"
	case "oneof":
		return "not a valid choice"
	case "delivery_address":
		return "address required for delivery"
	case "delivery_postcode":
		return "postcode required for delivery"
	default:
		return "invalid"
	}
}
