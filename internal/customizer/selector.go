// Package customizer holds the in-progress choices for one menu item
// before it becomes a cart line.
package customizer

import (
	"errors"
	"fmt"
	"strings"

	"flamegold-ordering/internal/domain"
	"flamegold-ordering/internal/pricing"
)

var (
	// ErrIncomplete is returned by Commit while a required group has no choice.
	ErrIncomplete = errors.New("required choices missing")
	// ErrUnknownGroup is returned when a choice targets a group the item does not have.
	ErrUnknownGroup = errors.New("unknown customization group")
)

// Selector is one open customization session: a menu item, its groups,
// the user's choices so far and the chosen quantity. It is discarded on
// cancel or after a successful Commit; nothing here survives the session.
type Selector struct {
	item   domain.MenuItem
	groups []domain.CustomizationGroup
	byID   map[string]domain.CustomizationGroup

	single       map[string]string
	multi        map[string]map[string]bool
	instructions string
	quantity     int
}

// New opens a selector for item with its customization groups. Quantity
// starts at 1.
func New(item domain.MenuItem, groups []domain.CustomizationGroup) *Selector {
	byID := make(map[string]domain.CustomizationGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}
	return &Selector{
		item:     item,
		groups:   groups,
		byID:     byID,
		single:   map[string]string{},
		multi:    map[string]map[string]bool{},
		quantity: 1,
	}
}

// Choose sets the value for a radio or select group, replacing any prior
// choice. It rejects checkbox groups; those are toggled option by option.
func (s *Selector) Choose(groupID, value string) error {
	group, ok := s.byID[groupID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}
	if group.Kind.Multi() {
		return fmt.Errorf("group %q takes toggled options, not a single choice", group.Name)
	}
	s.single[groupID] = value
	return nil
}

// Toggle adds or removes one option in a checkbox group without touching
// other groups.
func (s *Selector) Toggle(groupID, option string, included bool) error {
	group, ok := s.byID[groupID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}
	if !group.Kind.Multi() {
		return fmt.Errorf("group %q takes a single choice, not toggled options", group.Name)
	}
	set := s.multi[groupID]
	if set == nil {
		set = map[string]bool{}
		s.multi[groupID] = set
	}
	if included {
		set[option] = true
	} else {
		delete(set, option)
	}
	return nil
}

// SetInstructions records free-text special instructions. Whitespace-only
// text counts as no instructions.
func (s *Selector) SetInstructions(text string) {
	s.instructions = strings.TrimSpace(text)
}

// SetQuantity sets the quantity, never below 1.
func (s *Selector) SetQuantity(q int) {
	if q < 1 {
		q = 1
	}
	s.quantity = q
}

func (s *Selector) IncrementQuantity() {
	s.quantity++
}

// DecrementQuantity lowers the quantity but never below 1.
func (s *Selector) DecrementQuantity() {
	if s.quantity > 1 {
		s.quantity--
	}
}

func (s *Selector) Quantity() int {
	return s.quantity
}

// ExtraPrice sums the surcharges of every chosen option across all groups.
func (s *Selector) ExtraPrice() float64 {
	var extra float64
	for _, g := range s.groups {
		extra += pricing.OptionsTotal(s.chosen(g))
	}
	return extra
}

// UnitPrice is the live per-unit price for the current choices.
func (s *Selector) UnitPrice() float64 {
	return s.item.Price + s.ExtraPrice()
}

// TotalPrice is the live price for the chosen quantity.
func (s *Selector) TotalPrice() float64 {
	return s.UnitPrice() * float64(s.quantity)
}

// IsComplete reports whether every required group has a non-empty choice.
// Optional groups never block completion; there is no other validation.
func (s *Selector) IsComplete() bool {
	for _, g := range s.groups {
		if g.Required && len(s.chosen(g)) == 0 {
			return false
		}
	}
	return true
}

// Missing lists the required group names still without a choice.
func (s *Selector) Missing() []string {
	var names []string
	for _, g := range s.groups {
		if g.Required && len(s.chosen(g)) == 0 {
			names = append(names, g.Name)
		}
	}
	return names
}

// Commit freezes the current choices into cart line customizations: one
// entry per group with a non-empty choice, carrying that group's summed
// surcharge, plus a zero-surcharge "Special Instructions" entry when text
// was set. It fails with ErrIncomplete while IsComplete is false.
func (s *Selector) Commit() ([]domain.CartLineCustomization, error) {
	if !s.IsComplete() {
		return nil, ErrIncomplete
	}

	var out []domain.CartLineCustomization
	for _, g := range s.groups {
		chosen := s.chosen(g)
		if len(chosen) == 0 {
			continue
		}
		value := domain.SingleValue(chosen[0])
		if g.Kind.Multi() {
			value = domain.MultiValue(chosen)
		}
		out = append(out, domain.CartLineCustomization{
			Name:       g.Name,
			Value:      value,
			ExtraPrice: pricing.OptionsTotal(chosen),
		})
	}

	if s.instructions != "" {
		out = append(out, domain.CartLineCustomization{
			Name:  "Special Instructions",
			Value: domain.SingleValue(s.instructions),
		})
	}
	return out, nil
}

// chosen returns the chosen option strings for one group. Checkbox
// choices come back in the group's option order so commits are stable.
func (s *Selector) chosen(g domain.CustomizationGroup) []string {
	if g.Kind.Multi() {
		set := s.multi[g.ID]
		if len(set) == 0 {
			return nil
		}
		var chosen []string
		for _, opt := range g.Options {
			if set[opt] {
				chosen = append(chosen, opt)
			}
		}
		return chosen
	}
	if v := s.single[g.ID]; v != "" {
		return []string{v}
	}
	return nil
}
