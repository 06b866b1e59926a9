package domain

// GroupKind tells how a customization group collects choices.
type GroupKind string

const (
	// GroupRadio is a single required choice rendered as radio buttons.
	GroupRadio GroupKind = "radio"
	// GroupCheckbox allows any number of options to be picked together.
	GroupCheckbox GroupKind = "checkbox"
	// GroupSelect is a single choice picked from a dropdown list.
	GroupSelect GroupKind = "select"
)

// Multi reports whether the group holds a set of options rather than one value.
func (k GroupKind) Multi() bool {
	return k == GroupCheckbox
}

// Valid reports whether the kind is one of the known wire values.
func (k GroupKind) Valid() bool {
	switch k {
	case GroupRadio, GroupCheckbox, GroupSelect:
		return true
	}
	return false
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Available   bool    `json:"isAvailable"`
}

// CustomizationGroup is a named set of options attached to one menu item.
// Each option string may carry a surcharge suffix in the documented
// "<label> (+£<amount>)" grammar; pricing.ParseOption is the only reader
// of that format.
type CustomizationGroup struct {
	ID         string    `json:"id"`
	MenuItemID string    `json:"menuItemId"`
	Name       string    `json:"name"`
	Kind       GroupKind `json:"kind"`
	Options    []string  `json:"options"`
	Required   bool      `json:"isRequired"`
	// ExtraPrice is a legacy per-group surcharge column kept for older menu
	// rows; current menus encode surcharges inside the option strings.
	ExtraPrice float64 `json:"extraPrice"`
	Position   int     `json:"-"`
}
