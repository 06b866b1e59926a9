package domain

import "encoding/json"

// SelectionValue is the chosen value(s) for one customization group: a
// single option string for radio/select groups, a list for checkbox
// groups. Exactly one side is set; the group's kind decides which. On
// the wire it is a bare string or a string array, never an object.
type SelectionValue struct {
	Choice  string
	Choices []string
}

func (v SelectionValue) MarshalJSON() ([]byte, error) {
	if len(v.Choices) > 0 {
		return json.Marshal(v.Choices)
	}
	return json.Marshal(v.Choice)
}

func (v *SelectionValue) UnmarshalJSON(data []byte) error {
	*v = SelectionValue{}
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &v.Choices)
	}
	return json.Unmarshal(data, &v.Choice)
}

func SingleValue(v string) SelectionValue {
	return SelectionValue{Choice: v}
}

func MultiValue(vs []string) SelectionValue {
	return SelectionValue{Choices: vs}
}

// CartLineCustomization is the snapshot of one group's choice taken at
// add-to-cart time. It never changes afterwards, even if the menu does.
type CartLineCustomization struct {
	Name       string         `json:"name"`
	Value      SelectionValue `json:"value"`
	ExtraPrice float64        `json:"extraPrice"`
}

// CartLine is one priced, quantity-bearing entry in a cart. Price is the
// item's base unit price captured at add time; TotalPrice covers the full
// quantity including customization surcharges.
type CartLine struct {
	ID             string                  `json:"id"`
	MenuItemID     string                  `json:"menuItemId"`
	Name           string                  `json:"name"`
	Price          float64                 `json:"price"`
	Quantity       int                     `json:"quantity"`
	Customizations []CartLineCustomization `json:"customizations,omitempty"`
	TotalPrice     float64                 `json:"totalPrice"`
	ImageURL       string                  `json:"imageUrl,omitempty"`
}
