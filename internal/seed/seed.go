package seed

import (
	"context"
	"fmt"

	"flamegold-ordering/internal/domain"
	"flamegold-ordering/internal/repository/menu"
)

type groupSeed struct {
	Name     string
	Kind     domain.GroupKind
	Options  []string
	Required bool
}

type itemSeed struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Groups      []groupSeed
}

// Apply inserts the restaurant menu for manual testing. It is idempotent
// via ON CONFLICT upserts in the menu repository.
func Apply(ctx context.Context, repo menu.Writer) error {
	for _, it := range menuSeed {
		saved, err := repo.UpsertItem(ctx, domain.MenuItem{
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Category:    it.Category,
			ImageURL:    it.ImageURL,
			Available:   true,
		})
		if err != nil {
			return fmt.Errorf("upsert item %q: %w", it.Name, err)
		}
		for pos, g := range it.Groups {
			err := repo.UpsertGroup(ctx, domain.CustomizationGroup{
				MenuItemID: saved.ID,
				Name:       g.Name,
				Kind:       g.Kind,
				Options:    g.Options,
				Required:   g.Required,
				Position:   pos,
			})
			if err != nil {
				return fmt.Errorf("upsert group %q for %q: %w", g.Name, it.Name, err)
			}
		}
	}
	return nil
}

// Option surcharges ride inside the option strings using the documented
// "(+£<amount>)" suffix.
var menuSeed = []itemSeed{
	{
		Name:        "Whole Grilled Chicken",
		Description: "Flame-grilled over charcoal, basted in our house marinade",
		Price:       14.99,
		Category:    "Grill",
		Groups: []groupSeed{
			{
				Name:     "Spice Level",
				Kind:     domain.GroupRadio,
				Options:  []string{"Lemon & Herb", "Mild", "Hot (+£1.00)", "Extra Hot (+£1.00)"},
				Required: true,
			},
			{
				Name:    "Extra Sides",
				Kind:    domain.GroupCheckbox,
				Options: []string{"Coleslaw (+£2.50)", "Corn on the Cob (+£2.25)", "Peri Fries (+£2.95)", "Pitta"},
			},
		},
	},
	{
		Name:        "Half Grilled Chicken",
		Description: "Half bird, same fire",
		Price:       8.99,
		Category:    "Grill",
		Groups: []groupSeed{
			{
				Name:     "Spice Level",
				Kind:     domain.GroupRadio,
				Options:  []string{"Lemon & Herb", "Mild", "Hot (+£1.00)"},
				Required: true,
			},
		},
	},
	{
		Name:        "Flame Burger",
		Description: "Chargrilled chicken thigh, slaw, house sauce",
		Price:       9.49,
		Category:    "Burgers",
		Groups: []groupSeed{
			{
				Name:     "Spice Level",
				Kind:     domain.GroupRadio,
				Options:  []string{"Mild", "Hot (+£0.50)"},
				Required: true,
			},
			{
				Name:    "Add Ons",
				Kind:    domain.GroupCheckbox,
				Options: []string{"Cheese (+£1.00)", "Halloumi (+£1.50)", "Extra Patty (+£3.50)"},
			},
		},
	},
	{
		Name:     "Peri Fries",
		Price:    3.50,
		Category: "Sides",
		Groups: []groupSeed{
			{
				Name:    "Seasoning",
				Kind:    domain.GroupSelect,
				Options: []string{"Plain", "Peri Salt", "Extra Peri Salt (+£0.30)"},
			},
		},
	},
	{
		Name:     "Garlic Pitta",
		Price:    2.95,
		Category: "Sides",
	},
	{
		Name:     "House Lemonade",
		Price:    2.80,
		Category: "Drinks",
		Groups: []groupSeed{
			{
				Name:     "Size",
				Kind:     domain.GroupSelect,
				Options:  []string{"Regular", "Large (+£0.70)"},
				Required: true,
			},
		},
	},
}
