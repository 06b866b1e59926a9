package menu

import (
	"context"

	"flamegold-ordering/internal/domain"
)

// Repository reads menu content and, for the importer, writes it.
type Repository interface {
	// ListAvailable returns orderable menu items ordered by category.
	ListAvailable(ctx context.Context) ([]domain.MenuItem, error)
	// GetItem returns one menu item regardless of availability.
	GetItem(ctx context.Context, id string) (*domain.MenuItem, error)
	// GroupsByItem returns every customization group keyed by menu item id.
	GroupsByItem(ctx context.Context) (map[string][]domain.CustomizationGroup, error)
	// GroupsForItem returns one item's customization groups in display order.
	GroupsForItem(ctx context.Context, itemID string) ([]domain.CustomizationGroup, error)
}

// Writer is the menu-management side used by the importer and seeder.
type Writer interface {
	UpsertItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	UpsertGroup(ctx context.Context, group domain.CustomizationGroup) error
}
