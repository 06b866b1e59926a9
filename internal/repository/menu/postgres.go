package menu

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flamegold-ordering/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// NewPostgresWriter exposes the menu-management side for the seeder and
// importer. It shares the implementation with NewPostgres.
func NewPostgresWriter(pool *pgxpool.Pool, logger *log.Logger) Writer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), price, category, COALESCE(image_url, ''), is_available
FROM menu_items
WHERE is_available
ORDER BY category, name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("menu repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var it domain.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Category, &it.ImageURL, &it.Available); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("menu repo: list rows error=%v", err)
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) GetItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), price, category, COALESCE(image_url, ''), is_available
FROM menu_items
WHERE id = $1
`
	var it domain.MenuItem
	err := r.pool.QueryRow(ctx, q, id).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Category, &it.ImageURL, &it.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("menu repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &it, nil
}

func (r *postgresRepo) GroupsByItem(ctx context.Context) (map[string][]domain.CustomizationGroup, error) {
	const q = `
SELECT id::text, menu_item_id::text, name, kind, options, is_required, extra_price, position
FROM customization_groups
ORDER BY menu_item_id, position, name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("menu repo: groups error=%v", err)
		return nil, err
	}
	defer rows.Close()

	out := map[string][]domain.CustomizationGroup{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		out[g.MenuItemID] = append(out[g.MenuItemID], g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GroupsForItem(ctx context.Context, itemID string) ([]domain.CustomizationGroup, error) {
	const q = `
SELECT id::text, menu_item_id::text, name, kind, options, is_required, extra_price, position
FROM customization_groups
WHERE menu_item_id = $1
ORDER BY position, name
`
	rows, err := r.pool.Query(ctx, q, itemID)
	if err != nil {
		r.logger.Printf("menu repo: groups item=%s error=%v", itemID, err)
		return nil, err
	}
	defer rows.Close()

	var groups []domain.CustomizationGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *postgresRepo) UpsertItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	const q = `
INSERT INTO menu_items (name, description, price, category, image_url, is_available)
VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6)
ON CONFLICT (name) DO UPDATE
SET description = EXCLUDED.description,
    price = EXCLUDED.price,
    category = EXCLUDED.category,
    image_url = EXCLUDED.image_url,
    is_available = EXCLUDED.is_available
RETURNING id::text
`
	out := item
	err := r.pool.QueryRow(ctx, q, item.Name, item.Description, item.Price, item.Category, item.ImageURL, item.Available).Scan(&out.ID)
	if err != nil {
		r.logger.Printf("menu repo: upsert item name=%q error=%v", item.Name, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) UpsertGroup(ctx context.Context, group domain.CustomizationGroup) error {
	const q = `
INSERT INTO customization_groups (menu_item_id, name, kind, options, is_required, extra_price, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (menu_item_id, name) DO UPDATE
SET kind = EXCLUDED.kind,
    options = EXCLUDED.options,
    is_required = EXCLUDED.is_required,
    extra_price = EXCLUDED.extra_price,
    position = EXCLUDED.position
`
	_, err := r.pool.Exec(ctx, q, group.MenuItemID, group.Name, string(group.Kind), group.Options, group.Required, group.ExtraPrice, group.Position)
	if err != nil {
		r.logger.Printf("menu repo: upsert group item=%s name=%q error=%v", group.MenuItemID, group.Name, err)
	}
	return err
}

func scanGroup(rows pgx.Rows) (domain.CustomizationGroup, error) {
	var g domain.CustomizationGroup
	var kind string
	if err := rows.Scan(&g.ID, &g.MenuItemID, &g.Name, &kind, &g.Options, &g.Required, &g.ExtraPrice, &g.Position); err != nil {
		return domain.CustomizationGroup{}, err
	}
	g.Kind = domain.GroupKind(kind)
	return g, nil
}
