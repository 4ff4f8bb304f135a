package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/ports"
)

// ShoppingRepositoryImpl implements the ShoppingRepository interface with an
// in-memory store.
type ShoppingRepositoryImpl struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entities.ShoppingItem
}

// NewShoppingRepository creates a new in-memory shopping repository
func NewShoppingRepository() ports.ShoppingRepository {
	return &ShoppingRepositoryImpl{items: make(map[uuid.UUID]entities.ShoppingItem)}
}

func (r *ShoppingRepositoryImpl) Create(ctx context.Context, item *entities.ShoppingItem) error {
	if !item.RepeatOption.IsValid() {
		return entities.ErrInvalidRepeatOption
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	now := time.Now()
	if item.DateAdded.IsZero() {
		item.DateAdded = now
	}
	item.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = cloneItem(*item)
	return nil
}

func (r *ShoppingRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.ShoppingItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, entities.ErrShoppingItemNotFound
	}
	out := cloneItem(item)
	return &out, nil
}

func (r *ShoppingRepositoryImpl) Update(ctx context.Context, item *entities.ShoppingItem) error {
	if !item.RepeatOption.IsValid() {
		return entities.ErrInvalidRepeatOption
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return entities.ErrShoppingItemNotFound
	}
	item.DateAdded = existing.DateAdded
	item.UpdatedAt = time.Now()
	r.items[item.ID] = cloneItem(*item)
	return nil
}

func (r *ShoppingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return entities.ErrShoppingItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ShoppingRepositoryImpl) List(ctx context.Context, filter ports.ShoppingFilter) ([]*entities.ShoppingItem, error) {
	r.mu.RLock()
	var matched []*entities.ShoppingItem
	for _, item := range r.items {
		if !matchesShoppingFilter(&item, filter) {
			continue
		}
		clone := cloneItem(item)
		matched = append(matched, &clone)
	}
	r.mu.RUnlock()

	sortItems(matched, filter.SortBy)

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Count returns the number of items matching the filter, ignoring pagination.
func (r *ShoppingRepositoryImpl) Count(ctx context.Context, filter ports.ShoppingFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if matchesShoppingFilter(&item, filter) {
			count++
		}
	}
	return count, nil
}

// Categories returns the distinct categories in use, sorted.
func (r *ShoppingRepositoryImpl) Categories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for _, item := range r.items {
		if item.Category != "" {
			seen[item.Category] = true
		}
	}
	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)
	return out, nil
}

// ReplaceAll swaps the full contents of the store, used by the seed loader.
func (r *ShoppingRepositoryImpl) ReplaceAll(ctx context.Context, items []*entities.ShoppingItem) error {
	next := make(map[uuid.UUID]entities.ShoppingItem, len(items))
	now := time.Now()
	for _, item := range items {
		if !item.RepeatOption.IsValid() {
			return entities.ErrInvalidRepeatOption
		}
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		clone := cloneItem(*item)
		if clone.DateAdded.IsZero() {
			clone.DateAdded = now
		}
		if clone.UpdatedAt.IsZero() {
			clone.UpdatedAt = now
		}
		next[clone.ID] = clone
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = next
	return nil
}

func matchesShoppingFilter(item *entities.ShoppingItem, filter ports.ShoppingFilter) bool {
	switch filter.Mode {
	case ports.ShoppingModePending:
		if item.Completed {
			return false
		}
	case ports.ShoppingModePurchased:
		if !item.Completed {
			return false
		}
	case ports.ShoppingModeRecurring:
		if !item.IsRecurring() {
			return false
		}
	}
	if filter.Category != nil && !strings.EqualFold(item.Category, *filter.Category) {
		return false
	}
	if filter.Search != nil {
		q := strings.ToLower(strings.TrimSpace(*filter.Search))
		if q != "" {
			name := strings.Contains(strings.ToLower(item.Name), q)
			notes := item.Notes != nil && strings.Contains(strings.ToLower(*item.Notes), q)
			if !name && !notes {
				return false
			}
		}
	}
	return true
}

func sortItems(items []*entities.ShoppingItem, sortBy string) {
	less := func(a, b *entities.ShoppingItem) bool {
		switch sortBy {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "category":
			if a.Category != b.Category {
				return a.Category < b.Category
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		default:
			// Newest first, pending before purchased.
			if a.Completed != b.Completed {
				return !a.Completed
			}
			return a.DateAdded.After(b.DateAdded)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

func cloneItem(item entities.ShoppingItem) entities.ShoppingItem {
	out := item
	out.Amount = clonePtr(item.Amount)
	out.Price = clonePtr(item.Price)
	out.DateToPurchase = clonePtr(item.DateToPurchase)
	out.ImageURL = clonePtr(item.ImageURL)
	out.Notes = clonePtr(item.Notes)
	out.LastPurchased = clonePtr(item.LastPurchased)
	return out
}
