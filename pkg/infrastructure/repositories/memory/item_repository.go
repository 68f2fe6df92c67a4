package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/repositories"
)

// ItemRepository provides in-memory item storage
type ItemRepository struct {
	mu       sync.RWMutex
	items    []entities.Item
	itemsMap map[entities.PartNumber]int
}

// NewItemRepository creates a new in-memory item repository
func NewItemRepository(expectedItems int) *ItemRepository {
	return &ItemRepository{
		items:    make([]entities.Item, 0, expectedItems),
		itemsMap: make(map[entities.PartNumber]int, expectedItems),
	}
}

// Verify interface compliance
var _ repositories.ItemRepository = (*ItemRepository)(nil)

// LoadItems loads items into the repository. Nothing is loaded if the batch
// repeats a part number or collides with a stored one.
func (r *ItemRepository) LoadItems(items []*entities.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[entities.PartNumber]bool, len(items))
	var duplicates []string
	for _, item := range items {
		_, stored := r.itemsMap[item.PartNumber]
		if seen[item.PartNumber] || stored {
			duplicates = append(duplicates, string(item.PartNumber))
		}
		seen[item.PartNumber] = true
	}
	if len(duplicates) > 0 {
		return fmt.Errorf("duplicate part numbers found: %s", strings.Join(duplicates, ", "))
	}

	for _, item := range items {
		r.add(*item)
	}
	return nil
}

// SaveItem stores a single item; part numbers must be unique
func (r *ItemRepository) SaveItem(item *entities.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.itemsMap[item.PartNumber]; exists {
		return fmt.Errorf("duplicate part number: %s", item.PartNumber)
	}
	r.add(*item)
	return nil
}

func (r *ItemRepository) add(item entities.Item) {
	r.itemsMap[item.PartNumber] = len(r.items)
	r.items = append(r.items, item)
}

// GetItem returns item master data for a part number
func (r *ItemRepository) GetItem(partNumber entities.PartNumber) (*entities.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.itemsMap[partNumber]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrItemNotFound, partNumber)
	}
	item := r.items[index]
	return &item, nil
}

// GetAllItems returns copies of all items ordered by part number
func (r *ItemRepository) GetAllItems() ([]*entities.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*entities.Item, 0, len(r.items))
	for i := range r.items {
		item := r.items[i]
		items = append(items, &item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].PartNumber < items[j].PartNumber
	})
	return items, nil
}
