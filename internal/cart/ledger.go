package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/pricing"
	"github.com/boofmebel/boofmebel/internal/storage"
)

// DefaultSlotKey is the persistence slot holding the serialized cart
const DefaultSlotKey = "boof-cart"

// Slot is the persistence the ledger needs
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Ledger owns the cart line items. Every mutation is persisted to the slot.
type Ledger struct {
	mu    sync.Mutex
	items []domain.LineItem
	slot  Slot
	key   string
	log   *zap.Logger
}

func NewLedger(slot Slot, key string, log *zap.Logger) *Ledger {
	if key == "" {
		key = DefaultSlotKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{slot: slot, key: key, log: log}
}

// Add merges into the line item with the same product+fabric key, or appends a new one
// priced at the current effective price. Quantity is not re-validated here.
func (l *Ledger) Add(ctx context.Context, p *domain.Product, fabricID string, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := domain.LineKey(p.ID, fabricID)
	if i := l.indexOf(key); i >= 0 {
		l.items[i].Qty += qty
	} else {
		fabricName := domain.BaseFabricName
		if f, ok := p.Fabrics.Lookup(fabricID); ok {
			fabricName = f.Name
		}
		l.items = append(l.items, domain.LineItem{
			Key:        key,
			ProductID:  p.ID,
			Name:       p.Name,
			FabricID:   fabricID,
			FabricName: fabricName,
			Price:      pricing.EffectivePrice(p, fabricID),
			Image:      p.MainImage(),
			Qty:        qty,
			Weight:     p.Dimensions.Weight,
		})
	}
	return l.saveLocked(ctx)
}

// SetQuantity stores max(qty, 1) for the item. Unknown keys are ignored.
func (l *Ledger) SetQuantity(ctx context.Context, key string, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(key)
	if i < 0 {
		return nil
	}
	l.items[i].Qty = max(qty, 1)
	return l.saveLocked(ctx)
}

// Remove deletes the item if present. Unknown keys are ignored.
func (l *Ledger) Remove(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(key)
	if i < 0 {
		return nil
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return l.saveLocked(ctx)
}

func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
	return l.saveLocked(ctx)
}

// Total is the sum of price*qty over all items
func (l *Ledger) Total() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.ItemsTotal(l.items)
}

// TotalWeight is the sum of weight*qty over all items, kg
func (l *Ledger) TotalWeight() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var weight float64
	for _, item := range l.items {
		weight += item.Weight * float64(item.Qty)
	}
	return weight
}

// Items returns a copy of the line items in insertion order
func (l *Ledger) Items() []domain.LineItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.LineItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Load replaces the items with the persisted cart. Missing, unreadable or malformed
// data yields an empty cart; stored quantities below 1 are raised to 1.
func (l *Ledger) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil

	raw, err := l.slot.Get(ctx, l.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.log.Warn("cart slot read failed, starting empty", zap.String("slot", l.key), zap.Error(err))
		}
		return
	}

	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		l.log.Warn("stored cart is malformed, starting empty", zap.String("slot", l.key), zap.Error(err))
		return
	}
	for i := range items {
		items[i].Qty = max(items[i].Qty, 1)
	}
	l.items = items
	l.log.Debug("cart restored", zap.Int("items", len(items)))
}

func (l *Ledger) Save(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveLocked(ctx)
}

func (l *Ledger) saveLocked(ctx context.Context) error {
	items := l.items
	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := l.slot.Set(ctx, l.key, data); err != nil {
		l.log.Warn("cart slot write failed", zap.String("slot", l.key), zap.Error(err))
		return fmt.Errorf("persist cart failed: %w", err)
	}
	return nil
}

func (l *Ledger) indexOf(key string) int {
	for i := range l.items {
		if l.items[i].Key == key {
			return i
		}
	}
	return -1
}
