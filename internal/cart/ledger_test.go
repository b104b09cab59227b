package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/boofmebel/boofmebel/internal/catalog"
	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingSlot rejects every write
type failingSlot struct {
	err error
}

func (f *failingSlot) Set(context.Context, string, []byte) error {
	return f.err
}

func (f *failingSlot) Get(context.Context, string) ([]byte, error) {
	return nil, f.err
}

func product(t *testing.T, id string) *domain.Product {
	p, err := catalog.Builtin().Get(id)
	require.NoError(t, err)
	return p
}

func newLedger() (*Ledger, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewLedger(store, DefaultSlotKey, nil), store
}

func TestAdd_NewItemSnapshotsProduct(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, product(t, "soho"), "vel-soft", 2))

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.LineItem{
		Key:        "soho-vel-soft",
		ProductID:  "soho",
		Name:       "Диван Soho 3-х местный",
		FabricID:   "vel-soft",
		FabricName: "Велюр — тёплый серый",
		Price:      93000,
		Image:      "images/soho-1.svg",
		Qty:        2,
		Weight:     68,
	}, items[0])
	assert.Equal(t, int64(186000), l.Total())
}

func TestAdd_SameKeyMergesQuantity(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()
	soho := product(t, "soho")

	require.NoError(t, l.Add(ctx, soho, "vel-soft", 2))
	require.NoError(t, l.Add(ctx, soho, "vel-soft", 3))

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Qty)
}

func TestAdd_DifferentFabricsAreSeparateItems(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()
	soho := product(t, "soho")

	require.NoError(t, l.Add(ctx, soho, "vel-soft", 1))
	require.NoError(t, l.Add(ctx, soho, "boucle-sand", 1))

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, int64(93000+96000), l.Total())
}

func TestAdd_WithoutFabricUsesBaseToken(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, product(t, "cozy-chair"), "", 1))
	require.NoError(t, l.Add(ctx, product(t, "cozy-chair"), "unknown", 1))

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "cozy-chair-base", items[0].Key)
	assert.Equal(t, domain.BaseFabricName, items[0].FabricName)
	assert.Equal(t, int64(34000), items[0].Price)
	assert.Equal(t, "cozy-chair-unknown", items[1].Key)
	assert.Equal(t, int64(34000), items[1].Price)
}

func TestAdd_PriceFrozenAtAddTime(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()

	p := &domain.Product{
		ID: "x", Name: "X", Price: 1000,
		Fabrics: domain.NewFabrics(domain.Fabric{ID: "f", Name: "F", PriceDelta: 100}),
	}
	require.NoError(t, l.Add(ctx, p, "f", 1))

	repriced := *p
	repriced.Price = 5000
	require.NoError(t, l.Add(ctx, &repriced, "f", 1))

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1100), items[0].Price)
	assert.Equal(t, int64(2200), l.Total())
}

func TestSetQuantity_ClampsToOne(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()
	require.NoError(t, l.Add(ctx, product(t, "soho"), "vel-soft", 4))

	for _, q := range []int{0, -5} {
		require.NoError(t, l.SetQuantity(ctx, "soho-vel-soft", q))
		assert.Equal(t, 1, l.Items()[0].Qty)
	}

	require.NoError(t, l.SetQuantity(ctx, "soho-vel-soft", 7))
	assert.Equal(t, 7, l.Items()[0].Qty)
}

func TestSetQuantity_UnknownKeyIsIgnored(t *testing.T) {
	l, store := newLedger()
	ctx := context.Background()

	require.NoError(t, l.SetQuantity(ctx, "missing-base", 3))
	assert.Zero(t, l.Len())

	_, err := store.Get(ctx, DefaultSlotKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRemove(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()
	require.NoError(t, l.Add(ctx, product(t, "soho"), "vel-soft", 1))
	require.NoError(t, l.Add(ctx, product(t, "mila-compact"), "vel-sky", 1))

	before := l.Items()
	require.NoError(t, l.Remove(ctx, "nope-base"))
	assert.Equal(t, before, l.Items())

	require.NoError(t, l.Remove(ctx, "soho-vel-soft"))
	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "mila-compact-vel-sky", items[0].Key)
}

func TestClear(t *testing.T) {
	l, store := newLedger()
	ctx := context.Background()
	require.NoError(t, l.Add(ctx, product(t, "soho"), "vel-soft", 2))

	require.NoError(t, l.Clear(ctx))

	assert.Empty(t, l.Items())
	assert.Zero(t, l.Total())

	raw, err := store.Get(ctx, DefaultSlotKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestTotalWeight(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()
	require.NoError(t, l.Add(ctx, product(t, "soho"), "vel-soft", 2))
	require.NoError(t, l.Add(ctx, product(t, "cozy-chair"), "vel-olive", 1))

	assert.Equal(t, 68.0*2+28.0, l.TotalWeight())
}

func TestPersistence_FormatAndRoundTrip(t *testing.T) {
	l, store := newLedger()
	ctx := context.Background()
	require.NoError(t, l.Add(ctx, product(t, "soho"), "vel-soft", 2))
	require.NoError(t, l.Add(ctx, product(t, "loft-corner"), "eco-cream", 1))

	raw, err := store.Get(ctx, DefaultSlotKey)
	require.NoError(t, err)

	var stored []map[string]any
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 2)
	for _, field := range []string{"key", "productId", "name", "fabricId", "fabricName", "price", "image", "qty", "weight"} {
		assert.Contains(t, stored[0], field)
	}

	reloaded := NewLedger(store, DefaultSlotKey, nil)
	reloaded.Load(ctx)
	assert.Equal(t, l.Items(), reloaded.Items())
	assert.Equal(t, l.Total(), reloaded.Total())
}

func TestLoad_MissingOrCorruptYieldsEmpty(t *testing.T) {
	ctx := context.Background()

	for name, raw := range map[string][]byte{
		"garbage":      []byte("{not json"),
		"wrong shape":  []byte(`{"key":"soho-base"}`),
		"wrong fields": []byte(`[{"qty":"many"}]`),
	} {
		t.Run(name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			require.NoError(t, store.Set(ctx, DefaultSlotKey, raw))

			l := NewLedger(store, DefaultSlotKey, nil)
			l.Load(ctx)
			assert.Empty(t, l.Items())
		})
	}

	l, _ := newLedger()
	l.Load(ctx)
	assert.Empty(t, l.Items())
}

func TestLoad_ClampsStoredQuantity(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	raw := `[{"key":"soho-vel-soft","productId":"soho","price":93000,"qty":0},` +
		`{"key":"soho-eco-cream","productId":"soho","price":89000,"qty":-3}]`
	require.NoError(t, store.Set(ctx, DefaultSlotKey, []byte(raw)))

	l := NewLedger(store, DefaultSlotKey, nil)
	l.Load(ctx)

	items := l.Items()
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, 1, item.Qty, item.Key)
	}
	assert.Equal(t, int64(93000+89000), l.Total())
}

func TestLoad_SlotErrorYieldsEmpty(t *testing.T) {
	l := NewLedger(&failingSlot{err: errors.New("connection refused")}, "", nil)
	l.Load(context.Background())
	assert.Empty(t, l.Items())
}

func TestMutation_PersistFailureKeepsInMemoryState(t *testing.T) {
	l := NewLedger(&failingSlot{err: errors.New("connection refused")}, "", nil)

	err := l.Add(context.Background(), product(t, "soho"), "vel-soft", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist cart failed")
	assert.Equal(t, 1, l.Len())
}
