package cart

import (
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/notify"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCart(t *testing.T) (*Manager, storage.Store, *int) {
	t.Helper()
	store := storage.NewMemory()
	bus := notify.NewBus()
	notified := 0
	unsubscribe := bus.Subscribe(notify.TopicCart, func() { notified++ })
	t.Cleanup(unsubscribe)
	return NewManager(store, bus), store, &notified
}

func product(id string, price float64) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Slug: "product-" + id, Price: price, Inventory: 20}
}

func TestAdd_MergesQuantities(t *testing.T) {
	m, _, notified := setupCart(t)

	require.NoError(t, m.Add(product("p1", 10), 2))
	require.NoError(t, m.Add(product("p1", 10), 3))

	items, err := m.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 2, *notified)
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	m, _, notified := setupCart(t)

	assert.ErrorIs(t, m.Add(product("p1", 10), 0), ErrInvalidQuantity)
	assert.ErrorIs(t, m.Add(product("p1", 10), -2), ErrInvalidQuantity)

	items, err := m.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, *notified)
}

func TestAdd_KeepsSnapshot(t *testing.T) {
	m, _, _ := setupCart(t)

	require.NoError(t, m.Add(product("p1", 10), 1))
	require.NoError(t, m.Add(product("p1", 99), 1))

	items, err := m.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 10.0, items[0].Product.Price)
}

func TestUpdateQuantity(t *testing.T) {
	m, _, notified := setupCart(t)
	require.NoError(t, m.Add(product("p1", 10), 2))
	require.NoError(t, m.Add(product("p2", 5), 1))
	*notified = 0

	require.NoError(t, m.UpdateQuantity("p1", 7))
	items, _ := m.Items()
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, 1, *notified)

	require.NoError(t, m.UpdateQuantity("missing", 4))
	assert.Equal(t, 1, *notified)

	require.NoError(t, m.UpdateQuantity("p1", 0))
	items, _ = m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].Product.ID)
	assert.Equal(t, 2, *notified)
}

func TestRemove_NotifiesEvenWhenAbsent(t *testing.T) {
	m, _, notified := setupCart(t)
	require.NoError(t, m.Add(product("p1", 10), 1))
	*notified = 0

	require.NoError(t, m.Remove("missing"))
	assert.Equal(t, 1, *notified)

	require.NoError(t, m.Remove("p1"))
	items, _ := m.Items()
	assert.Empty(t, items)
	assert.Equal(t, 2, *notified)
}

func TestClear(t *testing.T) {
	m, store, notified := setupCart(t)
	require.NoError(t, m.Add(product("p1", 10), 1))

	require.NoError(t, m.Clear())

	_, ok, err := store.Get(StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, *notified)

	items, _ := m.Items()
	assert.Empty(t, items)
}

func TestTotalAndItemCount(t *testing.T) {
	m, _, _ := setupCart(t)
	require.NoError(t, m.Add(product("p1", 10), 2))
	require.NoError(t, m.Add(product("p2", 5), 1))

	total, err := m.Total()
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(25)), "total %s", total)

	count, err := m.ItemCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestTotal_AvoidsFloatDrift(t *testing.T) {
	m, _, _ := setupCart(t)
	require.NoError(t, m.Add(product("p1", 0.1), 3))

	total, err := m.Total()
	require.NoError(t, err)
	assert.Equal(t, "0.3", total.String())
}

func TestEmptyCart(t *testing.T) {
	m, _, _ := setupCart(t)

	total, err := m.Total()
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	count, err := m.ItemCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPersistsAcrossManagers(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, NewManager(store, nil).Add(product("p1", 10), 2))

	items, err := NewManager(store, nil).Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestNilStore(t *testing.T) {
	bus := notify.NewBus()
	notified := 0
	bus.Subscribe(notify.TopicCart, func() { notified++ })
	m := NewManager(nil, bus)

	require.NoError(t, m.Add(product("p1", 10), 1))
	items, err := m.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, notified)
	require.NoError(t, m.Clear())
}

func TestCorruptStorage(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Set(StorageKey, []byte("{not json")))

	_, err := NewManager(store, nil).Items()
	assert.Error(t, err)
}

// within fails the test if fn does not return in time, so a lock held across
// notification shows up as a failure instead of a hung run.
func within(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("call did not return")
	}
}

func TestObserverReadsPostMutationState(t *testing.T) {
	bus := notify.NewBus()
	m := NewManager(storage.NewMemory(), bus)

	var seen []int
	bus.Subscribe(notify.TopicCart, func() {
		count, err := m.ItemCount()
		assert.NoError(t, err)
		seen = append(seen, count)
	})

	within(t, func() { assert.NoError(t, m.Add(product("p1", 10), 2)) })
	within(t, func() { assert.NoError(t, m.Add(product("p2", 5), 1)) })
	within(t, func() { assert.NoError(t, m.UpdateQuantity("p1", 5)) })
	within(t, func() { assert.NoError(t, m.Remove("p2")) })
	within(t, func() { assert.NoError(t, m.Clear()) })

	assert.Equal(t, []int{2, 3, 6, 5, 0}, seen)
}

func TestObserverReadsItemsAndTotal(t *testing.T) {
	bus := notify.NewBus()
	m := NewManager(storage.NewMemory(), bus)

	var items []Item
	var total decimal.Decimal
	bus.Subscribe(notify.TopicCart, func() {
		var err error
		items, err = m.Items()
		assert.NoError(t, err)
		total, err = m.Total()
		assert.NoError(t, err)
	})

	within(t, func() { assert.NoError(t, m.Add(product("p1", 10), 3)) })

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, total.Equal(decimal.NewFromInt(30)), "total %s", total)
}
