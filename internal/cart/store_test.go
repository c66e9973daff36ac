package cart

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64) Product {
	return Product{
		ID:     id,
		Name:   "AZ" + id,
		Images: []string{"/img/" + id + "-01.png"},
		Price:  decimal.NewFromInt(price),
	}
}

func fixedStore() *Store {
	at := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	return NewStore(
		WithClock(func() time.Time { return at }),
		WithIDGenerator(func() string { return "order-1" }),
	)
}

func TestNewStore_Empty(t *testing.T) {
	s := NewStore()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.ItemCount())
	assert.True(t, s.Total().IsZero())
	assert.Nil(t, s.LastOrder())
}

func TestAddItem_AppendsNewLine(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.AddItem(product("a", 100), 2))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.AddItem(product("a", 100), 2))
	require.NoError(t, s.AddItem(product("a", 100), 3))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddItem_KeepsInsertionOrder(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.AddItem(product("c", 1), 1))
	require.NoError(t, s.AddItem(product("a", 1), 1))
	require.NoError(t, s.AddItem(product("b", 1), 1))
	require.NoError(t, s.AddItem(product("a", 1), 1))

	var ids []string
	for _, l := range s.Lines() {
		ids = append(ids, l.Product.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestAddItem_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		quantity int
		code     Code
	}{
		{"zero quantity", product("a", 100), 0, CodeInvalidQuantity},
		{"negative quantity", product("a", 100), -3, CodeInvalidQuantity},
		{"missing id", product("", 100), 1, CodeInvalidInput},
		{"negative price", product("a", -1), 1, CodeInvalidInput},
		{"above cap", product("a", 100), MaxQuantity + 1, CodeInvalidQuantity},
		{"max int", product("a", 100), math.MaxInt, CodeInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			err := s.AddItem(tt.product, tt.quantity)

			require.Error(t, err)
			assert.Equal(t, tt.code, CodeOf(err))
			assert.True(t, s.IsEmpty(), "rejected mutation must leave the cart unchanged")
		})
	}
}

func TestAddItem_MergeCannotExceedCap(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(product("a", 100), MaxQuantity))
	require.NoError(t, s.AddItem(product("b", 100), 1))

	err := s.AddItem(product("a", 100), 2)

	require.Error(t, err)
	assert.Equal(t, CodeInvalidQuantity, CodeOf(err))
	assert.Equal(t, MaxQuantity, s.Lines()[0].Quantity)
	assert.Equal(t, MaxQuantity+1, s.ItemCount())
	assert.True(t, decimal.NewFromInt(100*(MaxQuantity+1)).Equal(s.Total()))
}

func TestUpdateQuantity_RejectsAboveCap(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(product("a", 100), 2))

	for _, q := range []int{MaxQuantity + 1, math.MaxInt} {
		err := s.UpdateQuantity("a", q)

		require.Error(t, err)
		assert.Equal(t, CodeInvalidQuantity, CodeOf(err))
		assert.Equal(t, 2, s.Lines()[0].Quantity)
	}

	require.NoError(t, s.UpdateQuantity("a", MaxQuantity))
	assert.Equal(t, MaxQuantity, s.ItemCount())
}

func TestAddItem_DoesNotAliasCallerImages(t *testing.T) {
	s := NewStore()
	p := product("a", 100)

	require.NoError(t, s.AddItem(p, 1))
	p.Images[0] = "mutated"

	assert.Equal(t, "/img/a-01.png", s.Lines()[0].Product.Images[0])
}

func TestUpdateQuantity_SetsQuantity(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(product("a", 100), 1))

	require.NoError(t, s.UpdateQuantity("a", 4))

	assert.Equal(t, 4, s.ItemCount())
	assert.True(t, decimal.NewFromInt(400).Equal(s.Total()))
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(product("a", 100), 2))

	require.NoError(t, s.UpdateQuantity("a", 0))

	assert.True(t, s.IsEmpty())
}

func TestUpdateQuantity_NegativeIsFlooredAndRemoved(t *testing.T) {
	for _, n := range []int{-1, -2, -100} {
		s := NewStore()
		require.NoError(t, s.AddItem(product("a", 100), 3))
		require.NoError(t, s.AddItem(product("b", 50), 1))

		require.NoError(t, s.UpdateQuantity("a", n))

		lines := s.Lines()
		require.Len(t, lines, 1, "n=%d", n)
		assert.Equal(t, "b", lines[0].Product.ID)
	}
}

func TestUpdateQuantity_MissingLineIsNoop(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(product("a", 100), 1))
	before := s.State()

	require.NoError(t, s.UpdateQuantity("zzz", 7))

	assert.Equal(t, before, s.State())
}

func TestUpdateQuantity_RequiresProductID(t *testing.T) {
	s := NewStore()

	err := s.UpdateQuantity("", 1)

	assert.Equal(t, CodeInvalidInput, CodeOf(err))
}

func TestRemoveItem_Idempotent(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(product("a", 100), 1))
	require.NoError(t, s.AddItem(product("b", 200), 1))

	s.RemoveItem("a")
	once := s.State()
	s.RemoveItem("a")

	assert.Equal(t, once, s.State())
	assert.Len(t, once.Items, 1)

	s.RemoveItem("never-added")
	assert.Equal(t, once, s.State())
}

func TestTotalConsistency(t *testing.T) {
	s := NewStore()
	check := func() {
		t.Helper()
		want := decimal.Zero
		for _, l := range s.Lines() {
			want = want.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		assert.True(t, want.Equal(s.Total()), "want %s, got %s", want, s.Total())
	}

	require.NoError(t, s.AddItem(product("a", 100), 2))
	check()
	require.NoError(t, s.AddItem(Product{ID: "b", Price: decimal.RequireFromString("19.99")}, 3))
	check()
	require.NoError(t, s.UpdateQuantity("a", 5))
	check()
	s.RemoveItem("b")
	check()
	s.ClearCart()
	check()
}

func TestSetPayer_RejectsMalformedEmail(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetPayer(PayerInfo{Name: "Lin", Email: "lin@example.com"}))

	err := s.SetPayer(PayerInfo{Name: "Lin", Email: "not-an-email"})

	assert.Equal(t, CodeInvalidInput, CodeOf(err))
	assert.Equal(t, "lin@example.com", s.Payer().Email)
}

func TestSetPayer_AllowsBlankEmail(t *testing.T) {
	s := NewStore()

	assert.NoError(t, s.SetPayer(PayerInfo{Name: "Lin"}))
}

func TestSetRecipient_RejectsMalformedEmail(t *testing.T) {
	s := NewStore()

	err := s.SetRecipient(RecipientInfo{Email: "@@"})

	assert.Equal(t, CodeInvalidInput, CodeOf(err))
	assert.Equal(t, RecipientInfo{}, s.Recipient())
}

func TestRecipientResolve_SameAsPayer(t *testing.T) {
	payer := PayerInfo{Name: "Lin", Email: "lin@example.com", Phone: "0912"}
	r := RecipientInfo{SameAsPayer: true, Name: "ignored", Address: "Taipei", GUINumber: "12345678"}

	got := r.Resolve(payer)

	assert.Equal(t, "Lin", got.Name)
	assert.Equal(t, "lin@example.com", got.Email)
	assert.Equal(t, "0912", got.Phone)
	assert.Equal(t, "Taipei", got.Address)
	assert.Equal(t, "12345678", got.GUINumber)

	r.SameAsPayer = false
	assert.Equal(t, "ignored", r.Resolve(payer).Name)
}

func TestClearCart_ResetsFormsKeepsLastOrder(t *testing.T) {
	s := fixedStore()
	require.NoError(t, s.AddItem(product("a", 100), 1))
	s.SaveOrder()

	require.NoError(t, s.AddItem(product("b", 100), 1))
	require.NoError(t, s.SetPayer(PayerInfo{Name: "Lin", Email: "lin@example.com"}))
	require.NoError(t, s.SetRecipient(RecipientInfo{SameAsPayer: true, Address: "Taipei"}))

	s.ClearCart()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, PayerInfo{}, s.Payer())
	assert.Equal(t, RecipientInfo{}, s.Recipient())
	require.NotNil(t, s.LastOrder())
	assert.Equal(t, "order-1", s.LastOrder().ID)
}

func TestSaveOrder_SnapshotsAndClears(t *testing.T) {
	s := fixedStore()
	require.NoError(t, s.AddItem(product("a", 100), 2))
	require.NoError(t, s.AddItem(product("b", 250), 1))
	require.NoError(t, s.SetPayer(PayerInfo{Name: "Lin", Email: "lin@example.com", Phone: "0912"}))
	require.NoError(t, s.SetRecipient(RecipientInfo{Address: "Taipei", GUINumber: "12345678"}))

	order := s.SaveOrder()

	assert.Equal(t, "order-1", order.ID)
	assert.Len(t, order.Items, 2)
	assert.True(t, decimal.NewFromInt(450).Equal(order.Total))
	assert.Equal(t, 3, order.ItemCount)
	assert.Equal(t, "Lin", order.Payer.Name)
	assert.Equal(t, "Taipei", order.Recipient.Address)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), order.CompletedAt)

	assert.True(t, s.IsEmpty())
	assert.Equal(t, PayerInfo{}, s.Payer())
	assert.Equal(t, order, *s.LastOrder())
}

func TestSaveOrder_Isolation(t *testing.T) {
	s := fixedStore()
	require.NoError(t, s.AddItem(product("a", 100), 2))
	s.SaveOrder()

	require.NoError(t, s.AddItem(product("a", 100), 9))
	require.NoError(t, s.AddItem(product("b", 1), 1))
	require.NoError(t, s.SetPayer(PayerInfo{Name: "Other"}))

	last := s.LastOrder()
	require.NotNil(t, last)
	assert.Len(t, last.Items, 1)
	assert.Equal(t, 2, last.Items[0].Quantity)
	assert.Equal(t, "", last.Payer.Name)

	// copies handed out must not reach back into the store
	last.Items[0].Quantity = 99
	last.Items[0].Product.Images[0] = "mutated"
	assert.Equal(t, 2, s.LastOrder().Items[0].Quantity)
	assert.Equal(t, "/img/a-01.png", s.LastOrder().Items[0].Product.Images[0])
}

func TestSaveOrder_ReplacesPreviousOrder(t *testing.T) {
	ids := []string{"first", "second"}
	s := NewStore(WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	require.NoError(t, s.AddItem(product("a", 100), 1))
	s.SaveOrder()
	require.NoError(t, s.AddItem(product("b", 100), 1))
	s.SaveOrder()

	assert.Equal(t, "second", s.LastOrder().ID)
	assert.Equal(t, "b", s.LastOrder().Items[0].Product.ID)
}

func TestEndToEndScenario(t *testing.T) {
	s := fixedStore()
	a := Product{ID: "a", Price: decimal.NewFromInt(100)}

	require.NoError(t, s.AddItem(a, 2))
	assert.Equal(t, 2, s.ItemCount())
	assert.True(t, decimal.NewFromInt(200).Equal(s.Total()))

	require.NoError(t, s.AddItem(a, 1))
	assert.True(t, decimal.NewFromInt(300).Equal(s.Total()))

	require.NoError(t, s.UpdateQuantity("a", 0))
	assert.True(t, s.IsEmpty())

	order := s.SaveOrder()
	assert.True(t, order.Total.IsZero())
	assert.Empty(t, order.Items)
	assert.Equal(t, 0, order.ItemCount)
}

func TestSaveOrder_AtomicUnderConcurrentReads(t *testing.T) {
	s := NewStore()
	for i := 0; i < 50; i++ {
		require.NoError(t, s.AddItem(product(string(rune('a'+i%26))+"x", 10), 1))
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	torn := make(chan State, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			st := s.State()
			if st.LastOrder != nil && len(st.Items) > 0 {
				select {
				case torn <- st:
				default:
				}
				return
			}
		}
	}()

	s.SaveOrder()
	close(done)
	wg.Wait()

	select {
	case st := <-torn:
		t.Fatalf("observed last order alongside %d live lines", len(st.Items))
	default:
	}
}
