package shop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinsh4dd/e-com/internal/events"
	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
	"github.com/rinsh4dd/e-com/internal/store/memstore"
)

type fixture struct {
	ms     *memstore.Store
	userID models.ID
	cart   *CartService
	wish   *WishlistService
	orders *OrderService
	rec    *events.Recorder
}

func newFixture(t *testing.T, u models.User) *fixture {
	t.Helper()
	ms := memstore.New()
	ms.SeedProducts(
		models.Product{ID: "1", Name: "Air Runner", Price: 100, Brand: "Nike", Category: "Running", AvailableSizes: []string{"8", "9", "10"}, InStock: true, ImageURL: "air.png"},
		models.Product{ID: "42", Name: "Court Classic", Price: 75.5, Brand: "Puma", Category: "Casual", InStock: true},
		models.Product{ID: "7", Name: "Trail Max", Price: 130, Brand: "Asics", Category: "Running", InStock: false},
	)
	if u.ID == "" {
		u.ID = "u1"
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	ms.SeedUsers(u)
	rec := &events.Recorder{}
	return &fixture{
		ms:     ms,
		userID: u.ID,
		cart:   NewCartService(ms.Users(), ms.Products(), nil),
		wish:   NewWishlistService(ms.Users(), ms.Products(), nil),
		orders: NewOrderService(ms.Users(), rec, nil),
		rec:    rec,
	}
}

func (f *fixture) user(t *testing.T) *models.User {
	t.Helper()
	u, err := f.ms.Users().Get(context.Background(), f.userID)
	require.NoError(t, err)
	return u
}

var key19 = models.CartKey{ProductID: "1", Size: "9"}

func TestAddToEmptyCartCreatesOneLine(t *testing.T) {
	f := newFixture(t, models.User{})

	cart, err := f.cart.Add(context.Background(), f.userID, "1", "9", 3)
	require.NoError(t, err)

	want := []models.CartItem{{ProductID: "1", Name: "Air Runner", Price: 100, Size: "9", Quantity: 3, ImageURL: "air.png"}}
	if diff := cmp.Diff(want, cart); diff != "" {
		t.Errorf("cart mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, want, f.user(t).Cart)
}

func TestAddSameKeyTwiceMergesQuantity(t *testing.T) {
	f := newFixture(t, models.User{})

	_, err := f.cart.Add(context.Background(), f.userID, "1", "9", 2)
	require.NoError(t, err)
	cart, err := f.cart.Add(context.Background(), f.userID, "1", "9", 3)
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestSameProductDifferentSizeIsSeparateLine(t *testing.T) {
	f := newFixture(t, models.User{})

	_, err := f.cart.Add(context.Background(), f.userID, "1", "9", 1)
	require.NoError(t, err)
	cart, err := f.cart.Add(context.Background(), f.userID, "1", "10", 1)
	require.NoError(t, err)

	assert.Len(t, cart, 2)
}

func TestAddRejectsBadInput(t *testing.T) {
	f := newFixture(t, models.User{})

	_, err := f.cart.Add(context.Background(), f.userID, "1", "", 1)
	assert.ErrorIs(t, err, ErrSizeRequired)
	_, err = f.cart.Add(context.Background(), f.userID, "1", "9", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = f.cart.Add(context.Background(), f.userID, "1", "4", 1)
	assert.ErrorIs(t, err, ErrSizeUnavailable)
	_, err = f.cart.Add(context.Background(), f.userID, "7", "9", 1)
	assert.ErrorIs(t, err, ErrOutOfStock)
	_, err = f.cart.Add(context.Background(), f.userID, "404", "9", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Empty(t, f.ms.Patches())
}

func TestRemoveOnlyLineLeavesEmptyCart(t *testing.T) {
	f := newFixture(t, models.User{Cart: []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1, Price: 100}}})

	view := NewCartView(f.cart, f.userID)
	require.NoError(t, view.Load(context.Background()))
	require.NoError(t, view.Remove(context.Background(), key19))

	assert.True(t, view.Empty())
	assert.NotNil(t, f.user(t).Cart)
	assert.Empty(t, f.user(t).Cart)
}

func TestIncreaseQuantityScenario(t *testing.T) {
	f := newFixture(t, models.User{Cart: []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1, Price: 100}}})

	cart, err := f.cart.Increase(context.Background(), f.userID, key19)
	require.NoError(t, err)

	assert.Equal(t, []models.CartItem{{ProductID: "1", Size: "9", Quantity: 2, Price: 100}}, cart)
	assert.True(t, CartTotal(cart).Equal(decimal.NewFromInt(200)))
}

func TestDecreaseBelowOneIsRejectedWithoutWrite(t *testing.T) {
	f := newFixture(t, models.User{Cart: []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1, Price: 100}}})

	_, err := f.cart.Decrease(context.Background(), f.userID, key19)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, f.ms.Patches())
	assert.Equal(t, 1, f.user(t).Cart[0].Quantity)
}

func TestSetQuantityBounds(t *testing.T) {
	f := newFixture(t, models.User{Cart: []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1, Price: 100}}})

	_, err := f.cart.SetQuantity(context.Background(), f.userID, key19, 100)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	cart, err := f.cart.SetQuantity(context.Background(), f.userID, key19, 99)
	require.NoError(t, err)
	assert.Equal(t, 99, cart[0].Quantity)

	_, err = f.cart.SetQuantity(context.Background(), f.userID, models.CartKey{ProductID: "1", Size: "8"}, 2)
	assert.ErrorIs(t, err, ErrItemNotInCart)
}

func TestAddRejectsMergeAboveMaxQuantity(t *testing.T) {
	f := newFixture(t, models.User{})

	cart, err := f.cart.Add(context.Background(), f.userID, "1", "9", MaxQuantity)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, cart[0].Quantity)

	_, err = f.cart.Add(context.Background(), f.userID, "1", "9", 50)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = f.cart.Add(context.Background(), f.userID, "1", "8", MaxQuantity+1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Len(t, f.ms.Patches(), 1)
	assert.Equal(t, MaxQuantity, f.user(t).Cart[0].Quantity)

	cart, err = f.cart.Decrease(context.Background(), f.userID, key19)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity-1, cart[0].Quantity)
}

func TestCartMutationWritesOnlyCartField(t *testing.T) {
	f := newFixture(t, models.User{})

	_, err := f.cart.Add(context.Background(), f.userID, "1", "9", 1)
	require.NoError(t, err)

	patches := f.ms.Patches()
	require.Len(t, patches, 1)
	assert.Equal(t, []string{store.FieldCart}, patches[0].Fields)
}

func TestCartViewKeepsStateWhenWriteFails(t *testing.T) {
	f := newFixture(t, models.User{Cart: []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1, Price: 100}}})
	view := NewCartView(f.cart, f.userID)
	var committed int
	view.OnCommit = func(cart []models.CartItem) { committed = len(cart) }
	require.NoError(t, view.Load(context.Background()))

	f.ms.SetFault(memstore.FailOn(store.ErrUnavailable, memstore.OpUserPatch))
	err := view.Increase(context.Background(), key19)
	assert.ErrorIs(t, err, store.ErrUnavailable)

	assert.Equal(t, 1, view.Items()[0].Quantity)
	assert.Equal(t, 1, committed)
	assert.Equal(t, 1, view.ItemCount())
	assert.True(t, view.Total().Equal(decimal.NewFromInt(100)))
}

func TestLastWriteWins(t *testing.T) {
	f := newFixture(t, models.User{Cart: []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1, Price: 100}}})

	stale := f.user(t).Cart
	_, err := f.cart.Add(context.Background(), f.userID, "42", "9", 1)
	require.NoError(t, err)

	next, err := SetCartQuantity(stale, key19, 5)
	require.NoError(t, err)
	_, err = f.ms.Users().Patch(context.Background(), f.userID, store.Fields{store.FieldCart: next})
	require.NoError(t, err)

	assert.Len(t, f.user(t).Cart, 1)
}

func TestWishlistToggleScenario(t *testing.T) {
	f := newFixture(t, models.User{})

	list, added, err := f.wish.Toggle(context.Background(), f.userID, "42")
	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, list, 1)
	assert.Equal(t, models.ID("42"), list[0].ProductID)
	assert.Equal(t, "Puma", list[0].Brand)

	list, added, err = f.wish.Toggle(context.Background(), f.userID, "42")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, list)
}

func TestWishlistTogglePairRestoresContent(t *testing.T) {
	prior := []models.WishlistItem{{ProductID: "7", Name: "Trail Max"}, {ProductID: "1", Name: "Air Runner"}}
	f := newFixture(t, models.User{Wishlist: prior})

	_, _, err := f.wish.Toggle(context.Background(), f.userID, "42")
	require.NoError(t, err)
	list, _, err := f.wish.Toggle(context.Background(), f.userID, "42")
	require.NoError(t, err)

	byID := cmpopts.SortSlices(func(a, b models.WishlistItem) bool { return a.ProductID < b.ProductID })
	if diff := cmp.Diff(prior, list, byID); diff != "" {
		t.Errorf("wishlist mismatch (-want +got):\n%s", diff)
	}
}

func TestWishlistToggleUsesServerDocument(t *testing.T) {
	f := newFixture(t, models.User{})
	view := NewWishlistView(f.wish, f.userID)
	require.NoError(t, view.Load(context.Background()))

	// Another client adds the product behind the view's back.
	_, err := f.wish.Add(context.Background(), f.userID, "42")
	require.NoError(t, err)

	p, err := f.ms.Products().Get(context.Background(), "42")
	require.NoError(t, err)
	added, err := view.Toggle(context.Background(), *p)
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, view.Contains("42"))
	assert.Empty(t, f.user(t).Wishlist)
}

func TestWishlistViewRollsBackOnFailure(t *testing.T) {
	f := newFixture(t, models.User{})
	view := NewWishlistView(f.wish, f.userID)
	require.NoError(t, view.Load(context.Background()))

	f.ms.SetFault(memstore.FailOn(store.ErrUnavailable, memstore.OpUserPatch))
	p := models.Product{ID: "42", Name: "Court Classic"}
	added, err := view.Toggle(context.Background(), p)
	assert.Error(t, err)
	assert.False(t, added)
	assert.False(t, view.Contains("42"))
	assert.Empty(t, view.Items())
}

func TestWishlistViewRemoveRollsBack(t *testing.T) {
	f := newFixture(t, models.User{Wishlist: []models.WishlistItem{{ProductID: "42"}}})
	view := NewWishlistView(f.wish, f.userID)
	require.NoError(t, view.Load(context.Background()))

	f.ms.SetFault(memstore.FailOn(errors.New("offline"), memstore.OpUserPatch))
	assert.Error(t, view.Remove(context.Background(), "42"))
	assert.True(t, view.Contains("42"))

	f.ms.SetFault(nil)
	require.NoError(t, view.Remove(context.Background(), "42"))
	assert.False(t, view.Contains("42"))
}

func TestWishlistRemovesDeletedProduct(t *testing.T) {
	f := newFixture(t, models.User{Wishlist: []models.WishlistItem{{ProductID: "gone"}}})

	list, added, err := f.wish.Toggle(context.Background(), f.userID, "gone")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, list)
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	f := newFixture(t, models.User{})
	_, err := f.wish.Add(context.Background(), f.userID, "1")
	require.NoError(t, err)
	list, err := f.wish.Add(context.Background(), f.userID, "1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Len(t, f.ms.Patches(), 1)
}

func TestPureHelpersDoNotAliasInput(t *testing.T) {
	cart := []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1}}
	next, err := AddCartItem(cart, models.CartItem{ProductID: "1", Size: "9", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, cart[0].Quantity)
	assert.Equal(t, 3, next[0].Quantity)
	assert.Equal(t, 3, CartItemCount(next))

	list := []models.WishlistItem{{ProductID: "1"}}
	toggled, added := ToggleWishlist(list, models.WishlistItem{ProductID: "2"})
	assert.True(t, added)
	assert.Len(t, list, 1)
	assert.Len(t, toggled, 2)
}

func TestChangeOrderStatus(t *testing.T) {
	orders := []models.Order{
		{ID: 1, OrderStatus: models.OrderPending, PaymentStatus: models.PaymentPending},
		{ID: 2, OrderStatus: models.OrderDelivered},
		{ID: 3, OrderStatus: "processing"},
	}

	out, prev, changed, err := ChangeOrderStatus(orders, 1, models.OrderShipped)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.OrderPending, prev)
	assert.Equal(t, models.OrderShipped, out[0].OrderStatus)
	assert.Equal(t, models.PaymentPending, out[0].PaymentStatus)
	assert.Equal(t, models.OrderPending, orders[0].OrderStatus)

	_, _, _, err = ChangeOrderStatus(orders, 2, models.OrderCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, _, changed, err = ChangeOrderStatus(orders, 2, models.OrderDelivered)
	require.NoError(t, err)
	assert.False(t, changed)

	out, prev, changed, err = ChangeOrderStatus(orders, 3, models.OrderCancelled)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.OrderPending, prev)
	assert.Equal(t, models.OrderCancelled, out[2].OrderStatus)

	_, _, _, err = ChangeOrderStatus(orders, 99, models.OrderShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, _, _, err = ChangeOrderStatus(orders, 1, "lost")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestCustomerCancel(t *testing.T) {
	f := newFixture(t, models.User{Orders: []models.Order{
		{ID: 10, OrderStatus: models.OrderPending, TotalAmount: 100, CreatedAt: "2024-05-01T10:00:00Z"},
		{ID: 11, OrderStatus: models.OrderDelivered, TotalAmount: 50, CreatedAt: "2024-05-02T10:00:00Z"},
	}})

	o, err := f.orders.Cancel(context.Background(), f.userID, 10)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, o.OrderStatus)
	assert.Equal(t, 100.0, o.TotalAmount)

	_, err = f.orders.Cancel(context.Background(), f.userID, 11)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.orders.Get(context.Background(), f.userID, 12)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	list, err := f.orders.List(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(11), list[0].ID)

	evs := f.rec.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.OrderStatusChanged{UserID: f.userID, OrderID: 10, From: models.OrderPending, To: models.OrderCancelled, Actor: "customer"}, evs[0])
}

func TestSortNewestFirstFallsBackToID(t *testing.T) {
	orders := []models.Order{{ID: 1}, {ID: 3}, {ID: 2}}
	SortNewestFirst(orders)
	assert.Equal(t, []int64{3, 2, 1}, []int64{orders[0].ID, orders[1].ID, orders[2].ID})
}

func TestCheckoutPlacesOrderAndEmptiesCart(t *testing.T) {
	f := newFixture(t, models.User{
		Cart: []models.CartItem{
			{ProductID: "1", Size: "9", Quantity: 2, Price: 100},
			{ProductID: "42", Size: "8", Quantity: 3, Price: 75.5},
		},
		Orders: []models.Order{{ID: 1, OrderStatus: models.OrderDelivered}},
	})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewCheckoutService(f.ms.Users(), f.rec, nil, WithClock(func() time.Time { return now }))

	addr := models.Address{Street: "1 MG Road", City: "Kochi", State: "Kerala", Zip: "682001"}
	order, err := svc.Checkout(context.Background(), f.userID, CheckoutRequest{
		Payment:        PaymentDetails{Method: PaymentUPI, UPIID: "ann@okbank"},
		BillingAddress: addr,
	})
	require.NoError(t, err)

	assert.Equal(t, now.UnixMilli(), order.ID)
	assert.Equal(t, 426.5, order.TotalAmount)
	assert.Equal(t, "UPI (ann@okbank)", order.PaymentMethod)
	assert.Equal(t, models.PaymentCompleted, order.PaymentStatus)
	assert.Equal(t, models.OrderPending, order.OrderStatus)
	assert.Equal(t, DefaultCountry, order.BillingAddress.Country)
	assert.Len(t, order.Items, 2)

	u := f.user(t)
	assert.Empty(t, u.Cart)
	require.Len(t, u.Orders, 2)
	assert.Equal(t, order.ID, u.Orders[1].ID)
	require.NotNil(t, u.ShippingAddress)
	assert.Equal(t, "Kochi", u.ShippingAddress.City)

	patches := f.ms.Patches()
	require.Len(t, patches, 1)
	assert.ElementsMatch(t, []string{store.FieldCart, store.FieldOrders, store.FieldShippingAddress}, patches[0].Fields)

	evs := f.rec.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.TypeOrderPlaced, evs[0].Type())
}

func TestCheckoutRejectsBeforeWriting(t *testing.T) {
	addr := models.Address{Street: "1 MG Road", City: "Kochi", State: "Kerala", Zip: "682001"}
	cod := PaymentDetails{Method: PaymentCOD}

	tests := []struct {
		name string
		cart []models.CartItem
		req  CheckoutRequest
		want error
	}{
		{"empty cart", nil, CheckoutRequest{Payment: cod, BillingAddress: addr}, ErrEmptyCart},
		{"missing zip", []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1}}, CheckoutRequest{Payment: cod, BillingAddress: models.Address{Street: "x", City: "y", State: "z"}}, ErrIncompleteAddress},
		{"bad card", []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1}}, CheckoutRequest{Payment: PaymentDetails{Method: PaymentCard, CardNumber: "4111"}, BillingAddress: addr}, ErrInvalidPayment},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, models.User{Cart: tc.cart})
			svc := NewCheckoutService(f.ms.Users(), f.rec, nil)

			_, err := svc.Checkout(context.Background(), f.userID, tc.req)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, f.ms.Patches())
			assert.Empty(t, f.rec.Events())
		})
	}
}

func TestCheckoutFailureLeavesDocumentIntact(t *testing.T) {
	f := newFixture(t, models.User{Cart: []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1, Price: 100}}})
	f.ms.SetFault(memstore.FailOn(store.ErrUnavailable, memstore.OpUserPatch))
	svc := NewCheckoutService(f.ms.Users(), f.rec, nil)

	_, err := svc.Checkout(context.Background(), f.userID, CheckoutRequest{
		Payment:        PaymentDetails{Method: PaymentCOD},
		BillingAddress: models.Address{Street: "a", City: "b", State: "c", Zip: "d"},
	})
	assert.ErrorIs(t, err, store.ErrUnavailable)

	f.ms.SetFault(nil)
	u := f.user(t)
	assert.Len(t, u.Cart, 1)
	assert.Empty(t, u.Orders)
}

func TestPrefill(t *testing.T) {
	f := newFixture(t, models.User{Cart: []models.CartItem{{ProductID: "1", Size: "9", Quantity: 2, Price: 100}}})
	svc := NewCheckoutService(f.ms.Users(), nil, nil)

	pre, err := svc.Prefill(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, pre.Total.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, DefaultCountry, pre.ShippingAddress.Country)
	assert.Empty(t, pre.ShippingAddress.Street)
}

func TestPaymentDetails(t *testing.T) {
	tests := []struct {
		name   string
		p      PaymentDetails
		valid  bool
		label  string
		status models.PaymentStatus
	}{
		{"card", PaymentDetails{Method: PaymentCard, CardNumber: "4111 1111 1111 1234", CardName: "Ann", Expiry: "12/29", CVV: "123"}, true, "VISA ****1234", models.PaymentCompleted},
		{"card bad expiry", PaymentDetails{Method: PaymentCard, CardNumber: "4111111111111234", CardName: "Ann", Expiry: "13/29", CVV: "123"}, false, "VISA ****1234", models.PaymentCompleted},
		{"card short cvv", PaymentDetails{Method: PaymentCard, CardNumber: "4111111111111234", CardName: "Ann", Expiry: "01/29", CVV: "12"}, false, "VISA ****1234", models.PaymentCompleted},
		{"upi", PaymentDetails{Method: PaymentUPI, UPIID: "ann@upi"}, true, "UPI (ann@upi)", models.PaymentCompleted},
		{"upi without at", PaymentDetails{Method: PaymentUPI, UPIID: "ann"}, false, "UPI (ann)", models.PaymentCompleted},
		{"netbanking", PaymentDetails{Method: PaymentNetBanking, Bank: "SBI"}, true, "Net Banking (SBI)", models.PaymentCompleted},
		{"emi", PaymentDetails{Method: PaymentEMI, EMIPlan: "6 months"}, true, "EMI (6 months)", models.PaymentCompleted},
		{"emi without plan", PaymentDetails{Method: PaymentEMI}, false, "EMI ()", models.PaymentCompleted},
		{"cod", PaymentDetails{Method: PaymentCOD}, true, "Cash on Delivery", models.PaymentPending},
		{"unknown", PaymentDetails{Method: "cheque"}, false, "cheque", models.PaymentCompleted},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPayment)
			}
			assert.Equal(t, tc.label, tc.p.Label())
			assert.Equal(t, tc.status, tc.p.Status())
		})
	}
}

func TestCatalog(t *testing.T) {
	f := newFixture(t, models.User{})
	c := NewCatalog(f.ms.Products())

	got, err := c.List(context.Background(), ProductFilter{Category: "Running", Sort: SortDesc})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.ID("7"), got[0].ID)

	got, err = c.List(context.Background(), ProductFilter{Search: "COURT"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.ID("42"), got[0].ID)

	got, err = c.List(context.Background(), ProductFilter{Category: AllCategories, Sort: SortAsc, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 75.5, got[0].Price)

	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Running", "Casual"}, cats)

	_, err = c.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogWindow(t *testing.T) {
	all := make([]models.Product, 150)
	for i := range all {
		all[i] = models.Product{ID: models.ID(string(rune(i))), Price: float64(i)}
	}
	got := FilterProducts(all[:CatalogWindow], ProductFilter{Sort: SortDesc, Limit: 1})
	require.Len(t, got, 1)
	assert.Equal(t, 99.0, got[0].Price)

	assert.Len(t, FilterProducts(all, ProductFilter{}), DefaultLimit)
}
