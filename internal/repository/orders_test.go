package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/freshmarket/internal/models"
)

func cartOrder(t *testing.T, f *fixture, user models.User, method models.PaymentMethod, ids ...string) models.Order {
	t.Helper()

	order := models.Order{UserID: user.ID, UserName: user.Name, PaymentMethod: method}
	for i, id := range ids {
		p, err := f.repos.Products.Get(context.Background(), id)
		require.NoError(t, err)
		order.Items = append(order.Items, models.CartItem{Product: p, Quantity: i + 1})
	}
	order.Total = order.Subtotal()
	return order
}

func TestOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, aliceCaller := f.signup(t, "Alice", "alice@x.com", "pw1")

	var created []models.Order
	for _, method := range []models.PaymentMethod{models.PaymentCard, models.PaymentUPI, models.PaymentCOD} {
		o, err := f.repos.Orders.Create(ctx, aliceCaller, cartOrder(t, f, alice, method, "101"))
		require.NoError(t, err)
		created = append(created, o)
	}

	all, err := f.repos.Orders.GetAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, created[2].ID, all[0].ID)
	assert.Equal(t, created[1].ID, all[1].ID)
	assert.Equal(t, created[0].ID, all[2].ID)
}

func TestOrderCreateAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, aliceCaller := f.signup(t, "Alice", "alice@x.com", "pw1")

	in := cartOrder(t, f, alice, models.PaymentCOD, "101", "519")
	in.ID = "client-id"
	in.CreatedAt = 42

	o, err := f.repos.Orders.Create(ctx, aliceCaller, in)
	require.NoError(t, err)
	assert.NotEqual(t, "client-id", o.ID)
	assert.NotEqual(t, int64(42), o.CreatedAt)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, in.Items, o.Items)
	assert.Equal(t, in.Total, o.Total)
}

func TestOrderTotalsSurvivePriceChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, aliceCaller := f.signup(t, "Alice", "alice@x.com", "pw1")

	o, err := f.repos.Orders.Create(ctx, aliceCaller, cartOrder(t, f, alice, models.PaymentCard, "101", "102"))
	require.NoError(t, err)

	apple, err := f.repos.Products.Get(ctx, "101")
	require.NoError(t, err)
	apple.Price *= 10
	_, err = f.repos.Products.Update(ctx, admin, apple)
	require.NoError(t, err)

	mine, err := f.repos.Orders.GetUserOrders(ctx, aliceCaller, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, o.Total, mine[0].Total)
	assert.Equal(t, o.Items, mine[0].Items)

	all, err := f.repos.Orders.GetAll(ctx, subAdmin)
	require.NoError(t, err)
	assert.Equal(t, o.Total, all[0].Total)
}

func TestGetUserOrdersFiltersByOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, aliceCaller := f.signup(t, "Alice", "alice@x.com", "pw1")
	bob, bobCaller := f.signup(t, "Bob", "bob@x.com", "pw2")

	_, err := f.repos.Orders.Create(ctx, aliceCaller, cartOrder(t, f, alice, models.PaymentCOD, "101"))
	require.NoError(t, err)
	_, err = f.repos.Orders.Create(ctx, bobCaller, cartOrder(t, f, bob, models.PaymentUPI, "102"))
	require.NoError(t, err)

	mine, err := f.repos.Orders.GetUserOrders(ctx, bobCaller, bob.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, bob.ID, mine[0].UserID)

	_, err = f.repos.Orders.GetUserOrders(ctx, bobCaller, alice.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	theirs, err := f.repos.Orders.GetUserOrders(ctx, subAdmin, alice.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestOrderCreateAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, _ := f.signup(t, "Alice", "alice@x.com", "pw1")
	_, bobCaller := f.signup(t, "Bob", "bob@x.com", "pw2")

	order := cartOrder(t, f, alice, models.PaymentCOD, "101")

	_, err := f.repos.Orders.Create(ctx, bobCaller, order)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.repos.Orders.Create(ctx, Anonymous, order)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.repos.Orders.Create(ctx, admin, order)
	require.NoError(t, err)

	_, err = f.repos.Orders.GetAll(ctx, bobCaller)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, aliceCaller := f.signup(t, "Alice", "alice@x.com", "pw1")

	a := cartOrder(t, f, alice, models.PaymentCOD, "101")
	b := cartOrder(t, f, alice, models.PaymentUPI, "102")
	c := cartOrder(t, f, alice, models.PaymentCard, "103")
	c.Status = models.OrderCancelled
	for _, o := range []models.Order{a, b, c} {
		_, err := f.repos.Orders.Create(ctx, aliceCaller, o)
		require.NoError(t, err)
	}

	stats, err := f.repos.Orders.Stats(ctx, subAdmin)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 2, stats.PendingOrders)
	assert.InDelta(t, a.Total+b.Total, stats.TotalRevenue, 1e-9)
	assert.Equal(t, 1, stats.OrdersByStatus[models.OrderCancelled])
	assert.Equal(t, 1, stats.OrdersByMethod[models.PaymentUPI])

	_, err = f.repos.Orders.Stats(ctx, aliceCaller)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConcurrentOrderCreateLosesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, aliceCaller := f.signup(t, "Alice", "alice@x.com", "pw1")
	order := cartOrder(t, f, alice, models.PaymentCOD, "101")

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.repos.Orders.Create(ctx, aliceCaller, order)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := f.repos.Orders.GetAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 25)
}
