package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/seed"
)

func TestBankDetailsDefaultAndSave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	details, err := f.repos.Settings.GetBankDetails(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.BankDetails{}, details)

	linked := models.BankDetails{
		HolderName:    "FreshMarket Traders",
		AccountNumber: "001122334455",
		BankName:      "J&K Bank",
		IFSC:          "JAKA0SRINGR",
		UPIID:         "freshmarket@jkb",
		IsLinked:      true,
	}
	_, err = f.repos.Settings.SaveBankDetails(ctx, subAdmin, linked)
	assert.ErrorIs(t, err, ErrForbidden)

	saved, err := f.repos.Settings.SaveBankDetails(ctx, admin, linked)
	require.NoError(t, err)
	assert.Equal(t, linked, saved)

	details, err = f.repos.Settings.GetBankDetails(ctx)
	require.NoError(t, err)
	assert.Equal(t, linked, details)

	unlinked, err := f.repos.Settings.UnlinkBankDetails(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, models.BankDetails{}, unlinked)

	details, err = f.repos.Settings.GetBankDetails(ctx)
	require.NoError(t, err)
	assert.False(t, details.IsLinked)
}

func TestResetDatabase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, aliceCaller := f.signup(t, "Alice", "alice@x.com", "pw1")

	_, err := f.repos.Products.Create(ctx, admin, models.Product{Name: "Walnuts", Price: 900, Category: models.CategoryPantry})
	require.NoError(t, err)
	require.NoError(t, f.repos.Products.Delete(ctx, admin, "101"))
	_, err = f.repos.Orders.Create(ctx, aliceCaller, cartOrder(t, f, alice, models.PaymentCOD, "102"))
	require.NoError(t, err)
	_, err = f.repos.Settings.SaveBankDetails(ctx, admin, models.BankDetails{BankName: "X", IsLinked: true})
	require.NoError(t, err)

	assert.ErrorIs(t, f.repos.Settings.ResetDatabase(ctx, aliceCaller), ErrForbidden)
	require.NoError(t, f.repos.Settings.ResetDatabase(ctx, admin))

	products, err := f.repos.Products.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultCatalog(), products)

	users, err := f.repos.Users.GetAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)

	orders, err := f.repos.Orders.GetAll(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, orders)

	session, err := f.repos.Auth.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	details, err := f.repos.Settings.GetBankDetails(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.BankDetails{}, details)
}
