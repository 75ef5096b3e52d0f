package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

func TestPatchReplacesOnlyNamedFields(t *testing.T) {
	s := New()
	seeded := s.SeedUsers(models.User{
		Name:     "Ann",
		Email:    "ann@example.com",
		Cart:     []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1}},
		Wishlist: []models.WishlistItem{{ProductID: "7"}},
	})
	id := seeded[0].ID

	got, err := s.Users().Patch(context.Background(), id, store.Fields{store.FieldCart: []models.CartItem{}})
	require.NoError(t, err)
	assert.Empty(t, got.Cart)
	assert.Len(t, got.Wishlist, 1)
	assert.Equal(t, "Ann", got.Name)

	require.Len(t, s.Patches(), 1)
	assert.Equal(t, []string{"cart"}, s.Patches()[0].Fields)
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	s := New()
	seeded := s.SeedUsers(models.User{Cart: []models.CartItem{{ProductID: "1", Size: "9", Quantity: 1}}})

	u, err := s.Users().Get(context.Background(), seeded[0].ID)
	require.NoError(t, err)
	u.Cart[0].Quantity = 50

	again, err := s.Users().Get(context.Background(), seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Cart[0].Quantity)
}

func TestFindMatchesExactly(t *testing.T) {
	s := New()
	s.SeedUsers(
		models.User{Email: "a@b.co", Password: "Secret#1"},
		models.User{Email: "c@d.co", Password: "Secret#1"},
	)

	got, err := s.Users().Find(context.Background(), store.UserFilter{Email: "a@b.co", Password: "Secret#1"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.Users().Find(context.Background(), store.UserFilter{Email: "A@B.CO", Password: "Secret#1"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFaultAbortsWithoutWriting(t *testing.T) {
	s := New()
	seeded := s.SeedProducts(models.Product{Name: "Runner", InStock: true})
	boom := errors.New("boom")
	s.SetFault(FailOn(boom, OpProductPatch))

	_, err := s.Products().Patch(context.Background(), seeded[0].ID, store.Fields{store.FieldInStock: false})
	assert.ErrorIs(t, err, boom)

	p, err := s.Products().Get(context.Background(), seeded[0].ID)
	require.NoError(t, err)
	assert.True(t, p.InStock)
	assert.Empty(t, s.Patches())
}

func TestMissingDocuments(t *testing.T) {
	s := New()
	_, err := s.Users().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Products().Delete(context.Background(), "nope"), store.ErrNotFound)
}

func TestSeedAssignsSequentialIDs(t *testing.T) {
	s := New()
	users := s.SeedUsers(models.User{Name: "a"}, models.User{ID: "x", Name: "b"})
	products := s.SeedProducts(models.Product{Name: "p"})
	assert.Equal(t, models.ID("1"), users[0].ID)
	assert.Equal(t, models.ID("x"), users[1].ID)
	assert.Equal(t, models.ID("2"), products[0].ID)
}

func TestNewIDsSkipSeededIDs(t *testing.T) {
	s := New()
	s.SeedUsers(models.User{ID: "1"}, models.User{ID: "2"})
	u, err := s.Users().Create(context.Background(), models.User{Name: "c"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("3"), u.ID)
}
