package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopkart/pkg/models"
)

type fakeAPI struct {
	entries     []models.CartEntry
	err         error
	fetchCalls  int
	updateCalls int
}

func (f *fakeAPI) FetchCart(ctx context.Context, token string) ([]models.CartEntry, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func (f *fakeAPI) UpdateCart(ctx context.Context, token, productID string, quantity int) ([]models.CartEntry, error) {
	f.updateCalls++
	if f.err != nil {
		return nil, f.err
	}
	// Behave like the backend: quantity 0 drops the entry, otherwise
	// the entry is upserted in place.
	out := make([]models.CartEntry, 0, len(f.entries)+1)
	replaced := false
	for _, e := range f.entries {
		if e.ProductID == productID {
			replaced = true
			if quantity > 0 {
				out = append(out, models.CartEntry{ProductID: productID, Quantity: quantity})
			}
			continue
		}
		out = append(out, e)
	}
	if !replaced && quantity > 0 {
		out = append(out, models.CartEntry{ProductID: productID, Quantity: quantity})
	}
	f.entries = out
	return out, nil
}

type fakeTokens struct {
	token string
	err   error
}

func (f fakeTokens) Token() (string, error) { return f.token, f.err }

type fakeCatalog []models.Product

func (f fakeCatalog) Products() []models.Product { return f }

func testCatalog() fakeCatalog {
	return fakeCatalog{
		{ID: "p1", Name: "Shoes", Category: "Fashion", Cost: 100, Rating: 5},
		{ID: "p2", Name: "Bag", Category: "Fashion", Cost: 50, Rating: 4},
	}
}

func newTestCoordinator(api *fakeAPI, tokens TokenSource) *Coordinator {
	return NewCoordinator(api, tokens, testCatalog(), NewState())
}

func TestAddItemCreatesNewLine(t *testing.T) {
	backend := &fakeAPI{}
	co := newTestCoordinator(backend, fakeTokens{token: "tok"})

	items, err := co.AddItem(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.InDelta(t, 100, TotalValue(items), 1e-9)
	assert.Equal(t, items, co.State.Items())
}

func TestAddItemRejectsDuplicateWithoutNetworkCall(t *testing.T) {
	backend := &fakeAPI{entries: []models.CartEntry{{ProductID: "p1", Quantity: 1}}}
	co := newTestCoordinator(backend, fakeTokens{token: "tok"})

	before, err := co.Refresh(context.Background())
	require.NoError(t, err)

	_, err = co.AddItem(context.Background(), "p1")

	assert.ErrorIs(t, err, ErrDuplicateItem)
	assert.Zero(t, backend.updateCalls)
	assert.Equal(t, before, co.State.Items())
}

func TestSetQuantityDoesNotApplyDuplicatePolicy(t *testing.T) {
	backend := &fakeAPI{entries: []models.CartEntry{{ProductID: "p1", Quantity: 1}}}
	co := newTestCoordinator(backend, fakeTokens{token: "tok"})
	_, err := co.Refresh(context.Background())
	require.NoError(t, err)

	items, err := co.SetQuantity(context.Background(), "p1", 3)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	backend := &fakeAPI{entries: []models.CartEntry{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}}
	co := newTestCoordinator(backend, fakeTokens{token: "tok"})

	items, err := co.SetQuantity(context.Background(), "p1", 0)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
	assert.Equal(t, items, co.State.Items())
}

func TestSetQuantityRejectsNegative(t *testing.T) {
	backend := &fakeAPI{}
	co := newTestCoordinator(backend, fakeTokens{token: "tok"})

	_, err := co.SetQuantity(context.Background(), "p1", -1)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Zero(t, backend.updateCalls)
}

func TestMutationRequiresCredential(t *testing.T) {
	backend := &fakeAPI{}
	co := newTestCoordinator(backend, fakeTokens{token: ""})

	_, err := co.SetQuantity(context.Background(), "p1", 2)

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, backend.updateCalls)
	assert.Empty(t, co.State.Items())
}

func TestRemoteFailureLeavesLocalStateUntouched(t *testing.T) {
	backend := &fakeAPI{entries: []models.CartEntry{{ProductID: "p1", Quantity: 2}}}
	co := newTestCoordinator(backend, fakeTokens{token: "tok"})
	before, err := co.Refresh(context.Background())
	require.NoError(t, err)

	backend.err = errors.New("connection reset")
	_, err = co.SetQuantity(context.Background(), "p1", 5)

	require.Error(t, err)
	assert.Equal(t, before, co.State.Items())
}

func TestSetQuantityIsIdempotent(t *testing.T) {
	backend := &fakeAPI{entries: []models.CartEntry{{ProductID: "p1", Quantity: 1}}}
	co := newTestCoordinator(backend, fakeTokens{token: "tok"})

	first, err := co.SetQuantity(context.Background(), "p1", 4)
	require.NoError(t, err)
	second, err := co.SetQuantity(context.Background(), "p1", 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, second, co.State.Items())
}

func TestReconcileDropsUnknownProductsFromResponse(t *testing.T) {
	// Backend momentarily knows a product the catalog snapshot does
	// not; the response still applies, minus the unknown line.
	backend := &fakeAPI{entries: []models.CartEntry{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 9},
	}}
	co := newTestCoordinator(backend, fakeTokens{token: "tok"})

	items, err := co.Refresh(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
}
