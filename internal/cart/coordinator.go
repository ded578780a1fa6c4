package cart

import (
	"context"
	"fmt"

	"shopkart/pkg/models"
)

// ChangeKind distinguishes the two call sites that feed the mutation
// primitive: the catalog's "add to cart" button and the cart view's
// +/- quantity controls.
type ChangeKind int

const (
	// AddNew creates a line for a product that must not already be in
	// the cart; adding an existing product is rejected with
	// ErrDuplicateItem so the user gets warned instead of a silent
	// merge.
	AddNew ChangeKind = iota

	// AdjustExisting changes the quantity of a line the user can
	// already see, so no duplicate warning applies. Quantity 0 removes
	// the line.
	AdjustExisting
)

// Change is one requested cart mutation.
type Change struct {
	Kind      ChangeKind
	ProductID string
	Quantity  int
}

// API is the remote cart collaborator. UpdateCart returns the full
// updated entry list, which is authoritative.
type API interface {
	FetchCart(ctx context.Context, token string) ([]models.CartEntry, error)
	UpdateCart(ctx context.Context, token, productID string, quantity int) ([]models.CartEntry, error)
}

// TokenSource yields the current credential; empty string means none.
type TokenSource interface {
	Token() (string, error)
}

// CatalogSource yields the catalog snapshot used to enrich entries.
type CatalogSource interface {
	Products() []models.Product
}

// Coordinator mediates quantity changes between callers, the local cart
// state and the remote cart API. It is stateless between calls: each
// mutation is independent and idempotent with respect to the final
// quantity.
type Coordinator struct {
	API     API
	Tokens  TokenSource
	Catalog CatalogSource
	State   *State
}

func NewCoordinator(api API, tokens TokenSource, catalog CatalogSource, state *State) *Coordinator {
	return &Coordinator{API: api, Tokens: tokens, Catalog: catalog, State: state}
}

// AddItem puts one unit of a product not yet in the cart. Returns
// ErrDuplicateItem without touching the network when a line for the
// product already exists.
func (co *Coordinator) AddItem(ctx context.Context, productID string) ([]models.LineItem, error) {
	return co.apply(ctx, Change{Kind: AddNew, ProductID: productID, Quantity: 1})
}

// SetQuantity sets the quantity of an existing line. 0 removes it.
func (co *Coordinator) SetQuantity(ctx context.Context, productID string, quantity int) ([]models.LineItem, error) {
	return co.apply(ctx, Change{Kind: AdjustExisting, ProductID: productID, Quantity: quantity})
}

// Refresh pulls the authoritative entry list and rebuilds the local
// line items without mutating the remote cart.
func (co *Coordinator) Refresh(ctx context.Context) ([]models.LineItem, error) {
	token, err := co.credential()
	if err != nil {
		return nil, err
	}
	seq := co.State.next()
	entries, err := co.API.FetchCart(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}
	items := Reconcile(entries, co.Catalog.Products())
	co.State.apply(seq, items)
	return items, nil
}

func (co *Coordinator) apply(ctx context.Context, ch Change) ([]models.LineItem, error) {
	if ch.Quantity < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, ch.Quantity)
	}
	if ch.Kind == AddNew && hasLine(co.State.Items(), ch.ProductID) {
		return nil, ErrDuplicateItem
	}

	token, err := co.credential()
	if err != nil {
		return nil, err
	}

	seq := co.State.next()
	entries, err := co.API.UpdateCart(ctx, token, ch.ProductID, ch.Quantity)
	if err != nil {
		// Local state stays untouched so the view keeps showing the
		// last known-good cart.
		return nil, fmt.Errorf("update cart: %w", err)
	}

	items := Reconcile(entries, co.Catalog.Products())
	co.State.apply(seq, items)
	return items, nil
}

func (co *Coordinator) credential() (string, error) {
	token, err := co.Tokens.Token()
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	if token == "" {
		return "", ErrUnauthenticated
	}
	return token, nil
}

func hasLine(items []models.LineItem, productID string) bool {
	for _, item := range items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
