package cart

import "shopkart/pkg/models"

// Reconcile joins the backend's sparse cart entries against the catalog
// and returns the enriched line items. Entry order is preserved and the
// backend is trusted on uniqueness, so no deduplication happens here.
// Entries whose product is missing from the catalog are dropped: the
// cart and the catalog are fetched independently and can briefly
// disagree, which is not worth failing the whole view over.
func Reconcile(entries []models.CartEntry, catalog []models.Product) []models.LineItem {
	items := make([]models.LineItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Quantity <= 0 {
			// A stored 0 means the backend is dropping the entry; it
			// never becomes a visible line.
			continue
		}
		product, ok := lookupProduct(catalog, entry.ProductID)
		if !ok {
			continue
		}
		items = append(items, models.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			Cost:      product.Cost,
			Rating:    product.Rating,
			Image:     product.Image,
			Quantity:  entry.Quantity,
		})
	}
	return items
}

func lookupProduct(catalog []models.Product, id string) (models.Product, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
