package model

import "github.com/shopspring/decimal"

// ItemKind tags the catalog entity an order refers to.
type ItemKind string

const (
	ItemKindNone    ItemKind = ""
	ItemKindProduct ItemKind = "product"
	ItemKindService ItemKind = "service"
)

// ItemReference points an order at a product, a service, or nothing.
// The zero value means no reference.
type ItemReference struct {
	Kind ItemKind
	ID   int64
}

func NoItem() ItemReference {
	return ItemReference{}
}

func ProductItem(id int64) ItemReference {
	return ItemReference{Kind: ItemKindProduct, ID: id}
}

func ServiceItem(id int64) ItemReference {
	return ItemReference{Kind: ItemKindService, ID: id}
}

// IsSet reports whether the reference names a catalog entity.
func (r ItemReference) IsSet() bool {
	return r.Kind != ItemKindNone
}

// ProductID returns the product id when the reference is a product.
func (r ItemReference) ProductID() *int64 {
	if r.Kind != ItemKindProduct {
		return nil
	}
	id := r.ID
	return &id
}

// ServiceID returns the service id when the reference is a service.
func (r ItemReference) ServiceID() *int64 {
	if r.Kind != ItemKindService {
		return nil
	}
	id := r.ID
	return &id
}

// ItemFromColumns rebuilds a reference from its two nullable storage columns.
// A product id wins if both are somehow present.
func ItemFromColumns(productID, serviceID *int64) ItemReference {
	switch {
	case productID != nil:
		return ProductItem(*productID)
	case serviceID != nil:
		return ServiceItem(*serviceID)
	default:
		return NoItem()
	}
}

// CatalogItem is the read-only view of a product or service used at order creation.
type CatalogItem struct {
	Ref      ItemReference
	Name     string
	Image    string
	Category string
	Price    decimal.Decimal
}
