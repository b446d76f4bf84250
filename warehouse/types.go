// Package warehouse holds the persisted entities of the sample shop domain.
package warehouse

import (
	"time"
)

// Customer represents a store customer.
type Customer struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	Version   []byte    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// Order represents a customer's purchase.
type Order struct {
	ID         int64       `json:"id"`
	Number     string      `json:"number"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Notes      string      `json:"notes"`

	CustomerID        int64 `json:"customer_id"`
	ShippingAddressID int64 `json:"shipping_address_id"`

	// Relationships
	Customer        *Customer    `json:"customer"`
	ShippingAddress *Address     `json:"shipping_address"`
	Items           []*OrderItem `json:"items"`
	Tags            []*Tag       `json:"tags"`

	OrderedAt time.Time `json:"ordered_at"`
	CreatedAt time.Time `json:"created_at"`
	Version   []byte    `json:"version"`
}

// OrderItem is a line item within an order.
type OrderItem struct {
	ID         int64  `json:"id"`
	OrderID    int64  `json:"order_id"`
	ProductSKU string `json:"sku"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"` // price at time of purchase (in cents)

	Order *Order `json:"-"`
}

// Tag is shared between orders.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Address represents a shipping address.
type Address struct {
	ID         int64  `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Category is a node of the catalog tree.
type Category struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	ParentID int64       `json:"parent_id"`
	Parent   *Category   `json:"-"`
	Children []*Category `json:"children"`
}

// OrderStatus mirrors store.OrderStatus.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
