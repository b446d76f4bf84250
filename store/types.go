// Package store holds the detached request-side shapes of the sample shop
// domain, as decoded from an API payload.
package store

import (
	"time"
)

// Customer places orders.
type Customer struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
	Version  []byte `json:"version,omitempty"`
}

// Order is the aggregate root of the sample graph.
type Order struct {
	ID              int64        `json:"id"`
	Number          string       `json:"number"`
	Status          OrderStatus  `json:"status"`
	TotalCents      int64        `json:"total_cents"`
	Notes           string       `json:"notes,omitempty"`
	Customer        *Customer    `json:"customer,omitempty"`
	ShippingAddress *Address     `json:"shipping_address,omitempty"`
	Items           []*OrderItem `json:"items"`
	Tags            []*Tag       `json:"tags,omitempty"`
	OrderedAt       time.Time    `json:"ordered_at"`
	Version         []byte       `json:"version,omitempty"`
}

// OrderItem is a product line within an order. Quantity travels as int32 on
// the wire.
type OrderItem struct {
	ID         int64  `json:"id"`
	ProductSKU string `json:"sku"`
	Quantity   int32  `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	Order      *Order `json:"-"`
}

// Tag labels orders; the same tag can be shared by many orders.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Address is a shipping destination.
type Address struct {
	ID         int64  `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// Category is a self-referencing tree node.
type Category struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Parent   *Category   `json:"-"`
	Children []*Category `json:"children,omitempty"`
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
