package models

import "strings"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"

	// orderProcessing is what older checkouts wrote; it means pending.
	orderProcessing OrderStatus = "processing"
)

// OrderStatuses lists the statuses in display order.
var OrderStatuses = []OrderStatus{OrderPending, OrderShipped, OrderDelivered, OrderCancelled}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered, OrderCancelled},
}

// ParseOrderStatus accepts any casing and the legacy "processing" value.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s))).Normalize()
	switch st {
	case OrderPending, OrderShipped, OrderDelivered, OrderCancelled:
		return st, true
	}
	return "", false
}

// Normalize maps empty and legacy values onto pending. Unknown values are
// returned lower-cased.
func (s OrderStatus) Normalize() OrderStatus {
	st := OrderStatus(strings.ToLower(string(s)))
	if st == "" || st == orderProcessing {
		return OrderPending
	}
	return st
}

func (s OrderStatus) IsTerminal() bool {
	st := s.Normalize()
	return st == OrderDelivered || st == OrderCancelled
}

// CanTransitionTo reports whether next is reachable in one step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s.Normalize()] {
		if allowed == next.Normalize() {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)
