package domain

import (
	"fmt"
	"time"
)

type Order struct {
	ID        int       `db:"orderid"`
	ClientID  int       `db:"clientid"`
	OrderDate time.Time `db:"orderdate"`
}

// NewOrder stamps the order in UTC at second precision so stored dates
// compare consistently across drivers.
func NewOrder(clientID int, at time.Time) *Order {
	return &Order{
		ClientID:  clientID,
		OrderDate: at.UTC().Truncate(time.Second),
	}
}

type OrderDetail struct {
	ID        int `db:"orderdetailid"`
	OrderID   int `db:"orderid"`
	ProductID int `db:"productid"`
	Quantity  int `db:"quantity"`

	// Order links a detail to an order staged in the same unit of work.
	// Its generated key is copied into OrderID when the detail is written.
	Order *Order `db:"-"`
}

func NewOrderDetail(order *Order, productID, quantity int) *OrderDetail {
	return &OrderDetail{
		OrderID:   order.ID,
		ProductID: productID,
		Quantity:  quantity,
		Order:     order,
	}
}

func (d *OrderDetail) Validate() error {
	if d.Quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero, got %d", d.Quantity)
	}
	return nil
}

// ResolveOrderID copies the key of the linked order, if any.
func (d *OrderDetail) ResolveOrderID() {
	if d.Order != nil {
		d.OrderID = d.Order.ID
	}
}
