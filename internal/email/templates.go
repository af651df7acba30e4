package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

// Template is the data for one rendered email.
type Template interface {
	TemplateName() string
	Subject() string
	Title() string
}

// OrderConfirmationEmail is sent after a checkout completes.
type OrderConfirmationEmail struct {
	Email        string
	CustomerName string
	OrderNumber  string
	PlacedAt     string
	Items        []OrderItem
	Total        string
	Address      string
	Phone        string
}

// OrderItem is one line of an order confirmation.
type OrderItem struct {
	Name      string
	Quantity  int
	LineTotal string
}

func (e OrderConfirmationEmail) TemplateName() string { return "order_confirmation.html" }
func (e OrderConfirmationEmail) Subject() string {
	return fmt.Sprintf("Order %s confirmed", e.OrderNumber)
}
func (e OrderConfirmationEmail) Title() string { return "Order confirmed" }

// NewOrderConfirmationEmail builds confirmation data for an order. Amounts
// are formatted in dong.
func NewOrderConfirmationEmail(order domain.Order) OrderConfirmationEmail {
	items := make([]OrderItem, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, OrderItem{
			Name:      line.Name,
			Quantity:  line.Quantity,
			LineTotal: domain.FormatVND(line.LineTotal),
		})
	}
	return OrderConfirmationEmail{
		Email:        order.Email,
		CustomerName: order.Customer.Name,
		OrderNumber:  OrderNumber(order),
		PlacedAt:     order.PlacedAt.Format(time.DateTime),
		Items:        items,
		Total:        domain.FormatVND(order.Total),
		Address:      order.Customer.Address,
		Phone:        order.Customer.Phone,
	}
}

// OrderNumber is the short, customer-facing form of an order id.
func OrderNumber(order domain.Order) string {
	return "NT-" + strings.ToUpper(order.ID.String()[:8])
}

// WelcomeEmail is sent after a visitor registers.
type WelcomeEmail struct {
	Name    string
	Email   string
	ShopURL string
}

func (e WelcomeEmail) TemplateName() string { return "welcome.html" }
func (e WelcomeEmail) Subject() string      { return "Welcome to NERDTech" }
func (e WelcomeEmail) Title() string        { return "Welcome" }
