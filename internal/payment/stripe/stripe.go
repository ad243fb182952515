// Package stripe creates hosted checkout sessions for card payments.
package stripe

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

type Config struct {
	SecretKey      string  `mapstructure:"secret_key"`
	Currency       string  `mapstructure:"currency"`
	FrontendURL    string  `mapstructure:"frontend_url"`
	DeliveryCharge float64 `mapstructure:"delivery_charge"`
}

// Processor builds Stripe checkout sessions out of local orders.
type Processor struct {
	c *Config
}

func New(c *Config) (*Processor, error) {
	if c.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is not set")
	}
	if c.Currency == "" {
		return nil, fmt.Errorf("stripe currency is not set")
	}
	stripe.Key = c.SecretKey
	return &Processor{c: c}, nil
}

var hundred = decimal.NewFromInt(100)

// CreateSession opens a hosted checkout session for the order and returns its
// payment URL. The buyer lands back on the frontend verify page with the order
// id and a success flag, which the verify endpoint then acts on. A flat
// delivery charge is appended as its own line item.
func (p *Processor) CreateSession(ctx context.Context, order *entity.Order) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.Items)+1)
	for _, item := range order.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(p.c.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.Price.Mul(hundred).IntPart()),
			},
			Quantity: stripe.Int64(int64(item.Qty)),
		})
	}
	lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(p.c.Currency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String("Delivery Charge"),
			},
			UnitAmount: stripe.Int64(decimal.NewFromFloat(p.c.DeliveryCharge).Mul(hundred).IntPart()),
		},
		Quantity: stripe.Int64(1),
	})

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(fmt.Sprintf("%s/verify?success=true&orderId=%d", p.c.FrontendURL, order.ID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/verify?success=false&orderId=%d", p.c.FrontendURL, order.ID)),
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		Metadata: map[string]string{
			"order_id": fmt.Sprint(order.ID),
		},
	}

	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}
