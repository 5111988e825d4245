package stripe

import (
	"context"
	"time"

	"community-app/internal/domain/billing"
	"community-app/internal/domain/entitlement"

	stripego "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

// Client implements billing.Source against the Stripe API. One value
// is built at startup and injected into everything that talks to
// Stripe; no package-level key is set.
type Client struct {
	api *client.API
}

func NewClient(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api}
}

func (c *Client) CustomersByEmail(ctx context.Context, email string) ([]string, error) {
	params := &stripego.CustomerListParams{Email: stripego.String(email)}
	params.Context = ctx

	it := c.api.Customers.List(params)
	var refs []string
	for it.Next() {
		refs = append(refs, it.Customer().ID)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

func (c *Client) ListSubscriptions(ctx context.Context, customerRef, status string) ([]entitlement.Record, error) {
	params := &stripego.SubscriptionListParams{
		Customer: stripego.String(customerRef),
		Status:   stripego.String(status),
	}
	params.Context = ctx

	it := c.api.Subscriptions.List(params)
	var records []entitlement.Record
	for it.Next() {
		records = append(records, recordFromSubscription(it.Subscription()))
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, p billing.CheckoutParams) (string, error) {
	params := &stripego.CheckoutSessionParams{
		SuccessURL: stripego.String(p.SuccessURL),
		CancelURL:  stripego.String(p.CancelURL),
		Mode:       stripego.String(string(stripego.CheckoutSessionModeSubscription)),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{Price: stripego.String(p.PriceRef), Quantity: stripego.Int64(1)},
		},
		SubscriptionData: &stripego.CheckoutSessionSubscriptionDataParams{
			Metadata: p.Metadata,
		},
	}
	params.Context = ctx

	if p.CustomerRef != "" {
		params.Customer = stripego.String(p.CustomerRef)
	} else if p.Email != "" {
		params.CustomerEmail = stripego.String(p.Email)
	}
	if p.TrialDays > 0 {
		params.SubscriptionData.TrialPeriodDays = stripego.Int64(p.TrialDays)
	}
	if uid := p.Metadata["user_id"]; uid != "" {
		params.ClientReferenceID = stripego.String(uid)
	}

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}

func (c *Client) UpdateSubscriptionItem(ctx context.Context, subscriptionID, itemID, newPriceRef, prorationPolicy string) (entitlement.Record, error) {
	params := &stripego.SubscriptionParams{
		Items: []*stripego.SubscriptionItemsParams{
			{ID: stripego.String(itemID), Price: stripego.String(newPriceRef)},
		},
		ProrationBehavior: stripego.String(prorationPolicy),
	}
	params.Context = ctx

	sub, err := c.api.Subscriptions.Update(subscriptionID, params)
	if err != nil {
		return entitlement.Record{}, err
	}
	return recordFromSubscription(sub), nil
}

func (c *Client) PreviewProration(ctx context.Context, customerRef, subscriptionID, itemID, newPriceRef string) (billing.InvoicePreview, error) {
	params := &stripego.InvoiceUpcomingParams{
		Customer:     stripego.String(customerRef),
		Subscription: stripego.String(subscriptionID),
		SubscriptionItems: []*stripego.SubscriptionItemsParams{
			{ID: stripego.String(itemID), Price: stripego.String(newPriceRef)},
		},
		SubscriptionProrationBehavior: stripego.String(billing.ProrationCreateProrations),
		SubscriptionProrationDate:     stripego.Int64(time.Now().Unix()),
	}
	params.Context = ctx

	inv, err := c.api.Invoices.Upcoming(params)
	if err != nil {
		return billing.InvoicePreview{}, err
	}

	preview := billing.InvoicePreview{AmountDueCents: inv.AmountDue}
	if inv.Lines != nil {
		for _, line := range inv.Lines.Data {
			preview.Lines = append(preview.Lines, billing.InvoiceLine{
				Description: line.Description,
				AmountCents: line.Amount,
				Proration:   line.Proration,
			})
		}
	}
	return preview, nil
}

func recordFromSubscription(sub *stripego.Subscription) entitlement.Record {
	rec := entitlement.Record{
		ID:               sub.ID,
		Status:           string(sub.Status),
		CurrentPeriodEnd: time.Unix(sub.CurrentPeriodEnd, 0),
	}
	if sub.Customer != nil {
		rec.CustomerRef = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		rec.ItemID = item.ID
		if item.Price != nil {
			rec.PriceRef = item.Price.ID
			if item.Price.Recurring != nil {
				rec.Interval = string(item.Price.Recurring.Interval)
			}
		}
	}
	return rec
}
