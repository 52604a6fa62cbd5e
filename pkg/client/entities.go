package client

import (
	"context"
	"iter"
	"time"

	"github.com/robert-malhotra/go-helen-express/pkg/criteria"
)

// Entity names of the backend list queries.
const (
	EntityCustomers = "customers"
	EntityVendors   = "vendors"
	EntityBills     = "bills"
)

// Customer is a shipping customer.
type Customer struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
}

// Vendor is a carrier that quotes prices per zone and weight bracket.
type Vendor struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bill is a shipment invoice.
type Bill struct {
	ID            string    `json:"id"`
	BillNo        string    `json:"billNo"`
	CustomerID    string    `json:"customerId"`
	VendorID      string    `json:"vendorId"`
	Status        string    `json:"status"`
	Weight        float64   `json:"weight"`
	DestCountry   string    `json:"destinationCountry"`
	TotalInUSD    float64   `json:"totalInUsd"`
	IsArchived    bool      `json:"isArchived"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

var entityFields = map[string][]string{
	EntityCustomers: {"id", "code", "name", "phone", "email", "address", "isDeleted", "createdAt"},
	EntityVendors:   {"id", "code", "name", "phone", "isDeleted", "createdAt"},
	EntityBills: {
		"id", "billNo", "customerId", "vendorId", "status", "weight",
		"destinationCountry", "totalInUsd", "isArchived", "createdAt", "lastUpdatedAt",
	},
}

func defaultFields(entity string) []string {
	if f, ok := entityFields[entity]; ok {
		return f
	}
	return []string{"id"}
}

// ListCustomers pages through customers matching q.
func (c *Client) ListCustomers(ctx context.Context, q criteria.Query) iter.Seq2[*Customer, error] {
	return iteratePages[Customer](ctx, c, EntityCustomers, entityFields[EntityCustomers], q)
}

// ListVendors pages through vendors matching q.
func (c *Client) ListVendors(ctx context.Context, q criteria.Query) iter.Seq2[*Vendor, error] {
	return iteratePages[Vendor](ctx, c, EntityVendors, entityFields[EntityVendors], q)
}

// ListBills pages through bills matching q.
func (c *Client) ListBills(ctx context.Context, q criteria.Query) iter.Seq2[*Bill, error] {
	return iteratePages[Bill](ctx, c, EntityBills, entityFields[EntityBills], q)
}
