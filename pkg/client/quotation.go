package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-helen-express/pkg/quotation"
)

// ErrEmptyVendorID is returned when a vendor operation is called without an ID.
var ErrEmptyVendorID = errors.New("helen: vendor ID cannot be empty")

const vendorZonesQuery = `query VendorZones($vendorId: ID!) {
  vendor(id: $vendorId) {
    zones { id name countries }
  }
}`

const replaceQuotationMutation = `mutation ReplaceVendorQuotation($vendorId: ID!, $brackets: [WeightBracketInput!]!) {
  replaceVendorQuotation(vendorId: $vendorId, brackets: $brackets) {
    count
  }
}`

// VendorZones fetches the zones a vendor prices. Zones are returned in backend order.
func (c *Client) VendorZones(ctx context.Context, vendorID string) ([]quotation.Zone, error) {
	if vendorID == "" {
		return nil, ErrEmptyVendorID
	}

	var data struct {
		Vendor *struct {
			Zones []quotation.Zone `json:"zones"`
		} `json:"vendor"`
	}
	if err := c.Do(ctx, vendorZonesQuery, map[string]any{"vendorId": vendorID}, &data); err != nil {
		return nil, err
	}
	if data.Vendor == nil {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, vendorID)
	}
	return data.Vendor.Zones, nil
}

// ReplaceVendorQuotation replaces every weight bracket of a vendor's quotation and
// returns the number of brackets the backend stored.
func (c *Client) ReplaceVendorQuotation(ctx context.Context, vendorID string, brackets []quotation.WeightBracket) (int, error) {
	if vendorID == "" {
		return 0, ErrEmptyVendorID
	}
	if brackets == nil {
		brackets = []quotation.WeightBracket{}
	}

	var data struct {
		Replace *struct {
			Count int `json:"count"`
		} `json:"replaceVendorQuotation"`
	}
	vars := map[string]any{"vendorId": vendorID, "brackets": brackets}
	if err := c.Do(ctx, replaceQuotationMutation, vars, &data); err != nil {
		return 0, err
	}
	if data.Replace == nil {
		return 0, fmt.Errorf("%w: vendor %s", ErrNotFound, vendorID)
	}
	return data.Replace.Count, nil
}
