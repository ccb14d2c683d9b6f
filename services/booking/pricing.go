package booking

import "wanderstay/models"

// Quote computes the priced breakdown for a stay. All amounts are in
// minor currency units; taxBPS is the tax rate in basis points so the
// arithmetic stays integral (1800 = 18%).
func Quote(ratePerNight, rooms, nights, fee, taxBPS int64, currency string) models.Pricing {
	base := ratePerNight * rooms * nights
	taxes := base * taxBPS / 10000

	p := models.Pricing{
		Base:     base,
		Taxes:    taxes,
		Fees:     fee,
		Discount: 0,
		Currency: currency,
	}
	p.Total = p.Base + p.Taxes + p.Fees - p.Discount
	return p
}
