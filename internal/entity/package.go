package entity

import "errors"

var ErrUnknownPackage = errors.New("unknown package")

// Package is a fixed consulting offer. Prices are static per currency, in
// minor units, so a "standard" deal in INR is not a converted USD price.
type Package struct {
	ID       string
	Name     string
	PriceUSD int64 // cents
	PriceINR int64 // paise
}

var packages = map[string]Package{
	"standard":   {ID: "standard", Name: "Standard Consulting", PriceUSD: 250000, PriceINR: 4000000},
	"premium":    {ID: "premium", Name: "Premium Consulting", PriceUSD: 350000, PriceINR: 8500000},
	"enterprise": {ID: "enterprise", Name: "Enterprise Consulting", PriceUSD: 500000, PriceINR: 15000000},
}

// FindPackage resolves a package id to its price in the given currency.
func FindPackage(id, currency string) (Package, int64, error) {
	pkg, ok := packages[id]
	if !ok {
		return Package{}, 0, ErrUnknownPackage
	}
	if currency == "INR" {
		return pkg, pkg.PriceINR, nil
	}
	return pkg, pkg.PriceUSD, nil
}
