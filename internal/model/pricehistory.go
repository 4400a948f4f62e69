package model

import "time"

// PriceEntry records the unit price of one product at one store on one
// date, used to track price evolution across scans.
type PriceEntry struct {
	Date        time.Time
	ProductName string
	ProductCode string
	StoreName   string
	StoreCNPJ   string
	UserID      string
	ID          int64
	InvoiceID   int64
	Price       float64
}
