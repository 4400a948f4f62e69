package model

import "time"

// RawLineItem is a single product line as delivered by the scraping backend.
type RawLineItem struct {
	Name       string  `json:"name"`
	Code       string  `json:"code,omitempty"`
	Unit       string  `json:"unit,omitempty"`
	Category   string  `json:"category,omitempty"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// RawInvoice is the untrusted payload returned by the scraping backend for
// one fiscal receipt. Field names follow the backend's wire format.
type RawInvoice struct {
	StoreName     string        `json:"store_name"`
	StoreCNPJ     string        `json:"store_cnpj,omitempty"`
	StoreAddress  string        `json:"store_address,omitempty"`
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   string        `json:"invoice_date"`
	QRURL         string        `json:"qr_url,omitempty"`
	Protocol      string        `json:"protocol,omitempty"`
	AccessKey     string        `json:"access_key,omitempty"`
	Series        string        `json:"series,omitempty"`
	Items         []RawLineItem `json:"items"`
	TotalAmount   float64       `json:"total_amount"`
	Discounts     float64       `json:"discounts,omitempty"`
	Taxes         float64       `json:"taxes,omitempty"`
}

// LineItem is a normalized product line. Category is always a member of the
// taxonomy, never empty.
type LineItem struct {
	Name       string
	Code       string
	Unit       string
	Category   string
	Quantity   float64
	UnitPrice  float64
	TotalPrice float64
}

// NormalizedInvoice is the record produced by ingestion and handed to
// storage. EmissionDate comes from the scraper's date string; ScanTimestamp
// is the wall-clock time of ingestion and is never derived from it.
type NormalizedInvoice struct {
	EmissionDate   time.Time
	ScanTimestamp  time.Time
	UserID         string
	StoreName      string
	StoreCNPJ      string
	StoreAddress   string
	InvoiceNumber  string
	QRURL          string
	Protocol       string
	AccessKey      string
	Series         string
	DateConfidence Confidence
	DateWarnings   []string
	Items          []LineItem
	ID             int64
	TotalAmount    float64
	Discounts      float64
	Taxes          float64
}
