package model

import "time"

// Company is the "Invoice To" party printed on subcontractor agreements.
type Company struct {
	Name    string
	Address []string
	Email   string
	Phone   string
}

// Agreement is the input of the subcontractor agreement document.
type Agreement struct {
	Request   ServiceRequestDetail
	InvoiceTo Company
	IssuedAt  time.Time
}

// RateSheet is the input of the subcontractor rate sheet export.
type RateSheet struct {
	Subcontractor Subcontractor
	Rates         []Rate
	AsOf          time.Time
}
