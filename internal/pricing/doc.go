// Package pricing holds the rate structure rules of the CRM: validation of the
// flat versus base-plus-dump choice, total cost calculation and ranking of a
// subcontractor's rates against a requested service.
//
// All functions are pure and safe for concurrent use.
package pricing
