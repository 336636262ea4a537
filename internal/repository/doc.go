// Package repository holds the PostgreSQL implementations of the CRM stores.
//
// The tests in this package need a live database and are skipped unless
// WASTECRM_TEST_DATABASE_DSN is set, e.g.
//
//	WASTECRM_TEST_DATABASE_DSN="host=localhost user=crm password=crm dbname=crm_test sslmode=disable" \
//		go test ./internal/repository/
//
// Migrations are applied on connect; the tests only add rows with fresh ids
// and emails, so a shared development database can be reused.
package repository
