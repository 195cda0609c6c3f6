package usecase

import (
	"time"

	"venue_backoffice/internal/adapter/persistence/memory"
	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

var (
	testNow     = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	testClerk   = entities.Actor{ID: "emp-7", Group: entities.UserGroupEmployee}
	testManager = entities.Actor{ID: "mgr-2", Group: entities.UserGroupManager}
)

func testClock() lifecycle.Option {
	return lifecycle.WithClock(func() time.Time { return testNow })
}

type testStores struct {
	db         *memory.Database
	leases     *memory.Records[entities.Lease]
	invoices   *memory.Records[entities.Invoice]
	quotations *memory.Records[entities.Quotation]
	deposits   *memory.Records[entities.Deposit]
}

func newTestStores() testStores {
	db := memory.NewDatabase()
	return testStores{
		db:         db,
		leases:     memory.NewRecords[entities.Lease](db),
		invoices:   memory.NewRecords[entities.Invoice](db),
		quotations: memory.NewRecords[entities.Quotation](db),
		deposits:   memory.NewRecords[entities.Deposit](db),
	}
}
