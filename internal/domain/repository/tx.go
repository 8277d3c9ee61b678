package repository

import "context"

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Branches   BranchRepository
	Staff      StaffRepository
	Customers  CustomerRepository
	Categories CategoryRepository
	Products   ProductRepository
	Invoices   InvoiceRepository
	Movements  StockMovementRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
