package mysql

import (
	"context"
	"errors"
	"fmt"

	"invoicing/domain/invoice"
	"invoicing/infrastructure/persistence"
	"invoicing/infrastructure/persistence/mysql/po"
	"invoicing/infrastructure/persistence/retry"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceRepository MySQL/GORM implementation of invoice.Repository
// Root and lines are written by hand, GORM associations are not used so the
// aggregate boundary stays explicit.
type InvoiceRepository struct {
	db    *gorm.DB
	retry retry.Config
}

func NewInvoiceRepository(db *gorm.DB, retryConfig retry.Config) *InvoiceRepository {
	return &InvoiceRepository{db: db, retry: retryConfig}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *InvoiceRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save upserts the invoice row and replaces its lines in one transaction.
// Standalone calls open their own transaction and retry it on deadlock or lock
// timeout; calls inside a caller's transaction join it and are not retried.
func (r *InvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	invoicePO, linePOs := po.FromInvoiceDomain(inv)

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, invoicePO, linePOs)
	}

	return retry.ExecuteWithRetry(ctx, r.retry, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return r.saveWithTx(tx, invoicePO, linePOs)
		})
	})
}

func (r *InvoiceRepository) saveWithTx(tx *gorm.DB, invoicePO *po.InvoicePO, linePOs []po.ProductLinePO) error {
	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(invoicePO).Error; err != nil {
		return fmt.Errorf("upsert invoice %s: %w", invoicePO.ID, err)
	}

	// delete then insert keeps positions contiguous
	if err := tx.Where("invoice_id = ?", invoicePO.ID).Delete(&po.ProductLinePO{}).Error; err != nil {
		return fmt.Errorf("delete product lines of invoice %s: %w", invoicePO.ID, err)
	}

	if len(linePOs) > 0 {
		if err := tx.Create(&linePOs).Error; err != nil {
			return fmt.Errorf("insert product lines of invoice %s: %w", invoicePO.ID, err)
		}
	}

	return nil
}

// FindByID loads the invoice and its lines ordered by position.
func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	db := r.getDB(ctx)

	var invoicePO po.InvoicePO
	if err := db.First(&invoicePO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoice.NewInvoiceNotFoundError(id)
		}
		return nil, err
	}

	// no Preload, lines are read explicitly
	var linePOs []po.ProductLinePO
	if err := db.Where("invoice_id = ?", id).Order("position").Find(&linePOs).Error; err != nil {
		return nil, err
	}

	return invoicePO.ToDomain(linePOs)
}

var _ invoice.Repository = (*InvoiceRepository)(nil)
