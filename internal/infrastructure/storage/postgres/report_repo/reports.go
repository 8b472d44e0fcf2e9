// Package report_repo provides the PostgreSQL implementation of the
// report queries: joins over the stock register, the catalogs and the
// exit documents.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gestock/internal/core/id"
	"gestock/internal/core/types"
	"gestock/internal/domain/reports"
	"gestock/internal/infrastructure/storage/postgres"
)

var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReportRepo creates a report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ReportRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// GetStockLevels joins the level matrix with product and warehouse names.
func (r *ReportRepo) GetStockLevels(ctx context.Context, filter reports.StockLevelsFilter) (*reports.StockLevelsReport, error) {
	q := r.builder.Select(
		"p.id AS product_id",
		"p.reference AS product_reference",
		"p.name AS product_name",
		"p.unit",
		"w.id AS warehouse_id",
		"w.name AS warehouse_name",
		"l.quantity",
		"p.min_stock_alert",
	).
		From("reg_stock_levels l").
		Join("cat_products p ON p.id = l.product_id").
		Join("cat_warehouses w ON w.id = l.warehouse_id").
		OrderBy("p.reference", "w.name")

	if filter.StoreID != nil {
		q = q.Where(squirrel.Eq{"p.store_id": *filter.StoreID})
	}
	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"l.warehouse_id": *filter.WarehouseID})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"l.product_id": *filter.ProductID})
	}
	if filter.ExcludeZero {
		q = q.Where(squirrel.NotEq{"l.quantity": 0})
	}

	countQ := r.builder.Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}

	report := &reports.StockLevelsReport{}
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&report.TotalItems); err != nil {
		return nil, fmt.Errorf("count stock levels: %w", err)
	}

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.querier(ctx), &report.Items, sql, args...); err != nil {
		return nil, fmt.Errorf("select stock levels: %w", err)
	}

	return report, nil
}

// GetLowStock lists products at or below their alert threshold, summed
// across their store's warehouses. Products with no stock rows count as
// zero on hand.
func (r *ReportRepo) GetLowStock(ctx context.Context, storeID *id.ID) ([]reports.LowStockItem, error) {
	q := r.builder.Select(
		"p.id AS product_id",
		"p.reference AS product_reference",
		"p.name AS product_name",
		"COALESCE(SUM(l.quantity), 0) AS quantity",
		"p.min_stock_alert",
	).
		From("cat_products p").
		LeftJoin("reg_stock_levels l ON l.product_id = p.id").
		Where(squirrel.Eq{"p.is_active": true}).
		Where(squirrel.Gt{"p.min_stock_alert": 0}).
		GroupBy("p.id", "p.reference", "p.name", "p.min_stock_alert").
		Having("COALESCE(SUM(l.quantity), 0) <= p.min_stock_alert").
		OrderBy("p.reference")

	if storeID != nil {
		q = q.Where(squirrel.Eq{"p.store_id": *storeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []reports.LowStockItem
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select low stock: %w", err)
	}

	return items, nil
}

// GetCustomerDebts lists indebted customers with their open exit count.
func (r *ReportRepo) GetCustomerDebts(ctx context.Context, filter reports.CustomerDebtFilter) (*reports.CustomerDebtReport, error) {
	q := r.builder.Select(
		"c.id AS customer_id",
		"c.name AS customer_name",
		"c.phone",
		"c.debt",
		"COUNT(e.id) FILTER (WHERE e.remaining_amount > 0) AS unpaid_exits",
	).
		From("cat_customers c").
		LeftJoin("doc_stock_exits e ON e.customer_id = c.id").
		GroupBy("c.id", "c.name", "c.phone", "c.debt").
		OrderBy("c.debt DESC", "c.name")

	if filter.MinDebt != nil {
		q = q.Where(squirrel.GtOrEq{"c.debt": *filter.MinDebt})
	} else {
		q = q.Where(squirrel.Gt{"c.debt": 0})
	}
	if filter.StoreID != nil {
		q = q.Where(squirrel.Eq{"c.store_id": *filter.StoreID})
	}

	countQ := r.builder.Select("COUNT(*)", "COALESCE(SUM(sub.debt), 0)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}

	report := &reports.CustomerDebtReport{TotalDebt: types.Zero()}
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&report.TotalItems, &report.TotalDebt); err != nil {
		return nil, fmt.Errorf("count customer debts: %w", err)
	}

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.querier(ctx), &report.Items, sql, args...); err != nil {
		return nil, fmt.Errorf("select customer debts: %w", err)
	}

	return report, nil
}

// GetSalesSummary aggregates exits over the filter period.
func (r *ReportRepo) GetSalesSummary(ctx context.Context, filter reports.SalesSummaryFilter) (*reports.SalesSummary, error) {
	q := r.builder.Select(
		"COUNT(*) AS exit_count",
		"COALESCE(SUM(total_amount), 0) AS total",
		"COALESCE(SUM(paid_amount), 0) AS paid",
		"COALESCE(SUM(remaining_amount), 0) AS remaining",
	).
		From("doc_stock_exits").
		Where(squirrel.GtOrEq{"date": filter.FromDate}).
		Where(squirrel.LtOrEq{"date": filter.ToDate})

	if filter.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *filter.StoreID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	summary := &reports.SalesSummary{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	err = r.querier(ctx).QueryRow(ctx, sql, args...).
		Scan(&summary.ExitCount, &summary.Total, &summary.Paid, &summary.Remaining)
	if err != nil {
		return nil, fmt.Errorf("aggregate sales: %w", err)
	}

	return summary, nil
}
