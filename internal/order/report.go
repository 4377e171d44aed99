package order

import "context"

// Report queries run against the order_totals view, which encodes the same
// discount/fee/GST formula as the pricing engine.

func (r *repository) RevenueByUser(ctx context.Context) ([]RevenueRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT COALESCE(a.username, 'guest') AS username,
		        COUNT(ot.order_id) AS order_count,
		        SUM(ot.final_total) AS total_revenue
		 FROM order_totals ot
		 LEFT JOIN accounts a ON a.id = ot.customer_id
		 WHERE ot.paid
		 GROUP BY ot.customer_id, a.username
		 ORDER BY total_revenue DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []RevenueRow
	for rows.Next() {
		var row RevenueRow
		if err := rows.Scan(&row.Username, &row.OrderCount, &row.TotalRevenue); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *repository) TopItems(ctx context.Context, limit int) ([]TopItemRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.name, COUNT(oi.id) AS times_ordered, ROUND(SUM(m.price), 2) AS revenue
		 FROM order_items oi
		 JOIN menu m ON m.id = oi.menu_item_id
		 JOIN orders o ON o.id = oi.order_id
		 WHERE o.paid
		 GROUP BY m.id, m.name
		 ORDER BY times_ordered DESC, m.name ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []TopItemRow
	for rows.Next() {
		var row TopItemRow
		if err := rows.Scan(&row.Name, &row.TimesOrdered, &row.Revenue); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *repository) PaidStats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(ROUND(AVG(final_total), 2), 0),
		        COALESCE(ROUND(MIN(final_total), 2), 0),
		        COALESCE(ROUND(MAX(final_total), 2), 0)
		 FROM order_totals
		 WHERE paid`,
	).Scan(&s.PaidOrders, &s.Avg, &s.Min, &s.Max)
	return s, err
}

func (r *repository) DiscountUsage(ctx context.Context) (DiscountUsage, error) {
	var d DiscountUsage
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FILTER (WHERE is_discounted), COUNT(*) FROM orders`,
	).Scan(&d.Discounted, &d.Total)
	return d, err
}
