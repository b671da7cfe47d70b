package console

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

func (c *Console) showScreen(ctx context.Context) {
	switch c.current {
	case ScreenDashboard:
		c.renderDashboard(ctx)
	case ScreenProducts:
		c.renderProducts(ctx)
	case ScreenTransactions:
		c.renderTransactions(ctx)
	case ScreenAlerts:
		c.renderAlerts(ctx)
	case ScreenUsers:
		c.renderUsers(ctx)
	}
}

func (c *Console) renderProducts(ctx context.Context) {
	result, err := c.products.Rows(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	w := c.newTable()
	fmt.Fprintln(w, "ID\tNAME\tSKU\tCATEGORY\tQTY\tPRICE\tREORDER\tSTATUS")
	for _, p := range result.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%d\t%s\n",
			p.ID, p.Name, p.SKU, p.Category, p.Quantity, p.Price.StringFixed(2), p.Reorder, p.Status())
	}
	w.Flush()
	c.printFooter(result.PageIndex, result.TotalPages, result.TotalRows)
}

func (c *Console) renderTransactions(ctx context.Context) {
	result, err := c.transactions.Rows(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	c.printTransactionRows(result.Rows)
	c.printFooter(result.PageIndex, result.TotalPages, result.TotalRows)
}

func (c *Console) printTransactionRows(rows []models.Transaction) {
	w := c.newTable()
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tQTY\tPRODUCT\tSKU\tREFERENCE")
	for _, t := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			t.ID, t.Date.String(), t.Type, t.Quantity, t.ProductName, t.ProductSKU, t.Reference)
	}
	w.Flush()
}

func (c *Console) renderAlerts(ctx context.Context) {
	result, err := c.alerts.Rows(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	w := c.newTable()
	fmt.Fprintln(w, "ID\tPRODUCT\tSKU\tSTATE\tRAISED\tUPDATED BY")
	for _, a := range result.Rows {
		state := "open"
		if a.Resolved {
			state = "resolved"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.ProductName, a.ProductSKU, state, a.CreatedDate.Format("2006-01-02"), a.UpdatedBy)
	}
	w.Flush()
	c.printFooter(result.PageIndex, result.TotalPages, result.TotalRows)
}

func (c *Console) renderUsers(ctx context.Context) {
	if !c.isAdmin() {
		c.printf("the users screen requires the admin role\n")
		return
	}
	result, err := c.users.Rows(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	w := c.newTable()
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tCREATED")
	for _, u := range result.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedDate.Format("2006-01-02"))
	}
	w.Flush()
	c.printFooter(result.PageIndex, result.TotalPages, result.TotalRows)
}

func (c *Console) renderDashboard(ctx context.Context) {
	stats, err := c.dashboard.Stats(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	c.printf("products: %d  transactions: %d  open alerts: %d  out of stock: %d  low stock: %d\n",
		stats.TotalProducts, stats.TotalTransactions, stats.OpenAlerts, stats.OutOfStock, stats.LowStock)

	points, err := c.dashboard.MonthlyTransactions(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	c.printf("\nmonthly volume (in/out):\n")
	w := c.newTable()
	for _, p := range points {
		fmt.Fprintf(w, "  %s\t%d\t%d\n", p.Month, p.In, p.Out)
	}
	w.Flush()

	low, err := c.dashboard.LowStock.Rows(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	c.printf("\nlow stock:\n")
	w = c.newTable()
	for _, p := range low.Rows {
		fmt.Fprintf(w, "  %s\t%s\t%d of %d\t%s\n", p.Name, p.SKU, p.Quantity, p.Reorder, p.Status())
	}
	w.Flush()
	if low.TotalPages > 1 {
		c.printFooter(low.PageIndex, low.TotalPages, low.TotalRows)
	}

	today, err := c.dashboard.TodaysTransactions(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	c.printf("\ntoday's transactions:\n")
	c.printTransactionRows(today)
}

func (c *Console) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
}

func (c *Console) printFooter(pageIndex, totalPages, totalRows int) {
	if totalPages == 0 {
		c.printf("no rows\n")
		return
	}
	c.printf("page %d of %d (%d rows)\n", pageIndex+1, totalPages, totalRows)
}
