package console

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/KennethTannn98/stockflow-console/internal/screens"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

// create opens the create dialog of the active screen, collects the form,
// and submits it. A rejected submit keeps the dialog open and re-offers the
// typed values as defaults so only the bad field needs retyping; aborting
// closes the dialog.
func (c *Console) create(ctx context.Context) {
	switch c.current {
	case ScreenProducts:
		c.products.OpenCreate()
		draft, ok := c.promptProductDraft()
		for ok {
			if _, err := c.products.Create(ctx, draft); err != nil {
				c.printError(err)
				c.printf("enter keeps the previous value\n")
				draft, ok = c.reviseProductDraft(draft)
				continue
			}
			c.printf("product created\n")
			c.showScreen(ctx)
			return
		}
		c.products.CloseDialog()
		c.printf("aborted\n")
	case ScreenTransactions:
		c.transactions.OpenCreate()
		draft, ok := c.promptTransactionDraft()
		for ok {
			if _, err := c.transactions.Create(ctx, draft); err != nil {
				c.printError(err)
				c.printf("enter keeps the previous value\n")
				draft, ok = c.reviseTransactionDraft(draft)
				continue
			}
			c.printf("transaction recorded\n")
			c.showScreen(ctx)
			return
		}
		c.transactions.CloseDialog()
		c.printf("aborted\n")
	case ScreenAlerts:
		c.alerts.OpenCreate()
		id, ok := c.promptInt("product id")
		for ok {
			if _, err := c.alerts.Create(ctx, screens.AlertDraft{ProductID: id}); err != nil {
				c.printError(err)
				c.printf("enter keeps the previous value\n")
				id, ok = c.promptIntDefault("product id", id)
				continue
			}
			c.printf("alert raised\n")
			c.showScreen(ctx)
			return
		}
		c.alerts.CloseDialog()
		c.printf("aborted\n")
	case ScreenUsers:
		c.users.OpenCreate()
		draft, ok := c.promptUserDraft()
		for ok {
			if _, err := c.users.Create(ctx, draft); err != nil {
				c.printError(err)
				c.printf("enter keeps the previous value\n")
				draft, ok = c.reviseUserDraft(draft)
				continue
			}
			c.printf("user created\n")
			c.showScreen(ctx)
			return
		}
		c.users.CloseDialog()
		c.printf("aborted\n")
	default:
		c.printf("nothing to create on the %s screen\n", c.current)
	}
}

func (c *Console) edit(ctx context.Context, args []string) {
	id, ok := c.argID(args)
	if !ok {
		return
	}
	switch c.current {
	case ScreenProducts:
		c.products.OpenEdit(id)
		draft, ok := c.promptProductEditDraft()
		if !ok {
			c.products.CloseDialog()
			c.printf("aborted\n")
			return
		}
		if _, err := c.products.Update(ctx, id, draft); err != nil {
			c.printError(err)
			return
		}
		c.printf("product updated\n")
		c.showScreen(ctx)
	case ScreenTransactions:
		c.transactions.OpenEdit(id)
		draft, ok := c.promptTransactionDraft()
		if !ok {
			c.transactions.CloseDialog()
			c.printf("aborted\n")
			return
		}
		confirmed := c.confirm("corrections rewrite stock history. Continue?")
		if _, err := c.transactions.Update(ctx, id, draft, confirmed); err != nil {
			c.printError(err)
			if !confirmed {
				c.transactions.CloseDialog()
			}
			return
		}
		c.printf("transaction corrected\n")
		c.showScreen(ctx)
	default:
		c.printf("nothing to edit on the %s screen\n", c.current)
	}
}

func (c *Console) remove(ctx context.Context, args []string) {
	id, ok := c.argID(args)
	if !ok {
		return
	}
	switch c.current {
	case ScreenProducts:
		c.products.OpenConfirmDelete(id)
		if !c.confirm("delete this product?") {
			c.products.CloseDialog()
			c.printf("kept\n")
			return
		}
		if err := c.products.Delete(ctx, id); err != nil {
			c.printError(err)
			return
		}
		c.printf("product deleted\n")
		c.showScreen(ctx)
	case ScreenTransactions:
		c.transactions.OpenConfirmDelete(id)
		confirmed := c.confirm("deleting a movement reverses its stock effect. Continue?")
		if !confirmed {
			c.transactions.CloseDialog()
			c.printf("kept\n")
			return
		}
		if err := c.transactions.Delete(ctx, id, confirmed); err != nil {
			c.printError(err)
			return
		}
		c.printf("transaction deleted\n")
		c.showScreen(ctx)
	case ScreenAlerts:
		c.alerts.OpenConfirmDelete(id)
		if !c.confirm("delete this alert?") {
			c.alerts.CloseDialog()
			c.printf("kept\n")
			return
		}
		if err := c.alerts.Delete(ctx, id); err != nil {
			c.printError(err)
			return
		}
		c.printf("alert deleted\n")
		c.showScreen(ctx)
	case ScreenUsers:
		c.users.OpenConfirmDelete(id)
		if !c.confirm("delete this account?") {
			c.users.CloseDialog()
			c.printf("kept\n")
			return
		}
		if err := c.users.Delete(ctx, id); err != nil {
			c.printError(err)
			return
		}
		c.printf("account deleted\n")
		c.showScreen(ctx)
	default:
		c.printf("nothing to delete on the %s screen\n", c.current)
	}
}

func (c *Console) setAlertResolved(ctx context.Context, args []string, resolved bool) {
	if c.current != ScreenAlerts {
		c.printf("resolve and reopen work on the alerts screen\n")
		return
	}
	id, ok := c.argID(args)
	if !ok {
		return
	}
	if _, err := c.alerts.SetResolved(ctx, id, resolved); err != nil {
		c.printError(err)
		return
	}
	if resolved {
		c.printf("alert resolved\n")
	} else {
		c.printf("alert reopened\n")
	}
	c.showScreen(ctx)
}

func (c *Console) history(ctx context.Context, args []string) {
	if c.current != ScreenTransactions && c.current != ScreenProducts {
		c.printf("history works on the products and transactions screens\n")
		return
	}
	id, ok := c.argID(args)
	if !ok {
		return
	}
	rows, err := c.transactions.History(ctx, id)
	if err != nil {
		c.printError(err)
		return
	}
	if len(rows) == 0 {
		c.printf("no movements for product %d\n", id)
		return
	}
	c.printTransactionRows(rows)
}

func (c *Console) changeRole(ctx context.Context, args []string) {
	if c.current != ScreenUsers {
		c.printf("role changes work on the users screen\n")
		return
	}
	if len(args) != 2 {
		c.printf("usage: role <username> <ROLE_USER|ROLE_ADMIN|ROLE_MANAGER>\n")
		return
	}
	if _, err := c.users.UpdateRole(ctx, args[0], enums.Role(strings.ToUpper(args[1]))); err != nil {
		c.printError(err)
		return
	}
	c.printf("role updated\n")
	c.showScreen(ctx)
}

func (c *Console) argID(args []string) (int, bool) {
	if len(args) != 1 {
		c.printf("expected exactly one record id\n")
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		c.printf("record id must be a positive number\n")
		return 0, false
	}
	return id, true
}

func (c *Console) promptProductDraft() (screens.ProductDraft, bool) {
	var draft screens.ProductDraft
	var ok bool
	if draft.Name, ok = c.promptString("name"); !ok {
		return draft, false
	}
	if draft.SKU, ok = c.promptString("sku"); !ok {
		return draft, false
	}
	if draft.Category, ok = c.promptString("category"); !ok {
		return draft, false
	}
	if draft.Quantity, ok = c.promptInt("quantity"); !ok {
		return draft, false
	}
	if draft.Price, ok = c.promptDecimal("price"); !ok {
		return draft, false
	}
	if draft.Reorder, ok = c.promptInt("reorder level"); !ok {
		return draft, false
	}
	return draft, true
}

func (c *Console) promptProductEditDraft() (screens.ProductEditDraft, bool) {
	var draft screens.ProductEditDraft
	var ok bool
	if draft.Name, ok = c.promptString("name"); !ok {
		return draft, false
	}
	if draft.Category, ok = c.promptString("category"); !ok {
		return draft, false
	}
	if draft.Quantity, ok = c.promptInt("quantity"); !ok {
		return draft, false
	}
	if draft.Price, ok = c.promptDecimal("price"); !ok {
		return draft, false
	}
	if draft.Reorder, ok = c.promptInt("reorder level"); !ok {
		return draft, false
	}
	return draft, true
}

func (c *Console) promptTransactionDraft() (screens.TransactionDraft, bool) {
	var draft screens.TransactionDraft
	var ok bool
	if draft.ProductID, ok = c.promptInt("product id"); !ok {
		return draft, false
	}
	if draft.Quantity, ok = c.promptInt("quantity"); !ok {
		return draft, false
	}
	if draft.Type, ok = c.promptString("type (IN/OUT/ADJUSTMENT)"); !ok {
		return draft, false
	}
	draft.Type = strings.ToUpper(draft.Type)
	if draft.Date, ok = c.promptDate("date (YYYY-MM-DD, empty for today)"); !ok {
		return draft, false
	}
	if draft.Reference, ok = c.promptString("reference"); !ok {
		return draft, false
	}
	return draft, true
}

func (c *Console) promptUserDraft() (screens.UserDraft, bool) {
	var draft screens.UserDraft
	var ok bool
	if draft.Username, ok = c.promptString("username"); !ok {
		return draft, false
	}
	if draft.Password, ok = c.promptString("password"); !ok {
		return draft, false
	}
	if draft.Role, ok = c.promptString("role (ROLE_USER/ROLE_ADMIN/ROLE_MANAGER)"); !ok {
		return draft, false
	}
	draft.Role = strings.ToUpper(draft.Role)
	return draft, true
}

func (c *Console) reviseProductDraft(prev screens.ProductDraft) (screens.ProductDraft, bool) {
	draft := prev
	var ok bool
	if draft.Name, ok = c.promptStringDefault("name", prev.Name); !ok {
		return draft, false
	}
	if draft.SKU, ok = c.promptStringDefault("sku", prev.SKU); !ok {
		return draft, false
	}
	if draft.Category, ok = c.promptStringDefault("category", prev.Category); !ok {
		return draft, false
	}
	if draft.Quantity, ok = c.promptIntDefault("quantity", prev.Quantity); !ok {
		return draft, false
	}
	if draft.Price, ok = c.promptDecimalDefault("price", prev.Price); !ok {
		return draft, false
	}
	if draft.Reorder, ok = c.promptIntDefault("reorder level", prev.Reorder); !ok {
		return draft, false
	}
	return draft, true
}

func (c *Console) reviseTransactionDraft(prev screens.TransactionDraft) (screens.TransactionDraft, bool) {
	draft := prev
	var ok bool
	if draft.ProductID, ok = c.promptIntDefault("product id", prev.ProductID); !ok {
		return draft, false
	}
	if draft.Quantity, ok = c.promptIntDefault("quantity", prev.Quantity); !ok {
		return draft, false
	}
	if draft.Type, ok = c.promptStringDefault("type (IN/OUT/ADJUSTMENT)", prev.Type); !ok {
		return draft, false
	}
	draft.Type = strings.ToUpper(draft.Type)
	if draft.Date, ok = c.promptDateDefault("date (YYYY-MM-DD)", prev.Date); !ok {
		return draft, false
	}
	if draft.Reference, ok = c.promptStringDefault("reference", prev.Reference); !ok {
		return draft, false
	}
	return draft, true
}

func (c *Console) reviseUserDraft(prev screens.UserDraft) (screens.UserDraft, bool) {
	draft := prev
	var ok bool
	if draft.Username, ok = c.promptStringDefault("username", prev.Username); !ok {
		return draft, false
	}
	password, ok := c.promptString("password (enter keeps previous)")
	if !ok {
		return draft, false
	}
	if password != "" {
		draft.Password = password
	}
	if draft.Role, ok = c.promptStringDefault("role (ROLE_USER/ROLE_ADMIN/ROLE_MANAGER)", prev.Role); !ok {
		return draft, false
	}
	draft.Role = strings.ToUpper(draft.Role)
	return draft, true
}

func (c *Console) promptString(label string) (string, bool) {
	c.printf("%s: ", label)
	return c.readLine()
}

func (c *Console) promptInt(label string) (int, bool) {
	for {
		raw, ok := c.promptString(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.printf("enter a whole number\n")
			continue
		}
		return n, true
	}
}

func (c *Console) promptDecimal(label string) (decimal.Decimal, bool) {
	for {
		raw, ok := c.promptString(label)
		if !ok {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			c.printf("enter an amount like 12.50\n")
			continue
		}
		return d, true
	}
}

func (c *Console) promptDate(label string) (models.Date, bool) {
	for {
		raw, ok := c.promptString(label)
		if !ok {
			return models.Date{}, false
		}
		if raw == "" {
			return models.Today(), true
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			c.printf("enter a date like 2026-08-29\n")
			continue
		}
		return d, true
	}
}

func (c *Console) promptStringDefault(label, current string) (string, bool) {
	raw, ok := c.promptString(label + " [" + current + "]")
	if !ok {
		return "", false
	}
	if raw == "" {
		return current, true
	}
	return raw, true
}

func (c *Console) promptIntDefault(label string, current int) (int, bool) {
	for {
		raw, ok := c.promptString(label + " [" + strconv.Itoa(current) + "]")
		if !ok {
			return 0, false
		}
		if raw == "" {
			return current, true
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.printf("enter a whole number\n")
			continue
		}
		return n, true
	}
}

func (c *Console) promptDecimalDefault(label string, current decimal.Decimal) (decimal.Decimal, bool) {
	for {
		raw, ok := c.promptString(label + " [" + current.String() + "]")
		if !ok {
			return decimal.Zero, false
		}
		if raw == "" {
			return current, true
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			c.printf("enter an amount like 12.50\n")
			continue
		}
		return d, true
	}
}

func (c *Console) promptDateDefault(label string, current models.Date) (models.Date, bool) {
	for {
		raw, ok := c.promptString(label + " [" + current.String() + "]")
		if !ok {
			return models.Date{}, false
		}
		if raw == "" {
			return current, true
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			c.printf("enter a date like 2026-08-29\n")
			continue
		}
		return d, true
	}
}

func (c *Console) confirm(question string) bool {
	c.printf("%s [y/N] ", question)
	answer, ok := c.readLine()
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
