// Package console is the interactive terminal frontend: a screen-per-entity
// shell over the typed API client, with the table pipeline handling search,
// filters, sorting, and paging on the client side.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/KennethTannn98/stockflow-console/internal/cache"
	"github.com/KennethTannn98/stockflow-console/internal/client"
	"github.com/KennethTannn98/stockflow-console/internal/screens"
	"github.com/KennethTannn98/stockflow-console/pkg/auth"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/session"
	"github.com/KennethTannn98/stockflow-console/pkg/tabular"
)

// Screen names the console can switch between.
const (
	ScreenDashboard    = "dashboard"
	ScreenProducts     = "products"
	ScreenTransactions = "transactions"
	ScreenAlerts       = "alerts"
	ScreenUsers        = "users"
)

// Console runs the interactive shell. It owns one screen per entity and the
// shared session; all rendering goes through out.
type Console struct {
	in   *bufio.Scanner
	out  io.Writer
	api  *client.Client
	sess session.Provider
	log  *logger.Logger

	products     *screens.Products
	transactions *screens.Transactions
	alerts       *screens.Alerts
	users        *screens.Users
	dashboard    *screens.Dashboard

	current string
}

// New wires a console over the given client, cache backend, and session.
func New(in io.Reader, out io.Writer, api *client.Client, store cache.Store, sess session.Provider, log *logger.Logger) *Console {
	return &Console{
		in:           bufio.NewScanner(in),
		out:          out,
		api:          api,
		sess:         sess,
		log:          log,
		products:     screens.NewProducts(api, store, log),
		transactions: screens.NewTransactions(api, store, log),
		alerts:       screens.NewAlerts(api, store, log),
		users:        screens.NewUsers(api, store, log),
		dashboard:    screens.NewDashboard(api, store, log),
		current:      ScreenDashboard,
	}
}

// Run drives the shell until quit, EOF, or context cancellation. A session
// without a token drops straight into the login prompt.
func (c *Console) Run(ctx context.Context) error {
	if !session.HasToken(c.sess) {
		if err := c.login(ctx); err != nil {
			return err
		}
	}

	c.printf("signed in as %s. Type 'help' for commands.\n", c.sess.Username())
	c.showScreen(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printf("%s> ", c.current)
		line, ok := c.readLine()
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		c.dispatch(ctx, fields[0], fields[1:])
	}
}

func (c *Console) dispatch(ctx context.Context, command string, args []string) {
	switch command {
	case "help":
		c.printHelp()
	case "open":
		c.openScreen(ctx, args)
	case "list", "show":
		c.showScreen(ctx)
	case "search":
		c.search(ctx, strings.Join(args, " "))
	case "filter":
		c.filter(ctx, args)
	case "sort":
		c.sort(ctx, args)
	case "page":
		c.page(ctx, args)
	case "new":
		c.create(ctx)
	case "edit":
		c.edit(ctx, args)
	case "delete":
		c.remove(ctx, args)
	case "resolve":
		c.setAlertResolved(ctx, args, true)
	case "reopen":
		c.setAlertResolved(ctx, args, false)
	case "history":
		c.history(ctx, args)
	case "role":
		c.changeRole(ctx, args)
	case "logout":
		c.logout(ctx)
	default:
		c.printf("unknown command %q. Type 'help'.\n", command)
	}
}

func (c *Console) openScreen(ctx context.Context, args []string) {
	if len(args) != 1 {
		c.printf("usage: open <dashboard|products|transactions|alerts|users>\n")
		return
	}
	name := strings.ToLower(args[0])
	switch name {
	case ScreenDashboard, ScreenProducts, ScreenTransactions, ScreenAlerts:
	case ScreenUsers:
		if !c.isAdmin() {
			c.printf("the users screen requires the admin role\n")
			return
		}
	default:
		c.printf("unknown screen %q\n", name)
		return
	}
	c.current = name
	c.showScreen(ctx)
}

func (c *Console) search(ctx context.Context, query string) {
	table, ok := c.currentTable()
	if !ok {
		c.printf("the %s screen has no table to search\n", c.current)
		return
	}
	table.Search(query)
	c.showScreen(ctx)
}

func (c *Console) filter(ctx context.Context, args []string) {
	if len(args) != 2 {
		c.printf("usage: filter <facet> <value|all>\n")
		return
	}
	table, ok := c.currentTable()
	if !ok {
		c.printf("the %s screen has no filters\n", c.current)
		return
	}
	table.Filter(args[0], args[1])
	c.showScreen(ctx)
}

func (c *Console) sort(ctx context.Context, args []string) {
	if len(args) != 1 {
		c.printf("usage: sort <field>|clear\n")
		return
	}
	table, ok := c.currentTable()
	if !ok {
		c.printf("the %s screen has no sortable table\n", c.current)
		return
	}
	if args[0] == "clear" {
		table.ClearSort()
	} else {
		table.ToggleSort(args[0])
	}
	c.showScreen(ctx)
}

func (c *Console) page(ctx context.Context, args []string) {
	if len(args) != 1 {
		c.printf("usage: page <n>|next|prev\n")
		return
	}
	table, ok := c.currentTable()
	if !ok {
		c.printf("the %s screen has no pages\n", c.current)
		return
	}
	state := table.State()
	switch args[0] {
	case "next":
		table.GoToPage(state.Page.Index + 1)
	case "prev":
		table.GoToPage(state.Page.Index - 1)
	default:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			c.printf("page must be a positive number\n")
			return
		}
		table.GoToPage(n - 1)
	}
	c.showScreen(ctx)
}

// tableControls is the table behavior every screen shares regardless of its
// row type: search, facets, sorting, and paging.
type tableControls interface {
	Search(query string)
	Filter(name, value string)
	ToggleSort(field string)
	ClearSort()
	GoToPage(index int)
	State() tabular.State
}

// currentTable resolves the active screen's table. The dashboard exposes its
// low-stock widget.
func (c *Console) currentTable() (tableControls, bool) {
	switch c.current {
	case ScreenProducts:
		return c.products, true
	case ScreenTransactions:
		return c.transactions, true
	case ScreenAlerts:
		return c.alerts, true
	case ScreenUsers:
		return c.users, true
	case ScreenDashboard:
		return c.dashboard.LowStock, true
	}
	return nil, false
}

func (c *Console) login(ctx context.Context) error {
	for {
		c.printf("username: ")
		username, ok := c.readLine()
		if !ok {
			return io.EOF
		}
		c.printf("password: ")
		password, ok := c.readLine()
		if !ok {
			return io.EOF
		}

		resp, err := c.api.Login(ctx, client.LoginRequest{Username: username, Password: password})
		if err != nil {
			c.printError(err)
			if pkgerrors.HasCode(err, pkgerrors.CodeNetwork) {
				return err
			}
			continue
		}
		if err := c.sess.Save(resp.Token, username); err != nil {
			return err
		}
		return nil
	}
}

func (c *Console) logout(ctx context.Context) {
	if err := c.sess.Clear(); err != nil {
		c.printError(err)
		return
	}
	c.printf("signed out\n")
	if err := c.login(ctx); err != nil {
		c.printf("login aborted\n")
	}
}

// isAdmin decodes the cached token locally; the server still enforces the
// role on every admin call.
func (c *Console) isAdmin() bool {
	cred, err := auth.DecodeCredential(c.sess.Token())
	if err != nil {
		return false
	}
	return cred.HasRole(enums.RoleAdmin)
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) printError(err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		c.printf("error: %v\n", err)
		return
	}
	c.printf("error: %s\n", typed.Message())
	if details, ok := typed.Details().(map[string]string); ok {
		for _, field := range slices.Sorted(maps.Keys(details)) {
			c.printf("  %s: %s\n", field, details[field])
		}
	}
}

func (c *Console) printHelp() {
	c.printf(`commands:
  open <screen>        switch screen (dashboard, products, transactions, alerts, users)
  list                 redraw the current screen
  search <text>        free-text search, empty text clears
  filter <facet> <v>   set a categorical filter, value 'all' clears
  sort <field>         toggle sort on a column, 'sort clear' restores order
  page <n>|next|prev   move between pages
  new                  create a record on the current screen
  edit <id>            edit a record
  delete <id>          delete a record (asks for confirmation)
  resolve <id>         alerts: mark resolved
  reopen <id>          alerts: mark unresolved
  history <productId>  transactions: movement history of one product
  role <user> <role>   users: change an account role
  logout               sign out and sign in again
  quit                 leave
`)
}
