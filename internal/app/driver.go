package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Driver translates input lines into event-queue work. It owns the
// filter controls the way the markup owns form inputs: criteria live
// here and are handed to the core as a value on every change.
type Driver struct {
	app      *App
	criteria domain.FilterCriteria
}

func NewDriver(app *App) *Driver {
	return &Driver{app: app}
}

// Run reads lines until EOF or ctx cancellation and posts each parsed
// command onto the app event queue.
func (d *Driver) Run(ctx context.Context, r io.Reader) {
	const op = "Driver.Run"
	log := slog.With("op", op)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		d.Handle(ctx, line)
	}
	if err := scanner.Err(); err != nil {
		log.Error("failed to read input", "err", err)
	}
}

func (d *Driver) Handle(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "login":
		if len(args) != 2 {
			d.usage("login <email> <password>")
			return
		}
		d.app.Do(func() { d.app.Login(args[0], args[1]) })
	case "register":
		if len(args) != 4 {
			d.usage("register <name> <email> <password> <confirm>")
			return
		}
		d.app.Do(func() {
			d.app.Register(args[0], args[1], args[2], args[3])
		})
	case "add":
		id, ok := d.intArg(args, "add <product-id>")
		if !ok {
			return
		}
		d.app.Do(func() { d.app.AddToCart(id) })
	case "inc":
		id, ok := d.intArg(args, "inc <product-id>")
		if !ok {
			return
		}
		d.app.Do(func() { d.app.ChangeQuantity(id, 1) })
	case "dec":
		id, ok := d.intArg(args, "dec <product-id>")
		if !ok {
			return
		}
		d.app.Do(func() { d.app.ChangeQuantity(id, -1) })
	case "buy":
		d.app.Do(d.app.Buy)
	case "search":
		d.criteria.SearchText = strings.Join(args, " ")
		d.apply()
	case "category":
		d.criteria.Category = strings.Join(args, " ")
		d.apply()
	case "price":
		if len(args) != 2 {
			d.usage("price <min> <max>")
			return
		}
		min, err1 := strconv.ParseFloat(args[0], 64)
		max, err2 := strconv.ParseFloat(args[1], 64)
		if err1 != nil || err2 != nil {
			d.usage("price <min> <max>")
			return
		}
		d.criteria.MinPrice, d.criteria.MaxPrice = min, max
		d.apply()
	case "rating":
		if len(args) != 1 {
			d.usage("rating <min>")
			return
		}
		min, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			d.usage("rating <min>")
			return
		}
		d.criteria.MinRating = min
		d.apply()
	case "sort":
		if len(args) != 1 {
			d.usage("sort <default|price-asc|price-desc|rating-desc>")
			return
		}
		d.criteria.Sort = domain.SortMode(args[0])
		d.apply()
	case "clear-filters":
		d.criteria = domain.FilterCriteria{}
		d.app.Do(d.app.ClearCriteria)
	case "pick":
		if len(args) != 1 {
			d.usage("pick <category>")
			return
		}
		category := args[0]
		d.criteria.Category = category
		d.app.Do(func() { d.app.SelectCategory(category) })
	case "reload":
		d.app.Do(func() { d.app.Reload(ctx) })
	case "hash":
		if len(args) != 1 {
			d.usage("hash <fragment>")
			return
		}
		d.app.Do(func() { d.app.FragmentChanged(args[0]) })
	case "help":
		d.help()
	default:
		// Anything else is treated as a route token: home, cart,
		// product/3, logout and so on.
		d.app.Do(func() { d.app.Navigate(line) })
	}
}

func (d *Driver) apply() {
	criteria := d.criteria
	d.app.Do(func() { d.app.ApplyCriteria(criteria) })
}

func (d *Driver) intArg(args []string, usage string) (int, bool) {
	if len(args) != 1 {
		d.usage(usage)
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		d.usage(usage)
		return 0, false
	}
	return id, true
}

func (d *Driver) usage(text string) {
	fmt.Println("usage:", text)
}

func (d *Driver) help() {
	fmt.Print(`commands:
  <route>                        home, categories, login, register,
                                 contacts, cart, product/<id>,
                                 order-confirmation, logout
  hash <fragment>                simulate an address-fragment change
  register <name> <email> <password> <confirm>
  login <email> <password>
  add|inc|dec <product-id>
  buy
  search <text> / category <name> / price <min> <max> / rating <min>
  sort <default|price-asc|price-desc|rating-desc>
  clear-filters / pick <category> / reload / help
`)
}
