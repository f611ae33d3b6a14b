// Package console runs the interactive operator menu over a reader and a writer.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"posledger/internal/domain"
	applog "posledger/internal/log"
	"posledger/internal/money"
	"posledger/internal/services"
	"posledger/internal/store"
	"posledger/internal/validate"
)

const menu = `
================ MENU ================
[ap]  Add product
[rp]  Restock
[lp]  List products
[nv]  New sale
[lv]  List sales (all)
[lvh] List sales (today)
[s]   Save
[q]   Quit
=> `

// errEOF ends the loop when input runs out in the middle of a prompt.
var errEOF = errors.New("console: end of input")

type Console struct {
	Store *store.Store
	// Save persists the store. Nil when persistence is off.
	Save func() error

	in  *bufio.Scanner
	out io.Writer
}

func New(s *store.Store, save func() error, in io.Reader, out io.Writer) *Console {
	return &Console{Store: s, Save: save, in: bufio.NewScanner(in), out: out}
}

// Run reads commands until q or end of input. End of input quits like q.
// The returned error is only ever a save failure at quit.
func (c *Console) Run() error {
	for {
		line, err := c.readLine(menu)
		if err != nil {
			return c.quit()
		}
		cmd, _ := validate.Command(line)
		applog.Info(nil, "menu.command", map[string]any{"cmd": cmd})

		switch cmd {
		case "ap":
			err = c.addProduct()
		case "rp":
			err = c.restock()
		case "lp":
			c.listProducts()
		case "nv":
			err = c.newSale()
		case "lv":
			c.listSales(false)
		case "lvh":
			c.listSales(true)
		case "s":
			c.saveNow()
		case "q":
			return c.quit()
		default:
			c.printf("Invalid option.\n")
		}
		if errors.Is(err, errEOF) {
			return c.quit()
		}
	}
}

func (c *Console) quit() error {
	var err error
	if c.Save != nil {
		if err = c.Save(); err != nil {
			c.printf("@@@ Could not save: %v @@@\n", err)
		} else {
			c.printf("Data saved.\n")
		}
	}
	c.printf("Bye.\n")
	return err
}

func (c *Console) saveNow() {
	if c.Save == nil {
		c.printf("@@@ Persistence is off. @@@\n")
		return
	}
	if err := c.Save(); err != nil {
		c.printf("@@@ Could not save: %v @@@\n", err)
		return
	}
	c.printf("Data saved.\n")
}

func (c *Console) addProduct() error {
	name, err := c.readName("Product name: ")
	if err != nil {
		return err
	}
	price, err := c.readAmount("Price (e.g. 19.90): ")
	if err != nil {
		return err
	}
	stock, err := c.readCount("Initial stock: ")
	if err != nil {
		return err
	}
	p, err := c.Store.AddProduct(name, price, stock)
	if err != nil {
		c.report(err)
		return nil
	}
	c.printf("=== Product added: [%03d] %s (%s) stock=%d ===\n", p.Code, p.Name, p.Price, p.Stock)
	return nil
}

func (c *Console) restock() error {
	code, err := c.readCount("Product code: ")
	if err != nil {
		return err
	}
	qty, err := c.readCount("Quantity to add: ")
	if err != nil {
		return err
	}
	p, err := c.Store.Restock(code, qty)
	if err != nil {
		c.report(err)
		return nil
	}
	c.printf("=== Stock updated: [%03d] %s -> %d ===\n", p.Code, p.Name, p.Stock)
	return nil
}

func (c *Console) newSale() error {
	code, err := c.readCount("Product code: ")
	if err != nil {
		return err
	}
	qty, err := c.readCount("Quantity: ")
	if err != nil {
		return err
	}
	pct, err := c.readAmount("Discount % (0 to 100): ")
	if err != nil {
		return err
	}
	sale, err := c.Store.ExecuteSale([]services.LineRequest{{Code: code, Quantity: qty}}, pct)
	if err != nil {
		c.report(err)
		return nil
	}
	printReceipt(c.out, sale)
	return nil
}

func (c *Console) listProducts() {
	printProducts(c.out, c.Store.Products())
}

func (c *Console) listSales(today bool) {
	sales, revenue := c.Store.Sales(today)
	printSales(c.out, sales, revenue)
}

// report prints a recoverable failure. State is already unchanged.
func (c *Console) report(err error) {
	var (
		nf *domain.NotFoundError
		se *domain.StockError
		ve *domain.ValidationError
	)
	switch {
	case errors.As(err, &nf):
		c.printf("@@@ Product %d not found. @@@\n", nf.Code)
	case errors.As(err, &se):
		c.printf("@@@ Insufficient stock for %s. Available: %d @@@\n", se.Name, se.Available)
	case errors.As(err, &ve):
		c.printf("@@@ Invalid %s: %s @@@\n", ve.Field, ve.Message)
	default:
		c.printf("@@@ %v @@@\n", err)
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		return "", errEOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) readName(prompt string) (string, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return "", err
		}
		if name, ok := validate.Name(s); ok {
			return name, nil
		}
		c.printf("@@@ Invalid name. @@@\n")
	}
}

func (c *Console) readAmount(prompt string) (money.Money, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return money.Money{}, err
		}
		if m, ok := validate.Amount(s); ok {
			return m, nil
		}
		c.printf("@@@ Invalid value. Try again. @@@\n")
	}
}

func (c *Console) readCount(prompt string) (int, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if n, ok := validate.Count(s); ok {
			return n, nil
		}
		c.printf("@@@ Invalid whole number. @@@\n")
	}
}
