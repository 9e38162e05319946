package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/usecase/product"
	"github.com/Pesokrava/storefront/internal/usecase/store"
)

const (
	optionList    = "1"
	optionTotal   = "2"
	optionOrder   = "3"
	optionRestock = "4"
	optionQuit    = "5"
)

// Options holds presentation settings
type Options struct {
	ShopName string
	Currency string
}

// Menu is the interactive text front end of a store
type Menu struct {
	store  *store.Store
	admin  *product.Service
	out    io.Writer
	lines  chan string
	opts   Options
	logger *logger.Logger
}

// NewMenu creates a menu reading commands from in and writing to out
func NewMenu(s *store.Store, admin *product.Service, in io.Reader, out io.Writer, opts Options, log *logger.Logger) *Menu {
	m := &Menu{
		store:  s,
		admin:  admin,
		out:    out,
		lines:  make(chan string),
		opts:   opts,
		logger: log,
	}

	go func() {
		defer close(m.lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			m.lines <- scanner.Text()
		}
	}()

	return m
}

// Run serves the menu until the shopper quits, input ends or ctx is cancelled.
// Only cancellation is reported as an error.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()

		choice, err := m.prompt(ctx, "Please choose a number: ")
		if err != nil {
			return m.stop(err)
		}

		switch choice {
		case optionList:
			m.listProducts(m.store.AllProducts(false))
		case optionTotal:
			m.printf("\nTotal amount of items in store: %d\n", m.store.TotalQuantity())
		case optionOrder:
			err = m.order(ctx)
		case optionRestock:
			err = m.restock(ctx)
		case optionQuit:
			m.printf("Thank you for visiting %s, see you soon.\n", m.opts.ShopName)
			return nil
		default:
			m.printf("Invalid choice. Please try again.\n")
		}

		if err != nil {
			return m.stop(err)
		}
	}
}

func (m *Menu) stop(err error) error {
	if err == io.EOF {
		m.logger.Debug("Input closed")
		return nil
	}
	return err
}

func (m *Menu) printMenu() {
	m.printf("\n   %s Menu\n", m.opts.ShopName)
	m.printf("   %s\n", strings.Repeat("-", len(m.opts.ShopName)+5))
	m.printf("1. List all products in store\n")
	m.printf("2. Show total amount in store\n")
	m.printf("3. Make an order\n")
	m.printf("4. Restock a product\n")
	m.printf("5. Quit\n")
}

func (m *Menu) listProducts(products []*domain.Product) {
	m.printf("------\n")
	for i, p := range products {
		m.printf("%d. %s\n", i+1, p.Describe())
	}
	m.printf("------\n")
}

func (m *Menu) order(ctx context.Context) error {
	var lines []store.OrderLine

	for {
		products := m.store.AllProducts(false)
		if len(products) == 0 {
			m.printf("\nNothing left to order.\n")
			break
		}
		m.listProducts(products)

		p, qty, err := m.pick(ctx, products, "\nWhich product # do you want? ", "What amount do you want? ")
		if err != nil {
			return err
		}
		if p != nil {
			lines = append(lines, store.Line(p, qty))
			m.printf("Added %d x %s to your order.\n", qty, p.Name())
		}

		another, err := m.prompt(ctx, "Do you want to buy another product? (yes/no): ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(another, "yes") && !strings.EqualFold(another, "y") {
			break
		}
	}

	if len(lines) == 0 {
		return nil
	}

	receipt := m.store.Order(lines)
	for _, line := range receipt.Failed() {
		m.printf("Could not order %d x %s: %v\n", line.Line.Quantity, line.Line.Name, line.Err)
	}
	m.printf("\nTotal price of your order: %s\n", m.money(receipt.Total))
	return nil
}

func (m *Menu) restock(ctx context.Context) error {
	products := m.store.AllProducts(true)
	m.listProducts(products)

	p, units, err := m.pick(ctx, products, "\nWhich product # do you want to restock? ", "How many units arrived? ")
	if err != nil || p == nil {
		return err
	}

	view, err := m.admin.Restock(p.Name(), units)
	if err != nil {
		m.printf("Could not restock %s: %v\n", p.Name(), err)
		return nil
	}
	m.printf("Restocked: %s\n", view)
	return nil
}

// pick asks for a product number and a positive amount. Invalid answers yield a nil product.
func (m *Menu) pick(ctx context.Context, products []*domain.Product, productPrompt, amountPrompt string) (*domain.Product, int, error) {
	answer, err := m.prompt(ctx, productPrompt)
	if err != nil {
		return nil, 0, err
	}
	index, err := strconv.Atoi(answer)
	if err != nil || index < 1 || index > len(products) {
		m.printf("\nInvalid product choice. Please try again.\n")
		return nil, 0, nil
	}

	answer, err = m.prompt(ctx, amountPrompt)
	if err != nil {
		return nil, 0, err
	}
	amount, err := strconv.Atoi(answer)
	if err != nil || amount <= 0 {
		m.printf("\nQuantity must be a positive number. Please try again.\n")
		return nil, 0, nil
	}

	return products[index-1], amount, nil
}

func (m *Menu) prompt(ctx context.Context, text string) (string, error) {
	m.printf("%s", text)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (m *Menu) money(amount decimal.Decimal) string {
	return m.opts.Currency + amount.StringFixed(2)
}

func (m *Menu) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(m.out, format, args...); err != nil {
		m.logger.Error("Failed to write menu output", err)
	}
}
