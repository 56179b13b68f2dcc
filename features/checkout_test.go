// C:\Users\wasab\OneDrive\デスクトップ\REGI\features\checkout_test.go
package features

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"regi/cart"
	"regi/database"
	"regi/ledger"
	"regi/model"
	"regi/stock"
	"regi/undo"
)

type checkoutContext struct {
	engine  *cart.Engine
	ids     map[string]string
	lastErr error
}

func (c *checkoutContext) reset() {
	store := database.NewMemoryStore()
	catalog := stock.NewCatalog(5)
	sales := ledger.NewLedger()
	undoMgr := undo.NewManager(5 * time.Second)
	c.engine = cart.NewEngine(store, catalog, sales, undoMgr)
	c.ids = make(map[string]string)
	c.lastErr = nil
}

func (c *checkoutContext) productID(name string) (string, error) {
	id, ok := c.ids[name]
	if !ok {
		return "", fmt.Errorf("unknown product %q", name)
	}
	return id, nil
}

func (c *checkoutContext) aProductPricedWithStock(name string, price, stockCount int) error {
	p, err := c.engine.AddProduct(stock.NewProduct{Name: name, Price: float64(price), Stock: stockCount})
	if err != nil {
		return err
	}
	c.ids[name] = p.ID
	return nil
}

func (c *checkoutContext) iAddToTheCartTimes(name string, times int) error {
	id, err := c.productID(name)
	if err != nil {
		return err
	}
	for i := 0; i < times; i++ {
		if err := c.engine.AddToCart(id); err != nil {
			return err
		}
	}
	return nil
}

func (c *checkoutContext) iTryToAddToTheCart(name string) error {
	id, err := c.productID(name)
	if err != nil {
		return err
	}
	c.lastErr = c.engine.AddToCart(id)
	return nil
}

func (c *checkoutContext) theAddIsRejectedAsOutOfStock() error {
	if !errors.Is(c.lastErr, cart.ErrOutOfStock) {
		return fmt.Errorf("expected out-of-stock rejection, got %v", c.lastErr)
	}
	return nil
}

func (c *checkoutContext) iChangeTheQuantityOfTo(name string, quantity int) error {
	id, err := c.productID(name)
	if err != nil {
		return err
	}
	return c.engine.SetQuantity(id, quantity)
}

func (c *checkoutContext) iClearTheCart() error {
	return c.engine.ClearCart()
}

func (c *checkoutContext) iUndoTheLastAction() error {
	_, err := c.engine.Undo()
	return err
}

func (c *checkoutContext) iCheckOutWith(method string) error {
	_, err := c.engine.Checkout(model.PaymentMethod(method))
	return err
}

func (c *checkoutContext) theCartHoldsLineWithQuantity(lines, quantity int) error {
	view := c.engine.CartView()
	if len(view.Items) != lines {
		return fmt.Errorf("expected %d cart lines, got %d", lines, len(view.Items))
	}
	if view.Items[0].Quantity != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, view.Items[0].Quantity)
	}
	return nil
}

func (c *checkoutContext) theCartIsEmpty() error {
	view := c.engine.CartView()
	if len(view.Items) != 0 {
		return fmt.Errorf("expected empty cart, got %d lines", len(view.Items))
	}
	return nil
}

func (c *checkoutContext) theStockOfIs(name string, want int) error {
	id, err := c.productID(name)
	if err != nil {
		return err
	}
	for _, p := range c.engine.Products() {
		if p.ID == id {
			if p.Stock != want {
				return fmt.Errorf("expected stock %d for %q, got %d", want, name, p.Stock)
			}
			return nil
		}
	}
	return fmt.Errorf("product %q not in catalog", name)
}

func (c *checkoutContext) theLedgerRecordsSaleTotaling(count, total int) error {
	sales := c.engine.Sales(ledger.Filter{})
	if len(sales) != count {
		return fmt.Errorf("expected %d sales, got %d", count, len(sales))
	}
	if sales[0].Total != float64(total) {
		return fmt.Errorf("expected total %d, got %.0f", total, sales[0].Total)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	c := &checkoutContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	ctx.Step(`^a product "([^"]*)" priced (\d+) with stock (\d+)$`, c.aProductPricedWithStock)
	ctx.Step(`^I add "([^"]*)" to the cart (\d+) times?$`, c.iAddToTheCartTimes)
	ctx.Step(`^I try to add "([^"]*)" to the cart$`, c.iTryToAddToTheCart)
	ctx.Step(`^the add is rejected as out of stock$`, c.theAddIsRejectedAsOutOfStock)
	ctx.Step(`^I change the quantity of "([^"]*)" to (\d+)$`, c.iChangeTheQuantityOfTo)
	ctx.Step(`^I clear the cart$`, c.iClearTheCart)
	ctx.Step(`^I undo the last action$`, c.iUndoTheLastAction)
	ctx.Step(`^I check out with "([^"]*)"$`, c.iCheckOutWith)
	ctx.Step(`^the cart holds (\d+) line with quantity (\d+)$`, c.theCartHoldsLineWithQuantity)
	ctx.Step(`^the cart is empty$`, c.theCartIsEmpty)
	ctx.Step(`^the stock of "([^"]*)" is (\d+)$`, c.theStockOfIs)
	ctx.Step(`^the ledger records (\d+) sale totaling (\d+)$`, c.theLedgerRecordsSaleTotaling)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
