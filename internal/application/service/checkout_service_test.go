package service

import (
	"context"
	"testing"

	"github.com/pasalhq/pasal-api/internal/domain/entity"
	"github.com/pasalhq/pasal-api/internal/domain/enum"
	"github.com/pasalhq/pasal-api/internal/domain/uom"
	"github.com/pasalhq/pasal-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func riceProduct() *entity.Product {
	packPrice := decimal.NewFromInt(18)
	return &entity.Product{
		Name:     "Rice",
		Price:    decimal.NewFromInt(2),
		Quantity: decimal.NewFromInt(25),
		Units: []uom.Unit{
			{Level: 0, Name: "pc", Multiplier: decimal.NewFromInt(1)},
			{Level: 1, Name: "pack", Multiplier: decimal.NewFromInt(10), Price: &packPrice},
		},
	}
}

type checkoutFixture struct {
	svc          *CheckoutService
	productRepo  *fakeProductRepo
	saleRepo     *fakeSaleRepo
	customerRepo *fakeCustomerRepo
	paymentRepo  *fakePaymentRepo
	settingsRepo *fakeSettingsRepo
}

func newCheckoutFixture(products ...*entity.Product) *checkoutFixture {
	f := &checkoutFixture{
		productRepo:  newFakeProductRepo(products...),
		saleRepo:     newFakeSaleRepo(),
		customerRepo: newFakeCustomerRepo(),
		paymentRepo:  &fakePaymentRepo{},
		settingsRepo: newFakeSettingsRepo(),
	}
	f.svc = NewCheckoutService(f.saleRepo, f.productRepo, f.customerRepo, f.paymentRepo, f.settingsRepo)
	return f
}

func TestCheckoutSellsWholePack(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(1), UnitLevel: 1},
		},
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	item := sale.Items[0]
	if !item.BaseQuantity.Equal(decimal.NewFromInt(10)) {
		t.Errorf("base quantity = %s, want 10", item.BaseQuantity)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(18)) {
		t.Errorf("unit price = %s, want pack price 18", item.UnitPrice)
	}
	if !sale.Subtotal.Equal(decimal.NewFromInt(18)) {
		t.Errorf("subtotal = %s, want 18", sale.Subtotal)
	}

	stock := f.productRepo.products[product.ID].Quantity
	if !stock.Equal(decimal.NewFromInt(15)) {
		t.Errorf("remaining stock = %s, want 15", stock)
	}
}

func TestCheckoutInsufficientStockLeavesStockUntouched(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(30), UnitLevel: 0},
		},
	})
	if err == nil {
		t.Fatal("Checkout() expected insufficient stock error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 400 {
		t.Errorf("error code = %d, want 400", appErr.Code)
	}

	stock := f.productRepo.products[product.ID].Quantity
	if !stock.Equal(decimal.NewFromInt(25)) {
		t.Errorf("stock after failed checkout = %s, want 25", stock)
	}
}

func TestCheckoutDiscountCappedAtSubtotal(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	// 25 pc at 2 = subtotal 50, with an absurd discount request.
	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(25), UnitLevel: 0},
		},
		Discount: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if !sale.Discount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("discount = %s, want capped at subtotal 50", sale.Discount)
	}
	if !sale.Tax.IsZero() {
		t.Errorf("tax = %s, want 0 on a fully discounted sale", sale.Tax)
	}
	if !sale.Total.IsZero() {
		t.Errorf("total = %s, want 0", sale.Total)
	}
	if sale.Status != enum.SaleStatusPaid {
		t.Errorf("status = %s, want paid", sale.Status)
	}
}

func TestCheckoutNegativeDiscountIgnored(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5), UnitLevel: 0},
		},
		Discount: decimal.NewFromInt(-10),
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if !sale.Discount.IsZero() {
		t.Errorf("discount = %s, want 0", sale.Discount)
	}
}

func TestCheckoutDefaultsToExactPayment(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5), UnitLevel: 0},
		},
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if !sale.PaidAmount.Equal(sale.Total) {
		t.Errorf("paid = %s, want total %s", sale.PaidAmount, sale.Total)
	}
	if !sale.DueAmount.IsZero() {
		t.Errorf("due = %s, want 0", sale.DueAmount)
	}
	if sale.Status != enum.SaleStatusPaid {
		t.Errorf("status = %s, want paid", sale.Status)
	}
}

func TestCheckoutTotalInvariant(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(1), UnitLevel: 1},
			{ProductID: product.ID, Quantity: decimal.NewFromInt(3), UnitLevel: 0},
		},
		Discount: decimal.NewFromInt(4),
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	want := sale.Subtotal.Sub(sale.Discount).Add(sale.Tax)
	if !sale.Total.Equal(want) {
		t.Errorf("total = %s, want subtotal - discount + tax = %s", sale.Total, want)
	}
}

func TestCheckoutCreditSaleNeedsCustomer(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	received := decimal.NewFromInt(1)
	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5), UnitLevel: 0},
		},
		Received: &received,
	})
	if err == nil {
		t.Fatal("Checkout() expected error for credit sale without customer")
	}

	// The refusal happens before stock is touched.
	stock := f.productRepo.products[product.ID].Quantity
	if !stock.Equal(decimal.NewFromInt(25)) {
		t.Errorf("stock = %s, want 25", stock)
	}
}

func TestCheckoutCreditSaleRaisesBalanceAndLedger(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	customer := &entity.Customer{Name: "Asha"}
	if err := f.customerRepo.Create(context.Background(), customer); err != nil {
		t.Fatal(err)
	}

	received := decimal.NewFromInt(5)
	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		CustomerID: &customer.ID,
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5), UnitLevel: 0},
		},
		Received: &received,
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if sale.Status != enum.SaleStatusPartial {
		t.Errorf("status = %s, want partial", sale.Status)
	}
	if !sale.PaidAmount.Equal(received) {
		t.Errorf("paid = %s, want %s", sale.PaidAmount, received)
	}

	balance := f.customerRepo.customers[customer.ID].Balance
	if !balance.Equal(sale.DueAmount) {
		t.Errorf("customer balance = %s, want due %s", balance, sale.DueAmount)
	}

	if len(f.paymentRepo.payments) != 2 {
		t.Fatalf("ledger rows = %d, want a payment and a charge", len(f.paymentRepo.payments))
	}
	paymentRow := f.paymentRepo.payments[0]
	if paymentRow.EntryType != enum.PaymentEntryPayment {
		t.Errorf("first entry type = %s, want payment", paymentRow.EntryType)
	}
	if !paymentRow.Amount.Equal(received) {
		t.Errorf("payment amount = %s, want %s", paymentRow.Amount, received)
	}
	charge := f.paymentRepo.payments[1]
	if charge.EntryType != enum.PaymentEntryCharge {
		t.Errorf("second entry type = %s, want charge", charge.EntryType)
	}
	if !charge.Amount.Equal(sale.DueAmount) {
		t.Errorf("charge amount = %s, want %s", charge.Amount, sale.DueAmount)
	}
}

func TestCheckoutSnapshotsWalkInName(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	name := "  Walk-in Ram  "
	note := "loyal customer"
	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		CustomerName: &name,
		DiscountNote: &note,
		Discount:     decimal.NewFromInt(1),
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5), UnitLevel: 0},
		},
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if sale.CustomerID != nil {
		t.Error("sale has a customer ID, want a name snapshot only")
	}
	if sale.CustomerName == nil || *sale.CustomerName != "Walk-in Ram" {
		t.Errorf("customer name = %v, want trimmed snapshot", sale.CustomerName)
	}
	if sale.DiscountNote == nil || *sale.DiscountNote != note {
		t.Errorf("discount note = %v, want %q", sale.DiscountNote, note)
	}
	if len(f.customerRepo.customers) != 0 {
		t.Errorf("customers registered = %d, want 0", len(f.customerRepo.customers))
	}
}

func TestCheckoutWalkInNameCannotCarryCredit(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	name := "Walk-in Ram"
	received := decimal.Zero
	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		CustomerName: &name,
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5), UnitLevel: 0},
		},
		Received: &received,
	})
	if err == nil {
		t.Fatal("Checkout() expected error for credit sale with a name only")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 400 {
		t.Errorf("error code = %d, want 400", appErr.Code)
	}
	if len(f.customerRepo.customers) != 0 {
		t.Errorf("customers registered = %d, want 0", len(f.customerRepo.customers))
	}
}

func TestCheckoutRejectedCartLeavesNoCustomer(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	name := "Walk-in Ram"
	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		CustomerName: &name,
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(9000), UnitLevel: 0},
		},
	})
	if err == nil {
		t.Fatal("Checkout() expected insufficient stock error")
	}

	if len(f.customerRepo.customers) != 0 {
		t.Errorf("customers registered after failed checkout = %d, want 0", len(f.customerRepo.customers))
	}
}

func TestCheckoutOverpaymentClampsPaidToTotal(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)

	received := decimal.NewFromInt(100)
	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5), UnitLevel: 0},
		},
		Received: &received,
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if !sale.PaidAmount.Equal(sale.Total) {
		t.Errorf("paid = %s, want clamped to total %s", sale.PaidAmount, sale.Total)
	}
	if !sale.ReceivedAmount.Equal(received) {
		t.Errorf("received = %s, want %s", sale.ReceivedAmount, received)
	}
	if !sale.DueAmount.IsZero() {
		t.Errorf("due = %s, want 0", sale.DueAmount)
	}
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{})
	if err == nil {
		t.Fatal("Checkout() expected error for empty cart")
	}
}

func TestCheckoutRestoresStockWhenPersistFails(t *testing.T) {
	product := riceProduct()
	f := newCheckoutFixture(product)
	f.saleRepo.createErr = apperror.ErrInternalServer

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(1), UnitLevel: 1},
		},
	})
	if err == nil {
		t.Fatal("Checkout() expected persist error")
	}

	stock := f.productRepo.products[product.ID].Quantity
	if !stock.Equal(decimal.NewFromInt(25)) {
		t.Errorf("stock = %s, want restored to 25", stock)
	}
}
