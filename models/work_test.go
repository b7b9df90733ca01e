package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func workWithPayments(price string, amounts ...string) *Work {
	w := &Work{Price: dec(price)}
	for _, a := range amounts {
		w.Payments = append(w.Payments, Payment{Amount: dec(a)})
	}
	return w
}

func TestReceivedAmount_NoPayments(t *testing.T) {
	w := workWithPayments("500.00")
	if !w.ReceivedAmount().IsZero() {
		t.Fatalf("expected zero received, got %s", w.ReceivedAmount())
	}
	if !w.RemainingAmount().Equal(dec("500.00")) {
		t.Fatalf("expected remaining 500.00, got %s", w.RemainingAmount())
	}
}

func TestRemainingAmount_EqualsPriceMinusReceived(t *testing.T) {
	cases := []struct {
		price    string
		payments []string
		want     string
	}{
		{"800.00", []string{"100.00", "700.00"}, "0.00"},
		{"800.00", []string{"100.00"}, "700.00"},
		{"500.00", []string{"600.00"}, "-100.00"}, // overpaid stays negative
		{"0.00", nil, "0.00"},
	}
	for _, c := range cases {
		w := workWithPayments(c.price, c.payments...)
		if got := w.RemainingAmount(); !got.Equal(dec(c.want)) {
			t.Errorf("price=%s payments=%v: remaining = %s, want %s", c.price, c.payments, got, c.want)
		}
	}
}

func TestPaymentPercentage_ZeroPriceDoesNotPanic(t *testing.T) {
	w := workWithPayments("0.00", "50.00")
	if got := w.PaymentPercentage(); got != 0 {
		t.Fatalf("expected 0%% for zero-price work, got %f", got)
	}
}

func TestPaymentPercentage_FullyPaid(t *testing.T) {
	// Work priced 800.00 paid in two installments.
	w := workWithPayments("800.00", "100.00", "700.00")
	if got := w.ReceivedAmount(); !got.Equal(dec("800.00")) {
		t.Fatalf("received = %s, want 800.00", got)
	}
	if got := w.RemainingAmount(); !got.Equal(dec("0.00")) {
		t.Fatalf("remaining = %s, want 0.00", got)
	}
	if got := w.PaymentPercentage(); got != 100.0 {
		t.Fatalf("percentage = %f, want 100.0", got)
	}
}

func TestPaymentPercentage_Partial(t *testing.T) {
	w := workWithPayments("800.00", "200.00")
	if got := w.PaymentPercentage(); got != 25.0 {
		t.Fatalf("percentage = %f, want 25.0", got)
	}
}

func TestPaymentStatus_Derived(t *testing.T) {
	cases := []struct {
		price    string
		payments []string
		want     string
	}{
		{"800.00", []string{"100.00", "700.00"}, PaymentStatusPaid},
		{"800.00", []string{"799.99"}, PaymentStatusPending},
		{"500.00", []string{"600.00"}, PaymentStatusPaid}, // overpaid is still paid
		{"0.00", nil, PaymentStatusPending},               // zero-price never flips to paid
		{"100.00", nil, PaymentStatusPending},
	}
	for _, c := range cases {
		w := workWithPayments(c.price, c.payments...)
		if got := w.PaymentStatus(); got != c.want {
			t.Errorf("price=%s payments=%v: status = %s, want %s", c.price, c.payments, got, c.want)
		}
	}
}

func TestProjectMetrics(t *testing.T) {
	p := &Project{Works: []Work{
		*workWithPayments("500.00", "500.00"),
		*workWithPayments("800.00", "100.00"),
		*workWithPayments("300.00", "400.00"), // overpaid
	}}
	if got := p.WorkCount(); got != 3 {
		t.Fatalf("work count = %d, want 3", got)
	}
	if got := p.TotalRevenue(); !got.Equal(dec("1000.00")) {
		t.Fatalf("total revenue = %s, want 1000.00", got)
	}
	// Pending only counts underpaid works; the overpayment does not offset.
	if got := p.PendingAmount(); !got.Equal(dec("700.00")) {
		t.Fatalf("pending = %s, want 700.00", got)
	}
}

func TestClientMetrics(t *testing.T) {
	c := &Client{Projects: []Project{
		{Works: []Work{*workWithPayments("500.00", "200.00")}},
		{Works: []Work{
			*workWithPayments("100.00", "100.00"),
			*workWithPayments("250.00"),
		}},
	}}
	if got := c.ProjectCount(); got != 2 {
		t.Fatalf("project count = %d, want 2", got)
	}
	if got := c.WorkCount(); got != 3 {
		t.Fatalf("work count = %d, want 3", got)
	}
	if got := c.TotalRevenue(); !got.Equal(dec("300.00")) {
		t.Fatalf("total revenue = %s, want 300.00", got)
	}
	if got := c.PendingAmount(); !got.Equal(dec("550.00")) {
		t.Fatalf("pending = %s, want 550.00", got)
	}
}

func TestClientMetrics_Empty(t *testing.T) {
	c := &Client{}
	if c.ProjectCount() != 0 || c.WorkCount() != 0 {
		t.Fatal("expected zero counts for client without projects")
	}
	if !c.TotalRevenue().IsZero() || !c.PendingAmount().IsZero() {
		t.Fatal("expected zero amounts for client without projects")
	}
}
