package models

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestPreviewStock(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		txType  string
		qty     float64
		want    float64
	}{
		{"pull within stock", 100, TxPull, 30, 70},
		{"pull entire stock", 100, TxPull, 100, 0},
		{"pull beyond stock floors at zero", 10, TxPull, 25, 0},
		{"receive adds", 100, TxReceive, 50, 150},
		{"return adds", 100, TxReturn, 5, 105},
		{"unknown type leaves stock", 100, "adjust", 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreviewStock(tt.current, tt.txType, tt.qty); got != tt.want {
				t.Errorf("PreviewStock(%v, %q, %v) = %v, want %v", tt.current, tt.txType, tt.qty, got, tt.want)
			}
		})
	}
}

func TestNextMAUC(t *testing.T) {
	tests := []struct {
		name     string
		stock    float64
		mauc     float64
		qty      float64
		unitCost float64
		want     float64
	}{
		{"first receive sets cost", 0, 0, 100, 5.00, 5.00},
		{"weighted average", 100, 10.00, 100, 20.00, 15.00},
		{"small top-up barely moves it", 1000, 10.00, 10, 20.00, 10.099009900990099},
		{"zero quantity keeps average", 100, 10.00, 0, 99.00, 10.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextMAUC(tt.stock, tt.mauc, tt.qty, tt.unitCost)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NextMAUC = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidReason(t *testing.T) {
	tests := []struct {
		txType string
		reason string
		want   bool
	}{
		{TxPull, "construction", true},
		{TxPull, "purchase", false},
		{TxReceive, "purchase", true},
		{TxReceive, "unused", false},
		{TxReturn, "wrong-spec", true},
		{TxReturn, "delivery", false},
		{"adjust", "other", false},
	}
	for _, tt := range tests {
		if got := IsValidReason(tt.txType, tt.reason); got != tt.want {
			t.Errorf("IsValidReason(%q, %q) = %v, want %v", tt.txType, tt.reason, got, tt.want)
		}
	}
}

func validPullInput(product *Product) *StockTransactionInput {
	projectID := uuid.New()
	return &StockTransactionInput{
		ProductID:       product.ID,
		TransactionType: TxPull,
		Quantity:        10,
		ProjectID:       &projectID,
		Reason:          "construction",
	}
}

func TestValidateStockTransactionInput(t *testing.T) {
	product := &Product{ID: uuid.New(), CurrentStock: 50}

	t.Run("valid pull", func(t *testing.T) {
		if errs := ValidateStockTransactionInput(validPullInput(product), product); len(errs) != 0 {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		in := validPullInput(product)
		in.Quantity = 0
		errs := ValidateStockTransactionInput(in, product)
		if errs["quantity"] != "Quantity must be greater than 0" {
			t.Errorf("quantity error = %q", errs["quantity"])
		}
	})

	t.Run("pull beyond stock", func(t *testing.T) {
		in := validPullInput(product)
		in.Quantity = 60
		errs := ValidateStockTransactionInput(in, product)
		if errs["quantity"] != "Cannot pull more than available stock (50)" {
			t.Errorf("quantity error = %q", errs["quantity"])
		}
	})

	t.Run("pull without project", func(t *testing.T) {
		in := validPullInput(product)
		in.ProjectID = nil
		errs := ValidateStockTransactionInput(in, product)
		if errs["projectId"] != "Project selection is required" {
			t.Errorf("projectId error = %q", errs["projectId"])
		}
	})

	t.Run("return without project", func(t *testing.T) {
		in := validPullInput(product)
		in.TransactionType = TxReturn
		in.Reason = "unused"
		in.ProjectID = nil
		errs := ValidateStockTransactionInput(in, product)
		if errs["projectId"] != "Project selection is required" {
			t.Errorf("projectId error = %q", errs["projectId"])
		}
	})

	t.Run("receive needs no project", func(t *testing.T) {
		cost := 4.25
		in := &StockTransactionInput{
			ProductID:       product.ID,
			TransactionType: TxReceive,
			Quantity:        20,
			Reason:          "purchase",
			UnitCost:        &cost,
		}
		if errs := ValidateStockTransactionInput(in, product); len(errs) != 0 {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("receive without unit cost", func(t *testing.T) {
		in := &StockTransactionInput{
			ProductID:       product.ID,
			TransactionType: TxReceive,
			Quantity:        20,
			Reason:          "purchase",
		}
		errs := ValidateStockTransactionInput(in, product)
		if errs["unitCost"] != "Unit cost is required and must be greater than 0" {
			t.Errorf("unitCost error = %q", errs["unitCost"])
		}
	})

	t.Run("receive with zero unit cost", func(t *testing.T) {
		zero := 0.0
		in := &StockTransactionInput{
			ProductID:       product.ID,
			TransactionType: TxReceive,
			Quantity:        20,
			Reason:          "purchase",
			UnitCost:        &zero,
		}
		errs := ValidateStockTransactionInput(in, product)
		if errs["unitCost"] == "" {
			t.Error("expected a unitCost error for zero cost")
		}
	})

	t.Run("reason mismatched to type", func(t *testing.T) {
		in := validPullInput(product)
		in.Reason = "purchase"
		errs := ValidateStockTransactionInput(in, product)
		if errs["reason"] == "" {
			t.Error("expected a reason error for a receive reason on a pull")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		in := validPullInput(product)
		in.TransactionType = "adjust"
		errs := ValidateStockTransactionInput(in, product)
		if errs["transactionType"] == "" {
			t.Error("expected an error for an unknown transaction type")
		}
	})

	t.Run("empty receive reports exactly three errors", func(t *testing.T) {
		in := &StockTransactionInput{TransactionType: TxReceive}
		errs := ValidateStockTransactionInput(in, product)
		if len(errs) != 3 {
			t.Errorf("expected 3 errors (quantity, reason, unitCost), got %v", errs)
		}
		for _, field := range []string{"quantity", "reason", "unitCost"} {
			if errs[field] == "" {
				t.Errorf("missing error for %q", field)
			}
		}
	})

	t.Run("all problems reported together", func(t *testing.T) {
		in := &StockTransactionInput{TransactionType: TxPull, Quantity: 0}
		errs := ValidateStockTransactionInput(in, product)
		for _, field := range []string{"quantity", "projectId", "reason"} {
			if errs[field] == "" {
				t.Errorf("expected an error for %q, got none (all: %v)", field, errs)
			}
		}
	})
}
