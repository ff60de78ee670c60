package models

import (
	"testing"

	"github.com/google/uuid"
)

func validProduct() *Product {
	catID := uuid.New()
	return &Product{
		SKU:           "CEM-001",
		Name:          "Cement Bag 50kg",
		CategoryID:    &catID,
		UnitOfMeasure: "bag",
		CurrentStock:  100,
		MAUC:          8.50,
		MinStockLevel: 10,
		MaxStockLevel: 500,
	}
}

func TestValidateProductInputValid(t *testing.T) {
	if errs := ValidateProductInput(validProduct()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateProductInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Product)
		field   string
		message string
	}{
		{"missing sku", func(p *Product) { p.SKU = "  " }, "sku", "SKU is required"},
		{"missing name", func(p *Product) { p.Name = "" }, "name", "Product name is required"},
		{"missing category", func(p *Product) { p.CategoryID = nil }, "categoryId", "Category is required"},
		{"nil uuid category", func(p *Product) { id := uuid.Nil; p.CategoryID = &id }, "categoryId", "Category is required"},
		{"missing unit", func(p *Product) { p.UnitOfMeasure = "" }, "unitOfMeasure", "Unit of measure is required"},
		{"negative stock", func(p *Product) { p.CurrentStock = -1 }, "currentStock", "Stock cannot be negative"},
		{"negative mauc", func(p *Product) { p.MAUC = -0.01 }, "mauc", "MAUC cannot be negative"},
		{"negative min", func(p *Product) { p.MinStockLevel = -5 }, "minStockLevel", "Minimum stock level cannot be negative"},
		{"max below min", func(p *Product) { p.MaxStockLevel = 5 }, "maxStockLevel", "Maximum stock level must be greater than minimum"},
		{"max equals min", func(p *Product) { p.MaxStockLevel = p.MinStockLevel }, "maxStockLevel", "Maximum stock level must be greater than minimum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)
			errs := ValidateProductInput(p)
			if got := errs[tt.field]; got != tt.message {
				t.Errorf("errs[%q] = %q, want %q", tt.field, got, tt.message)
			}
		})
	}
}

func TestValidateProductInputCollectsAll(t *testing.T) {
	p := &Product{MaxStockLevel: 0}
	errs := ValidateProductInput(p)
	for _, field := range []string{"sku", "name", "categoryId", "unitOfMeasure", "maxStockLevel"} {
		if errs[field] == "" {
			t.Errorf("expected an error for %q, got none (all: %v)", field, errs)
		}
	}
}

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		name  string
		stock float64
		min   float64
		want  bool
	}{
		{"above minimum", 50, 10, false},
		{"at minimum", 10, 10, true},
		{"below minimum", 5, 10, true},
		{"zero stock zero min", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{CurrentStock: tt.stock, MinStockLevel: tt.min}
			if got := p.IsLowStock(); got != tt.want {
				t.Errorf("IsLowStock() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategoryName(t *testing.T) {
	p := Product{}
	if p.CategoryName() != "" {
		t.Error("expected empty name for nil category")
	}
	p.Category = &ProductCategory{Name: "Concrete & Masonry"}
	if p.CategoryName() != "Concrete & Masonry" {
		t.Errorf("CategoryName() = %q", p.CategoryName())
	}
}
