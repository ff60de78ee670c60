package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ProductCategory is a flat lookup table; no hierarchy.
type ProductCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}

// Product is one stocked catalog item. Deleting a product flips IsActive
// instead of removing the row so the transaction log keeps its references.
type Product struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU         string           `gorm:"column:sku;size:50;uniqueIndex;not null" json:"sku"`
	Name        string           `gorm:"size:255;not null;index" json:"name"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	CategoryID  *uuid.UUID       `gorm:"type:uuid;index" json:"categoryId,omitempty"`
	Category    *ProductCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	UnitOfMeasure string  `gorm:"size:50;not null" json:"unitOfMeasure"`
	CurrentStock  float64 `gorm:"type:decimal(15,3);default:0" json:"currentStock"`
	// MAUC: moving-average unit cost, recomputed on every receive.
	MAUC          float64 `gorm:"column:mauc;type:decimal(15,2);default:0" json:"mauc"`
	MinStockLevel float64 `gorm:"type:decimal(15,3);default:0" json:"minStockLevel"`
	MaxStockLevel float64 `gorm:"type:decimal(15,3);default:0" json:"maxStockLevel"`

	Supplier  string         `gorm:"size:255" json:"supplier,omitempty"`
	Location  string         `gorm:"size:255" json:"location,omitempty"`
	ImageURLs pq.StringArray `gorm:"type:text[]" json:"imageUrls,omitempty"`
	// Free-form vendor attributes (grade, dimensions, finish, ...).
	Attributes datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"attributes,omitempty"`

	IsActive  bool      `gorm:"default:true;index" json:"isActive"`
	CreatedBy string    `gorm:"size:255" json:"createdBy,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// CategoryName is a nil-safe accessor for list derivation and export.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// IsLowStock reports whether the product sits at or below its minimum level.
func (p Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStockLevel
}

// ValidateProductInput checks a product create/edit payload and returns one
// message per offending field. All rules run; nothing short-circuits, so the
// form can show every problem at once.
func ValidateProductInput(p *Product) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(p.SKU) == "" {
		errs["sku"] = "SKU is required"
	}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "Product name is required"
	}
	if p.CategoryID == nil || *p.CategoryID == uuid.Nil {
		errs["categoryId"] = "Category is required"
	}
	if strings.TrimSpace(p.UnitOfMeasure) == "" {
		errs["unitOfMeasure"] = "Unit of measure is required"
	}
	if p.CurrentStock < 0 {
		errs["currentStock"] = "Stock cannot be negative"
	}
	if p.MAUC < 0 {
		errs["mauc"] = "MAUC cannot be negative"
	}
	if p.MinStockLevel < 0 {
		errs["minStockLevel"] = "Minimum stock level cannot be negative"
	}
	if p.MaxStockLevel <= p.MinStockLevel {
		errs["maxStockLevel"] = "Maximum stock level must be greater than minimum"
	}

	return errs
}
