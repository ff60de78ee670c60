package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Stock transaction kinds. Pull removes stock for project use, receive adds
// newly delivered stock, return restocks pulled but unused material.
const (
	TxPull    = "pull"
	TxReceive = "receive"
	TxReturn  = "return"
)

// TransactionReasons enumerates the selectable reasons per transaction kind.
// The values match what the transaction forms submit.
var TransactionReasons = map[string][]string{
	TxPull:    {"construction", "maintenance", "repair", "testing", "other"},
	TxReceive: {"purchase", "delivery", "transfer", "return", "other"},
	TxReturn:  {"unused", "excess", "defective", "wrong-spec", "other"},
}

// IsValidReason reports whether reason is selectable for the given kind.
func IsValidReason(txType, reason string) bool {
	for _, r := range TransactionReasons[txType] {
		if r == reason {
			return true
		}
	}
	return false
}

// StockTransaction is one append-only ledger entry. Rows are never updated or
// deleted; corrections are new entries.
type StockTransaction struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	// ProjectID is set for pull and return; nil for receive.
	ProjectID *uuid.UUID `gorm:"type:uuid;index" json:"projectId,omitempty"`
	Project   *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	TransactionType string  `gorm:"size:20;not null;index" json:"transactionType"`
	Quantity        float64 `gorm:"type:decimal(15,3);not null" json:"quantity"`
	Reason          string  `gorm:"size:50;not null" json:"reason"`
	Notes           string  `gorm:"type:text" json:"notes,omitempty"`
	// UnitCost is required for receive entries and feeds the MAUC update.
	UnitCost *float64 `gorm:"type:decimal(15,2)" json:"unitCost,omitempty"`

	// ResultingStock snapshots the product's stock after this entry was
	// applied; the store, not the client preview, is authoritative.
	ResultingStock float64 `gorm:"type:decimal(15,3)" json:"resultingStock"`

	UserID uuid.UUID    `gorm:"type:uuid;not null;index" json:"userId"`
	User   *UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`

	TransactionDate JSONTime       `gorm:"not null;index" json:"transactionDate"`
	Metadata        datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// PreviewStock computes the advisory "new stock level" a form shows before
// submitting: floored at zero for pulls, simple addition otherwise. The
// persisted result may differ; callers must refetch after a create.
func PreviewStock(currentStock float64, txType string, quantity float64) float64 {
	switch txType {
	case TxPull:
		next := currentStock - quantity
		if next < 0 {
			return 0
		}
		return next
	case TxReceive, TxReturn:
		return currentStock + quantity
	default:
		return currentStock
	}
}

// NextMAUC returns the moving-average unit cost after receiving quantity
// units at unitCost. Pulls and returns leave the average untouched.
func NextMAUC(currentStock, currentMAUC, quantity, unitCost float64) float64 {
	if quantity <= 0 {
		return currentMAUC
	}
	total := currentStock + quantity
	if total <= 0 {
		return currentMAUC
	}
	return (currentStock*currentMAUC + quantity*unitCost) / total
}

// StockTransactionInput is the payload the transaction forms submit.
type StockTransactionInput struct {
	ProductID       uuid.UUID  `json:"productId"`
	TransactionType string     `json:"transactionType"`
	Quantity        float64    `json:"quantity"`
	ProjectID       *uuid.UUID `json:"projectId,omitempty"`
	Reason          string     `json:"reason"`
	Notes           string     `json:"notes,omitempty"`
	UnitCost        *float64   `json:"unitCost,omitempty"`
	TransactionDate *JSONTime  `json:"transactionDate,omitempty"`
}

// ValidateStockTransactionInput checks the payload against the product being
// transacted and returns one message per offending field. Every rule is
// evaluated; the form shows all problems at once rather than the first one.
func ValidateStockTransactionInput(in *StockTransactionInput, product *Product) map[string]string {
	errs := map[string]string{}

	if in.Quantity <= 0 {
		errs["quantity"] = "Quantity must be greater than 0"
	} else if in.TransactionType == TxPull && product != nil && in.Quantity > product.CurrentStock {
		errs["quantity"] = fmt.Sprintf("Cannot pull more than available stock (%v)", product.CurrentStock)
	}

	if in.TransactionType == TxPull || in.TransactionType == TxReturn {
		if in.ProjectID == nil || *in.ProjectID == uuid.Nil {
			errs["projectId"] = "Project selection is required"
		}
	}

	if in.Reason == "" {
		errs["reason"] = "Reason is required"
	} else if !IsValidReason(in.TransactionType, in.Reason) {
		errs["reason"] = fmt.Sprintf("Reason %q is not valid for %s transactions", in.Reason, in.TransactionType)
	}

	if in.TransactionType == TxReceive {
		if in.UnitCost == nil || *in.UnitCost <= 0 {
			errs["unitCost"] = "Unit cost is required and must be greater than 0"
		}
	}

	switch in.TransactionType {
	case TxPull, TxReceive, TxReturn:
	default:
		errs["transactionType"] = fmt.Sprintf("Unknown transaction type %q", in.TransactionType)
	}

	return errs
}
