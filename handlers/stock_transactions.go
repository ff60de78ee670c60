package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/sitestock/middleware"
	"p9e.in/sitestock/models"
	"p9e.in/sitestock/pkg/apperr"
)

// CreateStockTransaction appends a ledger entry and moves the product's
// stock and MAUC inside one database transaction. The client preview is
// advisory only; the recomputation here is what sticks.
func CreateStockTransaction(w http.ResponseWriter, r *http.Request) {
	var in models.StockTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var created models.StockTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ? AND is_active = ?", in.ProductID, true).Error; err != nil {
			return err
		}

		// Validate against the row we just locked in, so the stock ceiling
		// for pulls reflects the store and not a stale client view.
		if fields := models.ValidateStockTransactionInput(&in, &product); len(fields) > 0 {
			return apperr.Validation(fields)
		}

		if in.ProjectID != nil {
			var project models.Project
			if err := tx.First(&project, "id = ?", *in.ProjectID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperr.Validation(map[string]string{"projectId": "Project not found"})
				}
				return err
			}
		}

		newStock := product.CurrentStock
		newMAUC := product.MAUC
		switch in.TransactionType {
		case models.TxPull:
			newStock = product.CurrentStock - in.Quantity
		case models.TxReceive:
			newStock = product.CurrentStock + in.Quantity
			newMAUC = models.NextMAUC(product.CurrentStock, product.MAUC, in.Quantity, *in.UnitCost)
		case models.TxReturn:
			newStock = product.CurrentStock + in.Quantity
		}

		txDate := models.JSONTime(time.Now())
		if in.TransactionDate != nil && !in.TransactionDate.IsZero() {
			txDate = *in.TransactionDate
		}

		created = models.StockTransaction{
			ProductID:       product.ID,
			ProjectID:       in.ProjectID,
			TransactionType: in.TransactionType,
			Quantity:        in.Quantity,
			Reason:          in.Reason,
			Notes:           in.Notes,
			UnitCost:        in.UnitCost,
			ResultingStock:  newStock,
			UserID:          userID,
			TransactionDate: txDate,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		return tx.Model(&product).Updates(map[string]interface{}{
			"current_stock": newStock,
			"mauc":          newMAUC,
		}).Error
	})
	if err != nil {
		if appErr, isApp := err.(*apperr.Error); isApp {
			writeError(w, appErr)
			return
		}
		writeError(w, apperr.FromDB(err))
		return
	}

	db.Preload("Product").Preload("Product.Category").Preload("Project").Preload("User").
		First(&created, "id = ?", created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// GetStockTransactions lists ledger entries newest first. Optional filters:
// product_id, project_id, type, user_id, from, to (dates, inclusive).
func GetStockTransactions(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	q := db.Model(&models.StockTransaction{}).
		Preload("Product").Preload("Project").Preload("User").
		Order("transaction_date desc, created_at desc")

	params := r.URL.Query()
	if v := params.Get("product_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			http.Error(w, "invalid product_id", http.StatusBadRequest)
			return
		}
		q = q.Where("product_id = ?", id)
	}
	if v := params.Get("project_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			http.Error(w, "invalid project_id", http.StatusBadRequest)
			return
		}
		q = q.Where("project_id = ?", id)
	}
	if v := params.Get("type"); v != "" {
		switch v {
		case models.TxPull, models.TxReceive, models.TxReturn:
			q = q.Where("transaction_type = ?", v)
		default:
			http.Error(w, fmt.Sprintf("unknown transaction type %q", v), http.StatusBadRequest)
			return
		}
	}
	if v := params.Get("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			http.Error(w, "invalid user_id", http.StatusBadRequest)
			return
		}
		q = q.Where("user_id = ?", id)
	}
	if v := params.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid from date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		q = q.Where("transaction_date >= ?", t)
	}
	if v := params.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid to date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		q = q.Where("transaction_date < ?", t.AddDate(0, 0, 1))
	}

	var txns []models.StockTransaction
	if err := q.Find(&txns).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// GetTransactionReasons returns the selectable reasons per transaction
// kind so forms stay in sync with the server's validation.
func GetTransactionReasons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.TransactionReasons)
}
