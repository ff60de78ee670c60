// Package kpis serves the dashboard aggregates. Each figure is computed
// from the live tables on request; nothing is cached or denormalized.
package kpis

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"

	"p9e.in/sitestock/config"
	"p9e.in/sitestock/models"
	"p9e.in/sitestock/pkg/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	appErr := apperr.FromDB(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status())
	json.NewEncoder(w).Encode(map[string]string{"error": appErr.Message})
}

func database(w http.ResponseWriter) (*gorm.DB, bool) {
	db, err := config.Database()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": apperr.UnavailableMessage})
		return nil, false
	}
	return db, true
}

// InventoryKPIs are the figures the inventory dashboard cards show.
type InventoryKPIs struct {
	TotalProducts  int64   `json:"totalProducts"`
	TotalValue     float64 `json:"totalValue"`
	LowStockCount  int64   `json:"lowStockCount"`
	OutOfStock     int64   `json:"outOfStock"`
	CategoryCount  int64   `json:"categoryCount"`
	RecentActivity int64   `json:"recentActivity"`
}

// GetInventoryKPIs aggregates over active products. TotalValue is the sum
// of stock times MAUC per product. RecentActivity counts ledger entries
// from the last 7 days.
func GetInventoryKPIs(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	var out InventoryKPIs
	active := db.Model(&models.Product{}).Where("is_active = ?", true)

	if err := active.Session(&gorm.Session{}).Count(&out.TotalProducts).Error; err != nil {
		writeErr(w, err)
		return
	}
	if err := active.Session(&gorm.Session{}).
		Select("COALESCE(SUM(current_stock * mauc), 0)").
		Scan(&out.TotalValue).Error; err != nil {
		writeErr(w, err)
		return
	}
	if err := active.Session(&gorm.Session{}).
		Where("current_stock <= min_stock_level").
		Count(&out.LowStockCount).Error; err != nil {
		writeErr(w, err)
		return
	}
	if err := active.Session(&gorm.Session{}).
		Where("current_stock <= 0").
		Count(&out.OutOfStock).Error; err != nil {
		writeErr(w, err)
		return
	}
	if err := db.Model(&models.ProductCategory{}).Count(&out.CategoryCount).Error; err != nil {
		writeErr(w, err)
		return
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := db.Model(&models.StockTransaction{}).
		Where("created_at >= ?", weekAgo).
		Count(&out.RecentActivity).Error; err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// ProjectKPIs are the figures the project dashboard cards show.
type ProjectKPIs struct {
	TotalProjects int64            `json:"totalProjects"`
	ByStatus      map[string]int64 `json:"byStatus"`
	TotalBudget   float64          `json:"totalBudget"`
	TotalSpent    float64          `json:"totalSpent"`
	CustomerCount int64            `json:"customerCount"`
}

// GetProjectKPIs aggregates over non-archived projects. Spent is taken from
// the informational field on each project, never derived from the stock
// ledger.
func GetProjectKPIs(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	out := ProjectKPIs{ByStatus: map[string]int64{}}
	live := db.Model(&models.Project{}).Where("status <> ?", models.ProjectArchived)

	if err := live.Session(&gorm.Session{}).Count(&out.TotalProjects).Error; err != nil {
		writeErr(w, err)
		return
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := db.Model(&models.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		writeErr(w, err)
		return
	}
	for _, c := range counts {
		out.ByStatus[c.Status] = c.Count
	}

	type totals struct {
		Budget float64
		Spent  float64
	}
	var t totals
	if err := live.Session(&gorm.Session{}).
		Select("COALESCE(SUM(budget), 0) AS budget, COALESCE(SUM(spent), 0) AS spent").
		Scan(&t).Error; err != nil {
		writeErr(w, err)
		return
	}
	out.TotalBudget = t.Budget
	out.TotalSpent = t.Spent

	if err := db.Model(&models.Customer{}).Count(&out.CustomerCount).Error; err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// workerActivity is one row of the worker dashboard's recent-entries list.
type workerActivity struct {
	Transactions []models.StockTransaction `json:"transactions"`
	PullCount    int64                     `json:"pullCount"`
	ReturnCount  int64                     `json:"returnCount"`
}

// GetWorkerActivity returns the caller's recent ledger entries plus their
// 30-day pull and return counts. userID comes from the query so admins can
// view another worker's activity.
func GetWorkerActivity(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	var out workerActivity
	if err := db.Preload("Product").Preload("Project").
		Where("user_id = ?", userID).
		Order("transaction_date desc, created_at desc").
		Limit(20).
		Find(&out.Transactions).Error; err != nil {
		writeErr(w, err)
		return
	}

	monthAgo := time.Now().AddDate(0, 0, -30)
	base := db.Model(&models.StockTransaction{}).
		Where("user_id = ? AND created_at >= ?", userID, monthAgo)
	if err := base.Session(&gorm.Session{}).
		Where("transaction_type = ?", models.TxPull).
		Count(&out.PullCount).Error; err != nil {
		writeErr(w, err)
		return
	}
	if err := base.Session(&gorm.Session{}).
		Where("transaction_type = ?", models.TxReturn).
		Count(&out.ReturnCount).Error; err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}
