package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"p9e.in/sitestock/models"
	"p9e.in/sitestock/pkg/apperr"
	"p9e.in/sitestock/pkg/listview"
)

// productQuery builds the list derivation from request query params. The
// same derivation backs the list endpoint and the exports so both see the
// identical row set.
func productQuery(r *http.Request) listview.Query[models.Product] {
	q := listview.Query[models.Product]{
		Search: r.URL.Query().Get("search"),
		SearchFields: []func(models.Product) string{
			func(p models.Product) string { return p.Name },
			func(p models.Product) string { return p.SKU },
			func(p models.Product) string { return p.Supplier },
		},
		Comparators: map[string]listview.Comparator[models.Product]{
			"name":     listview.ByString(func(p models.Product) string { return p.Name }),
			"sku":      listview.ByString(func(p models.Product) string { return p.SKU }),
			"category": listview.ByString(func(p models.Product) string { return p.CategoryName() }),
			"stock":    listview.ByNumber(func(p models.Product) float64 { return p.CurrentStock }),
			"mauc":     listview.ByNumber(func(p models.Product) float64 { return p.MAUC }),
		},
	}

	if cat := r.URL.Query().Get("category"); cat != "" {
		if catID, err := uuid.Parse(cat); err == nil {
			q.Filters = append(q.Filters, func(p models.Product) bool {
				return p.CategoryID != nil && *p.CategoryID == catID
			})
		}
	}
	if r.URL.Query().Get("low_stock") == "true" {
		q.Filters = append(q.Filters, func(p models.Product) bool { return p.IsLowStock() })
	}

	if key := r.URL.Query().Get("sort_key"); key != "" {
		dir := listview.Asc
		if r.URL.Query().Get("sort_dir") == "desc" {
			dir = listview.Desc
		}
		q.Sort = listview.SortSpec{Key: key, Direction: dir}
	}
	return q
}

func loadActiveProducts(db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	err := db.Preload("Category").
		Where("is_active = ?", true).
		Order("name asc").
		Find(&products).Error
	return products, err
}

// GetProducts lists active products after applying search, category and
// low-stock filters and the requested sort.
func GetProducts(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	products, err := loadActiveProducts(db)
	if err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}

	writeJSON(w, http.StatusOK, listview.Derive(products, productQuery(r)))
}

func GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var p models.Product
	if err := db.Preload("Category").First(&p, "id = ? AND is_active = ?", id, true).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProduct validates the full payload at once so a 422 carries every
// field error, not just the first.
func CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if fields := models.ValidateProductInput(&p); len(fields) > 0 {
		writeError(w, apperr.Validation(fields))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	p.ID = uuid.Nil
	p.IsActive = true
	if err := db.Create(&p).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeError(w, apperr.Validation(map[string]string{"sku": "SKU already exists"}))
			return
		}
		writeError(w, apperr.FromDB(err))
		return
	}

	db.Preload("Category").First(&p, "id = ?", p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var existing models.Product
	if err := db.First(&existing, "id = ? AND is_active = ?", id, true).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}

	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := models.ValidateProductInput(&p); len(fields) > 0 {
		writeError(w, apperr.Validation(fields))
		return
	}

	// Stock and MAUC only move through transactions, never through edits.
	p.ID = existing.ID
	p.CurrentStock = existing.CurrentStock
	p.MAUC = existing.MAUC
	p.IsActive = true
	if err := db.Model(&existing).Select(
		"sku", "name", "description", "category_id", "unit_of_measure",
		"min_stock_level", "max_stock_level", "supplier", "location",
		"image_urls", "attributes",
	).Updates(&p).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeError(w, apperr.Validation(map[string]string{"sku": "SKU already exists"}))
			return
		}
		writeError(w, apperr.FromDB(err))
		return
	}

	db.Preload("Category").First(&existing, "id = ?", id)
	writeJSON(w, http.StatusOK, existing)
}

// DeleteProduct soft-deletes by flipping is_active. Transaction history
// stays intact and keeps pointing at the row.
func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}
	if appErr := deactivateProduct(db, id); appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Product deleted"})
}

func deactivateProduct(db *gorm.DB, id uuid.UUID) *apperr.Error {
	res := db.Model(&models.Product{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return apperr.FromDB(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}

type bulkIDsReq struct {
	IDs []uuid.UUID `json:"ids"`
}

// BulkDeleteProducts deactivates the given products one at a time and
// stops at the first failure. Already-applied deletions stay applied.
func BulkDeleteProducts(w http.ResponseWriter, r *http.Request) {
	var req bulkIDsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "no ids given", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	result := runSequential(req.IDs, func(id uuid.UUID) *apperr.Error {
		return deactivateProduct(db, id)
	})
	writeJSON(w, http.StatusOK, result)
}

type bulkCategoryReq struct {
	IDs        []uuid.UUID `json:"ids"`
	CategoryID *uuid.UUID  `json:"categoryId"`
}

// BulkAssignCategory moves the given products to a category, sequentially
// with stop-on-first-error. A nil categoryId clears the assignment.
func BulkAssignCategory(w http.ResponseWriter, r *http.Request) {
	var req bulkCategoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "no ids given", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	if req.CategoryID != nil {
		var cat models.ProductCategory
		if err := db.First(&cat, "id = ?", *req.CategoryID).Error; err != nil {
			writeError(w, apperr.FromDB(err))
			return
		}
	}

	result := runSequential(req.IDs, func(id uuid.UUID) *apperr.Error {
		res := db.Model(&models.Product{}).
			Where("id = ? AND is_active = ?", id, true).
			Update("category_id", req.CategoryID)
		if res.Error != nil {
			return apperr.FromDB(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "product not found")
		}
		return nil
	})
	writeJSON(w, http.StatusOK, result)
}

func GetCategories(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	var categories []models.ProductCategory
	if err := db.Order("name asc").Find(&categories).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c models.ProductCategory
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		writeError(w, apperr.Validation(map[string]string{"name": "Category name is required"}))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	c.ID = uuid.Nil
	if err := db.Create(&c).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeError(w, apperr.Validation(map[string]string{"name": "Category already exists"}))
			return
		}
		writeError(w, apperr.FromDB(err))
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	var c models.ProductCategory
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		writeError(w, apperr.Validation(map[string]string{"name": "Category name is required"}))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	res := db.Model(&models.ProductCategory{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": c.Name, "description": c.Description})
	if res.Error != nil {
		writeError(w, apperr.FromDB(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, apperr.New(apperr.NotFound, "category not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Category updated"})
}

// DeleteCategory refuses when active products still reference the
// category. Reassign first, then delete.
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var count int64
	if err := db.Model(&models.Product{}).
		Where("category_id = ? AND is_active = ?", id, true).
		Count(&count).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	if count > 0 {
		writeError(w, apperr.Newf(apperr.Rejected, "Cannot delete category with %d assigned products", count))
		return
	}

	res := db.Delete(&models.ProductCategory{}, "id = ?", id)
	if res.Error != nil {
		writeError(w, apperr.FromDB(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, apperr.New(apperr.NotFound, "category not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Category deleted"})
}
