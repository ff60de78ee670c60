package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/sitestock/models"
	"p9e.in/sitestock/pkg/apperr"
)

func validateCustomer(c *models.Customer) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = "Customer name is required"
	}
	return errs
}

func GetCustomers(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	var customers []models.Customer
	q := db.Order("name asc")
	if search := r.URL.Query().Get("search"); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := q.Find(&customers).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var c models.Customer
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := validateCustomer(&c); len(fields) > 0 {
		writeError(w, apperr.Validation(fields))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	c.ID = uuid.Nil
	if err := db.Create(&c).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := validateCustomer(&c); len(fields) > 0 {
		writeError(w, apperr.Validation(fields))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	res := db.Model(&models.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":           c.Name,
		"contact_person": c.ContactPerson,
		"contact_email":  c.ContactEmail,
		"contact_phone":  c.ContactPhone,
	})
	if res.Error != nil {
		writeError(w, apperr.FromDB(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, apperr.New(apperr.NotFound, "customer not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Customer updated"})
}

// DeleteCustomer refuses while projects still reference the customer.
func DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var count int64
	if err := db.Model(&models.Project{}).Where("customer_id = ?", id).Count(&count).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	if count > 0 {
		writeError(w, apperr.Newf(apperr.Rejected, "Cannot delete customer with %d projects", count))
		return
	}

	res := db.Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		writeError(w, apperr.FromDB(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, apperr.New(apperr.NotFound, "customer not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Customer deleted"})
}
