package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/sitestock/handlers"
	kpi_handlers "p9e.in/sitestock/handlers/kpis"
	"p9e.in/sitestock/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/change-password", handlers.ChangePassword).Methods("POST")

	registerInventoryRoutes(api)
	registerTransactionRoutes(api)
	registerProjectRoutes(api)
	registerCustomerRoutes(api)
	registerKPIRoutes(api)
	registerExportRoutes(api)
	registerFileRoutes(api)

	// =====================================================
	// Admin Routes (super admin only)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	registerAdminRoutes(admin)

	return r
}

// crudHandlers holds handlers for a CRUD resource
type crudHandlers struct {
	getAll func(http.ResponseWriter, *http.Request)
	create func(http.ResponseWriter, *http.Request)
	getOne func(http.ResponseWriter, *http.Request)
	update func(http.ResponseWriter, *http.Request)
	delete func(http.ResponseWriter, *http.Request)
}

// registerCRUDRoutes registers standard CRUD routes for a resource.
// Permissions follow the "resource:action" format of the capability table.
func registerCRUDRoutes(router *mux.Router, path string, resource string, h crudHandlers) {
	router.Handle(path, middleware.RequirePermission(resource+":read")(
		http.HandlerFunc(h.getAll))).Methods("GET")
	router.Handle(path, middleware.RequirePermission(resource+":create")(
		http.HandlerFunc(h.create))).Methods("POST")
	if h.getOne != nil {
		router.Handle(path+"/{id}", middleware.RequirePermission(resource+":read")(
			http.HandlerFunc(h.getOne))).Methods("GET")
	}
	router.Handle(path+"/{id}", middleware.RequirePermission(resource+":update")(
		http.HandlerFunc(h.update))).Methods("PUT")
	router.Handle(path+"/{id}", middleware.RequirePermission(resource+":delete")(
		http.HandlerFunc(h.delete))).Methods("DELETE")
}

func registerInventoryRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/products", "product", crudHandlers{
		getAll: handlers.GetProducts,
		create: handlers.CreateProduct,
		getOne: handlers.GetProduct,
		update: handlers.UpdateProduct,
		delete: handlers.DeleteProduct,
	})
	api.Handle("/products/bulk-delete", middleware.RequirePermission("product:delete")(
		http.HandlerFunc(handlers.BulkDeleteProducts))).Methods("POST")
	api.Handle("/products/bulk-category", middleware.RequirePermission("product:update")(
		http.HandlerFunc(handlers.BulkAssignCategory))).Methods("POST")

	registerCRUDRoutes(api, "/categories", "category", crudHandlers{
		getAll: handlers.GetCategories,
		create: handlers.CreateCategory,
		update: handlers.UpdateCategory,
		delete: handlers.DeleteCategory,
	})
}

func registerTransactionRoutes(api *mux.Router) {
	api.Handle("/transactions", middleware.RequirePermission("transaction:read")(
		http.HandlerFunc(handlers.GetStockTransactions))).Methods("GET")
	api.Handle("/transactions", middleware.RequirePermission("transaction:create")(
		http.HandlerFunc(handlers.CreateStockTransaction))).Methods("POST")
	api.Handle("/transactions/reasons", middleware.RequirePermission("transaction:read")(
		http.HandlerFunc(handlers.GetTransactionReasons))).Methods("GET")
}

func registerProjectRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/projects", "project", crudHandlers{
		getAll: handlers.GetProjects,
		create: handlers.CreateProject,
		getOne: handlers.GetProject,
		update: handlers.UpdateProject,
		delete: handlers.ArchiveProject,
	})
	api.Handle("/projects/bulk-status", middleware.RequirePermission("project:update")(
		http.HandlerFunc(handlers.BulkUpdateProjectStatus))).Methods("POST")
	api.Handle("/projects/bulk-archive", middleware.RequirePermission("project:update")(
		http.HandlerFunc(handlers.BulkArchiveProjects))).Methods("POST")
	api.Handle("/projects/{id}/status", middleware.RequirePermission("project:update")(
		http.HandlerFunc(handlers.UpdateProjectStatus))).Methods("PATCH")
	api.Handle("/projects/{id}/assignments", middleware.RequirePermission("project:update")(
		http.HandlerFunc(handlers.AssignUserToProject))).Methods("POST")
	api.Handle("/projects/{id}/assignments/{userId}", middleware.RequirePermission("project:update")(
		http.HandlerFunc(handlers.UnassignUserFromProject))).Methods("DELETE")
}

func registerCustomerRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/customers", "customer", crudHandlers{
		getAll: handlers.GetCustomers,
		create: handlers.CreateCustomer,
		getOne: handlers.GetCustomer,
		update: handlers.UpdateCustomer,
		delete: handlers.DeleteCustomer,
	})
}

func registerKPIRoutes(api *mux.Router) {
	api.Handle("/kpi/inventory", middleware.RequirePermission("kpi:read")(
		http.HandlerFunc(kpi_handlers.GetInventoryKPIs))).Methods("GET")
	api.Handle("/kpi/projects", middleware.RequirePermission("kpi:read")(
		http.HandlerFunc(kpi_handlers.GetProjectKPIs))).Methods("GET")
	api.Handle("/kpi/worker-activity", middleware.RequirePermission("kpi:read")(
		http.HandlerFunc(kpi_handlers.GetWorkerActivity))).Methods("GET")
}

func registerExportRoutes(api *mux.Router) {
	api.Handle("/export/products/csv", middleware.RequirePermission("export:read")(
		http.HandlerFunc(handlers.ExportProductsCSV))).Methods("GET")
	api.Handle("/export/products/excel", middleware.RequirePermission("export:read")(
		http.HandlerFunc(handlers.ExportProductsExcel))).Methods("GET")
	api.Handle("/export/projects/csv", middleware.RequirePermission("export:read")(
		http.HandlerFunc(handlers.ExportProjectsCSV))).Methods("GET")
}

func registerFileRoutes(api *mux.Router) {
	api.Handle("/files/upload", middleware.RequirePermission("file:upload")(
		http.HandlerFunc(handlers.UploadProductImage))).Methods("POST")
}

// registerAdminRoutes registers user administration, super admin only.
func registerAdminRoutes(admin *mux.Router) {
	admin.Handle("/users", middleware.RequirePermission("user:read")(
		http.HandlerFunc(handlers.ListUsers))).Methods("GET")
	admin.Handle("/users", middleware.RequirePermission("user:create")(
		http.HandlerFunc(handlers.Register))).Methods("POST")
	admin.Handle("/users/{id}", middleware.RequirePermission("user:read")(
		http.HandlerFunc(handlers.GetUser))).Methods("GET")
	admin.Handle("/users/{id}/role", middleware.RequirePermission("user:update")(
		http.HandlerFunc(handlers.UpdateUserRole))).Methods("PATCH")
	admin.Handle("/users/{id}/profile", middleware.RequirePermission("user:update")(
		http.HandlerFunc(handlers.UpdateUserProfile))).Methods("PATCH")
	admin.Handle("/users/{id}/deactivate", middleware.RequirePermission("user:update")(
		http.HandlerFunc(handlers.DeactivateUser))).Methods("POST")
	admin.Handle("/users/{id}/reactivate", middleware.RequirePermission("user:update")(
		http.HandlerFunc(handlers.ReactivateUser))).Methods("POST")
}
