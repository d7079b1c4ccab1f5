// Package server assembles the HTTP router: middleware, documentation and
// the /api/v1 routes backed by the bookkeeping services.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "selfbank/internal/docs" // registers swagger spec
	"selfbank/internal/handlers"
	"selfbank/internal/middleware"
	"selfbank/internal/services"
	"selfbank/internal/validator"
)

// Services bundles the use cases the router exposes.
type Services struct {
	AssetTypes   services.AssetTypeServicer
	Assets       services.AssetServicer
	ExpenseTypes services.ExpenseTypeServicer
	Expenses     services.ExpenseServicer
	ContactTypes services.ContactTypeServicer
	Contacts     services.ContactServicer
	Transactions services.TransactionServicer
	Transfers    services.TransferServicer
}

// NewServices wires every service over the same database handle.
func NewServices(db *gorm.DB) *Services {
	return &Services{
		AssetTypes:   services.NewAssetTypeService(db),
		Assets:       services.NewAssetService(db),
		ExpenseTypes: services.NewExpenseTypeService(db),
		Expenses:     services.NewExpenseService(db),
		ContactTypes: services.NewContactTypeService(db),
		Contacts:     services.NewContactService(db),
		Transactions: services.NewTransactionService(db),
		Transfers:    services.NewTransferService(db),
	}
}

// NewRouter builds the gin engine. requestTimeout bounds each request's
// context; zero disables it.
func NewRouter(svc *Services, requestTimeout time.Duration) *gin.Engine {
	validator.Register()

	assetTypeHandler := handlers.NewAssetTypeHandler(svc.AssetTypes)
	assetHandler := handlers.NewAssetHandler(svc.Assets, svc.Transactions)
	expenseTypeHandler := handlers.NewExpenseTypeHandler(svc.ExpenseTypes)
	expenseHandler := handlers.NewExpenseHandler(svc.Expenses)
	contactTypeHandler := handlers.NewContactTypeHandler(svc.ContactTypes)
	contactHandler := handlers.NewContactHandler(svc.Contacts)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Transfers)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())
	router.Use(middleware.Timeout(requestTimeout))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	assetTypes := v1.Group("/asset-types")
	assetTypes.POST("", assetTypeHandler.CreateAssetType)
	assetTypes.GET("", assetTypeHandler.ListAssetTypes)
	assetTypes.GET("/:id", assetTypeHandler.GetAssetType)
	assetTypes.PUT("/:id", assetTypeHandler.UpdateAssetType)
	assetTypes.DELETE("/:id", assetTypeHandler.DeleteAssetType)

	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
	assets.GET("/:id/balance", assetHandler.GetBalance)
	assets.GET("/:id/reconciliation", assetHandler.Reconcile)
	assets.GET("/:id/transactions", assetHandler.ListAssetTransactions)

	expenseTypes := v1.Group("/expense-types")
	expenseTypes.POST("", expenseTypeHandler.CreateExpenseType)
	expenseTypes.GET("", expenseTypeHandler.ListExpenseTypes)
	expenseTypes.GET("/:id", expenseTypeHandler.GetExpenseType)
	expenseTypes.PUT("/:id", expenseTypeHandler.UpdateExpenseType)
	expenseTypes.DELETE("/:id", expenseTypeHandler.DeleteExpenseType)

	expenses := v1.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	contactTypes := v1.Group("/contact-types")
	contactTypes.POST("", contactTypeHandler.CreateContactType)
	contactTypes.GET("", contactTypeHandler.ListContactTypes)
	contactTypes.GET("/:id", contactTypeHandler.GetContactType)
	contactTypes.PUT("/:id", contactTypeHandler.UpdateContactType)
	contactTypes.DELETE("/:id", contactTypeHandler.DeleteContactType)

	contacts := v1.Group("/contacts")
	contacts.POST("", contactHandler.CreateContact)
	contacts.GET("", contactHandler.ListContacts)
	contacts.GET("/:id", contactHandler.GetContact)
	contacts.PUT("/:id", contactHandler.UpdateContact)
	contacts.DELETE("/:id", contactHandler.DeleteContact)

	transactions := v1.Group("/transactions")
	transactions.POST("/income", transactionHandler.RecordIncome)
	transactions.POST("/payment", transactionHandler.RecordPayment)
	transactions.POST("/transfer", transactionHandler.TransferFund)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/type/:type", transactionHandler.ListByType)
	transactions.GET("/month/:month", transactionHandler.ListByMonth)
	transactions.GET("/:id", transactionHandler.GetTransaction)

	return router
}
