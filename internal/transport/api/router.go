package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/ledgerbook/internal/transport/api/middlewares"
)

const DefaultServiceTimeout = 3 * time.Second

const (
	RouteGroup       = "/api"
	SignupRoute      = "/auth/signup"
	LoginRoute       = "/auth/login"
	VerifyTokenRoute = "/auth/verify-token"
	ProfileRoute     = "/auth/profile"

	CustomersRoute            = "/customers"
	CustomerRoute             = "/customers/:id"
	CustomerTransactionsRoute = "/customers/:id/transactions"
	CustomerTransactionRoute  = "/customers/:id/transactions/:transactionId"

	AnalyticsRoute = "/analytics"
)

type RouterArgs struct {
	Logger             *logrus.Logger
	UserService        UserServicer
	CustomerService    CustomerServicer
	TransactionService TransactionServicer
	JWTSecretKey       []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	customersHandler := NewCustomersHandler(args.CustomerService)
	transactionsHandler := NewTransactionsHandler(args.TransactionService)

	api := r.Group(RouteGroup)

	api.POST(SignupRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Signup)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// everything below requires an authenticated user.
	api.GET(VerifyTokenRoute, authHandler.VerifyToken)
	api.PUT(ProfileRoute, authHandler.UpdateProfile)

	api.GET(CustomersRoute, customersHandler.Index)
	api.POST(CustomersRoute, customersHandler.Create)
	api.PUT(CustomerRoute, customersHandler.Update)
	api.DELETE(CustomerRoute, customersHandler.Delete)
	api.GET(AnalyticsRoute, customersHandler.Analytics)

	api.GET(CustomerTransactionsRoute, transactionsHandler.Index)
	api.POST(CustomerTransactionsRoute, transactionsHandler.Create)
	api.PUT(CustomerTransactionRoute, transactionsHandler.Update)
	api.DELETE(CustomerTransactionRoute, transactionsHandler.Delete)

	return r
}
