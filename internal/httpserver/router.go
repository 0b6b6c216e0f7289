package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/logging"
	agencysvc "orderdesk/internal/service/agency"
	clientsvc "orderdesk/internal/service/client"
	discountsvc "orderdesk/internal/service/discount"
	ordersvc "orderdesk/internal/service/order"
	productsvc "orderdesk/internal/service/product"
	"orderdesk/internal/upload"
	"orderdesk/internal/wizard"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// privilegedCaller stands in for a permission check: when true, order wizards
// skip manual agency selection and use the attachment agency.
const privilegedCaller = false

type ClientService interface {
	List(ctx context.Context, query string) []domain.Client
	Get(ctx context.Context, id string) (domain.Client, error)
	Create(ctx context.Context, in clientsvc.CreateInput) (domain.Client, error)
	Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Client, error)
	Delete(ctx context.Context, id string) error
}

type ProductService interface {
	List(ctx context.Context) []domain.Product
	Get(ctx context.Context, id string) (domain.Product, error)
	Browse(ctx context.Context, q productsvc.BrowseQuery) []domain.Product
	Categories(ctx context.Context) []string
	Create(ctx context.Context, in productsvc.CreateInput) (domain.Product, error)
	Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type AgencyService interface {
	List(ctx context.Context) []domain.Agency
	Get(ctx context.Context, id string) (domain.Agency, error)
	DefaultAgency() string
	Create(ctx context.Context, in agencysvc.CreateInput) (domain.Agency, error)
	Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Agency, error)
	Delete(ctx context.Context, id string) error
	Candidates(ctx context.Context, in agencysvc.CandidatesInput) (agencysvc.Candidates, error)
}

type DiscountService interface {
	List(ctx context.Context, activeOnly bool, now time.Time) []domain.Discount
	Get(ctx context.Context, id string) (domain.Discount, error)
	Create(ctx context.Context, in discountsvc.CreateInput) (domain.Discount, error)
	Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Discount, error)
	Delete(ctx context.Context, id string) error
	Quote(ctx context.Context, in discountsvc.QuoteInput) (discountsvc.Quote, error)
}

type OrderService interface {
	Submit(ctx context.Context, in ordersvc.SubmitInput) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context, f ordersvc.Filter) []domain.Order
	Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Order, error)
	Delete(ctx context.Context, id string) (domain.Order, error)
	Transition(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error)
	History(ctx context.Context) map[string][]domain.Order
}

// Deps groups the services the router dispatches to.
type Deps struct {
	ClientSvc   ClientService
	ProductSvc  ProductService
	AgencySvc   AgencyService
	DiscountSvc DiscountService
	OrderSvc    OrderService
	Uploads     upload.Writer
	// NewWizard builds the order wizard of a session; the privileged flag is set by the router.
	NewWizard func(session string, privileged bool) *wizard.Wizard
	// PublicDir is served under /images when set.
	PublicDir   string
	CORSOrigins []string
}

func (d Deps) validate() error {
	switch {
	case d.ClientSvc == nil:
		return errors.New("client service required")
	case d.ProductSvc == nil:
		return errors.New("product service required")
	case d.AgencySvc == nil:
		return errors.New("agency service required")
	case d.DiscountSvc == nil:
		return errors.New("discount service required")
	case d.OrderSvc == nil:
		return errors.New("order service required")
	case d.Uploads == nil:
		return errors.New("upload writer required")
	case d.NewWizard == nil:
		return errors.New("wizard factory required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	router.Use(logging.Requests(logger), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}
	if deps.PublicDir != "" {
		router.Static("/images", filepath.Join(deps.PublicDir, "images"))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	clients := router.Group("/clients")
	clients.GET("", listClientsHandler(deps.ClientSvc))
	clients.GET("/:id", getClientHandler(deps.ClientSvc))
	clients.POST("", createClientHandler(deps.ClientSvc))
	clients.PUT("", updateClientHandler(deps.ClientSvc))
	clients.DELETE("", deleteClientHandler(deps.ClientSvc))

	products := router.Group("/produits")
	products.GET("", listProductsHandler(deps.ProductSvc))
	products.GET("/catalogue", browseProductsHandler(deps.ProductSvc))
	products.GET("/categories", categoriesHandler(deps.ProductSvc))
	products.GET("/:id", getProductHandler(deps.ProductSvc))
	products.POST("", createProductHandler(deps.ProductSvc))
	products.PUT("", updateProductHandler(deps.ProductSvc))
	products.DELETE("", deleteProductHandler(deps.ProductSvc))

	agencies := router.Group("/agences")
	agencies.GET("", listAgenciesHandler(deps.AgencySvc))
	agencies.GET("/rattachement", attachmentAgencyHandler(deps.AgencySvc))
	agencies.POST("/candidats", candidatesHandler(deps.AgencySvc))
	agencies.GET("/:id", getAgencyHandler(deps.AgencySvc))
	agencies.POST("", createAgencyHandler(deps.AgencySvc))
	agencies.PUT("", updateAgencyHandler(deps.AgencySvc))
	agencies.DELETE("", deleteAgencyHandler(deps.AgencySvc))

	discounts := router.Group("/remises")
	discounts.GET("", listDiscountsHandler(deps.DiscountSvc))
	discounts.POST("/calcul", quoteHandler(deps.DiscountSvc))
	discounts.GET("/:id", getDiscountHandler(deps.DiscountSvc))
	discounts.POST("", createDiscountHandler(deps.DiscountSvc))
	discounts.PUT("", updateDiscountHandler(deps.DiscountSvc))
	discounts.DELETE("", deleteDiscountHandler(deps.DiscountSvc))

	orders := router.Group("/commandes")
	orders.GET("", listOrdersHandler(deps.OrderSvc))
	orders.POST("", submitOrderHandler(deps.OrderSvc))
	orders.PUT("", updateOrderFromBodyHandler(deps.OrderSvc))
	orders.DELETE("", deleteOrderByQueryHandler(deps.OrderSvc))
	orders.GET("/historique", historyHandler(deps.OrderSvc))
	orders.GET("/:id", getOrderHandler(deps.OrderSvc))
	orders.PUT("/:id", updateOrderHandler(deps.OrderSvc))
	orders.DELETE("/:id", deleteOrderHandler(deps.OrderSvc))
	orders.PATCH("/:id/statut", transitionOrderHandler(deps.OrderSvc))

	router.POST("/upload", uploadHandler(deps.Uploads, logger))

	reg := newSessions(func(id string) *wizard.Wizard { return deps.NewWizard(id, privilegedCaller) })
	drafts := router.Group("/brouillons")
	drafts.POST("", openDraftHandler(reg))
	drafts.GET("/:session", mountDraftHandler(reg))
	drafts.POST("/:session/client", selectClientHandler(reg, deps.ClientSvc))
	drafts.POST("/:session/produits", selectProductsHandler(reg, deps.ProductSvc))
	drafts.POST("/:session/lignes", enterLinesHandler(reg))
	drafts.GET("/:session/candidats", draftCandidatesHandler(reg))
	drafts.POST("/:session/agence", assignAgencyHandler(reg))
	drafts.POST("/:session/instructions", instructionsHandler(reg))
	drafts.POST("/:session/confirmation", confirmHandler(reg))
	drafts.POST("/:session/validation", submitDraftHandler(reg))
	drafts.POST("/:session/suivant", advanceHandler(reg))
	drafts.POST("/:session/precedent", retreatHandler(reg))

	return router, nil
}
