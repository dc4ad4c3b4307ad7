package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OutboundUC OutboundService
	CatalogUC  CatalogService
	AuthUC     AuthService
	JWTSecret  string
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	auth := AuthMiddleware(deps.JWTSecret)

	// Auth: login público, registro solo admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", auth, RequireRole(entity.RoleAdmin), authHandler.Register)

	// Órdenes de salida (protegido)
	outbound := api.Group("/orders/outbound", auth, RequireRole(entity.RoleAdmin, entity.RoleDespachador))
	outboundHandler := NewOutboundHandler(deps.OutboundUC, deps.Log)
	outbound.Post("/", outboundHandler.Create)
	outbound.Get("/:id", outboundHandler.GetByID)
	outbound.Get("/:id/manifest", outboundHandler.Manifest)

	// Catálogo y stock (bodega)
	productHandler := NewProductHandler(deps.CatalogUC, deps.Log)
	warehouseRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	products := api.Group("/products", auth)
	products.Post("/", warehouseRoles, productHandler.Create)
	products.Get("/:gtin", RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleDespachador), productHandler.GetByGTIN)
	api.Put("/stock", auth, warehouseRoles, productHandler.SetStock)
}
