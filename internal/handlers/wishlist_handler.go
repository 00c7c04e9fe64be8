package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wishlist/internal/middleware"
	"wishlist/internal/models"
	"wishlist/internal/repositories"
	"wishlist/internal/services"
)

// WishlistHandler handles HTTP requests for wishlist items and their price
// history.
type WishlistHandler struct {
	service  *services.ItemService
	validate *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.ItemService, validate *validator.Validate) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the item routes behind authRequired.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	itemRoutes := router.Group("/wishlist", authRequired)
	itemRoutes.Get("/", h.HandleList)
	itemRoutes.Post("/", h.HandleCreate)
	itemRoutes.Get("/:id", h.HandleGet)
	itemRoutes.Put("/:id", h.HandleUpdate)
	itemRoutes.Delete("/:id", h.HandleDelete)
	itemRoutes.Get("/:id/price-history", h.HandlePriceHistory)
	itemRoutes.Post("/:id/price-history", h.HandleAddPrice)
}

// CreateItemRequest represents the request body for a new item.
type CreateItemRequest struct {
	Title        string        `json:"title" validate:"required,max=200"`
	ProductURL   *string       `json:"product_url" validate:"omitempty,url,max=2048"`
	InitialPrice *models.Money `json:"initial_price" validate:"required,price"`
	Currency     string        `json:"currency" validate:"omitempty,currency"`
	CollectionID *uint         `json:"collection_id" validate:"omitempty,gt=0"`
}

// UpdateItemRequest is a partial update. initial_price is immutable and
// not accepted.
type UpdateItemRequest struct {
	Title        *string       `json:"title" validate:"omitempty,max=200"`
	ProductURL   *string       `json:"product_url" validate:"omitempty,url,max=2048"`
	CurrentPrice *models.Money `json:"current_price" validate:"omitempty,price"`
	CollectionID *uint         `json:"collection_id" validate:"omitempty,gt=0"`
}

// AddPriceRequest records a manual price observation.
type AddPriceRequest struct {
	Price *models.Money `json:"price" validate:"required,price"`
}

// HandleList lists the caller's items, optionally filtered by
// ?collection_id=.
func (h *WishlistHandler) HandleList(c *fiber.Ctx) error {
	collectionID, err := queryID(c, "collection_id")
	if err != nil {
		return err
	}
	items, err := h.service.List(c.UserContext(), middleware.CurrentUser(c), collectionID)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *WishlistHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateItemRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	item, err := h.service.Create(c.UserContext(), middleware.CurrentUser(c), services.ItemInput{
		Title:        req.Title,
		ProductURL:   req.ProductURL,
		InitialPrice: *req.InitialPrice,
		Currency:     req.Currency,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *WishlistHandler) HandleGet(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *WishlistHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateItemRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	item, err := h.service.Update(c.UserContext(), middleware.CurrentUser(c), id, repositories.ItemChanges{
		Title:        req.Title,
		ProductURL:   req.ProductURL,
		CurrentPrice: req.CurrentPrice,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *WishlistHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WishlistHandler) HandlePriceHistory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.service.PriceHistory(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (h *WishlistHandler) HandleAddPrice(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req AddPriceRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	entry, err := h.service.AddPrice(c.UserContext(), middleware.CurrentUser(c), id, *req.Price)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}
