package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wishlist/internal/middleware"
	"wishlist/internal/repositories"
	"wishlist/internal/services"
)

// CollectionHandler handles HTTP requests for wishlist collections.
type CollectionHandler struct {
	service  *services.CollectionService
	validate *validator.Validate
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(service *services.CollectionService, validate *validator.Validate) *CollectionHandler {
	return &CollectionHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the collection routes behind authRequired.
func (h *CollectionHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	collectionRoutes := router.Group("/collections", authRequired)
	collectionRoutes.Get("/", h.HandleList)
	collectionRoutes.Post("/", h.HandleCreate)
	collectionRoutes.Get("/:id", h.HandleGet)
	collectionRoutes.Put("/:id", h.HandleUpdate)
	collectionRoutes.Delete("/:id", h.HandleDelete)
	collectionRoutes.Post("/:id/set-default", h.HandleSetDefault)
}

// CreateCollectionRequest represents the request body for a new collection.
type CreateCollectionRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,hexcolor6"`
	IsDefault   bool    `json:"is_default"`
}

// UpdateCollectionRequest is a partial update; omitted fields are kept.
type UpdateCollectionRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,hexcolor6"`
	IsDefault   *bool   `json:"is_default"`
}

func (h *CollectionHandler) HandleList(c *fiber.Ctx) error {
	cols, err := h.service.List(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(cols)
}

func (h *CollectionHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateCollectionRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	col, err := h.service.Create(c.UserContext(), middleware.CurrentUser(c), services.CollectionInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(col)
}

// HandleGet returns a collection together with its items.
func (h *CollectionHandler) HandleGet(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	col, err := h.service.Get(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(col)
}

func (h *CollectionHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateCollectionRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	col, err := h.service.Update(c.UserContext(), middleware.CurrentUser(c), id, repositories.CollectionChanges{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		return err
	}
	return c.JSON(col)
}

func (h *CollectionHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CollectionHandler) HandleSetDefault(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	col, err := h.service.SetDefault(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(col)
}
