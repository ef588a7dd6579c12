package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/models"
	"github.com/cafesys/cafe-backend/services"
	"github.com/cafesys/cafe-backend/utils"
)

type MenuController struct {
	catalog *services.CatalogService
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{catalog: services.NewCatalogService(db)}
}

// GetAllMenus lists the catalog, optionally filtered with ?type= or ?search=.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var (
		items []models.MenuItem
		err   error
	)
	switch {
	case c.Query("type") != "":
		items, err = mc.catalog.ListByType(c.Query("type"))
	case c.Query("search") != "":
		items, err = mc.catalog.SearchByName(c.Query("search"))
	default:
		items, err = mc.catalog.ListItems()
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) GetMenuItem(c *gin.Context) {
	item, err := mc.catalog.GetItem(c.Param("item_name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateMenuItem adds a catalog item. Manager only.
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}

	var req struct {
		ItemName    string  `json:"item_name" binding:"required"`
		Type        string  `json:"type"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		ImageURL    string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		ItemName:    req.ItemName,
		Type:        req.Type,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := mc.catalog.AddItem(id, item); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("menu item %s added by %s", req.ItemName, id.Login)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem edits the provided fields of a catalog item. Manager only.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}

	name := c.Param("item_name")

	var req struct {
		Type        *string  `json:"type"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		ImageURL    *string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Type != nil {
		if err := mc.catalog.UpdateType(id, name, *req.Type); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if req.Price != nil {
		if err := mc.catalog.UpdatePrice(id, name, *req.Price); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if req.Description != nil {
		if err := mc.catalog.UpdateDescription(id, name, *req.Description); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if req.ImageURL != nil {
		if err := mc.catalog.UpdateImageURL(id, name, *req.ImageURL); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	item, err := mc.catalog.GetItem(name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem removes a catalog item and every line item referencing it.
// Manager only.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}

	name := c.Param("item_name")
	if err := mc.catalog.DeleteItem(id, name); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("menu item %s deleted by %s", name, id.Login)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"item_name": name})
}
