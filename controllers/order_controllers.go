package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/services"
	"github.com/cafesys/cafe-backend/utils"
)

type OrderController struct {
	orders *services.OrderService
	items  *services.ItemService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		orders: services.NewOrderService(db),
		items:  services.NewItemService(db),
	}
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return uint(id), true
}

// CreateOrder opens an order for the caller and adds the requested items.
// An order that ends the batch with nothing on it is cancelled, matching the
// rule that a total of zero or below never survives an edit.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}

	var req struct {
		Items []struct {
			ItemName string `json:"item_name" binding:"required"`
			Comment  string `json:"comment"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orderID, err := oc.orders.CreateOrder(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	for _, item := range req.Items {
		if err := oc.items.AddItem(id, orderID, item.ItemName, item.Comment); err != nil {
			utils.InfoLogger.Printf("order %d: could not add %s: %v", orderID, item.ItemName, err)
		}
	}

	cancelled, err := oc.orders.FinalizeEdit(id, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if cancelled {
		utils.RespondJSON(c, http.StatusOK, "Order cancelled: no items were added", gin.H{
			"order_id": orderID,
		})
		return
	}

	summary, err := oc.orders.Summary(id, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", summary)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	summary, err := oc.orders.Summary(id, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", summary)
}

// AddItem puts one more catalog item on the order.
func (oc *OrderController) AddItem(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		ItemName string `json:"item_name" binding:"required"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.items.AddItem(id, orderID, req.ItemName, req.Comment); err != nil {
		respondServiceError(c, err)
		return
	}

	total, err := oc.orders.GetTotal(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added", gin.H{
		"order_id":  orderID,
		"item_name": req.ItemName,
		"total":     utils.FormatAmount(total),
	})
}

// RemoveItem takes an item off the order; the order itself is cancelled when
// the removal drives its total to zero.
func (oc *OrderController) RemoveItem(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	itemName := c.Param("item_name")

	cancelled, err := oc.items.RemoveItem(id, orderID, itemName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if cancelled {
		utils.RespondJSON(c, http.StatusOK, "Order cancelled: last item removed", gin.H{
			"order_id": orderID,
		})
		return
	}

	total, err := oc.orders.GetTotal(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", gin.H{
		"order_id":  orderID,
		"item_name": itemName,
		"total":     utils.FormatAmount(total),
	})
}

// SetComment replaces a line item's comment.
func (oc *OrderController) SetComment(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.items.SetComment(id, orderID, c.Param("item_name"), req.Comment); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Comment updated", nil)
}

// SetItemStatus toggles a line between ready and in progress. Staff only.
func (oc *OrderController) SetItemStatus(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Ready *bool `json:"ready" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.items.SetStatus(id, orderID, c.Param("item_name"), *req.Ready); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item status updated", nil)
}

// SetPaid flips the order's paid flag. Staff only.
func (oc *OrderController) SetPaid(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Paid *bool `json:"paid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.orders.SetPaid(id, orderID, *req.Paid); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order payment updated", gin.H{
		"order_id": orderID,
		"paid":     *req.Paid,
	})
}

// CancelOrder drops the order together with its line items.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	confirmed, err := oc.orders.CancelOrder(id, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !confirmed {
		utils.RespondJSON(c, http.StatusConflict, "Order could not be cancelled", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", gin.H{"order_id": orderID})
}

// IsReady reports whether every item on the order is ready.
func (oc *OrderController) IsReady(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	ready, err := oc.orders.IsReady(id, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order readiness", gin.H{
		"order_id": orderID,
		"ready":    ready,
	})
}

// History lists the caller's recent orders (?unpaid=true narrows to unpaid).
func (oc *OrderController) History(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}

	unpaidOnly := c.Query("unpaid") == "true"
	login := c.Query("login")
	if login == "" {
		login = id.Login
	}

	orders, err := oc.orders.RecentOrders(id, login, unpaidOnly, 5)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recent orders", orders)
}

// DayHistory lists all orders of the past 24 hours. Staff only.
func (oc *OrderController) DayHistory(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}

	unpaidOnly := c.Query("unpaid") == "true"
	orders, err := oc.orders.HistorySince(id, time.Now().Add(-24*time.Hour), unpaidOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders from the past 24 hours", orders)
}
