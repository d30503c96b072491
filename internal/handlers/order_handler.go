package handlers

import (
	"errors"
	"strconv"
	"time"

	"roti_pos/internal/apperr"
	"roti_pos/internal/models"
	"roti_pos/internal/services"
	"roti_pos/pkg/resp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	browser services.BrowserService
}

func NewOrderHandler(browser services.BrowserService) *OrderHandler {
	return &OrderHandler{browser: browser}
}

type orderResponse struct {
	ID            uint               `json:"id"`
	Items         []models.OrderItem `json:"items"`
	ItemNames     string             `json:"itemNames"`
	PaymentMethod string             `json:"paymentMethod"`
	OrderType     string             `json:"orderType"`
	Note          string             `json:"note"`
	Total         float64            `json:"total"`
	CreatedAt     string             `json:"createdAt"`
}

func orderPayload(orders []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		out = append(out, orderResponse{
			ID:            o.ID,
			Items:         o.Items,
			ItemNames:     o.ItemNames(),
			PaymentMethod: o.PaymentMethod,
			OrderType:     o.OrderType,
			Note:          o.Note,
			Total:         o.Total,
			CreatedAt:     o.CreatedAtDisplay(),
		})
	}
	return out
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		resp.BadRequest(c, err.Error())
	case apperr.IsConflict(err):
		resp.Conflict(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "order not found")
	default:
		resp.ServerError(c, err)
	}
}

// List loads the requested day's orders (today when no date is given) and
// applies the filters from the query string on top of the fresh cache.
func (h *OrderHandler) List(c *gin.Context) {
	filters := services.Filters{
		Name:          c.Query("name"),
		Date:          c.Query("date"),
		OrderType:     c.Query("orderType"),
		PaymentMethod: c.Query("paymentMethod"),
		Note:          c.Query("note"),
	}

	var err error
	if filters.Date == "" {
		_, err = h.browser.Reset()
	} else {
		day, parseErr := time.ParseInLocation("2006-01-02", filters.Date, time.Local)
		if parseErr != nil {
			resp.BadRequest(c, "date must be YYYY-MM-DD")
			return
		}
		_, err = h.browser.Load(day)
	}
	if err != nil {
		respondOrderError(c, err)
		return
	}

	resp.OK(c, orderPayload(h.browser.View(filters)))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.browser.GetOrder(id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	resp.OK(c, orderPayload([]models.Order{*order})[0])
}

type updateOrderRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := h.browser.UpdateField(id, req.Field, req.Value); err != nil {
		respondOrderError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "field": req.Field, "value": req.Value})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.browser.DeleteOrder(id); err != nil {
		respondOrderError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "status": "deleted"})
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return 0, false
	}
	return uint(id), true
}
