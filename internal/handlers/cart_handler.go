package handlers

import (
	"errors"
	"strconv"

	"roti_pos/internal/apperr"
	"roti_pos/internal/catalog"
	"roti_pos/internal/redis"
	"roti_pos/internal/services"
	"roti_pos/pkg/resp"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	composer services.ComposerService
}

func NewCartHandler(composer services.ComposerService) *CartHandler {
	return &CartHandler{composer: composer}
}

type cartResponse struct {
	ID            string         `json:"id,omitempty"`
	Lines         []catalog.Line `json:"lines"`
	OrderType     string         `json:"orderType"`
	PaymentMethod string         `json:"paymentMethod"`
	Note          string         `json:"note"`
	Total         float64        `json:"total"`
}

func cartPayload(id string, cart *catalog.Cart) cartResponse {
	return cartResponse{
		ID:            id,
		Lines:         cart.Lines,
		OrderType:     cart.OrderType,
		PaymentMethod: cart.PaymentMethod,
		Note:          cart.Note,
		Total:         cart.Total(),
	}
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, redis.ErrCartNotFound):
		resp.NotFound(c, err.Error())
	case apperr.IsValidation(err):
		resp.BadRequest(c, err.Error())
	case apperr.IsConflict(err):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

func (h *CartHandler) Create(c *gin.Context) {
	id, cart, err := h.composer.CreateCart()
	if err != nil {
		respondCartError(c, err)
		return
	}
	resp.Created(c, cartPayload(id, cart))
}

func (h *CartHandler) Get(c *gin.Context) {
	id := c.Param("id")
	cart, err := h.composer.GetCart(id)
	if err != nil {
		respondCartError(c, err)
		return
	}
	resp.OK(c, cartPayload(id, cart))
}

func (h *CartHandler) Catalog(c *gin.Context) {
	resp.OK(c, catalog.DefaultMenu())
}

func itemIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		resp.BadRequest(c, "invalid item index")
		return 0, false
	}
	return index, true
}

func (h *CartHandler) Toggle(c *gin.Context) {
	index, ok := itemIndex(c)
	if !ok {
		return
	}

	cart, err := h.composer.ToggleSelect(c.Param("id"), index)
	if err != nil {
		respondCartError(c, err)
		return
	}
	resp.OK(c, cartPayload(c.Param("id"), cart))
}

type itemFieldRequest struct {
	Field string  `json:"field" binding:"required"`
	Value float64 `json:"value"`
}

func (h *CartHandler) SetItemField(c *gin.Context) {
	index, ok := itemIndex(c)
	if !ok {
		return
	}

	var req itemFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart, err := h.composer.SetItemField(c.Param("id"), index, req.Field, req.Value)
	if err != nil {
		respondCartError(c, err)
		return
	}
	resp.OK(c, cartPayload(c.Param("id"), cart))
}

type stepRequest struct {
	Field string `json:"field" binding:"required"`
}

func (h *CartHandler) Increment(c *gin.Context) {
	h.step(c, h.composer.Increment)
}

func (h *CartHandler) Decrement(c *gin.Context) {
	h.step(c, h.composer.Decrement)
}

func (h *CartHandler) step(c *gin.Context, apply func(string, int, string) (*catalog.Cart, error)) {
	index, ok := itemIndex(c)
	if !ok {
		return
	}

	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart, err := apply(c.Param("id"), index, req.Field)
	if err != nil {
		respondCartError(c, err)
		return
	}
	resp.OK(c, cartPayload(c.Param("id"), cart))
}

type metaRequest struct {
	OrderType     *string `json:"orderType"`
	PaymentMethod *string `json:"paymentMethod"`
	Note          *string `json:"note"`
}

func (h *CartHandler) SetMeta(c *gin.Context) {
	var req metaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart, err := h.composer.SetMeta(c.Param("id"), req.OrderType, req.PaymentMethod, req.Note)
	if err != nil {
		respondCartError(c, err)
		return
	}
	resp.OK(c, cartPayload(c.Param("id"), cart))
}

func (h *CartHandler) Submit(c *gin.Context) {
	order, err := h.composer.Submit(c.Param("id"))
	if err != nil {
		respondCartError(c, err)
		return
	}
	resp.Created(c, order)
}
