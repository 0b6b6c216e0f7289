package httpserver

import (
	"net/http"

	"orderdesk/internal/domain"
	ordersvc "orderdesk/internal/service/order"

	"github.com/gin-gonic/gin"
)

type transitionRequest struct {
	Status domain.OrderStatus `json:"statut" binding:"required"`
}

func listOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.List(c.Request.Context(), ordersvc.Filter{
			ClientID: c.Query("clientId"),
			Status:   domain.OrderStatus(c.Query("statut")),
		}))
	}
}

func submitOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.SubmitInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid json body")
			return
		}
		created, err := svc.Submit(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func updateOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, patch, ok := bindPatch(c, c.Param("id"))
		if !ok {
			return
		}
		updated, err := svc.Update(c.Request.Context(), id, patch)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func updateOrderFromBodyHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, patch, ok := bindPatch(c, "")
		if !ok {
			return
		}
		updated, err := svc.Update(c.Request.Context(), id, patch)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// deleteOrderHandler answers with the removed order.
func deleteOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, removed)
	}
}

func deleteOrderByQueryHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := queryID(c)
		if !ok {
			return
		}
		if _, err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		deleted(c)
	}
}

func transitionOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "statut required")
			return
		}
		updated, err := svc.Transition(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func historyHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.History(c.Request.Context()))
	}
}
