package httpserver

import (
	"net/http"
	"strconv"
	"time"

	agencysvc "orderdesk/internal/service/agency"
	clientsvc "orderdesk/internal/service/client"
	discountsvc "orderdesk/internal/service/discount"
	productsvc "orderdesk/internal/service/product"

	"github.com/gin-gonic/gin"
)

func listClientsHandler(svc ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.List(c.Request.Context(), c.Query("q")))
	}
}

func getClientHandler(svc ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

func createClientHandler(svc ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in clientsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid json body")
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateClientHandler(svc ClientService) gin.HandlerFunc {
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

func deleteClientHandler(svc ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := queryID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		deleted(c)
	}
}

func listProductsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.List(c.Request.Context()))
	}
}

// browseProductsHandler serves the ordering catalogue: products in stock at agenceId,
// the attachment agency by default.
func browseProductsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Browse(c.Request.Context(), productsvc.BrowseQuery{
			Category: c.Query("categorie"),
			Search:   c.Query("q"),
			AgencyID: c.Query("agenceId"),
		}))
	}
}

func categoriesHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Categories(c.Request.Context()))
	}
}

func getProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func createProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid json body")
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateProductHandler(svc ProductService) gin.HandlerFunc {
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

func deleteProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := queryID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		deleted(c)
	}
}

func listAgenciesHandler(svc AgencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.List(c.Request.Context()))
	}
}

func attachmentAgencyHandler(svc AgencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"agenceId": svc.DefaultAgency()})
	}
}

func candidatesHandler(svc AgencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in agencysvc.CandidatesInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid json body")
			return
		}
		out, err := svc.Candidates(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getAgencyHandler(svc AgencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func createAgencyHandler(svc AgencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in agencysvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid json body")
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateAgencyHandler(svc AgencyService) gin.HandlerFunc {
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

func deleteAgencyHandler(svc AgencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := queryID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		deleted(c)
	}
}

// listDiscountsHandler returns the catalogue; actives=true keeps entries valid today.
func listDiscountsHandler(svc DiscountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly, _ := strconv.ParseBool(c.Query("actives"))
		c.JSON(http.StatusOK, svc.List(c.Request.Context(), activeOnly, time.Now()))
	}
}

func getDiscountHandler(svc DiscountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func createDiscountHandler(svc DiscountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in discountsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid json body")
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateDiscountHandler(svc DiscountService) gin.HandlerFunc {
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

func deleteDiscountHandler(svc DiscountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := queryID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		deleted(c)
	}
}

func quoteHandler(svc DiscountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in discountsvc.QuoteInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid json body")
			return
		}
		q, err := svc.Quote(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, q)
	}
}
