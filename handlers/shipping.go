package handlers

import (
	"log"
	"net/http"
	"time"

	"yourbuyer-api/novaposhta"
	"yourbuyer-api/utils"

	"github.com/gin-gonic/gin"
)

// ShippingHandler proxies Nova Poshta address lookups. Results are cached
// for 24h; an upstream failure degrades to an empty successful result so
// the checkout form keeps working.
type ShippingHandler struct {
	Client *novaposhta.Client
	cache  *utils.TTLCache
}

func NewShippingHandler(client *novaposhta.Client) *ShippingHandler {
	return &ShippingHandler{
		Client: client,
		cache:  utils.NewTTLCache(24 * time.Hour),
	}
}

func (h *ShippingHandler) Cities(c *gin.Context) {
	query := c.Query("query")
	cacheKey := "cities:" + query

	if cached, ok := h.cache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"cities": cached}})
		return
	}

	cities, err := h.Client.GetCities(query)
	if err != nil {
		log.Printf("nova poshta cities lookup failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"cities": []novaposhta.City{}}})
		return
	}

	h.cache.Set(cacheKey, cities)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"cities": cities}})
}

func (h *ShippingHandler) Departments(c *gin.Context) {
	var req struct {
		CityRef string `json:"city_ref" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  gin.H{"city_ref": []string{"The city_ref field is required."}},
		})
		return
	}

	cacheKey := "departments:" + req.CityRef
	if cached, ok := h.cache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"departments": cached}})
		return
	}

	warehouses, err := h.Client.GetWarehouses(req.CityRef)
	if err != nil {
		log.Printf("nova poshta departments lookup failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"departments": []novaposhta.Warehouse{}}})
		return
	}

	h.cache.Set(cacheKey, warehouses)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"departments": warehouses}})
}

// SearchCity is the typeahead variant of Cities; it takes ?name= and is
// cached under the same 24h policy.
func (h *ShippingHandler) SearchCity(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"cities": []novaposhta.City{}}})
		return
	}

	cacheKey := "search-city:" + name
	if cached, ok := h.cache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"cities": cached}})
		return
	}

	cities, err := h.Client.GetCities(name)
	if err != nil {
		log.Printf("nova poshta city search failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"cities": []novaposhta.City{}}})
		return
	}

	h.cache.Set(cacheKey, cities)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"cities": cities}})
}
