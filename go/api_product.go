package orderserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/http/mapper"
	productports "github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
)

// ProductAPI wires HTTP transport with the products use case.
type ProductAPI struct {
	products productports.UseCase
}

func NewProductAPI(products productports.UseCase) ProductAPI {
	return ProductAPI{products: products}
}

// Get /products/:productName
// Find product by exact name
func (api *ProductAPI) GetProductByName(c *gin.Context) {
	product, err := api.products.FindProduct(c.Request.Context(), c.Param("productName"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProduct(product))
}
