package application

import (
	"fmt"

	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

// CodeProductNotFound tags failed product lookups.
const CodeProductNotFound apperror.Code = "product.not_found"

// ErrProductNotFound matches every product-not-found error via errors.Is.
var ErrProductNotFound = apperror.New(apperror.KindNotFound, CodeProductNotFound, "Product not found.", nil)

func productNotFound(name string) error {
	return apperror.New(apperror.KindNotFound, CodeProductNotFound, fmt.Sprintf("Product '%s' not found.", name), nil)
}
