package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

const (
	CodeOrderNotFound            apperror.Code = "order.not_found"
	CodeSomeProductsNotAvailable apperror.Code = "order.products_unavailable"
	CodeInvalidOrder             apperror.Code = "order.invalid"
)

var (
	// ErrOrderNotFound matches every order-not-found error via errors.Is.
	ErrOrderNotFound = apperror.New(apperror.KindNotFound, CodeOrderNotFound, "Orders not found.", nil)
	// ErrSomeProductsNotAvailable rejects an order whose stock check failed.
	ErrSomeProductsNotAvailable = apperror.New(apperror.KindValidationConflict, CodeSomeProductsNotAvailable, "Some products are not available.", nil)
	// ErrInvalidOrder signals the order violated a domain invariant.
	ErrInvalidOrder = apperror.New(apperror.KindValidationConflict, CodeInvalidOrder, "Invalid order.", nil)
)

func orderNotFound(id *int64) error {
	if id == nil {
		return ErrOrderNotFound
	}
	return apperror.New(apperror.KindNotFound, CodeOrderNotFound, fmt.Sprintf("Order id '%d' not found.", *id), nil)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoProducts) ||
		errors.Is(err, domain.ErrEmptyProductName) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativeLinePrice) {
		return apperror.New(apperror.KindValidationConflict, CodeInvalidOrder, "Invalid order: "+err.Error()+".", err)
	}
	return apperror.Wrap(err)
}
