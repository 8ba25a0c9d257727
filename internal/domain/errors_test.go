package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-pos-api/internal/domain"
)

func TestInsufficientStockError_Detalle(t *testing.T) {
	err := &domain.InsufficientStockError{
		ProductID: "p1",
		BranchID:  "b1",
		Available: 3,
		Requested: 5,
	}

	assert.Equal(t, int64(2), err.Shortfall(), "faltante = solicitado - disponible")
	assert.Contains(t, err.Error(), "disponible 3")
	assert.Contains(t, err.Error(), "solicitado 5")
}

func TestInsufficientStockError_UnwrapASentinel(t *testing.T) {
	var err error = &domain.InsufficientStockError{ProductID: "p1", Available: 0, Requested: 1}

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock),
		"debe poder detectarse con errors.Is contra el sentinel")

	var detail *domain.InsufficientStockError
	assert.True(t, errors.As(err, &detail))
	assert.Equal(t, int64(1), detail.Shortfall())
}
