package memory

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// ShopCatalog справочник моек, заданный в конфигурации
type ShopCatalog struct {
	shops map[string]domain.Shop
}

// NewShopCatalog создает каталог из списка моек
func NewShopCatalog(shops []domain.Shop) *ShopCatalog {
	c := &ShopCatalog{shops: make(map[string]domain.Shop, len(shops))}
	for _, shop := range shops {
		c.shops[shop.ID] = shop
	}
	return c
}

// GetShop возвращает копию мойки или domain.ErrShopNotFound
func (c *ShopCatalog) GetShop(ctx context.Context, shopID string) (*domain.Shop, error) {
	shop, ok := c.shops[shopID]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrShopNotFound, shopID)
	}

	shop.Services = append([]domain.Service(nil), shop.Services...)
	shop.AdminIDs = append([]int64(nil), shop.AdminIDs...)
	return &shop, nil
}
