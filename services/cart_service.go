package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"shopfront/models"
	"shopfront/repositories"
)

var ErrProductNotFound = errors.New("product not found")

const cartCacheTTL = time.Minute

// CartService owns cart state for the lifetime of a session. Checkout only
// sees it through the read-only CartReader contract.
type CartService struct {
	repo *repositories.CartRepository
}

func NewCartService() *CartService {
	return &CartService{
		repo: repositories.NewCartRepository(),
	}
}

func cartCacheKey(userID int) string {
	return fmt.Sprintf("cart_user_%d", userID)
}

// Items returns the user's cart snapshot, served from the Redis cache when
// available and repopulated from the database on a miss.
func (s *CartService) Items(ctx context.Context, userID int) ([]models.CartItem, error) {
	if models.CacheAvailable() {
		cached, err := models.RedisClient.Get(ctx, cartCacheKey(userID)).Result()
		if err == nil {
			var items []models.CartItem
			if json.Unmarshal([]byte(cached), &items) == nil {
				return items, nil
			}
		}
	}

	items, err := s.repo.ItemsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if models.CacheAvailable() {
		if encoded, err := json.Marshal(items); err == nil {
			models.RedisClient.Set(ctx, cartCacheKey(userID), encoded, cartCacheTTL)
		}
	}
	return items, nil
}

// TotalPrice sums line totals across the live cart.
func (s *CartService) TotalPrice(ctx context.Context, userID int) (float64, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, item := range items {
		total += item.LineTotal()
	}
	return total, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID, quantity int) error {
	if quantity < 1 {
		return errors.New("quantity must be at least 1")
	}

	exists, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProductNotFound
	}

	if err := s.repo.AddItem(ctx, userID, productID, quantity); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error {
	if quantity < 1 {
		return errors.New("quantity must be at least 1")
	}

	if err := s.repo.UpdateQuantity(ctx, userID, itemID, quantity); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int) error {
	if err := s.repo.RemoveItem(ctx, userID, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID int) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *CartService) invalidate(ctx context.Context, userID int) {
	if !models.CacheAvailable() {
		return
	}
	if err := models.RedisClient.Del(ctx, cartCacheKey(userID)).Err(); err != nil {
		log.Printf("cart cache invalidation failed for user %d: %v", userID, err)
	}
}
