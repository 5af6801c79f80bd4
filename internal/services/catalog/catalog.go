// Package catalog содержит бизнес-логику каталога товаров, включая кеширование.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/storefront/internal/models"
	"github.com/magabrotheeeer/storefront/internal/storage/repository"
)

// DefaultLimit применяется, если клиент не указал limit.
const DefaultLimit = 100

const cacheTTL = time.Hour

// ProductRepository определяет методы для работы с товарами в хранилище.
type ProductRepository interface {
	// CreateProduct добавляет новый товар и возвращает его ID.
	CreateProduct(ctx context.Context, p models.Product) (int, error)
	// GetProduct возвращает товар по ID, включая неактивные.
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	// ListProducts возвращает активные товары по фильтру и их общее число.
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
	// UpdateProduct перезаписывает все поля товара по ID.
	UpdateProduct(ctx context.Context, p models.Product, id int) error
	// DeactivateProduct помечает товар неактивным.
	DeactivateProduct(ctx context.Context, id int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику каталога товаров.
type Service struct {
	repo  ProductRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ProductRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

// Create добавляет новый товар в каталог, сбрасывает кеш по его ключу
// и возвращает ID.
func (s *Service) Create(ctx context.Context, req models.DummyProduct) (int, error) {
	product := models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Brand:          req.Brand,
		Images:         req.Images,
		Stock:          req.Stock,
		Specifications: req.Specifications,
		Features:       req.Features,
		IsActive:       true,
	}

	id, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new product", slog.Int("id", id))

	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return id, nil
}

// Get возвращает активный товар по ID, используя кеш или репозиторий.
// Неактивные товары для публичных запросов неотличимы от отсутствующих.
func (s *Service) Get(ctx context.Context, id int) (*models.Product, error) {
	var result *models.Product
	key := cacheKey(id)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", key), slog.Any("err", err))
		found = false
	}
	if !found {
		result, err = s.repo.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(key, result, cacheTTL); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", key), slog.Any("err", err))
		}
	}
	if !result.IsActive {
		return nil, repository.ErrNotFound
	}
	return result, nil
}

// List возвращает активные товары по фильтру и их общее количество.
func (s *Service) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.ListProducts(ctx, filter)
}

// Update сливает присланные поля с текущими, перезаписывает товар
// и инвалидирует кеш.
func (s *Service) Update(ctx context.Context, id int, req models.UpdateProduct) (*models.Product, error) {
	current, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Price != nil {
		merged.Price = *req.Price
	}
	if req.Category != nil {
		merged.Category = *req.Category
	}
	if req.Subcategory != nil {
		merged.Subcategory = *req.Subcategory
	}
	if req.Brand != nil {
		merged.Brand = *req.Brand
	}
	if req.Images != nil {
		merged.Images = *req.Images
	}
	if req.Stock != nil {
		merged.Stock = *req.Stock
	}
	if req.Specifications != nil {
		merged.Specifications = *req.Specifications
	}
	if req.Features != nil {
		merged.Features = *req.Features
	}

	if err := s.repo.UpdateProduct(ctx, merged, id); err != nil {
		return nil, err
	}
	s.log.Info("updated product", slog.Int("id", id))

	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}

	return s.repo.GetProduct(ctx, id)
}

// Deactivate помечает товар неактивным и инвалидирует кеш.
// Кеш чистится после записи в базу, иначе конкурентный Get успеет
// закешировать ещё активную запись на весь TTL.
func (s *Service) Deactivate(ctx context.Context, id int) error {
	if err := s.repo.DeactivateProduct(ctx, id); err != nil {
		return err
	}
	s.log.Info("deactivated product", slog.Int("id", id))

	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return nil
}
