package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/storefront/internal/models"
)

// likeEscaper экранирует спецсимволы шаблона LIKE в пользовательском поиске,
// чтобы % и _ искались буквально, а не как wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// scanProduct читает строку товара. Images, specifications и features
// хранятся в JSONB-колонках.
func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	var p models.Product
	var images, specifications, features []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.Subcategory, &p.Brand, &images, &p.Stock, &specifications, &features,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, err
		}
	}
	if len(specifications) > 0 {
		if err := json.Unmarshal(specifications, &p.Specifications); err != nil {
			return nil, err
		}
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func marshalProductFields(p models.Product) (images, specifications, features []byte, err error) {
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, nil, err
	}
	if specifications, err = json.Marshal(p.Specifications); err != nil {
		return nil, nil, nil, err
	}
	if features, err = json.Marshal(p.Features); err != nil {
		return nil, nil, nil, err
	}
	return images, specifications, features, nil
}

const productColumns = `id, name, description, price, category, subcategory, brand,
			      images, stock, specifications, features, is_active, created_at, updated_at`

// CreateProduct вставляет новый товар и возвращает его ID.
func (s *Storage) CreateProduct(ctx context.Context, p models.Product) (int, error) {
	const op = "storage.CreateProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	images, specifications, features, err := marshalProductFields(p)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO products (name, description, price, category, subcategory,
			      brand, images, stock, specifications, features, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.Category, p.Subcategory, p.Brand,
		images, p.Stock, specifications, features, p.IsActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetProduct возвращает товар по его ID независимо от флага is_active.
// Фильтрация неактивных товаров для публичных запросов делается в сервисе.
func (s *Storage) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	const op = "storage.GetProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + productColumns + `
			  FROM products WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, wrapRowError(op, err)
	}
	return p, nil
}

// ListProducts возвращает активные товары по фильтру и их общее количество.
// Категория сравнивается точно с учётом регистра, поиск — подстрока по имени
// и описанию без учёта регистра. Сортировка — новые первыми.
func (s *Storage) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	const op = "storage.ListProducts"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where := `WHERE is_active = true
		        AND ($1::text = '' OR category = $1)
		        AND ($2::text = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')`

	search := likeEscaper.Replace(filter.Search)

	var total int
	countQuery := `SELECT COUNT(*) FROM products ` + where
	if err := s.DB.QueryRowContext(ctx, countQuery, filter.Category, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + productColumns + `
			  FROM products ` + where + `
			  ORDER BY created_at DESC, id DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, filter.Category, search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// UpdateProduct перезаписывает все поля товара по его ID.
// Частичное слияние полей выполняет сервис каталога, хранилище всегда
// получает полную запись.
func (s *Storage) UpdateProduct(ctx context.Context, p models.Product, id int) error {
	const op = "storage.UpdateProduct"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	images, specifications, features, err := marshalProductFields(p)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE products
			  SET name = $1, description = $2, price = $3, category = $4,
			      subcategory = $5, brand = $6, images = $7, stock = $8,
			      specifications = $9, features = $10, updated_at = now()
			  WHERE id = $11`
	result, err := s.DB.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.Category, p.Subcategory, p.Brand,
		images, p.Stock, specifications, features, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeactivateProduct помечает товар неактивным. Запись остаётся в базе,
// но исчезает из публичных выборок.
func (s *Storage) DeactivateProduct(ctx context.Context, id int) error {
	const op = "storage.DeactivateProduct"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE products
			  SET is_active = false, updated_at = now()
			  WHERE id = $1 AND is_active = true`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
