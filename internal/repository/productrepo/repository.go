package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"gostorefront/internal/domain"
	"gostorefront/internal/errors"
	"gostorefront/internal/pkg/cache"
	"gostorefront/internal/pkg/logger"
)

const (
	productCacheKey = "product:%s"
	catalogCacheKey = "catalog:products"

	uniqueViolation = "23505"
)

// ProductRepository implementa domain.ProductRepository sobre PostgreSQL,
// com cache-aside no Redis para o catálogo completo e para produtos individuais.
type ProductRepository struct {
	DB         *sql.DB
	Cache      cache.Client
	DBTimeout  time.Duration
	CatalogTTL time.Duration
	logger     logger.Logger
}

func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, catalogTTL time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:         db,
		Cache:      cacheClient,
		DBTimeout:  dbTimeout,
		CatalogTTL: catalogTTL,
		logger:     log,
	}
}

const selectColumns = `id, name, price, original_price, image_url, rating, review_count,
       brand, category, in_stock, is_new, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var (
		p    domain.Product
		orig decimal.NullDecimal
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &orig, &p.Image, &p.Rating, &p.ReviewCount,
		&p.Brand, &p.Category, &p.InStock, &p.IsNew, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	if orig.Valid {
		p.OriginalPrice = &orig.Decimal
	}
	return p, nil
}

// Save insere um produto. A ordem de inserção define a ordem "featured" do catálogo.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var orig decimal.NullDecimal
	if product.OriginalPrice != nil {
		orig = decimal.NullDecimal{Decimal: *product.OriginalPrice, Valid: true}
	}

	const insertSQL = `
		INSERT INTO products (id, name, price, original_price, image_url, rating, review_count,
		                      brand, category, in_stock, is_new, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		product.ID,
		product.Name,
		product.Price,
		orig,
		product.Image,
		product.Rating,
		product.ReviewCount,
		product.Brand,
		product.Category,
		product.InStock,
		product.IsNew,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.Product{}, errors.NewConflictError(fmt.Sprintf("Produto com ID %s já existe.", product.ID))
		}
		r.logger.Error("Falha ao inserir produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao inserir produto", err)
	}

	// O catálogo em cache ficou desatualizado.
	if err := r.Cache.Delete(ctx, catalogCacheKey); err != nil {
		r.logger.Warn("Falha ao invalidar catálogo em cache.", map[string]interface{}{"error": err.Error()})
	}

	r.logger.Info("Produto inserido no catálogo.", map[string]interface{}{"id": product.ID})
	return product, nil
}

// FindByID busca um produto usando a estratégia Cache-Aside.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)

	if cached, err := r.Cache.Get(ctxTimeout, key); err == nil {
		var product domain.Product
		if json.Unmarshal([]byte(cached), &product) == nil {
			return product, nil
		}
		r.logger.Warn("Produto em cache corrompido, consultando o DB.", map[string]interface{}{"key": key})
	} else if !stderrors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Falha ao ler produto do cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	row := r.DB.QueryRowContext(ctxTimeout, `SELECT `+selectColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe no catálogo.", id))
	}
	if err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao buscar produto no DB", err)
	}

	r.store(ctxTimeout, key, product)
	return product, nil
}

// FindAll devolve o catálogo completo na ordem de inserção.
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if cached, err := r.Cache.Get(ctxTimeout, catalogCacheKey); err == nil {
		var products []domain.Product
		if json.Unmarshal([]byte(cached), &products) == nil {
			r.logger.Debug("Catálogo servido do cache.", map[string]interface{}{"total": len(products)})
			return products, nil
		}
		r.logger.Warn("Catálogo em cache corrompido, consultando o DB.", nil)
	} else if !stderrors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Falha ao ler catálogo do cache.", map[string]interface{}{"error": err.Error()})
	}

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+selectColumns+` FROM products ORDER BY seq`)
	if err != nil {
		return nil, errors.NewDBError("Falha ao listar catálogo", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao mapear produto do DB", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração do catálogo", err)
	}

	r.store(ctxTimeout, catalogCacheKey, products)
	r.logger.Debug("Catálogo carregado do DB.", map[string]interface{}{"total": len(products)})
	return products, nil
}

func (r *ProductRepository) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Warn("Falha ao serializar para cache.", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.CatalogTTL); err != nil {
		r.logger.Warn("Falha ao gravar no cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
