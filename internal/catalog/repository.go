package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteRepository stores the catalog in a SQLite database
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) RunMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SeedIfEmpty inserts the products when the catalog table has no rows.
// Reports whether anything was written.
func (r *SQLiteRepository) SeedIfEmpty(ctx context.Context, products []domain.Product) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for pos, p := range products {
		if err := insertProduct(ctx, tx, pos, p); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	return true, nil
}

func insertProduct(ctx context.Context, tx *sql.Tx, pos int, p domain.Product) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO products (id, position, name, category, badge, price, old_price, short, description,
			frame, filler, warranty, cover, width, depth, height, sleep, weight)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, pos, p.Name, string(p.Category), p.Badge, p.Price, p.OriginalPrice, p.Short, p.Description,
		p.Specs.Frame, p.Specs.Filler, p.Specs.Warranty, p.Specs.Cover,
		p.Dimensions.Width, p.Dimensions.Depth, p.Dimensions.Height, p.Dimensions.Sleep, p.Dimensions.Weight,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
	}

	for i, url := range p.Images {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_images (product_id, position, url) VALUES (?, ?, ?)`,
			p.ID, i, url); err != nil {
			return fmt.Errorf("failed to insert image for %s: %w", p.ID, err)
		}
	}

	for i, f := range p.Fabrics.All() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fabrics (product_id, id, position, name, price_delta, color) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, f.ID, i, f.Name, f.PriceDelta, f.Color); err != nil {
			return fmt.Errorf("failed to insert fabric %s/%s: %w", p.ID, f.ID, err)
		}
	}

	for i, rv := range p.Reviews {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_reviews (product_id, position, author, rating, body, created_on) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, i, rv.Author, rv.Rating, rv.Text, rv.Date); err != nil {
			return fmt.Errorf("failed to insert review for %s: %w", p.ID, err)
		}
	}
	return nil
}

// LoadProducts reads every product with its images, fabrics and reviews in catalog order
func (r *SQLiteRepository) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, badge, price, old_price, short, description,
			frame, filler, warranty, cover, width, depth, height, sleep, weight
		FROM products
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	index := make(map[string]int)
	for rows.Next() {
		var p domain.Product
		var category string
		err := rows.Scan(
			&p.ID, &p.Name, &category, &p.Badge, &p.Price, &p.OriginalPrice, &p.Short, &p.Description,
			&p.Specs.Frame, &p.Specs.Filler, &p.Specs.Warranty, &p.Specs.Cover,
			&p.Dimensions.Width, &p.Dimensions.Depth, &p.Dimensions.Height, &p.Dimensions.Sleep, &p.Dimensions.Weight,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Category = domain.Category(category)
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if err := r.loadImages(ctx, products, index); err != nil {
		return nil, err
	}
	if err := r.loadFabrics(ctx, products, index); err != nil {
		return nil, err
	}
	if err := r.loadReviews(ctx, products, index); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *SQLiteRepository) loadImages(ctx context.Context, products []domain.Product, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `SELECT product_id, url FROM product_images ORDER BY product_id, position`)
	if err != nil {
		return fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID, url string
		if err := rows.Scan(&productID, &url); err != nil {
			return fmt.Errorf("failed to scan image: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Images = append(products[i].Images, url)
		}
	}
	return rows.Err()
}

func (r *SQLiteRepository) loadFabrics(ctx context.Context, products []domain.Product, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, id, name, price_delta, color FROM fabrics ORDER BY product_id, position`)
	if err != nil {
		return fmt.Errorf("failed to query fabrics: %w", err)
	}
	defer rows.Close()

	fabrics := make(map[string][]domain.Fabric)
	for rows.Next() {
		var productID string
		var f domain.Fabric
		if err := rows.Scan(&productID, &f.ID, &f.Name, &f.PriceDelta, &f.Color); err != nil {
			return fmt.Errorf("failed to scan fabric: %w", err)
		}
		fabrics[productID] = append(fabrics[productID], f)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	for productID, list := range fabrics {
		if i, ok := index[productID]; ok {
			products[i].Fabrics = domain.NewFabrics(list...)
		}
	}
	return nil
}

func (r *SQLiteRepository) loadReviews(ctx context.Context, products []domain.Product, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, author, rating, body, created_on FROM product_reviews ORDER BY product_id, position`)
	if err != nil {
		return fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var rv domain.Review
		if err := rows.Scan(&productID, &rv.Author, &rv.Rating, &rv.Text, &rv.Date); err != nil {
			return fmt.Errorf("failed to scan review: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Reviews = append(products[i].Reviews, rv)
		}
	}
	return rows.Err()
}

// OpenSQLite migrates the database at dbPath, seeds it with the built-in products when empty
// and builds a catalog from its contents
func OpenSQLite(ctx context.Context, dbPath string) (*Catalog, error) {
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	if err := repo.RunMigrations(); err != nil {
		return nil, err
	}
	if _, err := repo.SeedIfEmpty(ctx, Seed()); err != nil {
		return nil, err
	}

	products, err := repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	return New(products)
}
