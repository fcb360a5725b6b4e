package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/cart"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/product"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/user"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &PostgresStorage{db: db}

	if err := s.db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStorage) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL,
            stock INT NOT NULL DEFAULT 0,
            in_stock BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS cart_lines (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id),
            product_id INT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
            quantity INT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            UNIQUE (user_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id),
            email TEXT NOT NULL,
            customer_name TEXT NOT NULL,
            shipping_address TEXT NOT NULL,
            shipping_city TEXT NOT NULL,
            shipping_state TEXT NOT NULL,
            shipping_zip TEXT NOT NULL,
            shipping_phone TEXT NOT NULL,
            shipping_method TEXT NOT NULL,
            payment_method TEXT NOT NULL,
            status TEXT NOT NULL,
            tracking_number TEXT,
            subtotal NUMERIC(12,2) NOT NULL,
            shipping_cost NUMERIC(12,2) NOT NULL,
            tax NUMERIC(12,2) NOT NULL,
            total NUMERIC(12,2) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id),
            product_id INT NOT NULL,
            product_name TEXT NOT NULL,
            unit_price NUMERIC(12,2) NOT NULL,
            quantity INT NOT NULL
        )`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) Create(ctx context.Context, u *user.User) error {
	q := `INSERT INTO users (login,password_hash,is_admin,created_at) VALUES($1,$2,$3,$4) RETURNING id`
	return s.db.QueryRowContext(ctx, q, u.Login, u.PasswordHash, u.IsAdmin, u.CreatedAt).Scan(&u.ID)
}

func (s *PostgresStorage) FindByLogin(ctx context.Context, login string) (*user.User, error) {
	u := &user.User{}
	q := `SELECT id,login,password_hash,is_admin,created_at FROM users WHERE login=$1`
	if err := s.db.QueryRowContext(ctx, q, login).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *PostgresStorage) FindProductByID(ctx context.Context, id int64) (*product.Product, error) {
	p := &product.Product{}
	const q = `SELECT id,name,price,stock,in_stock,created_at FROM products WHERE id=$1`
	err := s.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.InStock, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStorage) ListProducts(ctx context.Context) ([]product.Product, error) {
	const q = `SELECT id,name,price,stock,in_stock,created_at FROM products ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.InStock, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) UpsertProduct(ctx context.Context, p *product.Product) error {
	if p.ID == 0 {
		q := `INSERT INTO products (name,price,stock,in_stock) VALUES($1,$2,$3,$4) RETURNING id, created_at`
		return s.db.QueryRowContext(ctx, q, p.Name, p.Price, p.Stock, p.InStock).Scan(&p.ID, &p.CreatedAt)
	}
	q := `UPDATE products SET name=$1, price=$2, stock=$3, in_stock=$4 WHERE id=$5`
	_, err := s.db.ExecContext(ctx, q, p.Name, p.Price, p.Stock, p.InStock, p.ID)
	return err
}

func (s *PostgresStorage) AddCartLine(ctx context.Context, userID, productID int64, quantity int) (*cart.Line, error) {
	// same product in the same cart bumps the existing line
	const q = `
        INSERT INTO cart_lines (user_id, product_id, quantity, created_at)
        VALUES ($1, $2, $3, now())
        ON CONFLICT (user_id, product_id)
        DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
        RETURNING id, user_id, product_id, quantity, created_at`
	l := &cart.Line{}
	err := s.db.QueryRowContext(ctx, q, userID, productID, quantity).
		Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *PostgresStorage) UpdateCartLineQuantity(ctx context.Context, userID, lineID int64, quantity int) error {
	const q = `UPDATE cart_lines SET quantity=$1 WHERE id=$2 AND user_id=$3`
	res, err := s.db.ExecContext(ctx, q, quantity, lineID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStorage) DeleteCartLine(ctx context.Context, userID, lineID int64) error {
	const q = `DELETE FROM cart_lines WHERE id=$1 AND user_id=$2`
	res, err := s.db.ExecContext(ctx, q, lineID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStorage) ListCartLines(ctx context.Context, userID int64) ([]cart.LineView, error) {
	const q = `
        SELECT c.id, c.product_id, p.name, p.price, c.quantity, p.in_stock
        FROM cart_lines c
        JOIN products p ON p.id = c.product_id
        WHERE c.user_id = $1
        ORDER BY c.created_at, c.id`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cart.LineView
	for rows.Next() {
		var v cart.LineView
		if err := rows.Scan(&v.ID, &v.ProductID, &v.ProductName, &v.UnitPrice, &v.Quantity, &v.InStock); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) ClearCart(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE user_id=$1`, userID)
	return err
}

// CreateOrder writes the order, its item snapshots and empties the cart in
// one transaction, so a rejected order leaves the cart untouched.
func (s *PostgresStorage) CreateOrder(ctx context.Context, o *order.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const qOrder = `
        INSERT INTO orders (
            id, user_id, email, customer_name,
            shipping_address, shipping_city, shipping_state, shipping_zip, shipping_phone,
            shipping_method, payment_method, status,
            subtotal, shipping_cost, tax, total, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`
	if _, err := tx.ExecContext(ctx, qOrder,
		o.ID, o.UserID, o.Email, o.CustomerName,
		o.ShippingAddress, o.ShippingCity, o.ShippingState, o.ShippingZip, o.ShippingPhone,
		o.ShippingMethod, o.PaymentMethod, o.Status,
		o.Subtotal, o.ShippingCost, o.Tax, o.Total, o.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	const qItem = `
        INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity)
        VALUES ($1,$2,$3,$4,$5) RETURNING id`
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if err := tx.QueryRowContext(ctx, qItem,
			o.ID, o.Items[i].ProductID, o.Items[i].ProductName, o.Items[i].UnitPrice, o.Items[i].Quantity,
		).Scan(&o.Items[i].ID); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE user_id=$1`, o.UserID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return tx.Commit()
}

const orderColumns = `
    id, user_id, email, customer_name,
    shipping_address, shipping_city, shipping_state, shipping_zip, shipping_phone,
    shipping_method, payment_method, status, tracking_number,
    subtotal, shipping_cost, tax, total, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*order.Order, error) {
	var o order.Order
	var tracking sql.NullString
	err := row.Scan(
		&o.ID, &o.UserID, &o.Email, &o.CustomerName,
		&o.ShippingAddress, &o.ShippingCity, &o.ShippingState, &o.ShippingZip, &o.ShippingPhone,
		&o.ShippingMethod, &o.PaymentMethod, &o.Status, &tracking,
		&o.Subtotal, &o.ShippingCost, &o.Tax, &o.Total, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tracking.Valid {
		o.TrackingNumber = &tracking.String
	}
	return &o, nil
}

func (s *PostgresStorage) FindOrderByID(ctx context.Context, id string) (*order.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}

	const qItems = `
        SELECT id, order_id, product_id, product_name, unit_price, quantity
        FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := s.db.QueryContext(ctx, qItems, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (s *PostgresStorage) ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) ListAllOrders(ctx context.Context) ([]order.Order, error) {
	const q = `
        SELECT o.id, o.user_id, o.email, o.customer_name,
            o.shipping_address, o.shipping_city, o.shipping_state, o.shipping_zip, o.shipping_phone,
            o.shipping_method, o.payment_method, o.status, o.tracking_number,
            o.subtotal, o.shipping_cost, o.tax, o.total, o.created_at,
            u.login
        FROM orders o
        JOIN users u ON u.id = o.user_id
        ORDER BY o.created_at DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		var o order.Order
		var tracking sql.NullString
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Email, &o.CustomerName,
			&o.ShippingAddress, &o.ShippingCity, &o.ShippingState, &o.ShippingZip, &o.ShippingPhone,
			&o.ShippingMethod, &o.PaymentMethod, &o.Status, &tracking,
			&o.Subtotal, &o.ShippingCost, &o.Tax, &o.Total, &o.CreatedAt,
			&o.CustomerLogin,
		); err != nil {
			return nil, err
		}
		if tracking.Valid {
			o.TrackingNumber = &tracking.String
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, id string, status order.Status, trackingNumber *string) (*order.Order, error) {
	// tracking number is only overwritten when one is provided
	q := `
        UPDATE orders
        SET status = $1,
            tracking_number = COALESCE($2, tracking_number)
        WHERE id = $3
        RETURNING ` + orderColumns
	return scanOrder(s.db.QueryRowContext(ctx, q, status, trackingNumber, id))
}
