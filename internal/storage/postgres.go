package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/mudgalz/foodie-be/internal/domain"
)

// PostgresRepository implements the user, restaurant and order repositories
// over a single database/sql connection pool.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			auth0_id TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			address_line TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			zipcode TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			city TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			delivery_price BIGINT NOT NULL DEFAULT 0,
			estimated_delivery_time INT NOT NULL DEFAULT 0,
			cuisines TEXT[] NOT NULL DEFAULT '{}',
			image_url TEXT NOT NULL DEFAULT '',
			last_updated TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			price BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL,
			user_id INT NOT NULL,
			status TEXT NOT NULL,
			delivery_name TEXT NOT NULL DEFAULT '',
			delivery_email TEXT NOT NULL DEFAULT '',
			delivery_address TEXT NOT NULL DEFAULT '',
			delivery_city TEXT NOT NULL DEFAULT '',
			delivery_zipcode TEXT NOT NULL DEFAULT '',
			total_amount BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id INT NOT NULL,
			name TEXT NOT NULL,
			quantity INT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO users (auth0_id, email) VALUES ($1, $2) RETURNING id, created_at",
		user.Auth0ID, user.Email,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *PostgresRepository) GetUserByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	return r.scanUser(r.DB.QueryRowContext(ctx, `
		SELECT id, auth0_id, email, name, address_line, city, zipcode, created_at
		FROM users WHERE auth0_id = $1`, auth0ID))
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	return r.scanUser(r.DB.QueryRowContext(ctx, `
		SELECT id, auth0_id, email, name, address_line, city, zipcode, created_at
		FROM users WHERE id = $1`, id))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Auth0ID, &user.Email, &user.Name,
		&user.AddressLine, &user.City, &user.Zipcode, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) UpdateUserProfile(ctx context.Context, user *domain.User) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=$1, address_line=$2, city=$3, zipcode=$4 WHERE id=$5",
		user.Name, user.AddressLine, user.City, user.Zipcode, user.ID)
	return err
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO restaurants (user_id, name, city, country, delivery_price, estimated_delivery_time, cuisines, image_url, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		rest.UserID, rest.Name, rest.City, rest.Country, rest.DeliveryPrice,
		rest.EstimatedDeliveryTime, pq.Array(rest.Cuisines), rest.ImageURL, rest.LastUpdated,
	).Scan(&rest.ID); err != nil {
		return err
	}

	if err := insertMenuItems(ctx, tx, rest); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceRestaurant overwrites every editable column and swaps the whole
// menu in one transaction.
func (r *PostgresRepository) ReplaceRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE restaurants
		SET name=$1, city=$2, country=$3, delivery_price=$4, estimated_delivery_time=$5,
		    cuisines=$6, image_url=$7, last_updated=$8
		WHERE id=$9`,
		rest.Name, rest.City, rest.Country, rest.DeliveryPrice, rest.EstimatedDeliveryTime,
		pq.Array(rest.Cuisines), rest.ImageURL, rest.LastUpdated, rest.ID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM menu_items WHERE restaurant_id = $1", rest.ID); err != nil {
		return err
	}
	if err := insertMenuItems(ctx, tx, rest); err != nil {
		return err
	}
	return tx.Commit()
}

func insertMenuItems(ctx context.Context, tx *sql.Tx, rest *domain.Restaurant) error {
	for i := range rest.MenuItems {
		item := &rest.MenuItems[i]
		item.RestaurantID = rest.ID
		if err := tx.QueryRowContext(ctx,
			"INSERT INTO menu_items (restaurant_id, name, price) VALUES ($1, $2, $3) RETURNING id",
			rest.ID, item.Name, item.Price,
		).Scan(&item.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) GetRestaurantByID(ctx context.Context, id int) (*domain.Restaurant, error) {
	return r.getRestaurant(ctx, "id = $1", id)
}

func (r *PostgresRepository) GetRestaurantByOwner(ctx context.Context, userID int) (*domain.Restaurant, error) {
	return r.getRestaurant(ctx, "user_id = $1", userID)
}

func (r *PostgresRepository) getRestaurant(ctx context.Context, where string, arg any) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, name, city, country, delivery_price, estimated_delivery_time, cuisines, image_url, last_updated
		FROM restaurants WHERE `+where, arg).
		Scan(&rest.ID, &rest.UserID, &rest.Name, &rest.City, &rest.Country,
			&rest.DeliveryPrice, &rest.EstimatedDeliveryTime, pq.Array(&rest.Cuisines),
			&rest.ImageURL, &rest.LastUpdated)
	if err != nil {
		return nil, err
	}

	items, err := r.listMenuItems(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	rest.MenuItems = items
	return &rest, nil
}

func (r *PostgresRepository) listMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, restaurant_id, name, price FROM menu_items WHERE restaurant_id = $1 ORDER BY id",
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Price); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) SearchRestaurants(ctx context.Context, city, query string, limit, offset int) ([]domain.Restaurant, int, error) {
	where := "LOWER(city) = LOWER($1)"
	args := []any{city}
	if query != "" {
		where += " AND (LOWER(name) LIKE LOWER($2) OR EXISTS (SELECT 1 FROM unnest(cuisines) c WHERE LOWER(c) LIKE LOWER($2)))"
		args = append(args, "%"+query+"%")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM restaurants WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listArgs := append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, user_id, name, city, country, delivery_price, estimated_delivery_time, cuisines, image_url, last_updated
		FROM restaurants WHERE %s
		ORDER BY last_updated DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2), listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.UserID, &rest.Name, &rest.City, &rest.Country,
			&rest.DeliveryPrice, &rest.EstimatedDeliveryTime, pq.Array(&rest.Cuisines),
			&rest.ImageURL, &rest.LastUpdated); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, total, rows.Err()
}

// NextOrderID allocates an order id ahead of the insert, so the payment
// session can carry it as metadata before the row exists.
func (r *PostgresRepository) NextOrderID(ctx context.Context) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		"SELECT nextval(pg_get_serial_sequence('orders', 'id'))").Scan(&id)
	return id, err
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, restaurant_id, user_id, status, delivery_name, delivery_email, delivery_address, delivery_city, delivery_zipcode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.ID, order.RestaurantID, order.UserID, order.Status,
		order.DeliveryDetails.Name, order.DeliveryDetails.Email, order.DeliveryDetails.Address,
		order.DeliveryDetails.City, order.DeliveryDetails.Zipcode, order.CreatedAt,
	); err != nil {
		return err
	}

	for _, item := range order.CartItems {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, menu_item_id, name, quantity) VALUES ($1, $2, $3, $4)",
			order.ID, item.MenuItemID, item.Name, item.Quantity,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresRepository) GetOrderByID(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRowContext(ctx, `
		SELECT o.id, o.restaurant_id, r.name, o.user_id, o.status,
		       o.delivery_name, o.delivery_email, o.delivery_address, o.delivery_city, o.delivery_zipcode,
		       o.total_amount, o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = $1`, id).
		Scan(&order.ID, &order.RestaurantID, &order.RestaurantName, &order.UserID, &order.Status,
			&order.DeliveryDetails.Name, &order.DeliveryDetails.Email, &order.DeliveryDetails.Address,
			&order.DeliveryDetails.City, &order.DeliveryDetails.Zipcode,
			&order.TotalAmount, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.listOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.CartItems = items
	return &order, nil
}

func (r *PostgresRepository) listOrderItems(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT menu_item_id, name, quantity FROM order_items WHERE order_id = $1", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// MarkOrderPaid applies the placed -> paid transition. It reports false when
// the order has already progressed, leaving the later status intact.
func (r *PostgresRepository) MarkOrderPaid(ctx context.Context, id int, totalAmount int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status=$1, total_amount=$2 WHERE id=$3 AND status=$4",
		domain.OrderStatusPaid, totalAmount, id, domain.OrderStatusPlaced)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status=$1 WHERE id=$2", status, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) ListOrdersByCustomer(ctx context.Context, userID, limit, offset int) ([]domain.Order, int, error) {
	return r.listOrders(ctx, "o.user_id = $1", userID, limit, offset)
}

func (r *PostgresRepository) ListOrdersByRestaurant(ctx context.Context, restaurantID, limit, offset int) ([]domain.Order, int, error) {
	return r.listOrders(ctx, "o.restaurant_id = $1", restaurantID, limit, offset)
}

// Orders still in `placed` never show up in listings; visibility starts once
// payment completes.
func (r *PostgresRepository) listOrders(ctx context.Context, where string, arg any, limit, offset int) ([]domain.Order, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders o WHERE "+where+" AND o.status <> $2",
		arg, domain.OrderStatusPlaced).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT o.id, o.restaurant_id, r.name, o.user_id, o.status,
		       o.delivery_name, o.delivery_email, o.delivery_address, o.delivery_city, o.delivery_zipcode,
		       o.total_amount, o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE `+where+` AND o.status <> $2
		ORDER BY o.created_at DESC
		LIMIT $3 OFFSET $4`,
		arg, domain.OrderStatusPlaced, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.RestaurantName, &order.UserID, &order.Status,
			&order.DeliveryDetails.Name, &order.DeliveryDetails.Email, &order.DeliveryDetails.Address,
			&order.DeliveryDetails.City, &order.DeliveryDetails.Zipcode,
			&order.TotalAmount, &order.CreatedAt); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		items, err := r.listOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].CartItems = items
	}
	return orders, total, nil
}
