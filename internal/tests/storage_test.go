package tests

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/mudgalz/foodie-be/internal/domain"
	"github.com/mudgalz/foodie-be/internal/storage"
)

func setupTestDB(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresRepository(db), mock
}

func TestEnsureSchemaExecutesStatements(t *testing.T) {
	repo, mock := setupTestDB(t)

	for _, table := range []string{"users", "restaurants", "menu_items", "orders", "order_items"} {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	assert.NoError(t, repo.EnsureSchema())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("auth0|abc", "a@b.test").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(9, time.Now()))

	user := &domain.User{Auth0ID: "auth0|abc", Email: "a@b.test"}
	assert.NoError(t, repo.CreateUser(context.Background(), user))
	assert.Equal(t, 9, user.ID)
}

func TestGetUserByAuth0ID_NotFound(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT id, auth0_id").
		WithArgs("auth0|missing").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetUserByAuth0ID(context.Background(), "auth0|missing")

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, user)
}

func TestNextOrderID(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT nextval").
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(42))

	id, err := repo.NextOrderID(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestMarkOrderPaid(t *testing.T) {
	t.Run("placed order is updated", func(t *testing.T) {
		repo, mock := setupTestDB(t)

		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(string(domain.OrderStatusPaid), int64(1180), 42, string(domain.OrderStatusPlaced)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		applied, err := repo.MarkOrderPaid(context.Background(), 42, 1180)

		assert.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("order past placed is left alone", func(t *testing.T) {
		repo, mock := setupTestDB(t)

		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(string(domain.OrderStatusPaid), int64(1180), 42, string(domain.OrderStatusPlaced)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		applied, err := repo.MarkOrderPaid(context.Background(), 42, 1180)

		assert.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(string(domain.OrderStatusConfirmed), 999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateOrderStatus(context.Background(), 999, domain.OrderStatusConfirmed)

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListOrdersExcludesPlaced(t *testing.T) {
	repo, mock := setupTestDB(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders o WHERE o\.user_id = \$1 AND o\.status <> \$2`).
		WithArgs(9, string(domain.OrderStatusPlaced)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	orderColumns := []string{"id", "restaurant_id", "name", "user_id", "status",
		"delivery_name", "delivery_email", "delivery_address", "delivery_city", "delivery_zipcode",
		"total_amount", "created_at"}
	mock.ExpectQuery(`o\.status <> \$2`).
		WithArgs(9, string(domain.OrderStatusPlaced), 10, 0).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(42, 7, "Spice Route", 9, string(domain.OrderStatusPaid),
				"Asha", "a@b.test", "12 MG Road", "Pune", "411001", int64(1180), now))

	mock.ExpectQuery("SELECT menu_item_id, name, quantity FROM order_items").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "name", "quantity"}).
			AddRow(1, "Paneer Tikka", int64(2)))

	orders, total, err := repo.ListOrdersByCustomer(context.Background(), 9, 10, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, orders, 1)
	assert.Equal(t, "Spice Route", orders[0].RestaurantName)
	assert.Len(t, orders[0].CartItems, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderWritesItemsInOneTransaction(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(42, 1, "Paneer Tikka", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order := &domain.Order{
		ID:           42,
		RestaurantID: 7,
		UserID:       9,
		Status:       domain.OrderStatusPlaced,
		CartItems:    []domain.OrderItem{{MenuItemID: 1, Name: "Paneer Tikka", Quantity: 2}},
		CreatedAt:    time.Now(),
	}

	assert.NoError(t, repo.CreateOrder(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRestaurant(t *testing.T) {
	t.Run("swaps the menu in one transaction", func(t *testing.T) {
		repo, mock := setupTestDB(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE restaurants").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM menu_items").
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery("INSERT INTO menu_items").
			WithArgs(7, "Paneer Tikka", int64(500)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectCommit()

		rest := &domain.Restaurant{
			ID:        7,
			Name:      "Spice Route",
			MenuItems: []domain.MenuItem{{Name: "Paneer Tikka", Price: 500}},
		}

		assert.NoError(t, repo.ReplaceRestaurant(context.Background(), rest))
		assert.Equal(t, 11, rest.MenuItems[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing restaurant", func(t *testing.T) {
		repo, mock := setupTestDB(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE restaurants").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.ReplaceRestaurant(context.Background(), &domain.Restaurant{ID: 99})

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func setupTestCache(t *testing.T) *storage.RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisCache(client, time.Hour)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	rest := &domain.Restaurant{ID: 7, Name: "Spice Route", Cuisines: []string{"indian"}}
	assert.NoError(t, cache.SetRestaurant(ctx, rest))

	got, ok := cache.GetRestaurant(ctx, 7)
	assert.True(t, ok)
	assert.Equal(t, "Spice Route", got.Name)
	assert.Equal(t, []string{"indian"}, got.Cuisines)

	assert.NoError(t, cache.InvalidateRestaurant(ctx, 7))
	_, ok = cache.GetRestaurant(ctx, 7)
	assert.False(t, ok)
}

func TestRedisCacheMiss(t *testing.T) {
	cache := setupTestCache(t)

	rest, ok := cache.GetRestaurant(context.Background(), 404)

	assert.False(t, ok)
	assert.Nil(t, rest)
}
