package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"yourbuyer-api/models"
)

func orderBody() map[string]interface{} {
	return map[string]interface{}{
		"name":                "Olena",
		"surname":             "Shevchenko",
		"phone":               "+380501112233",
		"delivery_city":       "Kyiv",
		"delivery_department": "Branch 12",
		"dont_call":           true,
	}
}

func TestCreateOrderFromAnonymousCart(t *testing.T) {
	db := freshDB()
	router := setupOrderRouter(db)
	productA := seedProduct(db, "Product A", "product-a", 10)
	productB := seedProduct(db, "Product B", "product-b", 25)
	anonToken := "anon-order-token"
	seedCartItem(db, nil, &anonToken, productA.ID, 2)
	seedCartItem(db, nil, &anonToken, productB.ID, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, anonRequest("POST", "/api/orders", orderBody(), anonToken))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := db.Preload("Items").First(&order).Error; err != nil {
		t.Fatalf("order not created: %v", err)
	}
	if order.TotalAmount != 45 {
		t.Fatalf("expected total 45, got %v", order.TotalAmount)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("expected pending status, got %q", order.Status)
	}
	if order.UserID != nil {
		t.Fatal("anonymous order must not carry a user_id")
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	// Cart is emptied by checkout
	var remaining int64
	db.Model(&models.CartItem{}).Where("anonymous_token = ?", anonToken).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("expected cart emptied, %d rows remain", remaining)
	}
}

func TestCreateOrderSnapshotsPrice(t *testing.T) {
	db := freshDB()
	router := setupOrderRouter(db)
	product := seedProduct(db, "Product A", "product-a", 10)
	anonToken := "anon-order-token"
	seedCartItem(db, nil, &anonToken, product.ID, 3)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, anonRequest("POST", "/api/orders", orderBody(), anonToken))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// A later price change must not affect the placed order
	db.Model(&product).Update("price", 999)

	var item models.OrderItem
	if err := db.First(&item).Error; err != nil {
		t.Fatalf("order item not created: %v", err)
	}
	if item.PriceAtOrder != 10 {
		t.Fatalf("expected price_at_order 10, got %v", item.PriceAtOrder)
	}

	var order models.Order
	db.First(&order)
	if order.TotalAmount != 30 {
		t.Fatalf("expected total 30, got %v", order.TotalAmount)
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := freshDB()
	router := setupOrderRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, anonRequest("POST", "/api/orders", orderBody(), "empty-cart-token"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["message"] != "Cart is empty" {
		t.Fatalf("expected empty-cart message, got %v", resp["message"])
	}
}

func TestCreateOrderNoIdentity(t *testing.T) {
	db := freshDB()
	router := setupOrderRouter(db)
	product := seedProduct(db, "Product A", "product-a", 10)
	anonToken := "someone-elses-token"
	seedCartItem(db, nil, &anonToken, product.ID, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/orders", orderBody()))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without identity, got %d: %s", w.Code, w.Body.String())
	}

	// Nobody's cart rows were consumed
	var remaining int64
	db.Model(&models.CartItem{}).Count(&remaining)
	if remaining != 1 {
		t.Fatalf("expected untouched cart rows, got %d", remaining)
	}
}

func TestCreateOrderAuthenticated(t *testing.T) {
	db := freshDB()
	router := setupOrderRouter(db)
	product := seedProduct(db, "Product A", "product-a", 10)
	user, token := seedTestUser(db, "order@test.com")
	userID := user.ID
	seedCartItem(db, &userID, nil, product.ID, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/orders", orderBody(), token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	db.First(&order)
	if order.UserID == nil || *order.UserID != user.ID {
		t.Fatalf("expected order attributed to user %d, got %v", user.ID, order.UserID)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := freshDB()
	router := setupOrderRouter(db)
	product := seedProduct(db, "Product A", "product-a", 10)
	anonToken := "anon-order-token"
	seedCartItem(db, nil, &anonToken, product.ID, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, anonRequest("POST", "/api/orders", map[string]interface{}{
		"name": "Olena",
	}, anonToken))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}

	// Failed validation must not consume the cart
	var remaining int64
	db.Model(&models.CartItem{}).Count(&remaining)
	if remaining != 1 {
		t.Fatalf("expected untouched cart rows, got %d", remaining)
	}
}

func TestListOrdersAdmin(t *testing.T) {
	db := freshDB()
	router := setupOrderRouter(db)
	product := seedProduct(db, "Product A", "product-a", 10)
	anonToken := "anon-order-token"
	seedCartItem(db, nil, &anonToken, product.ID, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, anonRequest("POST", "/api/orders", orderBody(), anonToken))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	_, token := seedTestUser(db, "admin@test.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/admin/orders", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	orders := dataField(resp, "orders").([]interface{})
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	order := orders[0].(map[string]interface{})
	items := order["order_items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected hydrated order items, got %v", order)
	}
}
