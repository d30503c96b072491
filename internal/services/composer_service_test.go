package services

import (
	"errors"
	"testing"

	"roti_pos/internal/apperr"
	"roti_pos/internal/catalog"
)

func newComposerFixture() (*mockCartStore, *mockOrderRepo, *recordNotifier, ComposerService) {
	store := newMockCartStore()
	repo := &mockOrderRepo{}
	notifier := &recordNotifier{}
	return store, repo, notifier, NewComposerService(store, repo, notifier)
}

func storedCart(t *testing.T, store *mockCartStore, id string) *catalog.Cart {
	t.Helper()
	cart, ok := store.carts[id]
	if !ok {
		t.Fatalf("cart %q not in store", id)
	}
	return cart
}

func TestCreateCart(t *testing.T) {
	store, _, _, svc := newComposerFixture()

	id, cart, err := svc.CreateCart()
	if err != nil {
		t.Fatalf("CreateCart() error = %v", err)
	}
	if id == "" {
		t.Error("CreateCart() should return a session id")
	}
	if len(cart.Lines) != len(catalog.DefaultMenu()) {
		t.Errorf("new cart has %d lines, want %d", len(cart.Lines), len(catalog.DefaultMenu()))
	}
	if _, ok := store.carts[id]; !ok {
		t.Error("new cart was not persisted in the store")
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*catalog.Cart)
		wantErr string
	}{
		{
			name:    "orderTypeRequired",
			prepare: func(c *catalog.Cart) { c.SetQuantity(0, 1) },
			wantErr: "order type required",
		},
		{
			name: "paymentMethodRequired",
			prepare: func(c *catalog.Cart) {
				c.OrderType = "pickup"
				c.SetQuantity(0, 1)
			},
			wantErr: "payment method required",
		},
		{
			name: "noItemsSelected",
			prepare: func(c *catalog.Cart) {
				c.OrderType = "pickup"
				c.PaymentMethod = "cash"
			},
			wantErr: "no items selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, repo, notifier, svc := newComposerFixture()
			id, _, _ := svc.CreateCart()
			cart := storedCart(t, store, id)
			tt.prepare(cart)

			_, err := svc.Submit(id)
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("Submit() error = %v, want %q", err, tt.wantErr)
			}
			if !apperr.IsValidation(err) {
				t.Errorf("Submit() error should be a validation error, got %T", err)
			}
			// Validation failures must never reach the repository.
			if len(repo.created) != 0 {
				t.Errorf("repository received %d orders, want 0", len(repo.created))
			}
			if len(notifier.failures) != 1 {
				t.Errorf("got %d error notifications, want 1", len(notifier.failures))
			}
		})
	}
}

func TestSubmitBuildsOrder(t *testing.T) {
	store, repo, notifier, svc := newComposerFixture()
	id, _, _ := svc.CreateCart()

	cart := storedCart(t, store, id)
	cart.Lines = []catalog.Line{
		{Name: "A", Quantity: 2, Price: 10},
		{Name: "B", Quantity: 0, Price: 5},
	}
	cart.OrderType = "pickup"
	cart.PaymentMethod = "cash"
	cart.Note = "ring the bell"

	order, err := svc.Submit(id)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("repository received %d orders, want 1", len(repo.created))
	}
	if len(order.Items) != 1 {
		t.Fatalf("order has %d items, want 1 (unselected lines excluded)", len(order.Items))
	}
	item := order.Items[0]
	if item.Name != "A" || item.Quantity != 2 || item.Price != 10 || item.Total != 20 {
		t.Errorf("item = %+v, want {A 2 10 20}", item)
	}
	if order.Total != 20 {
		t.Errorf("order total = %v, want 20", order.Total)
	}
	if order.OrderType != "pickup" || order.PaymentMethod != "cash" || order.Note != "ring the bell" {
		t.Errorf("order meta = %q/%q/%q", order.OrderType, order.PaymentMethod, order.Note)
	}
	if order.CreatedAt.IsZero() {
		t.Error("order createdAt must be set at submission time")
	}

	// Success resets the session to catalog defaults.
	after := storedCart(t, store, id)
	defaults := catalog.DefaultMenu()
	for i, l := range after.Lines {
		if l != defaults[i] {
			t.Errorf("line %d after submit = %+v, want default %+v", i, l, defaults[i])
		}
	}
	if after.OrderType != "" || after.PaymentMethod != "" || after.Note != "" {
		t.Error("submit success must clear order type, payment method and note")
	}
	if len(notifier.successes) != 1 {
		t.Errorf("got %d success notifications, want 1", len(notifier.successes))
	}
}

func TestSubmitPersistenceFailureKeepsCart(t *testing.T) {
	store, repo, notifier, svc := newComposerFixture()
	id, _, _ := svc.CreateCart()

	cart := storedCart(t, store, id)
	cart.SetQuantity(0, 2)
	cart.OrderType = "delivery"
	cart.PaymentMethod = "online"
	repo.createErr = errors.New("connection refused")

	_, err := svc.Submit(id)
	if !apperr.IsPersistence(err) {
		t.Fatalf("Submit() error = %v, want persistence error", err)
	}

	// The entered state survives so the user can retry.
	after := storedCart(t, store, id)
	if after.Lines[0].Quantity != 2 {
		t.Errorf("quantity after failed submit = %d, want 2", after.Lines[0].Quantity)
	}
	if after.OrderType != "delivery" || after.PaymentMethod != "online" {
		t.Error("failed submit must not clear the order meta")
	}
	if len(notifier.failures) != 1 {
		t.Errorf("got %d error notifications, want 1", len(notifier.failures))
	}

	// Once the store recovers, the same session must submit cleanly instead
	// of being rejected as still in progress.
	repo.createErr = nil
	order, err := svc.Submit(id)
	if err != nil {
		t.Fatalf("retry Submit() error = %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Errorf("retried order items = %+v, want the entered line", order.Items)
	}
	if len(repo.created) != 1 {
		t.Errorf("repository received %d orders after retry, want 1", len(repo.created))
	}
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	store, repo, _, svc := newComposerFixture()
	id, _, _ := svc.CreateCart()

	cart := storedCart(t, store, id)
	cart.SetQuantity(0, 1)
	cart.OrderType = "pickup"
	cart.PaymentMethod = "cash"

	// Simulates a second submit arriving while the insert round trip for the
	// same session is still outstanding.
	var inner error
	repo.createHook = func() {
		_, inner = svc.Submit(id)
	}

	if _, err := svc.Submit(id); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !apperr.IsConflict(inner) {
		t.Fatalf("concurrent Submit() error = %v, want conflict", inner)
	}
	if len(repo.created) != 1 {
		t.Errorf("repository received %d orders, want 1", len(repo.created))
	}
}

func TestSubmitSessionStoreGetFailure(t *testing.T) {
	store, repo, _, svc := newComposerFixture()
	id, _, _ := svc.CreateCart()
	store.getErr = errors.New("redis down")

	if _, err := svc.Submit(id); err == nil {
		t.Fatal("Submit() with an unreachable session store should fail")
	}
	if len(repo.created) != 0 {
		t.Error("no order may be created when the session cannot be loaded")
	}
}

func TestSubmitResetFailureDropsSession(t *testing.T) {
	store, repo, notifier, svc := newComposerFixture()
	id, _, _ := svc.CreateCart()

	cart := storedCart(t, store, id)
	cart.SetQuantity(0, 1)
	cart.OrderType = "pickup"
	cart.PaymentMethod = "cash"
	store.saveErr = errors.New("redis down")

	order, err := svc.Submit(id)
	if err != nil {
		t.Fatalf("Submit() error = %v, the order was persisted", err)
	}
	if order == nil || len(repo.created) != 1 {
		t.Fatal("order must be created even when the session reset cannot be stored")
	}

	// The stale entered session is dropped rather than left to invite a
	// duplicate submit.
	if _, ok := store.carts[id]; ok {
		t.Error("session should be removed when the reset cannot be stored")
	}
	if len(notifier.successes) != 1 {
		t.Errorf("got %d success notifications, want 1", len(notifier.successes))
	}
}

func TestEditStoreSaveFailureLeavesSessionUntouched(t *testing.T) {
	store, _, _, svc := newComposerFixture()
	id, _, _ := svc.CreateCart()
	store.saveErr = errors.New("redis down")

	_, err := svc.SetItemField(id, 0, "quantity", 3)
	if !apperr.IsPersistence(err) {
		t.Fatalf("SetItemField() error = %v, want persistence error", err)
	}

	after := storedCart(t, store, id)
	if after.Lines[0].Quantity != 0 {
		t.Errorf("stored quantity = %d, want 0 after failed save", after.Lines[0].Quantity)
	}
}

func TestSetMetaValidation(t *testing.T) {
	_, _, _, svc := newComposerFixture()
	id, _, _ := svc.CreateCart()

	bad := "drive-through"
	if _, err := svc.SetMeta(id, &bad, nil, nil); !apperr.IsValidation(err) {
		t.Errorf("SetMeta() with unknown order type error = %v, want validation", err)
	}
	if _, err := svc.SetMeta(id, nil, &bad, nil); !apperr.IsValidation(err) {
		t.Errorf("SetMeta() with unknown payment method error = %v, want validation", err)
	}

	orderType := "pickup"
	payment := "cash"
	note := "no change"
	cart, err := svc.SetMeta(id, &orderType, &payment, &note)
	if err != nil {
		t.Fatalf("SetMeta() error = %v", err)
	}
	if cart.OrderType != "pickup" || cart.PaymentMethod != "cash" || cart.Note != "no change" {
		t.Errorf("cart meta = %q/%q/%q", cart.OrderType, cart.PaymentMethod, cart.Note)
	}
}

func TestSetItemFieldUnknownField(t *testing.T) {
	_, _, _, svc := newComposerFixture()
	id, _, _ := svc.CreateCart()

	if _, err := svc.SetItemField(id, 0, "total", 10); !apperr.IsValidation(err) {
		t.Errorf("SetItemField() error = %v, want validation", err)
	}
}

func TestFailedEditLeavesStoredCartUntouched(t *testing.T) {
	store, _, _, svc := newComposerFixture()
	id, _, _ := svc.CreateCart()

	if _, err := svc.SetItemField(id, 99, "quantity", 3); !apperr.IsValidation(err) {
		t.Fatalf("SetItemField() out of range error = %v, want validation", err)
	}

	after := storedCart(t, store, id)
	for i, l := range after.Lines {
		if l.Quantity != 0 {
			t.Errorf("line %d quantity = %d, want 0 after rejected edit", i, l.Quantity)
		}
	}
}
