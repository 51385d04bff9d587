package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostgridhq/BoostGrid/app/models"
	"github.com/boostgridhq/BoostGrid/internal/pkg/smmprovider"
)

// fakeOrderRepo keeps orders in memory.
type fakeOrderRepo struct {
	orders []models.Order
}

func (f *fakeOrderRepo) Create(order *models.Order) error {
	order.ID = uint(len(f.orders) + 1)
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			return &f.orders[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeOrderRepo) GetByUserID(userID uint, offset, limit int) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(id uint, status, providerOrderID string) error {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			f.orders[i].ProviderOrderID = providerOrderID
		}
	}
	return nil
}

func (f *fakeOrderRepo) List(offset, limit int) ([]models.Order, error) { return f.orders, nil }
func (f *fakeOrderRepo) Count() (int64, error)                          { return int64(len(f.orders)), nil }

type recordingSubmitter struct {
	submitted []string
	err       error
}

func (r *recordingSubmitter) Submit(ctx context.Context, svc smmprovider.Service, link string, quantity int) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.submitted = append(r.submitted, svc.ID)
	return "up-1", nil
}

func setupOrderApp(t *testing.T) (*fiber.App, *fakeOrderRepo, *recordingSubmitter) {
	t.Helper()
	app, _ := setupCatalogApp(t)

	repo := &fakeOrderRepo{}
	submitter := &recordingSubmitter{}
	InitializeOrderController(repo, submitter)

	app.Post("/api/v1/orders", HandlePlaceOrder)
	app.Get("/api/v1/orders/:id", HandleGetOrder)
	return app, repo, submitter
}

func placeOrder(t *testing.T, app *fiber.App, payload string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func TestHandlePlaceOrder(t *testing.T) {
	app, repo, submitter := setupOrderApp(t)

	status, body := placeOrder(t, app, `{"serviceId":"earthpanel:101","link":"https://instagram.com/someone","quantity":1000}`)
	assert.Equal(t, fiber.StatusCreated, status)

	var order models.Order
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, "earthpanel:101", order.ServiceID)
	assert.Equal(t, 2.50, order.ChargeUSD)
	assert.Equal(t, models.ORDER_STATUS_SUBMITTED, order.Status)
	assert.Equal(t, "up-1", order.ProviderOrderID)

	require.Len(t, repo.orders, 1)
	assert.Equal(t, []string{"earthpanel:101"}, submitter.submitted)
}

func TestHandlePlaceOrderQuantityBounds(t *testing.T) {
	app, _, _ := setupOrderApp(t)

	// Below the service minimum of 100.
	status, _ := placeOrder(t, app, `{"serviceId":"earthpanel:101","link":"https://instagram.com/someone","quantity":50}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	// Above the maximum of 10000.
	status, _ = placeOrder(t, app, `{"serviceId":"earthpanel:101","link":"https://instagram.com/someone","quantity":20000}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestHandlePlaceOrderUnknownService(t *testing.T) {
	app, _, _ := setupOrderApp(t)

	status, _ := placeOrder(t, app, `{"serviceId":"nopanel:999","link":"https://x.com/someone","quantity":100}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandlePlaceOrderSubmissionFailureIsRecorded(t *testing.T) {
	app, repo, submitter := setupOrderApp(t)
	submitter.err = errors.New("upstream rejected key")

	status, body := placeOrder(t, app, `{"serviceId":"earthpanel:101","link":"https://instagram.com/someone","quantity":1000}`)
	// The order row survives with a failed status; the request itself
	// still succeeds.
	assert.Equal(t, fiber.StatusCreated, status)

	var order models.Order
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, models.ORDER_STATUS_FAILED, order.Status)
	require.Len(t, repo.orders, 1)
	assert.Equal(t, models.ORDER_STATUS_FAILED, repo.orders[0].Status)
}

func TestHandleGetOrder(t *testing.T) {
	app, _, _ := setupOrderApp(t)
	_, body := placeOrder(t, app, `{"serviceId":"earthpanel:101","link":"https://instagram.com/someone","quantity":1000}`)

	var created models.Order
	require.NoError(t, json.Unmarshal(body, &created))

	req := httptest.NewRequest("GET", "/api/v1/orders/1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/v1/orders/99", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
