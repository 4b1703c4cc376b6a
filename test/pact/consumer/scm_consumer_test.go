//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/vibecart/scm-service/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestStorefrontCheckoutContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	orderMatcher := matchers.Map{
		"orderId":       matchers.Like(pacttest.ExistingOrderID),
		"customerId":    matchers.Like(pacttest.CustomerID),
		"totalQuantity": matchers.Like(2),
		"shippingZip":   matchers.Like(pacttest.CustomerZip),
		"status":        matchers.Term("CONFIRMED", "CONFIRMED|DISPATCHED|SHIPPED|DELIVERED|CANCELLED|COMPLETED"),
		"paymentStatus": matchers.Term("PENDING", "PENDING|COMPLETED|FAILED|CANCELLED"),
	}

	pact.AddInteraction().
		Given(pacttest.StateInventorySeeded).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderPayload())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success":    matchers.Like(true),
				"statusCode": matchers.Like(http.StatusCreated),
				"message":    matchers.S("Order placed successfully"),
				"data": matchers.Map{
					"order": orderMatcher,
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to fetch an existing order").
		WithRequest("GET", "/v1/orders/"+pacttest.ExistingOrderID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success":    matchers.Like(true),
				"statusCode": matchers.Like(http.StatusOK),
				"message":    matchers.S("Order fetched"),
				"data":       orderMatcher,
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order").
		WithRequest("GET", "/v1/orders/"+pacttest.MissingOrderID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateInventorySeeded).
		UponReceiving("a request to reserve stock").
		WithRequest("POST", "/v1/inventory/reserve", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"lines": matchers.ArrayMinLike(map[string]any{
					"sku":      pacttest.ExampleSKU,
					"quantity": 2,
				}, 1),
				"customerZip": matchers.Like(pacttest.CustomerZip),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success":    matchers.Like(true),
				"statusCode": matchers.Like(http.StatusOK),
				"message":    matchers.S("Stock reservation processed"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newCheckoutClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.PlaceOrder(ctx, pacttest.ExampleOrderPayload())
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if !created.Success {
			return fmt.Errorf("expected order creation to succeed, got %+v", created)
		}

		fetched, err := client.GetOrder(ctx, pacttest.ExistingOrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if !fetched.Success {
			return fmt.Errorf("expected order fetch to succeed, got %+v", fetched)
		}

		if _, err := client.GetOrder(ctx, pacttest.MissingOrderID); err == nil {
			return fmt.Errorf("expected 404 for order %s", pacttest.MissingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		reserved, err := client.ReserveStock(ctx, pacttest.ExampleSKU, 2, pacttest.CustomerZip)
		if err != nil {
			return fmt.Errorf("reserve stock: %w", err)
		}
		if !reserved.Success {
			return fmt.Errorf("expected reservation to succeed, got %+v", reserved)
		}

		return nil
	})
	require.NoError(t, err)
}

type checkoutClient struct {
	baseURL    string
	httpClient *http.Client
}

func newCheckoutClient(config pactconsumer.MockServerConfig) *checkoutClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &checkoutClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *checkoutClient) PlaceOrder(ctx context.Context, payload map[string]any) (*apiEnvelope, error) {
	return c.postJSON(ctx, "/v1/orders", payload)
}

func (c *checkoutClient) ReserveStock(ctx context.Context, sku int64, quantity int, zip int64) (*apiEnvelope, error) {
	payload := map[string]any{
		"lines":       []map[string]any{{"sku": sku, "quantity": quantity}},
		"customerZip": zip,
	}
	return c.postJSON(ctx, "/v1/inventory/reserve", payload)
}

func (c *checkoutClient) GetOrder(ctx context.Context, id string) (*apiEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/orders/"+id, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *checkoutClient) postJSON(ctx context.Context, path string, payload map[string]any) (*apiEnvelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *checkoutClient) do(req *http.Request) (*apiEnvelope, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
