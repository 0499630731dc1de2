//go:build api

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:3000"

// End-to-end smoke test against a running stack (make docker-up).
func TestAPI_SmokeFlow(t *testing.T) {
	waitForServer(t)

	email := fmt.Sprintf("smoke-%d@example.com", time.Now().UnixNano())
	var authToken string

	t.Run("Register", func(t *testing.T) {
		resp := post(t, baseURL+"/api/auth/register", map[string]string{
			"username":  fmt.Sprintf("smoke%d", time.Now().UnixNano()),
			"email":     email,
			"password":  "secret1",
			"full_name": "Smoke Tester",
		}, "")
		assert.Equal(t, 201, resp.StatusCode)

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		assert.Equal(t, true, body["success"])
	})

	t.Run("Login", func(t *testing.T) {
		resp := post(t, baseURL+"/api/auth/login", map[string]string{
			"email":    email,
			"password": "secret1",
		}, "")
		require.Equal(t, 200, resp.StatusCode)

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		require.Equal(t, true, body["success"])
		authToken, _ = body["token"].(string)
		require.NotEmpty(t, authToken)
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		resp := post(t, baseURL+"/api/auth/login", map[string]string{
			"email":    email,
			"password": "not-the-password",
		}, "")
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Verify", func(t *testing.T) {
		resp := get(t, baseURL+"/api/auth/verify", authToken)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("ListDestinations", func(t *testing.T) {
		resp := get(t, baseURL+"/api/destinations", "")
		require.Equal(t, 200, resp.StatusCode)

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		assert.Equal(t, true, body["success"])
	})

	t.Run("CreateDestinationForbiddenForUser", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, baseURL+"/api/destinations", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+authToken)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("ContactSubmit", func(t *testing.T) {
		resp := post(t, baseURL+"/api/contact", map[string]string{
			"name":    "Smoke Tester",
			"email":   email,
			"subject": "Smoke test",
			"message": "Just checking the contact form works end to end.",
		}, "")
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("NewsletterSubscribeTwice", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp := post(t, baseURL+"/api/newsletter/subscribe", map[string]string{
				"email": email,
			}, "")
			assert.Equal(t, 200, resp.StatusCode, "repeat subscription should still succeed")
		}
	})

	t.Run("MyBookingsRequiresAuth", func(t *testing.T) {
		resp := get(t, baseURL+"/api/bookings/my-bookings", "")
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("WebhookRejectsUnsigned", func(t *testing.T) {
		resp := post(t, baseURL+"/api/bookings/webhook", map[string]string{
			"type": "checkout.session.completed",
		}, "")
		assert.Equal(t, 400, resp.StatusCode)
	})
}

// Helper functions

func waitForServer(t *testing.T) {
	for i := 0; i < 30; i++ {
		resp, err := http.Get(baseURL + "/api/health")
		if err == nil && resp.StatusCode == 200 {
			resp.Body.Close()
			return
		}
		time.Sleep(1 * time.Second)
	}
	t.Fatal("server did not become ready in time")
}

func get(t *testing.T, url, token string) *http.Response {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func post(t *testing.T, url string, body interface{}, token string) *http.Response {
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, target interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(target)
	if err != nil && resp.StatusCode >= 400 {
		return
	}
	require.NoError(t, err)
}

func TestMain(m *testing.M) {
	fmt.Println("Running API smoke tests; make sure the stack is up (make docker-up)")
	os.Exit(m.Run())
}
