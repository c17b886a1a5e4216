package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/apperr"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/config"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/models"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/routes"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		TokenExpires:    time.Hour,
		FrontendOrigin:  "https://csc648g1.me",
		VerificationTTL: 24 * time.Hour,
		ResendCooldown:  90 * time.Second,
	}
}

func newTestApp(st *fakeStore, mailer *fakeMailer, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	routes.Register(app, st, cfg, mailer)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, bearer string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{}
	decodeBody(t, resp, &body)
	return body
}

// seedUser inserts a user. An empty token leaves both token columns nil;
// otherwise the token is recorded as created tokenAge ago.
func seedUser(st *fakeStore, username, email, status, token string, tokenAge time.Duration) *models.User {
	user := &models.User{
		Username:           username,
		Email:              email,
		Role:               "user",
		VerificationStatus: status,
	}
	user.ID = uuid.New()
	if token != "" {
		createdAt := time.Now().Add(-tokenAge)
		user.VerificationToken = &token
		user.VerificationTokenCreatedAt = &createdAt
	}
	st.users = append(st.users, user)
	return user
}

func seedProduct(st *fakeStore, seller uuid.UUID, name, approval, status string) *models.Product {
	product := &models.Product{
		SellerID:       seller,
		Name:           name,
		ApprovalStatus: approval,
		Status:         status,
	}
	product.ID = uuid.New()
	st.products = append(st.products, product)
	return product
}

func bearerFor(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(cfg.JWTSecret, user.ID, user.Username, user.Role, cfg.TokenExpires)
	require.NoError(t, err)
	return token
}
