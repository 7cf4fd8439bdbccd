package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipe-api/backend/internal/middleware"
	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/router"
	"github.com/recipe-api/backend/internal/service"
	"github.com/recipe-api/backend/internal/testhelpers"
	"github.com/recipe-api/backend/internal/types"
)

const testSecret = "test-secret"

type testAPI struct {
	db       *gorm.DB
	router   *gin.Engine
	auth     *service.AuthService
	mediaDir string
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	return setupAPIWithLimit(t, 1000)
}

func setupAPIWithLimit(t *testing.T, limit int) *testAPI {
	t.Helper()

	db := testhelpers.SetupTestDatabase(t)
	mediaDir := t.TempDir()
	auth := service.NewAuthService(db, testSecret, time.Hour, service.NewMemoryRevocationStore())

	r := router.SetupRouter(router.Dependencies{
		DB:                db,
		AuthService:       auth,
		RecipeService:     service.NewRecipeService(db, service.NewDiskImageStore(mediaDir, "/media")),
		TagService:        service.NewTagService(db),
		IngredientService: service.NewIngredientService(db),
		Limiter: middleware.NewLocalLimiter(middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     limit,
			KeyPrefix: "test",
		}),
		CORSOrigins: []string{"*"},
		MediaDir:    mediaDir,
	})
	return &testAPI{db: db, router: r, auth: auth, mediaDir: mediaDir}
}

// login creates a user and returns it with a valid token.
func (a *testAPI) login(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	user := testhelpers.CreateTestUser(t, a.db, email, "testpass123")
	token, err := a.auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (a *testAPI) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) doWithHeader(method, path, key, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(key, value)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) upload(path, field, filename string, content []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			panic(err)
		}
		if _, err := part.Write(content); err != nil {
			panic(err)
		}
	} else if err := mw.WriteField("other", "value"); err != nil {
		panic(err)
	}
	if err := mw.Close(); err != nil {
		panic(err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// createRecipe stores a recipe directly for the given user.
func (a *testAPI) createRecipe(t *testing.T, userID uint, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: 22,
		Price:       525,
		Description: "Sample description",
		Link:        "http://example.com/recipe.pdf",
	}
	require.NoError(t, a.db.Create(recipe).Error)
	return recipe
}

func (a *testAPI) createTag(t *testing.T, userID uint, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{UserID: userID, Name: name}
	require.NoError(t, a.db.Create(tag).Error)
	return tag
}

func (a *testAPI) createIngredient(t *testing.T, userID uint, name string) *models.Ingredient {
	t.Helper()
	ing := &models.Ingredient{UserID: userID, Name: name}
	require.NoError(t, a.db.Create(ing).Error)
	return ing
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func recipeURL(id uint) string {
	return fmt.Sprintf("/api/recipe/recipes/%d/", id)
}

func names(items []types.AttributeResponse) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x0a,
	0x08, 0x02, 0x00, 0x00, 0x00,
}
