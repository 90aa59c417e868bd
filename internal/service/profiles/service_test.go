package profiles_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fightstation/backend/internal/app"
	"github.com/fightstation/backend/internal/db"
	"github.com/fightstation/backend/internal/profile"
	"github.com/fightstation/backend/internal/service/profiles"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(&db.Gym{}, &db.Fighter{}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(dbase, nil, logger)

	engine := gin.New()
	api := engine.Group("/api/v1")
	profiles.NewService(appCtx).Routes(api)
	return engine, dbase
}

type completenessResponse struct {
	Completeness profile.Result `json:"completeness"`
	NextAction   *string        `json:"next_action"`
}

func get(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestFighterCompleteness(t *testing.T) {
	engine, gdb := setupRouter(t)

	require.NoError(t, gdb.Create(&db.Fighter{
		ID:              "f1",
		Name:            "Arlo",
		WeightClass:     db.WeightMiddleweight,
		ExperienceLevel: db.ExperienceIntermediate,
		Sports:          db.StringList{"boxing"},
		City:            "London",
	}).Error)

	w := get(t, engine, "/api/v1/fighters/f1/completeness")
	require.Equal(t, http.StatusOK, w.Code)

	var resp completenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// all required fields present, nothing beyond them
	assert.True(t, resp.Completeness.IsComplete)
	assert.Equal(t, 50, resp.Completeness.Percentage)
	require.NotNil(t, resp.NextAction)
	assert.Equal(t, "Write a short bio about your fight background", *resp.NextAction)
}

func TestFighterCompleteness_NotFound(t *testing.T) {
	engine, _ := setupRouter(t)

	w := get(t, engine, "/api/v1/fighters/ghost/completeness")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGymCompleteness(t *testing.T) {
	engine, gdb := setupRouter(t)

	require.NoError(t, gdb.Create(&db.Gym{
		ID:      "g1",
		Name:    "Iron Temple",
		City:    "Manchester",
		Country: "UK",
	}).Error)

	w := get(t, engine, "/api/v1/gyms/g1/completeness")
	require.Equal(t, http.StatusOK, w.Code)

	var resp completenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Completeness.IsComplete)
	assert.Equal(t, 50, resp.Completeness.Percentage)
	require.NotNil(t, resp.NextAction)
}

func TestGymCompleteness_FullProfileHasNoNextAction(t *testing.T) {
	engine, gdb := setupRouter(t)

	require.NoError(t, gdb.Create(&db.Gym{
		ID:           "g1",
		Name:         "Iron Temple",
		Description:  "Striking gym with daily sparring.",
		City:         "Manchester",
		Country:      "UK",
		Address:      "14 Canal Street",
		ContactPhone: "+44 161 555 0101",
		LogoURL:      "https://cdn.example/logo.png",
		Photos:       db.StringList{"https://cdn.example/ring.jpg"},
	}).Error)

	w := get(t, engine, "/api/v1/gyms/g1/completeness")
	require.Equal(t, http.StatusOK, w.Code)

	var resp completenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 100, resp.Completeness.Percentage)
	assert.Nil(t, resp.NextAction)
}
