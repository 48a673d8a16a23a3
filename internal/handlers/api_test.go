package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/devotional"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/model"
)

type fakeSource struct {
	dates  []string
	byDate map[string]*model.Devotional
}

func (f *fakeSource) ByDate(ctx context.Context, date string) (*model.Devotional, error) {
	return f.byDate[date], nil
}

func (f *fakeSource) All(ctx context.Context, limit int) ([]model.Devotional, error) {
	var all []model.Devotional
	for _, d := range f.byDate {
		all = append(all, *d)
	}
	return all, nil
}

func (f *fakeSource) Dates(ctx context.Context) ([]string, error) {
	return f.dates, nil
}

func apiApp(src *fakeSource) *fiber.App {
	app := fiber.New()
	app.Get("/api/devotionals", DevotionalsHandler(devotional.NewService(src)))
	return app
}

func TestGetByDate(t *testing.T) {
	src := &fakeSource{byDate: map[string]*model.Devotional{
		"2025-01-05": {ID: "p1", Title: "Svetlo sveta", Date: "2025-01-05"},
	}}
	app := apiApp(src)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/devotionals?action=getByDate&date=2025-01-05", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var d model.Devotional
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	assert.Equal(t, "Svetlo sveta", d.Title)
}

func TestGetByDateNotFound(t *testing.T) {
	app := apiApp(&fakeSource{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/devotionals?action=getByDate&date=2025-01-05", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetByDateRejectsInvalidDate(t *testing.T) {
	app := apiApp(&fakeSource{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/devotionals?action=getByDate&date=garbage", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetDates(t *testing.T) {
	app := apiApp(&fakeSource{dates: []string{"2025-01-10", "2025-01-09"}})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/devotionals?action=getDates", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var dates []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dates))
	assert.Equal(t, []string{"2025-01-10", "2025-01-09"}, dates)
}

func TestInvalidAction(t *testing.T) {
	app := apiApp(&fakeSource{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/devotionals?action=explode", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func readerApp(src *fakeSource) *fiber.App {
	svc := devotional.NewService(src)
	cache := devotional.NewDateCache(svc, true)
	app := fiber.New()
	app.Get("/", ReaderHandler(svc, cache, session.New()))
	return app
}

func TestReaderRedirectsToClosestDateOnFirstVisit(t *testing.T) {
	src := &fakeSource{
		dates: []string{"2025-01-01", "2025-01-10"},
		byDate: map[string]*model.Devotional{
			"2025-01-01": {ID: "a", Title: "Prvý", Date: "2025-01-01"},
			"2025-01-10": {ID: "b", Title: "Druhý", Date: "2025-01-10"},
		},
	}
	app := readerApp(src)

	resp, err := app.Test(httptest.NewRequest("GET", "/?date=2025-01-05", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/?date=2025-01-01", resp.Header.Get("Location"))
}

func TestReaderNoRedirectForUserNavigation(t *testing.T) {
	src := &fakeSource{
		dates: []string{"2025-01-01"},
		byDate: map[string]*model.Devotional{
			"2025-01-01": {ID: "a", Title: "Prvý", Date: "2025-01-01"},
		},
	}
	app := readerApp(src)

	resp, err := app.Test(httptest.NewRequest("GET", "/?date=2025-01-05&nav=user", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "nenašli žiadne zamyslenie")
}

func TestReaderRendersDevotional(t *testing.T) {
	src := &fakeSource{
		dates: []string{"2025-01-05"},
		byDate: map[string]*model.Devotional{
			"2025-01-05": {
				ID:    "p1",
				Title: "Svetlo sveta",
				Date:  "2025-01-05",
				Quote: "Ján 8,12",
			},
		},
	}
	app := readerApp(src)

	resp, err := app.Test(httptest.NewRequest("GET", "/?date=2025-01-05", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Svetlo sveta")
	assert.Contains(t, string(body), "5. januára 2025")
}

func TestReaderEmptySetKeepsRequestedDate(t *testing.T) {
	app := readerApp(&fakeSource{})

	resp, err := app.Test(httptest.NewRequest("GET", "/?date=2025-01-05", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "no auto-navigation when nothing is available")
}
