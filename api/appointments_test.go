package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-appointments/api"
	"clinic-appointments/appointment"
	"clinic-appointments/blob"
	"clinic-appointments/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, a *api.API, method, target string, body any) (*httptest.ResponseRecorder, api.Response) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	var res api.Response
	if rec.Code != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&res))
	}
	return rec, res
}

func TestHealth(t *testing.T) {
	t.Parallel()
	a, store := setupAPI(t)

	rec, res := doJSON(t, a, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body, ok := res.Response.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 0.0, body["appointments"])

	_, err := store.Add(testContext(t), validFields())
	require.NoError(t, err)
	_, res = doJSON(t, a, http.MethodGet, "/api/health", nil)
	assert.Equal(t, 1.0, res.Response.(map[string]any)["appointments"])
}

func TestAppointmentsAPIOpaqueStoredIDs(t *testing.T) {
	t.Parallel()
	a, store := seededAPI(t, `[{"id":"a/b","date":"2024-01-10","time":"09:00","firstName":"Ana","lastName":"Ruiz","nationalId":"12345678Z","phone":"600123456","birthDate":"1990-05-01","notes":""},{}]`)

	rec, res := doJSON(t, a, http.MethodGet, "/api/appointments/a%2Fb", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a/b", res.Response.(map[string]any)["id"])

	f := validFields()
	f.Phone = "699000111"
	rec, _ = doJSON(t, a, http.MethodPut, "/api/appointments/a%2Fb", f)
	require.Equal(t, http.StatusOK, rec.Code)
	got, ok := store.FindByID("a/b")
	require.True(t, ok)
	assert.Equal(t, "699000111", got.Phone)

	rec, _ = doJSON(t, a, http.MethodGet, "/api/appointments/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, a, http.MethodDelete, "/api/appointments/a%2Fb", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = doJSON(t, a, http.MethodDelete, "/api/appointments/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, store.Len())
}

func TestAppointmentsAPI(t *testing.T) {
	t.Parallel()
	a, store := setupAPI(t)

	var createdID string

	t.Run("create", func(t *testing.T) {
		rec, res := doJSON(t, a, http.MethodPost, "/api/appointments", validFields())
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, http.StatusCreated, res.Status)

		rec2, ok := res.Response.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Ana", rec2["firstName"])
		assert.Equal(t, "", rec2["notes"])
		createdID, _ = rec2["id"].(string)
		require.NotEmpty(t, createdID)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("create trims input", func(t *testing.T) {
		f := validFields()
		f.FirstName = "  Luis "
		rec, res := doJSON(t, a, http.MethodPost, "/api/appointments", f)
		require.Equal(t, http.StatusCreated, rec.Code)
		body := res.Response.(map[string]any)
		assert.Equal(t, "Luis", body["firstName"])
	})

	t.Run("create invalid", func(t *testing.T) {
		f := validFields()
		f.Phone = "12"
		f.Date = ""
		rec, res := doJSON(t, a, http.MethodPost, "/api/appointments", f)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body, ok := res.Response.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, map[string]any{
			"phone": "phone must be exactly 9 digits",
			"date":  "must select a date",
		}, body["errors"])
		assert.Equal(t, 2, store.Len())
	})

	t.Run("create malformed body", func(t *testing.T) {
		rec, res := doJSON(t, a, http.MethodPost, "/api/appointments", "invalid")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", res.Response)
	})

	t.Run("list in insertion order", func(t *testing.T) {
		rec, res := doJSON(t, a, http.MethodGet, "/api/appointments", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := res.Response.(map[string]any)
		list, ok := body["appointments"].([]any)
		require.True(t, ok)
		require.Len(t, list, 2)
		assert.Equal(t, createdID, list[0].(map[string]any)["id"])
		assert.Equal(t, "Luis", list[1].(map[string]any)["firstName"])
	})

	t.Run("get by id", func(t *testing.T) {
		rec, res := doJSON(t, a, http.MethodGet, "/api/appointments/"+createdID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "12345678Z", res.Response.(map[string]any)["nationalId"])

		rec, _ = doJSON(t, a, http.MethodGet, "/api/appointments/missing", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		f := validFields()
		f.Time = "17:30"
		f.Notes = "fasting"
		rec, res := doJSON(t, a, http.MethodPut, "/api/appointments/"+createdID, f)
		require.Equal(t, http.StatusOK, rec.Code)

		body := res.Response.(map[string]any)
		assert.Equal(t, createdID, body["id"])
		assert.Equal(t, "17:30", body["time"])

		got, ok := store.FindByID(createdID)
		require.True(t, ok)
		assert.Equal(t, "fasting", got.Notes)
		assert.Equal(t, createdID, store.All()[0].ID)
	})

	t.Run("update invalid", func(t *testing.T) {
		f := validFields()
		f.NationalID = "nope"
		rec, _ := doJSON(t, a, http.MethodPut, "/api/appointments/"+createdID, f)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		got, _ := store.FindByID(createdID)
		assert.Equal(t, "12345678Z", got.NationalID)
	})

	t.Run("update unknown id", func(t *testing.T) {
		rec, _ := doJSON(t, a, http.MethodPut, "/api/appointments/missing", validFields())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec, _ := doJSON(t, a, http.MethodDelete, "/api/appointments/"+createdID, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, 1, store.Len())

		rec, _ = doJSON(t, a, http.MethodDelete, "/api/appointments/"+createdID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAppointmentsAPIStorageFailure(t *testing.T) {
	t.Parallel()
	blobs := &flakyBlobs{Memory: blob.NewMemory()}
	store := newStore(t, blobs)
	a := api.NewAPI(store, logging.Discard(), nil)
	a.RegisterRoutes()

	created, err := store.Add(testContext(t), validFields())
	require.NoError(t, err)
	blobs.failing = true

	rec, res := doJSON(t, a, http.MethodPost, "/api/appointments", validFields())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Could not save appointments", res.Response)

	rec, _ = doJSON(t, a, http.MethodDelete, "/api/appointments/"+created.ID, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, []appointment.Appointment{created}, store.All())

	rec = getPage(a, "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
