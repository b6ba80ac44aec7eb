package countries

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, store Store, imagePath string) http.Handler {
	t.Helper()
	fixed := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })

	r := mux.NewRouter()
	RegisterRoutes(r, NewService(store), imagePath)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	return er
}

func TestHandlerList(t *testing.T) {
	store := newMemStore(peru(), Country{Name: "Chile", Code: "CL", Capital: "Santiago"})
	h := newTestRouter(t, store, "")

	for _, path := range []string{"/paises", "/paises/"} {
		rec := do(t, h, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		goldie.New(t).Assert(t, "list_countries", rec.Body.Bytes())
	}
}

func TestHandlerListEmpty(t *testing.T) {
	rec := do(t, newTestRouter(t, newMemStore(), ""), http.MethodGet, "/paises", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandlerLookups(t *testing.T) {
	h := newTestRouter(t, newMemStore(peru()), "")

	for _, path := range []string{
		"/paises/nombre/Peru",
		"/paises/continente/America",
		"/paises/idioma/Espa%C3%B1ol",
		"/paises/codigo/PE",
		"/paises/id/1",
	} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			var c Country
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
			assert.Equal(t, "Peru", c.Name)
		})
	}
}

func TestHandlerLookupAbsentIsEmpty(t *testing.T) {
	h := newTestRouter(t, newMemStore(peru()), "")
	rec := do(t, h, http.MethodGet, "/paises/codigo/ZZ", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandlerLookupIDOverflow(t *testing.T) {
	h := newTestRouter(t, newMemStore(peru()), "")
	rec := do(t, h, http.MethodGet, "/paises/id/99999999999999999999", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Id de país inválido: 99999999999999999999")
}

func TestHandlerCreateBatch(t *testing.T) {
	store := newMemStore()
	h := newTestRouter(t, store, "")

	body := `[
		{"nombre":"Argentina","codigo":"AR","capital":"Buenos Aires","continente":"America"},
		{"nombre":"","codigo":"XX","capital":"Nowhere"},
		{"nombre":"Bolivia","codigo":"BO","capital":"Sucre"}
	]`
	rec := do(t, h, http.MethodPost, "/paises", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Saved, 2)
	assert.Equal(t, "Argentina", resp.Saved[0].Name)
	assert.NotZero(t, resp.Saved[0].ID)
	assert.Equal(t, "Bolivia", resp.Saved[1].Name)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 1, resp.Errors[0].Index)
	assert.Equal(t, "Error de validación", resp.Errors[0].Error)
	assert.Equal(t, 400, resp.Errors[0].Status)
	assert.Contains(t, resp.Errors[0].Message, "nombre")
	assert.Equal(t, 2, store.len())
}

func TestHandlerCreateSingleObject(t *testing.T) {
	store := newMemStore()
	h := newTestRouter(t, store, "")

	rec := do(t, h, http.MethodPost, "/paises/", `{"nombre":"Peru","codigo":"PE","capital":"Lima"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/paises", `[{"nombre":"Peru","codigo":"P2","capital":"Lima"}]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Saved)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Ya existe un país con el nombre: Peru", resp.Errors[0].Message)
	assert.Equal(t, 1, store.len())
}

func TestHandlerCreateBadBody(t *testing.T) {
	rec := do(t, newTestRouter(t, newMemStore(), ""), http.MethodPost, "/paises", `{"nombre":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	er := decodeError(t, rec)
	assert.Equal(t, "Error de validación", er.Error)
	assert.Equal(t, 400, er.Status)
}

func TestHandlerUpdate(t *testing.T) {
	store := newMemStore(peru())
	h := newTestRouter(t, store, "")

	rec := do(t, h, http.MethodPut, "/paises/actualizar/1", `{"nombre":"Peru","codigo":"PER","capital":"Lima","continente":"Asia"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var c Country
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, "PER", c.Code)
	require.NotNil(t, c.Continent)
	assert.Equal(t, "America", *c.Continent)
}

func TestHandlerUpdateFailures(t *testing.T) {
	store := newMemStore(peru(), Country{Name: "Chile", Code: "CL", Capital: "Santiago"})
	h := newTestRouter(t, store, "")

	tests := []struct {
		name, path, body, message string
	}{
		{"not found", "/paises/actualizar/9", `{"nombre":"X","codigo":"X","capital":"X"}`, "País no encontrado con id: 9"},
		{"empty capital", "/paises/actualizar/1", `{"nombre":"Peru","codigo":"PE","capital":" "}`, "La capital del país no puede estar vacía"},
		{"duplicate name", "/paises/actualizar/1", `{"nombre":"Chile","codigo":"PE","capital":"Lima"}`, "Ya existe un país con el nombre: Chile"},
		{"duplicate code", "/paises/actualizar/1", `{"nombre":"Peru","codigo":"CL","capital":"Lima"}`, "Ya existe un país con el código: CL"},
		{"null name", "/paises/actualizar/1", `{"nombre":null,"codigo":"PE","capital":"Lima"}`, "El nombre del país no puede estar vacío"},
		{"bad id", "/paises/actualizar/abc", `{"nombre":"X","codigo":"X","capital":"X"}`, "Id de país inválido: abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPut, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			er := decodeError(t, rec)
			assert.Equal(t, tt.message, er.Message)
			assert.Equal(t, "Error de validación", er.Error)
			assert.Equal(t, "2025-04-01T12:00:00Z", er.Timestamp)
		})
	}
}

func TestHandlerDeletes(t *testing.T) {
	store := newMemStore(
		peru(),
		Country{Name: "Chile", Code: "CL", Capital: "Santiago", Continent: strPtr("America")},
		Country{Name: "España", Code: "ES", Capital: "Madrid", Continent: strPtr("Europa")},
	)
	h := newTestRouter(t, store, "")

	rec := do(t, h, http.MethodGet, "/paises/eliminar/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/paises/eliminar/nombre/Chile", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/paises/eliminar/continente/Europa", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Zero(t, store.len())
}

func TestHandlerDeleteNotFound(t *testing.T) {
	h := newTestRouter(t, newMemStore(peru()), "")

	rec := do(t, h, http.MethodGet, "/paises/eliminar/99", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	goldie.New(t).Assert(t, "delete_not_found", rec.Body.Bytes())

	rec = do(t, h, http.MethodGet, "/paises/eliminar/nombre/Atlantis", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "País no encontrado con nombre: Atlantis", decodeError(t, rec).Message)

	rec = do(t, h, http.MethodGet, "/paises/eliminar/continente/Oceania", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No se encontraron países con el continente: Oceania", decodeError(t, rec).Message)
}

func TestHandlerStoreFailureIs500(t *testing.T) {
	store := newMemStore()
	store.fail = func(string) error { return errInjected }
	rec := do(t, newTestRouter(t, store, ""), http.MethodGet, "/paises", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestHandlerStatus(t *testing.T) {
	rec := do(t, newTestRouter(t, newMemStore(peru()), ""), http.MethodGet, "/paises/estado", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_paises":1,"por_continente":{"America":1}}`, rec.Body.String())
}

func TestHandlerSummaryImage(t *testing.T) {
	store := newMemStore(peru())
	path := filepath.Join(t.TempDir(), "summary.png")
	h := newTestRouter(t, store, path)

	rec := do(t, h, http.MethodGet, "/paises/resumen/imagen", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, GenerateSummaryImage(context.Background(), store, path))
	_, err := os.Stat(path)
	require.NoError(t, err)

	rec = do(t, h, http.MethodGet, "/paises/resumen/imagen", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}
