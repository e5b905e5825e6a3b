package firestore_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arkline/payhook/pkg/firestore"
	"github.com/arkline/payhook/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) firestore.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := firestore.Config{
		ProjectID:   "test-project",
		BaseURL:     server.URL,
		AccessToken: "token-123",
		Timeout:     5 * time.Second,
	}
	return firestore.NewClient(cfg, httpclient.NewHTTPClient(cfg.Timeout))
}

func TestClient_DocumentName(t *testing.T) {
	client := firestore.NewClient(firestore.Config{ProjectID: "demo"}, nil)

	assert.Equal(t,
		"projects/demo/databases/(default)/documents/users/42",
		client.DocumentName("users", "42"))
	assert.Equal(t,
		"projects/demo/databases/(default)/documents/users/42/transact/7",
		client.DocumentName("users", "42", "transact", "7"))
}

func TestClient_GetDocument(t *testing.T) {
	t.Run("reads document with field mask", func(t *testing.T) {
		var gotPath string
		var gotMask []string
		var gotAuth string

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMask = r.URL.Query()["mask.fieldPaths"]
			gotAuth = r.Header.Get("Authorization")

			json.NewEncoder(w).Encode(firestore.Document{
				Name:   "projects/test-project/databases/(default)/documents/users/42",
				Fields: map[string]firestore.Value{"Credits": firestore.Integer(100)},
			})
		})

		doc, err := client.GetDocument(context.Background(),
			client.DocumentName("users", "42"), []string{"Credits"})

		require.NoError(t, err)
		assert.Equal(t, "/projects/test-project/databases/(default)/documents/users/42", gotPath)
		assert.Equal(t, []string{"Credits"}, gotMask)
		assert.Equal(t, "Bearer token-123", gotAuth)

		credits, ok := doc.Fields["Credits"].Int()
		require.True(t, ok)
		assert.Equal(t, int64(100), credits)
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.GetDocument(context.Background(), client.DocumentName("users", "42"), nil)
		assert.ErrorIs(t, err, firestore.ErrNotFound)
	})

	t.Run("503 maps to ErrUnavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.GetDocument(context.Background(), client.DocumentName("users", "42"), nil)
		assert.ErrorIs(t, err, firestore.ErrUnavailable)
	})

	t.Run("500 maps to ErrServerError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.GetDocument(context.Background(), client.DocumentName("users", "42"), nil)
		assert.ErrorIs(t, err, firestore.ErrServerError)
	})
}

func TestClient_CreateDocument(t *testing.T) {
	t.Run("posts to the collection with documentId", func(t *testing.T) {
		var gotPath, gotID string
		var gotDoc firestore.Document

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotID = r.URL.Query().Get("documentId")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDoc))

			json.NewEncoder(w).Encode(firestore.Document{
				Name: "projects/test-project/databases/(default)/documents/users/42/transact/7",
			})
		})

		doc := &firestore.Document{}
		doc.SetField("Quantity", firestore.Integer(10))

		created, err := client.CreateDocument(context.Background(),
			client.DocumentName("users", "42"), "transact", "7", doc)

		require.NoError(t, err)
		assert.Equal(t, "/projects/test-project/databases/(default)/documents/users/42/transact", gotPath)
		assert.Equal(t, "7", gotID)

		quantity, ok := gotDoc.Fields["Quantity"].Int()
		require.True(t, ok)
		assert.Equal(t, int64(10), quantity)
		assert.Contains(t, created.Name, "/transact/7")
	})

	t.Run("409 maps to ErrAlreadyExists", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})

		_, err := client.CreateDocument(context.Background(),
			client.DocumentName("users", "42"), "transact", "7", &firestore.Document{})
		assert.ErrorIs(t, err, firestore.ErrAlreadyExists)
	})
}

func TestClient_UpdateDocument(t *testing.T) {
	var gotMethod string
	var gotUpdateMask, gotMask []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotUpdateMask = r.URL.Query()["updateMask.fieldPaths"]
		gotMask = r.URL.Query()["mask.fieldPaths"]

		json.NewEncoder(w).Encode(firestore.Document{})
	})

	doc := &firestore.Document{Name: client.DocumentName("users", "42")}
	doc.SetField("Credits", firestore.Integer(110))

	_, err := client.UpdateDocument(context.Background(), doc, []string{"Credits"})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, []string{"Credits"}, gotUpdateMask)
	assert.Equal(t, []string{"Credits"}, gotMask)
}
