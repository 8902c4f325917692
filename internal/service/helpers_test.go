package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"dealscope/internal/catalog"
	"dealscope/internal/domain/sqlite"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func testValidate() *validator.Validate {
	return validator.New()
}

// groqStub fakes the chat-completions endpoint, counting calls and replying
// with the given content as the single choice. A non-nil gate blocks each
// request until the gate channel is closed.
type groqStub struct {
	Server *httptest.Server
	Calls  atomic.Int64
}

func newGroqStub(t *testing.T, status int, content string, gate chan struct{}) *groqStub {
	t.Helper()
	stub := &groqStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.Calls.Add(1)
		if gate != nil {
			<-gate
		}

		if status < 200 || status > 299 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream says no"}}`))
			return
		}

		payload, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
		_, _ = w.Write(payload)
	}))
	t.Cleanup(stub.Server.Close)
	return stub
}

const stubResult = `{
	"summary": "Gripframe builds adaptive grippers.",
	"whatTheyDo": ["Warehouse automation"],
	"keywords": ["robotics"],
	"derivedSignals": ["expanding"],
	"sources": [{"url": "https://gripframe.ai", "fetchedAt": "2024-06-01T00:00:00Z"}]
}`
