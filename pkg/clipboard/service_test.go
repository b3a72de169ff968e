package clipboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memexlabs/memex-go/pkg/apierror"
	"github.com/memexlabs/memex-go/pkg/models"
	"github.com/memexlabs/memex-go/pkg/transport"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := transport.New(transport.Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	}, nil)
	require.NoError(t, err)
	return NewService(client, nil), srv
}

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func TestSet_ForcesSDKSource(t *testing.T) {
	var captured map[string]any
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"success": true, "entry": {"id": "e1", "name": "k", "value": "v", "source": "sdk"}}`))
	})

	_, err := svc.Set(context.Background(), SetRequest{
		Name:   strptr("k"),
		Value:  "v",
		Source: models.SourceMCP, // caller-supplied value must be overridden
	})
	require.NoError(t, err)
	assert.Equal(t, "sdk", captured["source"])
}

func TestPush_ForcesSDKSource(t *testing.T) {
	var captured map[string]any
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clipboard/push", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"success": true, "entry": {"id": "e1", "idx": 0, "value": "v"}}`))
	})

	entry, err := svc.Push(context.Background(), PushRequest{Value: "v", Source: models.SourceUI})
	require.NoError(t, err)
	assert.Equal(t, "sdk", captured["source"])
	assert.Equal(t, models.SourceUI, entry.Source, "read normalization is separate from write forcing")
}

func TestSet_RequiresLocator(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected")
	})
	_, err := svc.Set(context.Background(), SetRequest{Value: "v"})
	require.True(t, apierror.IsValidation(err))
	assert.Contains(t, err.Error(), "must provide one of name or idx")
}

func TestValidateMutation_TTLBounds(t *testing.T) {
	tests := []struct {
		name    string
		ttl     *int
		wantErr bool
	}{
		{name: "nil ttl is fine", ttl: nil},
		{name: "zero succeeds", ttl: intptr(0)},
		{name: "ceiling succeeds", ttl: intptr(MaxTTLSeconds)},
		{name: "negative fails", ttl: intptr(-1), wantErr: true},
		{name: "over ceiling fails", ttl: intptr(MaxTTLSeconds + 1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMutation("v", tt.ttl)
			if tt.wantErr {
				require.True(t, apierror.IsValidation(err))
				assert.Contains(t, err.Error(), "ttlSeconds")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMutation_ValueSize(t *testing.T) {
	atLimit := strings.Repeat("a", MaxValueBytes)
	assert.NoError(t, validateMutation(atLimit, nil))

	over := atLimit + "a"
	err := validateMutation(over, nil)
	require.True(t, apierror.IsValidation(err))
	assert.Contains(t, err.Error(), "2097153", "actual size is reported")
	assert.Contains(t, err.Error(), "2097152", "allowed size is reported")
}

func TestGet_RequiresExactlyOneLocator(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected")
	})

	_, err := svc.Get(context.Background(), GetOptions{})
	require.True(t, apierror.IsValidation(err))

	_, err = svc.Get(context.Background(), GetOptions{Name: strptr("k"), Index: intptr(0)})
	require.True(t, apierror.IsValidation(err))
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "entry": null}`))
	})
	_, err := svc.GetByName(context.Background(), "missing")
	assert.True(t, apierror.IsNotFound(err))
}

func TestRoundTrip_SetThenGetByName(t *testing.T) {
	store := map[string]models.ClipboardEntry{}
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req struct {
				Name   string        `json:"name"`
				Value  string        `json:"value"`
				Source models.Source `json:"source"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			entry := models.ClipboardEntry{
				ID:     "e1",
				Name:   &req.Name,
				Value:  req.Value,
				Source: req.Source,
			}
			store[req.Name] = entry
			_ = json.NewEncoder(w).Encode(entryEnvelope{Success: true, Entry: &entry})
		case http.MethodGet:
			entry, ok := store[r.URL.Query().Get("name")]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error": "no matching entry"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(entryEnvelope{Success: true, Entry: &entry})
		}
	})

	_, err := svc.Set(context.Background(), SetRequest{Name: strptr("k"), Value: "v"})
	require.NoError(t, err)

	got, err := svc.GetByName(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got.Value)
	assert.Equal(t, models.SourceSDK, got.Source)
}

func TestPop_EmptySignals(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "success with no entry",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success": true}`))
			},
		},
		{
			name: "error text contains empty marker",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success": false, "error": "Clipboard stack is EMPTY"}`))
			},
		},
		{
			name: "error text contains no-indexed-entries marker",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error": "No indexed entries to pop"}`))
			},
		},
		{
			name: "not-found exception",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error": "nothing here"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, tt.handler)
			entry, err := svc.Pop(context.Background())
			require.NoError(t, err, "empty stack is not an error")
			assert.Nil(t, entry)
		})
	}
}

func TestPop_RealFailurePropagates(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": "Authentication failed"}`))
	})
	_, err := svc.Pop(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Authentication failed")
}

func TestPop_ReturnsEntry(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/clipboard/pop", r.URL.Path)
		_, _ = w.Write([]byte(`{"success": true, "entry": {"id": "e9", "idx": 4, "value": "top"}}`))
	})
	entry, err := svc.Pop(context.Background())
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "top", entry.Value)
	assert.Equal(t, models.SourceUI, entry.Source, "legacy entries default to ui")
}

func TestDelete_SelectorStrictness(t *testing.T) {
	var calls int
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"success": true}`))
	})

	err := svc.Delete(context.Background(), DeleteOptions{})
	require.True(t, apierror.IsValidation(err))
	assert.Contains(t, err.Error(), "must provide one")

	err = svc.Delete(context.Background(), DeleteOptions{Name: strptr("k"), ClearAll: true})
	require.True(t, apierror.IsValidation(err))
	assert.Contains(t, err.Error(), "only one")

	assert.Zero(t, calls, "selector violations never reach the network")

	require.NoError(t, svc.Delete(context.Background(), DeleteOptions{Name: strptr("k")}))
	require.NoError(t, svc.Delete(context.Background(), DeleteOptions{Index: intptr(2)}))
	require.NoError(t, svc.ClearAll(context.Background()))
	assert.Equal(t, 3, calls)
}

func TestList_PreservesServerZeros(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "entries": [], "total": 0, "limit": 0, "offset": 0}`))
	})
	result, err := svc.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.Zero(t, result.Limit, "a literal 0 from the server must not become the default")
	assert.Zero(t, result.Offset)
}

func TestList_DefaultsOnlyWhenAbsent(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "entries": [{"id": "e1", "name": "k", "value": "v"}]}`))
	})
	result, err := svc.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, result.Limit)
	assert.Equal(t, DefaultOffset, result.Offset)
	assert.Equal(t, 1, result.Total, "total falls back to the entry count")
	assert.Equal(t, models.SourceUI, result.Entries[0].Source)
}

func TestList_BuildsQueryParams(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "text/plain", q.Get("contentType"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "20", q.Get("offset"))
		_, _ = w.Write([]byte(`{"success": true, "entries": []}`))
	})
	_, err := svc.List(context.Background(), ListOptions{
		ContentType: strptr("text/plain"),
		Limit:       intptr(10),
		Offset:      intptr(20),
	})
	require.NoError(t, err)
}
