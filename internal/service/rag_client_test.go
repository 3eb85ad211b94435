package service

import (
	"context"
	"course_assistant_backend/internal/config"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssistantConfig(serviceURL string) config.AssistantConfig {
	return config.AssistantConfig{
		ServiceURL:        serviceURL,
		APIToken:          "test-token",
		Timeout:           5,
		EnableLogging:     true,
		MaxQuestionLength: 500,
	}
}

func TestRAGClient_Ask(t *testing.T) {
	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		wantAnswer     *RAGAnswer
		wantErrorCheck func(t *testing.T, err error)
	}{
		{
			name: "success with chunks and response time",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/ask", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

				var reqBody map[string]interface{}
				err := json.NewDecoder(r.Body).Decode(&reqBody)
				require.NoError(t, err)
				assert.Equal(t, float64(7), reqBody["user_id"])
				assert.Equal(t, float64(12), reqBody["course_id"])
				assert.Equal(t, "What is the deadline?", reqBody["question"])

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"status":           "success",
					"answer":           "The deadline is May 5.",
					"chunks_used":      []map[string]interface{}{{"source": "syllabus.pdf"}},
					"response_time_ms": 321,
				})
			},
			wantAnswer: &RAGAnswer{
				Answer:         "The deadline is May 5.",
				ChunksUsed:     []RAGChunk{{Source: "syllabus.pdf"}},
				ResponseTimeMs: int64Ptr(321),
			},
		},
		{
			name: "success without chunks",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"status": "success",
					"answer": "42",
				})
			},
			wantAnswer: &RAGAnswer{Answer: "42"},
		},
		{
			name: "non-200 status maps to ServiceError",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErrorCheck: func(t *testing.T, err error) {
				var serviceErr *ServiceError
				require.ErrorAs(t, err, &serviceErr)
				assert.Equal(t, http.StatusBadGateway, serviceErr.StatusCode)
			},
		},
		{
			name: "body is not JSON",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("<html>gateway</html>"))
			},
			wantErrorCheck: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidResponse)
			},
		},
		{
			name: "body is missing status field",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"answer": "no status here",
				})
			},
			wantErrorCheck: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidResponse)
			},
		},
		{
			name: "explicit non-success status",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"status": "error",
					"error":  "index not ready",
				})
			},
			wantErrorCheck: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrServiceUnavailable)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := NewRAGClient()
			got, err := client.Ask(context.Background(), testAssistantConfig(server.URL), 7, 12, "What is the deadline?")

			if tt.wantErrorCheck != nil {
				require.Error(t, err)
				tt.wantErrorCheck(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAnswer, got)
		})
	}
}

func TestRAGClient_Ask_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 立即关闭，制造连接失败

	client := NewRAGClient()
	_, err := client.Ask(context.Background(), testAssistantConfig(server.URL), 1, 1, "hello")

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.NotNil(t, connErr.Unwrap())
}

func TestRAGClient_Ask_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	cfg := testAssistantConfig(server.URL)
	cfg.Timeout = 1

	client := NewRAGClient()
	start := time.Now()
	_, err := client.Ask(context.Background(), cfg, 1, 1, "hello")

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRAGClient_TrailingSlashInServiceURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "answer": "ok"})
	}))
	defer server.Close()

	cfg := testAssistantConfig(server.URL + "/")

	client := NewRAGClient()
	_, err := client.Ask(context.Background(), cfg, 1, 1, "hello")
	require.NoError(t, err)
	assert.Equal(t, "/ask", gotPath)
}

func int64Ptr(v int64) *int64 {
	return &v
}
