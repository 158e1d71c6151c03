package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noSuchKey = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

// bucketServer is a path-style S3 endpoint holding objects in memory
type bucketServer struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
	failPut bool
}

func (b *bucketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		body, ok := b.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, noSuchKey)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	case http.MethodPut:
		if b.failPut {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.objects[r.URL.Path] = body
		b.puts++
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3Store(t *testing.T) (*S3Store, *bucketServer) {
	t.Helper()
	bucket := &bucketServer{objects: make(map[string][]byte)}
	server := httptest.NewServer(bucket)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		Region:                     "us-east-1",
		BaseEndpoint:               aws.String(server.URL),
		UsePathStyle:               true,
		Credentials:                credentials.NewStaticCredentialsProvider("key", "secret", ""),
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
		RetryMaxAttempts:           1,
	})
	cfg := S3Config{Bucket: "league", Prefix: "tw/"}
	return newS3Store(client, cfg, logger.NewNoopLogger()), bucket
}

func TestS3Store(t *testing.T) {
	kv, bucket := newTestS3Store(t)
	exerciseStore(t, kv)

	t.Run("Every key lives in one object", func(t *testing.T) {
		bucket.mu.Lock()
		defer bucket.mu.Unlock()
		assert.Len(t, bucket.objects, 1)
		assert.Contains(t, bucket.objects, "/league/tw/state.json")
	})

	t.Run("A batch is a single upload", func(t *testing.T) {
		bucket.mu.Lock()
		before := bucket.puts
		bucket.mu.Unlock()

		require.NoError(t, kv.SaveAll(context.Background(), map[string][]byte{
			"ff_users":        []byte(`[{"mobile":"01722222222"}]`),
			"ff_transactions": []byte(`[]`),
			"ff_user_matches": []byte(`[{"matchId":"match-1"}]`),
		}))

		bucket.mu.Lock()
		assert.Equal(t, before+1, bucket.puts)
		bucket.mu.Unlock()

		value, err := kv.Load(context.Background(), "ff_all_matches")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"match-1"}]`, string(value))
	})

	t.Run("Failed upload keeps the previous state", func(t *testing.T) {
		bucket.mu.Lock()
		bucket.failPut = true
		bucket.mu.Unlock()

		err := kv.SaveAll(context.Background(), map[string][]byte{
			"ff_users":       []byte(`[]`),
			"ff_all_matches": []byte(`[]`),
		})
		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

		bucket.mu.Lock()
		bucket.failPut = false
		bucket.mu.Unlock()

		value, err := kv.Load(context.Background(), "ff_users")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"mobile":"01722222222"}]`, string(value))
		value, err = kv.Load(context.Background(), "ff_all_matches")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"match-1"}]`, string(value))
	})

	t.Run("Rejects values that are not JSON", func(t *testing.T) {
		err := kv.Save(context.Background(), "ff_users", []byte(`{broken`))
		assert.ErrorIs(t, err, errs.ErrInternalServer)
	})
}
