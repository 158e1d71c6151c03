package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Config selects the bucket the collections are written to
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Set for MinIO or R2, empty for AWS
	AccessKey string
	SecretKey string
	Prefix    string // Object key prefix, e.g. "league/"
}

// S3Store keeps every key in a single JSON object, so a batch of collections
// lands with one PutObject. S3 has no multi-object transaction.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
	logger coreport.Logger
	mu     sync.Mutex
}

var (
	_ persistence.KVStore    = (*S3Store)(nil)
	_ persistence.BatchSaver = (*S3Store)(nil)
)

// NewS3Store builds an S3 client from cfg
func NewS3Store(ctx context.Context, cfg S3Config, logger coreport.Logger) (*S3Store, error) {
	options := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Store(client, cfg, logger), nil
}

func newS3Store(client *s3.Client, cfg S3Config, logger coreport.Logger) *S3Store {
	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger,
	}
}

func (s *S3Store) objectKey() string {
	return s.prefix + "state.json"
}

// Load returns the value for key from the state object
func (s *S3Store) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	value, ok := state[key]
	if !ok {
		return nil, errs.ErrKeyNotFound
	}
	return value, nil
}

// Save replaces the value for key
func (s *S3Store) Save(ctx context.Context, key string, value []byte) error {
	return s.SaveAll(ctx, map[string][]byte{key: value})
}

// SaveAll merges values into the state object and uploads it once
func (s *S3Store) SaveAll(ctx context.Context, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	for key, value := range values {
		if !json.Valid(value) {
			return fmt.Errorf("%w: %s is not valid JSON", errs.ErrInternalServer, key)
		}
		state[key] = json.RawMessage(value)
	}

	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encode state: %s", errs.ErrInternalServer, err.Error())
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey()),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		s.logger.Error("S3 save failed", map[string]any{"keys": len(values), "error": err.Error()})
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}
	return nil
}

// fetch downloads the state object; a missing object is an empty state
func (s *S3Store) fetch(ctx context.Context) (map[string]json.RawMessage, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey()),
	})
	if err != nil {
		if isNotFound(err) {
			return make(map[string]json.RawMessage), nil
		}
		s.logger.Error("S3 load failed", map[string]any{"object": s.objectKey(), "error": err.Error()})
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading state: %s", errs.ErrStoreUnavailable, err.Error())
	}

	state := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("%w: decode state: %s", errs.ErrInternalServer, err.Error())
	}
	return state, nil
}

// Close is a no-op; the SDK client holds no open resources
func (s *S3Store) Close() error {
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || strings.EqualFold(code, "NoSuchKey")
	}
	return false
}
