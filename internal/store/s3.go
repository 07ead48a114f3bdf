package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"pricewatch/internal/models"
)

// S3Store holds the same JSON document as FileStore, but as an S3 object so
// that state survives ephemeral CI runners.
type S3Store struct {
	client *s3.Client
	bucket string
	key    string
}

func NewS3Store(ctx context.Context, bucket, key string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
	}, nil
}

func (s *S3Store) load(ctx context.Context) (map[string]models.Item, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return map[string]models.Item{}, nil
		}
		return nil, fmt.Errorf("failed to get data object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read data object: %w", err)
	}

	items := map[string]models.Item{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data object: %w", err)
	}
	return items, nil
}

func (s *S3Store) save(ctx context.Context, items map[string]models.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(s.key),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String("application/json"),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("failed to put data object: %w", err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context) ([]models.Item, error) {
	byURL, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(byURL))
	for _, item := range byURL {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *S3Store) Put(ctx context.Context, item models.Item) error {
	byURL, err := s.load(ctx)
	if err != nil {
		return err
	}

	for url, existing := range byURL {
		if existing.ID == item.ID {
			delete(byURL, url)
		}
	}
	byURL[item.URL] = item
	return s.save(ctx, byURL)
}

func (s *S3Store) Delete(ctx context.Context, id string) error {
	byURL, err := s.load(ctx)
	if err != nil {
		return err
	}

	for url, existing := range byURL {
		if existing.ID == id {
			delete(byURL, url)
			return s.save(ctx, byURL)
		}
	}
	return ErrNotFound
}

func (s *S3Store) FindByURL(ctx context.Context, url string) (*models.Item, error) {
	byURL, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if item, ok := byURL[url]; ok {
		return &item, nil
	}
	return nil, ErrNotFound
}
