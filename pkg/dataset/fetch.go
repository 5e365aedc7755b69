package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Fetcher opens the workbook behind a source URL
type Fetcher interface {
	Fetch(ctx context.Context, source *url.URL) (io.ReadCloser, error)
}

type HTTPFetcher struct {
	Client *http.Client
}

func (h *HTTPFetcher) Fetch(ctx context.Context, source *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.String(), nil)
	if err != nil {
		return nil, err
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, source.Redacted())
	}
	return resp.Body, nil
}

// FileFetcher reads file:// URLs
type FileFetcher struct{}

func (FileFetcher) Fetch(_ context.Context, source *url.URL) (io.ReadCloser, error) {
	path := source.Path
	if source.Host != "" {
		path = source.Host + path
	}
	return os.Open(path)
}

// S3API is the part of the S3 client the fetcher needs
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher reads s3://bucket/key URLs
type S3Fetcher struct {
	client S3API
}

func NewS3Fetcher(client S3API) *S3Fetcher {
	return &S3Fetcher{client: client}
}

// S3FetcherFactory builds an S3 fetcher from the default AWS credential chain.
func S3FetcherFactory(ctx context.Context) (Fetcher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3Fetcher(s3.NewFromConfig(cfg)), nil
}

func (s *S3Fetcher) Fetch(ctx context.Context, source *url.URL) (io.ReadCloser, error) {
	bucket := source.Host
	key := strings.TrimPrefix(source.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 source %q: expected s3://bucket/key", source.String())
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3 object: %w", err)
	}
	return out.Body, nil
}
