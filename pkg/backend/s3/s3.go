package s3

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-viper/mapstructure/v2"

	"netstorctl/internal/backend/registry"
	"netstorctl/pkg/backend"
)

func init() {
	registry.Register(backend.S3, registry.Registration{
		Initializer: initialize,
	})
}

func initialize(name string, options map[string]any, logger *slog.Logger) (backend.Backend, error) {
	b, err := NewBackend(name, options, logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Options are the recognized S3 backend settings. The same unknown-key
// policy as the NetStorage connector applies.
type Options struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	Prefix          string `mapstructure:"prefix"`
}

// Backend is an S3-backed collection role. It only participates in
// connectivity checks; listing and bulk deletion are NetStorage-specific.
type Backend struct {
	name   string
	opts   Options
	client *awss3.Client
	logger *slog.Logger
}

var _ backend.Backend = (*Backend)(nil)

func NewBackend(name string, raw map[string]any, logger *slog.Logger) (*Backend, error) {
	opts, err := decodeOptions(name, raw)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	var loadOpts []func(*awsconfig.LoadOptions) error
	loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for backend %q: %w", name, err)
	}

	var clientOpts []func(*awss3.Options)
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// Required for MinIO and similar S3-compatible services.
			o.UsePathStyle = true
		})
	}

	return &Backend{
		name:   name,
		opts:   opts,
		client: awss3.NewFromConfig(cfg, clientOpts...),
		logger: logger,
	}, nil
}

func decodeOptions(name string, raw map[string]any) (Options, error) {
	var opts Options
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Options{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Options{}, fmt.Errorf("invalid options for backend %q: %w", name, err)
	}
	for _, key := range md.Unused {
		if raw[key] != nil {
			return Options{}, fmt.Errorf("unsupported option %q on backend %q", key, name)
		}
	}
	return opts, nil
}

func (b *Backend) Name() string {
	return b.name
}

func (b *Backend) BackendType() backend.Type {
	return backend.S3
}

// TestConnection heads the configured bucket.
func (b *Backend) TestConnection(ctx context.Context) error {
	b.logger.Debug("Probing S3 bucket", "bucket", b.opts.Bucket)
	_, err := b.client.HeadBucket(ctx, &awss3.HeadBucketInput{
		Bucket: aws.String(b.opts.Bucket),
	})
	if err != nil {
		return fmt.Errorf("head bucket %s: %w", b.opts.Bucket, err)
	}
	return nil
}

// ListPaths returns the object keys under the configured prefix.
func (b *Backend) ListPaths(ctx context.Context) ([]string, error) {
	var paths []string

	paginator := awss3.NewListObjectsV2Paginator(b.client, &awss3.ListObjectsV2Input{
		Bucket: aws.String(b.opts.Bucket),
		Prefix: aws.String(b.opts.Prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing objects in %s: %w", b.opts.Bucket, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				paths = append(paths, *obj.Key)
			}
		}
	}

	return paths, nil
}

func (b *Backend) Close() error {
	return nil
}
