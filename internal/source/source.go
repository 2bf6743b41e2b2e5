// Package source reads resume documents for the command line from the local
// filesystem or from S3-compatible object storage.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// ErrInvalidRef is returned for references that name no object.
var ErrInvalidRef = errors.New("invalid document reference")

// S3Config configures access to object storage. Credentials come from the
// default AWS chain.
type S3Config struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

// Document is a loaded file.
type Document struct {
	Name    string
	Content []byte
}

type getObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader resolves document references.
type Loader struct {
	cfg S3Config

	// newClient is swapped in tests.
	newClient func(ctx context.Context, cfg S3Config) (getObjectAPI, error)
}

// NewLoader creates a loader. The S3 client is built lazily on first use.
func NewLoader(cfg S3Config) *Loader {
	return &Loader{cfg: cfg, newClient: newS3Client}
}

// IsRemote reports whether ref points at object storage.
func IsRemote(ref string) bool {
	return strings.HasPrefix(strings.TrimSpace(ref), s3Scheme)
}

// Load reads the document named by ref, either a local path or s3://bucket/key.
func (l *Loader) Load(ctx context.Context, ref string) (Document, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Document{}, fmt.Errorf("%w: empty reference", ErrInvalidRef)
	}

	if !IsRemote(ref) {
		content, err := os.ReadFile(ref)
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", ref, err)
		}
		return Document{Name: filepath.Base(ref), Content: content}, nil
	}

	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return Document{}, err
	}

	client, err := l.newClient(ctx, l.cfg)
	if err != nil {
		return Document{}, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return Document{}, fmt.Errorf("s3 get object bucket=%s key=%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return Document{}, fmt.Errorf("s3 read object bucket=%s key=%s: %w", bucket, key, err)
	}

	return Document{Name: path.Base(key), Content: content}, nil
}

func parseS3Ref(ref string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(strings.TrimSpace(ref), s3Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	key = strings.TrimLeft(key, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q must look like s3://bucket/key", ErrInvalidRef, ref)
	}
	return bucket, key, nil
}

func newS3Client(ctx context.Context, cfg S3Config) (getObjectAPI, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region := strings.TrimSpace(cfg.Region); region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
