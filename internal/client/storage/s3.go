package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

// Test seams around the SDK constructors.
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
	newS3PresignClient    = s3.NewPresignClient
)

// S3 listings are lexicographic, so a wider page is fetched and re-sorted
// by modification time before applying ListLimit.
const s3ScanKeys = 1000

type s3API interface {
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type s3Presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Options configures an S3-compatible endpoint (MinIO, Supabase S3, AWS).
type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type S3Provider struct {
	api       s3API
	presigner s3Presigner
	bucket    string
	logger    logging.Logger
	now       func() time.Time
}

func NewS3Provider(ctx context.Context, opts S3Options, logger logging.Logger) (*S3Provider, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Provider{
		api:       client,
		presigner: newS3PresignClient(client),
		bucket:    opts.Bucket,
		logger:    logger.With("storage", "s3", "bucket", opts.Bucket),
		now:       time.Now,
	}, nil
}

func (p *S3Provider) List(ctx context.Context) ([]models.StorageObject, error) {
	out, err := p.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(p.bucket),
		MaxKeys: aws.Int32(s3ScanKeys),
	})
	if err != nil {
		p.logger.Warn(ctx, "list objects failed", "err", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrStorageList, toStorageError(err))
	}

	objects := make([]models.StorageObject, 0, len(out.Contents))
	for _, o := range out.Contents {
		objects = append(objects, objectFromS3(o))
	}
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].CreatedAt.After(objects[j].CreatedAt)
	})
	if len(objects) > ListLimit {
		objects = objects[:ListLimit]
	}
	return objects, nil
}

func (p *S3Provider) Find(ctx context.Context, name string) (*models.StorageObject, error) {
	out, err := p.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(p.bucket),
		Prefix:  aws.String(name),
		MaxKeys: aws.Int32(ListLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageList, toStorageError(err))
	}

	for _, o := range out.Contents {
		if aws.ToString(o.Key) != name {
			continue
		}
		obj := objectFromS3(o)
		head, err := p.api.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(p.bucket), Key: aws.String(name)})
		if err != nil {
			p.logger.Warn(ctx, "head object failed", "name", name, "err", err.Error())
			return &obj, nil
		}
		obj.Metadata.Mimetype = aws.ToString(head.ContentType)
		return &obj, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
}

func (p *S3Provider) CreateSignedURL(ctx context.Context, name string, expiresIn time.Duration) (*models.SignedURL, error) {
	if expiresIn <= 0 {
		expiresIn = DefaultSignedURLTTL
	}

	req, err := p.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(name),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignedURL, toStorageError(err))
	}
	if req == nil || req.URL == "" {
		return nil, fmt.Errorf("%w: %w", ErrSignedURL, &StorageError{Message: "no signed URL returned for " + name})
	}

	return &models.SignedURL{URL: req.URL, ExpiresAt: p.now().Add(expiresIn)}, nil
}

func objectFromS3(o types.Object) models.StorageObject {
	modified := aws.ToTime(o.LastModified)
	return models.StorageObject{
		Name:      aws.ToString(o.Key),
		ID:        strings.Trim(aws.ToString(o.ETag), `"`),
		CreatedAt: modified,
		UpdatedAt: modified,
		Metadata:  &models.ObjectMetadata{Size: aws.ToInt64(o.Size)},
	}
}

func toStorageError(err error) error {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		msg := ae.ErrorMessage()
		if msg == "" {
			msg = ae.ErrorCode()
		}
		return &StorageError{Message: msg}
	}
	return &StorageError{Message: err.Error()}
}
