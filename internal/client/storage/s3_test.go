package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/docdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects []types.Object
	listErr error
	headErr error
	ctype   string

	lastList *s3.ListObjectsV2Input
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.lastList = in
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &s3.ListObjectsV2Output{}
	prefix := aws.ToString(in.Prefix)
	for _, o := range f.objects {
		if strings.HasPrefix(aws.ToString(o.Key), prefix) {
			out.Contents = append(out.Contents, o)
		}
	}
	return out, nil
}

func (f *fakeS3) HeadObject(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{ContentType: aws.String(f.ctype)}, nil
}

type fakePresigner struct {
	url     string
	err     error
	expires time.Duration
}

func (f *fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var o s3.PresignOptions
	for _, fn := range optFns {
		fn(&o)
	}
	f.expires = o.Expires
	if f.err != nil {
		return nil, f.err
	}
	if f.url == "" {
		return &v4.PresignedHTTPRequest{}, nil
	}
	return &v4.PresignedHTTPRequest{URL: f.url + "/" + aws.ToString(in.Key)}, nil
}

func newFakeS3Provider(api *fakeS3, ps *fakePresigner) *S3Provider {
	return &S3Provider{
		api:       api,
		presigner: ps,
		bucket:    "files",
		logger:    logging.Discard(),
		now:       func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func obj(key string, size int64, modified time.Time) types.Object {
	return types.Object{
		Key:          aws.String(key),
		Size:         aws.Int64(size),
		ETag:         aws.String(`"etag-` + key + `"`),
		LastModified: aws.Time(modified),
	}
}

func TestS3List_NewestFirstAndCapped(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	api := &fakeS3{}
	for i := 0; i < 150; i++ {
		api.objects = append(api.objects, obj(fmt.Sprintf("doc-%03d.pdf", i), int64(i), base.Add(time.Duration(i)*time.Hour)))
	}
	p := newFakeS3Provider(api, &fakePresigner{})

	objects, err := p.List(context.Background())
	require.NoError(t, err)

	require.Len(t, objects, ListLimit)
	assert.Equal(t, "doc-149.pdf", objects[0].Name)
	assert.Equal(t, "doc-050.pdf", objects[ListLimit-1].Name)
	assert.Equal(t, "etag-doc-149.pdf", objects[0].ID)
	assert.Equal(t, int64(149), objects[0].Size())
	assert.Equal(t, "files", aws.ToString(api.lastList.Bucket))
	assert.Equal(t, int32(s3ScanKeys), aws.ToInt32(api.lastList.MaxKeys))
}

func TestS3List_APIErrorMessage(t *testing.T) {
	api := &fakeS3{listErr: &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}}
	p := newFakeS3Provider(api, &fakePresigner{})

	_, err := p.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageList)
	assert.Equal(t, "The specified bucket does not exist", Message(err))

	api.listErr = &smithy.GenericAPIError{Code: "AccessDenied"}
	_, err = p.List(context.Background())
	assert.Equal(t, "AccessDenied", Message(err))
}

func TestS3Find(t *testing.T) {
	now := time.Now()
	api := &fakeS3{
		objects: []types.Object{obj("report.pdf", 10, now), obj("report.pdf.bak", 11, now)},
		ctype:   "application/pdf",
	}
	p := newFakeS3Provider(api, &fakePresigner{})

	o, err := p.Find(context.Background(), "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", o.Name)
	assert.Equal(t, "application/pdf", o.Metadata.Mimetype)

	api.headErr = errors.New("head boom")
	o, err = p.Find(context.Background(), "report.pdf")
	require.NoError(t, err)
	assert.Empty(t, o.Metadata.Mimetype)

	_, err = p.Find(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestS3CreateSignedURL(t *testing.T) {
	ps := &fakePresigner{url: "http://minio:9000/files"}
	p := newFakeS3Provider(&fakeS3{}, ps)

	signed, err := p.CreateSignedURL(context.Background(), "a.pdf", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/files/a.pdf", signed.URL)
	assert.Equal(t, DefaultSignedURLTTL, ps.expires)
	assert.Equal(t, p.now().Add(DefaultSignedURLTTL), signed.ExpiresAt)

	_, err = p.CreateSignedURL(context.Background(), "a.pdf", 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ps.expires)
}

func TestS3CreateSignedURL_Errors(t *testing.T) {
	p := newFakeS3Provider(&fakeS3{}, &fakePresigner{err: errors.New("no creds")})
	_, err := p.CreateSignedURL(context.Background(), "a.pdf", time.Minute)
	assert.ErrorIs(t, err, ErrSignedURL)
	assert.Equal(t, "no creds", Message(err))

	p = newFakeS3Provider(&fakeS3{}, &fakePresigner{})
	_, err = p.CreateSignedURL(context.Background(), "a.pdf", time.Minute)
	assert.ErrorIs(t, err, ErrSignedURL)
	assert.Contains(t, Message(err), "no signed URL")
}

func TestNewS3Provider_Options(t *testing.T) {
	oldLoad, oldNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = oldLoad, oldNew })

	var loaded bool
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-central-1", lo.Region)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "AK", creds.AccessKeyID)
		assert.Equal(t, "SK", creds.SecretAccessKey)
		loaded = true
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
	}

	var got s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&got)
		}
		return oldNew(cfg, optFns...)
	}

	p, err := NewS3Provider(context.Background(), S3Options{
		Endpoint:  "http://127.0.0.1:9000",
		Region:    "eu-central-1",
		AccessKey: "AK",
		SecretKey: "SK",
		Bucket:    "files",
	}, logging.Discard())
	require.NoError(t, err)
	require.True(t, loaded)

	assert.True(t, got.UsePathStyle)
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(got.BaseEndpoint))

	signed, err := p.CreateSignedURL(context.Background(), "q1 report.pdf", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed.URL, "http://127.0.0.1:9000/files/q1%20report.pdf?"), signed.URL)
	assert.Contains(t, signed.URL, "X-Amz-Expires=3600")
}

func TestNewS3Provider_LoadError(t *testing.T) {
	old := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = old })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("bad profile")
	}

	_, err := NewS3Provider(context.Background(), S3Options{Bucket: "files"}, logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad profile")
}
