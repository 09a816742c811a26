// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3fs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type testObject struct {
	body         []byte
	lastModified time.Time
	metadata     map[string]string
}

// testClient is an in-memory bucket.
type testClient struct {
	mutex    sync.Mutex
	bucket   string
	objects  map[string]*testObject
	uploads  map[string]map[int32][]byte
	pageSize int
	calls    []string
	now      time.Time
}

func newTestClient(bucket string) *testClient {
	return &testClient{
		bucket:  bucket,
		objects: map[string]*testObject{},
		uploads: map[string]map[int32][]byte{},
		now:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (c *testClient) record(op string, key *string) {
	c.calls = append(c.calls, op+" "+aws.ToString(key))
}

func (c *testClient) put(key string, body []byte) {
	c.now = c.now.Add(time.Second)
	c.objects[key] = &testObject{body: body, lastModified: c.now, metadata: map[string]string{}}
}

func (c *testClient) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.record("AbortMultipartUpload", params.Key)
	delete(c.uploads, aws.ToString(params.UploadId))
	return &s3.AbortMultipartUploadOutput{}, nil
}

func (c *testClient) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.record("CompleteMultipartUpload", params.Key)
	parts, ok := c.uploads[aws.ToString(params.UploadId)]
	if !ok {
		return nil, &types.NoSuchUpload{}
	}
	body := []byte{}
	for _, part := range params.MultipartUpload.Parts {
		body = append(body, parts[aws.ToInt32(part.PartNumber)]...)
	}
	c.put(aws.ToString(params.Key), body)
	delete(c.uploads, aws.ToString(params.UploadId))
	return &s3.CompleteMultipartUploadOutput{}, nil
}

func (c *testClient) CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.record("CopyObject", params.Key)
	source, err := url.PathUnescape(strings.TrimPrefix(aws.ToString(params.CopySource), c.bucket+"/"))
	if err != nil {
		return nil, err
	}
	object, ok := c.objects[source]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	metadata := map[string]string{}
	for k, v := range object.metadata {
		metadata[k] = v
	}
	if params.MetadataDirective == types.MetadataDirectiveReplace {
		metadata = params.Metadata
	}
	c.put(aws.ToString(params.Key), append([]byte{}, object.body...))
	c.objects[aws.ToString(params.Key)].metadata = metadata
	return &s3.CopyObjectOutput{}, nil
}

func (c *testClient) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.record("CreateMultipartUpload", params.Key)
	uploadID := fmt.Sprintf("upload-%d", len(c.calls))
	c.uploads[uploadID] = map[int32][]byte{}
	return &s3.CreateMultipartUploadOutput{
		Bucket:   params.Bucket,
		Key:      params.Key,
		UploadId: aws.String(uploadID),
	}, nil
}

func (c *testClient) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.record("DeleteObject", params.Key)
	delete(c.objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (c *testClient) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.record("GetObject", params.Key)
	object, ok := c.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(object.body)),
		ContentLength: aws.Int64(int64(len(object.body))),
		LastModified:  aws.Time(object.lastModified),
		Metadata:      object.metadata,
	}, nil
}

func (c *testClient) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	object, ok := c.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(object.body))),
		LastModified:  aws.Time(object.lastModified),
		Metadata:      object.metadata,
	}, nil
}

func (c *testClient) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	prefix := aws.ToString(params.Prefix)
	delimiter := aws.ToString(params.Delimiter)

	// entries are keys or common prefixes, in lexical order
	entries := []string{}
	prefixes := map[string]bool{}
	for key := range c.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if delimiter != "" {
			if i := strings.Index(key[len(prefix):], delimiter); i >= 0 {
				commonPrefix := key[:len(prefix)+i+len(delimiter)]
				if !prefixes[commonPrefix] {
					prefixes[commonPrefix] = true
					entries = append(entries, commonPrefix)
				}
				continue
			}
		}
		entries = append(entries, key)
	}
	sort.Strings(entries)

	start := 0
	if token := aws.ToString(params.ContinuationToken); token != "" {
		start = sort.SearchStrings(entries, token) + 1
	}
	limit := len(entries)
	if c.pageSize > 0 {
		limit = c.pageSize
	}
	if maxKeys := int(aws.ToInt32(params.MaxKeys)); maxKeys > 0 && maxKeys < limit {
		limit = maxKeys
	}
	end := start + limit
	if end > len(entries) {
		end = len(entries)
	}

	output := &s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(end < len(entries)),
		KeyCount:    aws.Int32(int32(end - start)),
	}
	for _, entry := range entries[start:end] {
		if prefixes[entry] {
			output.CommonPrefixes = append(output.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(entry)})
			continue
		}
		object := c.objects[entry]
		output.Contents = append(output.Contents, types.Object{
			Key:          aws.String(entry),
			LastModified: aws.Time(object.lastModified),
			Size:         aws.Int64(int64(len(object.body))),
		})
	}
	if end < len(entries) {
		output.NextContinuationToken = aws.String(entries[end-1])
	}
	return output, nil
}

func (c *testClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.record("PutObject", params.Key)
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	c.put(aws.ToString(params.Key), body)
	return &s3.PutObjectOutput{}, nil
}

func (c *testClient) UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.record("UploadPart", params.Key)
	parts, ok := c.uploads[aws.ToString(params.UploadId)]
	if !ok {
		return nil, &types.NoSuchUpload{}
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	partNumber := aws.ToInt32(params.PartNumber)
	parts[partNumber] = body
	return &s3.UploadPartOutput{ETag: aws.String(fmt.Sprintf("etag-%d", partNumber))}, nil
}

var _ API = (*testClient)(nil)
