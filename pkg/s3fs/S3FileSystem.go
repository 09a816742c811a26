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
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"gitlab.com/tozd/go/errors"

	"github.com/navwar/gofs/pkg/fs"
)

// MetadataModTime is the user metadata key that holds the modification time set by Chtimes.
const MetadataModTime = "mtime"

// S3FileSystem presents the objects in a bucket, optionally under a key prefix, as a file system.
// Names are absolute slash-separated paths relative to the prefix.
// Objects are files.  Keys ending with a slash and common prefixes are directories.
type S3FileSystem struct {
	client           API
	bucket           string
	prefix           string
	acl              types.ObjectCannedACL
	bucketKeyEnabled bool
	partSize         int
}

func notExist(op string, name string) error {
	return &os.PathError{Op: op, Path: name, Err: os.ErrNotExist}
}

func isRoot(name string) bool {
	return path.Clean("/"+name) == "/"
}

// key returns the object key for the name.  The root is the prefix.
func (s3fs *S3FileSystem) key(name string) string {
	return strings.TrimPrefix(path.Join(s3fs.prefix, path.Clean("/"+name)), "/")
}

// copySource returns the url-encoded copy source for the key.
func (s3fs *S3FileSystem) copySource(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s3fs.bucket + "/" + strings.Join(parts, "/")
}

func (s3fs *S3FileSystem) headObject(ctx context.Context, key string) (*s3.HeadObjectOutput, error) {
	return s3fs.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(key),
	})
}

func modTime(lastModified *time.Time, metadata map[string]string) time.Time {
	if v, ok := metadata[MetadataModTime]; ok {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return aws.ToTime(lastModified)
}

// Chtimes records mtime in the user metadata of the object by copying the object onto itself.
// S3 does not allow the last modified time of an object to be set.
func (s3fs *S3FileSystem) Chtimes(ctx context.Context, name string, atime time.Time, mtime time.Time) error {
	fi, err := s3fs.Stat(ctx, name)
	if err != nil {
		return err
	}
	key := s3fs.key(name)
	if fi.IsDir() {
		if isRoot(name) {
			return nil
		}
		key += "/"
		if _, err := s3fs.headObject(ctx, key); err != nil {
			if s3fs.IsNotExist(err) {
				// directory without a marker
				return nil
			}
			return errors.Errorf("error stating directory marker %q: %w", key, err)
		}
	}
	_, err = s3fs.client.CopyObject(ctx, &s3.CopyObjectInput{
		ACL:               s3fs.acl,
		Bucket:            aws.String(s3fs.bucket),
		BucketKeyEnabled:  bucketKeyEnabled(s3fs.bucketKeyEnabled),
		CopySource:        aws.String(s3fs.copySource(key)),
		Key:               aws.String(key),
		Metadata:          map[string]string{MetadataModTime: mtime.UTC().Format(time.RFC3339Nano)},
		MetadataDirective: types.MetadataDirectiveReplace,
	})
	if err != nil {
		return errors.Errorf("error updating metadata of %q: %w", key, err)
	}
	return nil
}

func (s3fs *S3FileSystem) IsNotExist(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrNotExist) {
		return true
	}
	var responseError *http.ResponseError
	if errors.As(err, &responseError) {
		if responseError.HTTPStatusCode() == 404 {
			return true
		}
	}
	var apiError smithy.APIError
	if errors.As(err, &apiError) {
		switch apiError.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

// Mkdir creates an empty directory marker.
func (s3fs *S3FileSystem) Mkdir(ctx context.Context, name string, perm os.FileMode) error {
	if isRoot(name) {
		return &os.PathError{Op: "mkdir", Path: name, Err: os.ErrExist}
	}
	key := s3fs.key(name)
	_, err := s3fs.client.PutObject(ctx, &s3.PutObjectInput{
		ACL:              s3fs.acl,
		Body:             bytes.NewReader([]byte{}),
		Bucket:           aws.String(s3fs.bucket),
		BucketKeyEnabled: bucketKeyEnabled(s3fs.bucketKeyEnabled),
		ContentLength:    aws.Int64(0),
		Key:              aws.String(key + "/"),
	})
	if err != nil {
		return errors.Errorf("error creating directory marker %q: %w", key+"/", err)
	}
	return nil
}

func (s3fs *S3FileSystem) Open(ctx context.Context, name string) (fs.File, error) {
	if isRoot(name) {
		return nil, errors.Errorf("cannot open directory %q", name)
	}
	key := s3fs.key(name)
	getObjectOutput, err := s3fs.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if s3fs.IsNotExist(err) {
			return nil, notExist("open", name)
		}
		return nil, errors.Errorf("error getting object %q: %w", key, err)
	}
	return NewS3File(name, getObjectOutput.Body, nil), nil
}

// OpenFile opens the object for reading, or for writing if flag contains os.O_WRONLY, os.O_RDWR, os.O_CREATE or os.O_TRUNC.
// Objects are always replaced as a whole when the file is closed, so os.O_APPEND is not supported.
func (s3fs *S3FileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (fs.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) == 0 {
		return s3fs.Open(ctx, name)
	}

	if flag&os.O_APPEND != 0 {
		return nil, errors.Errorf("cannot append to object %q", name)
	}

	if isRoot(name) {
		return nil, errors.Errorf("cannot write to directory %q", name)
	}
	key := s3fs.key(name)

	if flag&os.O_CREATE == 0 || flag&os.O_EXCL != 0 {
		fi, err := s3fs.Stat(ctx, name)
		if err != nil {
			if !s3fs.IsNotExist(err) {
				return nil, err
			}
			if flag&os.O_CREATE == 0 {
				return nil, notExist("open", name)
			}
		} else {
			if flag&os.O_EXCL != 0 {
				return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrExist}
			}
			if fi.IsDir() {
				return nil, errors.Errorf("cannot write to directory %q", name)
			}
		}
	}

	uploader := NewUploader(ctx, &UploaderInput{
		ACL:              s3fs.acl,
		Client:           s3fs.client,
		Bucket:           s3fs.bucket,
		BucketKeyEnabled: s3fs.bucketKeyEnabled,
		Key:              key,
		PartSize:         s3fs.partSize,
	})
	return NewS3File(name, nil, uploader), nil
}

// ReadDir returns the names of the objects and common prefixes directly under the directory.
func (s3fs *S3FileSystem) ReadDir(ctx context.Context, name string) ([]string, error) {
	prefix := s3fs.key(name)
	if prefix != "" {
		prefix += "/"
	}

	names := []string{}
	seen := map[string]struct{}{}
	add := func(n string) {
		if n == "" {
			return
		}
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}

	paginator := s3.NewListObjectsV2Paginator(s3fs.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s3fs.bucket),
		Delimiter: aws.String("/"),
		Prefix:    aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Errorf("error listing objects with prefix %q: %w", prefix, err)
		}
		for _, commonPrefix := range page.CommonPrefixes {
			add(strings.TrimSuffix(strings.TrimPrefix(aws.ToString(commonPrefix.Prefix), prefix), "/"))
		}
		for _, object := range page.Contents {
			// the directory marker itself trims to an empty name
			add(strings.TrimPrefix(aws.ToString(object.Key), prefix))
		}
	}

	if len(names) == 0 && prefix != "" {
		if _, err := s3fs.Stat(ctx, name); err != nil {
			return nil, err
		}
	}

	return names, nil
}

// Remove deletes the object, or the marker of an empty directory.
func (s3fs *S3FileSystem) Remove(ctx context.Context, name string) error {
	fi, err := s3fs.Stat(ctx, name)
	if err != nil {
		return err
	}
	key := s3fs.key(name)
	if fi.IsDir() {
		if isRoot(name) {
			return errors.Errorf("cannot remove root %q", s3fs.Root())
		}
		names, err := s3fs.ReadDir(ctx, name)
		if err != nil {
			return err
		}
		if len(names) > 0 {
			return &os.PathError{Op: "remove", Path: name, Err: fs.ErrDirNotEmpty}
		}
		key += "/"
	}
	_, err = s3fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.Errorf("error deleting object %q: %w", key, err)
	}
	return nil
}

// Rename copies the object to the new key and deletes the old key.
// Directories cannot be renamed.
func (s3fs *S3FileSystem) Rename(ctx context.Context, oldname string, newname string) error {
	fi, err := s3fs.Stat(ctx, oldname)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return errors.Errorf("cannot rename directory %q", oldname)
	}
	oldKey := s3fs.key(oldname)
	newKey := s3fs.key(newname)
	if isRoot(newname) {
		return errors.Errorf("cannot rename %q to root", oldname)
	}
	_, err = s3fs.client.CopyObject(ctx, &s3.CopyObjectInput{
		ACL:              s3fs.acl,
		Bucket:           aws.String(s3fs.bucket),
		BucketKeyEnabled: bucketKeyEnabled(s3fs.bucketKeyEnabled),
		CopySource:       aws.String(s3fs.copySource(oldKey)),
		Key:              aws.String(newKey),
	})
	if err != nil {
		return errors.Errorf("error copying object %q to %q: %w", oldKey, newKey, err)
	}
	_, err = s3fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(oldKey),
	})
	if err != nil {
		return errors.Errorf("error deleting object %q: %w", oldKey, err)
	}
	return nil
}

func (s3fs *S3FileSystem) Root() string {
	if len(s3fs.prefix) == 0 {
		return fmt.Sprintf("s3://%s", s3fs.bucket)
	}
	return fmt.Sprintf("s3://%s/%s", s3fs.bucket, s3fs.prefix)
}

// Stat returns the metadata of the object, of its directory marker, or of the common prefix, in that order.
func (s3fs *S3FileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	key := s3fs.key(name)
	base := path.Base("/" + name)

	if isRoot(name) {
		return NewS3FileInfo(base, time.Time{}, true, 0), nil
	}

	headObjectOutput, err := s3fs.headObject(ctx, key)
	if err == nil {
		return NewS3FileInfo(
			base,
			modTime(headObjectOutput.LastModified, headObjectOutput.Metadata),
			false,
			aws.ToInt64(headObjectOutput.ContentLength),
		), nil
	}
	if !s3fs.IsNotExist(err) {
		return nil, errors.Errorf("error getting metadata for %q: %w", key, err)
	}

	headObjectOutput, err = s3fs.headObject(ctx, key+"/")
	if err == nil {
		return NewS3FileInfo(
			base,
			modTime(headObjectOutput.LastModified, headObjectOutput.Metadata),
			true,
			0,
		), nil
	}
	if !s3fs.IsNotExist(err) {
		return nil, errors.Errorf("error getting metadata for %q: %w", key+"/", err)
	}

	listObjectsOutput, err := s3fs.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s3fs.bucket),
		MaxKeys: aws.Int32(1),
		Prefix:  aws.String(key + "/"),
	})
	if err != nil {
		return nil, errors.Errorf("error listing objects with prefix %q: %w", key+"/", err)
	}
	if len(listObjectsOutput.Contents) > 0 || len(listObjectsOutput.CommonPrefixes) > 0 {
		return NewS3FileInfo(base, time.Time{}, true, 0), nil
	}

	return nil, notExist("stat", name)
}

type NewS3FileSystemInput struct {
	ACL              types.ObjectCannedACL
	Bucket           string
	BucketKeyEnabled bool
	Client           API
	PartSize         int
	Prefix           string
}

func NewS3FileSystem(input *NewS3FileSystemInput) *S3FileSystem {
	return &S3FileSystem{
		client:           input.Client,
		bucket:           input.Bucket,
		prefix:           strings.Trim(input.Prefix, "/"),
		acl:              input.ACL,
		bucketKeyEnabled: input.BucketKeyEnabled,
		partSize:         input.PartSize,
	}
}
