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
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"gitlab.com/tozd/go/errors"
)

// MinimumPartSize is the smallest part S3 accepts in a multipart upload, except for the last part.
const MinimumPartSize = 5 * 1024 * 1024

// bucketKeyEnabled returns nil if not enabled.
func bucketKeyEnabled(enabled bool) *bool {
	if enabled {
		return aws.Bool(true)
	}
	return nil
}

// Uploader buffers writes to an object.
// Small objects are sent with a single PutObject call when the uploader is closed.
// Once the buffer reaches the part size, a multipart upload is started and each full buffer is sent as a part.
type Uploader struct {
	ctx context.Context
	//
	acl              types.ObjectCannedACL
	client           API
	bucket           *string
	bucketKeyEnabled bool
	key              *string
	partSize         int
	//
	buffer         *bytes.Buffer
	uploadID       *string
	lastPartNumber int32
	etags          map[int32]*string
	closed         bool
}

// abort aborts the multipart upload, if one was started, and returns err.
func (u *Uploader) abort(err error) error {
	u.closed = true
	if u.uploadID != nil {
		_, _ = u.client.AbortMultipartUpload(u.ctx, &s3.AbortMultipartUploadInput{
			Bucket:   u.bucket,
			Key:      u.key,
			UploadId: u.uploadID,
		}) // silently abort upload
	}
	return err
}

func (u *Uploader) uploadPart() error {
	// a readseeker is needed to rewind the reader if the client retries
	reader := bytes.NewReader(u.buffer.Bytes())
	partNumber := u.lastPartNumber + 1
	uploadPartOutput, err := u.client.UploadPart(u.ctx, &s3.UploadPartInput{
		Body:          reader,
		Bucket:        u.bucket,
		Key:           u.key,
		PartNumber:    aws.Int32(partNumber),
		UploadId:      u.uploadID,
		ContentLength: aws.Int64(int64(reader.Len())),
	})
	if err != nil {
		return errors.Errorf("error uploading part %d of %q: %w", partNumber, aws.ToString(u.key), err)
	}

	// save etag
	u.etags[partNumber] = uploadPartOutput.ETag

	// increment part number
	u.lastPartNumber = partNumber

	// reset buffer
	u.buffer = bytes.NewBuffer([]byte{})

	return nil
}

func (u *Uploader) Close() error {
	if u.closed {
		return io.ErrUnexpectedEOF
	}

	u.closed = true

	// if upload hasn't started.
	if u.uploadID == nil {
		reader := bytes.NewReader(u.buffer.Bytes())
		_, err := u.client.PutObject(u.ctx, &s3.PutObjectInput{
			ACL:              u.acl,
			Body:             reader,
			Bucket:           u.bucket,
			BucketKeyEnabled: bucketKeyEnabled(u.bucketKeyEnabled),
			ContentLength:    aws.Int64(int64(reader.Len())),
			Key:              u.key,
		})
		if err != nil {
			return errors.Errorf("error putting object %q: %w", aws.ToString(u.key), err)
		}
		u.buffer = bytes.NewBuffer([]byte{})
		return nil
	}

	// upload remaining bytes
	if u.buffer.Len() > 0 {
		if err := u.uploadPart(); err != nil {
			return u.abort(err)
		}
	}

	// build list of completed parts
	completedParts := []types.CompletedPart{}
	for i := int32(1); i <= u.lastPartNumber; i++ {
		completedParts = append(completedParts, types.CompletedPart{
			ETag:       u.etags[i],
			PartNumber: aws.Int32(i),
		})
	}

	_, err := u.client.CompleteMultipartUpload(u.ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   u.bucket,
		Key:      u.key,
		UploadId: u.uploadID,
		MultipartUpload: &types.CompletedMultipartUpload{
			Parts: completedParts,
		},
	})
	if err != nil {
		return u.abort(errors.Errorf("error completing multipart upload of %q: %w", aws.ToString(u.key), err))
	}
	return nil
}

func (u *Uploader) Write(p []byte) (int, error) {
	if u.closed {
		return 0, io.ErrUnexpectedEOF
	}

	// write to internal buffer
	n, err := u.buffer.Write(p)
	if err != nil {
		return 0, err
	}

	for u.buffer.Len() >= u.partSize {
		// If multipart upload hasn't been started yet, then create it.
		if u.uploadID == nil {
			createMultipartUploadOutput, err := u.client.CreateMultipartUpload(u.ctx, &s3.CreateMultipartUploadInput{
				ACL:              u.acl,
				Bucket:           u.bucket,
				BucketKeyEnabled: bucketKeyEnabled(u.bucketKeyEnabled),
				Key:              u.key,
			})
			if err != nil {
				return 0, errors.Errorf("error creating multipart upload of %q: %w", aws.ToString(u.key), err)
			}
			u.uploadID = createMultipartUploadOutput.UploadId
		}

		// keep the bytes past the part size for the next part
		remainder := append([]byte{}, u.buffer.Bytes()[u.partSize:]...)
		u.buffer.Truncate(u.partSize)
		if err := u.uploadPart(); err != nil {
			return 0, u.abort(err)
		}
		u.buffer.Write(remainder)
	}

	// return number of bytes written
	return n, nil
}

type UploaderInput struct {
	ACL              types.ObjectCannedACL
	Client           API
	Bucket           string
	BucketKeyEnabled bool
	Key              string
	PartSize         int
}

func NewUploader(ctx context.Context, input *UploaderInput) *Uploader {
	partSize := input.PartSize
	if partSize <= 0 {
		partSize = MinimumPartSize
	}
	return &Uploader{
		ctx: ctx,
		//
		acl:              input.ACL,
		client:           input.Client,
		bucket:           aws.String(input.Bucket),
		bucketKeyEnabled: input.BucketKeyEnabled,
		key:              aws.String(input.Key),
		partSize:         partSize,
		//
		buffer:         bytes.NewBuffer([]byte{}),
		uploadID:       nil,
		lastPartNumber: int32(0),
		etags:          map[int32]*string{},
		closed:         false,
	}
}
