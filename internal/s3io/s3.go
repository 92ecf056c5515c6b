// Package s3io handles the storage and presigned download of export files.
package s3io

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Presigner defines the interface for presigning S3 GET requests.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// PresignGet generates a presigned URL for downloading an export object.
func PresignGet(ctx context.Context, p Presigner, bucket, key string, ttl time.Duration) (string, time.Duration, error) {
	input := &s3.GetObjectInput{
		Bucket:                     aws.String(bucket),
		Key:                        aws.String(key),
		ResponseContentType:        aws.String(ContentTypeXLSX),
		ResponseContentDisposition: aws.String(`attachment; filename="pericias_export.xlsx"`),
	}
	req, err := p.PresignGetObject(ctx, input, func(o *s3.PresignOptions) { o.Expires = ttl })
	if err != nil {
		return "", 0, err
	}
	return req.URL, ttl, nil
}
