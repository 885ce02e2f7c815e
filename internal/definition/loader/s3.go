package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/goliatone/go-qna/pkg/definition"
)

func loadS3(ctx context.Context, client definition.S3GetObjectAPI, location string) ([]byte, error) {
	if client == nil {
		return nil, errors.New("definition loader: s3 client is not configured")
	}
	loc, err := definition.ParseS3Location(location)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "NoSuchKey", "NoSuchBucket", "NotFound":
				return nil, fmt.Errorf("definition loader: %s: %w: %w", location, definition.ErrSourceNotFound, err)
			}
		}
		return nil, fmt.Errorf("definition loader: s3 get %s: %w", location, err)
	}
	defer func() {
		_ = out.Body.Close()
	}()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("definition loader: s3 read %s: %w", location, err)
	}
	return data, nil
}

func newDefaultS3Client(ctx context.Context, region string) (definition.S3GetObjectAPI, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("definition loader: load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}
