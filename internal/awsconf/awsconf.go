package awsconf

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Load builds the AWS config shared by the Textract, Bedrock and S3
// clients: generous HTTP timeouts for long model calls and a small
// number of retries for transient network errors. These are the only
// resilience mechanisms at this layer.
func Load(ctx context.Context) (aws.Config, error) {
	region := os.Getenv("AWS_DEFAULT_REGION")
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithRetryMaxAttempts(3),
		config.WithHTTPClient(&http.Client{Timeout: 300 * time.Second}),
	}

	// Static credentials when provided, otherwise the default chain.
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	return config.LoadDefaultConfig(ctx, opts...)
}
