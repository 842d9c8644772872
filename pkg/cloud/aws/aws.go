package aws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"multicloud/internal/config"
	"multicloud/internal/provider/registry"
	"multicloud/internal/runner"
	"multicloud/pkg/cloud"
	"multicloud/pkg/provision"
)

func init() {
	registry.RegisterProvider("aws", registry.ProviderRegistration{
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// AWS needs no prior tool configuration: credentials and region resolve from
// the environment, shared config files, or instance metadata
func isConfigured(cfg *config.Config) bool {
	return true
}

func initialize(ctx context.Context, settings cloud.Settings, run runner.Runner, logger *slog.Logger) (cloud.Platform, error) {
	return NewAWSPlatform(ctx, settings.Region, logger)
}

type AWSPlatform struct {
	awsCfg   aws.Config
	s3Client *s3.Client
	region   string
	logger   *slog.Logger
}

var _ cloud.Platform = (*AWSPlatform)(nil)

func NewAWSPlatform(ctx context.Context, region string, logger *slog.Logger) (*AWSPlatform, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &AWSPlatform{
		awsCfg:   awsCfg,
		s3Client: s3.NewFromConfig(awsCfg),
		region:   awsCfg.Region,
		logger:   logger,
	}, nil
}

func (p *AWSPlatform) ProviderName() provision.Provider {
	return provision.AWS
}

func (p *AWSPlatform) CheckCredentials(ctx context.Context) error {
	creds, err := p.awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return &provision.AuthenticationError{Provider: provision.AWS, Err: err}
	}
	if !creds.HasKeys() {
		return &provision.AuthenticationError{
			Provider: provision.AWS,
			Err:      errors.New("no access key material resolved from the credential chain"),
		}
	}

	p.logger.Debug("AWS credentials resolved", "source", creds.Source)
	return nil
}

func (p *AWSPlatform) EnsureStateBackend(ctx context.Context, name string) error {
	_, err := p.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(name)})
	if err == nil {
		p.logger.Info("State bucket already exists", "bucket", name)
		return nil
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(name)}
	// us-east-1 rejects an explicit location constraint
	if p.region != "" && p.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(p.region),
		}
	}

	_, err = p.s3Client.CreateBucket(ctx, input)
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("creating state bucket %s: %w", name, err)
	}

	p.logger.Info("Created state bucket", "bucket", name, "region", p.region)
	return nil
}

func (p *AWSPlatform) Close() error {
	// The S3 client holds no connections that need closing
	return nil
}
