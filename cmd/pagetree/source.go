package main

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vango-dev/pagetree/internal/config"
	"github.com/vango-dev/pagetree/internal/errors"
	"github.com/vango-dev/pagetree/pkg/pagesource"
	"github.com/vango-dev/pagetree/pkg/routetree"
)

const defaultRegion = "us-east-1"

// loadConfig reads pagetree.json from dir, falling back to defaults.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSource returns the page source selected by the configuration.
func newSource(cfg *config.Config) pagesource.Source {
	opts := pagesource.ScanOptions{
		Extension: cfg.Pages.Extension,
		Prefix:    cfg.Pages.Root,
	}

	if cfg.Source.Type == config.SourceS3 {
		s3cfg := cfg.Source.S3
		return pagesource.NewS3Source(newS3Client(s3cfg), s3cfg.Bucket, s3cfg.Prefix, opts)
	}
	return pagesource.NewScanner(os.DirFS(cfg.PagesPath()), ".", opts)
}

func newS3Client(cfg config.S3Config) *s3.Client {
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	opts := s3.Options{
		Region:       region,
		UsePathStyle: cfg.UsePathStyle,
		Credentials:  envCredentials(os.LookupEnv),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// envCredentials reads static credentials from the standard AWS variables.
// Without them requests are sent unsigned, which suits public buckets.
func envCredentials(lookup func(string) (string, bool)) aws.CredentialsProvider {
	id, _ := lookup("AWS_ACCESS_KEY_ID")
	secret, _ := lookup("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.AnonymousCredentials{}
	}
	token, _ := lookup("AWS_SESSION_TOKEN")

	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    token,
			Source:          "EnvironmentVariables",
		}, nil
	})
}

// scanPages runs the configured source and converts failures to coded errors.
func scanPages(ctx context.Context, cfg *config.Config) ([]routetree.PageEntry, error) {
	entries, err := newSource(cfg).Scan(ctx)
	if err != nil {
		return nil, scanError(cfg, err)
	}
	return entries, nil
}

func scanError(cfg *config.Config, err error) error {
	switch {
	case stderrors.Is(err, pagesource.ErrNoPagesDir):
		return errors.New("E301").
			WithDetail(cfg.PagesPath()).
			WithSuggestion("Set pages.dir in " + config.ConfigFileName + " or PAGETREE_PAGES_DIR").
			Wrap(err)
	case cfg.Source.Type == config.SourceS3:
		return errors.New("E303").
			WithDetailf("s3://%s/%s", cfg.Source.S3.Bucket, cfg.Source.S3.Prefix).
			Wrap(err)
	default:
		return errors.New("E302").Wrap(err)
	}
}
