package pagesource

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vango-dev/pagetree/pkg/routetree"
)

// S3Source discovers page objects stored under a bucket prefix.
//
// Example usage:
//
//	client := s3.New(s3.Options{Region: "eu-central-1", Credentials: creds})
//	src := pagesource.NewS3Source(client, "widget-pages", "pages/", pagesource.ScanOptions{})
//	entries, err := src.Scan(ctx)
type S3Source struct {
	client   s3.ListObjectsV2APIClient
	bucket   string
	prefix   string
	opts     ScanOptions
	pageSize int32
}

// NewS3Source creates a source listing bucket/prefix. The prefix plays the
// role of the pages directory: keys are made relative to it.
func NewS3Source(client s3.ListObjectsV2APIClient, bucket, prefix string, opts ScanOptions) *S3Source {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Source{
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		opts:     opts.withDefaults(),
		pageSize: 1000,
	}
}

// WithPageSize sets the ListObjectsV2 page size.
func (s *S3Source) WithPageSize(n int32) *S3Source {
	s.pageSize = n
	return s
}

// Scan lists every page object under the prefix.
func (s *S3Source) Scan(ctx context.Context) ([]routetree.PageEntry, error) {
	origin := "s3://" + s.bucket
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.prefix),
		MaxKeys: aws.Int32(s.pageSize),
	})

	var entries []routetree.PageEntry
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing s3://%s/%s: %w", s.bucket, s.prefix, err)
		}
		for _, obj := range out.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if !s.opts.isPage(key) {
				continue
			}
			page := &Page{
				Key:    key,
				Origin: origin,
				Size:   aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				page.ModTime = *obj.LastModified
			}
			entries = append(entries, s.opts.entry(page))
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RawPath < entries[j].RawPath
	})
	return entries, nil
}
