package source_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/joeydtaylor/respira/pkg/internal/source"
)

// pagedLister serves pages of keys, one page per call.
type pagedLister struct {
	pages    [][]string
	prefixes []string
	err      error
}

func (p *pagedLister) ListObjectsV2(ctx context.Context, in *s3api.ListObjectsV2Input, _ ...func(*s3api.Options)) (*s3api.ListObjectsV2Output, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.prefixes = append(p.prefixes, aws.ToString(in.Prefix))
	page := len(p.prefixes) - 1
	out := &s3api.ListObjectsV2Output{}
	for _, k := range p.pages[page] {
		out.Contents = append(out.Contents, s3types.Object{Key: aws.String(k)})
	}
	if page < len(p.pages)-1 {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String("next")
	}
	return out, nil
}

func TestIsSignalKey(t *testing.T) {
	cases := map[string]bool{
		"a/b.csv":         true,
		"a/b.TXT":         true,
		"a/b.parquet":     true,
		"a/b.parquet.zst": true,
		"a/b.rsp.gz":      true,
		"a/b.bin":         true,
		"a/b.json":        false,
		"a/b.gz":          false,
		"a/dir/":          false,
	}
	for key, want := range cases {
		if got := source.IsSignalKey(key); got != want {
			t.Errorf("IsSignalKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestListSignalKeysPages(t *testing.T) {
	lister := &pagedLister{pages: [][]string{
		{"day1/a.csv", "day1/readme.md"},
		{"day1/b.parquet", "day1/c.rsp.zst"},
	}}
	keys, err := source.ListSignalKeys(context.Background(), lister, "bucket", "day1/")
	if err != nil {
		t.Fatalf("ListSignalKeys: %v", err)
	}
	want := []string{"day1/a.csv", "day1/b.parquet", "day1/c.rsp.zst"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Fatalf("keys: got %v, want %v", keys, want)
	}
	if len(lister.prefixes) != 2 || lister.prefixes[0] != "day1/" {
		t.Fatalf("unexpected calls %v", lister.prefixes)
	}
}

func TestListSignalKeysError(t *testing.T) {
	lister := &pagedLister{err: errors.New("access denied")}
	if _, err := source.ListSignalKeys(context.Background(), lister, "bucket", ""); err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("expected listing error, got %v", err)
	}
	if _, err := source.ListSignalKeys(context.Background(), nil, "bucket", ""); err == nil {
		t.Fatal("expected error without client")
	}
}

func TestParseS3Prefix(t *testing.T) {
	bucket, prefix, err := source.ParseS3Prefix("s3://recordings/2024/")
	if err != nil || bucket != "recordings" || prefix != "2024/" {
		t.Fatalf("got %q %q %v", bucket, prefix, err)
	}
	bucket, prefix, err = source.ParseS3Prefix("s3://recordings/")
	if err != nil || bucket != "recordings" || prefix != "" {
		t.Fatalf("got %q %q %v", bucket, prefix, err)
	}
	if _, _, err := source.ParseS3Prefix("s3:///x/"); err == nil {
		t.Fatal("expected error for missing bucket")
	}
	if !source.IsS3Prefix("s3://recordings/2024/") || source.IsS3Prefix("s3://recordings/a.csv") {
		t.Fatal("IsS3Prefix misclassified")
	}
}
