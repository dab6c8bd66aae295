package component

import (
	"context"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/squirrel-ui/squirrel/internal/errors"
)

// Source lists the identifiers of component sources, typically file
// names.
type Source interface {
	List(ctx context.Context) ([]string, error)
}

// DirSource lists the regular files of a directory.
type DirSource struct {
	Dir string
}

// List implements Source.
func (s DirSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.New(errors.CodeSourceListing).
			WithDetail("cannot read " + s.Dir).
			Wrap(err)
	}
	return fileNames(ctx, entries)
}

// FSSource lists the regular files of a directory within an fs.FS.
type FSSource struct {
	FS  fs.FS
	Dir string
}

// List implements Source.
func (s FSSource) List(ctx context.Context) ([]string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(s.FS, dir)
	if err != nil {
		return nil, errors.New(errors.CodeSourceListing).
			WithDetail("cannot read " + dir).
			Wrap(err)
	}
	return fileNames(ctx, entries)
}

func fileNames(ctx context.Context, entries []fs.DirEntry) ([]string, error) {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// S3ListAPI is the subset of the S3 client used by S3Source.
type S3ListAPI interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Source lists the objects directly under a bucket prefix. Keys in
// nested "directories" are skipped.
type S3Source struct {
	Client S3ListAPI
	Bucket string
	Prefix string
}

// List implements Source.
func (s S3Source) List(ctx context.Context) ([]string, error) {
	prefix := s.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	p := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(prefix),
	})

	var names []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.New(errors.CodeSourceListing).
				WithDetail("cannot list s3://" + s.Bucket + "/" + prefix).
				Wrap(err)
		}
		for _, obj := range page.Contents {
			rel := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if rel == "" || strings.Contains(rel, "/") {
				continue
			}
			names = append(names, rel)
		}
	}
	return names, nil
}

// SliceSource is a fixed list of identifiers.
type SliceSource []string

// List implements Source.
func (s SliceSource) List(context.Context) ([]string, error) {
	out := make([]string, len(s))
	copy(out, s)
	return out, nil
}

// ScanOptions controls how identifiers become component names.
type ScanOptions struct {
	// Extensions are the accepted file extensions, including the dot.
	// Empty accepts any extension.
	Extensions []string

	// Exclude holds path.Match patterns for identifiers to skip.
	Exclude []string

	// Suffix, when set, keeps only identifiers whose stem ends with it and
	// strips it, e.g. "_builder" turns "slider_builder.go" into "slider"
	// and skips "register.go".
	Suffix string
}

// GoScanOptions returns options for a directory of Go builder files:
// tests and generated files are skipped.
func GoScanOptions() ScanOptions {
	return ScanOptions{
		Extensions: []string{".go"},
		Exclude:    []string{"*_test.go", "*_gen.go", "doc.go"},
	}
}

// Scan lists src and returns the sorted, de-duplicated component names.
func Scan(ctx context.Context, src Source, opts ScanOptions) ([]string, error) {
	ids, err := src.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(ids))
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := opts.name(id)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// name derives the component name for a source identifier.
func (o ScanOptions) name(id string) (string, bool) {
	base := path.Base(strings.ReplaceAll(id, "\\", "/"))
	if base == "" || base == "." || base == "/" || strings.HasPrefix(base, ".") {
		return "", false
	}
	for _, pattern := range o.Exclude {
		if ok, _ := path.Match(pattern, base); ok {
			return "", false
		}
	}
	ext := path.Ext(base)
	if len(o.Extensions) > 0 && !hasExtension(o.Extensions, ext) {
		return "", false
	}
	name := strings.TrimSuffix(base, ext)
	if o.Suffix != "" {
		if !strings.HasSuffix(name, o.Suffix) {
			return "", false
		}
		name = strings.TrimSuffix(name, o.Suffix)
	}
	if name == "" {
		return "", false
	}
	return name, true
}

func hasExtension(list []string, ext string) bool {
	for _, e := range list {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
