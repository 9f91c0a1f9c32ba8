package collect

import (
	"benritz/bondyield/internal/types"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/parquet-go/parquet-go"
)

var (
	ErrInvalidRow = fmt.Errorf("invalid row")
)

// CollectedQuote pairs a parsed bond with the first error hit while
// parsing or completing it.
type CollectedQuote struct {
	Bond *types.Bond
	Err  error
}

func (c *CollectedQuote) SetError(err error) {
	if c.Err == nil {
		c.Err = err
	}
}

// QuoteBatch is the result of one collection run: the bonds that parsed
// and completed, and the rows that failed.
type QuoteBatch struct {
	Bonds     []*types.Bond
	Failures  []*CollectedQuote
	Source    string
	QuoteDate time.Time
}

func NewQuoteBatch(source string, date time.Time) *QuoteBatch {
	return &QuoteBatch{
		Source:    source,
		QuoteDate: date,
		Bonds:     []*types.Bond{},
		Failures:  []*CollectedQuote{},
	}
}

func (q *QuoteBatch) Add(cq *CollectedQuote) {
	if cq.Err == nil {
		q.Bonds = append(q.Bonds, cq.Bond)
	} else {
		q.Failures = append(q.Failures, cq)
	}
}

type Collector interface {
	Collect(ctx context.Context, date time.Time) (*QuoteBatch, error)
	Source() string
}

func writeBonds(bonds []*types.Bond, output io.Writer) error {
	writer := parquet.NewGenericWriter[*types.Bond](output)
	defer writer.Close()

	if _, err := writer.Write(bonds); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	return nil
}

// datePartition returns the yyyy/mm/dd path elements for a batch.
func datePartition(date time.Time) (string, string, string) {
	utc := date.UTC()
	return fmt.Sprintf("%04d", utc.Year()),
		fmt.Sprintf("%02d", utc.Month()),
		fmt.Sprintf("%02d", utc.Day())
}

// StoreToPath writes the batch as a parquet file under a date-partitioned
// directory tree and returns the file path.
func StoreToPath(ctx context.Context, batch *QuoteBatch, basepath string) (string, error) {
	year, month, day := datePartition(batch.QuoteDate)

	dir := filepath.Join(basepath, year, month, day)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	outPath := filepath.Join(dir, batch.Source+".parquet")

	file, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := writeBonds(batch.Bonds, file); err != nil {
		return "", err
	}

	return outPath, nil
}

type S3Path struct {
	Bucket string
	Prefix string
}

// ParseS3 splits an s3://bucket/prefix destination. A non-s3 path returns
// an error so callers can fall back to local storage.
func ParseS3(path string) (*S3Path, error) {
	if !strings.HasPrefix(path, "s3://") {
		return nil, fmt.Errorf("path must start with s3://")
	}

	path = strings.TrimPrefix(path, "s3://")
	parts := strings.SplitN(path, "/", 2)

	dst := &S3Path{Bucket: parts[0]}

	if len(parts) > 1 {
		dst.Prefix = strings.TrimSuffix(parts[1], "/")
	}

	return dst, nil
}

// StoreToS3 writes the batch as a parquet object under the destination
// bucket/prefix with the same date partitioning as StoreToPath.
func StoreToS3(ctx context.Context, batch *QuoteBatch, s3Client *s3.Client, dst *S3Path) (string, error) {
	tmp, err := os.CreateTemp("", "bond-*.parquet")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	defer tmp.Close()
	defer os.Remove(tmp.Name())

	if err := writeBonds(batch.Bonds, tmp); err != nil {
		return "", err
	}

	if _, err := tmp.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to seek to start of file: %w", err)
	}

	year, month, day := datePartition(batch.QuoteDate)

	key := fmt.Sprintf("%s/%s/%s/%s.parquet", year, month, day, batch.Source)
	if dst.Prefix != "" {
		key = fmt.Sprintf("%s/%s", dst.Prefix, key)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(dst.Bucket),
		Key:    aws.String(key),
		Body:   tmp,
	}

	if _, err := s3Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file to s3://%s/%s: %w", dst.Bucket, key, err)
	}

	return fmt.Sprintf("s3://%s/%s", dst.Bucket, key), nil
}
