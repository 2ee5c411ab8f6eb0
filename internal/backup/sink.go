package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/manav03panchal/controleplus/internal/config"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/storage"
)

// Driver identifies a sink implementation.
type Driver string

const (
	// DriverFilesystem writes backups to a local directory.
	DriverFilesystem Driver = "fs"
	// DriverS3 writes backups to an S3 / MinIO compatible bucket.
	DriverS3 Driver = "s3"
)

// Entry describes one stored backup.
type Entry struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size_bytes"`
	Modified time.Time `json:"modified"`
}

// Sink stores backup documents by name.
type Sink interface {
	// Put stores data under name and returns where it was written.
	Put(ctx context.Context, name string, data []byte) (string, error)
	// Get returns the backup stored under name.
	Get(ctx context.Context, name string) ([]byte, error)
	// List returns the stored backups sorted by name.
	List(ctx context.Context) ([]Entry, error)
	Driver() Driver
}

// NewSink builds the sink selected by cfg.Driver.
func NewSink(ctx context.Context, cfg config.BackupConfig) (Sink, error) {
	switch Driver(cfg.Driver) {
	case DriverFilesystem, "":
		return NewFileSink(cfg.Dir)
	case DriverS3:
		return NewS3Sink(ctx, S3Options{
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown backup driver %q", cfg.Driver)
	}
}

// DefaultDir returns the backup directory under the XDG data directory.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, config.AppName, "backups")
}

// FileSink writes backups into a directory with the atomic temp file and
// rename pattern.
type FileSink struct {
	dir string
}

// NewFileSink returns a sink rooted at dir, creating it if needed.
// An empty dir uses DefaultDir.
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.NewSystemErrorWithOp("create backup directory", "cannot create "+dir, err)
	}
	return &FileSink{dir: dir}, nil
}

// Dir returns the sink directory.
func (s *FileSink) Dir() string { return s.dir }

func (s *FileSink) Driver() Driver { return DriverFilesystem }

func (s *FileSink) Put(_ context.Context, name string, data []byte) (string, error) {
	path, err := s.pathFor(name)
	if err != nil {
		return "", err
	}
	if err := storage.SafeWrite(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (s *FileSink) Get(_ context.Context, name string) ([]byte, error) {
	path, err := s.pathFor(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("backup", name)
		}
		return nil, err
	}
	return data, nil
}

func (s *FileSink) List(_ context.Context) ([]Entry, error) {
	items, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), ".json") {
			continue
		}
		info, err := item.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: item.Name(), Size: info.Size(), Modified: info.ModTime()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// pathFor keeps name inside the sink directory.
func (s *FileSink) pathFor(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

func checkName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.NewUserError("backup name is empty", "")
	case strings.Contains(name, ".."), strings.ContainsAny(name, `/\`):
		return errors.NewUserErrorWithField("name", name, "invalid backup name",
			"Use a plain file name such as "+Filename(time.Now()))
	}
	return nil
}
