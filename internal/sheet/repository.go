package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/repository"
)

// FileRepository persists the master table as a single xlsx or csv file.
// The version of the file is derived from its modification time and size.
type FileRepository struct {
	path   string
	format Format
	logger *slog.Logger
}

// NewFileRepository creates a repository for path. The format comes from the
// file extension.
func NewFileRepository(path string, logger *slog.Logger) (*FileRepository, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileRepository{path: path, format: f, logger: logger}, nil
}

// Path returns the file the repository reads and writes.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the whole file.
func (r *FileRepository) Load(ctx context.Context) (inventory.RawTable, repository.Version, error) {
	if err := ctx.Err(); err != nil {
		return inventory.RawTable{}, "", err
	}

	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return inventory.RawTable{}, "", fmt.Errorf("%w: %s", repository.ErrSourceNotFound, r.path)
		}
		return inventory.RawTable{}, "", &repository.MalformedTableError{Path: r.path, Reason: "cannot open file", Err: err}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return inventory.RawTable{}, "", fmt.Errorf("stat %s: %w", r.path, err)
	}
	if info.IsDir() {
		return inventory.RawTable{}, "", &repository.MalformedTableError{Path: r.path, Reason: "path is a directory"}
	}

	table, err := Decode(file, r.format)
	if err != nil {
		return inventory.RawTable{}, "", &repository.MalformedTableError{Path: r.path, Reason: "cannot decode " + string(r.format), Err: err}
	}

	r.logger.Debug("source file read", "path", r.path, "rows", table.Len())
	return table, versionOf(info), nil
}

// Save writes the table to a temporary file next to the target and renames
// it over the target, keeping the permissions of the file it replaces.
func (r *FileRepository) Save(ctx context.Context, table inventory.RawTable) (repository.Version, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(r.path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return "", fmt.Errorf("setting mode of temp file: %w", err)
	}
	if err := Encode(tmp, table, r.format, DefaultSheetName); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encoding %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return "", fmt.Errorf("replacing %s: %w", r.path, err)
	}

	return r.Version(ctx)
}

// Version stats the file.
func (r *FileRepository) Version(ctx context.Context) (repository.Version, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", repository.ErrSourceNotFound, r.path)
		}
		return "", fmt.Errorf("stat %s: %w", r.path, err)
	}
	return versionOf(info), nil
}

func versionOf(info fs.FileInfo) repository.Version {
	return repository.Version(fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size()))
}

// RouteSheetName is the worksheet name of route exports.
const RouteSheetName = "Rota"

// EncodeRoute writes the routed items of exp in canonical column order.
func EncodeRoute(w io.Writer, exp inventory.RouteExport, f Format) error {
	return Encode(w, inventory.ToTable(exp.Items), f, RouteSheetName)
}

// WriteRoute writes a route export into dir as <name>.<format> and returns
// the file path.
func WriteRoute(dir string, exp inventory.RouteExport, f Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, exp.Name+f.Ext())
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := EncodeRoute(file, exp, f); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
