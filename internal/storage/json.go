package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/shhac/cavern/internal/domain"
	apperrors "github.com/shhac/cavern/internal/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	connectionsFile = "connections.json"
	fileVersion     = 1
	filePermission  = 0600
	dirPermission   = 0755
)

// Top-level members of connections.json
const (
	keyVersion     = "version"
	keyConnections = "connections"
)

// JSONRepository implements Repository using a single JSON file. The file is
// a google.protobuf.Struct in its canonical JSON form; each connection is the
// variant produced by ConnectionSettings.ToVariant.
type JSONRepository struct {
	basePath string
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewJSONRepository creates a new JSON-based storage repository
func NewJSONRepository(basePath string, logger *slog.Logger) *JSONRepository {
	return &JSONRepository{
		basePath: basePath,
		logger:   logger,
	}
}

// SaveConnection stores conn, replacing any connection with the same ID
func (r *JSONRepository) SaveConnection(conn *domain.ConnectionSettings) error {
	if conn.ID == "" {
		return apperrors.ValidationError{Field: "ID", Message: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBaseDir(); err != nil {
		return fmt.Errorf("ensure base directory: %w", err)
	}

	conns, err := r.load()
	if err != nil {
		return fmt.Errorf("load connections: %w", err)
	}

	if i := indexOf(conns, conn.ID); i >= 0 {
		conns[i] = conn.Clone()
	} else {
		conns = append(conns, conn.Clone())
	}

	if err := r.save(conns); err != nil {
		return fmt.Errorf("save connections: %w", err)
	}

	r.logger.Debug("saved connection",
		slog.String("id", conn.ID),
		slog.String("name", conn.Name))

	return nil
}

// GetConnection loads a single connection by ID
func (r *JSONRepository) GetConnection(id string) (*domain.ConnectionSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("load connections: %w", err)
	}

	i := indexOf(conns, id)
	if i < 0 {
		return nil, fmt.Errorf("connection %q: %w", id, apperrors.ErrNotFound)
	}
	return conns[i], nil
}

// ListConnections returns every stored connection
func (r *JSONRepository) ListConnections() ([]*domain.ConnectionSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("load connections: %w", err)
	}

	r.logger.Debug("listed connections", slog.Int("count", len(conns)))
	return conns, nil
}

// DeleteConnection removes a connection by ID
func (r *JSONRepository) DeleteConnection(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, err := r.load()
	if err != nil {
		return fmt.Errorf("load connections: %w", err)
	}

	i := indexOf(conns, id)
	if i < 0 {
		return fmt.Errorf("connection %q: %w", id, apperrors.ErrNotFound)
	}
	conns = append(conns[:i], conns[i+1:]...)

	if err := r.save(conns); err != nil {
		return fmt.Errorf("save connections: %w", err)
	}

	r.logger.Debug("deleted connection", slog.String("id", id))
	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file
// in the same directory, syncing, then renaming over the target path.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()

	// Clean up temp file on any failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// Helper methods

func (r *JSONRepository) ensureBaseDir() error {
	if err := os.MkdirAll(r.basePath, dirPermission); err != nil {
		return fmt.Errorf("create base directory: %w", err)
	}
	return nil
}

func (r *JSONRepository) connectionsPath() string {
	return filepath.Join(r.basePath, connectionsFile)
}

// load reads all connections. Entries that are not objects are skipped;
// members missing from an entry take their defaults.
func (r *JSONRepository) load() ([]*domain.ConnectionSettings, error) {
	path := r.connectionsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet, return empty list
			return []*domain.ConnectionSettings{}, nil
		}
		return nil, fmt.Errorf("read connections file: %w", err)
	}

	var doc structpb.Struct
	if err := protojson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal connections: %w", err)
	}

	entries := doc.GetFields()[keyConnections].GetListValue().GetValues()
	conns := make([]*domain.ConnectionSettings, 0, len(entries))
	for i, entry := range entries {
		obj := entry.GetStructValue()
		if obj == nil {
			r.logger.Warn("skipping malformed connection entry", slog.Int("index", i))
			continue
		}
		conn := &domain.ConnectionSettings{}
		conn.FromVariant(domain.Variant(obj.AsMap()))
		conns = append(conns, conn)
	}
	return conns, nil
}

func (r *JSONRepository) save(conns []*domain.ConnectionSettings) error {
	list := make([]any, 0, len(conns))
	for _, c := range conns {
		list = append(list, plainMap(c.ToVariant()))
	}

	doc, err := structpb.NewStruct(map[string]any{
		keyVersion:     fileVersion,
		keyConnections: list,
	})
	if err != nil {
		return fmt.Errorf("encode connections: %w", err)
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal connections: %w", err)
	}

	if err := atomicWriteFile(r.connectionsPath(), data, filePermission); err != nil {
		return fmt.Errorf("write connections file: %w", err)
	}
	return nil
}

// plainMap converts nested variants into the map[string]any form structpb accepts.
func plainMap(v domain.Variant) map[string]any {
	m := make(map[string]any, len(v))
	for k, val := range v {
		if nested, ok := val.(domain.Variant); ok {
			m[k] = plainMap(nested)
			continue
		}
		m[k] = val
	}
	return m
}

func indexOf(conns []*domain.ConnectionSettings, id string) int {
	for i, c := range conns {
		if c.ID == id {
			return i
		}
	}
	return -1
}
