// Package assets resolves and decodes the external model files the
// scenarios reference.
package assets

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

var (
	ErrUnsupportedFormat = errors.New("assets: unsupported model format")
	ErrInvalidFBX        = errors.New("assets: not an FBX file")
)

// Model is the decoded summary of a model or animation file. The renderer
// only needs to know that the asset exists and what it contains.
type Model struct {
	Path       string
	Format     string
	Size       int
	Meshes     int
	Animations []string
	Version    uint32
}

// Loader loads a model file. Implementations must honour ctx cancellation
// and be safe to call from several goroutines.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}

// FileLoader reads models from the first root that contains the path.
type FileLoader struct {
	Roots []string
}

func NewFileLoader(roots ...string) *FileLoader {
	return &FileLoader{Roots: roots}
}

func (l *FileLoader) Load(ctx context.Context, path string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, resolved, err := l.read(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := &Model{Path: resolved, Size: len(data)}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		m.Format = "gltf"
		err = decodeGLTF(data, m)
	case ".fbx":
		m.Format = "fbx"
		err = decodeFBX(data, m)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return m, nil
}

func (l *FileLoader) read(path string) ([]byte, string, error) {
	if path == "" {
		return nil, "", fmt.Errorf("assets: empty model path")
	}
	tried := []string{path}
	if !filepath.IsAbs(path) {
		for _, root := range l.Roots {
			tried = append(tried, filepath.Join(root, path), filepath.Join(root, filepath.Base(path)))
		}
	}
	var firstErr error
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err == nil {
			return b, p, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, "", fmt.Errorf("assets: load %s: %w", path, firstErr)
}

func decodeGLTF(data []byte, m *Model) error {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return err
	}
	m.Meshes = len(doc.Meshes)
	for _, anim := range doc.Animations {
		m.Animations = append(m.Animations, anim.Name)
	}
	return nil
}

var (
	fbxBinaryMagic = []byte("Kaydara FBX Binary  \x00")
	fbxASCIIMagic  = []byte("; FBX ")
)

// decodeFBX only validates the header; mesh and clip data stay opaque.
func decodeFBX(data []byte, m *Model) error {
	switch {
	case bytes.HasPrefix(data, fbxBinaryMagic):
		// magic, 0x1A 0x00, then a little-endian uint32 version
		off := len(fbxBinaryMagic) + 2
		if len(data) < off+4 {
			return ErrInvalidFBX
		}
		m.Version = binary.LittleEndian.Uint32(data[off : off+4])
	case bytes.HasPrefix(data, fbxASCIIMagic):
		m.Version = 0
	default:
		return ErrInvalidFBX
	}
	m.Meshes = bytes.Count(data, []byte("Geometry::"))
	return nil
}
