package assets

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func binaryFBX(version uint32) []byte {
	out := append([]byte{}, fbxBinaryMagic...)
	out = append(out, 0x1a, 0x00)
	out = binary.LittleEndian.AppendUint32(out, version)
	return append(out, []byte("Geometry::body")...)
}

func TestFileLoaderDecodesFormats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scene.gltf", []byte(`{
		"asset": {"version": "2.0"},
		"meshes": [{"name": "walls", "primitives": []}],
		"animations": [{"name": "Doors", "channels": [], "samplers": []}]
	}`))
	writeFile(t, dir, "hero.fbx", binaryFBX(7400))
	writeFile(t, dir, "ascii.fbx", []byte("; FBX 7.4.0 project file\n"))

	cases := []struct {
		path    string
		format  string
		meshes  int
		anims   []string
		version uint32
	}{
		{"scene.gltf", "gltf", 1, []string{"Doors"}, 0},
		{"hero.fbx", "fbx", 1, nil, 7400},
		{"models/ascii.fbx", "fbx", 0, nil, 0},
	}
	l := NewFileLoader(dir)
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			m, err := l.Load(context.Background(), c.path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if m.Format != c.format || m.Meshes != c.meshes || m.Version != c.version {
				t.Fatalf("unexpected model %+v", m)
			}
			if len(m.Animations) != len(c.anims) {
				t.Fatalf("animations %v, want %v", m.Animations, c.anims)
			}
			for i := range c.anims {
				if m.Animations[i] != c.anims[i] {
					t.Fatalf("animations %v, want %v", m.Animations, c.anims)
				}
			}
		})
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.fbx", []byte("not an fbx"))
	writeFile(t, dir, "model.obj", []byte("v 0 0 0"))

	l := NewFileLoader(dir)
	cases := []struct {
		name string
		path string
		want error
	}{
		{"missing", "nope.glb", os.ErrNotExist},
		{"bad_fbx", "broken.fbx", ErrInvalidFBX},
		{"unsupported", "model.obj", ErrUnsupportedFormat},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := l.Load(context.Background(), c.path)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestFileLoaderHonoursCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hero.fbx", binaryFBX(7400))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFileLoader(dir).Load(ctx, "hero.fbx"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
