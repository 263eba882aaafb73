package cadmtl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flywave/go3d/vec4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
preferences:
  materials: colors
document:
  elements:
    - id: E7
      name: Curtain Wall
  materials:
    - id: M1
      name: Concrete
      color: [128, 128, 128]
      appearance: A1
  assets:
    - id: A1
      name: Concrete Cast
      schema: Generic
      properties:
        generic_glossiness: 0.25
        generic_diffuse: [0.4, 0.4, 0.4]
nodes:
  - material: M1
    color: [200, 200, 200]
    glossiness: 30
  - material: E7
    color: [0, 0, 255]
    transparency: 0.6
  - material: "-1"
    color: [255, 255, 255]
`

func TestParseScene(t *testing.T) {
	sc, err := ParseScene([]byte(sceneYAML))
	require.NoError(t, err)

	require.NotNil(t, sc.Preferences)
	assert.Equal(t, MATERIALS_COLORS, sc.Preferences.Materials)
	assert.Equal(t, IMAGES_DATA, sc.Preferences.Images)
	require.Len(t, sc.Nodes, 3)
	assert.Equal(t, [3]byte{200, 200, 200}, sc.Nodes[0].Color)
	assert.Equal(t, InvalidElementID, sc.Nodes[2].MaterialID)

	doc := sc.Document
	rec, err := doc.Material("M1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Concrete", rec.Name)
	assert.Equal(t, ElementID("A1"), rec.AppearanceAssetID)

	asset, err := doc.AppearanceAsset("A1")
	require.NoError(t, err)
	require.NotNil(t, asset)
	g, ok := asset.Properties.Float(KEY_GENERIC_GLOSSINESS)
	assert.True(t, ok)
	assert.Equal(t, 0.25, g)

	assert.Equal(t, "Curtain Wall", doc.Element("E7").Name)
	assert.Equal(t, "Concrete", doc.Element("M1").Name)
	assert.Nil(t, doc.Element("nope"))
}

func TestSceneResolveAll(t *testing.T) {
	sc, err := ParseScene([]byte(sceneYAML))
	require.NoError(t, err)

	s := newTestSession(sc.Document, sc.Preferences)
	var out []*BaseMaterial
	for _, node := range sc.Nodes {
		m, err := s.Resolve(node)
		require.NoError(t, err)
		out = append(out, m)
	}

	assert.Equal(t, "M1", out[0].UUID)
	assert.Equal(t, "Concrete", out[0].Name)
	assert.InDelta(t, 0.75, out[0].RoughnessFactor, 1e-6)

	assert.Equal(t, "Curtain Wall", out[1].Name)
	assert.Equal(t, ALPHA_BLEND, out[1].AlphaMode)
	assert.InDelta(t, 0.4, out[1].BaseColorFactor[3], 1e-6)

	assert.Equal(t, DefaultMaterialName, out[2].Name)
	assert.Equal(t, vec4.T{1, 1, 1, 1}, out[2].BaseColorFactor)

	for i, m := range out {
		idx, ok := s.MaterialIndex(m)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}
}

func TestParseSceneEmptyDocument(t *testing.T) {
	sc, err := ParseScene([]byte("nodes:\n  - material: M1\n"))
	require.NoError(t, err)
	require.NotNil(t, sc.Document)

	rec, err := sc.Document.Material("M1")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o644))

	sc, err := LoadScene(path)
	require.NoError(t, err)
	assert.Len(t, sc.Nodes, 3)

	require.NoError(t, os.WriteFile(path, []byte("nodes: {"), 0o644))
	_, err = LoadScene(path)
	assert.Error(t, err)
}
