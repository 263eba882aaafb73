package cadmtl

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/flywave/go3d/vec3"
	"github.com/flywave/go3d/vec4"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDocument 测试NewDocument是否正确创建GLTF文档
func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	require.NotNil(t, doc)

	assert.Equal(t, GLTFVersion, doc.Asset.Version)
	assert.Equal(t, Generator, doc.Asset.Generator)
	assert.Len(t, doc.Scenes, 1)
	require.NotNil(t, doc.Scene)
	assert.Equal(t, uint32(0), *doc.Scene)
	assert.Len(t, doc.Buffers, 1)
}

func TestCalcPadding(t *testing.T) {
	tests := []struct {
		offset, unit, want int
	}{
		{0, 4, 0},
		{1, 4, 3},
		{4, 4, 0},
		{13, 8, 3},
		{16, 8, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calcPadding(tt.offset, tt.unit), "offset %d unit %d", tt.offset, tt.unit)
	}
}

func TestGltfMaterial(t *testing.T) {
	m := NewMaterialBuilder("abc").
		SetName("Glass").
		SetBaseColor(vec4.T{0.2, 0.4, 0.6, 0.5}).
		SetRoughness(0.3).
		SetMetallic(1).
		SetEmissive(vec3.T{1, 0, 0}).
		SetTexture(2, 0).
		Build()

	gm := m.GltfMaterial(3)
	assert.Equal(t, "Glass", gm.Name)
	assert.True(t, gm.DoubleSided)
	assert.Equal(t, gltf.AlphaBlend, gm.AlphaMode)
	assert.Equal(t, [3]float32{1, 0, 0}, gm.EmissiveFactor)
	assert.Equal(t, "abc", gm.Extras.(map[string]interface{})["uuid"])

	pbr := gm.PBRMetallicRoughness
	require.NotNil(t, pbr)
	assert.Equal(t, [4]float32{0.2, 0.4, 0.6, 0.5}, *pbr.BaseColorFactor)
	assert.InDelta(t, 0.3, *pbr.RoughnessFactor, 1e-6)
	assert.Equal(t, float32(1), *pbr.MetallicFactor)
	require.NotNil(t, pbr.BaseColorTexture)
	assert.Equal(t, uint32(5), pbr.BaseColorTexture.Index)

	opaque := NewMaterialBuilder("def").Build().GltfMaterial(0)
	assert.Equal(t, gltf.AlphaOpaque, opaque.AlphaMode)
	assert.Nil(t, opaque.PBRMetallicRoughness.BaseColorTexture)
}

func TestBuildGltfOffsets(t *testing.T) {
	reg := NewTextureRegistry()
	reg.Register("a.png", &gltf.Image{Name: "a.png", URI: "a.png", MimeType: MIME_PNG}, nil, gltf.WrapRepeat, gltf.WrapRepeat)

	doc := NewDocument()
	doc.Samplers = append(doc.Samplers, &gltf.Sampler{})
	doc.Images = append(doc.Images, &gltf.Image{URI: "existing.png"})
	doc.Textures = append(doc.Textures, &gltf.Texture{}, &gltf.Texture{})

	materials := []*BaseMaterial{
		NewMaterialBuilder("m1").SetTexture(0, 0).Build(),
		NewMaterialBuilder("m2").Build(),
	}
	require.NoError(t, BuildGltf(doc, materials, reg))

	require.Len(t, doc.Textures, 3)
	tex := doc.Textures[2]
	assert.Equal(t, uint32(1), *tex.Sampler)
	assert.Equal(t, uint32(1), *tex.Source)
	assert.Equal(t, "a.png", doc.Images[1].URI)

	require.Len(t, doc.Materials, 2)
	assert.Equal(t, uint32(2), doc.Materials[0].PBRMetallicRoughness.BaseColorTexture.Index)
	assert.Nil(t, doc.Materials[1].PBRMetallicRoughness.BaseColorTexture)

	// 文档中的副本与登记表相互独立
	doc.Images[1].URI = "changed.png"
	assert.Equal(t, "a.png", reg.Images[0].URI)
}

func TestSessionExportBufferImages(t *testing.T) {
	dir := t.TempDir()
	writeBMP(t, dir, "tile.bmp", color.NRGBA{R: 0, G: 128, B: 255, A: 255})

	doc := NewMemoryDocument()
	doc.AddAsset(bitmapAsset("A1", "tile.bmp", nil))
	doc.AddMaterial(&NativeMaterial{ID: "M1", Name: "Tile", AppearanceAssetID: "A1"})

	s := newTestSession(doc, &Preferences{Materials: MATERIALS_TEXTURES, Images: IMAGES_BUFFER, TextureRoot: dir})
	m, err := s.Resolve(&MaterialNode{MaterialID: "M1"})
	require.NoError(t, err)
	require.True(t, m.HasTexture())

	out := NewDocument()
	require.NoError(t, s.Export(out))

	require.Len(t, out.Images, 1)
	img := out.Images[0]
	assert.Empty(t, img.URI)
	assert.Equal(t, MIME_PNG, img.MimeType)
	require.NotNil(t, img.BufferView)
	assert.NotEmpty(t, out.Buffers[0].Data)
	require.Len(t, out.Materials, 1)
	assert.Equal(t, "Tile", out.Materials[0].Name)

	glb, err := EncodeBinary(out, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte("glTF"), glb[:4])
	assert.Equal(t, 0, len(glb)%8)
}

func TestEncodeBinaryWithoutPadding(t *testing.T) {
	glb, err := EncodeBinary(NewDocument(), 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(glb, []byte("glTF")))
}
