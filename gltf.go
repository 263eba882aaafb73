package cadmtl

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const (
	// GLTFVersion 定义GLTF规范版本
	GLTFVersion = "2.0"

	// PaddingChar 用于二进制填充的字符
	PaddingChar = 0x20

	// Generator 写入asset.generator
	Generator = "go-cadmtl"
)

// NewDocument 创建一个新的GLTF文档
func NewDocument() *gltf.Document {
	doc := &gltf.Document{
		Asset: gltf.Asset{
			Version:   GLTFVersion,
			Generator: Generator,
		},
		Scenes:  []*gltf.Scene{{}},
		Buffers: []*gltf.Buffer{{}},
	}

	sceneIndex := uint32(0)
	doc.Scene = &sceneIndex

	return doc
}

// bufferWriter 用于计算缓冲区大小的写入器
type bufferWriter struct {
	writer io.Writer
	size   int
}

func (w *bufferWriter) Write(p []byte) (int, error) {
	n := len(p)
	w.writer.Write(p)
	w.size += n
	return n, nil
}

func (w *bufferWriter) Bytes() []byte {
	return w.writer.(*bytes.Buffer).Bytes()
}

func newBufferWriter() *bufferWriter {
	return &bufferWriter{
		writer: bytes.NewBuffer(nil),
	}
}

// calcPadding 计算需要的填充字节数
func calcPadding(offset, unit int) int {
	padding := offset % unit
	if padding != 0 {
		padding = unit - padding
	}
	return padding
}

// EncodeBinary 将GLTF文档编码为GLB，并按paddingUnit对齐
func EncodeBinary(doc *gltf.Document, paddingUnit int) ([]byte, error) {
	writer := newBufferWriter()

	encoder := gltf.NewEncoder(writer)
	encoder.AsBinary = true

	if err := encoder.Encode(doc); err != nil {
		return nil, errors.Wrap(err, "encode glb")
	}

	if paddingUnit <= 0 {
		return writer.Bytes(), nil
	}
	padding := calcPadding(writer.size, paddingUnit)
	if padding == 0 {
		return writer.Bytes(), nil
	}

	pad := bytes.Repeat([]byte{PaddingChar}, padding)
	writer.Write(pad)

	return writer.Bytes(), nil
}

// GltfMaterial 转换为glTF材质，textureOffset为纹理在目标文档中的起始索引
func (m *BaseMaterial) GltfMaterial(textureOffset uint32) *gltf.Material {
	baseColor := [4]float32(m.BaseColorFactor)
	gm := &gltf.Material{
		Name:           m.Name,
		DoubleSided:    m.DoubleSided,
		AlphaMode:      gltf.AlphaOpaque,
		EmissiveFactor: [3]float32(m.EmissiveFactor),
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &baseColor,
			MetallicFactor:  float32Ptr(m.MetallicFactor),
			RoughnessFactor: float32Ptr(m.RoughnessFactor),
		},
		Extras: map[string]interface{}{"uuid": m.UUID},
	}
	if m.AlphaMode == ALPHA_BLEND {
		gm.AlphaMode = gltf.AlphaBlend
	}
	if m.HasTexture() {
		gm.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{
			Index:    uint32(m.TextureIndex) + textureOffset,
			TexCoord: uint32(m.TexCoord),
		}
	}
	return gm
}

// BuildGltf 将材质和纹理表追加到文档，纹理、图像、采样器索引按文档已有数量平移
func BuildGltf(doc *gltf.Document, materials []*BaseMaterial, reg *TextureRegistry) error {
	if reg == nil {
		reg = NewTextureRegistry()
	}

	samplerOffset := uint32(len(doc.Samplers))
	for _, sp := range reg.Samplers {
		cp := *sp
		doc.Samplers = append(doc.Samplers, &cp)
	}

	imageOffset := uint32(len(doc.Images))
	for i, img := range reg.Images {
		if payload, ok := reg.Payload(i); ok {
			if _, err := modeler.WriteImage(doc, img.Name, img.MimeType, bytes.NewReader(payload)); err != nil {
				return errors.Wrapf(err, "write image %q", img.Name)
			}
			continue
		}
		cp := *img
		doc.Images = append(doc.Images, &cp)
	}

	textureOffset := uint32(len(doc.Textures))
	for _, tex := range reg.Textures {
		gt := &gltf.Texture{Name: tex.Name}
		if tex.Sampler != nil {
			gt.Sampler = uint32Ptr(*tex.Sampler + samplerOffset)
		}
		if tex.Source != nil {
			gt.Source = uint32Ptr(*tex.Source + imageOffset)
		}
		doc.Textures = append(doc.Textures, gt)
	}

	for _, m := range materials {
		doc.Materials = append(doc.Materials, m.GltfMaterial(textureOffset))
	}
	return nil
}
