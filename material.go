package cadmtl

import (
	"github.com/flywave/go3d/vec3"
	"github.com/flywave/go3d/vec4"
)

// BaseMaterial 导出的PBR材质记录，与glTF的metallic-roughness材质一一对应
type BaseMaterial struct {
	UUID            string    `json:"uuid"`
	Name            string    `json:"name"`
	BaseColorFactor vec4.T    `json:"baseColorFactor"`
	RoughnessFactor float32   `json:"roughnessFactor"`
	MetallicFactor  float32   `json:"metallicFactor"`
	EmissiveFactor  vec3.T    `json:"emissiveFactor"`
	AlphaMode       AlphaMode `json:"alphaMode"`
	DoubleSided     bool      `json:"doubleSided"`
	TexCoord        int       `json:"texCoord"`
	TextureIndex    int       `json:"textureIndex"`
}

func (m *BaseMaterial) HasTexture() bool {
	return m.TextureIndex >= 0
}

func (m *BaseMaterial) GetColor() vec4.T {
	return m.BaseColorFactor
}

func (m *BaseMaterial) Alpha() float32 {
	return m.BaseColorFactor[3]
}

// MaterialBuilder 在多个步骤中构建BaseMaterial，Build之后才对外可见
type MaterialBuilder struct {
	mtl BaseMaterial
}

func NewMaterialBuilder(uuid string) *MaterialBuilder {
	return &MaterialBuilder{
		mtl: BaseMaterial{
			UUID:            uuid,
			BaseColorFactor: vec4.T{1, 1, 1, 1},
			RoughnessFactor: MAX_ROUGHNESS,
			AlphaMode:       ALPHA_OPAQUE,
			DoubleSided:     true,
			TextureIndex:    NO_TEXTURE,
		},
	}
}

func (b *MaterialBuilder) SetName(name string) *MaterialBuilder {
	b.mtl.Name = name
	return b
}

func (b *MaterialBuilder) Name() string {
	return b.mtl.Name
}

func (b *MaterialBuilder) SetBaseColor(c vec4.T) *MaterialBuilder {
	b.mtl.BaseColorFactor = c
	return b
}

func (b *MaterialBuilder) BaseColor() vec4.T {
	return b.mtl.BaseColorFactor
}

func (b *MaterialBuilder) SetRoughness(r float32) *MaterialBuilder {
	b.mtl.RoughnessFactor = r
	return b
}

func (b *MaterialBuilder) Roughness() float32 {
	return b.mtl.RoughnessFactor
}

func (b *MaterialBuilder) SetMetallic(m float32) *MaterialBuilder {
	b.mtl.MetallicFactor = m
	return b
}

func (b *MaterialBuilder) SetEmissive(e vec3.T) *MaterialBuilder {
	b.mtl.EmissiveFactor = e
	return b
}

func (b *MaterialBuilder) SetDoubleSided(v bool) *MaterialBuilder {
	b.mtl.DoubleSided = v
	return b
}

// SetTexture 设置基础色纹理，index<0表示无纹理
func (b *MaterialBuilder) SetTexture(index, texCoord int) *MaterialBuilder {
	if index < 0 {
		index = NO_TEXTURE
	}
	b.mtl.TextureIndex = index
	b.mtl.TexCoord = texCoord
	return b
}

func (b *MaterialBuilder) HasTexture() bool {
	return b.mtl.TextureIndex >= 0
}

// Build 收敛所有不变量后返回新的材质
func (b *MaterialBuilder) Build() *BaseMaterial {
	m := b.mtl
	for i := range m.BaseColorFactor {
		m.BaseColorFactor[i] = clamp01(m.BaseColorFactor[i])
	}
	for i := range m.EmissiveFactor {
		m.EmissiveFactor[i] = clamp01(m.EmissiveFactor[i])
	}
	m.RoughnessFactor = Clamp(m.RoughnessFactor, MIN_ROUGHNESS, MAX_ROUGHNESS)
	m.MetallicFactor = clamp01(m.MetallicFactor)
	m.AlphaMode = AlphaModeFor(m.BaseColorFactor[3])
	return &m
}
