package cadmtl

import (
	"strings"

	"github.com/flywave/go3d/vec3"
	"github.com/pkg/errors"
)

const (
	KEY_GENERIC_GLOSSINESS   = "generic_glossiness"
	KEY_GENERIC_IS_METAL     = "generic_is_metal"
	KEY_SELF_ILLUM_LUMINANCE = "generic_self_illum_luminance"
	KEY_SELF_ILLUM_FILTER    = "generic_self_illum_filter_map"
	KEY_SURFACE_ROUGHNESS    = "surface_roughness"

	SCHEMA_METAL = "Metal"
)

// MaterialProperties 根据材质记录和外观资产设置物理属性
type MaterialProperties interface {
	SetProperties(rec *NativeMaterial, opacity float32, b *MaterialBuilder)
	ApplyAsset(doc Document, rec *NativeMaterial, asset *AppearanceAsset, b *MaterialBuilder) error
}

type AssetMaterialProperties struct{}

// SetProperties 非金属、无自发光，alpha取opacity
func (AssetMaterialProperties) SetProperties(rec *NativeMaterial, opacity float32, b *MaterialBuilder) {
	c := b.BaseColor()
	c[3] = opacity
	b.SetBaseColor(c).
		SetMetallic(0).
		SetEmissive(vec3.T{}).
		SetDoubleSided(true)
}

// ApplyAsset 应用资产驱动的覆盖项。类型不符的属性被跳过并以error报告
func (AssetMaterialProperties) ApplyAsset(doc Document, rec *NativeMaterial, asset *AppearanceAsset, b *MaterialBuilder) error {
	if asset == nil {
		return nil
	}
	props := asset.Properties
	var bad []string

	if _, exists := props[KEY_GENERIC_GLOSSINESS]; exists {
		if g, ok := props.Float(KEY_GENERIC_GLOSSINESS); ok {
			b.SetRoughness(1 - float32(g))
		} else {
			bad = append(bad, KEY_GENERIC_GLOSSINESS)
		}
	}
	if _, exists := props[KEY_SURFACE_ROUGHNESS]; exists {
		if r, ok := props.Float(KEY_SURFACE_ROUGHNESS); ok {
			b.SetRoughness(float32(r))
		} else {
			bad = append(bad, KEY_SURFACE_ROUGHNESS)
		}
	}
	if metal, ok := props.Bool(KEY_GENERIC_IS_METAL); ok && metal {
		b.SetMetallic(1)
	}
	if strings.EqualFold(asset.Schema, SCHEMA_METAL) {
		b.SetMetallic(1)
	}
	if lum, ok := props.Float(KEY_SELF_ILLUM_LUMINANCE); ok && lum > 0 {
		emissive := vec3.T{1, 1, 1}
		if c, ok := props.Color(KEY_SELF_ILLUM_FILTER); ok {
			emissive = *c
		}
		b.SetEmissive(emissive)
	}

	if len(bad) > 0 {
		return errors.Errorf("asset %s: unexpected property type for %s", asset.ID, strings.Join(bad, ", "))
	}
	return nil
}
