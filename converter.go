package cadmtl

import (
	"github.com/flywave/go3d/vec3"
)

// Converter 将材质节点转换为BaseMaterial。本身无状态，缓存和纹理表由调用方持有
type Converter struct {
	Properties MaterialProperties
	Textures   TextureExtractor
	Logger     Logger
}

func NewConverter(prefs *Preferences, logger Logger) *Converter {
	if logger == nil {
		logger = NopLogger()
	}
	return &Converter{
		Properties: AssetMaterialProperties{},
		Textures:   NewAssetTextureExtractor(prefs, logger),
		Logger:     logger,
	}
}

func (c *Converter) logger() Logger {
	if c.Logger == nil {
		return NopLogger()
	}
	return c.Logger
}

// Resolve 返回节点对应的材质，同一源材质在一个会话内只转换一次
func (c *Converter) Resolve(node *MaterialNode, prefs *Preferences, doc Document, cache *MaterialCache, reg *TextureRegistry) (*BaseMaterial, error) {
	key := SourceKey(node)
	if m, ok := cache.Lookup(key); ok {
		return m, nil
	}

	var rec *NativeMaterial
	if node.MaterialID.Valid() && doc != nil {
		var err error
		rec, err = doc.Material(node.MaterialID)
		if err != nil {
			return nil, &LookupError{ID: node.MaterialID, Err: err}
		}
	}

	var mtl *BaseMaterial
	if rec == nil {
		mtl = FromNodeOnly(node, doc, NO_TEXTURE)
	} else {
		mtl = c.FromNativeRecord(node, prefs, doc, rec, reg, NewMaterialBuilder(string(node.MaterialID)))
	}
	mtl, _ = cache.Add(key, mtl)
	return mtl, nil
}

// FromNativeRecord 文档中存在材质记录时的完整转换流程。b上已有的纹理会被保留
func (c *Converter) FromNativeRecord(node *MaterialNode, prefs *Preferences, doc Document, rec *NativeMaterial, reg *TextureRegistry, b *MaterialBuilder) *BaseMaterial {
	log := c.logger()
	opacity := Opacity(node.Transparency)

	b.SetName(rec.Name).
		SetRoughness(Roughness(node.Glossiness, node.Smoothness))
	if c.Properties != nil {
		c.Properties.SetProperties(rec, opacity, b)
	}

	asset := c.appearance(node, doc, rec)

	var baseTint, reflectivityTint *vec3.T
	if prefs.UseTextures() && c.Textures != nil && reg != nil {
		mark := reg.Mark()
		ext, err := c.Textures.Extract(&TextureRequest{
			Record:   rec,
			Asset:    asset,
			Document: doc,
			Opacity:  opacity,
		}, reg)
		if err != nil {
			log.Warnf("material %s (%s): texture extraction failed: %v", rec.ID, rec.Name, err)
			reg.Rollback(mark)
			ext = NoExtraction()
		}
		baseTint, reflectivityTint = ext.BaseTint, ext.ReflectivityTint
		if ext.TextureIndex >= 0 {
			b.SetTexture(ext.TextureIndex, ext.TexCoord)
		}
		b.SetBaseColor(DefaultColour(opacity))
	}

	if b.HasTexture() {
		b.SetBaseColor(DefaultColour(opacity))
	} else {
		b.SetBaseColor(BlendColour(node.Color, baseTint, reflectivityTint, opacity))
	}

	if c.Properties != nil {
		if err := c.Properties.ApplyAsset(doc, rec, asset, b); err != nil {
			log.Warnf("material %s (%s): %v", rec.ID, rec.Name, err)
		}
	}
	return b.Build()
}

// appearance 先查记录引用的资产，再退回节点自带的资产。查询失败视为无资产
func (c *Converter) appearance(node *MaterialNode, doc Document, rec *NativeMaterial) *AppearanceAsset {
	if rec.AppearanceAssetID.Valid() && doc != nil {
		asset, err := doc.AppearanceAsset(rec.AppearanceAssetID)
		if err != nil {
			c.logger().Warnf("material %s (%s): appearance asset %s: %v", rec.ID, rec.Name, rec.AppearanceAssetID, err)
			return nil
		}
		if asset != nil {
			return asset
		}
	}
	return node.Appearance
}
