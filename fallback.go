package cadmtl

import (
	"strings"

	"github.com/flywave/go3d/vec4"
	"github.com/google/uuid"
)

func newMaterialUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// FromNodeOnly 宿主没有可查询的材质记录时，仅用节点数据构建材质
func FromNodeOnly(node *MaterialNode, doc Document, textureIndex int) *BaseMaterial {
	opacity := Opacity(node.Transparency)
	rgb := ByteColor(node.Color)

	b := NewMaterialBuilder(newMaterialUUID())
	b.SetName(materialName(node, doc)).
		SetBaseColor(vec4.T{rgb[0], rgb[1], rgb[2], opacity}).
		SetRoughness(Roughness(node.Glossiness, node.Smoothness)).
		SetDoubleSided(true).
		SetTexture(textureIndex, 0)
	return b.Build()
}

func materialName(node *MaterialNode, doc Document) string {
	if !node.MaterialID.Valid() || doc == nil {
		return DefaultMaterialName
	}
	el := doc.Element(node.MaterialID)
	if el == nil {
		return DefaultMaterialName
	}
	if el.Name == "" {
		return FallbackMaterialName
	}
	return el.Name
}
