package cadmtl

const (
	// DefaultMaterialName 无有效材质ID时使用的名称
	DefaultMaterialName = "DefaultMaterial"
	// FallbackMaterialName 元素存在但没有名称时使用的名称
	FallbackMaterialName = "Material"
)

const (
	MIN_ROUGHNESS float32 = 0.04
	MAX_ROUGHNESS float32 = 1.0

	NO_TEXTURE = -1

	// smoothness对粗糙度的最大衰减比例
	SMOOTHNESS_ATTENUATION float32 = 0.5
)

// AlphaMode glTF透明模式
type AlphaMode string

const (
	ALPHA_OPAQUE AlphaMode = "OPAQUE"
	ALPHA_BLEND  AlphaMode = "BLEND"
)

// ElementID 宿主文档中的元素标识
type ElementID string

const InvalidElementID ElementID = "-1"

// Valid 判断ID是否可用于文档查询
func (id ElementID) Valid() bool {
	return id != "" && id != InvalidElementID
}

func (id ElementID) String() string {
	return string(id)
}

// MaterialNode 导出遍历时每个面/元素携带的材质节点
type MaterialNode struct {
	MaterialID   ElementID        `json:"materialId" yaml:"material"`
	Color        [3]byte          `json:"color" yaml:"color"`
	Transparency float64          `json:"transparency" yaml:"transparency"`
	Glossiness   int              `json:"glossiness" yaml:"glossiness"`
	Smoothness   int              `json:"smoothness" yaml:"smoothness"`
	Appearance   *AppearanceAsset `json:"appearance,omitempty" yaml:"appearance,omitempty"`
}

// NativeMaterial 文档中的材质记录
type NativeMaterial struct {
	ID                ElementID `json:"id" yaml:"id"`
	Name              string    `json:"name" yaml:"name"`
	Color             [3]byte   `json:"color" yaml:"color"`
	Transparency      int       `json:"transparency" yaml:"transparency"` // 0-100
	Shininess         int       `json:"shininess" yaml:"shininess"`       // 0-128
	Smoothness        int       `json:"smoothness" yaml:"smoothness"`     // 0-100
	AppearanceAssetID ElementID `json:"appearance,omitempty" yaml:"appearance,omitempty"`
}

// AppearanceAsset 基于物理属性的外观资产
type AppearanceAsset struct {
	ID         ElementID  `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Schema     string     `json:"schema" yaml:"schema"`
	Properties Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Element 文档元素的最小视图
type Element struct {
	ID   ElementID `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
}

// Document 宿主文档的只读查询接口
type Document interface {
	// Element 返回元素，不存在时返回nil
	Element(id ElementID) *Element
	// Material 返回材质记录，不存在时返回nil, nil；宿主错误时返回error
	Material(id ElementID) (*NativeMaterial, error)
	// AppearanceAsset 返回外观资产，不存在时返回nil, nil
	AppearanceAsset(id ElementID) (*AppearanceAsset, error)
}
