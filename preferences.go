package cadmtl

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MaterialsOption 材质导出级别
type MaterialsOption int

const (
	MATERIALS_NONE MaterialsOption = iota
	MATERIALS_COLORS
	MATERIALS_TEXTURES
)

var materialsOptionNames = map[MaterialsOption]string{
	MATERIALS_NONE:     "none",
	MATERIALS_COLORS:   "colors",
	MATERIALS_TEXTURES: "textures",
}

func (o MaterialsOption) String() string {
	if s, ok := materialsOptionNames[o]; ok {
		return s
	}
	return "unknown"
}

func ParseMaterialsOption(s string) (MaterialsOption, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for o, name := range materialsOptionNames {
		if name == s {
			return o, nil
		}
	}
	return MATERIALS_NONE, errors.Wrapf(ErrInvalidOption, "materials %q", s)
}

func (o *MaterialsOption) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseMaterialsOption(node.Value)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o MaterialsOption) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}

// ImageMode 图像在glTF中的存放方式
type ImageMode string

const (
	// IMAGES_URI 引用纹理文件路径
	IMAGES_URI ImageMode = "uri"
	// IMAGES_DATA 以base64 data URI内嵌
	IMAGES_DATA ImageMode = "data"
	// IMAGES_BUFFER 写入二进制buffer(GLB)
	IMAGES_BUFFER ImageMode = "buffer"
)

func (m ImageMode) valid() bool {
	return m == IMAGES_URI || m == IMAGES_DATA || m == IMAGES_BUFFER
}

// Preferences 导出配置
type Preferences struct {
	Materials   MaterialsOption `yaml:"materials"`
	Images      ImageMode       `yaml:"images,omitempty"`
	TextureRoot string          `yaml:"textureRoot,omitempty"`
	Debug       bool            `yaml:"debug,omitempty"`
}

func DefaultPreferences() *Preferences {
	return &Preferences{Materials: MATERIALS_TEXTURES, Images: IMAGES_DATA}
}

// UseTextures 是否尝试提取纹理
func (p *Preferences) UseTextures() bool {
	return p != nil && p.Materials == MATERIALS_TEXTURES
}

// ExportMaterials none时调用方可以跳过材质导出
func (p *Preferences) ExportMaterials() bool {
	return p == nil || p.Materials != MATERIALS_NONE
}

// UnmarshalYAML 未出现的字段保留默认值
func (p *Preferences) UnmarshalYAML(node *yaml.Node) error {
	type plain Preferences
	out := plain(*DefaultPreferences())
	if err := node.Decode(&out); err != nil {
		return err
	}
	if out.Images != "" && !out.Images.valid() {
		return errors.Wrapf(ErrInvalidOption, "images %q", out.Images)
	}
	*p = Preferences(out)
	return nil
}

func (p *Preferences) normalize() Preferences {
	if p == nil {
		return *DefaultPreferences()
	}
	out := *p
	if !out.Images.valid() {
		out.Images = IMAGES_DATA
	}
	return out
}

// LoadPreferences 从YAML文件读取配置，未设置的字段取默认值
func LoadPreferences(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read preferences %s", path)
	}
	prefs := DefaultPreferences()
	if err := yaml.Unmarshal(data, prefs); err != nil {
		return nil, errors.Wrapf(err, "parse preferences %s", path)
	}
	out := prefs.normalize()
	return &out, nil
}
