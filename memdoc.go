package cadmtl

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MemoryDocument 内存中的文档，用于离线转换和测试
type MemoryDocument struct {
	Elements  []*Element         `yaml:"elements,omitempty"`
	Materials []*NativeMaterial  `yaml:"materials,omitempty"`
	Assets    []*AppearanceAsset `yaml:"assets,omitempty"`

	elements  map[ElementID]*Element
	materials map[ElementID]*NativeMaterial
	assets    map[ElementID]*AppearanceAsset
	failures  map[ElementID]error
}

func NewMemoryDocument() *MemoryDocument {
	d := &MemoryDocument{}
	d.reindex()
	return d
}

func (d *MemoryDocument) reindex() {
	d.elements = make(map[ElementID]*Element, len(d.Elements))
	d.materials = make(map[ElementID]*NativeMaterial, len(d.Materials))
	d.assets = make(map[ElementID]*AppearanceAsset, len(d.Assets))
	for _, e := range d.Elements {
		d.elements[e.ID] = e
	}
	for _, m := range d.Materials {
		d.materials[m.ID] = m
	}
	for _, a := range d.Assets {
		d.assets[a.ID] = a
	}
	if d.failures == nil {
		d.failures = make(map[ElementID]error)
	}
}

func (d *MemoryDocument) AddElement(e *Element) {
	d.Elements = append(d.Elements, e)
	d.elements[e.ID] = e
}

func (d *MemoryDocument) AddMaterial(m *NativeMaterial) {
	d.Materials = append(d.Materials, m)
	d.materials[m.ID] = m
}

func (d *MemoryDocument) AddAsset(a *AppearanceAsset) {
	d.Assets = append(d.Assets, a)
	d.assets[a.ID] = a
}

// FailLookup 让对id的材质和资产查询返回err，模拟宿主API错误
func (d *MemoryDocument) FailLookup(id ElementID, err error) {
	d.failures[id] = err
}

// Element 材质记录本身也是文档元素
func (d *MemoryDocument) Element(id ElementID) *Element {
	if e, ok := d.elements[id]; ok {
		return e
	}
	if m, ok := d.materials[id]; ok {
		return &Element{ID: m.ID, Name: m.Name}
	}
	return nil
}

func (d *MemoryDocument) Material(id ElementID) (*NativeMaterial, error) {
	if err, ok := d.failures[id]; ok {
		return nil, err
	}
	return d.materials[id], nil
}

func (d *MemoryDocument) AppearanceAsset(id ElementID) (*AppearanceAsset, error) {
	if err, ok := d.failures[id]; ok {
		return nil, err
	}
	return d.assets[id], nil
}

func (d *MemoryDocument) UnmarshalYAML(node *yaml.Node) error {
	type plain MemoryDocument
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = MemoryDocument(p)
	d.reindex()
	return nil
}

// Scene 离线转换的输入：文档、配置和遍历得到的材质节点
type Scene struct {
	Document    *MemoryDocument `yaml:"document"`
	Preferences *Preferences    `yaml:"preferences,omitempty"`
	Nodes       []*MaterialNode `yaml:"nodes"`
}

func ParseScene(data []byte) (*Scene, error) {
	var sc Scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "parse scene")
	}
	if sc.Document == nil {
		sc.Document = NewMemoryDocument()
	}
	return &sc, nil
}

func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", path)
	}
	sc, err := ParseScene(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return sc, nil
}
