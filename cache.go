package cadmtl

import "fmt"

// MaterialCache 一次导出会话内的有序材质表，插入顺序即glTF材质索引
type MaterialCache struct {
	items    []*BaseMaterial
	byUUID   map[string]int
	bySource map[string]int
}

func NewMaterialCache() *MaterialCache {
	return &MaterialCache{
		byUUID:   make(map[string]int),
		bySource: make(map[string]int),
	}
}

// SourceKey 节点的去重键。无效ID的节点按内容区分
func SourceKey(node *MaterialNode) string {
	if node.MaterialID.Valid() {
		return "id:" + string(node.MaterialID)
	}
	return fmt.Sprintf("node:%02x%02x%02x:%g:%d:%d",
		node.Color[0], node.Color[1], node.Color[2],
		node.Transparency, node.Glossiness, node.Smoothness)
}

// Lookup 按源键查找已缓存的材质
func (c *MaterialCache) Lookup(sourceKey string) (*BaseMaterial, bool) {
	idx, ok := c.bySource[sourceKey]
	if !ok {
		return nil, false
	}
	return c.items[idx], true
}

func (c *MaterialCache) Get(uuid string) (*BaseMaterial, bool) {
	idx, ok := c.byUUID[uuid]
	if !ok {
		return nil, false
	}
	return c.items[idx], true
}

// Index 返回材质在会话中的位置
func (c *MaterialCache) Index(uuid string) (int, bool) {
	idx, ok := c.byUUID[uuid]
	return idx, ok
}

// Add 以材质UUID为主键存入，并登记源键别名。UUID已存在时保留原记录
func (c *MaterialCache) Add(sourceKey string, m *BaseMaterial) (*BaseMaterial, int) {
	idx, ok := c.byUUID[m.UUID]
	if !ok {
		idx = len(c.items)
		c.items = append(c.items, m)
		c.byUUID[m.UUID] = idx
	}
	if sourceKey != "" {
		if _, exists := c.bySource[sourceKey]; !exists {
			c.bySource[sourceKey] = idx
		}
	}
	return c.items[idx], idx
}

func (c *MaterialCache) Len() int {
	return len(c.items)
}

func (c *MaterialCache) Materials() []*BaseMaterial {
	out := make([]*BaseMaterial, len(c.items))
	copy(out, c.items)
	return out
}
