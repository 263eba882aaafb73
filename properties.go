package cadmtl

import (
	"github.com/flywave/go3d/vec3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type PropsType int

const (
	PROP_TYPE_STRING = iota
	PROP_TYPE_INT
	PROP_TYPE_FLOAT
	PROP_TYPE_BOOL
	PROP_TYPE_ARRAY
	PROP_TYPE_MAP
)

type PropsValue struct {
	Type  PropsType
	Value interface{}
}

// Properties 外观资产的属性集合，连接的子资产(如位图)以MAP类型保存
type Properties map[string]PropsValue

func (p Properties) get(key string, tp PropsType) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[key]
	if !ok || v.Type != tp {
		return nil, false
	}
	return v.Value, true
}

func (p Properties) String(key string) (string, bool) {
	v, ok := p.get(key, PROP_TYPE_STRING)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (p Properties) Bool(key string) (bool, bool) {
	v, ok := p.get(key, PROP_TYPE_BOOL)
	if !ok {
		return false, false
	}
	return v.(bool), true
}

// Float 读取数值属性，INT类型同样接受
func (p Properties) Float(key string) (float64, bool) {
	if v, ok := p.get(key, PROP_TYPE_FLOAT); ok {
		return v.(float64), true
	}
	if v, ok := p.get(key, PROP_TYPE_INT); ok {
		return float64(v.(int64)), true
	}
	return 0, false
}

// Color 读取3或4分量的颜色属性，alpha被忽略
func (p Properties) Color(key string) (*vec3.T, bool) {
	v, ok := p.get(key, PROP_TYPE_ARRAY)
	if !ok {
		return nil, false
	}
	arr := v.([]PropsValue)
	if len(arr) != 3 && len(arr) != 4 {
		return nil, false
	}
	c := &vec3.T{}
	for i := 0; i < 3; i++ {
		switch arr[i].Type {
		case PROP_TYPE_FLOAT:
			c[i] = float32(arr[i].Value.(float64))
		case PROP_TYPE_INT:
			c[i] = float32(arr[i].Value.(int64))
		default:
			return nil, false
		}
	}
	return c, true
}

// Asset 读取连接的子资产
func (p Properties) Asset(key string) (Properties, bool) {
	v, ok := p.get(key, PROP_TYPE_MAP)
	if !ok {
		return nil, false
	}
	return v.(Properties), true
}

func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Errorf("properties: line %d: expected mapping", node.Line)
	}
	props := make(Properties, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value, err := unmarshalPropsNode(node.Content[i+1])
		if err != nil {
			return errors.Wrapf(err, "property %q", key)
		}
		props[key] = value
	}
	*p = props
	return nil
}

// unmarshalPropsNode 根据YAML节点的类型和tag推断属性类型
func unmarshalPropsNode(node *yaml.Node) (PropsValue, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return unmarshalPropsNode(node.Alias)
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!bool":
			var v bool
			if err := node.Decode(&v); err != nil {
				return PropsValue{}, err
			}
			return PropsValue{Type: PROP_TYPE_BOOL, Value: v}, nil
		case "!!int":
			var v int64
			if err := node.Decode(&v); err != nil {
				return PropsValue{}, err
			}
			return PropsValue{Type: PROP_TYPE_INT, Value: v}, nil
		case "!!float":
			var v float64
			if err := node.Decode(&v); err != nil {
				return PropsValue{}, err
			}
			return PropsValue{Type: PROP_TYPE_FLOAT, Value: v}, nil
		default:
			return PropsValue{Type: PROP_TYPE_STRING, Value: node.Value}, nil
		}
	case yaml.SequenceNode:
		arr := make([]PropsValue, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := unmarshalPropsNode(item)
			if err != nil {
				return PropsValue{}, err
			}
			arr = append(arr, v)
		}
		return PropsValue{Type: PROP_TYPE_ARRAY, Value: arr}, nil
	case yaml.MappingNode:
		var sub Properties
		if err := sub.UnmarshalYAML(node); err != nil {
			return PropsValue{}, err
		}
		return PropsValue{Type: PROP_TYPE_MAP, Value: sub}, nil
	}
	return PropsValue{}, errors.Errorf("line %d: unsupported yaml node", node.Line)
}
