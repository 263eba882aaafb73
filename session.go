package cadmtl

import (
	"sync"

	"github.com/qmuntal/gltf"
)

// Session 一次导出会话，持有材质缓存和纹理表。并发调用被串行化
type Session struct {
	mu        sync.Mutex
	doc       Document
	prefs     *Preferences
	cache     *MaterialCache
	registry  *TextureRegistry
	converter *Converter
	logger    Logger
}

type SessionOption func(*Session)

func WithLogger(l Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

func WithMaterialProperties(p MaterialProperties) SessionOption {
	return func(s *Session) {
		s.converter.Properties = p
	}
}

func WithTextureExtractor(e TextureExtractor) SessionOption {
	return func(s *Session) {
		s.converter.Textures = e
	}
}

func NewSession(doc Document, prefs *Preferences, opts ...SessionOption) *Session {
	p := prefs.normalize()
	s := &Session{
		doc:       doc,
		prefs:     &p,
		cache:     NewMaterialCache(),
		registry:  NewTextureRegistry(),
		converter: &Converter{Properties: AssetMaterialProperties{}},
		logger:    NewDefaultLogger(p.Debug),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = NopLogger()
	}
	s.converter.Logger = s.logger
	if s.converter.Textures == nil {
		s.converter.Textures = NewAssetTextureExtractor(s.prefs, s.logger)
	}
	return s
}

// Resolve 返回节点的材质。查询失败只影响当前材质，会话可以继续
func (s *Session) Resolve(node *MaterialNode) (*BaseMaterial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.cache.Len()
	m, err := s.converter.Resolve(node, s.prefs, s.doc, s.cache, s.registry)
	if err != nil {
		s.logger.Errorf("%v", err)
		return nil, err
	}
	if s.cache.Len() > before && s.logger.DebugEnabled() {
		s.logger.Debugf("material %q -> %s (%s, texture %d)", node.MaterialID, m.UUID, m.Name, m.TextureIndex)
		for _, issue := range Validate(m) {
			s.logger.Warnf("material %s: %s", m.UUID, issue.Message)
		}
	}
	return m, nil
}

// MaterialIndex 返回材质在导出文档中的索引
func (s *Session) MaterialIndex(m *BaseMaterial) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Index(m.UUID)
}

func (s *Session) Materials() []*BaseMaterial {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Materials()
}

func (s *Session) Textures() []*gltf.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*gltf.Texture(nil), s.registry.Textures...)
}

func (s *Session) Images() []*gltf.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*gltf.Image(nil), s.registry.Images...)
}

// Export 将会话中的材质写入glTF文档
func (s *Session) Export(doc *gltf.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildGltf(doc, s.cache.Materials(), s.registry)
}
