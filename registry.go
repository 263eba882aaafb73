package cadmtl

import (
	"github.com/qmuntal/gltf"
)

type samplerKey struct {
	wrapS, wrapT gltf.WrappingMode
}

// TextureRegistry 会话拥有的纹理、图像、采样器序列，只追加，索引一经分配即稳定
type TextureRegistry struct {
	Images   []*gltf.Image
	Textures []*gltf.Texture
	Samplers []*gltf.Sampler

	bySource  map[string]int
	bySampler map[samplerKey]int
	payloads  map[int][]byte
}

// RegistryMark 用于回滚失败的纹理提取
type RegistryMark struct {
	images   int
	textures int
	samplers int
}

func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{
		bySource:  make(map[string]int),
		bySampler: make(map[samplerKey]int),
		payloads:  make(map[int][]byte),
	}
}

// Lookup 按图像来源查找已登记的纹理索引
func (r *TextureRegistry) Lookup(source string) (int, bool) {
	idx, ok := r.bySource[source]
	return idx, ok
}

// Register 登记一张图像及其纹理，同一来源只登记一次。
// payload非空时图像数据在导出时写入buffer
func (r *TextureRegistry) Register(source string, img *gltf.Image, payload []byte, wrapS, wrapT gltf.WrappingMode) int {
	if idx, ok := r.bySource[source]; ok {
		return idx
	}
	samplerIndex := r.sampler(wrapS, wrapT)

	imageIndex := len(r.Images)
	r.Images = append(r.Images, img)
	if len(payload) > 0 {
		r.payloads[imageIndex] = payload
	}

	textureIndex := len(r.Textures)
	r.Textures = append(r.Textures, &gltf.Texture{
		Name:    img.Name,
		Sampler: uint32Ptr(uint32(samplerIndex)),
		Source:  uint32Ptr(uint32(imageIndex)),
	})
	r.bySource[source] = textureIndex
	return textureIndex
}

func (r *TextureRegistry) sampler(wrapS, wrapT gltf.WrappingMode) int {
	key := samplerKey{wrapS: wrapS, wrapT: wrapT}
	if idx, ok := r.bySampler[key]; ok {
		return idx
	}
	idx := len(r.Samplers)
	r.Samplers = append(r.Samplers, &gltf.Sampler{
		MagFilter: gltf.MagLinear,
		MinFilter: gltf.MinLinear,
		WrapS:     wrapS,
		WrapT:     wrapT,
	})
	r.bySampler[key] = idx
	return idx
}

// Payload 返回需要写入buffer的图像数据
func (r *TextureRegistry) Payload(imageIndex int) ([]byte, bool) {
	p, ok := r.payloads[imageIndex]
	return p, ok
}

func (r *TextureRegistry) Mark() RegistryMark {
	return RegistryMark{
		images:   len(r.Images),
		textures: len(r.Textures),
		samplers: len(r.Samplers),
	}
}

// Rollback 丢弃mark之后追加的所有条目
func (r *TextureRegistry) Rollback(m RegistryMark) {
	if m.images < len(r.Images) {
		for i := m.images; i < len(r.Images); i++ {
			delete(r.payloads, i)
		}
		r.Images = r.Images[:m.images]
	}
	if m.textures < len(r.Textures) {
		for src, idx := range r.bySource {
			if idx >= m.textures {
				delete(r.bySource, src)
			}
		}
		r.Textures = r.Textures[:m.textures]
	}
	if m.samplers < len(r.Samplers) {
		for key, idx := range r.bySampler {
			if idx >= m.samplers {
				delete(r.bySampler, key)
			}
		}
		r.Samplers = r.Samplers[:m.samplers]
	}
}

func uint32Ptr(v uint32) *uint32 {
	return &v
}

func float32Ptr(v float32) *float32 {
	return &v
}
