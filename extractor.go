package cadmtl

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/flywave/go3d/vec3"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

const (
	KEY_GENERIC_DIFFUSE     = "generic_diffuse"
	KEY_GENERIC_DIFFUSE_MAP = "generic_diffuse_map"
	KEY_BITMAP              = "unifiedbitmap_Bitmap"
	KEY_U_REPEAT            = "texture_URepeat"
	KEY_V_REPEAT            = "texture_VRepeat"
	KEY_TINT_TOGGLE         = "common_Tint_toggle"
	KEY_TINT_COLOR          = "common_Tint_color"
)

// Extraction 纹理提取结果，两个色调都可能为空
type Extraction struct {
	TextureIndex     int
	TexCoord         int
	BaseTint         *vec3.T
	ReflectivityTint *vec3.T
}

func NoExtraction() Extraction {
	return Extraction{TextureIndex: NO_TEXTURE}
}

type TextureRequest struct {
	Record   *NativeMaterial
	Asset    *AppearanceAsset
	Document Document
	Opacity  float32
}

// TextureExtractor 从材质记录中提取纹理并登记到registry
type TextureExtractor interface {
	Extract(req *TextureRequest, reg *TextureRegistry) (Extraction, error)
}

// AssetTextureExtractor 读取外观资产中的漫反射位图
type AssetTextureExtractor struct {
	Images ImageMode
	Root   string
	Logger Logger
}

func NewAssetTextureExtractor(prefs *Preferences, logger Logger) *AssetTextureExtractor {
	p := prefs.normalize()
	if logger == nil {
		logger = NopLogger()
	}
	return &AssetTextureExtractor{Images: p.Images, Root: p.TextureRoot, Logger: logger}
}

func (e *AssetTextureExtractor) Extract(req *TextureRequest, reg *TextureRegistry) (Extraction, error) {
	ext := NoExtraction()
	if req.Asset == nil {
		return ext, nil
	}
	props := req.Asset.Properties
	if c, ok := props.Color(KEY_GENERIC_DIFFUSE); ok {
		ext.BaseTint = c
	}
	if on, _ := props.Bool(KEY_TINT_TOGGLE); on {
		if c, ok := props.Color(KEY_TINT_COLOR); ok {
			ext.ReflectivityTint = c
		}
	}

	bitmapAsset, ok := props.Asset(KEY_GENERIC_DIFFUSE_MAP)
	if !ok {
		return ext, nil
	}
	paths, _ := bitmapAsset.String(KEY_BITMAP)
	source := e.resolve(paths)
	if source == "" {
		e.Logger.Debugf("asset %s: bitmap %q not found", req.Asset.ID, paths)
		return ext, nil
	}
	if idx, ok := reg.Lookup(source); ok {
		ext.TextureIndex = idx
		return ext, nil
	}

	bm, err := ReadBitmap(source)
	if err != nil {
		return NoExtraction(), errors.Wrapf(err, "asset %s", req.Asset.ID)
	}

	var img *gltf.Image
	var payload []byte
	switch {
	case e.Images == IMAGES_URI && bm.Native():
		img = &gltf.Image{Name: bm.Name, URI: e.uri(source), MimeType: bm.MimeType()}
	case e.Images == IMAGES_URI:
		// 无法以URI引用的格式，用平均色近似
		decoded, err := bm.Decode()
		if err != nil {
			return NoExtraction(), errors.Wrapf(err, "asset %s", req.Asset.ID)
		}
		if avg, ok := AverageColor(decoded); ok {
			ext.BaseTint = &avg
		}
		return ext, nil
	default:
		data, mime, err := bm.EncodedForGltf()
		if err != nil {
			return NoExtraction(), errors.Wrapf(err, "asset %s", req.Asset.ID)
		}
		img = &gltf.Image{Name: bm.Name, MimeType: mime}
		if e.Images == IMAGES_DATA {
			img.URI = dataURI(mime, data)
		} else {
			payload = data
		}
	}

	ext.TextureIndex = reg.Register(source, img, payload,
		wrapMode(bitmapAsset, KEY_U_REPEAT), wrapMode(bitmapAsset, KEY_V_REPEAT))
	return ext, nil
}

// resolve 位图路径可能以'|'分隔多个候选，返回第一个存在的
func (e *AssetTextureExtractor) resolve(paths string) string {
	for _, p := range strings.Split(paths, "|") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) && e.Root != "" {
			p = filepath.Join(e.Root, p)
		}
		p = filepath.Clean(p)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func (e *AssetTextureExtractor) uri(source string) string {
	if e.Root != "" {
		if rel, err := filepath.Rel(e.Root, source); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(source)
}

func wrapMode(props Properties, key string) gltf.WrappingMode {
	if repeat, ok := props.Bool(key); ok && !repeat {
		return gltf.WrapClampToEdge
	}
	return gltf.WrapRepeat
}
