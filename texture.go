package cadmtl

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/flywave/go3d/vec3"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

const (
	MIME_PNG  = "image/png"
	MIME_JPEG = "image/jpeg"
)

// Bitmap 纹理源文件
type Bitmap struct {
	Path string
	Name string
	Ext  string
	Data []byte
}

// MimeType glTF原生支持的格式返回对应mime，否则返回空
func (b *Bitmap) MimeType() string {
	switch b.Ext {
	case ".png":
		return MIME_PNG
	case ".jpg", ".jpeg":
		return MIME_JPEG
	}
	return ""
}

func (b *Bitmap) Native() bool {
	return b.MimeType() != ""
}

func ReadBitmap(path string) (*Bitmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	_, fn := filepath.Split(path)
	return &Bitmap{
		Path: path,
		Name: fn,
		Ext:  strings.ToLower(filepath.Ext(path)),
		Data: data,
	}, nil
}

// Decode 按扩展名解码
func (b *Bitmap) Decode() (image.Image, error) {
	rd := bytes.NewReader(b.Data)
	var img image.Image
	var err error
	switch b.Ext {
	case ".png":
		img, err = png.Decode(rd)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(rd)
	case ".gif":
		img, err = gif.Decode(rd)
	case ".bmp":
		img, err = bmp.Decode(rd)
	case ".tif", ".tiff":
		img, err = tiff.Decode(rd)
	case ".tga":
		img, err = tga.Decode(rd)
	case ".webp":
		img, err = webp.Decode(rd)
	default:
		return nil, errors.Wrapf(ErrUnsupportedImage, "%s", b.Name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", b.Name)
	}
	return img, nil
}

// EncodedForGltf 返回可嵌入glTF的数据及mime，非原生格式转码为PNG
func (b *Bitmap) EncodedForGltf() ([]byte, string, error) {
	if mime := b.MimeType(); mime != "" {
		return b.Data, mime, nil
	}
	img, err := b.Decode()
	if err != nil {
		return nil, "", err
	}
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		return nil, "", errors.Wrapf(err, "encode %s", b.Name)
	}
	return buf.Bytes(), MIME_PNG, nil
}

// AverageColor 图像的平均颜色，完全透明的像素不计入
func AverageColor(img image.Image) (vec3.T, bool) {
	bd := img.Bounds()
	var sum [3]float64
	var n float64
	for y := bd.Min.Y; y < bd.Max.Y; y++ {
		for x := bd.Min.X; x < bd.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			sum[0] += float64(c.R)
			sum[1] += float64(c.G)
			sum[2] += float64(c.B)
			n++
		}
	}
	if n == 0 {
		return vec3.T{}, false
	}
	return vec3.T{
		float32(sum[0] / n / 255),
		float32(sum[1] / n / 255),
		float32(sum[2] / n / 255),
	}, true
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
