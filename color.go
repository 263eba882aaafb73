package cadmtl

import (
	"github.com/flywave/go3d/vec3"
	"github.com/flywave/go3d/vec4"
)

// Clamp 将v限制在[lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Roughness 由glossiness和smoothness(均为0-100)计算粗糙度，结果在[0.04, 1]内
func Roughness(glossiness, smoothness int) float32 {
	roughness := Clamp(1-float32(glossiness)/100, MIN_ROUGHNESS, MAX_ROUGHNESS)
	roughness *= 1 - float32(smoothness)/100*SMOOTHNESS_ATTENUATION
	return Clamp(roughness, MIN_ROUGHNESS, MAX_ROUGHNESS)
}

// Opacity 透明度转不透明度
func Opacity(transparency float64) float32 {
	return clamp01(float32(1 - transparency))
}

// AlphaModeFor alpha严格小于1时为BLEND
func AlphaModeFor(alpha float32) AlphaMode {
	if alpha < 1.0 {
		return ALPHA_BLEND
	}
	return ALPHA_OPAQUE
}

// DefaultColour 有纹理时使用的中性底色
func DefaultColour(opacity float32) vec4.T {
	return vec4.T{1, 1, 1, clamp01(opacity)}
}

// ByteColor 将0-255的RGB转换到[0,1]
func ByteColor(c [3]byte) vec3.T {
	return vec3.T{
		float32(c[0]) / 255,
		float32(c[1]) / 255,
		float32(c[2]) / 255,
	}
}

// BlendColour 混合节点颜色与资产色调：基础色调替换节点颜色，反射色调逐通道相乘，alpha取opacity
func BlendColour(color [3]byte, baseTint, reflectivityTint *vec3.T, opacity float32) vec4.T {
	rgb := ByteColor(color)
	if baseTint != nil {
		rgb = *baseTint
	}
	if reflectivityTint != nil {
		rgb = vec3.Mul(&rgb, reflectivityTint)
	}
	return vec4.T{clamp01(rgb[0]), clamp01(rgb[1]), clamp01(rgb[2]), clamp01(opacity)}
}
