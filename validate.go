package cadmtl

import "fmt"

// IssueLevel 问题严重程度
type IssueLevel string

const (
	// IssueError 违反不变量
	IssueError IssueLevel = "error"
	// IssueWarning 合法但可疑的取值
	IssueWarning IssueLevel = "warning"
)

// Issue 一条校验结果
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"`
	Message string     `json:"message" yaml:"message"`
}

// Validate 检查导出材质必须满足的不变量，返回空表示通过
func Validate(m *BaseMaterial) []Issue {
	var out []Issue
	if m.UUID == "" {
		out = append(out, Issue{Level: IssueError, Code: "uuid", Message: "uuid missing"})
	}
	if m.Name == "" {
		out = append(out, Issue{Level: IssueWarning, Code: "name", Message: "name missing"})
	}
	for i, c := range m.BaseColorFactor {
		if c < 0 || c > 1 {
			out = append(out, Issue{Level: IssueError, Code: "baseColorFactor",
				Message: fmt.Sprintf("baseColorFactor[%d] = %g out of [0,1]", i, c)})
		}
	}
	if m.RoughnessFactor < MIN_ROUGHNESS || m.RoughnessFactor > MAX_ROUGHNESS {
		out = append(out, Issue{Level: IssueError, Code: "roughnessFactor",
			Message: fmt.Sprintf("roughnessFactor = %g out of [%g,%g]", m.RoughnessFactor, MIN_ROUGHNESS, MAX_ROUGHNESS)})
	}
	if m.MetallicFactor < 0 || m.MetallicFactor > 1 {
		out = append(out, Issue{Level: IssueError, Code: "metallicFactor",
			Message: fmt.Sprintf("metallicFactor = %g out of [0,1]", m.MetallicFactor)})
	}
	if want := AlphaModeFor(m.Alpha()); m.AlphaMode != want {
		out = append(out, Issue{Level: IssueError, Code: "alphaMode",
			Message: fmt.Sprintf("alphaMode %s, alpha %g requires %s", m.AlphaMode, m.Alpha(), want)})
	}
	if m.TextureIndex < NO_TEXTURE {
		out = append(out, Issue{Level: IssueError, Code: "textureIndex",
			Message: fmt.Sprintf("textureIndex = %d", m.TextureIndex)})
	}
	if m.HasTexture() && m.BaseColorFactor != DefaultColour(m.Alpha()) {
		out = append(out, Issue{Level: IssueWarning, Code: "baseColorFactor",
			Message: "textured material carries a non-neutral base color"})
	}
	return out
}
