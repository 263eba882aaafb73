/*
Package cadmtl 将CAD材质节点转换为glTF PBR metallic-roughness材质。

节点携带旧式的Phong类描述(颜色、透明度、光泽度、平滑度)，并可能指向带外观资产的
原生材质记录。没有记录的节点走FromNodeOnly，有记录的走Converter.FromNativeRecord，
后者合并物理属性、纹理提取和色调混合。同一源材质在一个Session内只转换一次。

	doc, _ := cadmtl.LoadScene("scene.yaml")
	s := cadmtl.NewSession(doc.Document, cadmtl.DefaultPreferences())
	for _, n := range doc.Nodes {
		if _, err := s.Resolve(n); err != nil {
			// 单个材质失败，继续处理
		}
	}
	out := cadmtl.NewDocument()
	_ = s.Export(out)

宿主文档通过Document接口访问，MemoryDocument是从YAML加载的内存实现。
*/
package cadmtl
