package components

// PositionComponent 实体在表面坐标系中的位置（左上角为原点，Y 轴向下）
type PositionComponent struct {
	X float64
	Y float64
}
