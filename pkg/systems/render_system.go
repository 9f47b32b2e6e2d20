package systems

import (
	"image"
	"log"
	"math"

	"github.com/gonewx/backdrop/pkg/components"
	"github.com/gonewx/backdrop/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchParticles 单次 DrawTriangles 的粒子上限（uint16 索引，每粒子 4 顶点）
const maxBatchParticles = math.MaxUint16 / 4

// RenderSystem 渲染所有发射器层的粒子
//
// 粒子按实体 ID 顺序绘制（先出生的在下层），连续使用同一贴图的粒子
// 合并成一次 DrawTriangles 调用。贴图为 nil 的粒子不绘制。
type RenderSystem struct {
	entityManager *ecs.EntityManager

	textures         map[image.Image]*ebiten.Image // 源图 → GPU 贴图（每个源图只上传一次）
	particleVertices []ebiten.Vertex               // 顶点数组（复用，避免每帧分配）
	particleIndices  []uint16                      // 索引数组（复用，避免每帧分配）
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager:    em,
		textures:         make(map[image.Image]*ebiten.Image),
		particleVertices: make([]ebiten.Vertex, 0, 4000), // 预分配容量：支持 1000 个粒子（每粒子 4 顶点）
		particleIndices:  make([]uint16, 0, 6000),        // 预分配容量：支持 1000 个粒子（每粒子 6 索引）
	}
}

// Draw 绘制所有粒子
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.ParticleComponent,
	](s.entityManager)

	if len(entities) == 0 {
		return
	}

	var batchTexture *ebiten.Image
	s.particleVertices = s.particleVertices[:0]
	s.particleIndices = s.particleIndices[:0]

	flush := func() {
		if batchTexture != nil && len(s.particleVertices) > 0 {
			op := &ebiten.DrawTrianglesOptions{}
			op.AntiAlias = true
			screen.DrawTriangles(s.particleVertices, s.particleIndices, batchTexture, op)
		}
		s.particleVertices = s.particleVertices[:0]
		s.particleIndices = s.particleIndices[:0]
	}

	for _, id := range entities {
		pos, hasPos := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		particle, hasParticle := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		if !hasPos || !hasParticle || particle.Image == nil {
			continue
		}

		texture := s.texture(particle.Image)
		if texture != batchTexture || len(s.particleVertices)/4 >= maxBatchParticles {
			flush()
			batchTexture = texture
		}

		vertices := buildParticleVertices(particle, pos, texture.Bounds())
		baseIndex := uint16(len(s.particleVertices))
		s.particleVertices = append(s.particleVertices, vertices[:]...)

		// 两个三角形：左上-右上-左下，右上-右下-左下
		s.particleIndices = append(s.particleIndices,
			baseIndex+0, baseIndex+1, baseIndex+2,
			baseIndex+1, baseIndex+3, baseIndex+2,
		)
	}
	flush()
}

// texture 返回源图对应的 GPU 贴图，首次使用时上传
func (s *RenderSystem) texture(img image.Image) *ebiten.Image {
	if eimg, ok := img.(*ebiten.Image); ok {
		return eimg
	}
	if t, ok := s.textures[img]; ok {
		return t
	}
	t := ebiten.NewImageFromImage(img)
	s.textures[img] = t
	log.Printf("[RenderSystem] 上传粒子贴图 %dx%d", t.Bounds().Dx(), t.Bounds().Dy())
	return t
}

// TextureCount 返回已上传的贴图数量
func (s *RenderSystem) TextureCount() int {
	return len(s.textures)
}

// Release 释放所有已上传的贴图
func (s *RenderSystem) Release() {
	for src, t := range s.textures {
		t.Deallocate()
		delete(s.textures, src)
	}
}

// buildParticleVertices 计算粒子四边形的 4 个顶点（左上、右上、左下、右下）
//
// 变换顺序：以贴图中心为原点 → 旋转（弧度）→ 缩放 → 平移到粒子位置。
func buildParticleVertices(particle *components.ParticleComponent, pos *components.PositionComponent, src image.Rectangle) [4]ebiten.Vertex {
	w := float64(src.Dx())
	h := float64(src.Dy())

	corners := [4][2]float64{
		{-w / 2, -h / 2}, // 左上
		{w / 2, -h / 2},  // 右上
		{-w / 2, h / 2},  // 左下
		{w / 2, h / 2},   // 右下
	}
	texCoords := [4][2]float32{
		{float32(src.Min.X), float32(src.Min.Y)},
		{float32(src.Max.X), float32(src.Min.Y)},
		{float32(src.Min.X), float32(src.Max.Y)},
		{float32(src.Max.X), float32(src.Max.Y)},
	}

	cosTheta := math.Cos(particle.Rotation)
	sinTheta := math.Sin(particle.Rotation)

	var vertices [4]ebiten.Vertex
	for i, corner := range corners {
		rotatedX := corner[0]*cosTheta - corner[1]*sinTheta
		rotatedY := corner[0]*sinTheta + corner[1]*cosTheta

		vertices[i] = ebiten.Vertex{
			DstX:   float32(pos.X + rotatedX*particle.Scale),
			DstY:   float32(pos.Y + rotatedY*particle.Scale),
			SrcX:   texCoords[i][0],
			SrcY:   texCoords[i][1],
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	return vertices
}
