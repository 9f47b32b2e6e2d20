// Package ecs 是图层树内部的实体-组件存储
//
// 每个挂载的发射器图层和它发射的每个粒子都是一个实体；组件只存数据，
// 由 pkg/systems 中的系统读写。实体销毁是延迟的：DestroyEntity 只做标记，
// 在帧内的安全点调用 RemoveMarkedEntities 统一清理，
// 系统遍历查询结果时可以直接销毁实体。
package ecs

import (
	"reflect"
	"slices"
)

// EntityID 实体标识，从 1 开始递增且不复用；0 不是有效实体
type EntityID uint64

// EntityManager 保存实体及其组件，按组件的动态类型索引
//
// 查询结果按 EntityID 升序返回：粒子按出生顺序更新和绘制，
// 配合固定种子时每一帧的结果可复现。
type EntityManager struct {
	nextID uint64
	// EntityID -> 组件类型 -> 组件（通常是指针）
	components map[EntityID]map[reflect.Type]interface{}
	// 已标记、等待 RemoveMarkedEntities 清理的实体
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建空的实体存储
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1,
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 分配一个没有任何组件的新实体
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// DestroyEntity 标记实体待删除；组件在 RemoveMarkedEntities 之前仍可读取
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// Exists 检查实体是否存在（包括已标记但尚未清理的实体）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// AddComponent 挂载组件，同类型组件会被替换；实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 删除所有已标记的实体，重复标记无副作用
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// EntityCount 返回当前实体数量（包括已标记但尚未清理的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	slices.Sort(result)
	return result
}
