package ecs

import "reflect"

// typeOf 返回类型参数 T 的 reflect.Type（T 通常是组件指针类型）
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent 以类型参数获取组件，避免调用方手写 reflect.TypeOf 和类型断言
//
//	emitter, ok := ecs.GetComponent[*components.EmitterComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有类型 T 的组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent 移除实体上类型 T 的组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有组件 A 的实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A]())
}

// GetEntitiesWith2 查询同时拥有组件 A、B 的实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A](), typeOf[B]())
}
