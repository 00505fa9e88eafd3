package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 为指定的片段清单创建场景，失败时返回 nil
type SceneFactory func(modelPath string) Scene

// SceneManager 管理当前活动的场景
// 同一时刻只有一个场景的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	currentModel string
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换到指定场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentModel 返回当前场景加载的片段清单路径
func (sm *SceneManager) CurrentModel() string {
	return sm.currentModel
}

// LoadModel 用工厂为片段清单创建新场景并切换
// 创建失败时保留当前场景，返回 false
func (sm *SceneManager) LoadModel(modelPath string) bool {
	log.Printf("[SceneManager] 加载模型: %s", modelPath)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene := sm.sceneFactory(modelPath)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建模型场景: %s", modelPath)
		return false
	}

	sm.SwitchTo(newScene)
	sm.currentModel = modelPath
	log.Printf("[SceneManager] 成功切换到模型: %s", modelPath)
	return true
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 渲染当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// SaveOnExit 退出时让当前场景保存状态
func (sm *SceneManager) SaveOnExit() bool {
	if s, ok := sm.currentScene.(Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}
