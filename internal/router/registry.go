package router

import "github.com/gin-gonic/gin"

const apiPrefix = "/api"

// Registry collects feature modules and mounts them under the API prefix.
// Modules are registered in the order they are added.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(apiPrefix)}
}

// Use attaches middleware to the API group ahead of any module routes.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.API.Use(mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts every added module. Call once, after all Add calls.
func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
