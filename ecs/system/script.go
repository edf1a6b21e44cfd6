package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

// ScriptLoader resolves a script path to its source.
type ScriptLoader func(path string) ([]byte, error)

type scriptRuntime struct {
	path      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	failed    bool
}

// Every script defines update(engine, state); this tail calls it.
const scriptDispatch = `
update(__engine, __state)
`

// ScriptSystem runs each entity's tengo behaviour script once per frame.
// Scripts are compiled on first use and cached per entity; a script that
// fails to load or run is logged once and left disabled.
type ScriptSystem struct {
	Load  ScriptLoader
	cache map[ecs.Entity]*scriptRuntime
}

func NewScriptSystem(load ScriptLoader) *ScriptSystem {
	return &ScriptSystem{Load: load, cache: map[ecs.Entity]*scriptRuntime{}}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.cache == nil {
		s.cache = map[ecs.Entity]*scriptRuntime{}
	}
	for e := range s.cache {
		if !w.IsAlive(e) {
			delete(s.cache, e)
		}
	}

	for _, e := range w.Query(component.ScriptComponent.ID(), component.TransformComponent.ID()) {
		spec, _ := ecs.Get(w, e, component.ScriptComponent)
		rt, err := s.runtime(e, spec.Path)
		if err != nil {
			log.Printf("script: entity=%s load %s: %v", e, spec.Path, err)
			continue
		}
		if rt.failed {
			continue
		}
		if err := rt.run(buildScriptEngine(w, e)); err != nil {
			log.Printf("script: entity=%s update %s: %v", e, spec.Path, err)
			rt.failed = true
		}
	}
}

// Forget drops every cached runtime so edited scripts are recompiled.
func (s *ScriptSystem) Forget() {
	if s == nil {
		return
	}
	s.cache = map[ecs.Entity]*scriptRuntime{}
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt, nil
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if s.Load == nil {
		return nil, fmt.Errorf("no script loader")
	}

	src, err := s.Load(path)
	if err != nil {
		// cache the failure so the log is not repeated every frame
		s.cache[e] = &scriptRuntime{path: path, failed: true}
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		s.cache[e] = &scriptRuntime{path: path, failed: true}
		return nil, err
	}

	rt := &scriptRuntime{
		path:      path,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.cache[e] = rt
	return rt, nil
}

func (rt *scriptRuntime) run(engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildScriptEngine(w *ecs.World, e ecs.Entity) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["dt"] = &tengo.UserFunction{Name: "dt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: w.Delta().Seconds()}, nil
	}}

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(w.Frame())}, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		return vecToArray(t.Position), nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, ok := argsToVec(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		t.Position = v
		_ = ecs.Add(w, e, component.TransformComponent, t)
		return tengo.TrueValue, nil
	}}

	values["get_rotation"] = &tengo.UserFunction{Name: "get_rotation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		return vecToArray(t.Rotation), nil
	}}

	values["set_rotation"] = &tengo.UserFunction{Name: "set_rotation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, ok := argsToVec(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		t.Rotation = v
		_ = ecs.Add(w, e, component.TransformComponent, t)
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vecToArray(v mgl64.Vec3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X()},
		&tengo.Float{Value: v.Y()},
		&tengo.Float{Value: v.Z()},
	}}
}

func argsToVec(args []tengo.Object) (mgl64.Vec3, bool) {
	if len(args) < 3 {
		return mgl64.Vec3{}, false
	}
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		f, ok := tengo.ToFloat64(args[i])
		if !ok {
			return mgl64.Vec3{}, false
		}
		out[i] = f
	}
	return out, true
}
