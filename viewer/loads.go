package viewer

import (
	"context"
	"log"

	"github.com/milk9111/vrviewer/assets"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/entity"
	"github.com/milk9111/vrviewer/scenes"
)

type loadKind int

const (
	loadModel loadKind = iota
	loadClip
)

func (k loadKind) String() string {
	if k == loadClip {
		return "clip"
	}
	return "model"
}

// loadRequest is tagged with the state token current when it was issued.
type loadRequest struct {
	token  uint64
	kind   loadKind
	spec   scenes.ModelSpec
	target ecs.Entity
}

func (r loadRequest) path() string {
	if r.kind == loadClip && r.spec.Animation != nil {
		return r.spec.Animation.Path
	}
	return r.spec.Path
}

type loadResult struct {
	req   loadRequest
	model *assets.Model
	err   error
}

// issueLoad starts a background load. The result is handed back through the
// mailbox and applied by the next frame on the render goroutine.
func (s *Session) issueLoad(ctx context.Context, req loadRequest) {
	loader := s.cfg.Loader
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		model, err := loader.Load(ctx, req.path())
		s.mu.Lock()
		s.completed = append(s.completed, loadResult{req: req, model: model, err: err})
		s.mu.Unlock()
	}()
}

func (s *Session) applyLoads() {
	s.mu.Lock()
	done := s.completed
	s.completed = nil
	s.mu.Unlock()

	for _, res := range done {
		if res.req.token != s.token {
			log.Printf("viewer: discarding stale %s %s (token %d, now %d)", res.req.kind, res.req.path(), res.req.token, s.token)
			continue
		}
		if res.err != nil {
			log.Printf("viewer: %s: load %s %s: %v", s.state, res.req.kind, res.req.path(), res.err)
			continue
		}
		switch res.req.kind {
		case loadModel:
			s.insertModel(res)
		case loadClip:
			s.attachClip(res)
		}
	}
}

func (s *Session) insertModel(res loadResult) {
	spec := res.req.spec
	e, err := entity.NewModel(s.world, spec, res.model)
	if err != nil {
		log.Printf("viewer: %s: %v", s.state, err)
		return
	}
	if spec.Animation != nil && spec.Animation.Path != "" {
		// the clip inherits the model's token, so a transition discards it too
		s.issueLoad(s.ctx, loadRequest{token: res.req.token, kind: loadClip, spec: spec, target: e})
	}
}

func (s *Session) attachClip(res loadResult) {
	if !s.world.IsAlive(res.req.target) {
		return
	}
	if err := entity.AttachClip(s.world, res.req.target, *res.req.spec.Animation, res.model); err != nil {
		log.Printf("viewer: %s: %v", s.state, err)
	}
}
