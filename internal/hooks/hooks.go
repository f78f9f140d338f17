// Package hooks provides lifecycle extension points for persisted models.
// Dispatchers are populated once at startup and injected into services; they
// are never package globals.
package hooks

import (
	"context"
	"sync"
)

// Hook is a fire-and-forget lifecycle callback. Return values are not
// consumed; a hook that needs to veto an operation belongs in validation.
type Hook[T any] func(ctx context.Context, model *T)

// Dispatcher invokes registered lifecycle callbacks for one entity type.
// Registration is expected to happen during startup; invocation is
// read-mostly and safe for concurrent use.
type Dispatcher[T any] struct {
	mu           sync.RWMutex
	onLoad       []Hook[T]
	beforeSave   []Hook[T]
	afterSave    []Hook[T]
	beforeDelete []Hook[T]
	afterDelete  []Hook[T]
}

// New constructs an empty dispatcher.
func New[T any]() *Dispatcher[T] {
	return &Dispatcher[T]{}
}

// RegisterOnLoad appends a callback invoked after a model is read from storage.
func (d *Dispatcher[T]) RegisterOnLoad(fn Hook[T]) {
	d.register(&d.onLoad, fn)
}

// RegisterOnBeforeSave appends a callback invoked before a model is persisted.
func (d *Dispatcher[T]) RegisterOnBeforeSave(fn Hook[T]) {
	d.register(&d.beforeSave, fn)
}

// RegisterOnAfterSave appends a callback invoked after a model is persisted.
func (d *Dispatcher[T]) RegisterOnAfterSave(fn Hook[T]) {
	d.register(&d.afterSave, fn)
}

// RegisterOnBeforeDelete appends a callback invoked before a model is removed.
func (d *Dispatcher[T]) RegisterOnBeforeDelete(fn Hook[T]) {
	d.register(&d.beforeDelete, fn)
}

// RegisterOnAfterDelete appends a callback invoked after a model is removed.
func (d *Dispatcher[T]) RegisterOnAfterDelete(fn Hook[T]) {
	d.register(&d.afterDelete, fn)
}

// Clear removes every registered callback. Intended for teardown in tests.
func (d *Dispatcher[T]) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onLoad = nil
	d.beforeSave = nil
	d.afterSave = nil
	d.beforeDelete = nil
	d.afterDelete = nil
}

// OnLoad invokes the registered on-load callbacks.
func (d *Dispatcher[T]) OnLoad(ctx context.Context, model *T) {
	d.invoke(ctx, model, d.snapshot(&d.onLoad))
}

// OnBeforeSave invokes the registered before-save callbacks.
func (d *Dispatcher[T]) OnBeforeSave(ctx context.Context, model *T) {
	d.invoke(ctx, model, d.snapshot(&d.beforeSave))
}

// OnAfterSave invokes the registered after-save callbacks.
func (d *Dispatcher[T]) OnAfterSave(ctx context.Context, model *T) {
	d.invoke(ctx, model, d.snapshot(&d.afterSave))
}

// OnBeforeDelete invokes the registered before-delete callbacks.
func (d *Dispatcher[T]) OnBeforeDelete(ctx context.Context, model *T) {
	d.invoke(ctx, model, d.snapshot(&d.beforeDelete))
}

// OnAfterDelete invokes the registered after-delete callbacks.
func (d *Dispatcher[T]) OnAfterDelete(ctx context.Context, model *T) {
	d.invoke(ctx, model, d.snapshot(&d.afterDelete))
}

func (d *Dispatcher[T]) register(list *[]Hook[T], fn Hook[T]) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	*list = append(*list, fn)
}

func (d *Dispatcher[T]) snapshot(list *[]Hook[T]) []Hook[T] {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(*list) == 0 {
		return nil
	}
	out := make([]Hook[T], len(*list))
	copy(out, *list)
	return out
}

func (d *Dispatcher[T]) invoke(ctx context.Context, model *T, callbacks []Hook[T]) {
	if d == nil || model == nil {
		return
	}
	for _, fn := range callbacks {
		fn(ctx, model)
	}
}
