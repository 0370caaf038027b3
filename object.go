package bullet

import (
	"fmt"
	"log"
)

// NativeObject is implemented by every wrapper around a native Bullet object.
type NativeObject interface {
	// Pointer returns the opaque native address, zero once disposed.
	Pointer() uintptr
	// Obtain adds a reference.
	Obtain()
	// Release drops a reference and disposes the object when none remain.
	Release()
	// Dispose destroys the object regardless of its references.
	Dispose()
	IsDisposed() bool
	RefCount() int
}

// Object is the lifetime core shared by all wrappers: an opaque address, an
// ownership flag, and an explicit reference count. Owned objects delete their
// native counterpart when disposed; borrowed ones only forget the address.
type Object struct {
	ctx       *Context
	className string
	addr      uintptr
	owned     bool
	refCount  int
	destroyed bool

	deleteFn  func(api *nativeAPI, addr uintptr)
	onDispose func()
}

func (o *Object) construct(ctx *Context, className string, addr uintptr, owned bool, deleteFn func(*nativeAPI, uintptr)) {
	o.ctx = ctx
	o.className = className
	o.addr = addr
	o.owned = owned
	o.deleteFn = deleteFn
}

// Pointer returns the native address.
func (o *Object) Pointer() uintptr {
	return o.addr
}

// Owned reports whether disposing o deletes the native object.
func (o *Object) Owned() bool {
	return o.owned
}

// Obtain adds a reference. Panics on a disposed object.
func (o *Object) Obtain() {
	if o.destroyed {
		panic(fmt.Sprintf("bullet: obtain on disposed %s", o.className))
	}
	o.refCount++
}

// Release drops a reference; the last release disposes the object.
func (o *Object) Release() {
	if o.destroyed {
		return
	}
	o.refCount--
	if o.refCount <= 0 {
		o.Dispose()
	}
}

// RefCount returns the number of outstanding references.
func (o *Object) RefCount() int {
	return o.refCount
}

// Dispose destroys the object. Disposing an object that is still referenced
// is allowed but reported when the context logs.
func (o *Object) Dispose() {
	if o.destroyed {
		return
	}
	if o.refCount > 0 && o.ctx != nil && o.ctx.logging {
		log.Printf("bullet: disposing %s while it still has %d references", o, o.refCount)
	}
	o.destroyed = true
	if o.owned && o.addr != 0 && o.deleteFn != nil {
		o.deleteFn(o.ctx.api(), o.addr)
	}
	o.addr = 0
	o.refCount = 0
	if o.onDispose != nil {
		o.onDispose()
	}
}

// IsDisposed reports whether Dispose has run.
func (o *Object) IsDisposed() bool {
	return o.destroyed
}

// String returns the class name and native address.
func (o *Object) String() string {
	return fmt.Sprintf("%s(0x%x)", o.className, o.addr)
}

// checkPointer panics when o no longer refers to a native object.
func (o *Object) checkPointer() {
	if o.addr == 0 {
		panic(fmt.Sprintf("bullet: %s has no native object (disposed or never set)", o.className))
	}
}

// reset points o at another native address. The previous owned object, if
// any, is deleted first.
func (o *Object) reset(addr uintptr, owned bool) {
	if o.destroyed {
		panic(fmt.Sprintf("bullet: cannot reuse disposed %s", o.className))
	}
	if o.owned && o.addr != 0 && o.addr != addr && o.deleteFn != nil {
		o.deleteFn(o.ctx.api(), o.addr)
	}
	o.addr = addr
	o.owned = owned
}

// --- Vector3 ---

// Vector3 is a native btVector3, used as call scratch space.
type Vector3 struct {
	Object
}

func newVector3(ctx *Context, v Vec3) *Vector3 {
	api := ctx.api()
	r := &Vector3{}
	r.construct(ctx, "btVector3", api.vector3New(v.X, v.Y, v.Z), true, func(api *nativeAPI, addr uintptr) {
		api.vector3Delete(addr)
	})
	return r
}

// Set writes v into the native vector.
func (v *Vector3) Set(x Vec3) {
	v.checkPointer()
	v.ctx.api().vector3SetValue(v.addr, x.X, x.Y, x.Z)
}

// Get reads the native vector.
func (v *Vector3) Get() Vec3 {
	v.checkPointer()
	var out [3]float32
	v.ctx.api().vector3GetValue(v.addr, &out[0])
	return Vec3{out[0], out[1], out[2]}
}
