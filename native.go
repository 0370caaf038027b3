package bullet

import (
	"fmt"
	"log"
	"runtime"
	"sync"
)

// nativeAPI is the C ABI exported by the native library. Addresses are
// opaque; Go code never dereferences them.
type nativeAPI struct {
	getVersion func() int32

	vector3New      func(x, y, z float32) uintptr
	vector3SetValue func(addr uintptr, x, y, z float32)
	vector3GetValue func(addr uintptr, out *float32)
	vector3Delete   func(addr uintptr)

	collisionShapeSetLocalScaling       func(addr, scaling uintptr)
	collisionShapeGetLocalScaling       func(addr, out uintptr)
	collisionShapeCalculateLocalInertia func(addr uintptr, mass float32, inertia uintptr)
	collisionShapeDelete                func(addr uintptr)

	compoundShapeNew               func(dynamicAabbTree bool, initialChildCapacity int32) uintptr
	compoundShapeAddChildShape     func(addr uintptr, transform *float32, shape uintptr)
	compoundShapeGetNumChildShapes func(addr uintptr) int32

	triangleArrayNew            func() uintptr
	triangleArrayAddIndexedMesh func(addr uintptr, numTriangles int32, indices *uint16, numVertices int32, vertices *float32, vertexStride int32)
	triangleArrayDelete         func(addr uintptr)

	bvhTriangleMeshShapeNew func(meshInterface uintptr, useQuantizedAabbCompression, buildBvh bool) uintptr

	dbvtBroadphaseNew                 func() uintptr
	broadphaseGetOverlappingPairCache func(addr uintptr) uintptr
	broadphaseDelete                  func(addr uintptr)

	pairCacheGetNumOverlappingPairs func(addr uintptr) int32
}

type nativeSymbol struct {
	name string
	fptr any
}

func (a *nativeAPI) symbols() []nativeSymbol {
	return []nativeSymbol{
		{"btGetVersion", &a.getVersion},
		{"btVector3_new", &a.vector3New},
		{"btVector3_setValue", &a.vector3SetValue},
		{"btVector3_getValue", &a.vector3GetValue},
		{"btVector3_delete", &a.vector3Delete},
		{"btCollisionShape_setLocalScaling", &a.collisionShapeSetLocalScaling},
		{"btCollisionShape_getLocalScaling", &a.collisionShapeGetLocalScaling},
		{"btCollisionShape_calculateLocalInertia", &a.collisionShapeCalculateLocalInertia},
		{"btCollisionShape_delete", &a.collisionShapeDelete},
		{"btCompoundShape_new", &a.compoundShapeNew},
		{"btCompoundShape_addChildShape", &a.compoundShapeAddChildShape},
		{"btCompoundShape_getNumChildShapes", &a.compoundShapeGetNumChildShapes},
		{"btTriangleIndexVertexArray_new", &a.triangleArrayNew},
		{"btTriangleIndexVertexArray_addIndexedMesh", &a.triangleArrayAddIndexedMesh},
		{"btTriangleIndexVertexArray_delete", &a.triangleArrayDelete},
		{"btBvhTriangleMeshShape_new", &a.bvhTriangleMeshShapeNew},
		{"btDbvtBroadphase_new", &a.dbvtBroadphaseNew},
		{"btBroadphaseInterface_getOverlappingPairCache", &a.broadphaseGetOverlappingPairCache},
		{"btBroadphaseInterface_delete", &a.broadphaseDelete},
		{"btOverlappingPairCache_getNumOverlappingPairs", &a.pairCacheGetNumOverlappingPairs},
	}
}

// bindNative resolves every symbol of the C ABI through lookup.
func bindNative(lookup func(name string) (uintptr, error)) (*nativeAPI, error) {
	api := &nativeAPI{}
	for _, s := range api.symbols() {
		addr, err := lookup(s.name)
		if err != nil {
			return nil, fmt.Errorf("bullet: resolve %s: %w", s.name, err)
		}
		if addr == 0 {
			return nil, fmt.Errorf("bullet: resolve %s: null address", s.name)
		}
		bindFunc(s.fptr, addr)
	}
	return api, nil
}

// --- Library ---

// Library is a loaded native Bullet binary.
type Library struct {
	Path   string
	handle uintptr
	api    *nativeAPI
	close  func() error
}

// LoaderFunc opens the native library at path.
type LoaderFunc func(path string) (*Library, error)

// LoadLibrary opens the shared library at path with the platform loader and
// binds its C ABI.
func LoadLibrary(path string) (*Library, error) {
	handle, err := openLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("bullet: open %s: %w", path, err)
	}
	api, err := bindNative(func(name string) (uintptr, error) {
		return lookupSymbol(handle, name)
	})
	if err != nil {
		_ = closeLibrary(handle)
		return nil, err
	}
	return &Library{
		Path:   path,
		handle: handle,
		api:    api,
		close:  func() error { return closeLibrary(handle) },
	}, nil
}

// Version returns the Bullet version the binary was built from.
func (l *Library) Version() int {
	return int(l.api.getVersion())
}

// Close unloads the library. Objects created through it must be disposed first.
func (l *Library) Close() error {
	if l.close == nil {
		return nil
	}
	err := l.close()
	l.close = nil
	return err
}

// MapLibraryName returns the platform file name of the native library called
// name, e.g. "libgdx-bullet64.so" on 64-bit Linux.
func MapLibraryName(name string) string {
	return mapLibraryName(name, runtime.GOOS, runtime.GOARCH)
}

func mapLibraryName(name, goos, goarch string) string {
	suffix := ""
	switch goarch {
	case "amd64", "ppc64", "ppc64le", "riscv64", "s390x", "loong64", "mips64", "mips64le":
		suffix = "64"
	case "arm64":
		suffix = "arm64"
	case "arm":
		suffix = "arm"
	}
	switch goos {
	case "windows":
		return name + suffix + ".dll"
	case "darwin", "ios":
		return "lib" + name + suffix + ".dylib"
	default:
		return "lib" + name + suffix + ".so"
	}
}

// --- Context ---

// Context owns the native library and the process state that depends on it.
// Init must succeed before any native object is created through the context.
//
// Init, Initialized, Logging, Dispose and Close are safe to call from several
// goroutines. Everything else (shape construction, object lifetimes) assumes
// a single goroutine.
type Context struct {
	mu          sync.Mutex
	cfg         Config
	load        LoaderFunc
	initialized bool
	// logging is written by Init under mu. Native objects read it without
	// locking; they only exist after Init has returned.
	logging     bool
	lib         *Library

	// native temporaries, allocated on first use, freed by Dispose
	temps [2]*Vector3

	// grouping scratch for ObtainStaticNodeShape
	pool   *Pool[ShapeGroup]
	groups []*ShapeGroup
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLoader replaces LoadLibrary as the way the context opens the binary.
func WithLoader(fn LoaderFunc) ContextOption {
	return func(c *Context) {
		c.load = fn
	}
}

// NewContext returns an uninitialized context for cfg.
func NewContext(cfg Config, opts ...ContextOption) *Context {
	c := &Context{
		cfg:     cfg,
		load:    LoadLibrary,
		logging: cfg.Logging,
		pool:    NewShapeGroupPool(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init loads the native library and checks its version. It returns
// immediately once a previous call has succeeded. On a version mismatch the
// library is unloaded, the context stays uninitialized, and the returned
// error matches ErrVersionMismatch.
func (c *Context) Init(logging bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	path := c.cfg.libraryPath()
	lib, err := c.load(path)
	if err != nil {
		return fmt.Errorf("bullet: load native library: %w", err)
	}
	if v := lib.Version(); v != Version {
		_ = lib.Close()
		return &VersionMismatchError{Native: v, Expected: Version}
	}
	c.lib = lib
	c.logging = logging
	c.initialized = true
	if logging {
		log.Printf("bullet: loaded %s (Bullet %d)", path, Version)
	}
	return nil
}

// Initialized reports whether Init has succeeded.
func (c *Context) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Logging reports whether lifetime problems are logged.
func (c *Context) Logging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logging
}

// Config returns the configuration the context was created with.
func (c *Context) Config() Config {
	return c.cfg
}

// Dispose frees the native temporaries the context allocated. It can be
// called any number of times and does nothing when none were allocated.
// The library stays loaded.
func (c *Context) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, v := range c.temps {
		if v != nil {
			v.Dispose()
			c.temps[i] = nil
		}
	}
	c.pool.Clear()
}

// Close disposes the context and unloads the library. The context can be
// initialized again afterwards.
func (c *Context) Close() error {
	c.Dispose()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return nil
	}
	c.initialized = false
	lib := c.lib
	c.lib = nil
	return lib.Close()
}

// native returns the bound C ABI or ErrNotInitialized.
func (c *Context) native() (*nativeAPI, error) {
	if c == nil || c.lib == nil {
		return nil, ErrNotInitialized
	}
	return c.lib.api, nil
}

// api is native for objects that already exist; they cannot outlive Close.
func (c *Context) api() *nativeAPI {
	api, err := c.native()
	if err != nil {
		panic("bullet: native object used after its context was closed")
	}
	return api
}

// tempVector returns native temporary i, allocating it on first use.
func (c *Context) tempVector(i int) *Vector3 {
	if c.temps[i] == nil {
		c.temps[i] = newVector3(c, Vec3{})
	}
	return c.temps[i]
}

// --- Default context ---

var (
	defaultMu      sync.Mutex
	defaultContext *Context
)

// Default returns the process-wide context, configured from the environment
// on first use.
func Default() *Context {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultContext == nil {
		cfg := LoadConfigFromEnv()
		if cfg.Debug {
			SetDebugMode(true)
		}
		defaultContext = NewContext(cfg)
	}
	return defaultContext
}

// Init initializes the default context with its configured logging flag.
// Must succeed before the default context creates native objects.
func Init() error {
	c := Default()
	return c.Init(c.cfg.Logging)
}

// Dispose frees the default context's native temporaries. Call when the
// application ends.
func Dispose() {
	Default().Dispose()
}
