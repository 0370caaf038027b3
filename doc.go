// Package bullet binds the native Bullet physics library and turns scene
// graphs into static collision shapes.
//
// The physics simulation itself lives in the native library. This package
// loads it, checks that its version matches the bindings, wraps native objects
// as reference-counted handles, and flattens node hierarchies into transform
// groups that become collision shapes.
//
// # Initialization
//
// A [Context] owns the loaded library. [Context.Init] must succeed before any
// native object is created:
//
//	ctx := bullet.NewContext(bullet.LoadConfigFromEnv())
//	if err := ctx.Init(true); err != nil {
//		log.Fatal(err) // errors.Is(err, bullet.ErrVersionMismatch) on a stale binary
//	}
//	defer ctx.Dispose()
//
// [Init] and [Dispose] do the same for the process-wide [Default] context.
// The library file is found with [MapLibraryName] (e.g. libgdx-bullet64.so)
// unless BULLET_LIBRARY_PATH names it directly.
//
// # Shape groups
//
// [AppendShapeGroups] walks a [Node] tree depth-first and collects its mesh
// parts into [ShapeGroup] values, one per distinct accumulated transform.
// Transforms are compared bit for bit, so nearly equal transforms stay apart:
//
//	pool := bullet.NewShapeGroupPool(0)
//	groups, err := bullet.AppendShapeGroups(nil, root, true, 0, pool)
//	// ... use groups ...
//	groups = bullet.FreeShapeGroups(groups, pool)
//
// [Context.ObtainStaticNodeShape] goes one step further and builds a
// [BvhTriangleMeshShape] or [CompoundShape] from the groups.
//
// # Lifetimes
//
// Native wrappers implement [NativeObject]. [NativeObject.Obtain] and
// [NativeObject.Release] count references and the last release destroys the
// native object; nothing is freed by the garbage collector.
//
// # Threading
//
// Scene graphs, pools and native objects are meant for one goroutine. The
// [Context] lifecycle methods (Init, Initialized, Logging, Dispose, Close) lock.
package bullet
