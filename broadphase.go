package bullet

// BroadphaseInterface wraps a native broadphase. Its pair cache is exposed
// through a borrowed wrapper created on first access and reused afterwards.
type BroadphaseInterface struct {
	Object
	pairCache OverlappingPairCache
}

// NewDbvtBroadphase creates a dynamic AABB tree broadphase.
func (c *Context) NewDbvtBroadphase() (*BroadphaseInterface, error) {
	api, err := c.native()
	if err != nil {
		return nil, err
	}
	b := &BroadphaseInterface{}
	b.construct(c, "btDbvtBroadphase", api.dbvtBroadphaseNew(), true, func(api *nativeAPI, addr uintptr) {
		api.broadphaseDelete(addr)
	})
	b.pairCache.construct(c, "btOverlappingPairCache", 0, false, nil)
	b.onDispose = b.pairCache.Dispose
	return b, nil
}

// OverlappingPairCache returns the broadphase's pair cache. The wrapper does
// not own the native cache and is disposed together with the broadphase.
func (b *BroadphaseInterface) OverlappingPairCache() *OverlappingPairCache {
	b.checkPointer()
	if b.pairCache.addr == 0 {
		b.pairCache.reset(b.ctx.api().broadphaseGetOverlappingPairCache(b.addr), false)
	}
	return &b.pairCache
}

// OverlappingPairCache wraps the native store of potentially colliding pairs.
type OverlappingPairCache struct {
	Object
}

// NumOverlappingPairs returns the number of pairs the broadphase reported.
func (p *OverlappingPairCache) NumOverlappingPairs() int {
	p.checkPointer()
	return int(p.ctx.api().pairCacheGetNumOverlappingPairs(p.addr))
}
