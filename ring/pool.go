package ring

import "sync"

// packetPool recycles Packet allocations across Add/Remove cycles, adapted
// from the teacher's generic ObjectPool (pool/objpool.go): a sync.Pool
// wrapped with a typed Get/Put pair so callers never touch interface{}.
type packetPool struct {
	pool *sync.Pool
}

func newPacketPool() *packetPool {
	return &packetPool{pool: &sync.Pool{New: func() any { return &Packet{} }}}
}

func (p *packetPool) get() *Packet {
	pk := p.pool.Get().(*Packet)
	pk.History = pk.History[:0]
	return pk
}

func (p *packetPool) put(pk *Packet) {
	*pk = Packet{History: pk.History[:0]}
	p.pool.Put(pk)
}
