package main

import (
	md2html "github.com/alnah/go-md2html"
)

// converterPool adapts md2html.ConverterPool to the Pool interface.
type converterPool struct {
	pool *md2html.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

func newConverterPool(n int, opts ...md2html.Option) *converterPool {
	return &converterPool{pool: md2html.NewConverterPool(n, opts...)}
}

// Acquire gets a converter, creating one if the pool has room.
func (p *converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release returns a converter obtained from Acquire.
func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*md2html.Converter); ok {
		p.pool.Release(conv)
	}
}

// Size returns the pool capacity.
func (p *converterPool) Size() int {
	return p.pool.Size()
}

// Close releases all browsers started by the pool.
func (p *converterPool) Close() error {
	return p.pool.Close()
}
