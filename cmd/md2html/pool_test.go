package main

import (
	"testing"

	md2html "github.com/alnah/go-md2html"
)

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(2, md2html.WithoutStyle())
	defer pool.Close()

	if pool.Size() != 2 {
		t.Errorf("Size() = %d, want 2", pool.Size())
	}

	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, ok := conv.(*md2html.Converter); !ok {
		t.Fatalf("Acquire returned %T, want *md2html.Converter", conv)
	}
	pool.Release(conv)

	again, err := pool.Acquire()
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if again != conv {
		t.Error("released converter should be reused")
	}
	pool.Release(again)
}

func TestConverterPool_AcquireError(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1, md2html.WithStyle("no-such-style"))
	defer pool.Close()

	if _, err := pool.Acquire(); err == nil {
		t.Error("expected an error for an unknown style")
	}
}
