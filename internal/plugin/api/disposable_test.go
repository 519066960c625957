package api

import (
	"reflect"
	"testing"
)

func TestDisposablesLIFO(t *testing.T) {
	var order []int
	var d Disposables

	for i := 1; i <= 3; i++ {
		i := i
		d.Add(DisposableFunc(func() { order = append(order, i) }))
	}
	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}

	d.Dispose()
	d.Dispose()

	if !reflect.DeepEqual(order, []int{3, 2, 1}) {
		t.Errorf("dispose order = %v, want [3 2 1]", order)
	}
	if d.Len() != 0 {
		t.Errorf("Len() after Dispose = %d", d.Len())
	}
}

func TestDisposablesAddAfterDispose(t *testing.T) {
	var d Disposables
	d.Dispose()

	called := false
	d.Add(DisposableFunc(func() { called = true }))
	if !called {
		t.Error("item added after Dispose was not disposed immediately")
	}
}

func TestDisposablesSkipsNil(t *testing.T) {
	var d Disposables
	d.Add(nil, DisposableFunc(nil))
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
	d.Dispose()
}
