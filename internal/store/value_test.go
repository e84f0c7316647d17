package store

import (
	"reflect"
	"testing"
)

func TestValue_SetNotifiesSubscribers(t *testing.T) {
	v := NewValue("a")
	var got []string

	unsubscribe := v.Subscribe(func(s string) { got = append(got, s) })
	v.Set("b")
	v.Set("c")
	unsubscribe()
	v.Set("d")

	if !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Expected [b c], got %v", got)
	}
	if v.Get() != "d" {
		t.Errorf("Expected d, got %s", v.Get())
	}
}

func TestValue_SubscribeOrder(t *testing.T) {
	v := NewValue(0)
	var order []int

	v.Subscribe(func(int) { order = append(order, 1) })
	v.Subscribe(func(int) { order = append(order, 2) })
	v.Set(1)

	if !reflect.DeepEqual(order, []int{1, 2}) {
		t.Errorf("Subscribers should run in registration order, got %v", order)
	}
}

func TestValue_SubscriberMaySet(t *testing.T) {
	v := NewValue(0)
	v.Subscribe(func(n int) {
		if n < 3 {
			v.Set(n + 1)
		}
	})

	v.Set(1)

	if v.Get() != 3 {
		t.Errorf("Expected 3, got %d", v.Get())
	}
}
