package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishInRegistrationOrder(t *testing.T) {
	var l Listeners[int]
	var got []string

	l.Subscribe(func(v int) { got = append(got, "a") })
	unsubscribe := l.Subscribe(func(v int) { got = append(got, "b") })
	l.Subscribe(func(v int) { got = append(got, "c") })

	l.Publish(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	unsubscribe()
	unsubscribe()
	got = nil
	l.Publish(2)
	assert.Equal(t, []string{"a", "c"}, got)
	assert.Equal(t, 2, l.Len())
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	var l Listeners[string]
	calls := 0
	var unsubscribe func()
	unsubscribe = l.Subscribe(func(string) {
		calls++
		unsubscribe()
	})

	l.Publish("x")
	l.Publish("y")
	assert.Equal(t, 1, calls)
}
