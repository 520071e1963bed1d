package typed_test

import (
	"testing"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/delaneyj/proxyparty/typed"
	"github.com/stretchr/testify/assert"
)

// the generated facade reads and writes through the record with tracking
func TestTodoItemFacade(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	todo := typed.NewTodoItem(rs)
	assert.Equal(t, "", todo.Title())
	assert.False(t, todo.Done())

	runs := 0
	var title string
	reactivity.NewEffect(rs, func() any {
		runs++
		title = todo.Title()
		return nil
	})

	todo.SetTitle("write the codegen")
	assert.Equal(t, 2, runs)
	assert.Equal(t, "write the codegen", title)

	// untouched fields do not re-run the effect
	todo.SetPriority(3)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 3, todo.Priority())
}

// facades share state with the raw record handle they wrap
func TestWrapSettings(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	rec := reactivity.ReactiveRecord(rs, map[string]any{
		"theme":  "dark",
		"volume": 0.5,
		"extra":  nil,
	})
	settings := typed.WrapSettings(rec)
	assert.Equal(t, "dark", settings.Theme())

	settings.SetVolume(0.8)
	assert.Equal(t, 0.8, rec.Get("volume"))
	assert.Same(t, rec, settings.Record())
}
