package typed

import (
	"github.com/delaneyj/proxyparty/reactivity"
)

// TodoItem is a typed accessor facade over a reactive record.
type TodoItem struct {
	rec *reactivity.Record
}

// NewTodoItem builds the record with zero values for every field.
func NewTodoItem(rs *reactivity.ReactiveSystem) TodoItem {
	return TodoItem{rec: reactivity.ReactiveRecord(rs, map[string]any{
		"title":    "",
		"done":     false,
		"priority": 0,
	})}
}

// WrapTodoItem adopts an existing record handle.
func WrapTodoItem(rec *reactivity.Record) TodoItem {
	return TodoItem{rec: rec}
}

func (x TodoItem) Record() *reactivity.Record {
	return x.rec
}

func (x TodoItem) Title() string {
	v, _ := x.rec.Get("title").(string)
	return v
}

func (x TodoItem) SetTitle(v string) {
	x.rec.Set("title", v)
}

func (x TodoItem) Done() bool {
	v, _ := x.rec.Get("done").(bool)
	return v
}

func (x TodoItem) SetDone(v bool) {
	x.rec.Set("done", v)
}

func (x TodoItem) Priority() int {
	v, _ := x.rec.Get("priority").(int)
	return v
}

func (x TodoItem) SetPriority(v int) {
	x.rec.Set("priority", v)
}

// Settings is a typed accessor facade over a reactive record.
type Settings struct {
	rec *reactivity.Record
}

// NewSettings builds the record with zero values for every field.
func NewSettings(rs *reactivity.ReactiveSystem) Settings {
	return Settings{rec: reactivity.ReactiveRecord(rs, map[string]any{
		"theme":  "",
		"volume": 0.0,
		"extra":  nil,
	})}
}

// WrapSettings adopts an existing record handle.
func WrapSettings(rec *reactivity.Record) Settings {
	return Settings{rec: rec}
}

func (x Settings) Record() *reactivity.Record {
	return x.rec
}

func (x Settings) Theme() string {
	v, _ := x.rec.Get("theme").(string)
	return v
}

func (x Settings) SetTheme(v string) {
	x.rec.Set("theme", v)
}

func (x Settings) Volume() float64 {
	v, _ := x.rec.Get("volume").(float64)
	return v
}

func (x Settings) SetVolume(v float64) {
	x.rec.Set("volume", v)
}

func (x Settings) Extra() any {
	return x.rec.Get("extra")
}

func (x Settings) SetExtra(v any) {
	x.rec.Set("extra", v)
}
