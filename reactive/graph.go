// reactive/graph.go
package reactive

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrUnknownInput = errors.New("неизвестный вход")
	ErrUnknownCalc  = errors.New("неизвестное вычисление")
	ErrCycle        = errors.New("циклическая зависимость")
)

// Func вычисляет значение узла. Всё, что прочитано через ctx, становится зависимостью узла.
type Func func(ctx *Context) (any, error)

type nodeKind int

const (
	kindInput nodeKind = iota
	kindCalc
	kindOutput
)

type node struct {
	id   string
	kind nodeKind
	fn   Func

	value any
	err   error
	valid bool

	evaluating bool
	runs       int

	// Узлы, от которых зависит этот узел, и узлы, зависящие от него
	sources    map[*node]struct{}
	dependents map[*node]struct{}
}

func newNode(id string, kind nodeKind, fn Func) *node {
	return &node{
		id:         id,
		kind:       kind,
		fn:         fn,
		sources:    make(map[*node]struct{}),
		dependents: make(map[*node]struct{}),
	}
}

// Update результат пересчёта одного выхода
type Update struct {
	ID    string
	Value any
	Err   error
}

// Graph реактивный граф одной сессии.
// Не предназначен для конкурентного использования.
type Graph struct {
	inputs  map[string]*node
	calcs   map[string]*node
	outputs []*node
}

// New создаёт пустой граф
func New() *Graph {
	return &Graph{
		inputs: make(map[string]*node),
		calcs:  make(map[string]*node),
	}
}

// Input объявляет вход с начальным значением
func (g *Graph) Input(id string, initial any) {
	n := newNode(id, kindInput, nil)
	n.value = initial
	n.valid = true
	g.inputs[id] = n
}

// Calc объявляет промежуточное вычисление с кэшированием результата
func (g *Graph) Calc(id string, fn Func) {
	g.calcs[id] = newNode(id, kindCalc, fn)
}

// Output объявляет выход. Выходы пересчитываются в порядке объявления.
func (g *Graph) Output(id string, fn Func) {
	g.outputs = append(g.outputs, newNode(id, kindOutput, fn))
}

// Value текущее значение входа
func (g *Graph) Value(id string) (any, bool) {
	n, ok := g.inputs[id]
	if !ok {
		return nil, false
	}
	return n.value, true
}

// Set меняет значение входа и инвалидирует всё, что от него зависит.
// Установка того же значения ничего не инвалидирует.
func (g *Graph) Set(id string, value any) error {
	n, ok := g.inputs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownInput, id)
	}
	if reflect.DeepEqual(n.value, value) {
		return nil
	}
	n.value = value
	for _, dep := range snapshot(n.dependents) {
		dep.invalidate()
	}
	return nil
}

// Flush пересчитывает недействительные выходы и возвращает их новые значения
func (g *Graph) Flush() []Update {
	var updates []Update
	for _, out := range g.outputs {
		if out.valid {
			continue
		}
		g.evaluate(out)
		updates = append(updates, Update{ID: out.id, Value: out.value, Err: out.err})
	}
	return updates
}

// Runs сколько раз вычислялся узел (вычисление или выход)
func (g *Graph) Runs(id string) int {
	if n, ok := g.calcs[id]; ok {
		return n.runs
	}
	for _, out := range g.outputs {
		if out.id == id {
			return out.runs
		}
	}
	return 0
}

func (g *Graph) evaluate(n *node) {
	n.evaluating = true
	defer func() { n.evaluating = false }()

	ctx := &Context{graph: g, node: n}
	n.value, n.err = n.fn(ctx)
	n.valid = true
	n.runs++
}

func (n *node) invalidate() {
	if !n.valid {
		return
	}
	n.valid = false

	// Зависимости собираются заново при следующем вычислении
	for src := range n.sources {
		delete(src.dependents, n)
	}
	n.sources = make(map[*node]struct{})

	for _, dep := range snapshot(n.dependents) {
		dep.invalidate()
	}
}

func link(src, dst *node) {
	src.dependents[dst] = struct{}{}
	dst.sources[src] = struct{}{}
}

func snapshot(set map[*node]struct{}) []*node {
	out := make([]*node, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out
}
