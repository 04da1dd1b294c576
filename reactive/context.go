// reactive/context.go
package reactive

import (
	"fmt"
)

// Context передаётся в функцию узла и записывает прочитанные зависимости
type Context struct {
	graph *Graph
	node  *node
}

// Input читает значение входа
func (c *Context) Input(id string) (any, error) {
	n, ok := c.graph.inputs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInput, id)
	}
	link(n, c.node)
	return n.value, nil
}

// Calc читает результат вычисления, пересчитывая его при необходимости
func (c *Context) Calc(id string) (any, error) {
	n, ok := c.graph.calcs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalc, id)
	}
	if n.evaluating {
		return nil, fmt.Errorf("%w: %s", ErrCycle, id)
	}
	if !n.valid {
		c.graph.evaluate(n)
	}
	link(n, c.node)
	return n.value, n.err
}

// InputAs читает вход ожидаемого типа
func InputAs[T any](c *Context, id string) (T, error) {
	var zero T
	v, err := c.Input(id)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("вход %s: неожиданный тип %T", id, v)
	}
	return typed, nil
}

// CalcAs читает вычисление ожидаемого типа
func CalcAs[T any](c *Context, id string) (T, error) {
	var zero T
	v, err := c.Calc(id)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("вычисление %s: неожиданный тип %T", id, v)
	}
	return typed, nil
}
