package models

import (
	"bytes"

	"github.com/elliotchance/orderedmap/v2"
)

// CountMap счетчик по строковому ключу с сохранением порядка первого появления.
type CountMap struct {
	m *orderedmap.OrderedMap[string, int]
}

// NewCountMap создает пустой счетчик
func NewCountMap() *CountMap {
	return &CountMap{m: orderedmap.NewOrderedMap[string, int]()}
}

// Inc увеличивает счетчик ключа на delta
func (c *CountMap) Inc(key string, delta int) {
	current, _ := c.m.Get(key)
	c.m.Set(key, current+delta)
}

// Set задает значение ключа, не меняя его позицию
func (c *CountMap) Set(key string, value int) {
	c.m.Set(key, value)
}

// Get возвращает значение ключа
func (c *CountMap) Get(key string) (int, bool) {
	if c == nil || c.m == nil {
		return 0, false
	}
	return c.m.Get(key)
}

// Keys возвращает ключи в порядке первого появления
func (c *CountMap) Keys() []string {
	if c == nil || c.m == nil {
		return nil
	}
	return c.m.Keys()
}

// Len число ключей
func (c *CountMap) Len() int {
	if c == nil || c.m == nil {
		return 0
	}
	return c.m.Len()
}

// Sum сумма всех значений
func (c *CountMap) Sum() int {
	total := 0
	for _, key := range c.Keys() {
		v, _ := c.m.Get(key)
		total += v
	}
	return total
}

// Pairs возвращает пары ключ-значение в порядке первого появления
func (c *CountMap) Pairs() []ReasonCount {
	pairs := make([]ReasonCount, 0, c.Len())
	for _, key := range c.Keys() {
		v, _ := c.m.Get(key)
		pairs = append(pairs, ReasonCount{Reason: key, Count: v})
	}
	return pairs
}

// MarshalJSON кодирует счетчик как JSON объект, сохраняя порядок ключей
func (c *CountMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range c.Pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeField(&buf, pair.Reason, pair.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
