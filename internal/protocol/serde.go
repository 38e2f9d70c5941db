package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tchu/internal/domain"
)

// ErrMalformed is returned when a field cannot be decoded.
var ErrMalformed = errors.New("malformed field")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// Serde converts values of T to and from their textual protocol form.
type Serde[T any] struct {
	encode func(T) string
	decode func(string) (T, error)
}

// Of builds a Serde from a pair of conversion functions.
func Of[T any](encode func(T) string, decode func(string) (T, error)) Serde[T] {
	return Serde[T]{encode: encode, decode: decode}
}

func (s Serde[T]) Serialize(v T) string { return s.encode(v) }

func (s Serde[T]) Deserialize(text string) (T, error) { return s.decode(text) }

// OneOf encodes values as their index in catalogue. key identifies a value; the value whose
// key equals the zero value's key encodes to the empty string and back.
func OneOf[T any](catalogue []T, key func(T) string) Serde[T] {
	var zero T
	nullKey := key(zero)
	index := make(map[string]int, len(catalogue))
	for i, v := range catalogue {
		index[key(v)] = i
	}
	return Of(
		func(v T) string {
			k := key(v)
			if k == nullKey {
				return ""
			}
			i, ok := index[k]
			if !ok {
				// Unknown values cannot be encoded; send null and let the peer reject it.
				return ""
			}
			return strconv.Itoa(i)
		},
		func(text string) (T, error) {
			if text == "" {
				return zero, nil
			}
			i, err := parseInt(text)
			if err != nil {
				return zero, err
			}
			if i < 0 || i >= len(catalogue) {
				return zero, malformed("index %d outside catalogue of %d", i, len(catalogue))
			}
			return catalogue[i], nil
		},
	)
}

// ListOf encodes a slice by joining the element encodings with sep.
func ListOf[T any](s Serde[T], sep string) Serde[[]T] {
	return Of(
		func(vs []T) string {
			parts := make([]string, len(vs))
			for i, v := range vs {
				parts[i] = s.encode(v)
			}
			return strings.Join(parts, sep)
		},
		func(text string) ([]T, error) {
			if text == "" {
				return nil, nil
			}
			parts := strings.Split(text, sep)
			out := make([]T, 0, len(parts))
			for _, p := range parts {
				v, err := s.decode(p)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, nil
		},
	)
}

// BagOf encodes a bag as the list of its elements in ascending order.
func BagOf[T domain.Element[T]](s Serde[T], sep string) Serde[domain.Bag[T]] {
	list := ListOf(s, sep)
	return Of(
		func(b domain.Bag[T]) string { return list.encode(b.Items()) },
		func(text string) (domain.Bag[T], error) {
			items, err := list.decode(text)
			if err != nil {
				return domain.Bag[T]{}, err
			}
			return domain.NewBag(items...), nil
		},
	)
}

// fields splits a composite record and checks its arity.
func fields(text, sep string, n int) ([]string, error) {
	parts := strings.Split(text, sep)
	if len(parts) != n {
		return nil, malformed("want %d fields separated by %q, got %d", n, sep, len(parts))
	}
	return parts, nil
}
