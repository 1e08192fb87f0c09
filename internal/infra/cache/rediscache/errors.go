package rediscache

import "errors"

var (
	// ErrProducer возвращается, когда producer-функция вернула ошибку
	// Ошибки самого redis наружу не выходят - кеш деградирует до прямого вызова producer
	ErrProducer = errors.New("rediscache: producer failed")

	// ErrMarshal возвращается при ошибке десериализации значения в dest
	ErrMarshal = errors.New("rediscache: failed to decode value")
)
