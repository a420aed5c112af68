package expire_slots

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("expire_slots: internal error")
