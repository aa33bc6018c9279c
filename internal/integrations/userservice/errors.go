package userservice

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда у пользователя нет выбранного автомобиля
	ErrVehicleNotFound = errors.New("userservice client: user has no selected vehicle")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
