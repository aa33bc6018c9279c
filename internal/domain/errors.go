package domain

import "errors"

var (
	// ErrShopNotFound мойка не найдена
	ErrShopNotFound = errors.New("shop not found")

	// ErrServiceNotFound услуга не найдена в каталоге мойки
	ErrServiceNotFound = errors.New("service not found")

	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotUnavailable выбранное время пересекается с другим бронированием
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrUnauthorized у актора нет прав на операцию
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyPaid бронирование уже оплачено
	ErrAlreadyPaid = errors.New("booking is already paid")

	// ErrTooLateToCancel до начала осталось меньше допустимого времени отмены
	ErrTooLateToCancel = errors.New("too late to cancel")

	// ErrInvalidTransition переход статуса не разрешён
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrFeedbackNotAllowed отзыв можно оставить только по завершённому бронированию
	ErrFeedbackNotAllowed = errors.New("feedback is not allowed")

	// ErrInvalidDate дата в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture дата за пределами горизонта бронирования
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrTooLateToBook слишком поздно бронировать на сегодня
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrOutsideWorkingHours время вне часов работы мойки
	ErrOutsideWorkingHours = errors.New("outside working hours")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
