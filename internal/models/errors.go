package models

import "errors"

// Ошибки доменного уровня. Хендлеры сопоставляют их через errors.Is
// и превращают в HTTP статусы.
var (
	ErrValidation              = errors.New("неверные данные запроса")
	ErrUnauthenticated         = errors.New("требуется аутентификация")
	ErrInvalidToken            = errors.New("недействительный токен")
	ErrTokenExpired            = errors.New("токен истек")
	ErrUserNotFound            = errors.New("пользователь не найден")
	ErrEmailTaken              = errors.New("email уже зарегистрирован")
	ErrInvalidCredentials      = errors.New("неверный email или пароль")
	ErrComplaintNotFound       = errors.New("жалоба не найдена")
	ErrStorageUploadFailed     = errors.New("ошибка загрузки в хранилище изображений")
	ErrComplaintCreationFailed = errors.New("не удалось создать жалобу")
	ErrStorageUnavailable      = errors.New("хранилище недоступно")
)
