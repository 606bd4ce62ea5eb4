package i18n

import "errors"

var (
	ErrEmptyLanguage   = errors.New("i18n: language cannot be empty")
	ErrEmptyNamespace  = errors.New("i18n: namespace cannot be empty")
	ErrInvalidCatalog  = errors.New("i18n: invalid translation catalog")
	ErrNamespaceNotMap = errors.New("i18n: namespace must be a table")
)
