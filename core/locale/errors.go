package locale

import "errors"

var (
	ErrNoLanguages       = errors.New("locale: no languages configured")
	ErrInvalidLanguage   = errors.New("locale: invalid language code")
	ErrDuplicateLanguage = errors.New("locale: duplicate language code")
	ErrUnknownDefault    = errors.New("locale: default language is not configured")
	ErrInvalidPrefix     = errors.New("locale: excluded prefix must start with /")
	ErrConfigFile        = errors.New("locale: cannot read config file")
)
