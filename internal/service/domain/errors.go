package domain

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/service"
)

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	return err
}

func mutationFailed(err error) error {
	return fmt.Errorf("%w: %v", service.ErrMutationFailed, err)
}
