package service

import (
	"errors"
	"fmt"

	"github.com/mrwaste/wastecrm/internal/repository"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// translate maps storage sentinels onto service sentinels, naming the entity.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: %s", ErrConflict, entity)
	default:
		return err
	}
}
