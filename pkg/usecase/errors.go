package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// validate runs the record validator and wraps the collected problems
func (b *base) validate(kind types.RecordKind, fields model.Fields) error {
	if errs := b.validator.Validate(kind, fields); len(errs) > 0 {
		return goerr.Wrap(errs, "record is invalid", goerr.V(model.KindKey, kind))
	}
	return nil
}

// transitionError reports a status change the state machine forbids
func transitionError[T ~string](kind types.RecordKind, id int64, from, to T) error {
	return goerr.Wrap(model.ErrInvalidTransition, "status change is not allowed",
		goerr.V(model.KindKey, kind),
		goerr.V(model.IDKey, id),
		goerr.V(model.FromStatusKey, from),
		goerr.V(model.ToStatusKey, to))
}
