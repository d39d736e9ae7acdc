package services

import (
	"context"

	"github.com/bionicotaku/lingo-services-greeting/internal/models/vo"
)

// GreeterUsecase produces the greeting returned by the responder.
type GreeterUsecase struct{}

// NewGreeterUsecase constructs a Greeter usecase.
func NewGreeterUsecase() *GreeterUsecase {
	return &GreeterUsecase{}
}

// Greet builds a fresh greeting. The request context is accepted for
// symmetry with other usecases and is not inspected.
func (uc *GreeterUsecase) Greet(_ context.Context) vo.Greeting {
	return vo.NewGreeting()
}
