// Package services hosts the usecases invoked by transport handlers.
package services

import "github.com/google/wire"

// ProviderSet is services providers.
var ProviderSet = wire.NewSet(NewGreeterUsecase)
