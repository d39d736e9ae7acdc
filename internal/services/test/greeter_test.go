package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/bionicotaku/lingo-services-greeting/internal/models/vo"
	"github.com/bionicotaku/lingo-services-greeting/internal/services"
)

func TestGreetReturnsFixedGreeting(t *testing.T) {
	uc := services.NewGreeterUsecase()

	got := uc.Greet(context.Background())
	if got != vo.NewGreeting() {
		t.Fatalf("unexpected greeting: %+v", got)
	}
}

func TestGreetIsStableUnderConcurrency(t *testing.T) {
	uc := services.NewGreeterUsecase()
	want := vo.NewGreeting()

	var wg sync.WaitGroup
	results := make([]vo.Greeting, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = uc.Greet(context.Background())
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Fatalf("result %d differs: %+v", i, got)
		}
	}
}
