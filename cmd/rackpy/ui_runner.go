package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rackpy/internal/driver"
	"rackpy/internal/pipeline"
	"rackpy/internal/ui"
)

type uiOutcome[T any] struct {
	result T
	err    error
}

// runWithUI запускает work с прогрессом Bubble Tea. work получает опции с
// подключённым ChannelSink; канал закрывается, когда work вернулась.
func runWithUI[T any](ctx context.Context, title string, units []string, opts driver.Options, work func(context.Context, driver.Options) (T, error)) (T, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan uiOutcome[T], 1)

	go func() {
		optsCopy := opts
		sink := pipeline.ProgressSink(pipeline.ChannelSink{Ch: events})
		if opts.Sink != nil {
			sink = pipeline.Fanout{opts.Sink, sink}
		}
		optsCopy.Sink = sink
		res, err := work(ctx, optsCopy)
		outcomeCh <- uiOutcome[T]{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, units, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// после ctrl+c программа уже не читает канал; дочитываем, чтобы work не встала
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
