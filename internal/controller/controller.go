// Package controller holds the form state of one browser session and runs
// solve attempts against it.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/kdduha/skillscribe/internal/models"
	"github.com/kdduha/skillscribe/pkg/logger"
)

const (
	ValidationMessage = "Please provide both an image and a description of your problem."
	ExamplePrompt     = "I need to get the total sales for 'North', 'South', and 'East' from this data every week. How can I do this faster?"

	failurePrefix = "Failed to get a solution. "
	unknownError  = "An unknown error occurred."
)

var errNoSolution = errors.New("")

type encoder interface {
	Encode(ctx context.Context, file models.ImageFile) (*models.Payload, error)
}

type solver interface {
	Solve(ctx context.Context, prompt string, image *models.Payload) (*models.Solution, error)
}

// State is a snapshot of the form. Solution is shared, not copied; it is
// never mutated after being stored.
type State struct {
	Image    models.ImageFile
	Prompt   string
	Loading  bool
	Error    string
	Solution *models.Solution
}

type Controller struct {
	mu      sync.Mutex
	state   State
	encoder encoder
	solver  solver
}

func New(encoder encoder, solver solver) *Controller {
	return &Controller{
		encoder: encoder,
		solver:  solver,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) SetImage(file models.ImageFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Image = file
}

func (c *Controller) SetPrompt(prompt string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Prompt = prompt
}

// UseExample replaces the prompt with ExamplePrompt. The image is left as is,
// so the user still has to upload a matching one.
func (c *Controller) UseExample() {
	c.SetPrompt(ExamplePrompt)
}

// Solve runs one attempt to completion.
func (c *Controller) Solve(ctx context.Context) {
	if done, ok := c.Start(ctx); ok {
		<-done
	}
}

// Start validates the inputs synchronously. When they are complete it clears
// the previous result, marks the state as loading and finishes the attempt in
// the background; done is closed once loading is cleared. ok is false when
// validation failed or an attempt is already in flight.
func (c *Controller) Start(ctx context.Context) (done <-chan struct{}, ok bool) {
	c.mu.Lock()
	if c.state.Loading {
		c.mu.Unlock()
		return nil, false
	}
	if c.state.Image == nil || c.state.Prompt == "" {
		c.state.Error = ValidationMessage
		c.mu.Unlock()
		return nil, false
	}

	c.state.Loading = true
	c.state.Error = ""
	c.state.Solution = nil
	image, prompt := c.state.Image, c.state.Prompt
	c.mu.Unlock()

	ch := make(chan struct{})
	go func() {
		defer close(ch)
		c.finish(ctx, image, prompt)
	}()
	return ch, true
}

func (c *Controller) finish(ctx context.Context, image models.ImageFile, prompt string) {
	solution, err := c.fetch(ctx, image, prompt)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Loading = false
	if err != nil {
		c.state.Error = failureMessage(err)
		logger.FromContext(ctx).Error("solve failed", "error", err)
		return
	}
	c.state.Solution = solution
}

func (c *Controller) fetch(ctx context.Context, image models.ImageFile, prompt string) (*models.Solution, error) {
	payload, err := c.encoder.Encode(ctx, image)
	if err != nil {
		return nil, err
	}

	solution, err := c.solver.Solve(ctx, prompt, payload)
	if err != nil {
		return nil, err
	}
	if solution == nil {
		return nil, errNoSolution
	}
	return solution, nil
}

func failureMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		msg = unknownError
	}
	return failurePrefix + msg
}
