// Package fake provides an in-memory implementation of faces.Client for
// testing.
package fake

import (
	"context"
	"sync"

	"github.com/tbcbank/rekotool/internal/faces"
)

// Client is an in-memory faces.Client. Results are keyed by image content,
// so tests seed a file's bytes with the faces or matches to return.
type Client struct {
	mu          sync.Mutex
	collections map[string]bool
	facesByImg  map[string][]faces.Face
	matchByImg  map[string][]faces.Match

	// Call counters.
	DescribeCalls int
	CreateCalls   int
	IndexCalls    int
	SearchCalls   int

	// Error injection.
	DescribeError error
	CreateError   error
	IndexError    error
	SearchError   error

	// IndexErrorAfter fails IndexImage once that many calls have
	// succeeded; zero disables it.
	IndexErrorAfter int
}

// NewClient creates an empty fake client.
func NewClient() *Client {
	return &Client{
		collections: make(map[string]bool),
		facesByImg:  make(map[string][]faces.Face),
		matchByImg:  make(map[string][]faces.Match),
	}
}

// AddCollection marks a collection as existing.
func (c *Client) AddCollection(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collections[id] = true
}

// SetFaces sets the faces IndexImage returns for the given image bytes.
func (c *Client) SetFaces(image []byte, result []faces.Face) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.facesByImg[string(image)] = result
}

// SetMatches sets the matches SearchImage returns for the given image bytes.
func (c *Client) SetMatches(image []byte, result []faces.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matchByImg[string(image)] = result
}

func (c *Client) DescribeCollection(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DescribeCalls++
	if c.DescribeError != nil {
		return false, c.DescribeError
	}
	return c.collections[id], nil
}

func (c *Client) CreateCollection(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CreateCalls++
	if c.CreateError != nil {
		return c.CreateError
	}
	c.collections[id] = true
	return nil
}

func (c *Client) IndexImage(ctx context.Context, collectionID string, image []byte) ([]faces.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.IndexCalls++
	if c.IndexError != nil {
		return nil, c.IndexError
	}
	if c.IndexErrorAfter > 0 && c.IndexCalls > c.IndexErrorAfter {
		return nil, &CallError{Op: "IndexImage"}
	}
	return c.facesByImg[string(image)], nil
}

func (c *Client) SearchImage(ctx context.Context, collectionID string, image []byte) ([]faces.Match, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SearchCalls++
	if c.SearchError != nil {
		return nil, c.SearchError
	}
	return c.matchByImg[string(image)], nil
}

// CallError reports a fake remote failure.
type CallError struct {
	Op string
}

func (e *CallError) Error() string {
	return "fake: " + e.Op + " failed"
}
